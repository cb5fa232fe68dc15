package constants

const (
	InsertDataset = `
	INSERT INTO datasets (id, name, source_columns, sample_rows, created_at)
	VALUES ($1, $2, $3, $4, NOW())
	`

	GetDatasetByID = `
	SELECT id, name, source_columns, sample_rows, created_at FROM datasets WHERE id = $1
	`

	DeleteDatasetByID = `
	DELETE FROM datasets WHERE id = $1
	`

	GetStatusByApiKey = `
	SELECT id, status FROM api_keys WHERE id = $1
	`
)

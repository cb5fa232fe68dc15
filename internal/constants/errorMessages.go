package constants

const (
	ErrInvalidRequestBody = "Invalid request body"
	ErrDatasetNotFound    = "Dataset not found"
	ErrTemplateNotFound   = "Template not found"
	ErrUnknownSchema      = "Unknown target schema"
	ErrUnauthorized       = "Unauthorized"
)

package repositories

import (
	"context"
	"database/sql"

	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/constants"
	"github.com/AZJJH2025/fire-ems-tools-sub010/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

type DatasetRepo struct {
	db *sqlx.DB
}

func NewDatasetRepo(db *sqlx.DB) *DatasetRepo {
	return &DatasetRepo{db}
}

func (r *DatasetRepo) Insert(ctx context.Context, ds *entities.Dataset) error {
	_, err := r.db.ExecContext(ctx, constants.InsertDataset,
		ds.ID, ds.Name, ds.SourceColumns, ds.SampleRows)
	return err
}

func (r *DatasetRepo) GetByID(ctx context.Context, id string) (*entities.Dataset, error) {
	var ds entities.Dataset

	err := r.db.QueryRowxContext(ctx, constants.GetDatasetByID, id).StructScan(&ds)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &ds, nil
}

func (r *DatasetRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, constants.DeleteDatasetByID, id)
	return err
}

package repository

import (
	"context"

	"gerenciador-gastos/internal/models"
)

// DatasetRepository holds the single active dataset. Replace swaps it
// wholesale; Current returns nil when nothing has been uploaded.
type DatasetRepository interface {
	Replace(ctx context.Context, ds *models.Dataset) error
	Current(ctx context.Context) (*models.Dataset, error)
}

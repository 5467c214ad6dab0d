package list_barbers

import (
	"context"

	"github.com/m04kA/SMC-BarberService/internal/service/catalog/models"
)

type CatalogService interface {
	ListBarbers(ctx context.Context) (*models.BarberListResponse, error)
}

type Logger interface {
	Error(format string, v ...interface{})
}

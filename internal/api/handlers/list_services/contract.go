package list_services

import (
	"context"

	"github.com/m04kA/SMC-BarberService/internal/service/catalog/models"
)

type CatalogService interface {
	ListServices(ctx context.Context) (*models.ServiceListResponse, error)
}

type Logger interface {
	Error(format string, v ...interface{})
}

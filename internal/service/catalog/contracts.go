package catalog

import (
	"context"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// CatalogRepository интерфейс репозитория услуг и барберов
type CatalogRepository interface {
	ListActiveServices(ctx context.Context) ([]*domain.Service, error)
	ListActiveBarbers(ctx context.Context) ([]*domain.Barber, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Error(format string, v ...interface{})
}

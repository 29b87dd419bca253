package admin

import (
	"context"

	admin "github.com/glkeru/plagadmin/internal/models"
)

//go:generate mockgen -destination=./../services/mock_admin_test.go -package=admin . ConfigStorage,UserSource,SummaryCache

// Внешнее хранилище настроек тарификации
type ConfigStorage interface {
	LoadConfig(ctx context.Context) (admin.PricingConfig, error)
	SaveConfig(ctx context.Context, cfg admin.PricingConfig) error
}

// Источник пользователей (таблица бэкенда бота)
type UserSource interface {
	LoadUsers(ctx context.Context) ([]admin.User, error)
}

// Кэш сводки дашборда
type SummaryCache interface {
	GetSummary(ctx context.Context) (admin.DashboardSummary, error)
	SetSummary(ctx context.Context, summary admin.DashboardSummary) error
	InvalidateSummary(ctx context.Context) error
}

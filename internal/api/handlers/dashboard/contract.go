package dashboard

import (
	"context"

	getDashboard "github.com/m04kA/SMC-ShopAdmin/internal/usecase/get_dashboard"
)

type DashboardUseCase interface {
	Summary(ctx context.Context, rangeMonths int, refresh bool) (*getDashboard.Summary, error)
	Report(ctx context.Context) (*getDashboard.Report, error)
}

type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

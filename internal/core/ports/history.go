package ports

import (
	"context"

	"github.com/ewilliams-labs/chorale/internal/core/domain"
)

// HistoryRepository persists processed search reports.
type HistoryRepository interface {
	Save(ctx context.Context, report domain.SearchReport) error
	ListRecent(ctx context.Context, limit int) ([]domain.SearchReport, error)
}

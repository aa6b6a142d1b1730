package interfaces

import (
	"context"

	"github.com/hodlwatch/hodlwatch/internal/models"
)

// PortfolioStore loads the persisted holdings record. Read-only: the record
// is loaded fresh per request and never written by this process.
type PortfolioStore interface {
	Load(ctx context.Context) (*models.Portfolio, error)
}

// Package storage provides read-only access to the persisted portfolio record.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/hodlwatch/hodlwatch/internal/common"
	"github.com/hodlwatch/hodlwatch/internal/interfaces"
	"github.com/hodlwatch/hodlwatch/internal/models"
)

// ErrPortfolioUnavailable is returned when the holdings record is missing,
// unreadable, or fails structural parsing. Callers convert it into a
// user-facing failure reply instead of propagating it.
var ErrPortfolioUnavailable = errors.New("portfolio unavailable")

// PortfolioStore reads the holdings record from a fixed path. The record is
// loaded fresh on every call and never cached or written.
type PortfolioStore struct {
	path   string
	logger *common.Logger
}

// NewPortfolioStore creates a store for the record at the given path.
func NewPortfolioStore(logger *common.Logger, path string) *PortfolioStore {
	return &PortfolioStore{
		path:   path,
		logger: logger,
	}
}

// Load reads and parses the portfolio record.
func (s *PortfolioStore) Load(ctx context.Context) (*models.Portfolio, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrPortfolioUnavailable, s.path, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrPortfolioUnavailable, s.path)
	}

	var portfolio models.Portfolio
	if err := json.Unmarshal(data, &portfolio); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrPortfolioUnavailable, s.path, err)
	}

	s.logger.Debug().Str("path", s.path).Int("entries", len(portfolio.Entries)).Msg("Portfolio loaded")

	return &portfolio, nil
}

// Ensure PortfolioStore implements the interface
var _ interfaces.PortfolioStore = (*PortfolioStore)(nil)

package repository

import (
	"context"

	"guild/internal/domain/entity"
)

// RosterGateway persists the whole roster as one document.
type RosterGateway interface {
	// Load reads the saved roster. A missing document yields an empty roster
	// and no error. An unreadable document yields an empty roster and an
	// error matching ErrCorruptData; entries are never partially loaded.
	Load(ctx context.Context) ([]*entity.Hero, error)

	// Save replaces the saved roster with heroes. Any failure matches ErrPersistFailure.
	Save(ctx context.Context, heroes []*entity.Hero) error
}

// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"
	"strconv"
	"strings"

	"guild/internal/domain/entity"
	domainerrors "guild/internal/domain/errors"
)

// RecruitInput is the data needed to add a hero to the roster.
type RecruitInput struct {
	Name       string `json:"name" validate:"required"`
	Level      int    `json:"level"`
	BattlesWon *int   `json:"battlesWon,omitempty" validate:"omitempty,min=0"` // nil recruits a normal hero
}

// RosterUsecase defines the roster operations offered to the menu and CLI.
//
// Every mutation saves the whole roster before returning. When only the save
// fails, the mutation is kept and the returned error matches ErrPersistFailure.
type RosterUsecase interface {
	// Open loads the saved roster. A corrupt document is logged and replaced
	// by an empty roster rather than failing.
	Open(ctx context.Context) error

	// Recruit adds a hero.
	Recruit(ctx context.Context, input *RecruitInput) (*entity.Hero, error)

	// Find returns the first hero whose name matches ignoring case.
	Find(ctx context.Context, name string) (*entity.Hero, bool)

	// Search returns every hero whose name contains query ignoring case.
	Search(ctx context.Context, query string) []*entity.Hero

	// Train sets the level of the first matching hero. Reports false when none matches.
	Train(ctx context.Context, name string, level int) (bool, error)

	// Dismiss removes the first matching hero. Reports false when none matches.
	Dismiss(ctx context.Context, name string) (bool, error)

	// List returns every hero in insertion order.
	List(ctx context.Context) []*entity.Hero

	// Report ranks the heroes; ErrEmptyRoster when there are none.
	Report(ctx context.Context) (*entity.RosterReport, error)

	// Close saves the roster one last time.
	Close(ctx context.Context) error
}

// ParseLevel turns user text into a level.
func ParseLevel(s string) (int, error) {
	level, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, domainerrors.ErrInvalidInput.WithDetails("el nivel debe ser un número entero")
	}

	return level, nil
}

// ParseBattles turns user text into a battle count.
func ParseBattles(s string) (int, error) {
	battles, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || battles < 0 {
		return 0, domainerrors.ErrInvalidInput.WithDetails("las batallas ganadas deben ser un número entero no negativo")
	}

	return battles, nil
}

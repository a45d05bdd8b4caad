// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"guild/internal/domain/entity"
)

// HeroRepository is the in-memory, ordered roster of heroes.
//
// Implementations are not safe for concurrent use. Callers that share one
// across goroutines must serialize access, together with the RosterGateway
// that persists it.
type HeroRepository interface {
	// Create appends a hero. A nil battlesWon creates a normal hero, otherwise a veteran.
	// Fails with ErrInvalidInput on an empty name or negative battle count.
	Create(name string, level int, battlesWon *int) (*entity.Hero, error)

	// FindExact returns the first hero whose name matches ignoring case.
	FindExact(name string) (*entity.Hero, bool)

	// FindPartial returns every hero whose name contains query ignoring case, in roster order.
	FindPartial(query string) []*entity.Hero

	// UpdateLevel sets the level of the first exact match. Returns false when none matches.
	UpdateLevel(name string, level int) bool

	// Delete removes the first exact match. Returns false when none matches.
	Delete(name string) bool

	// List returns every hero in insertion order.
	List() []*entity.Hero

	// Report ranks the heroes by level and computes totals.
	// Fails with ErrEmptyRoster when there are no heroes.
	Report() (*entity.RosterReport, error)

	// Replace swaps the whole roster, typically with the result of a load.
	Replace(heroes []*entity.Hero)
}

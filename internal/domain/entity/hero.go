// Package entity contains the core business objects of the guild roster.
package entity

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
)

// Kind is the discriminator persisted next to every hero.
type Kind string

const (
	KindNormal  Kind = "Normal"
	KindVeteran Kind = "Veteran"
)

// Hero is a member of the guild. The zero Veteran pointer is the base
// variant; a non-nil Veteran makes the hero a veteran.
type Hero struct {
	ID      uuid.UUID // In-memory identity, used to tell duplicate names apart.
	Name    string    // Display name; matched case-insensitively.
	Level   int       // Current level. No upper bound is enforced.
	Veteran *Veteran  // Veteran-only attributes. Nil for normal heroes.
}

// Veteran holds the attributes only veterans carry.
type Veteran struct {
	BattlesWon int // Never negative.
}

// NewHero builds a normal hero with a fresh ID.
func NewHero(name string, level int) *Hero {
	return &Hero{
		ID:    uuid.New(),
		Name:  name,
		Level: level,
	}
}

// NewVeteran builds a veteran hero with a fresh ID.
func NewVeteran(name string, level, battlesWon int) *Hero {
	hero := NewHero(name, level)
	hero.Veteran = &Veteran{BattlesWon: battlesWon}

	return hero
}

// Kind reports which variant the hero is.
func (h *Hero) Kind() Kind {
	if h.Veteran != nil {
		return KindVeteran
	}

	return KindNormal
}

// IsVeteran reports whether the hero is the veteran variant.
func (h *Hero) IsVeteran() bool {
	return h.Veteran != nil
}

// Clone returns a deep copy of the hero.
func (h *Hero) Clone() *Hero {
	clone := *h
	if h.Veteran != nil {
		veteran := *h.Veteran
		clone.Veteran = &veteran
	}

	return &clone
}

// Describe renders the one-line report of a hero.
func (h *Hero) Describe() string {
	if h.Veteran != nil {
		return fmt.Sprintf("%s (Nivel %d) - veterano con %d batallas ganadas", h.Name, h.Level, h.Veteran.BattlesWon)
	}

	return fmt.Sprintf("%s (Nivel %d)", h.Name, h.Level)
}

// foldName returns the case-folded form used for name comparisons.
// A Caser is stateful, so each call gets its own.
func foldName(s string) string {
	return cases.Fold().String(s)
}

// SameName reports whether two names are equal ignoring case.
func SameName(a, b string) bool {
	return foldName(a) == foldName(b)
}

// NameContains reports whether query is a case-insensitive substring of name.
func NameContains(name, query string) bool {
	return strings.Contains(foldName(name), foldName(query))
}

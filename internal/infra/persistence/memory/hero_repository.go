// Package memory contains the in-memory roster used as the system of record
// between saves.
package memory

import (
	"slices"
	"strings"

	"guild/internal/domain/entity"
	domainerrors "guild/internal/domain/errors"
	"guild/internal/domain/repository"
)

// heroRepository implements the repository.HeroRepository interface over an
// ordered slice. Names are not unique; exact-match operations act on the
// first match only.
type heroRepository struct {
	heroes []*entity.Hero
}

// NewHeroRepository is the constructor for heroRepository.
func NewHeroRepository() repository.HeroRepository {
	return &heroRepository{
		heroes: []*entity.Hero{},
	}
}

// Create appends a new hero to the end of the roster.
func (repo *heroRepository) Create(name string, level int, battlesWon *int) (*entity.Hero, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domainerrors.ErrInvalidInput.WithDetails("el nombre no puede estar vacío")
	}

	var hero *entity.Hero
	if battlesWon == nil {
		hero = entity.NewHero(name, level)
	} else {
		if *battlesWon < 0 {
			return nil, domainerrors.ErrInvalidInput.WithDetails("las batallas ganadas no pueden ser negativas")
		}
		hero = entity.NewVeteran(name, level, *battlesWon)
	}

	repo.heroes = append(repo.heroes, hero)

	return hero, nil
}

// FindExact returns the first hero whose name matches ignoring case.
func (repo *heroRepository) FindExact(name string) (*entity.Hero, bool) {
	idx := repo.indexOf(name)
	if idx < 0 {
		return nil, false
	}

	return repo.heroes[idx], true
}

// FindPartial returns all heroes whose name contains query, in roster order.
func (repo *heroRepository) FindPartial(query string) []*entity.Hero {
	matches := []*entity.Hero{}
	for _, hero := range repo.heroes {
		if entity.NameContains(hero.Name, query) {
			matches = append(matches, hero)
		}
	}

	return matches
}

// UpdateLevel changes the level of the first exact match in place.
func (repo *heroRepository) UpdateLevel(name string, level int) bool {
	hero, ok := repo.FindExact(name)
	if !ok {
		return false
	}
	hero.Level = level

	return true
}

// Delete removes the first exact match.
func (repo *heroRepository) Delete(name string) bool {
	idx := repo.indexOf(name)
	if idx < 0 {
		return false
	}
	repo.heroes = slices.Delete(repo.heroes, idx, idx+1)

	return true
}

// List returns the heroes in insertion order. The slice is a copy.
func (repo *heroRepository) List() []*entity.Hero {
	return slices.Clone(repo.heroes)
}

// Report ranks the roster by level, highest first.
func (repo *heroRepository) Report() (*entity.RosterReport, error) {
	report, ok := entity.BuildReport(repo.heroes)
	if !ok {
		return nil, domainerrors.ErrEmptyRoster
	}

	return report, nil
}

// Replace swaps the whole roster.
func (repo *heroRepository) Replace(heroes []*entity.Hero) {
	if heroes == nil {
		heroes = []*entity.Hero{}
	}
	repo.heroes = slices.Clone(heroes)
}

func (repo *heroRepository) indexOf(name string) int {
	return slices.IndexFunc(repo.heroes, func(hero *entity.Hero) bool {
		return entity.SameName(hero.Name, name)
	})
}

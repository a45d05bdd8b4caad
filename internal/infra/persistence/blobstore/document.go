package blobstore

import (
	"bytes"
	"encoding/json"
	"time"

	"guild/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// timestampLayout is DD/MM/YYYY HH:MM:SS.
const timestampLayout = "02/01/2006 15:04:05"

var (
	errMissingItems = errors.New("document has no items list")
	errUnknownShape = errors.New("document is neither an object nor a list")
)

// rosterDocument is the on-disk shape written by Save.
type rosterDocument struct {
	SavedAt string     `json:"fecha_ultimo_guardado"`
	Items   []heroItem `json:"items"`
}

// heroItem keeps kind as the first key of every entry.
type heroItem struct {
	Kind       entity.Kind `json:"kind"`
	Name       string      `json:"name"`
	Level      int         `json:"level"`
	BattlesWon *int        `json:"battlesWon,omitempty"`
	ID         string      `json:"id,omitempty"`
}

// storedDocument mirrors rosterDocument with pointers so missing keys can be told apart from zero values.
type storedDocument struct {
	SavedAt *string       `json:"fecha_ultimo_guardado"`
	Items   *[]storedItem `json:"items"`
}

type storedItem struct {
	Kind       entity.Kind `json:"kind"`
	Name       *string     `json:"name"`
	Level      *int        `json:"level"`
	BattlesWon *int        `json:"battlesWon"`
	ID         string      `json:"id"`
}

// legacyItem is an entry of the bare list written by the first version of the roster.
type legacyItem struct {
	Name  *string `json:"nombre"`
	Level *int    `json:"nivel"`
}

func encodeDocument(heroes []*entity.Hero, savedAt time.Time) ([]byte, error) {
	doc := rosterDocument{
		SavedAt: savedAt.Format(timestampLayout),
		Items:   make([]heroItem, 0, len(heroes)),
	}

	for _, hero := range heroes {
		item := heroItem{
			Kind:  hero.Kind(),
			Name:  hero.Name,
			Level: hero.Level,
		}
		if hero.Veteran != nil {
			battles := hero.Veteran.BattlesWon
			item.BattlesWon = &battles
		}
		if hero.ID != uuid.Nil {
			item.ID = hero.ID.String()
		}
		doc.Items = append(doc.Items, item)
	}

	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return nil, errors.Wrap(err, "marshal roster document")
	}

	return data, nil
}

// decodeDocument accepts the current document shape and the legacy bare list.
// Any problem with any entry fails the whole document.
func decodeDocument(data []byte) ([]*entity.Hero, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errUnknownShape
	}

	switch trimmed[0] {
	case '{':
		return decodeCurrent(trimmed)
	case '[':
		return decodeLegacy(trimmed)
	default:
		return nil, errUnknownShape
	}
}

func decodeCurrent(data []byte) ([]*entity.Hero, error) {
	var doc storedDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "unmarshal roster document")
	}
	if doc.Items == nil {
		return nil, errMissingItems
	}

	heroes := make([]*entity.Hero, 0, len(*doc.Items))
	for i, item := range *doc.Items {
		hero, err := item.toHero()
		if err != nil {
			return nil, errors.Wrapf(err, "item %d", i)
		}
		heroes = append(heroes, hero)
	}

	return heroes, nil
}

func decodeLegacy(data []byte) ([]*entity.Hero, error) {
	var items []legacyItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, errors.Wrap(err, "unmarshal legacy roster")
	}

	heroes := make([]*entity.Hero, 0, len(items))
	for i, item := range items {
		if item.Name == nil || *item.Name == "" || item.Level == nil {
			return nil, errors.Errorf("legacy item %d: missing nombre or nivel", i)
		}
		heroes = append(heroes, entity.NewHero(*item.Name, *item.Level))
	}

	return heroes, nil
}

func (item storedItem) toHero() (*entity.Hero, error) {
	if item.Name == nil || *item.Name == "" {
		return nil, errors.New("missing name")
	}
	if item.Level == nil {
		return nil, errors.New("missing level")
	}

	var hero *entity.Hero
	switch item.Kind {
	case entity.KindVeteran:
		if item.BattlesWon == nil {
			hero = entity.NewHero(*item.Name, *item.Level)

			break
		}
		if *item.BattlesWon < 0 {
			return nil, errors.Errorf("negative battlesWon %d", *item.BattlesWon)
		}
		hero = entity.NewVeteran(*item.Name, *item.Level, *item.BattlesWon)
	case entity.KindNormal:
		hero = entity.NewHero(*item.Name, *item.Level)
	default:
		// Unknown or missing kinds load as normal heroes.
		hero = entity.NewHero(*item.Name, *item.Level)
	}

	if id, err := uuid.Parse(item.ID); err == nil {
		hero.ID = id
	}

	return hero, nil
}

package impl

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"guild/internal/domain/entity"
	domainerrors "guild/internal/domain/errors"
	"guild/internal/domain/repository"
	"guild/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// rosterService serializes every operation with one mutex, so the store and
// its saved document always change together.
type rosterService struct {
	mu       sync.Mutex
	heroRepo repository.HeroRepository
	gateway  repository.RosterGateway
	validate *validator.Validate
	logger   *slog.Logger
}

// NewRosterService creates a new roster service instance
func NewRosterService(
	heroRepo repository.HeroRepository,
	gateway repository.RosterGateway,
	logger *slog.Logger,
) usecase.RosterUsecase {
	return &rosterService{
		heroRepo: heroRepo,
		gateway:  gateway,
		validate: validator.New(),
		logger:   logger,
	}
}

// Open loads the saved roster into the store.
func (srv *rosterService) Open(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()

	heroes, err := srv.gateway.Load(ctx)
	if err != nil {
		if !errors.Is(err, domainerrors.ErrCorruptData) {
			return errors.Wrap(err, "failed to load roster")
		}
		srv.logger.Warn("roster file is corrupt, starting with an empty roster", "error", err)
		heroes = nil
	} else {
		srv.logger.Info("roster loaded", "heroes", len(heroes))
	}

	srv.heroRepo.Replace(heroes)

	return nil
}

// Recruit validates input, adds the hero and saves.
func (srv *rosterService) Recruit(ctx context.Context, input *usecase.RecruitInput) (*entity.Hero, error) {
	if input != nil {
		trimmed := *input
		trimmed.Name = strings.TrimSpace(input.Name)
		input = &trimmed
	}
	if err := srv.validateRecruit(input); err != nil {
		srv.logger.Error("invalid recruit input", "error", err)

		return nil, err
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()

	hero, err := srv.heroRepo.Create(input.Name, input.Level, input.BattlesWon)
	if err != nil {
		srv.logger.Error("invalid recruit input", "error", err)

		return nil, errors.Wrap(err, "failed to recruit hero")
	}
	srv.logger.Info("hero recruited", "name", hero.Name, "level", hero.Level, "kind", hero.Kind())

	return hero, srv.save(ctx)
}

// Find looks a hero up by exact name.
func (srv *rosterService) Find(_ context.Context, name string) (*entity.Hero, bool) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	hero, ok := srv.heroRepo.FindExact(name)
	if !ok {
		srv.logger.Info("search without results", "name", name)

		return nil, false
	}
	srv.logger.Info("hero found", "name", hero.Name)

	return hero, true
}

// Search looks heroes up by partial name.
func (srv *rosterService) Search(_ context.Context, query string) []*entity.Hero {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	heroes := srv.heroRepo.FindPartial(query)
	if len(heroes) == 0 {
		srv.logger.Info("search without results", "query", query)
	} else {
		srv.logger.Info("search completed", "query", query, "matches", len(heroes))
	}

	return heroes
}

// Train changes the level of a hero and saves.
func (srv *rosterService) Train(ctx context.Context, name string, level int) (bool, error) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if !srv.heroRepo.UpdateLevel(name, level) {
		srv.logger.Info("hero to train not found", "name", name)

		return false, nil
	}
	srv.logger.Info("hero trained", "name", name, "level", level)

	return true, srv.save(ctx)
}

// Dismiss removes a hero and saves.
func (srv *rosterService) Dismiss(ctx context.Context, name string) (bool, error) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if !srv.heroRepo.Delete(name) {
		srv.logger.Info("hero to dismiss not found", "name", name)

		return false, nil
	}
	srv.logger.Warn("hero dismissed permanently", "name", name)

	return true, srv.save(ctx)
}

// List returns the whole roster.
func (srv *rosterService) List(_ context.Context) []*entity.Hero {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	return srv.heroRepo.List()
}

// Report ranks the roster.
func (srv *rosterService) Report(_ context.Context) (*entity.RosterReport, error) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	report, err := srv.heroRepo.Report()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build report")
	}

	return report, nil
}

// Close saves the roster one last time.
func (srv *rosterService) Close(ctx context.Context) error {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	err := srv.save(ctx)
	srv.logger.Info("session closed")

	return err
}

// save must be called with mu held. The in-memory change is never rolled back.
func (srv *rosterService) save(ctx context.Context) error {
	if err := srv.gateway.Save(ctx, srv.heroRepo.List()); err != nil {
		srv.logger.Error("failed to save roster, changes may be lost on restart", "error", err)

		return errors.Wrap(err, "failed to save roster")
	}

	return nil
}

func (srv *rosterService) validateRecruit(input *usecase.RecruitInput) error {
	if input == nil {
		return domainerrors.ErrInvalidInput.WithDetails("faltan los datos del héroe")
	}

	err := srv.validate.Struct(input)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return errors.Wrap(err, "failed to validate recruit input")
	}

	fields := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		fields = append(fields, fieldErr.Field()+" "+fieldErr.Tag())
	}

	return domainerrors.ErrInvalidInput.WithDetails(strings.Join(fields, ", "))
}

// Package console serves the interactive roster menu over a line based terminal.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"guild/internal/delivery"
	deliverycontext "guild/internal/delivery/context"
	"guild/internal/domain/entity"
	domainerrors "guild/internal/domain/errors"
	"guild/internal/usecase"
	"guild/internal/util"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const menuText = `1. Añadir héroe
2. Buscar héroe
3. Buscar por parte del nombre
4. Modificar nivel
5. Eliminar héroe
6. Ver gremio
7. Informe
8. Salir`

// errQuit ends the menu loop without an error.
var errQuit = errors.New("quit")

// Streams are the terminal the menu reads from and writes to.
type Streams struct {
	In  io.Reader
	Out io.Writer
}

type ConsoleParams struct {
	fx.In

	Logger  *slog.Logger
	Roster  usecase.RosterUsecase
	Streams Streams
}

type console struct {
	logger  *slog.Logger
	roster  usecase.RosterUsecase
	scanner *bufio.Scanner
	out     io.Writer
	styles  styles
	now     func() time.Time
}

func NewConsole(params ConsoleParams) delivery.Delivery {
	return &console{
		logger:  params.Logger,
		roster:  params.Roster,
		scanner: bufio.NewScanner(params.Streams.In),
		out:     params.Streams.Out,
		styles:  newStyles(params.Streams.Out),
		now:     time.Now,
	}
}

// Serve runs the menu until the user quits, the input ends or ctx is done.
func (c *console) Serve(ctx context.Context) error {
	ctx, logger := deliverycontext.StartSession(ctx, c.logger)
	started := c.now()
	logger.Info("session started")
	defer func() {
		logger.Info("session finished", slog.String("duration", util.FormatDuration(c.now().Sub(started))))
	}()

	for {
		if err := ctx.Err(); err != nil {
			return errors.WithStack(err)
		}

		c.println(c.styles.title.Render("--- GREMIO DE HÉROES ---"))
		c.println(menuText)

		choice, ok := c.ask(ctx, "Opción: ")
		if !ok {
			return nil
		}

		err := c.dispatch(ctx, choice)
		if errors.Is(err, errQuit) {
			c.println("¡Hasta la próxima!")

			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (c *console) dispatch(ctx context.Context, choice string) error {
	switch strings.TrimSpace(choice) {
	case "1":
		return c.recruit(ctx)
	case "2":
		return c.find(ctx)
	case "3":
		return c.search(ctx)
	case "4":
		return c.train(ctx)
	case "5":
		return c.dismiss(ctx)
	case "6":
		c.list(ctx)

		return nil
	case "7":
		return c.report(ctx)
	case "8":
		return errQuit
	default:
		c.println(c.styles.failure.Render("Opción no válida."))

		return nil
	}
}

func (c *console) recruit(ctx context.Context) error {
	name, ok := c.askName(ctx, "Nombre del héroe: ")
	if !ok {
		return errQuit
	}
	level, ok := c.askNumber(ctx, "Nivel: ", "level", usecase.ParseLevel)
	if !ok {
		return errQuit
	}
	answer, ok := c.ask(ctx, "¿Es veterano? (s/n): ")
	if !ok {
		return errQuit
	}

	input := &usecase.RecruitInput{Name: name, Level: level}
	if util.IsAffirmative(answer) {
		battles, ok := c.askNumber(ctx, "Batallas ganadas: ", "battlesWon", usecase.ParseBattles)
		if !ok {
			return errQuit
		}
		input.BattlesWon = &battles
	}

	hero, err := c.roster.Recruit(ctx, input)
	if err = c.mutationResult(err); err != nil {
		return err
	}
	if hero != nil {
		c.println(c.styles.success.Render("Añadido: " + hero.Describe()))
	}

	return nil
}

func (c *console) find(ctx context.Context) error {
	name, ok := c.askName(ctx, "Nombre a buscar: ")
	if !ok {
		return errQuit
	}

	hero, found := c.roster.Find(ctx, name)
	if !found {
		c.println("No está en el gremio.")

		return nil
	}
	c.println("Encontrado: " + hero.Describe())

	return nil
}

func (c *console) search(ctx context.Context) error {
	query, ok := c.ask(ctx, "Texto a buscar: ")
	if !ok {
		return errQuit
	}

	heroes := c.roster.Search(ctx, query)
	if len(heroes) == 0 {
		c.println("Sin coincidencias.")

		return nil
	}
	c.printHeroes(heroes)

	return nil
}

func (c *console) train(ctx context.Context) error {
	name, ok := c.askName(ctx, "Nombre del héroe a modificar: ")
	if !ok {
		return errQuit
	}
	if _, found := c.roster.Find(ctx, name); !found {
		c.println("No encontrado.")

		return nil
	}
	level, ok := c.askNumber(ctx, "Nuevo nivel: ", "level", usecase.ParseLevel)
	if !ok {
		return errQuit
	}

	updated, err := c.roster.Train(ctx, name, level)
	if err = c.mutationResult(err); err != nil {
		return err
	}
	if updated {
		c.println(c.styles.success.Render("Nivel actualizado."))
	} else {
		c.println("No encontrado.")
	}

	return nil
}

func (c *console) dismiss(ctx context.Context) error {
	name, ok := c.askName(ctx, "Nombre del héroe a eliminar: ")
	if !ok {
		return errQuit
	}

	removed, err := c.roster.Dismiss(ctx, name)
	if err = c.mutationResult(err); err != nil {
		return err
	}
	if removed {
		c.println(c.styles.success.Render("Héroe eliminado del gremio."))
	} else {
		c.println("No se puede eliminar: no existe.")
	}

	return nil
}

func (c *console) list(ctx context.Context) {
	heroes := c.roster.List(ctx)
	if len(heroes) == 0 {
		c.println("El gremio está vacío.")

		return
	}
	c.printHeroes(heroes)
}

func (c *console) report(ctx context.Context) error {
	report, err := c.roster.Report(ctx)
	if errors.Is(err, domainerrors.ErrEmptyRoster) {
		c.println("El gremio está vacío.")

		return nil
	}
	if err != nil {
		return err
	}

	c.println(c.styles.title.Render("--- INFORME DEL GREMIO ---"))
	c.printHeroes(report.Ranked)
	c.println(fmt.Sprintf("Total de héroes: %d", report.Count))
	c.println(fmt.Sprintf("Nivel medio: %.2f", report.AverageLevel))
	c.println(fmt.Sprintf("Veteranos: %d", report.VeteranCount))

	return nil
}

// mutationResult reports storage failures to the user and keeps the menu
// running. Any other error is returned.
func (c *console) mutationResult(err error) error {
	switch {
	case err == nil:
		return nil
	case domainerrors.IsStorage(err):
		c.println(c.styles.warning.Render("Aviso: el cambio se aplicó pero no se pudo guardar; puede perderse al reiniciar."))

		return nil
	case domainerrors.IsValidation(err):
		c.println(c.styles.failure.Render("Error: " + err.Error()))

		return nil
	default:
		return err
	}
}

func (c *console) printHeroes(heroes []*entity.Hero) {
	for i, hero := range heroes {
		c.println(fmt.Sprintf("%d. %s", i+1, hero.Describe()))
	}
}

// ask prints prompt and reads one line. It reports false once input ends.
func (c *console) ask(ctx context.Context, prompt string) (string, bool) {
	_, _ = fmt.Fprint(c.out, prompt)
	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			deliverycontext.GetLoggerOrDefault(ctx, c.logger).Error("failed to read input", slog.Any("error", err))
		}

		return "", false
	}

	return strings.TrimSpace(c.scanner.Text()), true
}

// askName asks until a non blank name is given.
func (c *console) askName(ctx context.Context, prompt string) (string, bool) {
	for {
		name, ok := c.ask(ctx, prompt)
		if !ok {
			return "", false
		}
		if name != "" {
			return name, true
		}
		c.println(c.styles.failure.Render("El nombre no puede estar vacío."))
	}
}

// askNumber asks until parse accepts the answer.
func (c *console) askNumber(ctx context.Context, prompt, field string, parse func(string) (int, error)) (int, bool) {
	for {
		raw, ok := c.ask(ctx, prompt)
		if !ok {
			return 0, false
		}

		n, err := parse(raw)
		if err == nil {
			return n, true
		}
		deliverycontext.GetLoggerOrDefault(ctx, c.logger).Error("invalid numeric input", slog.String("field", field), slog.String("input", raw))
		c.println(c.styles.failure.Render("Error: " + err.Error()))
	}
}

func (c *console) println(s string) {
	_, _ = fmt.Fprintln(c.out, s)
}

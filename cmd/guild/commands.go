package main

import (
	"context"
	"fmt"
	"io"

	"guild/internal/domain/entity"
	domainerrors "guild/internal/domain/errors"
	"guild/internal/usecase"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

// rosterAction runs against an opened roster and prints to out.
type rosterAction func(ctx context.Context, roster usecase.RosterUsecase, out io.Writer) error

// runOnce starts the app, runs action and stops the app. Mutations save on
// their own, so no final save is registered.
func runOnce(cmd *cobra.Command, flags *overrides, action rosterAction) error {
	var roster usecase.RosterUsecase
	app := newApp(flags, fx.Populate(&roster))
	if err := app.Err(); err != nil {
		return errors.Wrap(err, "failed to build guild")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if err := app.Start(ctx); err != nil {
		return errors.Wrap(err, "failed to start guild")
	}

	actionErr := action(ctx, roster, cmd.OutOrStdout())
	if err := app.Stop(ctx); err != nil && actionErr == nil {
		return errors.Wrap(err, "failed to stop guild")
	}

	return actionErr
}

func newListCmd(flags *overrides) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every hero in recruitment order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOnce(cmd, flags, func(ctx context.Context, roster usecase.RosterUsecase, out io.Writer) error {
				heroes := roster.List(ctx)
				if len(heroes) == 0 {
					_, _ = fmt.Fprintln(out, "El gremio está vacío.")

					return nil
				}
				printHeroes(out, heroes)

				return nil
			})
		},
	}
}

func newReportCmd(flags *overrides) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Rank the heroes by level with totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOnce(cmd, flags, func(ctx context.Context, roster usecase.RosterUsecase, out io.Writer) error {
				report, err := roster.Report(ctx)
				if errors.Is(err, domainerrors.ErrEmptyRoster) {
					_, _ = fmt.Fprintln(out, "El gremio está vacío.")

					return nil
				}
				if err != nil {
					return err
				}

				printHeroes(out, report.Ranked)
				_, _ = fmt.Fprintf(out, "Total de héroes: %d\n", report.Count)
				_, _ = fmt.Fprintf(out, "Nivel medio: %.2f\n", report.AverageLevel)
				_, _ = fmt.Fprintf(out, "Veteranos: %d\n", report.VeteranCount)

				return nil
			})
		},
	}
}

func newSearchCmd(flags *overrides) *cobra.Command {
	return &cobra.Command{
		Use:   "search <text>",
		Short: "List heroes whose name contains text, ignoring case",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(cmd, flags, func(ctx context.Context, roster usecase.RosterUsecase, out io.Writer) error {
				heroes := roster.Search(ctx, args[0])
				if len(heroes) == 0 {
					_, _ = fmt.Fprintln(out, "Sin coincidencias.")

					return nil
				}
				printHeroes(out, heroes)

				return nil
			})
		},
	}
}

func newAddCmd(flags *overrides) *cobra.Command {
	var battles string

	cmd := &cobra.Command{
		Use:   "add <name> <level>",
		Short: "Recruit a hero; --battles makes it a veteran",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := usecase.ParseLevel(args[1])
			if err != nil {
				return err
			}
			input := &usecase.RecruitInput{Name: args[0], Level: level}
			if cmd.Flags().Changed("battles") {
				won, err := usecase.ParseBattles(battles)
				if err != nil {
					return err
				}
				input.BattlesWon = &won
			}

			return runOnce(cmd, flags, func(ctx context.Context, roster usecase.RosterUsecase, out io.Writer) error {
				hero, err := roster.Recruit(ctx, input)
				if hero != nil {
					_, _ = fmt.Fprintln(out, "Añadido: "+hero.Describe())
				}

				return err
			})
		},
	}
	cmd.Flags().StringVar(&battles, "battles", "", "battles won by a veteran hero")

	return cmd
}

func newTrainCmd(flags *overrides) *cobra.Command {
	return &cobra.Command{
		Use:   "train <name> <level>",
		Short: "Set the level of the first hero with that name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := usecase.ParseLevel(args[1])
			if err != nil {
				return err
			}

			return runOnce(cmd, flags, func(ctx context.Context, roster usecase.RosterUsecase, out io.Writer) error {
				updated, err := roster.Train(ctx, args[0], level)
				if !updated {
					_, _ = fmt.Fprintln(out, "No encontrado.")

					return err
				}
				_, _ = fmt.Fprintln(out, "Nivel actualizado.")

				return err
			})
		},
	}
}

func newDismissCmd(flags *overrides) *cobra.Command {
	return &cobra.Command{
		Use:   "dismiss <name>",
		Short: "Remove the first hero with that name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(cmd, flags, func(ctx context.Context, roster usecase.RosterUsecase, out io.Writer) error {
				removed, err := roster.Dismiss(ctx, args[0])
				if !removed {
					_, _ = fmt.Fprintln(out, "No se puede eliminar: no existe.")

					return err
				}
				_, _ = fmt.Fprintln(out, "Héroe eliminado del gremio.")

				return err
			})
		},
	}
}

func printHeroes(out io.Writer, heroes []*entity.Hero) {
	for i, hero := range heroes {
		_, _ = fmt.Fprintf(out, "%d. %s\n", i+1, hero.Describe())
	}
}

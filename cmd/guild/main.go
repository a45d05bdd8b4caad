package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"guild/config"
	"guild/internal/delivery"
	"guild/internal/delivery/console"
	"guild/internal/domain/repository"
	logs "guild/internal/infra/log"
	"guild/internal/infra/persistence/blobstore"
	"guild/internal/infra/persistence/memory"
	"guild/internal/usecase"
	"guild/internal/usecase/impl"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"gocloud.dev/blob"
)

// overrides are the command line flags that take precedence over config.yaml.
type overrides struct {
	dataPath string
	logLevel string
}

type startDeliveriesParams struct {
	fx.In
	fx.Lifecycle

	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	if err := newRootCmd(os.Stdin).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(in io.Reader) *cobra.Command {
	flags := &overrides{}

	root := &cobra.Command{
		Use:   "guild",
		Short: "Roster of the heroes guild",
		Long: `guild keeps the roster of a heroes guild in a JSON document.

Run without arguments to open the interactive menu.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMenu(cmd, flags, in)
		},
	}
	root.PersistentFlags().StringVar(&flags.dataPath, "data", "", "path of the roster document (default from config)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(
		&cobra.Command{
			Use:   "menu",
			Short: "Open the interactive menu",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runMenu(cmd, flags, in)
			},
		},
		newListCmd(flags),
		newReportCmd(flags),
		newSearchCmd(flags),
		newAddCmd(flags),
		newTrainCmd(flags),
		newDismissCmd(flags),
	)

	return root
}

// newApp wires the roster. The roster is loaded when the app starts.
func newApp(flags *overrides, opts ...fx.Option) *fx.App {
	return fx.New(
		fx.Supply(flags),
		injectInfra(),
		injectRepo(),
		injectUsecase(),
		fx.WithLogger(func(logger *slog.Logger) fxevent.Logger {
			fxLogger := &fxevent.SlogLogger{Logger: logger}
			fxLogger.UseLogLevel(slog.LevelDebug)

			return fxLogger
		}),
		fx.Invoke(openRoster),
		fx.Options(opts...),
	)
}

func injectInfra() fx.Option {
	return fx.Provide(
		newConfig,
		logs.New,
		newBucket,
	)
}

func injectRepo() fx.Option {
	return fx.Provide(
		memory.NewHeroRepository,
		newRosterGateway,
	)
}

func injectUsecase() fx.Option {
	return fx.Provide(
		impl.NewRosterService,
	)
}

func injectDelivery(in io.Reader, out io.Writer) fx.Option {
	return fx.Options(
		fx.Supply(console.Streams{In: in, Out: out}),
		fx.Provide(
			fx.Annotate(
				console.NewConsole,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// newConfig loads config.yaml and applies the command line overrides.
func newConfig(flags *overrides) (*config.Config, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, err
	}
	if flags.dataPath != "" {
		cfg.Storage.Path = flags.dataPath
	}
	if flags.logLevel != "" {
		cfg.Env.Log.Level = flags.logLevel
	}

	return cfg, nil
}

// rosterBucket is the opened bucket and the key of the roster document in it.
type rosterBucket struct {
	bucket *blob.Bucket
	key    string
}

func newBucket(lc fx.Lifecycle, cfg *config.Config) (*rosterBucket, error) {
	bucket, key, err := blobstore.OpenFileBucket(cfg.Storage.Path)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return errors.WithStack(bucket.Close())
		},
	})

	return &rosterBucket{bucket: bucket, key: key}, nil
}

func newRosterGateway(rb *rosterBucket) repository.RosterGateway {
	return blobstore.NewRosterGateway(rb.bucket, rb.key)
}

func openRoster(lc fx.Lifecycle, roster usecase.RosterUsecase) {
	lc.Append(fx.Hook{
		OnStart: roster.Open,
	})
}

// closeRoster saves the roster one last time when the app stops.
func closeRoster(lc fx.Lifecycle, roster usecase.RosterUsecase) {
	lc.Append(fx.Hook{
		OnStop: roster.Close,
	})
}

func startDeliveries(params startDeliveriesParams) {
	ctx, cancel := context.WithCancel(context.Background())

	params.Append(fx.Hook{
		OnStart: func(context.Context) error {
			for _, d := range params.Deliveries {
				go func() {
					if err := d.Serve(ctx); err != nil {
						params.Logger.Error("delivery stopped with error", slog.Any("error", err))
						_ = params.Shutdowner.Shutdown(fx.ExitCode(1))

						return
					}
					_ = params.Shutdowner.Shutdown()
				}()
			}

			return nil
		},
		OnStop: func(context.Context) error {
			cancel()

			return nil
		},
	})
}

// runMenu serves the interactive menu until the user quits or a signal arrives.
func runMenu(cmd *cobra.Command, flags *overrides, in io.Reader) error {
	app := newApp(flags,
		injectDelivery(in, cmd.OutOrStdout()),
		fx.Invoke(closeRoster, startDeliveries),
	)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	startCtx, cancelStart := context.WithTimeout(ctx, app.StartTimeout())
	defer cancelStart()
	if err := app.Start(startCtx); err != nil {
		return errors.Wrap(err, "failed to start guild")
	}

	signal := <-app.Wait()

	stopCtx, cancelStop := context.WithTimeout(context.Background(), app.StopTimeout())
	defer cancelStop()
	if err := app.Stop(stopCtx); err != nil {
		return errors.Wrap(err, "failed to stop guild")
	}
	if signal.ExitCode != 0 {
		return errors.Errorf("guild exited with code %d", signal.ExitCode)
	}

	return nil
}

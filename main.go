package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/percona-lab/percona-dlist/config"
	"github.com/percona-lab/percona-dlist/errors"
	"github.com/percona-lab/percona-dlist/fuzz"
	"github.com/percona-lab/percona-dlist/list"
	"github.com/percona-lab/percona-dlist/log"
	"github.com/percona-lab/percona-dlist/metrics"
	"github.com/percona-lab/percona-dlist/scenario"
	"github.com/percona-lab/percona-dlist/tracked"
)

func main() {
	rootCmd := newRootCmd()

	err := rootCmd.Execute()
	if err != nil {
		zerolog.Ctx(context.Background()).Fatal().Err(err).Msg("")
	}
}

func newRootCmd() *cobra.Command {
	var (
		logLevelFlag string
		logJSON      bool
		logNoColor   bool
	)

	rootCmd := &cobra.Command{
		Use:   "dlist",
		Short: "Structural checks for the percona-dlist linked list",
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logLevel, err := zerolog.ParseLevel(logLevelFlag)
			if err != nil {
				log.InitGlobals(0, logJSON, true).Fatal().Msg("Unknown log level")
			}

			lg := log.InitGlobals(logLevel, logJSON, logNoColor)
			ctx := lg.WithContext(context.Background())
			cmd.SetContext(ctx)
		},
	}

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "info", "Log level")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Output log in JSON format")
	rootCmd.PersistentFlags().BoolVar(&logNoColor, "no-color", false, "Disable log color")

	fuzzCmd := &cobra.Command{
		Use:   "fuzz",
		Short: "Apply random operations and verify the list after every step",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := fuzzOptions(cmd.Flags())
			if err != nil {
				return err
			}

			rep, err := fuzz.Run(cmd.Context(), opts)
			if err != nil {
				return err //nolint:wrapcheck
			}

			fmt.Fprintln(cmd.OutOrStdout(), rep)

			return nil
		},
	}

	addFuzzFlags(fuzzCmd.Flags())

	replayCmd := &cobra.Command{
		Use:   "replay FILE...",
		Short: "Replay scenario files and verify their expectations",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return replay(cmd.Context(), cmd.OutOrStdout(), args)
		},
	}

	soakCmd := &cobra.Command{
		Use:   "soak",
		Short: "Run fuzz rounds until stopped and serve Prometheus metrics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			port, err := cmd.Flags().GetString("port")
			if err != nil {
				return err //nolint:wrapcheck
			}

			duration, err := cmd.Flags().GetDuration("duration")
			if err != nil {
				return err //nolint:wrapcheck
			}

			opts, err := fuzzOptions(cmd.Flags())
			if err != nil {
				return err
			}

			return runSoak(cmd.Context(), port, duration, opts)
		},
	}

	addFuzzFlags(soakCmd.Flags())
	soakCmd.Flags().String("port", config.DefaultPort, "Port number for the metrics endpoint")
	soakCmd.Flags().Duration("duration", 0, "Stop after this long (0 runs until interrupted)")

	rootCmd.AddCommand(fuzzCmd, replayCmd, soakCmd)

	return rootCmd
}

func addFuzzFlags(fs *pflag.FlagSet) {
	fs.Int("steps", config.DefaultFuzzSteps, "Operations per worker")
	fs.Int("workers", config.DefaultFuzzWorkers, "Number of lists fuzzed concurrently")
	fs.Int("max-value", config.DefaultFuzzMaxValue, "Values are drawn from [0, max-value)")
	fs.Int64("seed", 0, "Random seed (defaults to $DLIST_FUZZ_SEED or the current time)")
	fs.String("kind", list.KindLinked.String(), "List representation")
}

func fuzzOptions(fs *pflag.FlagSet) (fuzz.Options, error) {
	var opts fuzz.Options
	var err error

	opts.Steps, err = fs.GetInt("steps")
	if err != nil {
		return opts, err //nolint:wrapcheck
	}

	opts.Workers, err = fs.GetInt("workers")
	if err != nil {
		return opts, err //nolint:wrapcheck
	}

	opts.MaxValue, err = fs.GetInt("max-value")
	if err != nil {
		return opts, err //nolint:wrapcheck
	}

	kind, err := fs.GetString("kind")
	if err != nil {
		return opts, err //nolint:wrapcheck
	}

	opts.Kind, err = list.ParseKind(kind)
	if err != nil {
		return opts, err //nolint:wrapcheck
	}

	opts.Seed, err = fs.GetInt64("seed")
	if err != nil {
		return opts, err //nolint:wrapcheck
	}

	if !fs.Changed("seed") {
		seed, ok := config.FuzzSeed()
		if !ok {
			seed = time.Now().UnixNano()
		}
		opts.Seed = seed
	}

	return opts, nil
}

// replay runs every scenario file on a fresh list. All files are replayed;
// the failures are joined.
func replay(ctx context.Context, out io.Writer, paths []string) error {
	var errs []error

	for _, path := range paths {
		name := filepath.Base(path)

		s, err := scenario.Load(path)
		if err != nil {
			errs = append(errs, errors.Wrap(err, "load"))
			continue
		}

		l, err := tracked.New[int](ctx, name, list.KindLinked)
		if err != nil {
			return errors.Wrap(err, "new list")
		}

		res, err := s.Run(ctx, l)
		l.Close()

		if err != nil {
			fmt.Fprintf(out, "FAIL %s: %v\n", name, err)
			errs = append(errs, errors.Wrap(err, name))

			continue
		}

		fmt.Fprintf(out, "ok   %s: %d steps, [%s]\n", name, res.Steps, l.String())
	}

	return errors.Join(errs...)
}

// runSoak fuzzes in rounds until ctx is done, the duration elapses or a
// round fails, while serving metrics at /metrics.
func runSoak(ctx context.Context, port string, duration time.Duration, opts fuzz.Options) error {
	addr, err := buildServerAddr(port)
	if err != nil {
		return errors.Wrap(err, "build server address")
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, duration)
		defer cancel()
	}

	reg := prometheus.NewRegistry()
	metrics.Init(reg)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,

		ReadTimeout:       config.ServerReadTimeout,
		ReadHeaderTimeout: config.ServerReadHeaderTimeout,
	}

	lg := log.New("soak")
	grp, grpCtx := errgroup.WithContext(ctx)

	grp.Go(func() error {
		lg.Info("Serving metrics at http://" + addr + "/metrics")

		err := httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "listen")
		}

		return nil
	})

	grp.Go(func() error {
		<-grpCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
		defer cancel()

		return errors.Wrap(httpServer.Shutdown(shutdownCtx), "shutdown")
	})

	grp.Go(func() error {
		baseSeed := opts.Seed

		for round := int64(0); ; round++ {
			opts.Seed = baseSeed + round*int64(opts.Workers)

			rep, err := fuzz.Run(grpCtx, opts)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					lg.Infof("Soak stopped after %s rounds", humanize.Comma(round))
					return nil
				}

				return errors.Wrapf(err, "round %d", round)
			}

			lg.Debugf("Round %d: %s steps verified (seed %d)",
				round, humanize.Comma(rep.Steps), rep.Seed)
		}
	})

	return grp.Wait() //nolint:wrapcheck
}

var errUnsupportedPortRange = errors.New("port value is outside the supported range [1024 - 65535]")

// buildServerAddr constructs the server address from the port.
func buildServerAddr(port string) (string, error) {
	i, err := strconv.ParseInt(port, 10, 32)
	if err != nil {
		return "", errors.Wrap(err, "invalid port value format")
	}

	if i < 1024 || i > 65535 {
		return "", errUnsupportedPortRange
	}

	return "localhost:" + port, nil
}

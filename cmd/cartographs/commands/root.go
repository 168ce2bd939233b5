package commands

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"cartographs/internal/app"
	xlog "cartographs/internal/log"
	"cartographs/internal/settings"
)

// version is set at build time with -ldflags "-X .../commands.version=...".
var version = "dev"

// needsWire marks commands that load settings and build the wire before
// running. cobra's help and completion commands and version run without it.
const needsWire = "cartographs.needs-wire"

func wired() map[string]string { return map[string]string{needsWire: "true"} }

type options struct {
	configPath string
	crs        string
	year       int
	resolution string
	baseURL    string
	logLevel   string
	logFormat  string
	describe   bool
	tempDir    string

	lookup settings.LookupFunc
	wire   *app.Wire
}

// Execute runs the CLI with os.Args.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return newRootCmd(os.LookupEnv).ExecuteContext(ctx)
}

func newRootCmd(lookup settings.LookupFunc) *cobra.Command {
	o := &options{lookup: lookup}
	root := &cobra.Command{
		Use:          "cartographs",
		Short:        "Summarise US state and county boundary datasets",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		Annotations:  wired(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.wire.Run(cmd.Context())
		},
	}
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if cmd.Annotations[needsWire] == "" {
			return nil
		}
		return o.build(cmd.Flags(), cmd.OutOrStdout(), cmd.ErrOrStderr())
	}

	pf := root.PersistentFlags()
	pf.StringVar(&o.configPath, "config", "", "YAML settings file")
	pf.StringVar(&o.crs, "crs", "", "output coordinate reference system (e.g. EPSG:4326, EPSG:3857)")
	pf.IntVar(&o.year, "year", 0, "dataset year (default from settings)")
	pf.StringVar(&o.resolution, "resolution", "", "boundary resolution: 500k, 5m or 20m")
	pf.StringVar(&o.baseURL, "base-url", "", "archive base URL (e.g. http://127.0.0.1:8080 for boundary-mirror)")
	pf.StringVar(&o.logLevel, "log-level", "info", "log level")
	pf.StringVar(&o.logFormat, "log-format", "console", "log format: console or json")
	pf.BoolVar(&o.describe, "describe", false, "append numeric column statistics to each summary")
	pf.StringVar(&o.tempDir, "temp-dir", "", "scratch directory for downloads (default system temp)")

	root.AddCommand(statesCmd(o), countiesCmd(o), versionCmd())
	return root
}

// build creates the logger, then settings, then the wire, in that order.
func (o *options) build(flags *pflag.FlagSet, out, errOut io.Writer) error {
	logger, err := xlog.New(xlog.Config{Level: o.logLevel, Format: o.logFormat, Output: errOut})
	if err != nil {
		return err
	}

	s, err := o.settings(flags, logger)
	if err != nil {
		return err
	}

	o.wire, err = app.NewWire(app.Config{
		Settings: s,
		Out:      out,
		TempDir:  o.tempDir,
		Describe: o.describe,
	}, logger)
	return err
}

func (o *options) settings(flags *pflag.FlagSet, logger zerolog.Logger) (settings.Settings, error) {
	s, err := settings.Load(o.configPath, o.lookup, func(s *settings.Settings) {
		if flags.Changed("crs") {
			s.CRS = o.crs
		}
		if flags.Changed("year") {
			s.Latest = o.year
		}
		if flags.Changed("resolution") {
			s.Resolution = o.resolution
		}
		if flags.Changed("base-url") {
			s.BaseURL = o.baseURL
		}
	})
	if err != nil {
		return settings.Settings{}, err
	}
	logger.Debug().
		Str(xlog.FieldCRS, s.CRS).
		Int(xlog.FieldYear, s.Latest).
		Str("resolution", s.Resolution).
		Str(xlog.FieldURL, s.BaseURL).
		Msg("settings loaded")
	return s, nil
}

// Package cli implements the chronicler command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/talgya/chronicler/internal/config"
	"github.com/talgya/chronicler/internal/persistence"
)

// Version is overridden at build time with -ldflags "-X ...cli.Version=...".
var Version = "v0.3.0"

// app carries state shared by every subcommand of one command tree.
type app struct {
	v       *viper.Viper
	cfgFile string
	verbose bool
	cfg     config.Config
}

// NewRootCmd builds a fresh command tree with its own viper instance.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "chronicler",
		Short: "Chronicler - compiles civilization histories into epic chronicles",
		Long: `Chronicler turns the raw event log of a simulated civilization into a
titled, chaptered chronicle written in the voice of a court historian.

Events are filtered for lore-worthiness, grouped into eras, linked by
inferred causes and rendered as prose. The same history always yields
the same chronicle.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: $HOME/.chronicler/config.yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output (debug logging)")
	root.PersistentFlags().String("db", "", "SQLite database path")
	_ = a.v.BindPFlag("db_path", root.PersistentFlags().Lookup("db"))

	root.AddCommand(
		newVersionCmd(),
		newConfigCmd(a),
		newServeCmd(a),
		newCompileCmd(a),
		newSeedCmd(a),
		newImportCmd(a),
	)
	return root
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "chronicler %s\n", Version)
		},
	}
}

// init reads the config file and environment, then installs the logger.
func (a *app) init(stderr io.Writer) error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		a.v.AddConfigPath(filepath.Join(home, ".chronicler"))
		a.v.SetConfigType("yaml")
		a.v.SetConfigName("config")
	}

	if err := a.v.ReadInConfig(); err != nil {
		if _, missing := err.(viper.ConfigFileNotFoundError); !missing || a.cfgFile != "" {
			return fmt.Errorf("read config: %w", err)
		}
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	if a.verbose {
		cfg.LogLevel = "debug"
	}
	a.cfg = cfg

	slog.SetDefault(slog.New(newLogHandler(stderr, cfg)))
	if used := a.v.ConfigFileUsed(); used != "" {
		slog.Debug("using config file", "path", used)
	}
	return nil
}

// newLogHandler picks a text handler for terminals and JSON otherwise,
// unless the format is set explicitly.
func newLogHandler(w io.Writer, cfg config.Config) slog.Handler {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}

	format := cfg.LogFormat
	if format == "auto" {
		format = "json"
		if f, ok := w.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
			format = "text"
		}
	}
	if format == "text" {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}

// openDB opens the configured database, creating its directory if needed.
func (a *app) openDB() (*persistence.DB, error) {
	if dir := filepath.Dir(a.cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	db, err := persistence.Open(a.cfg.DBPath)
	if err != nil {
		return nil, err
	}
	slog.Debug("database opened", "path", a.cfg.DBPath)
	return db, nil
}

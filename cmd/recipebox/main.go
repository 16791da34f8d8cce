// recipebox is a terminal client for a remote recipe catalog.
//
// Usage:
//
//	recipebox [tui|list|show|add] [--api URL] [--timeout D] [--verbose] [--quiet]
package main

import (
	"context"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/hammamikhairi/recipebox/internal/api"
	"github.com/hammamikhairi/recipebox/internal/controller"
	"github.com/hammamikhairi/recipebox/internal/logger"
	"github.com/hammamikhairi/recipebox/internal/recipe"
)

// Environment variables read before a command runs. main loads a .env file
// from the working directory first; flags override both.
const (
	envAPIURL   = "RECIPEBOX_API_URL"
	envTimeout  = "RECIPEBOX_TIMEOUT"
	envLogLevel = "RECIPEBOX_LOG_LEVEL"
)

const defaultLogFile = ".recipebox-logs/recipebox.log"

var (
	apiURL    string
	timeout   time.Duration
	verbose   bool
	quiet     bool
	logFile   string
	dropStale bool
)

var rootCmd = &cobra.Command{
	Use:   "recipebox",
	Short: "Browse and add recipes from a remote recipe catalog",
	Long: `recipebox talks to a Recipe Service over HTTP.

Without a subcommand it starts the interactive terminal client. The list,
show and add subcommands do the same work once and print the result.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return resolveEnv(cmd.Flags().Changed)
	},
	RunE: runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", api.DefaultBaseURL, "Recipe Service base URL (env "+envAPIURL+")")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "HTTP request timeout, 0 for none (env "+envTimeout+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Disable all logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", defaultLogFile, `File to write logs to (use "stderr" to log to console)`)
	rootCmd.PersistentFlags().BoolVar(&dropStale, "drop-stale", false, "Ignore fetch responses older than the latest request")
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// app holds the dependencies shared by every command.
type app struct {
	log    *logger.Logger
	store  *recipe.Store
	client *api.Client
	close  func()
}

func newApp() (*app, error) {
	level, err := logLevel()
	if err != nil {
		return nil, err
	}

	out, closeLog := openLog(logFile)

	// Third-party libraries logging through the standard log package end
	// up in the same place instead of on top of the UI.
	stdlog.SetOutput(out)
	stdlog.SetFlags(stdlog.Ltime)

	log := logger.New(level, out)

	var opts []api.ClientOption
	if timeout > 0 {
		opts = append(opts, api.WithHTTPTimeout(timeout))
	}

	a := &app{
		log:    log,
		store:  recipe.NewStore(log.Named("store")),
		client: api.NewClient(apiURL, log.Named("api"), opts...),
		close:  closeLog,
	}
	log.Info("recipebox starting (api=%s, timeout=%s, drop-stale=%t)", a.client.BaseURL(), timeout, dropStale)
	return a, nil
}

// controller builds the view controller over the shared store and client.
func (a *app) controller(opts ...controller.Option) *controller.Controller {
	if dropStale {
		opts = append(opts, controller.WithDropStaleFetches())
	}
	return controller.New(a.store, a.client, a.log.Named("controller"), opts...)
}

// resolveEnv fills the settings whose flags were not given from the
// environment. changed reports whether a flag was set on the command line.
func resolveEnv(changed func(name string) bool) error {
	if !changed("api") {
		apiURL = envOr(envAPIURL, api.DefaultBaseURL)
	}
	if !changed("timeout") {
		d, err := durationEnv(envTimeout)
		if err != nil {
			return err
		}
		timeout = d
	}
	return nil
}

// logLevel resolves the level from the environment, then the flags.
func logLevel() (logger.Level, error) {
	level, err := logger.ParseLevel(os.Getenv(envLogLevel))
	if err != nil {
		return level, fmt.Errorf("%s: %w", envLogLevel, err)
	}
	if verbose {
		level = logger.LevelVerbose
	}
	if quiet {
		level = logger.LevelOff
	}
	return level, nil
}

// openLog opens path for appending. Logs go to stderr when path is empty,
// "stderr", or cannot be opened.
func openLog(path string) (io.Writer, func()) {
	if path == "" || path == "stderr" {
		return os.Stderr, func() {}
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		_ = os.MkdirAll(dir, 0o755)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", path, err)
		return os.Stderr, func() {}
	}
	return f, func() { f.Close() }
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durationEnv(key string) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hanshat/infinitunes/internal/auth"
	"github.com/hanshat/infinitunes/internal/cache"
	"github.com/hanshat/infinitunes/internal/download"
	"github.com/hanshat/infinitunes/internal/library"
	"github.com/hanshat/infinitunes/internal/services"
	"github.com/hanshat/infinitunes/internal/shared"
	"github.com/hanshat/infinitunes/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config        *shared.Config
	catalog       services.Catalog
	store         *cache.HomeStore
	resolver      *download.Resolver
	authenticator *auth.Authenticator
	httpClient    *http.Client
	logger        *log.Logger
	output        io.Writer
	engine        *tasks.MediaEngine
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config        *shared.Config
	Catalog       services.Catalog
	Store         *cache.HomeStore
	Resolver      *download.Resolver
	Authenticator *auth.Authenticator
	Library       tasks.DownloadRecorder
	HTTPClient    *http.Client
	Logger        *log.Logger
	Output        io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Catalog == nil {
		opts.Catalog = services.NewSaavnService(opts.Config.API.BaseURL, opts.HTTPClient, opts.Config.API.RateLimit)
	}
	if opts.Store == nil {
		opts.Store = cache.NewHomeStore(opts.Catalog)
	}
	if opts.Resolver == nil {
		opts.Resolver = download.NewResolver(opts.HTTPClient, opts.Logger)
	}
	if opts.Authenticator == nil {
		opts.Authenticator = auth.NewAuthenticator(opts.HTTPClient)
	}

	engine := tasks.NewMediaEngine(opts.Catalog, opts.Resolver, opts.Library, opts.Config.Download.Dir)

	return &Runner{
		config:        opts.Config,
		catalog:       opts.Catalog,
		store:         opts.Store,
		resolver:      opts.Resolver,
		authenticator: opts.Authenticator,
		httpClient:    opts.HTTPClient,
		logger:        opts.Logger,
		output:        opts.Output,
		engine:        engine,
	}
}

// SetLogger swaps the runner's logger, for commands that must keep stderr clean.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, homeCommand, songCommand, albumCommand, searchCommand,
		downloadCommand, libraryCommand, authCommand, apiCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// openLibrary opens the library database from config and ensures the schema
// exists. Callers own the returned handle.
func (r *Runner) openLibrary() (*sql.DB, *library.DownloadRepository, error) {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open library database: %w", err)
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	if err := library.EnsureSchema(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to ensure library schema: %w", err)
	}

	return db, library.NewDownloadRepository(db), nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}

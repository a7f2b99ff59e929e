package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"

	"salonctl/internal/booking"
	"salonctl/internal/salon"
	"salonctl/internal/session"
	"salonctl/internal/shared"
	"salonctl/internal/tasks"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	db         *sql.DB
	store      *session.Store
	client     *salon.Client
	flow       *booking.Flow
	engine     *tasks.BookingEngine
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	DB         *sql.DB
	Store      *session.Store
	Client     *salon.Client
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
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
	// A nil *session.Store must not become a non-nil interface value.
	var tokens oauth2.TokenSource
	var record booking.Recorder
	if opts.Store != nil {
		tokens = opts.Store
		record = opts.Store
	}

	if opts.Client == nil {
		opts.Client = salon.NewClient(
			opts.Config.API.BaseURL,
			opts.Config.API.CheckInBaseURL,
			opts.HTTPClient,
			tokens,
		)
	}
	if opts.Store != nil {
		opts.Store.Bind(opts.Client)
	}

	engine := tasks.NewBookingEngine(opts.Client)

	return &Runner{
		config:     opts.Config,
		db:         opts.DB,
		store:      opts.Store,
		client:     opts.Client,
		flow:       booking.NewFlow(opts.Client, record, opts.Logger),
		engine:     engine,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

// SetLogger replaces the runner's logger.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
	if r.flow != nil {
		r.flow.SetLogger(logger)
	}
	if r.store != nil {
		r.store.SetLogger(logger)
	}
}

// requireAuth fails fast for commands that need a stored session.
func (r *Runner) requireAuth() error {
	if r.store == nil || !r.store.IsAuthenticated() {
		return fmt.Errorf("%w: run 'salonctl auth login' first", shared.ErrNotAuthenticated)
	}
	return nil
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, catalogCommand, availabilityCommand, bookCommand, appointmentCommand, profileCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
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

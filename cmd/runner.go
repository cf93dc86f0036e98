package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/ttufts/youtube-smart-playlists/internal/repositories"
	"github.com/ttufts/youtube-smart-playlists/internal/services"
	"github.com/ttufts/youtube-smart-playlists/internal/shared"
	"github.com/ttufts/youtube-smart-playlists/internal/tasks"
	"github.com/urfave/cli/v3"
)

// ClientFactory builds an authenticated YouTube client from a credentials file.
type ClientFactory func(ctx context.Context, credsPath string, requestsPerSecond float64) (services.Client, error)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	logger     *log.Logger
	output     io.Writer
	newClient  ClientFactory
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Logger     *log.Logger
	Output     io.Writer
	NewClient  ClientFactory
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
	if opts.NewClient == nil {
		opts.NewClient = NewYouTubeClient
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		logger:     opts.Logger,
		output:     opts.Output,
		newClient:  opts.NewClient,
	}
}

// NewYouTubeClient is the default [ClientFactory]: stored OAuth credentials plus the Data API bindings.
func NewYouTubeClient(ctx context.Context, credsPath string, requestsPerSecond float64) (services.Client, error) {
	httpClient, err := services.NewOAuthHTTPClient(ctx, credsPath)
	if err != nil {
		return nil, err
	}
	return services.NewYouTubeService(ctx, services.YouTubeOpts{
		HTTPClient:        httpClient,
		RequestsPerSecond: requestsPerSecond,
	})
}

// Before loads the config file named by --config, applies YTSP_* overrides and sets the log level.
//
// A missing config file is not an error; the embedded defaults apply.
func (r *Runner) Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	path := cmd.String("config")

	config, err := shared.LoadConfig(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		r.logger.Debug("config file not found, using defaults", "path", path)
		config = shared.DefaultConfig()
	case err != nil:
		return ctx, err
	}

	if err := config.ApplyEnv(); err != nil {
		return ctx, err
	}
	if err := config.Validate(); err != nil {
		return ctx, err
	}

	level, _ := shared.ParseLogLevel(config.Log.Level)
	if cmd.Bool("verbose") {
		level = log.DebugLevel
	}
	shared.SetLogLevel(r.logger, level)

	r.config = config
	r.configPath = path
	return ctx, nil
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		runCommand, authCommand, rulesCommand, subscriptionsCommand, todayCommand, cacheCommand, historyCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// credsPath returns the --creds flag or the configured token path.
func (r *Runner) credsPath(cmd *cli.Command) string {
	if p := cmd.String("creds"); p != "" {
		return p
	}
	return r.config.Credentials.YouTube.TokenPath
}

// uploadsCachePath returns the --uploads-cache flag or the configured cache path.
func (r *Runner) uploadsCachePath(cmd *cli.Command) string {
	if p := cmd.String("uploads-cache"); p != "" {
		return p
	}
	return r.config.Files.UploadsCache
}

// buildManager wires the client, uploads cache and resolver into a [tasks.Manager].
func (r *Runner) buildManager(ctx context.Context, cmd *cli.Command) (*tasks.Manager, *repositories.UploadsCache, error) {
	loc, err := r.config.Schedule.Location()
	if err != nil {
		return nil, nil, err
	}

	cache, err := repositories.LoadUploadsCache(r.uploadsCachePath(cmd))
	if err != nil {
		return nil, nil, err
	}

	client, err := r.newClient(ctx, r.credsPath(cmd), r.config.Credentials.YouTube.RequestsPerSecond)
	if err != nil {
		return nil, nil, err
	}

	manager := tasks.NewManager(client, tasks.NewResolver(client, cache, r.logger), r.logger)
	manager.Location = loc
	return manager, cache, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
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

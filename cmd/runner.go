package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tagx/internal/mp3"
	"github.com/desertthunder/tagx/internal/repositories"
	"github.com/desertthunder/tagx/internal/shared"
	"github.com/desertthunder/tagx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	logger     *log.Logger
	output     io.Writer
	input      io.Reader
	db         *sql.DB
	sessionID  string
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Logger     *log.Logger
	Output     io.Writer
	Input      io.Reader
	DB         *sql.DB // History database; opened from the config on first use when nil
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
	if opts.Input == nil {
		opts.Input = os.Stdin
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		logger:     opts.Logger,
		output:     opts.Output,
		input:      opts.Input,
		db:         opts.DB,
		sessionID:  shared.GenerateID(),
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		tagsCommand, showCommand, editCommand, importCommand, exportCommand, historyCommand, setupCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// Before loads the configuration named by --config, when it exists, and applies the log level.
func (r *Runner) Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.IsSet("config") || r.configPath == "" {
		r.configPath = cmd.String("config")
	}

	if r.configPath != "" {
		if _, err := os.Stat(r.configPath); err == nil {
			config, err := shared.LoadConfig(r.configPath)
			if err != nil {
				return ctx, err
			}
			r.config = config
		} else if cmd.IsSet("config") {
			return ctx, fmt.Errorf("%w: %s", shared.ErrMissingConfig, r.configPath)
		}
	}

	shared.SetLogLevel(r.logger, r.config.Log.Level)
	if cmd.Bool("verbose") {
		r.logger.SetLevel(log.DebugLevel)
	}
	return ctx, nil
}

// Close releases the history database.
func (r *Runner) Close() error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

// history opens the edit history, or returns [shared.ErrHistoryDisabled].
func (r *Runner) history() (*repositories.EditRepository, error) {
	if !r.config.History.Enabled {
		return nil, shared.ErrHistoryDisabled
	}
	if r.db == nil {
		db, err := shared.OpenDatabase(r.config.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to open history database: %w", err)
		}
		r.db = db
	}
	return repositories.NewEditRepository(r.db), nil
}

// newEngine builds a [tasks.TagEngine] from the configuration. When record is set, changes go to the
// edit history if it is enabled; a history that cannot be opened is logged and skipped.
func (r *Runner) newEngine(skipEmpty, record bool) (*tasks.TagEngine, *repositories.HistoryRecorder, error) {
	locale, err := r.config.Locale.Locale()
	if err != nil {
		return nil, nil, err
	}

	opts := tasks.EngineOpts{
		Locale:    locale,
		SkipEmpty: skipEmpty,
		Logger:    shared.WithLogger(r.logger, "session", r.sessionID),
	}

	if !record {
		return tasks.NewTagEngine(opts), nil, nil
	}

	repo, err := r.history()
	switch {
	case errors.Is(err, shared.ErrHistoryDisabled):
		r.logger.Debug("edit history disabled")
	case err != nil:
		r.logger.Warn("edit history unavailable", "error", err)
	default:
		recorder := repositories.NewHistoryRecorder(repo, r.sessionID, r.logger)
		opts.OnChange = recorder.Record
		return tasks.NewTagEngine(opts), recorder, nil
	}

	return tasks.NewTagEngine(opts), nil, nil
}

// loadFiles opens the mp3 files at path, a file or a directory. Paths are made absolute so the
// edit history names each file the same way from any working directory.
func (r *Runner) loadFiles(ctx context.Context, path string) ([]*mp3.File, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: path", shared.ErrMissingArgument)
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	files, err := mp3.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("loaded files", "path", path, "count", len(files))
	return files, nil
}

func (r *Runner) closeFiles(files []*mp3.File) {
	if err := mp3.CloseAll(files); err != nil {
		r.logger.Warn("failed to close files", "error", err)
	}
}

// saveOpts merges --backup and --workers over the editor configuration.
func (r *Runner) saveOpts(cmd *cli.Command) tasks.SaveOpts {
	opts := tasks.SaveOpts{
		NumWorkers: r.config.Editor.Workers,
		RateLimit:  r.config.Editor.RateLimit,
	}
	if r.config.Editor.Backup || cmd.Bool("backup") {
		opts.BackupSuffix = r.config.Editor.BackupSuffix
		if opts.BackupSuffix == "" {
			opts.BackupSuffix = ".bak"
		}
	}
	if cmd.IsSet("workers") {
		opts.NumWorkers = cmd.Int("workers")
	}
	return opts
}

// save writes files and prints one line per failure. Unsaved files make the command fail.
func (r *Runner) save(ctx context.Context, cmd *cli.Command, engine *tasks.TagEngine, files []tasks.File) error {
	progress := make(chan tasks.ProgressUpdate, len(files)+1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.logger.Debug(update.Message, "phase", update.Phase)
		}
	}()

	result, err := engine.SaveAll(ctx, progress, files, r.saveOpts(cmd))
	close(progress)
	<-done

	if result != nil {
		r.writePlain("Saved %d of %d files (%d unchanged)\n", result.Saved, result.Total, result.Skipped)
		for _, res := range result.Results {
			if res.Error != nil {
				r.writePlain("  ✗ %s: %v\n", res.Path, res.Error)
			}
		}
	}
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrSaveFailed, err)
	}
	if result.Failed > 0 {
		return fmt.Errorf("%w: %d files", shared.ErrSaveFailed, result.Failed)
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

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}

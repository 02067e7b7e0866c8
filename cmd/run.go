package cmd

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/tourpref/internal/app"
	"github.com/abhisek/tourpref/internal/config"
	"github.com/abhisek/tourpref/internal/console"
	"github.com/abhisek/tourpref/internal/identity"
	"github.com/abhisek/tourpref/internal/logger"
	"github.com/abhisek/tourpref/internal/questionbank"
	"github.com/abhisek/tourpref/internal/session"
	"github.com/abhisek/tourpref/internal/store"
	"github.com/abhisek/tourpref/internal/submission"
)

// runApp loads config, opens the store, starts a session for the signed-in
// tourist and runs it in the TUI, or line by line when plain is set or
// stdout is not a terminal.
func runApp(cmd *cobra.Command, plain bool) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st, dataDir, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	log, err := newLogger(cfg, dataDir)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	bank, err := loadBank(cfg.QuestionsFile)
	if err != nil {
		return err
	}

	plain = plain || !isatty.IsTerminal(os.Stdout.Fd())

	tuiNav := app.NewNavigator()
	var nav session.Navigator = tuiNav
	if plain {
		nav = session.NavigatorFunc(func(to session.Destination) {
			color.New(color.Faint).Fprintf(out, "Going to %s.\n", to)
		})
	}

	if cfg.User != "" {
		lock, err := store.AcquireSessionLock(dataDir, cfg.User)
		if errors.Is(err, store.ErrSessionLocked) {
			return fmt.Errorf("a questionnaire is already open for %s", cfg.User)
		}
		if err != nil {
			return err
		}
		defer lock.Release()
	}

	repo := st.EventRepo()
	client := submission.NewClient(cfg.Endpoint, &http.Client{Timeout: cfg.HTTPTimeout})

	ctrl, err := session.New(ctx, session.Deps{
		Identity:  identity.Static(cfg.User),
		Navigator: nav,
		Bank:      bank,
		Submitter: submission.WithLogging(client, repo, log),
		Recorder:  repo,
		Logger:    log,
	}, session.Config{
		QuestionsPerSession: cfg.QuestionsPerSession,
		OptionsPerQuestion:  cfg.OptionsPerQuestion,
	})
	if err != nil && !errors.Is(err, identity.ErrNotAuthenticated) {
		return fmt.Errorf("start session: %w", err)
	}

	if plain {
		if ctrl == nil {
			color.New(color.FgRed).Fprintln(out, "Not authenticated. Redirecting...")
			return err
		}
		_, err := console.New(ctrl, cmd.InOrStdin(), out).Run(ctx)
		return err
	}

	if err := app.Run(app.Options{Ctx: ctx, Controller: ctrl, Navigator: tuiNav}); err != nil {
		return err
	}
	if dest, ok := tuiNav.Destination(); ok {
		log.Info("questionnaire closed", zap.Stringer("destination", dest))
	}
	return nil
}

// newLogger builds the file logger, defaulting the log file to the data dir.
func newLogger(cfg *config.Config, dataDir string) (*zap.Logger, error) {
	if cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(dataDir, "tourpref.log")
	}
	log, err := logger.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return log, nil
}

// loadBank returns the built-in corpus, or the one at path when set.
func loadBank(path string) (*questionbank.Bank, error) {
	if path == "" {
		bank, err := questionbank.Default()
		if err != nil {
			return nil, fmt.Errorf("load built-in questions: %w", err)
		}
		return bank, nil
	}
	bank, err := questionbank.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load questions from %s: %w", path, err)
	}
	return bank, nil
}

// Command wild-wild-trader plays the Wild Wild Trader board game.
//
// Modes:
//  1. "play" (default) – interactive terminal game for one or two players
//  2. "turn" – submit inputs and resolve a single turn from the command line
//  3. "board", "maps", "sessions" – inspect maps and stored sessions
//
// Settings come from the environment (and a .env file when present); the
// global flags override them.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/wild-wild-trader/frontend/terminal"
	"github.com/wricardo/wild-wild-trader/game/config"
	"github.com/wricardo/wild-wild-trader/game/service"
	"github.com/wricardo/wild-wild-trader/game/session"
	"github.com/wricardo/wild-wild-trader/pkg/logger"
	"github.com/wricardo/wild-wild-trader/pkg/settings"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Wild Wild Trader"
)

func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Log.WithError(err).Warn("Error loading .env file")
	}

	s, err := settings.Load()
	if err != nil {
		logger.Log.WithError(err).Fatal("Invalid settings")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(s).Run(ctx, os.Args); err != nil {
		logger.Log.WithError(err).Error("Command failed")
		stop()
		os.Exit(1)
	}
}

// app carries the services built by the Before hook to the command actions.
type app struct {
	settings settings.Settings
	svc      service.GameService
	sessions *session.Manager
	close    func() error
}

// newApp builds the command tree. Flag defaults come from s.
func newApp(s settings.Settings) *cli.Command {
	a := &app{settings: s}

	return &cli.Command{
		Name:    "wild-wild-trader",
		Usage:   "turn-based shoot-out on a text map",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config-dir", Value: s.ConfigDir, Usage: "directory containing map configurations"},
			&cli.StringFlag{Name: "store", Value: s.SessionStore, Usage: "session store: file, sqlite or memory"},
			&cli.StringFlag{Name: "sessions-dir", Value: s.SessionsDir, Usage: "directory for the file session store"},
			&cli.StringFlag{Name: "sessions-db", Value: s.SessionsDB, Usage: "database path for the sqlite session store"},
			&cli.StringFlag{Name: "log-level", Value: s.LogLevel, Usage: "log level"},
			&cli.StringFlag{Name: "log-format", Value: s.LogFormat, Usage: "log format: text or json"},
			&cli.BoolFlag{Name: "debug", Usage: "shorthand for --log-level debug"},
		},
		Before: a.before,
		After:  a.after,
		// Bare invocation plays a new game on the default map.
		Action: a.play,
		Commands: []*cli.Command{
			{
				Name:   "play",
				Usage:  "play interactively in the terminal",
				Flags:  playFlags(),
				Action: a.play,
			},
			{
				Name:      "turn",
				Usage:     "submit inputs and resolve one turn",
				ArgsUsage: " ",
				Flags: []cli.Flag{
					mapFlag(),
					sessionFlag(),
					&cli.StringSliceFlag{Name: "input", Aliases: []string{"i"}, Usage: "player input as slot:direction, e.g. 1:right"},
					&cli.BoolFlag{Name: "json", Usage: "print the turn result as JSON"},
				},
				Action: a.turn,
			},
			{
				Name:  "board",
				Usage: "print the board of a session",
				Flags: []cli.Flag{
					sessionFlag(),
					&cli.BoolFlag{Name: "json", Usage: "print the board as JSON"},
				},
				Action: a.board,
			},
			{
				Name:   "maps",
				Usage:  "list available maps",
				Action: a.maps,
			},
			{
				Name:  "sessions",
				Usage: "manage stored sessions",
				Commands: []*cli.Command{
					{Name: "list", Usage: "list sessions", Action: a.listSessions},
					{Name: "delete", Usage: "delete a session", ArgsUsage: "<session-id>", Action: a.deleteSession},
					{
						Name:  "cleanup",
						Usage: "delete sessions not used within --max-age",
						Flags: []cli.Flag{
							&cli.DurationFlag{Name: "max-age", Value: s.SessionMaxAge, Usage: "retention window"},
						},
						Action: a.cleanupSessions,
					},
				},
			},
			{
				Name:  "version",
				Usage: "print the version",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					_, err := fmt.Fprintf(writer(cmd), "%s v%s\n", AppName, Version)
					return err
				},
			},
		},
	}
}

func playFlags() []cli.Flag {
	return []cli.Flag{
		mapFlag(),
		sessionFlag(),
		&cli.DurationFlag{Name: "tick", Value: terminal.DefaultTick, Usage: "turn interval"},
		&cli.StringFlag{Name: "log-file", Usage: "write logs here while the screen is active"},
	}
}

func mapFlag() cli.Flag {
	return &cli.StringFlag{Name: "map", Aliases: []string{"m"}, Usage: "map configuration id (default map when empty)"}
}

func sessionFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "session",
		Aliases: []string{"s"},
		Usage:   "session id (created when missing)",
		Sources: cli.EnvVars("WWT_SESSION"),
	}
}

// before applies the global flags and wires the services.
func (a *app) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	s := a.settings
	s.ConfigDir = cmd.String("config-dir")
	s.SessionStore = cmd.String("store")
	s.SessionsDir = cmd.String("sessions-dir")
	s.SessionsDB = cmd.String("sessions-db")
	s.LogLevel = cmd.String("log-level")
	s.LogFormat = cmd.String("log-format")
	if cmd.Bool("debug") {
		s.LogLevel = "debug"
	}
	if err := s.Validate(); err != nil {
		return ctx, err
	}
	a.settings = s

	logger.Init(logger.Options{Level: s.LogLevel, Format: s.LogFormat, Output: cmd.Root().ErrWriter})

	svc, sessions, closeFn, err := initializeServices(s)
	if err != nil {
		return ctx, fmt.Errorf("failed to initialize services: %w", err)
	}
	a.svc, a.sessions, a.close = svc, sessions, closeFn
	return ctx, nil
}

func (a *app) after(ctx context.Context, cmd *cli.Command) error {
	if a.close == nil {
		return nil
	}
	return a.close()
}

// initializeServices wires the config manager, the session store and the
// game service according to s.
func initializeServices(s settings.Settings) (service.GameService, *session.Manager, func() error, error) {
	configManager, err := config.NewManager(s.ConfigDir)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	closeFn := func() error { return nil }
	var sessionManager *session.Manager
	switch s.SessionStore {
	case settings.StoreMemory:
		sessionManager = session.NewManager()
	case settings.StoreSQLite:
		store, err := session.OpenSQLitePersistence(s.SessionsDB)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to open session database: %w", err)
		}
		sessionManager = session.NewManagerWithPersistence(store)
		closeFn = store.Close
	default:
		store, err := session.NewFilePersistence(s.SessionsDir)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to create session persistence: %w", err)
		}
		sessionManager = session.NewManagerWithPersistence(store)
	}

	if err := sessionManager.LoadPersistedSessions(); err != nil {
		logger.Component("main").WithError(err).Warn("Failed to load persisted sessions")
	}

	logger.Component("main").WithFields(map[string]any{
		"config_dir": s.ConfigDir,
		"store":      s.SessionStore,
	}).Debug("Services initialized.")

	return service.NewGameService(sessionManager, configManager), sessionManager, closeFn, nil
}

// sessionCleanupRoutine periodically removes sessions that have not been
// accessed within maxAge. It returns when ctx is done.
func sessionCleanupRoutine(ctx context.Context, manager *session.Manager, interval, maxAge time.Duration) {
	if maxAge <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := manager.CleanupExpiredSessions(maxAge); removed > 0 {
				logger.Component("main").WithField("removed", removed).Info("Cleaned up expired sessions")
			}
		}
	}
}

// openSession returns the session named id, creating it from mapID when it
// does not exist. An empty id always creates a new session.
func (a *app) openSession(ctx context.Context, id, mapID string) (*service.SessionInfo, error) {
	if id != "" {
		info, err := a.svc.GetSession(ctx, id)
		if err == nil {
			return info, nil
		}
		if !errors.Is(err, session.ErrSessionNotFound) {
			return nil, err
		}
	}
	return a.svc.CreateSession(ctx, mapID, id)
}

func writer(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

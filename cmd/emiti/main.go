package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"github.com/urfave/cli/v2"

	"github.com/negpdo/emiti/internal/app"
	"github.com/negpdo/emiti/internal/auth"
	"github.com/negpdo/emiti/internal/config"
	"github.com/negpdo/emiti/internal/db"
	"github.com/negpdo/emiti/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	cliApp := &cli.App{
		Name:  "emiti",
		Usage: "terminal inventory and user-registration tool",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "backend", Aliases: []string{"b"}, Value: cfg.Backend, Usage: "storage backend: file, sqlite or mysql"},
			&cli.StringFlag{Name: "data-dir", Value: cfg.DataDir, Usage: "data directory for the file backend"},
			&cli.StringFlag{Name: "db", Aliases: []string{"d"}, Value: cfg.DBPath, Usage: "SQLite database path"},
			&cli.StringFlag{Name: "mysql-dsn", Value: cfg.MySQLDSN, Usage: "MySQL DSN for the mysql backend"},
			&cli.StringFlag{Name: "session", Value: cfg.SessionPath, Usage: "session token file"},
			&cli.StringFlag{Name: "log", Aliases: []string{"l"}, Value: cfg.LogPath, Usage: "log file path"},
		},
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "start the inventory UI",
				Action: runMain,
			},
			{
				Name:   "welcome",
				Usage:  "show the landing screen and hand off to the main program",
				Action: runWelcome,
			},
			{
				Name:   "init",
				Usage:  "initialize the store and create an admin account",
				Action: runInit,
			},
		},
		// Bare "emiti" behaves like "emiti run".
		Action: runMain,
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// flagConfig folds parsed flags back into a Config.
func flagConfig(c *cli.Context) config.Config {
	return config.Config{
		Backend:     c.String("backend"),
		DataDir:     c.String("data-dir"),
		DBPath:      c.String("db"),
		MySQLDSN:    c.String("mysql-dsn"),
		SessionPath: c.String("session"),
		LogPath:     c.String("log"),
	}
}

// openStores opens the configured backend. The returned closer is nil for
// the file backend.
func openStores(cfg config.Config) (store.Inventory, store.Credentials, io.Closer, error) {
	switch cfg.Backend {
	case config.BackendFile:
		s := store.NewSnapshot(cfg.DataDir)
		return s, s, nil, nil
	case config.BackendSQLite:
		database, err := db.Open(db.DialectSQLite, cfg.DBPath)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := db.EnsureSchema(database, db.DialectSQLite); err != nil {
			database.Close()
			return nil, nil, nil, err
		}
		s := store.NewSQL(database)
		return s, s, database, nil
	case config.BackendMySQL:
		database, err := db.Open(db.DialectMySQL, cfg.MySQLDSN)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := db.EnsureSchema(database, db.DialectMySQL); err != nil {
			database.Close()
			return nil, nil, nil, err
		}
		s := store.NewSQL(database)
		return s, s, database, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

// runMain starts the inventory UI.
func runMain(c *cli.Context) error {
	cfg := flagConfig(c)
	if err := cfg.Validate(); err != nil {
		return err
	}

	closeLog, err := setupLogger(cfg.LogPath)
	if err != nil {
		return err
	}
	if closeLog != nil {
		defer closeLog()
	}

	inv, creds, closer, err := openStores(cfg)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	slog.Info("store ready", "backend", cfg.Backend)

	ui := app.New(os.Stdin, os.Stdout, inv, creds, cfg.SessionPath)
	return ui.Run(c.Context)
}

// runWelcome shows the landing screen. When the user chooses to enter, the
// main program is started as a detached child; the landing screen never
// waits on it.
func runWelcome(c *cli.Context) error {
	if !app.Welcome(os.Stdin, os.Stdout) {
		return nil
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locating executable: %w", err)
	}

	child := exec.Command(exe, "run")
	child.Stdin = os.Stdin
	child.Stdout = os.Stdout
	child.Stderr = os.Stderr
	if err := child.Start(); err != nil {
		return fmt.Errorf("starting main program: %w", err)
	}
	return child.Process.Release()
}

// runInit creates the backing store and an admin account with a generated
// password.
func runInit(c *cli.Context) error {
	cfg := flagConfig(c)
	if err := cfg.Validate(); err != nil {
		return err
	}

	_, creds, closer, err := openStores(cfg)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	password, err := generatePassword(16)
	if err != nil {
		return fmt.Errorf("generating password: %w", err)
	}

	ok, err := auth.Register(context.Background(), creds, "admin", password, "admin")
	if err != nil {
		return fmt.Errorf("creating admin account: %w", err)
	}
	if !ok {
		return fmt.Errorf("admin account already exists")
	}

	fmt.Printf("Store initialized (backend: %s).\n", cfg.Backend)
	fmt.Println()
	fmt.Println("Admin account created:")
	fmt.Println("  Username: admin")
	fmt.Printf("  Password: %s\n", password)
	fmt.Println()
	fmt.Println("Save this password, it cannot be recovered.")
	return nil
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/GokulM8/taskflow/internal/auth"
	"github.com/GokulM8/taskflow/internal/config"
	"github.com/GokulM8/taskflow/internal/db"
	"github.com/GokulM8/taskflow/internal/model"
	"github.com/GokulM8/taskflow/internal/tracker"
)

var (
	flagConfig string
	flagDB     string
	flagJSON   bool
	flagToken  string
)

var rootCmd = &cobra.Command{
	Use:           "taskflow",
	Short:         "Multi-user project and task tracker",
	Long:          `Track projects and tasks per user from the terminal, or serve them over a JSON API with taskflow serve.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// app bundles what a command needs: configuration, the open database and
// the tracker service over it.
type app struct {
	cfg    *config.Config
	db     *db.DB
	svc    *tracker.Service
	issuer *auth.Issuer
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagDB != "" {
		cfg.Database.Path = flagDB
	}
	if cfg.Database.Path == "" {
		path, err := db.DefaultPath()
		if err != nil {
			return nil, err
		}
		cfg.Database.Path = path
	}
	return cfg, nil
}

func openDB(cfg *config.Config) (*db.DB, error) {
	database, err := db.Open(cfg.Database.Path)
	if err != nil {
		return nil, err
	}
	if err := database.Init(); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

// openApp loads config and opens the database. The caller must close app.db.
func openApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, errors.New("jwt secret is not set: set TASKFLOW_JWT_SECRET or [auth] jwt-secret in " + config.DefaultFile)
	}
	ttl, err := cfg.TTL()
	if err != nil {
		return nil, err
	}
	issuer, err := auth.NewIssuer(cfg.Auth.JWTSecret, ttl)
	if err != nil {
		return nil, err
	}

	database, err := openDB(cfg)
	if err != nil {
		return nil, err
	}
	svc := tracker.New(database, auth.Bcrypt{Cost: cfg.Auth.BcryptCost}, issuer)
	return &app{cfg: cfg, db: database, svc: svc, issuer: issuer}, nil
}

// withApp opens the app, runs fn and closes the database.
func withApp(fn func(a *app) error) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.db.Close()
	return fn(a)
}

// session returns a context carrying the user named by --token or
// TASKFLOW_TOKEN. Without a token the context is anonymous and the tracker
// rejects the call.
func (a *app) session(ctx context.Context) (context.Context, error) {
	token := flagToken
	if token == "" {
		token = os.Getenv("TASKFLOW_TOKEN")
	}
	if token == "" {
		return ctx, nil
	}
	claims, err := a.issuer.Parse(token)
	if err != nil {
		return nil, err
	}
	return auth.WithUser(ctx, claims.UserID), nil
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// output prints v as JSON under --json, otherwise the rendered text.
func output(cmd *cobra.Command, v any, render func() string) error {
	if flagJSON {
		return printJSON(cmd.OutOrStdout(), v)
	}
	_, err := fmt.Fprint(cmd.OutOrStdout(), render())
	return err
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the taskflow database",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		database, err := openDB(cfg)
		if err != nil {
			return err
		}
		defer database.Close()
		fmt.Fprintf(cmd.OutOrStdout(), "Initialized taskflow database at %s\n", cfg.Database.Path)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default "+config.DefaultFile+")")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "database path (default ~/.taskflow/taskflow.db)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().StringVar(&flagToken, "token", "", "session token (default $TASKFLOW_TOKEN)")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(meCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(activityCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, model.ErrNotAuthenticated) {
			err = fmt.Errorf("%w: run taskflow login and pass the token with --token or TASKFLOW_TOKEN", err)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/GokulM8/taskflow/internal/api"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			if cmd.Flags().Changed("addr") {
				a.cfg.Server.Addr, _ = cmd.Flags().GetString("addr")
			}
			ttl, err := a.cfg.TTL()
			if err != nil {
				return err
			}

			logger := log.New(os.Stderr, "taskflow: ", log.LstdFlags)
			a.db.SetLogger(logger)

			router := api.NewRouter(a.svc, a.issuer, api.Options{
				CORSOrigins: a.cfg.Server.CORSOrigins,
				Logger:      logger,
				TokenTTL:    ttl,
				Middleware:  []gin.HandlerFunc{gin.Logger(), gin.Recovery()},
			})

			srv := &http.Server{
				Addr:              a.cfg.Server.Addr,
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() {
				logger.Printf("listening on %s (database %s)", srv.Addr, a.cfg.Database.Path)
				errc <- srv.ListenAndServe()
			}()

			select {
			case err := <-errc:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("serve: %w", err)
			case <-ctx.Done():
			}

			logger.Printf("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from config, :8080)")
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"learning-hub/internal/auth"
	web "learning-hub/internal/server"
	"learning-hub/internal/store"
	"learning-hub/internal/worker"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server and the import worker",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := store.NewHybridStore(cfg.RedisAddr, cfg.BadgerPath, logger)
		if err != nil {
			return err
		}
		defer st.Close()
		st.SetCacheTTL(cfg.CacheTTL)

		admins := auth.NewAdminStore(st.Badger())
		if cfg.AdminUsername != "" && cfg.AdminPassword != "" {
			_, created, err := admins.Ensure(ctx, cfg.AdminUsername, cfg.AdminPassword)
			if err != nil {
				return err
			}
			if created {
				logger.Info("Bootstrap admin created", zap.String("username", cfg.AdminUsername))
			}
		}
		sessions := auth.NewSessionStore(st.Redis(), cfg.SessionTTL)

		// Background goroutines must finish before the deferred st.Close.
		var wg sync.WaitGroup
		defer wg.Wait()
		defer stop()

		wg.Add(2)
		go func() {
			defer wg.Done()
			store.RunValueLogGC(ctx, st.Badger(), 5*time.Minute, logger)
		}()
		w := worker.NewWorker(st, st, logger)
		go func() {
			defer wg.Done()
			w.Start(ctx)
		}()

		srv, err := web.NewServer(st, st, admins, sessions, logger)
		if err != nil {
			return err
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Start(cfg.HTTPAddr)
		}()

		var serveErr error
		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				serveErr = err
			}
		case <-ctx.Done():
			logger.Info("Shutting down...")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Stop(shutdownCtx); err != nil {
			logger.Error("Shutdown failed", zap.Error(err))
		}

		stop()
		wg.Wait()
		logger.Info("Goodbye!")
		return serveErr
	},
}

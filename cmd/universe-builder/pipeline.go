package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"universe-builder/internal/auth"
	"universe-builder/internal/catalog"
	"universe-builder/internal/middleware"
	"universe-builder/internal/planet"
	"universe-builder/internal/server"
	serverHandlers "universe-builder/internal/server/handlers"
	"universe-builder/internal/shared/database"
	"universe-builder/internal/shared/redis"
	"universe-builder/internal/system"
	"universe-builder/internal/universe"

	"github.com/spf13/cobra"
)

// newUniverseService wires the pipeline. db may be nil, which disables
// publishing.
func (a *app) newUniverseService(db *database.DB, workers int) *universe.Service {
	var repo *universe.Repository
	var starRepo *catalog.Repository
	var planetRepo *planet.Repository
	if db != nil {
		repo = universe.NewRepository(db, a.logger)
		starRepo = catalog.NewRepository(db, a.logger)
		planetRepo = planet.NewRepository(db, a.logger)
	}
	return universe.NewService(
		repo,
		starRepo,
		catalog.NewService(a.logger),
		planet.NewService(planetRepo, workers, a.logger),
		a.cfg.Output,
		a.logger,
	)
}

func (a *app) buildUniverse(ctx context.Context, svc *universe.Service, input string, params universe.Params) (*universe.Universe, error) {
	in, err := openInput(input, "raw star catalog")
	if err != nil {
		return nil, err
	}
	defer in.Close()
	return svc.Build(ctx, in, params)
}

func (a *app) openDatabase(ctx context.Context) (*database.DB, error) {
	db, err := database.Connect(ctx, a.cfg.Database, a.logger)
	if err != nil {
		return nil, err
	}
	a.logger.Info("Running database migrations")
	if err := db.RunMigrations(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}

func (a *app) buildCmd() *cobra.Command {
	var flags universeFlags

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Run every stage and write the universe bundle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			input, params, workers := a.universeParams(cmd, &flags)
			svc := a.newUniverseService(nil, workers)

			u, err := a.buildUniverse(cmd.Context(), svc, input, params)
			if err != nil {
				return err
			}
			_, err = svc.Write(u, a.outDir(cmd, flags.outDir))
			return err
		},
	}

	flags.register(cmd)
	return cmd
}

func (a *app) publishCmd() *cobra.Command {
	var flags universeFlags
	var write bool

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Build the universe and store it in the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			input, params, workers := a.universeParams(cmd, &flags)

			db, err := a.openDatabase(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			svc := a.newUniverseService(db, workers)
			u, err := a.buildUniverse(ctx, svc, input, params)
			if err != nil {
				return err
			}
			if write {
				if _, err := svc.Write(u, a.outDir(cmd, flags.outDir)); err != nil {
					return err
				}
			}
			if err := svc.Publish(ctx, u); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "published universe %d (%s)\n", u.Metadata.ID, u.Metadata.Fingerprint)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&write, "write", false, "also write the bundle files")
	return cmd
}

func (a *app) serveCmd() *cobra.Command {
	var flags universeFlags
	var port int
	var persist bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Build the universe and serve it over a JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			input, params, workers := a.universeParams(cmd, &flags)
			if cmd.Flags().Changed("port") {
				a.cfg.Server.Port = port
			}

			var db *database.DB
			var dbPinger serverHandlers.Pinger
			if persist {
				var err error
				if db, err = a.openDatabase(ctx); err != nil {
					return err
				}
				defer db.Close()
				dbPinger = db
			}

			svc := a.newUniverseService(db, workers)
			u, err := a.buildUniverse(ctx, svc, input, params)
			if err != nil {
				return err
			}
			if svc.Persistent() {
				if err := svc.Publish(ctx, u); err != nil {
					return err
				}
			}
			store := universe.NewStore(u)

			rdb, err := redis.Connect(ctx, a.cfg.Redis, a.logger)
			if err != nil {
				return err
			}
			defer rdb.Close()

			var cache system.Cache
			var cachePinger serverHandlers.Pinger
			if rdb != nil {
				cache = system.NewRedisCache(rdb, a.cfg.Cache.TTL)
				cachePinger = rdb
			} else {
				cache = system.NewMemoryCache(a.cfg.Cache.TTL, a.cfg.Cache.CleanupInterval)
			}

			var issuer *auth.TokenIssuer
			if a.cfg.AdminConfigured() {
				if issuer, err = auth.NewTokenIssuer(a.cfg.Admin.JWTSecret, a.cfg.Admin.TokenTTL); err != nil {
					return err
				}
			} else {
				a.logger.Warn("JWT_SECRET not set or too short, admin endpoints are disabled")
			}

			systemService := system.NewService(store, cache, a.logger)
			health := serverHandlers.NewHealthHandler(dbPinger, cachePinger, store, a.logger)
			mux := server.NewRoutes(health, svc, systemService, store, issuer, a.logger).Setup()

			rateLimiter := middleware.NewRateLimiter(ctx, a.cfg.RateLimit, a.logger)
			cors := middleware.NewCORS(a.cfg.Frontend, a.logger)
			handler := cors.Middleware(rateLimiter.Middleware(mux))

			return server.New(a.cfg.Server.Port, handler, a.logger).Run(ctx)
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVarP(&port, "port", "p", 8080, "HTTP server port")
	cmd.Flags().BoolVar(&persist, "persist", false, "store builds in the configured database")
	return cmd
}

func (a *app) tokenCmd() *cobra.Command {
	var subject string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an admin token for the regenerate endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("ttl") {
				a.cfg.Admin.TokenTTL = ttl
			}
			issuer, err := auth.NewTokenIssuer(a.cfg.Admin.JWTSecret, a.cfg.Admin.TokenTTL)
			if err != nil {
				return err
			}

			token, expires, err := issuer.GenerateAdminToken(subject)
			if err != nil {
				return err
			}
			a.logger.Info("Admin token issued", "subject", subject, "expires_at", expires.Format(time.RFC3339))
			fmt.Fprintln(os.Stdout, token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "admin", "token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}

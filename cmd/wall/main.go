package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/parishnet/videowall/internal/adapters/httpapi"
	"github.com/parishnet/videowall/internal/adapters/provider"
	"github.com/parishnet/videowall/internal/config"
	"github.com/parishnet/videowall/internal/wall"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.SessionCode == "" {
		log.Fatal().Msg("session_code is required (VIDEOWALL_SESSION_CODE)")
	}

	api := httpapi.NewClient(cfg.ServerURL)
	cred, err := api.WallCredential(ctx, cfg.SessionCode)
	if err != nil {
		log.Fatal().Err(err).Str("code", cfg.SessionCode).Msg("failed to obtain wall credential")
	}
	log.Info().Str("module", "cmd.wall").
		Str("room", cred.Room).Str("identity", string(cred.Identity)).
		Msg("credential issued")

	lifecycle := wall.NewCallLifecycle(provider.Factory)
	call, err := lifecycle.Acquire(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to acquire call")
	}

	coord := wall.NewCoordinator(call, wall.CoordinatorOptions{
		RoomURL:           cred.ProviderURL,
		Credential:        cred.Credential,
		PageSize:          cfg.Wall.PageSize,
		ReconcileInterval: cfg.Wall.ReconcileInterval,
		LoadingDeadline:   cfg.Wall.LoadingDeadline,
	})

	// Headless render: log the grid state so an operator can watch the
	// wall fill up without a UI attached.
	go func() {
		t := time.NewTicker(10 * time.Second)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				snap := coord.Snapshot()
				log.Info().Str("module", "cmd.wall").
					Int("visible", snap.VisibleCount).
					Int("page", snap.PageIndex+1).
					Int("pages", snap.TotalPages).
					Int("tiles", len(snap.Tiles)).
					Msg("wall state")
			}
		}
	}()

	if err := coord.Run(ctx); err != nil {
		log.Error().Err(err).Msg("wall coordinator exited")
	}

	releaseCtx, releaseCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer releaseCancel()
	lifecycle.Release(releaseCtx)
	log.Info().Msg("Wall exited gracefully")
}

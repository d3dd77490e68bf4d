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

func parseNetworkHint(s string) wall.NetworkClass {
	switch s {
	case "very-slow":
		return wall.NetVerySlow
	case "slow":
		return wall.NetSlow
	case "medium":
		return wall.NetMedium
	case "fast":
		return wall.NetFast
	default:
		return wall.NetUnknown
	}
}

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
	if cfg.SessionCode == "" || cfg.ChurchName == "" {
		log.Fatal().Msg("session_code and church_name are required")
	}

	api := httpapi.NewClient(cfg.ServerURL)
	join, err := api.JoinService(ctx, cfg.SessionCode, cfg.ChurchName)
	if err != nil {
		log.Fatal().Err(err).Str("code", cfg.SessionCode).Msg("failed to join service")
	}
	log.Info().Str("module", "cmd.church").
		Str("service", join.Service.Name).Str("church", join.Church.Name).
		Str("session", string(join.SessionID)).
		Msg("admitted into service")

	call, err := provider.Factory()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create call")
	}

	pub := wall.NewPublisher(call, wall.PublisherOptions{
		NetworkHint:      parseNetworkHint(cfg.Publish.NetworkHint),
		DegradeThreshold: cfg.Publish.DegradeThreshold,
	})

	if err := pub.Start(ctx, join.ProviderURL, join.Credential); err != nil {
		log.Fatal().Err(err).Msg("failed to start publishing")
	}

	if err := pub.Run(ctx); err != nil {
		log.Error().Err(err).Msg("publisher exited")
	}

	leaveCtx, leaveCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer leaveCancel()
	if err := api.LeaveService(leaveCtx, string(join.SessionID)); err != nil {
		log.Warn().Err(err).Msg("failed to record leave")
	}
	log.Info().Msg("Church exited gracefully")
}

package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/SriCharanAitharaju/LETSPLAYAU/internal/common/logtrace"
	"github.com/SriCharanAitharaju/LETSPLAYAU/internal/courtsrv/booking"
	"github.com/SriCharanAitharaju/LETSPLAYAU/internal/courtsrv/catalog"
	"github.com/SriCharanAitharaju/LETSPLAYAU/internal/courtsrv/config"
	"github.com/SriCharanAitharaju/LETSPLAYAU/internal/courtsrv/notify"
	"github.com/SriCharanAitharaju/LETSPLAYAU/internal/courtsrv/server"
	"github.com/SriCharanAitharaju/LETSPLAYAU/internal/courtsrv/userstore"
)

func init() {
	logtrace.InitLogger()
}

type cmdoptions struct {
	configFile string
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx); err != nil {
		log.Error().Err(err).Msg("server failed")
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	slog := log.With().Str("state", "init").Logger()

	// Local overrides for development; absence is not an error.
	_ = godotenv.Load()

	opt := parseFlags()

	if opt.configFile == "" {
		slog.Info().Msg("no config file given, using defaults")
		config.LoadDefaultConfig()
	} else {
		slog.Info().Str("config_file", opt.configFile).Msg("loading config file")
		if err := config.LoadConfig(opt.configFile); err != nil {
			return fmt.Errorf("loading config file: %w", err)
		}
	}
	if config.Config().ServerPort == "" {
		return fmt.Errorf("server port not defined")
	}

	serverErrors, shutdownServer, err := createCourtServer(ctx)
	if err != nil {
		return fmt.Errorf("creating court server: %w", err)
	}

	// Channel to listen for an interrupt or terminate signal from the OS.
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Wait forever until shutdown
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		slog.Info().Str("signal", sig.String()).Msg("shutdown signal received")
		shutdownServer()
	}

	slog.Info().Msg("server stopped")
	return nil
}

func createCourtServer(ctx context.Context) (chan error, func(), error) {
	slog := log.With().Str("state", "init").Logger()
	cfg := config.Config()

	registry := catalog.NewRegistry(catalog.DefaultCourts())
	broadcaster := notify.NewBroadcaster(cfg.Stream.BufferSize)
	sched := booking.NewScheduler(cfg.Session.GetWarningLeadOrDefault())
	manager := booking.NewManager(registry, sched, broadcaster, cfg.Session.GetDurationOrDefault())

	s, err := server.CreateNewServer(manager, broadcaster, userstore.NewStore())
	if err != nil {
		return nil, nil, fmt.Errorf("creating server: %w", err)
	}
	s.MountHandlers()

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           s.Router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrors := make(chan error, 1)

	// Start the service listening for requests.
	go func() {
		slog.Info().Str("port", cfg.ServerPort).Msg("server started")
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := func() {
		// Give outstanding requests 5 seconds to complete and initiate the shutdown.
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error().Err(err).Msg("could not stop server gracefully")
			if err := srv.Close(); err != nil {
				slog.Error().Err(err).Msg("could not stop server")
			}
		}
		broadcaster.Shutdown()
	}

	return serverErrors, shutdown, nil
}

const DefaultConfigFile = ""

func parseFlags() cmdoptions {
	var opt cmdoptions
	flag.StringVar(&opt.configFile, "config", DefaultConfigFile, "Path to the config file (defaults built in when omitted)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [options]\n\n", os.Args[0])
		fmt.Println("Options:")
		flag.PrintDefaults()
	}
	flag.Parse()
	return opt
}

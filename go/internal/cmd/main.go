package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/frontoffice/go/internal/events"
	"github.com/mcdev12/frontoffice/go/internal/frontoffice"
	"github.com/mcdev12/frontoffice/go/internal/gateway"
	"github.com/mcdev12/frontoffice/go/internal/ledger"
	"github.com/mcdev12/frontoffice/go/internal/offers"
	"github.com/mcdev12/frontoffice/go/internal/random"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	cfg, err := loadConfig(getEnv("CONFIG_PATH", "config.yaml"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	seed := getEnvAsInt64("RNG_SEED", 0)
	if seed == 0 {
		seed, err = random.NewSeed()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to generate seed")
		}
	}
	rng := random.New(seed)
	log.Info().Int64("seed", seed).Msg("randomness source seeded")

	clock := clockwork.NewRealClock()
	services, err := setupServices(cfg, clock, rng)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up services")
	}

	loadDatasets(cfg, services)

	// Optional Postgres persistence: restore the last snapshots on
	// boot when a database is reachable, and save them again on
	// shutdown.
	var ledgerRepo *ledger.Repository
	var offersRepo *offers.Repository
	if database, err := setupDatabase(); err != nil {
		log.Warn().Err(err).Msg("running without database persistence")
	} else {
		defer database.Close()
		ledgerRepo = ledger.NewRepository(database)
		offersRepo = offers.NewRepository(database)
		restoreSnapshots(context.Background(), ledgerRepo, offersRepo, services)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	wsHandler := setupGateway(ctx, services.Bus)

	server := setupServer(services, wsHandler)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("server listening")
		if err := server.ListenAndServe(); err != nil {
			log.Error().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	if err := server.Shutdown(context.Background()); err != nil {
		log.Error().Err(err).Msg("failed to shut down server")
	}
	saveSnapshots(context.Background(), ledgerRepo, offersRepo, services)
}

// restoreSnapshots loads the persisted ledger and offer state. A
// missing snapshot leaves the freshly initialized state in place.
func restoreSnapshots(ctx context.Context, ledgerRepo *ledger.Repository, offersRepo *offers.Repository, services *Services) {
	if snap, err := ledgerRepo.LoadSnapshot(ctx); err != nil {
		log.Warn().Err(err).Msg("no ledger snapshot restored")
	} else {
		services.Ledger.Restore(*snap)
		log.Info().Int("picks", len(snap.Picks)).Msg("ledger snapshot restored")
	}

	if snap, err := offersRepo.LoadSnapshot(ctx); err != nil {
		log.Warn().Err(err).Msg("no offers snapshot restored")
	} else if len(snap.Offers) > 0 {
		services.Offers.Restore(*snap)
		log.Info().Int("offers", len(snap.Offers)).Msg("offers snapshot restored")
	}
}

// saveSnapshots persists the ledger and offer state. No-op when the
// process is running without a database.
func saveSnapshots(ctx context.Context, ledgerRepo *ledger.Repository, offersRepo *offers.Repository, services *Services) {
	if ledgerRepo == nil || offersRepo == nil {
		return
	}
	if err := ledgerRepo.SaveSnapshot(ctx, services.Ledger.Save()); err != nil {
		log.Error().Err(err).Msg("failed to save ledger snapshot")
	} else {
		log.Info().Msg("ledger snapshot saved")
	}
	if err := offersRepo.SaveSnapshot(ctx, services.Offers.Save()); err != nil {
		log.Error().Err(err).Msg("failed to save offers snapshot")
	} else {
		log.Info().Msg("offers snapshot saved")
	}
}

// loadDatasets applies the optional pick-ownership and front-office
// datasets. Missing files are non-fatal.
func loadDatasets(cfg *Config, services *Services) {
	var pickDataset *ledger.PickOwnershipDataset
	if path := cfg.Datasets.PickOwnership; path != "" {
		dataset, err := ledger.LoadPickOwnershipDataset(path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("pick ownership dataset unavailable")
		} else {
			pickDataset = dataset
		}
	}

	if path := cfg.Datasets.FrontOffices; path != "" {
		dataset, err := frontoffice.LoadProfileDataset(path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("front office dataset unavailable")
		} else {
			services.Registry.ApplyDataset(dataset)
		}
	}

	teams := make([]uuid.UUID, 0)
	for _, profile := range services.Registry.Profiles() {
		teams = append(teams, profile.TeamID)
	}
	if len(teams) == 0 {
		log.Warn().Msg("no teams registered, skipping ledger initialization")
		return
	}
	services.Ledger.InitializeForSeason(cfg.Season.Year, teams, pickDataset)
}

// setupGateway wires the WebSocket gateway. When NATS is unreachable
// the gateway falls back to consuming the in-process bus directly.
func setupGateway(ctx context.Context, bus *events.Bus) *gateway.WebSocketHandler {
	cm := gateway.NewConnectionManager(gateway.DefaultConnectionConfig())
	go cm.Start(ctx)

	relayCfg := events.DefaultJetStreamConfig()
	relayCfg.URL = getEnv("NATS_URL", relayCfg.URL)

	relay, err := events.NewJetStreamRelay(relayCfg)
	if err != nil {
		log.Warn().Err(err).Msg("NATS unavailable, broadcasting from in-process bus")
		bus.SubscribeAll(gateway.BusHandler(cm))
		return gateway.NewWebSocketHandler(cm)
	}
	bus.SubscribeAll(relay.Handler())
	go func() {
		<-ctx.Done()
		relay.Close()
	}()

	consumerCfg := gateway.DefaultJetStreamConsumerConfig()
	consumerCfg.URL = relayCfg.URL
	consumer, err := gateway.NewEventConsumer(cm, consumerCfg)
	if err != nil {
		log.Warn().Err(err).Msg("failed to start event consumer, broadcasting from in-process bus")
		bus.SubscribeAll(gateway.BusHandler(cm))
		return gateway.NewWebSocketHandler(cm)
	}
	go func() {
		if err := consumer.Start(ctx); err != nil {
			log.Error().Err(err).Msg("event consumer stopped")
		}
	}()

	return gateway.NewWebSocketHandler(cm)
}

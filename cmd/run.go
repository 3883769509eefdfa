package cmd

import (
	"context"
	"fmt"
	"time"

	"stakemax/config"
	"stakemax/database"
	"stakemax/domain/interfaces"
	"stakemax/domain/services"
	"stakemax/infrastructure"
	"stakemax/repository"

	log "github.com/sirupsen/logrus"
)

// Core bundles the wired boundary services consumed by a transport layer
type Core struct {
	Accounts interfaces.AccountService
	Betting  interfaces.BettingService
	Stats    interfaces.StatsService
	Notifier *infrastructure.StatsNotifier
}

// Run initializes the betting core and blocks until the context is cancelled
func Run(ctx context.Context) error {
	log.Info("Starting stakemax core...")

	cfg := config.Get()

	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	log.WithField("servers", cfg.NATSServers).Info("Connecting to NATS...")
	natsClient := infrastructure.NewNATSClient(cfg.NATSServers)
	if err := natsClient.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to NATS: %w", err)
	}
	defer natsClient.Close()

	if _, err := Build(db, natsClient); err != nil {
		return err
	}

	log.Info("Stakemax core ready")
	<-ctx.Done()

	log.Info("Stakemax core stopped")
	return nil
}

// Build wires the repositories, services and notifier on top of an existing
// database connection. The NATS client may be nil, in which case events stay
// in-process.
func Build(db *database.DB, natsClient *infrastructure.NATSClient) (*Core, error) {
	subjectMapper := infrastructure.NewEventSubjectMapper("stakemax")

	var basePublisher interfaces.EventPublisher
	var natsPublisher *infrastructure.NATSEventPublisher
	if natsClient != nil {
		natsPublisher = infrastructure.NewNATSEventPublisher(natsClient, subjectMapper)
		basePublisher = natsPublisher
	} else {
		basePublisher = infrastructure.NewNoopEventPublisher()
	}

	uowFactory := repository.NewUnitOfWorkFactory(db, func() interfaces.TransactionalEventPublisher {
		return infrastructure.NewTransactionalPublisher(basePublisher)
	})

	// Provably-fair source for outcome resolution; the commitment is logged
	// so draws can be audited after the seed is disclosed
	serverSeed, err := services.GenerateServerSeed()
	if err != nil {
		return nil, fmt.Errorf("failed to generate server seed: %w", err)
	}
	log.WithField("commitment", services.SeedCommitment(serverSeed)).Info("Outcome seed committed")

	resolver := services.NewOutcomeGenerator(services.NewFairSource(serverSeed, "stakemax"))
	jackpotRng := services.NewSeededSource(time.Now().UnixNano())

	core := &Core{
		Accounts: services.NewAccountService(uowFactory),
		Betting:  services.NewBettingService(uowFactory, resolver, jackpotRng),
		Stats:    services.NewStatsService(uowFactory),
	}

	core.Notifier = infrastructure.NewStatsNotifier(core.Stats, natsClient, subjectMapper)
	if natsPublisher != nil {
		core.Notifier.Register(natsPublisher)
	}

	return core, nil
}

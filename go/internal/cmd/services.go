package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/frontoffice/go/internal/events"
	"github.com/mcdev12/frontoffice/go/internal/frontoffice"
	"github.com/mcdev12/frontoffice/go/internal/league"
	"github.com/mcdev12/frontoffice/go/internal/ledger"
	"github.com/mcdev12/frontoffice/go/internal/negotiation"
	"github.com/mcdev12/frontoffice/go/internal/offers"
	"github.com/mcdev12/frontoffice/go/internal/random"
	"github.com/mcdev12/frontoffice/go/internal/season"
	"github.com/mcdev12/frontoffice/go/internal/trade"
)

type Services struct {
	Bus          *events.Bus
	Ledger       *ledger.App
	Engine       *trade.Engine
	Offers       *offers.App
	Negotiations *negotiation.App
	Registry     *frontoffice.Registry
	Directory    *league.Directory
	Contracts    *league.ContractService
	Season       *season.Driver
}

func setupServices(cfg *Config, clock clockwork.Clock, rng random.Source) (*Services, error) {
	// Wire up dependency injection chain, leaf-first:
	// bus → ledger → league collaborators → engine → offers/negotiation

	userTeamID, err := uuid.Parse(cfg.Season.UserTeamID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse user team id: %w", err)
	}

	bus := events.NewBus()
	ledgerApp := ledger.NewApp(clock, bus)

	registry := frontoffice.NewRegistry()
	directory := league.NewDirectory()
	contracts := league.NewContractService(directory, cfg.Cap, clock)
	valuation := league.NewValuationService()
	validator := league.NewTradeValidator(directory, valuation, ledgerApp)
	evaluator := league.NewTradeEvaluator(validator, registry, ledgerApp)

	engine := trade.NewEngine(ledgerApp, validator, contracts, clock, rng, bus, cfg.Trade)

	offersApp := offers.NewApp(
		directory, directory, valuation, ledgerApp, registry,
		engine, clock, rng, bus, cfg.Offers, userTeamID,
	)

	negotiationApp := negotiation.NewApp(
		evaluator, engine, registry, directory,
		clock, rng, bus, cfg.Negotiation,
	)
	deadline, err := cfg.TradeDeadlineTime()
	if err != nil {
		return nil, err
	}
	if !deadline.IsZero() {
		negotiationApp.SetTradeDeadline(deadline)
	}

	driver := season.NewDriver(clock, offersApp, negotiationApp)

	return &Services{
		Bus:          bus,
		Ledger:       ledgerApp,
		Engine:       engine,
		Offers:       offersApp,
		Negotiations: negotiationApp,
		Registry:     registry,
		Directory:    directory,
		Contracts:    contracts,
		Season:       driver,
	}, nil
}

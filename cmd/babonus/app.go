package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	rpgevents "github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/babonus/internal/clients/external"
	"github.com/KirkDiggler/babonus/internal/config"
	"github.com/KirkDiggler/babonus/internal/engine"
	"github.com/KirkDiggler/babonus/internal/entities/babonus"
	"github.com/KirkDiggler/babonus/internal/entities/document"
	"github.com/KirkDiggler/babonus/internal/entities/scene"
	"github.com/KirkDiggler/babonus/internal/orchestrators/bonus"
	"github.com/KirkDiggler/babonus/internal/orchestrators/roll"
	"github.com/KirkDiggler/babonus/internal/pkg/clock"
	"github.com/KirkDiggler/babonus/internal/pkg/idgen"
	"github.com/KirkDiggler/babonus/internal/proficiency"
	"github.com/KirkDiggler/babonus/internal/redis"
	"github.com/KirkDiggler/babonus/internal/repositories/bonuses"
	"github.com/KirkDiggler/babonus/internal/spatial"
)

// app wires every component for one scene
type app struct {
	scene    *scene.Scene
	index    *document.Index
	trees    *proficiency.Trees
	aura     *spatial.Engine
	events   *rpgevents.Bus
	engine   engine.Engine
	rolls    roll.Service
	bonuses  bonus.Service
	repo     bonuses.Repository
	closeFns []func() error
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{}

	s, err := loadScene(cfg.ScenePath)
	if err != nil {
		return nil, err
	}
	a.scene = s
	a.index = s.Index()

	a.trees = proficiency.NewTrees()
	if cfg.SRDEnabled {
		hydrateTrees(ctx, cfg, a.trees)
	}

	a.aura, err = spatial.NewEngine(&spatial.Config{Scene: s})
	if err != nil {
		return nil, fmt.Errorf("failed to create aura engine: %w", err)
	}

	registry, err := engine.DefaultRegistry(a.trees)
	if err != nil {
		return nil, fmt.Errorf("failed to create filter registry: %w", err)
	}

	a.engine, err = engine.New(&engine.Config{Registry: registry, Aura: a.aura})
	if err != nil {
		return nil, fmt.Errorf("failed to create filter engine: %w", err)
	}

	a.events = newEventBus()
	a.rolls, err = roll.NewOrchestrator(&roll.Config{Engine: a.engine, Events: a.events})
	if err != nil {
		return nil, fmt.Errorf("failed to create roll orchestrator: %w", err)
	}

	a.repo, err = a.repository(cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.bonuses, err = bonus.NewOrchestrator(&bonus.Config{
		Resolver:    a.index,
		Repository:  a.repo,
		Registry:    registry,
		IDGenerator: idgen.NewRandom(),
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create bonus orchestrator: %w", err)
	}

	hydrated, err := a.bonuses.HydrateDocuments(ctx, &bonus.HydrateDocumentsInput{
		Documents: a.index.Documents(),
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to load stored bonuses: %w", err)
	}

	slog.Info("scene loaded",
		"scene", s.ID,
		"tokens", len(s.Tokens),
		"templates", len(s.Templates),
		"hydrated", hydrated.Hydrated,
		"store", cfg.Store)

	return a, nil
}

func (a *app) repository(cfg *config.Config) (bonuses.Repository, error) {
	if cfg.Store != config.StoreRedis {
		return bonuses.NewInMemory(clock.New()), nil
	}

	opts := &redis.Options{PoolSize: cfg.RedisPoolSize, UseTLS: cfg.RedisTLS}
	var (
		client redis.Client
		err    error
	)
	if cfg.RedisSentinelMaster != "" {
		client, err = redis.NewFailoverClient(cfg.RedisSentinelMaster, cfg.RedisSentinelAddrs, opts)
	} else {
		client, err = redis.NewClient(cfg.RedisAddr, opts)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create redis client: %w", err)
	}
	a.closeFns = append(a.closeFns, client.Close)

	return bonuses.NewRedis(&bonuses.RedisConfig{Client: client})
}

// Close releases external connections
func (a *app) Close() {
	for _, fn := range a.closeFns {
		if err := fn(); err != nil {
			slog.Warn("failed to close connection", "error", err)
		}
	}
	a.closeFns = nil
}

// newEventBus returns the bus rolls are published on before they are made.
// Every roll kind is traced at debug level.
func newEventBus() *rpgevents.Bus {
	bus := rpgevents.NewBus()
	for _, kind := range babonus.Types {
		name := roll.EventName(kind)
		bus.SubscribeFunc(name, 100, func(_ context.Context, event rpgevents.Event) error {
			rc, ok := roll.RollFromEvent(event)
			if !ok {
				return nil
			}
			slog.Debug("roll ready",
				"event", name,
				"kind", rc.Kind,
				"parts", rc.Parameters.Parts,
				"optionals", len(rc.Optionals))
			return nil
		})
	}
	return bus
}

var sceneIDs idgen.Generator = idgen.NewUUID("Scene")

func loadScene(path string) (*scene.Scene, error) {
	if path == "" {
		s := &scene.Scene{
			ID:   sceneIDs.Generate(),
			Name: "Empty Scene",
			Grid: scene.Grid{Size: 100, Distance: 5, Units: "ft"},
		}
		return s, s.Link()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene: %w", err)
	}
	defer func() { _ = f.Close() }()

	s, err := scene.Load(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load scene %s: %w", path, err)
	}
	if s.ID == "" {
		s.ID = sceneIDs.Generate()
		for _, t := range s.Templates {
			t.SetScene(s.ID)
		}
	}
	return s, nil
}

func hydrateTrees(ctx context.Context, cfg *config.Config, trees *proficiency.Trees) {
	client, err := external.New(&external.Config{
		BaseURL:     cfg.SRDBaseURL,
		HTTPTimeout: cfg.SRDTimeout,
		CacheTTL:    cfg.SRDCacheTTL,
	})
	if err != nil {
		slog.Warn("skipping SRD hydration", "error", err)
		return
	}

	added, err := trees.Hydrate(ctx, client)
	if err != nil {
		slog.Warn("SRD hydration incomplete", "added", added, "error", err)
		return
	}
	slog.Info("hydrated proficiency trees", "added", added)
}

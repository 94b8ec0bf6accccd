// Package external is the location for the dnd5e-api client
package external

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/fadedpez/dnd5e-api/clients/dnd5e"
	"github.com/fadedpez/dnd5e-api/entities"

	"github.com/KirkDiggler/babonus/internal/errors"
	"github.com/KirkDiggler/babonus/internal/proficiency"
)

// Client defines the interface for SRD lookups
type Client interface {
	// ListCategoryItems returns the item keys of an SRD equipment category,
	// e.g. "martial-weapons" or "artisans-tools"
	ListCategoryItems(ctx context.Context, category string) ([]string, error)
}

var _ proficiency.CategorySource = (Client)(nil)

// categoryAPI is the part of dnd5e.Interface the client reads.
type categoryAPI interface {
	GetEquipmentCategory(key string) (*entities.EquipmentCategory, error)
}

type client struct {
	api categoryAPI
}

// Config holds the configuration for the SRD client
type Config struct {
	// BaseURL for the D&D 5e API (optional, defaults to https://www.dnd5eapi.co/api/2014/)
	BaseURL string
	// HTTPTimeout for API requests (optional, defaults to 30 seconds)
	HTTPTimeout time.Duration
	// CacheTTL for the cached client (optional, defaults to 24 hours)
	CacheTTL time.Duration
}

// Validate validates the Config and sets defaults if not provided.
func (cfg *Config) Validate() error {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.dnd5eapi.co/api/2014/"
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = 30 * time.Second
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 24 * time.Hour
	}
	if cfg.HTTPTimeout < 0 || cfg.CacheTTL < 0 {
		return errors.InvalidArgument("timeouts cannot be negative")
	}
	return nil
}

// New creates a new external client with the given configuration.
func New(cfg *Config) (Client, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	baseClient, err := dnd5e.NewDND5eAPI(&dnd5e.DND5eAPIConfig{
		Client:  &http.Client{Timeout: cfg.HTTPTimeout},
		BaseURL: cfg.BaseURL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create D&D 5e API client")
	}

	return &client{api: dnd5e.NewCachedClient(baseClient, cfg.CacheTTL)}, nil
}

func (c *client) ListCategoryItems(ctx context.Context, category string) ([]string, error) {
	if category == "" {
		return nil, errors.InvalidArgument("category is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "lookup canceled")
	}

	equipmentCategory, err := c.api.GetEquipmentCategory(category)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable,
			"failed to get equipment category "+category+" from D&D 5e API")
	}
	if equipmentCategory == nil {
		return nil, errors.NotFoundf("equipment category %s not found", category)
	}

	keys := make([]string, 0, len(equipmentCategory.Equipment))
	for _, ref := range equipmentCategory.Equipment {
		if ref == nil || ref.Key == "" {
			continue
		}
		keys = append(keys, ref.Key)
	}

	slog.Debug("listed SRD category", "category", category, "items", len(keys))
	return keys, nil
}

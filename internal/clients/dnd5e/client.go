package dnd5e

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/fadedpez/dnd5e-api/clients/dnd5e"
	apiEntities "github.com/fadedpez/dnd5e-api/entities"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/tabletop-engine/internal/domain/rulebook"
	dnderr "github.com/KirkDiggler/tabletop-engine/internal/errors"
)

// maxConcurrentRequests bounds parallel level lookups against the public API
const maxConcurrentRequests = 4

// Client builds rulebook classes from the D&D 5e API
type Client interface {
	// LoadClass fetches a class with its feature unlocks for levels 1 through maxLevel
	LoadClass(ctx context.Context, key string, maxLevel int) (*rulebook.Class, error)

	// LoadCatalog loads every key into catalog
	LoadCatalog(ctx context.Context, catalog *rulebook.Catalog, keys []string, maxLevel int) error
}

type client struct {
	api    API
	logger *zap.Logger
}

// Config holds configuration for the client
type Config struct {
	HttpClient *http.Client
	BaseURL    string // optional, overrides the API host (e.g. a local mirror)
	API        API    // optional, replaces the HTTP client entirely
	Logger     *zap.Logger
}

// New creates a new client
func New(cfg *Config) (Client, error) {
	if cfg == nil {
		return nil, dnderr.InvalidArgument("dnd5e client config is required")
	}

	c := &client{
		api:    cfg.API,
		logger: cfg.Logger,
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}

	if c.api == nil {
		httpClient, err := hostClient(cfg.HttpClient, cfg.BaseURL)
		if err != nil {
			return nil, err
		}
		api, err := dnd5e.NewDND5eAPI(&dnd5e.DND5eAPIConfig{
			Client: httpClient,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create dnd5e api client: %w", err)
		}
		c.api = api
	}

	return c, nil
}

// LoadClass implements Client.LoadClass. Levels are fetched in parallel.
func (c *client) LoadClass(ctx context.Context, key string, maxLevel int) (*rulebook.Class, error) {
	if key == "" {
		return nil, dnderr.InvalidArgument("class key is required")
	}
	if maxLevel < 1 {
		return nil, dnderr.InvalidArgumentf("max level must be at least 1, got %d", maxLevel)
	}

	apiClass, err := c.api.GetClass(key)
	if err != nil {
		return nil, fmt.Errorf("failed to get class %s: %w", key, err)
	}
	if apiClass == nil {
		return nil, dnderr.NotFoundf("class %s not found", key).WithMeta("class_key", key)
	}

	levels := make([][]string, maxLevel+1)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentRequests)
	for level := 1; level <= maxLevel; level++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			apiLevel, err := c.api.GetClassLevel(key, level)
			if err != nil {
				return fmt.Errorf("failed to get %s level %d: %w", key, level, err)
			}
			levels[level] = featureKeys(apiLevel)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	class := &rulebook.Class{
		Key:      apiClass.Key,
		Name:     apiClass.Name,
		HitDie:   apiClass.HitDie,
		Features: make(map[int][]string),
	}
	for level, keys := range levels {
		if len(keys) > 0 {
			class.Features[level] = keys
		}
	}

	c.logger.Debug("loaded class from dnd5e api",
		zap.String("class_key", class.Key),
		zap.Int("hit_die", class.HitDie),
		zap.Int("levels", maxLevel))

	return class, nil
}

// LoadCatalog implements Client.LoadCatalog
func (c *client) LoadCatalog(ctx context.Context, catalog *rulebook.Catalog, keys []string, maxLevel int) error {
	if catalog == nil {
		return dnderr.InvalidArgument("catalog is required")
	}
	for _, key := range keys {
		class, err := c.LoadClass(ctx, key, maxLevel)
		if err != nil {
			return err
		}
		if err := catalog.Add(class); err != nil {
			return dnderr.Wrapf(err, "failed to add class %s", key)
		}
	}
	return nil
}

func featureKeys(level *apiEntities.Level) []string {
	if level == nil {
		return nil
	}
	var keys []string
	for _, ref := range level.Features {
		if ref != nil && ref.Key != "" {
			keys = append(keys, ref.Key)
		}
	}
	return keys
}

// hostClient returns an http client whose requests go to baseURL's scheme and host
func hostClient(base *http.Client, baseURL string) (*http.Client, error) {
	if base == nil {
		base = http.DefaultClient
	}
	if baseURL == "" {
		return base, nil
	}

	target, err := url.Parse(baseURL)
	if err != nil || target.Host == "" {
		return nil, dnderr.InvalidArgumentf("invalid dnd5e base url %q", baseURL)
	}

	next := base.Transport
	if next == nil {
		next = http.DefaultTransport
	}

	clone := *base
	clone.Transport = &hostRewriter{target: target, next: next}
	return &clone, nil
}

type hostRewriter struct {
	target *url.URL
	next   http.RoundTripper
}

func (h *hostRewriter) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	out.URL.Scheme = h.target.Scheme
	out.URL.Host = h.target.Host
	out.Host = h.target.Host
	return h.next.RoundTrip(out)
}

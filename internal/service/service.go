package service

import (
	"context"
	"math/rand/v2"
	"net"
	"sync"
	"time"

	"github.com/Menova10/menova-empower-journey/internal/cache"
	"github.com/Menova10/menova-empower-journey/internal/domain"
	"github.com/Menova10/menova-empower-journey/internal/logger"
	"github.com/Menova10/menova-empower-journey/internal/source"
)

const (
	// MaxRelated is the largest limit GetRelatedContent honours.
	MaxRelated        = 20
	defaultGenerated  = source.MaxGeneratedResources
	defaultNewsItems  = 10
	defaultVideoItems = 6
)

// ContentStore is the durable content table.
type ContentStore interface {
	ListContent(ctx context.Context) ([]domain.ContentItem, error)
	GetContentByID(ctx context.Context, id string) (*domain.ContentItem, error)
}

// GeneratedSource is the generation adapter plus what the connectivity
// probe needs from it.
type GeneratedSource interface {
	source.Adapter
	HasCredential() bool
	BaseURL() string
	Probe(ctx context.Context) error
}

// Resolver is satisfied by *net.Resolver.
type Resolver interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
}

type Options struct {
	// KeepVideosOnNewsFallback merges live video results into the static
	// fallback when the news branch fails. Off by default, which discards
	// them.
	KeepVideosOnNewsFallback bool
	NewsItems                int
	VideoItems               int
	// Rand drives the shuffle of same-category related items.
	Rand     *rand.Rand
	Resolver Resolver
}

type Aggregator struct {
	store     ContentStore
	cache     cache.SourceCache
	generated GeneratedSource
	news      source.Adapter
	video     source.Adapter
	status    *StatusTracker
	log       logger.Logger
	opts      Options

	randMu sync.Mutex
}

type Deps struct {
	Store     ContentStore
	Cache     cache.SourceCache
	Generated GeneratedSource
	News      source.Adapter
	Video     source.Adapter
	Status    *StatusTracker
	Logger    logger.Logger
}

func NewAggregator(deps Deps, opts Options) *Aggregator {
	if deps.Cache == nil {
		deps.Cache = cache.NewMemory()
	}
	if deps.Status == nil {
		deps.Status = NewStatusTracker()
	}
	if deps.Logger == nil {
		deps.Logger = logger.NewNop()
	}
	if opts.NewsItems <= 0 {
		opts.NewsItems = defaultNewsItems
	}
	if opts.VideoItems <= 0 {
		opts.VideoItems = defaultVideoItems
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if opts.Resolver == nil {
		opts.Resolver = net.DefaultResolver
	}
	return &Aggregator{
		store:     deps.Store,
		cache:     deps.Cache,
		generated: deps.Generated,
		news:      deps.News,
		video:     deps.Video,
		status:    deps.Status,
		log:       deps.Logger.With(logger.String("component", "aggregator")),
		opts:      opts,
	}
}

func (a *Aggregator) Status() *StatusTracker { return a.status }

// fetch runs one adapter and keeps its cache entry current. On a transport
// failure the cached items, if any, replace the empty live result and
// fromCache is true.
func (a *Aggregator) fetch(ctx context.Context, adapter source.Adapter, q source.Query) (res source.Result, fromCache bool) {
	if adapter == nil {
		return source.Result{
			Items: []domain.ContentItem{},
			Err:   &source.FetchError{Kind: source.FailureCredential, Err: domain.ErrMissingCredential},
		}, false
	}
	res = adapter.Fetch(ctx, q)
	name := adapter.Name()

	if res.OK() {
		if err := a.cache.Set(ctx, name, res.Items); err != nil {
			a.log.Warn("cache write failed", logger.String("source", string(name)), logger.Error(err))
		}
		return res, false
	}
	if !res.Unreachable() {
		return res, false
	}

	entry, err := a.cache.Get(ctx, name)
	if err != nil {
		a.log.Warn("cache read failed", logger.String("source", string(name)), logger.Error(err))
		return res, false
	}
	if entry == nil {
		return res, false
	}
	a.log.Info("serving cached content",
		logger.String("source", string(name)),
		logger.Int("count", len(entry.Items)),
		logger.String("fetched_at", entry.FetchedAt.Format(time.RFC3339)),
	)
	return source.Result{Items: entry.Items}, true
}

func (a *Aggregator) shuffle(items []domain.ContentItem) {
	a.randMu.Lock()
	defer a.randMu.Unlock()
	a.opts.Rand.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
}

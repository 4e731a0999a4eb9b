// Package functions serves the server-side fetch endpoints that keep
// provider credentials off the client: fetch-content, fetch-enhanced-content
// and test-connectivity.
package functions

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Menova10/menova-empower-journey/internal/domain"
	"github.com/Menova10/menova-empower-journey/internal/events"
	"github.com/Menova10/menova-empower-journey/internal/handler"
	"github.com/Menova10/menova-empower-journey/internal/logger"
	"github.com/Menova10/menova-empower-journey/internal/source"
)

const (
	defaultMaxItems    = 10
	defaultParallelism = 3
)

type Store interface {
	GetContentByURL(ctx context.Context, url string) (*domain.ContentItem, error)
	UpsertContent(ctx context.Context, items []domain.ContentItem) (int, error)
}

// ProbedAdapter is an adapter that can also check its own credential.
type ProbedAdapter interface {
	source.Adapter
	Probe(ctx context.Context) error
}

type Config struct {
	DefaultTopics []string
	MaxItems      int
	Parallelism   int
}

type Deps struct {
	Store     Store
	Generated ProbedAdapter
	News      source.Adapter
	Video     source.Adapter
	Scraper   ProbedAdapter
	Publisher events.Publisher
	Logger    logger.Logger
}

type Functions struct {
	store     Store
	generated ProbedAdapter
	news      source.Adapter
	video     source.Adapter
	scraper   ProbedAdapter
	publisher events.Publisher
	log       logger.Logger
	cfg       Config
}

func New(deps Deps, cfg Config) *Functions {
	if cfg.MaxItems <= 0 {
		cfg.MaxItems = defaultMaxItems
	}
	if cfg.Parallelism <= 0 {
		cfg.Parallelism = defaultParallelism
	}
	if len(cfg.DefaultTopics) == 0 {
		cfg.DefaultTopics = []string{"menopause"}
	}
	if deps.Publisher == nil {
		deps.Publisher = events.Nop{}
	}
	if deps.Logger == nil {
		deps.Logger = logger.NewNop()
	}
	return &Functions{
		store:     deps.Store,
		generated: deps.Generated,
		news:      deps.News,
		video:     deps.Video,
		scraper:   deps.Scraper,
		publisher: deps.Publisher,
		log:       deps.Logger.With(logger.String("component", "functions")),
		cfg:       cfg,
	}
}

// Routes returns the function endpoints, relative to their mount point.
func (f *Functions) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(handler.CORS)
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Function not found")
	})

	r.Get("/fetch-content", f.FetchContent)
	r.Post("/fetch-content", f.FetchContent)
	r.Get("/fetch-enhanced-content", f.FetchEnhancedContent)
	r.Post("/fetch-enhanced-content", f.FetchEnhancedContent)
	r.Get("/test-connectivity", f.TestConnectivity)
	return r
}

type errorBody struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	handler.WriteJSON(w, status, errorBody{Error: message})
}

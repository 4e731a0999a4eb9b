package functions

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Menova10/menova-empower-journey/internal/domain"
	"github.com/Menova10/menova-empower-journey/internal/handler"
)

// TestConnectivity handles GET /test-connectivity.
func (f *Functions) TestConnectivity(w http.ResponseWriter, r *http.Request) {
	handler.WriteJSON(w, http.StatusOK, f.Probe(r.Context()))
}

// Probe checks the scraper and the generation provider in parallel.
func (f *Functions) Probe(ctx context.Context) domain.ConnectivityReport {
	var (
		g                 errgroup.Group
		firecrawl, openai domain.ProbeResult
	)
	g.Go(func() error {
		firecrawl = probe(ctx, f.scraper, "Firecrawl")
		return nil
	})
	g.Go(func() error {
		openai = probe(ctx, f.generated, "OpenAI")
		return nil
	})
	_ = g.Wait()

	return domain.ConnectivityReport{
		Success:   firecrawl.OK && openai.OK,
		Firecrawl: firecrawl,
		OpenAI:    openai,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

func probe(ctx context.Context, p ProbedAdapter, name string) domain.ProbeResult {
	if p == nil {
		return domain.ProbeResult{Message: name + " is not configured"}
	}
	if err := p.Probe(ctx); err != nil {
		return domain.ProbeResult{Message: err.Error()}
	}
	return domain.ProbeResult{OK: true, Message: name + " API is reachable"}
}

// Package source holds the adapters that fetch candidate content from
// external providers. Adapters never return raw errors: every failure is
// folded into Result.Err and the item list is empty.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Menova10/menova-empower-journey/internal/domain"
	"github.com/Menova10/menova-empower-journey/internal/logger"
	"github.com/Menova10/menova-empower-journey/internal/metrics"
)

// Query is what the aggregator asks an adapter for.
type Query struct {
	Topics []string
	Max    int
}

type Adapter interface {
	Name() domain.Source
	Fetch(ctx context.Context, q Query) Result
}

type FailureKind string

const (
	FailureCredential FailureKind = "credential"
	FailureTransport  FailureKind = "transport"
	FailureUpstream   FailureKind = "upstream"
	FailureParse      FailureKind = "parse"
)

// FetchError describes why an adapter returned nothing.
type FetchError struct {
	Source     domain.Source
	Kind       FailureKind
	StatusCode int
	Body       string
	Err        error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case FailureUpstream:
		return fmt.Sprintf("%s: upstream status %d", e.Source, e.StatusCode)
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s: %s failure: %v", e.Source, e.Kind, e.Err)
		}
		return fmt.Sprintf("%s: %s failure", e.Source, e.Kind)
	}
}

func (e *FetchError) Unwrap() error { return e.Err }

// Result is the outcome of one adapter call. Err is nil on success, even
// when Items is empty.
type Result struct {
	Items []domain.ContentItem
	Err   *FetchError
}

func (r Result) OK() bool { return r.Err == nil }

// Unreachable reports a transport-level failure, the only kind the
// aggregator answers from cache.
func (r Result) Unreachable() bool {
	return r.Err != nil && r.Err.Kind == FailureTransport
}

func failed(src domain.Source, kind FailureKind, err error) Result {
	return Result{Items: []domain.ContentItem{}, Err: &FetchError{Source: src, Kind: kind, Err: err}}
}

func upstream(src domain.Source, status int, body string) Result {
	return Result{Items: []domain.ContentItem{}, Err: &FetchError{Source: src, Kind: FailureUpstream, StatusCode: status, Body: body}}
}

// finish logs and records metrics for one adapter call.
func finish(log logger.Logger, src domain.Source, start time.Time, res Result) Result {
	outcome := "success"
	switch {
	case res.Err != nil:
		outcome = string(res.Err.Kind)
		fields := []logger.Field{logger.String("source", string(src)), logger.String("kind", outcome), logger.Error(res.Err)}
		if res.Err.Body != "" {
			fields = append(fields, logger.String("body", res.Err.Body))
		}
		log.Warn("content source fetch failed", fields...)
	case len(res.Items) == 0:
		outcome = "empty"
		log.Info("content source returned no items", logger.String("source", string(src)))
	default:
		log.Debug("content source fetched", logger.String("source", string(src)), logger.Int("count", len(res.Items)))
	}
	metrics.ObserveFetch(string(src), outcome, time.Since(start))
	return res
}

const maxErrorBody = 2048

// readBody returns at most maxErrorBody bytes of a failed response for logs.
func readBody(resp *http.Response) string {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return string(b)
}

const (
	defaultTimeout         = 30 * time.Second
	defaultMaxIdleConns    = 100
	defaultMaxIdlePerHost  = 10
	defaultIdleConnTimeout = 90 * time.Second
)

// NewHTTPClient builds the client shared by all adapters.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			MaxIdleConns:          defaultMaxIdleConns,
			MaxIdleConnsPerHost:   defaultMaxIdlePerHost,
			IdleConnTimeout:       defaultIdleConnTimeout,
			TLSHandshakeTimeout:   10 * time.Second,
			ResponseHeaderTimeout: timeout,
		},
	}
}

func clampMax(n, def, limit int) int {
	if n <= 0 {
		n = def
	}
	if limit > 0 && n > limit {
		n = limit
	}
	return n
}

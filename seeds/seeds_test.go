package seeds

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Menova10/menova-empower-journey/internal/domain"
	"github.com/Menova10/menova-empower-journey/internal/fallback"
	"github.com/Menova10/menova-empower-journey/internal/logger"
)

type recorder struct {
	rows map[string]domain.ContentItem
	err  error
}

func (r *recorder) UpsertContent(_ context.Context, items []domain.ContentItem) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	for _, item := range items {
		r.rows[item.ID] = item
	}
	return len(items), nil
}

func TestSetupIsIdempotent(t *testing.T) {
	rec := &recorder{rows: map[string]domain.ContentItem{}}

	require.NoError(t, Setup(context.Background(), rec, logger.NewNop()))
	require.NoError(t, Setup(context.Background(), rec, logger.NewNop()))

	assert.Len(t, rec.rows, len(fallback.Items()))
	for _, item := range rec.rows {
		assert.True(t, item.IsStaticFallback)
	}
}

func TestSetupError(t *testing.T) {
	err := Setup(context.Background(), &recorder{err: errors.New("read only")}, logger.NewNop())
	assert.ErrorContains(t, err, "read only")
}

package seeds

import (
	"context"
	"fmt"

	"github.com/Menova10/menova-empower-journey/internal/domain"
	"github.com/Menova10/menova-empower-journey/internal/fallback"
	"github.com/Menova10/menova-empower-journey/internal/logger"
)

type ContentWriter interface {
	UpsertContent(ctx context.Context, items []domain.ContentItem) (int, error)
}

// Setup stores the bundled static content. Rows are upserted by id, so
// running it twice leaves one copy of each item.
func Setup(ctx context.Context, store ContentWriter, log logger.Logger) error {
	items := fallback.Items()

	log.Info("seeding static content", logger.Int("count", len(items)))
	stored, err := store.UpsertContent(ctx, items)
	if err != nil {
		return fmt.Errorf("seed content: %w", err)
	}
	log.Info("seeding complete", logger.Int("stored", stored))
	return nil
}

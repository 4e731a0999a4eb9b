// Package events publishes notifications about stored content.
package events

import (
	"context"
	"time"
)

const (
	SubjectContentRefreshed = "content.refreshed"
	messageVersion          = "1.0"
)

// RefreshedMessage announces a fetch-content run that stored items.
type RefreshedMessage struct {
	Source    string    `json:"source"`
	Stored    int       `json:"stored"`
	ItemIDs   []string  `json:"item_ids"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

type Publisher interface {
	PublishRefreshed(ctx context.Context, msg RefreshedMessage) error
	Close()
}

// Nop discards every message. It is used when NATS is not configured.
type Nop struct{}

func (Nop) PublishRefreshed(context.Context, RefreshedMessage) error { return nil }
func (Nop) Close() {}

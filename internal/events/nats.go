package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/Menova10/menova-empower-journey/internal/logger"
)

type NATSConfig struct {
	URL     string
	Subject string
	Name    string
}

// conn is the part of *nats.Conn the publisher uses.
type conn interface {
	Publish(subject string, data []byte) error
	Close()
}

type NATSPublisher struct {
	conn    conn
	subject string
	source  string
	log     logger.Logger
}

func NewNATSPublisher(cfg NATSConfig, log logger.Logger) (*NATSPublisher, error) {
	name := cfg.Name
	if name == "" {
		name = "content-service"
	}
	nc, err := nats.Connect(cfg.URL,
		nats.Name(name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn("nats disconnected", logger.Error(err))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("nats reconnected", logger.String("url", nc.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return newPublisher(nc, cfg.Subject, name, log), nil
}

func newPublisher(c conn, subject, source string, log logger.Logger) *NATSPublisher {
	if subject == "" {
		subject = SubjectContentRefreshed
	}
	return &NATSPublisher{conn: c, subject: subject, source: source, log: log}
}

func (p *NATSPublisher) PublishRefreshed(ctx context.Context, msg RefreshedMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if msg.Source == "" {
		msg.Source = p.source
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}
	if msg.ItemIDs == nil {
		msg.ItemIDs = []string{}
	}
	msg.Version = messageVersion

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode refreshed message: %w", err)
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("publish %s: %w", p.subject, err)
	}
	p.log.Info("published content event", logger.String("subject", p.subject), logger.Int("stored", msg.Stored))
	return nil
}

func (p *NATSPublisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}

package nats

import (
	"context"
	"encoding/json"
	"log/slog"

	libnats "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"Chirp/internal/core/events"
)

// MsgPublisher is the part of jetstream.JetStream the publisher needs
type MsgPublisher interface {
	PublishMsg(ctx context.Context, msg *libnats.Msg, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error)
}

// PublishingLog is an events.Log that publishes every successfully appended
// event. The append result is final: a failed publish is logged and dropped.
type PublishingLog struct {
	events.Log
	js     MsgPublisher
	logger *slog.Logger
}

// NewPublishingLog wraps log so appends are mirrored to js
func NewPublishingLog(log events.Log, js MsgPublisher, logger *slog.Logger) *PublishingLog {
	if logger == nil {
		logger = slog.Default()
	}
	return &PublishingLog{Log: log, js: js, logger: logger}
}

// Subject returns the JetStream subject an event is published on
func Subject(e *events.Event) string {
	return subjectPrefix + "." + string(e.Stream) + "." + string(e.Type)
}

// Append appends to the wrapped log, then publishes
func (p *PublishingLog) Append(ctx context.Context, event *events.Event) error {
	if err := p.Log.Append(ctx, event); err != nil {
		return err
	}

	data, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("failed to encode event for NATS", "error", err, "event_id", event.ID)
		return nil
	}

	msg := &libnats.Msg{
		Subject: Subject(event),
		Data:    data,
		Header: libnats.Header{
			// JetStream drops a second message with the same id
			libnats.MsgIdHdr: []string{event.ID},
		},
	}
	if _, err := p.js.PublishMsg(ctx, msg); err != nil {
		p.logger.Warn("failed to publish event",
			"error", err,
			"event_id", event.ID,
			"subject", msg.Subject)
		return nil
	}

	p.logger.Debug("published event", "id", event.ID, "subject", msg.Subject)
	return nil
}

// Package nats fans appended events out to NATS JetStream.
package nats

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	libnats "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const (
	streamName = "chirp"
	// subjectPrefix is followed by <stream>.<type>, e.g. chirp.events.like.liked
	subjectPrefix = "chirp.events"
)

// Connect dials NATS and returns a JetStream handle. With initStream set the
// chirp stream is created or updated first.
func Connect(ctx context.Context, url string, initStream bool, logger *slog.Logger) (jetstream.JetStream, error) {
	if url == "" {
		url = libnats.DefaultURL
	}

	nc, err := libnats.Connect(url, libnats.Name("chirp"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	if initStream {
		logger.Info("Initializing NATS")
		_, err := js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
			Name:       streamName,
			Subjects:   []string{subjectPrefix + ".>"},
			MaxAge:     24 * time.Hour,
			Duplicates: 2 * time.Minute,
		})
		if err != nil {
			nc.Close()
			return nil, fmt.Errorf("failed to create stream %s: %w", streamName, err)
		}
		logger.Info("Stream created or updated", "name", streamName)
	}

	return js, nil
}

package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"Chirp/internal/core/events"
)

type postgresEventLog struct {
	db *sql.DB
}

// NewEventLog creates a PostgreSQL-backed event log
func NewEventLog(db *sql.DB) events.Log {
	return &postgresEventLog{db: db}
}

// tableFor maps a stream to its table. Table names never come from input.
func tableFor(stream events.Stream) (string, error) {
	switch stream {
	case events.StreamPost:
		return "post_events", nil
	case events.StreamLike:
		return "like_events", nil
	case events.StreamRepost:
		return "repost_events", nil
	default:
		return "", fmt.Errorf("unknown event stream %q", stream)
	}
}

// Append inserts a single event row
func (l *postgresEventLog) Append(ctx context.Context, event *events.Event) error {
	table, err := tableFor(event.Stream)
	if err != nil {
		return err
	}

	var query string
	args := []any{event.ID, event.Key, string(event.Type), []byte(event.Payload), event.OccurredAt}
	if event.Stream == events.StreamPost {
		query = `
			INSERT INTO post_events (event_id, post_id, event_type, event_data, occurred_at, reply_to_post_id)
			VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))`
		args = append(args, event.ReplyTo)
	} else {
		query = fmt.Sprintf(`
			INSERT INTO %s (event_id, post_id, event_type, event_data, occurred_at)
			VALUES ($1, $2, $3, $4, $5)`, table)
	}

	if _, err := l.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", ErrDuplicateEvent, event.ID)
		}
		return fmt.Errorf("failed to append %s event: %w", event.Type, err)
	}
	return nil
}

// ReadByKey returns the stream's events for key, oldest first
func (l *postgresEventLog) ReadByKey(ctx context.Context, stream events.Stream, key string) ([]*events.Event, error) {
	table, err := tableFor(stream)
	if err != nil {
		return nil, err
	}

	var query string
	if stream == events.StreamPost {
		query = `
			SELECT event_id, post_id, event_type, event_data, occurred_at, reply_to_post_id
			FROM post_events
			WHERE post_id = $1
			ORDER BY occurred_at ASC, seq ASC`
	} else {
		query = fmt.Sprintf(`
			SELECT event_id, post_id, event_type, event_data, occurred_at, NULL::TEXT
			FROM %s
			WHERE post_id = $1
			ORDER BY occurred_at ASC, seq ASC`, table)
	}

	return l.query(ctx, stream, query, key)
}

// ReadByCorrelation returns every event of every post created as a reply to
// replyToPostID, oldest first
func (l *postgresEventLog) ReadByCorrelation(ctx context.Context, replyToPostID string) ([]*events.Event, error) {
	query := `
		SELECT event_id, post_id, event_type, event_data, occurred_at, reply_to_post_id
		FROM post_events
		WHERE post_id IN (
			SELECT post_id FROM post_events WHERE reply_to_post_id = $1
		)
		ORDER BY occurred_at ASC, seq ASC`

	return l.query(ctx, events.StreamPost, query, replyToPostID)
}

func (l *postgresEventLog) query(ctx context.Context, stream events.Stream, query string, arg string) ([]*events.Event, error) {
	rows, err := l.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s events: %w", stream, err)
	}
	defer func() { _ = rows.Close() }()

	result := []*events.Event{}
	for rows.Next() {
		var (
			e       events.Event
			typ     string
			data    []byte
			replyTo sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.Key, &typ, &data, &e.OccurredAt, &replyTo); err != nil {
			return nil, fmt.Errorf("failed to scan %s event: %w", stream, err)
		}
		e.Stream = stream
		e.Type = events.Type(typ)
		e.Payload = json.RawMessage(data)
		e.ReplyTo = replyTo.String
		e.OccurredAt = e.OccurredAt.UTC()
		result = append(result, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s events: %w", stream, err)
	}
	return result, nil
}

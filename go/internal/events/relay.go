package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/rs/zerolog/log"
)

// JetStreamConfig holds configuration for the event relay stream.
type JetStreamConfig struct {
	URL             string
	StreamName      string
	SubjectPrefix   string
	MaxReconnects   int
	ReconnectWait   time.Duration
	MaxAge          time.Duration // how long to keep messages
	MaxMsgs         int64         // max number of messages to keep
	Replicas        int
	DuplicateWindow time.Duration
}

// DefaultJetStreamConfig returns default relay configuration.
func DefaultJetStreamConfig() JetStreamConfig {
	return JetStreamConfig{
		URL:             nats.DefaultURL,
		StreamName:      "TRADE_EVENTS",
		SubjectPrefix:   "trade.events",
		MaxReconnects:   -1, // infinite
		ReconnectWait:   2 * time.Second,
		MaxAge:          7 * 24 * time.Hour,
		MaxMsgs:         -1, // no limit
		Replicas:        1,
		DuplicateWindow: 2 * time.Hour,
	}
}

// JetStreamRelay mirrors every bus event onto a JetStream stream so
// out-of-process consumers (the gateway, media tooling) can follow the
// trade economy.
type JetStreamRelay struct {
	nc     *nats.Conn
	js     jetstream.JetStream
	config JetStreamConfig
}

// NewJetStreamRelay connects to NATS and ensures the stream exists.
func NewJetStreamRelay(cfg JetStreamConfig) (*JetStreamRelay, error) {
	opts := []nats.Option{
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Error().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
		nats.ErrorHandler(func(nc *nats.Conn, sub *nats.Subscription, err error) {
			log.Error().Err(err).Msg("NATS error")
		}),
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("create JetStream context: %w", err)
	}

	r := &JetStreamRelay{nc: nc, js: js, config: cfg}

	if err := r.ensureStream(context.Background()); err != nil {
		nc.Close()
		return nil, fmt.Errorf("ensure stream: %w", err)
	}

	return r, nil
}

func (r *JetStreamRelay) ensureStream(ctx context.Context) error {
	sc := jetstream.StreamConfig{
		Name:        r.config.StreamName,
		Description: "Trade economy event stream",
		Subjects:    []string{fmt.Sprintf("%s.>", r.config.SubjectPrefix)},
		MaxAge:      r.config.MaxAge,
		MaxMsgs:     r.config.MaxMsgs,
		Replicas:    r.config.Replicas,
		Duplicates:  r.config.DuplicateWindow,
	}

	_, err := r.js.CreateOrUpdateStream(ctx, sc)
	if err != nil {
		return fmt.Errorf("create or update stream: %w", err)
	}

	log.Info().
		Str("stream", r.config.StreamName).
		Str("subjects", sc.Subjects[0]).
		Msg("JetStream stream ready")

	return nil
}

// Publish sends one event to the stream.
func (r *JetStreamRelay) Publish(ctx context.Context, event Event) error {
	subject := fmt.Sprintf("%s.%s", r.config.SubjectPrefix, event.Type)

	teamIDs := make([]string, len(event.TeamIDs))
	for i, id := range event.TeamIDs {
		teamIDs[i] = id.String()
	}

	payloadBytes, err := json.Marshal(event.Payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	envelope := map[string]interface{}{
		"eventId":   event.ID.String(),
		"eventType": string(event.Type),
		"teamIds":   teamIDs,
		"timestamp": event.OccurredAt,
		"payload":   json.RawMessage(payloadBytes),
	}

	messageBytes, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}

	_, err = r.js.Publish(ctx, subject, messageBytes, jetstream.WithMsgID(event.ID.String()))
	if err != nil {
		return fmt.Errorf("publish to %s: %w", subject, err)
	}

	return nil
}

// Handler adapts the relay into a bus subscriber. Relay failures are
// logged, never surfaced to the publishing component.
func (r *JetStreamRelay) Handler() Handler {
	return func(event Event) {
		if err := r.Publish(context.Background(), event); err != nil {
			log.Error().
				Err(err).
				Str("event_type", string(event.Type)).
				Msg("failed to relay event")
		}
	}
}

// Close drains the NATS connection.
func (r *JetStreamRelay) Close() {
	if r.nc != nil {
		r.nc.Close()
	}
}

// BookOptimal - Book Catalog Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookoptimal

package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/rs/zerolog"

	"github.com/tomtom215/bookoptimal/internal/metrics"
)

// NewPubSub creates the in-process event bus. Messages published while no
// handler is subscribed are dropped.
func NewPubSub(bufferSize int64, logger watermill.LoggerAdapter) *gochannel.GoChannel {
	return gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: bufferSize,
	}, logger)
}

// Publisher emits recommendation events onto the bus.
type Publisher struct {
	pub    message.Publisher
	logger zerolog.Logger
}

// NewPublisher wraps a Watermill publisher.
//
//nolint:gocritic // zerolog.Logger is passed by value throughout
func NewPublisher(pub message.Publisher, logger zerolog.Logger) *Publisher {
	return &Publisher{
		pub:    pub,
		logger: logger.With().Str("component", "analytics").Logger(),
	}
}

// Publish validates, encodes and publishes e.
func (p *Publisher) Publish(e *RecommendationsGenerated) error {
	payload, err := MarshalEvent(e)
	if err != nil {
		return err
	}

	msg := message.NewMessage(e.EventID, payload)
	msg.Metadata.Set("user_id", e.UserID)

	if err := p.pub.Publish(TopicRecommendationsGenerated, msg); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}
	metrics.AnalyticsEventsPublished.Inc()

	p.logger.Debug().
		Str("event_id", e.EventID).
		Str("user_id", e.UserID).
		Int("count", e.Count).
		Msg("Published recommendation event")
	return nil
}

// Recorder persists decoded events. *Store implements it.
type Recorder interface {
	Record(ctx context.Context, e *RecommendationsGenerated) error
}

// RouterConfig configures the event router.
type RouterConfig struct {
	// CloseTimeout bounds how long Close waits for in-flight handlers.
	CloseTimeout time.Duration

	// RetryCount is the number of redeliveries after a failed Record.
	RetryCount int

	// RetryInterval is the first backoff; later ones double up to 10x.
	RetryInterval time.Duration
}

// Router consumes recommendation events and records them. It is single-use:
// build a new one after Run returns.
type Router struct {
	router *message.Router
}

// NewRouter wires a consumer handler for TopicRecommendationsGenerated.
// Malformed payloads are logged and acknowledged; Record failures are retried
// with exponential backoff.
func NewRouter(cfg RouterConfig, sub message.Subscriber, rec Recorder, logger watermill.LoggerAdapter) (*Router, error) {
	wmRouter, err := message.NewRouter(message.RouterConfig{CloseTimeout: cfg.CloseTimeout}, logger)
	if err != nil {
		return nil, fmt.Errorf("create watermill router: %w", err)
	}

	wmRouter.AddMiddleware(middleware.Recoverer)
	retry := middleware.Retry{
		MaxRetries:      cfg.RetryCount,
		InitialInterval: cfg.RetryInterval,
		MaxInterval:     cfg.RetryInterval * 10,
		Multiplier:      2.0,
		Logger:          logger,
	}
	wmRouter.AddMiddleware(retry.Middleware)

	handler := func(msg *message.Message) error {
		e, err := UnmarshalEvent(msg.Payload)
		if err != nil {
			logger.Error("Dropping malformed recommendation event", err, watermill.LogFields{"message_uuid": msg.UUID})
			metrics.RecordAnalyticsEvent(err)
			return nil
		}
		err = rec.Record(msg.Context(), e)
		metrics.RecordAnalyticsEvent(err)
		return err
	}

	// The bus outlives any one router, so router shutdown must not close it.
	wmRouter.AddConsumerHandler("analytics-recorder", TopicRecommendationsGenerated, keepOpen{sub}, handler)

	return &Router{router: wmRouter}, nil
}

// Run processes events until ctx is cancelled or Close is called.
func (r *Router) Run(ctx context.Context) error {
	return r.router.Run(ctx)
}

// Running is closed once handlers are subscribed.
func (r *Router) Running() <-chan struct{} {
	return r.router.Running()
}

// Close stops the router.
func (r *Router) Close() error {
	return r.router.Close()
}

// keepOpen shields a shared subscriber from Close. Subscriptions still end
// when the router cancels their context.
type keepOpen struct {
	message.Subscriber
}

func (keepOpen) Close() error { return nil }

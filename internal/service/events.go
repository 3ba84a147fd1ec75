// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/models"
)

// Notifier receives sync notifications. Notify is called synchronously from
// the sync goroutine and must not block for long.
type Notifier interface {
	Notify(event models.Event)
}

// NotifierFunc adapts a function to [Notifier].
type NotifierFunc func(event models.Event)

// Notify implements [Notifier].
func (f NotifierFunc) Notify(event models.Event) {
	f(event)
}

type nopNotifier struct{}

func (nopNotifier) Notify(models.Event) {}

// NopNotifier returns a [Notifier] that drops every event.
func NopNotifier() Notifier {
	return nopNotifier{}
}

type channelNotifier struct {
	ch chan<- models.Event
}

// NewChannelNotifier returns a [Notifier] that forwards events to ch. Events
// are dropped when ch is full so a slow reader never stalls a sync.
func NewChannelNotifier(ch chan<- models.Event) Notifier {
	return channelNotifier{ch: ch}
}

func (n channelNotifier) Notify(event models.Event) {
	select {
	case n.ch <- event:
	default:
	}
}

type logNotifier struct {
	logger *logger.Logger
}

// NewLogNotifier returns a [Notifier] that writes every event to log.
func NewLogNotifier(log *logger.Logger) Notifier {
	return logNotifier{logger: log}
}

func (n logNotifier) Notify(event models.Event) {
	switch event.Type {
	case models.EventFailure:
		n.logger.Error().Err(event.Err).Str("event", string(event.Type)).Msg("sync failed")
	case models.EventRateLimitExceeded:
		n.logger.Warn().
			Str("event", string(event.Type)).
			Str("scope", event.Scope.Key()).
			Int("seconds", event.RateLimitSeconds).
			Msg("rate limit exceeded")
	case models.EventProgress:
		n.logger.Debug().
			Str("event", string(event.Type)).
			Str("scope", event.Scope.Key()).
			Int("downloaded", event.Downloaded).
			Int("remaining", event.Remaining).
			Msg("sync progress")
	case models.EventFinished:
		n.logger.Info().
			Str("event", string(event.Type)).
			Bool("downloaded", event.SomethingDownloaded).
			Bool("uploaded", event.SomethingUploaded).
			Msg("sync finished")
	default:
		n.logger.Info().Str("event", string(event.Type)).Msg("sync event")
	}
}

// multiNotifier fans an event out to several notifiers in order.
type multiNotifier []Notifier

// NewMultiNotifier returns a [Notifier] delivering every event to each of
// notifiers. Nil entries are skipped.
func NewMultiNotifier(notifiers ...Notifier) Notifier {
	out := make(multiNotifier, 0, len(notifiers))
	for _, n := range notifiers {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

func (m multiNotifier) Notify(event models.Event) {
	for _, n := range m {
		n.Notify(event)
	}
}

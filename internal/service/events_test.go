package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/models"
)

func TestChannelNotifier_DropsWhenFull(t *testing.T) {
	ch := make(chan models.Event, 1)
	n := NewChannelNotifier(ch)

	n.Notify(models.Event{Type: models.EventStarted})
	assert.NotPanics(t, func() { n.Notify(models.Event{Type: models.EventStopped}) })

	assert.Equal(t, models.EventStarted, (<-ch).Type)
	assert.Len(t, ch, 0)
}

func TestMultiNotifier_FansOutInOrder(t *testing.T) {
	var got []string
	first := NotifierFunc(func(e models.Event) { got = append(got, "first:"+string(e.Type)) })
	second := NotifierFunc(func(e models.Event) { got = append(got, "second:"+string(e.Type)) })

	n := NewMultiNotifier(first, nil, second)
	n.Notify(models.Event{Type: models.EventFinished})

	assert.Equal(t, []string{"first:finished", "second:finished"}, got)
}

func TestLogNotifier_AllEventTypes(t *testing.T) {
	n := NewLogNotifier(logger.Nop())
	for _, typ := range []models.EventType{
		models.EventStarted, models.EventStopped, models.EventFinished, models.EventFailure,
		models.EventRateLimitExceeded, models.EventConflictDetected,
		models.EventShouldRepeatIncrementalSync, models.EventProgress,
	} {
		assert.NotPanics(t, func() { n.Notify(models.Event{Type: typ}) })
	}
}

func TestNopNotifier(t *testing.T) {
	assert.NotPanics(t, func() { NopNotifier().Notify(models.Event{Type: models.EventStarted}) })
}

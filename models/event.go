// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// EventType names a session notification. The string values are part of
// the public contract.
type EventType string

const (
	EventStarted                     EventType = "started"
	EventStopped                     EventType = "stopped"
	EventFinished                    EventType = "finished"
	EventFailure                     EventType = "failure"
	EventRateLimitExceeded           EventType = "rateLimitExceeded"
	EventConflictDetected            EventType = "conflictDetected"
	EventShouldRepeatIncrementalSync EventType = "shouldRepeatIncrementalSync"
	EventProgress                    EventType = "progress"
)

// Event is a notification emitted by the sync engine. Only the fields
// relevant to Type are set.
type Event struct {
	Type EventType

	// Scope is set for progress and rate-limit events.
	Scope Scope

	// Checkpoints, SomethingDownloaded and SomethingUploaded are set for
	// finished events.
	Checkpoints         Checkpoints
	SomethingDownloaded bool
	SomethingUploaded   bool

	// Err is set for failure events.
	Err error

	// RateLimitSeconds is set for rate-limit events.
	RateLimitSeconds int

	// Downloaded and Remaining are set for progress events.
	Downloaded int
	Remaining  int
}

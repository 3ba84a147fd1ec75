// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// EntityDescriptor describes one remote change to be pulled.
type EntityDescriptor struct {
	Kind        EntityKind
	GUID        string
	ExpectedUSN int64
	Scope       Scope

	// Entity carries the metadata delivered with the sync chunk. It may be
	// nil; the full payload is always downloaded.
	Entity Entity
}

// StopReasonKind tells why a pull run stopped early.
type StopReasonKind int

const (
	StopNone StopReasonKind = iota
	StopRateLimited
	StopAuthExpired
)

// StopReason is the early-stop cause of a pull run.
type StopReason struct {
	Kind StopReasonKind

	// RateLimitSeconds is set for [StopRateLimited].
	RateLimitSeconds int
}

// String implements [fmt.Stringer].
func (r StopReason) String() string {
	switch r.Kind {
	case StopRateLimited:
		return fmt.Sprintf("rate limited (%ds)", r.RateLimitSeconds)
	case StopAuthExpired:
		return "auth expired"
	default:
		return "none"
	}
}

// FailedItem pairs a descriptor with the error that made it fail.
type FailedItem struct {
	Descriptor EntityDescriptor
	Err        error
}

// AggregateStatus is the outcome of one pull processor run. A fresh value is
// created per run and never changed after it is returned.
type AggregateStatus struct {
	NewCount     int
	UpdatedCount int

	// Processed maps guid to usn for every item written by the run.
	Processed map[string]int64

	// UpToDate maps guid to usn for items whose local copy already matched
	// the expected usn; they were neither downloaded nor written.
	UpToDate map[string]int64

	FailedToDownload []FailedItem
	FailedToProcess  []FailedItem

	// Cancelled maps guid to expected usn for items never started.
	Cancelled map[string]int64

	StopReason StopReason
}

// NewAggregateStatus returns an empty status with StopReason none.
func NewAggregateStatus() *AggregateStatus {
	return &AggregateStatus{
		Processed: make(map[string]int64),
		UpToDate:  make(map[string]int64),
		Cancelled: make(map[string]int64),
	}
}

// HasFailures reports whether any item failed to download or process.
func (s *AggregateStatus) HasFailures() bool {
	return len(s.FailedToDownload) > 0 || len(s.FailedToProcess) > 0
}

// MinUnfinishedUSN returns the lowest usn among failed and cancelled items
// and false when there is none.
func (s *AggregateStatus) MinUnfinishedUSN() (int64, bool) {
	var (
		lowest int64
		found  bool
	)
	consider := func(usn int64) {
		if !found || usn < lowest {
			lowest, found = usn, true
		}
	}
	for _, f := range s.FailedToDownload {
		consider(f.Descriptor.ExpectedUSN)
	}
	for _, f := range s.FailedToProcess {
		consider(f.Descriptor.ExpectedUSN)
	}
	for _, usn := range s.Cancelled {
		consider(usn)
	}
	return lowest, found
}

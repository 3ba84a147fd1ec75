package service

// sessionState is the phase of a sync session.
type sessionState int

const (
	sessionIdle sessionState = iota
	sessionAuthenticating
	sessionLoadingCheckpoints
	sessionPullPhase
	sessionPushPhase
	sessionRepeatPull
	sessionPersistingCheckpoints
	sessionFailed
)

func (s sessionState) String() string {
	switch s {
	case sessionIdle:
		return "idle"
	case sessionAuthenticating:
		return "authenticating"
	case sessionLoadingCheckpoints:
		return "loading_checkpoints"
	case sessionPullPhase:
		return "pull"
	case sessionPushPhase:
		return "push"
	case sessionRepeatPull:
		return "repeat_pull"
	case sessionPersistingCheckpoints:
		return "persisting_checkpoints"
	case sessionFailed:
		return "failed"
	default:
		return "unknown"
	}
}

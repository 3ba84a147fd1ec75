package service

// pushState is the phase of the push synchronizer.
type pushState int

const (
	pushIdle pushState = iota
	pushCollectingDirty
	pushResolvingLinkedNotebookAuth
	pushSendingTags
	pushSendingSavedSearches
	pushSendingNotebooks
	pushResolvingNotebooksForNotes
	pushSendingNotes
	pushSendingResources
	pushFinalizing
	pushStopped
)

func (s pushState) String() string {
	switch s {
	case pushIdle:
		return "idle"
	case pushCollectingDirty:
		return "collecting_dirty"
	case pushResolvingLinkedNotebookAuth:
		return "resolving_linked_notebook_auth"
	case pushSendingTags:
		return "sending_tags"
	case pushSendingSavedSearches:
		return "sending_saved_searches"
	case pushSendingNotebooks:
		return "sending_notebooks"
	case pushResolvingNotebooksForNotes:
		return "resolving_notebooks_for_notes"
	case pushSendingNotes:
		return "sending_notes"
	case pushSendingResources:
		return "sending_resources"
	case pushFinalizing:
		return "finalizing"
	case pushStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// resting reports whether no push pass is running in s.
func (s pushState) resting() bool {
	return s == pushIdle || s == pushStopped
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-note-sync/internal/store"
	"github.com/MKhiriev/go-note-sync/models"
)

// sortTagsForPush orders dirty tags so every parent precedes its children,
// peeling tags without pending parents in rounds (Kahn). Parents that are
// not dirty are resolved from the local store and their guid is copied to
// the child. A cycle or a parent that cannot be resolved is an invariant
// violation.
func sortTagsForPush(ctx context.Context, localStore store.LocalStore, tags []*models.Tag) ([]*models.Tag, error) {
	byLocalID := make(map[string]*models.Tag, len(tags))
	for _, t := range tags {
		byLocalID[t.LocalID] = t
	}

	pending := make(map[string]int, len(tags))
	children := make(map[string][]*models.Tag, len(tags))

	for _, t := range tags {
		if t.ParentLocalID == "" {
			continue
		}
		if t.ParentLocalID == t.LocalID {
			return nil, fmt.Errorf("%w: %w: tag %s is its own parent", ErrInvariantViolation, ErrTagCycle, t.LocalID)
		}
		if _, ok := byLocalID[t.ParentLocalID]; ok {
			pending[t.LocalID]++
			children[t.ParentLocalID] = append(children[t.ParentLocalID], t)
			continue
		}
		if t.ParentGUID != "" {
			continue
		}

		parent, err := localStore.FindByLocalID(ctx, models.KindTag, t.ParentLocalID)
		if errors.Is(err, store.ErrEntityNotFound) || (err == nil && parent.Meta().GUID == "") {
			return nil, fmt.Errorf("%w: %w: tag %s -> %s", ErrInvariantViolation, ErrDanglingTagParent, t.LocalID, t.ParentLocalID)
		}
		if err != nil {
			return nil, fmt.Errorf("find parent of tag %s: %w", t.LocalID, err)
		}
		t.ParentGUID = parent.Meta().GUID
	}

	sorted := make([]*models.Tag, 0, len(tags))
	queue := make([]*models.Tag, 0, len(tags))
	for _, t := range tags {
		if pending[t.LocalID] == 0 {
			queue = append(queue, t)
		}
	}

	for len(queue) > 0 {
		t := queue[0]
		queue = queue[1:]
		sorted = append(sorted, t)

		for _, child := range children[t.LocalID] {
			pending[child.LocalID]--
			if pending[child.LocalID] == 0 {
				queue = append(queue, child)
			}
		}
	}

	if len(sorted) != len(tags) {
		return nil, fmt.Errorf("%w: %w: %d tags unreachable", ErrInvariantViolation, ErrTagCycle, len(tags)-len(sorted))
	}

	return sorted, nil
}

// Package client holds the caller-side optimistic-update controller that
// front-ends drive: flip the displayed state immediately, reconcile with
// the authoritative toggle result, roll back on failure.
package client

import (
	"context"
	"sync"

	usecasecontract "github.com/mihretgbr/applaud/internal/usecase/contract"
)

// Toggler is the slice of the like usecase the controller calls.
type Toggler interface {
	Toggle(ctx context.Context, itemID, sessionID, profileID string) usecasecontract.ToggleResult
}

// itemView is the displayed state for one item. Pending guards against
// double submission while a toggle is in flight.
type itemView struct {
	Liked   bool
	Count   int64
	Pending bool
}

// LikeController is a two-state (idle/pending) per-item machine over a
// single authoritative local cache. The current liked flag is always read
// from this cache, never from transient render input; reading render input
// is how the flip-direction race happens.
type LikeController struct {
	mu        sync.Mutex
	toggler   Toggler
	sessionID string
	profileID string
	items     map[string]*itemView
}

// NewLikeController creates a controller acting as the given identity.
func NewLikeController(toggler Toggler, sessionID, profileID string) *LikeController {
	return &LikeController{
		toggler:   toggler,
		sessionID: sessionID,
		profileID: profileID,
		items:     map[string]*itemView{},
	}
}

// Seed installs the server-rendered state for an item.
func (c *LikeController) Seed(itemID string, liked bool, count int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[itemID] = &itemView{Liked: liked, Count: count}
}

// Displayed returns the state the UI should currently render.
func (c *LikeController) Displayed(itemID string) (liked bool, count int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if view, ok := c.items[itemID]; ok {
		return view.Liked, view.Count
	}
	return false, 0
}

// Toggle handles one user action. Returns false when the action was
// ignored because a toggle for the item is already pending.
//
// The displayed state is mutated optimistically before the call. On
// success it is overwritten with the authoritative result, which may
// differ from the optimistic guess if a concurrent toggle landed first.
// On failure it reverts to the pre-action snapshot. Pending is cleared
// unconditionally.
func (c *LikeController) Toggle(ctx context.Context, itemID string) bool {
	c.mu.Lock()
	view, ok := c.items[itemID]
	if !ok {
		view = &itemView{}
		c.items[itemID] = view
	}
	if view.Pending {
		c.mu.Unlock()
		return false
	}

	prevLiked, prevCount := view.Liked, view.Count
	view.Liked = !prevLiked
	if view.Liked {
		view.Count = prevCount + 1
	} else if prevCount > 0 {
		view.Count = prevCount - 1
	}
	view.Pending = true
	c.mu.Unlock()

	result := c.toggler.Toggle(ctx, itemID, c.sessionID, c.profileID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if result.Success {
		view.Liked = result.IsLiked
		view.Count = result.NewCount
	} else {
		view.Liked = prevLiked
		view.Count = prevCount
	}
	view.Pending = false
	return true
}

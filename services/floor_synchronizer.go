package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/LucasMargets11/mirubrodigital-sub002/config"
	"github.com/LucasMargets11/mirubrodigital-sub002/floorplan"
	"github.com/LucasMargets11/mirubrodigital-sub002/models"
	"github.com/LucasMargets11/mirubrodigital-sub002/utils"
)

type PrimaryActionKind string

const (
	PrimaryActionNone       PrimaryActionKind = "none"
	PrimaryActionStartOrder PrimaryActionKind = "start_order"
	PrimaryActionOpenOrder  PrimaryActionKind = "open_order"
)

// PrimaryAction is what the floor's main button does for a table: start a
// new order (free table), open the running order (occupied), or nothing
// (paused and disabled tables take no primary action).
type PrimaryAction struct {
	Kind    PrimaryActionKind `json:"kind"`
	TableID uint              `json:"table_id,omitempty"`
	OrderID uint              `json:"order_id,omitempty"`
}

// FloorSynchronizer keeps the current floor snapshot fresh by polling and
// layers selection/highlight interaction on top of it. A failed poll keeps
// the last good snapshot on screen and raises an error flag; it never
// blanks the floor and never backs off the schedule.
type FloorSynchronizer struct {
	Client   FloorClient
	Interval time.Duration
	StopChan chan struct{}

	mu                 sync.RWMutex
	snapshot           models.FloorSnapshot
	hasSnapshot        bool
	lastErr            error
	suspended          bool
	selectedTableID    *uint
	highlightedTableID *uint
}

func NewFloorSynchronizer(client FloorClient) *FloorSynchronizer {
	return &FloorSynchronizer{
		Client:   client,
		Interval: config.PollInterval(),
		StopChan: make(chan struct{}),
	}
}

// Start begins polling. The first fetch happens immediately so the floor
// is not empty for a full interval after navigation.
func (fs *FloorSynchronizer) Start() {
	go func() {
		fs.poll()

		ticker := time.NewTicker(fs.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				fs.poll()
			case <-fs.StopChan:
				return
			}
		}
	}()
}

// Stop halts the poll timer. Navigating away from the floor view must
// call this.
func (fs *FloorSynchronizer) Stop() {
	close(fs.StopChan)
}

// Suspend pauses polling without stopping the timer, so a dirty
// configuration preview is never overwritten by a background fetch.
func (fs *FloorSynchronizer) Suspend() {
	fs.mu.Lock()
	fs.suspended = true
	fs.mu.Unlock()
}

// Resume re-enables polling after the editor returns to a clean phase.
func (fs *FloorSynchronizer) Resume() {
	fs.mu.Lock()
	fs.suspended = false
	fs.mu.Unlock()
}

func (fs *FloorSynchronizer) poll() {
	fs.mu.RLock()
	suspended := fs.suspended
	fs.mu.RUnlock()
	if suspended {
		return
	}
	if err := fs.Refresh(context.Background()); err != nil && utils.ErrorLogger != nil {
		utils.ErrorLogger.Printf("floor snapshot fetch failed: %v", err)
	}
}

// Refresh fetches a snapshot now. On failure the previous snapshot is
// retained and the error is remembered until the next successful fetch.
func (fs *FloorSynchronizer) Refresh(ctx context.Context) error {
	snap, err := fs.Client.FetchSnapshot(ctx)

	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err != nil {
		fs.lastErr = err
		return err
	}

	fs.snapshot = snap
	fs.hasSnapshot = true
	fs.lastErr = nil

	// Selection and highlight survive a refresh only while their table
	// still exists in the new snapshot.
	if fs.selectedTableID != nil && fs.findNode(*fs.selectedTableID) == nil {
		fs.selectedTableID = nil
	}
	if fs.highlightedTableID != nil && fs.findNode(*fs.highlightedTableID) == nil {
		fs.highlightedTableID = nil
	}
	return nil
}

// Snapshot returns the last good snapshot, and whether one exists yet.
func (fs *FloorSynchronizer) Snapshot() (models.FloorSnapshot, bool) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return fs.snapshot, fs.hasSnapshot
}

// LastError reports the most recent fetch failure, nil after a successful
// fetch. A non-nil value with an existing snapshot means stale-but-shown.
func (fs *FloorSynchronizer) LastError() error {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return fs.lastErr
}

// Resolved runs layout resolution over the current snapshot.
func (fs *FloorSynchronizer) Resolved() floorplan.ResolvedFloor {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return floorplan.ResolveLayoutStrategy(fs.snapshot.Tables, fs.snapshot.Layout)
}

// StatusSummary recounts states from the current snapshot.
func (fs *FloorSynchronizer) StatusSummary() map[models.TableState]int {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return floorplan.Summarize(fs.snapshot.Tables)
}

// SelectTable marks a table selected. Disabled and unplaced tables cannot
// be selected; the call is then a no-op and reports false. Selection never
// mutates the table or its order.
func (fs *FloorSynchronizer) SelectTable(id uint) bool {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	node := fs.findNode(id)
	if node == nil || node.State == models.TableStateDisabled {
		return false
	}
	if node.Absolute == nil && node.Grid == nil {
		return false
	}
	sel := node.Table.ID
	fs.selectedTableID = &sel
	return true
}

// ClearSelection drops the current selection.
func (fs *FloorSynchronizer) ClearSelection() {
	fs.mu.Lock()
	fs.selectedTableID = nil
	fs.mu.Unlock()
}

// SelectedTableID returns the selected table id, nil when none.
func (fs *FloorSynchronizer) SelectedTableID() *uint {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return copyID(fs.selectedTableID)
}

// HighlightByCode highlights the first table whose code contains the term,
// case-insensitively. An empty term, or no match, clears the highlight.
// Highlight and selection are independent states.
func (fs *FloorSynchronizer) HighlightByCode(term string) *uint {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	term = strings.TrimSpace(term)
	if term == "" {
		fs.highlightedTableID = nil
		return nil
	}

	needle := strings.ToLower(term)
	for i := range fs.snapshot.Tables {
		if strings.Contains(strings.ToLower(fs.snapshot.Tables[i].Table.Code), needle) {
			id := fs.snapshot.Tables[i].Table.ID
			fs.highlightedTableID = &id
			return copyID(&id)
		}
	}
	fs.highlightedTableID = nil
	return nil
}

// HighlightedTableID returns the highlighted table id, nil when none.
func (fs *FloorSynchronizer) HighlightedTableID() *uint {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return copyID(fs.highlightedTableID)
}

// ResolvePrimaryAction decides the floor's main affordance for a table.
func (fs *FloorSynchronizer) ResolvePrimaryAction(tableID uint) PrimaryAction {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	node := fs.findNode(tableID)
	if node == nil {
		return PrimaryAction{Kind: PrimaryActionNone}
	}
	switch node.State {
	case models.TableStateFree:
		return PrimaryAction{Kind: PrimaryActionStartOrder, TableID: node.Table.ID}
	case models.TableStateOccupied:
		if node.ActiveOrder != nil {
			return PrimaryAction{Kind: PrimaryActionOpenOrder, TableID: node.Table.ID, OrderID: node.ActiveOrder.ID}
		}
	}
	return PrimaryAction{Kind: PrimaryActionNone}
}

// findNode looks a table up in the current snapshot. Callers hold fs.mu.
func (fs *FloorSynchronizer) findNode(id uint) *models.TableNode {
	for i := range fs.snapshot.Tables {
		if fs.snapshot.Tables[i].Table.ID == id {
			return &fs.snapshot.Tables[i]
		}
	}
	return nil
}

func copyID(id *uint) *uint {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

package services

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/LucasMargets11/mirubrodigital-sub002/floorplan"
	"github.com/LucasMargets11/mirubrodigital-sub002/models"
	"github.com/LucasMargets11/mirubrodigital-sub002/utils"
)

// EditorPhase is the configuration editor lifecycle: clean mirrors the
// last-saved configuration, dirty holds unsaved local edits, saving has a
// save request in flight.
type EditorPhase string

const (
	EditorPhaseClean  EditorPhase = "clean"
	EditorPhaseDirty  EditorPhase = "dirty"
	EditorPhaseSaving EditorPhase = "saving"
)

var (
	ErrNotLoaded    = errors.New("configuration not loaded")
	ErrSaveInFlight = errors.New("a save is already in progress")
)

// ConfigurationPatch is one preview merge: any subset of a layout change,
// table upserts and table removals, applied locally with no network
// round-trip.
type ConfigurationPatch struct {
	Layout       *models.Layout
	Upsert       []models.Table
	Remove       []uint   // persisted table ids
	RemoveDrafts []string // local keys of not-yet-saved tables
}

// EditorSummary feeds the live preview badge while editing.
type EditorSummary struct {
	TotalTables   int `json:"total_tables"`
	EnabledTables int `json:"enabled_tables"`
}

// ConfigurationEditor maintains a local, unsaved preview of the floor
// configuration next to the committed server state, and replaces the whole
// configuration atomically on save. It never discards dirty edits on its
// own: only a successful save or an explicit Discard moves it back to
// clean. While edits are dirty or saving, the paired floor synchronizer is
// suspended so a poll cannot overwrite the preview.
type ConfigurationEditor struct {
	Client FloorClient
	Floor  *FloorSynchronizer // optional

	mu        sync.Mutex
	loaded    bool
	phase     EditorPhase
	committed models.Configuration
	preview   models.Configuration
}

func NewConfigurationEditor(client FloorClient, floor *FloorSynchronizer) *ConfigurationEditor {
	return &ConfigurationEditor{
		Client: client,
		Floor:  floor,
		phase:  EditorPhaseClean,
	}
}

// Load fetches the committed configuration. On failure the editor stays
// unusable: it does not synthesize an empty configuration, editing is
// blocked until a retry succeeds.
func (ce *ConfigurationEditor) Load(ctx context.Context) error {
	cfg, err := ce.Client.LoadConfiguration(ctx)
	if err != nil {
		return err
	}

	ce.mu.Lock()
	defer ce.mu.Unlock()
	ce.committed = cloneConfiguration(cfg)
	ce.preview = cloneConfiguration(cfg)
	ce.loaded = true
	ce.phase = EditorPhaseClean
	return nil
}

func (ce *ConfigurationEditor) Phase() EditorPhase {
	ce.mu.Lock()
	defer ce.mu.Unlock()
	return ce.phase
}

// Preview returns the current local configuration, saved or not.
func (ce *ConfigurationEditor) Preview() (models.Configuration, error) {
	ce.mu.Lock()
	defer ce.mu.Unlock()
	if !ce.loaded {
		return models.Configuration{}, ErrNotLoaded
	}
	return cloneConfiguration(ce.preview), nil
}

// Summary recounts the preview for the live editing badge.
func (ce *ConfigurationEditor) Summary() (EditorSummary, error) {
	ce.mu.Lock()
	defer ce.mu.Unlock()
	if !ce.loaded {
		return EditorSummary{}, ErrNotLoaded
	}
	s := EditorSummary{TotalTables: len(ce.preview.Tables)}
	for _, t := range ce.preview.Tables {
		if t.IsEnabled {
			s.EnabledTables++
		}
	}
	return s, nil
}

// PreviewChange merges a patch into the local preview and marks the editor
// dirty. Nothing is sent to the server. New tables (id zero) are given a
// local key so later patches can address them before the server issues an
// id.
func (ce *ConfigurationEditor) PreviewChange(patch ConfigurationPatch) error {
	ce.mu.Lock()
	defer ce.mu.Unlock()

	if !ce.loaded {
		return ErrNotLoaded
	}
	if ce.phase == EditorPhaseSaving {
		return ErrSaveInFlight
	}

	if patch.Layout != nil {
		ce.preview.Layout.GridCols = patch.Layout.GridCols
		ce.preview.Layout.GridRows = patch.Layout.GridRows
	}

	for _, t := range patch.Upsert {
		if t.ID == 0 && t.LocalKey == "" {
			t.LocalKey = uuid.NewString()
		}
		ce.upsertTable(t)
	}

	if len(patch.Remove) > 0 || len(patch.RemoveDrafts) > 0 {
		removeIDs := make(map[uint]bool, len(patch.Remove))
		for _, id := range patch.Remove {
			removeIDs[id] = true
		}
		removeKeys := make(map[string]bool, len(patch.RemoveDrafts))
		for _, key := range patch.RemoveDrafts {
			removeKeys[key] = true
		}

		kept := ce.preview.Tables[:0]
		for _, t := range ce.preview.Tables {
			if t.ID != 0 && removeIDs[t.ID] {
				continue
			}
			if t.ID == 0 && removeKeys[t.LocalKey] {
				continue
			}
			kept = append(kept, t)
		}
		ce.preview.Tables = kept
	}

	ce.phase = EditorPhaseDirty
	ce.suspendFloor()
	return nil
}

// Discard drops unsaved edits and returns to the committed configuration.
// This is always caller-initiated; the editor never discards on its own.
func (ce *ConfigurationEditor) Discard() error {
	ce.mu.Lock()
	defer ce.mu.Unlock()

	if !ce.loaded {
		return ErrNotLoaded
	}
	if ce.phase == EditorPhaseSaving {
		return ErrSaveInFlight
	}

	ce.preview = cloneConfiguration(ce.committed)
	ce.phase = EditorPhaseClean
	ce.resumeFloor()
	return nil
}

// Save validates the preview and replaces the whole server configuration
// in one operation. On success the server's canonical configuration
// replaces both committed and preview state (the server owns ids and
// ordering). On failure the dirty preview is preserved so no work is lost.
// Concurrent saves from other sessions are last-write-wins; this resource
// has no version token.
func (ce *ConfigurationEditor) Save(ctx context.Context) (models.Configuration, error) {
	ce.mu.Lock()
	if !ce.loaded {
		ce.mu.Unlock()
		return models.Configuration{}, ErrNotLoaded
	}
	if ce.phase == EditorPhaseSaving {
		ce.mu.Unlock()
		return models.Configuration{}, ErrSaveInFlight
	}

	// Invalid placements are rejected before the PUT, per offending table.
	if verr := floorplan.ValidateConfiguration(ce.preview); verr != nil {
		ce.mu.Unlock()
		return models.Configuration{}, verr
	}

	payload := cloneConfiguration(ce.preview)
	ce.phase = EditorPhaseSaving
	ce.suspendFloor()
	ce.mu.Unlock()

	canonical, err := ce.Client.SaveConfiguration(ctx, payload)

	ce.mu.Lock()
	defer ce.mu.Unlock()

	if err != nil {
		ce.phase = EditorPhaseDirty
		return models.Configuration{}, err
	}

	ce.committed = cloneConfiguration(canonical)
	ce.preview = cloneConfiguration(canonical)
	ce.phase = EditorPhaseClean
	ce.resumeFloor()

	if utils.InfoLogger != nil {
		utils.InfoLogger.Printf("configuration saved: %d tables", len(canonical.Tables))
	}
	return cloneConfiguration(canonical), nil
}

// upsertTable replaces a table matched by id (persisted) or local key
// (draft), appending when no match exists. Callers hold ce.mu.
func (ce *ConfigurationEditor) upsertTable(t models.Table) {
	for i := range ce.preview.Tables {
		existing := ce.preview.Tables[i]
		if t.ID != 0 && existing.ID == t.ID {
			ce.preview.Tables[i] = t
			return
		}
		if t.ID == 0 && existing.ID == 0 && existing.LocalKey == t.LocalKey {
			ce.preview.Tables[i] = t
			return
		}
	}
	ce.preview.Tables = append(ce.preview.Tables, t)
}

func (ce *ConfigurationEditor) suspendFloor() {
	if ce.Floor != nil {
		ce.Floor.Suspend()
	}
}

func (ce *ConfigurationEditor) resumeFloor() {
	if ce.Floor != nil {
		ce.Floor.Resume()
	}
}

func cloneConfiguration(cfg models.Configuration) models.Configuration {
	out := cfg
	out.Tables = make([]models.Table, len(cfg.Tables))
	copy(out.Tables, cfg.Tables)
	return out
}

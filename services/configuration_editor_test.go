package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/LucasMargets11/mirubrodigital-sub002/floorplan"
	"github.com/LucasMargets11/mirubrodigital-sub002/models"
)

func committedConfig() models.Configuration {
	return models.Configuration{
		Layout: models.Layout{ID: 1, GridCols: intPtr(10), GridRows: intPtr(6)},
		Tables: []models.Table{
			{ID: 1, Code: "M1", Name: "Window 1", IsEnabled: true, GridX: intPtr(1), GridY: intPtr(1)},
			{ID: 2, Code: "M2", Name: "Window 2", IsEnabled: true, GridX: intPtr(2), GridY: intPtr(1)},
		},
	}
}

func TestLoadFailureBlocksEditing(t *testing.T) {
	client := &fakeFloorClient{loadErr: errors.New("service unavailable")}
	editor := NewConfigurationEditor(client, nil)

	assert.Error(t, editor.Load(context.Background()))

	// No synthetic empty configuration: every operation stays blocked.
	_, err := editor.Preview()
	assert.ErrorIs(t, err, ErrNotLoaded)
	_, err = editor.Summary()
	assert.ErrorIs(t, err, ErrNotLoaded)
	assert.ErrorIs(t, editor.PreviewChange(ConfigurationPatch{}), ErrNotLoaded)
	_, err = editor.Save(context.Background())
	assert.ErrorIs(t, err, ErrNotLoaded)
}

func TestPreviewChangeIsLocalAndMarksDirty(t *testing.T) {
	client := &fakeFloorClient{config: committedConfig()}
	editor := NewConfigurationEditor(client, nil)
	assert.NoError(t, editor.Load(context.Background()))
	assert.Equal(t, EditorPhaseClean, editor.Phase())

	draft := models.Table{Code: "M3", Name: "New table", IsEnabled: true}
	err := editor.PreviewChange(ConfigurationPatch{Upsert: []models.Table{draft}})
	assert.NoError(t, err)

	assert.Equal(t, EditorPhaseDirty, editor.Phase())
	assert.Empty(t, client.saved) // nothing hit the server

	preview, err := editor.Preview()
	assert.NoError(t, err)
	assert.Len(t, preview.Tables, 3)
	// A draft gets a local key so later patches can address it.
	assert.NotEmpty(t, preview.Tables[2].LocalKey)

	summary, err := editor.Summary()
	assert.NoError(t, err)
	assert.Equal(t, EditorSummary{TotalTables: 3, EnabledTables: 3}, summary)
}

func TestPreviewChangeUpsertAndRemove(t *testing.T) {
	client := &fakeFloorClient{config: committedConfig()}
	editor := NewConfigurationEditor(client, nil)
	assert.NoError(t, editor.Load(context.Background()))

	// Disable an existing table and delete the other.
	updated := committedConfig().Tables[0]
	updated.IsEnabled = false
	assert.NoError(t, editor.PreviewChange(ConfigurationPatch{
		Upsert: []models.Table{updated},
		Remove: []uint{2},
	}))

	preview, _ := editor.Preview()
	assert.Len(t, preview.Tables, 1)
	assert.False(t, preview.Tables[0].IsEnabled)

	summary, _ := editor.Summary()
	assert.Equal(t, EditorSummary{TotalTables: 1, EnabledTables: 0}, summary)

	// Add a draft then drop it by local key.
	assert.NoError(t, editor.PreviewChange(ConfigurationPatch{
		Upsert: []models.Table{{Code: "M9", IsEnabled: true}},
	}))
	preview, _ = editor.Preview()
	assert.Len(t, preview.Tables, 2)
	key := preview.Tables[1].LocalKey

	assert.NoError(t, editor.PreviewChange(ConfigurationPatch{RemoveDrafts: []string{key}}))
	preview, _ = editor.Preview()
	assert.Len(t, preview.Tables, 1)
}

func TestPreviewChangeLayout(t *testing.T) {
	client := &fakeFloorClient{config: committedConfig()}
	editor := NewConfigurationEditor(client, nil)
	assert.NoError(t, editor.Load(context.Background()))

	assert.NoError(t, editor.PreviewChange(ConfigurationPatch{
		Layout: &models.Layout{GridCols: intPtr(12), GridRows: intPtr(8)},
	}))

	preview, _ := editor.Preview()
	assert.Equal(t, 12, *preview.Layout.GridCols)
	assert.Equal(t, 8, *preview.Layout.GridRows)
	// The layout row identity is not editable locally.
	assert.Equal(t, uint(1), preview.Layout.ID)
}

func TestSaveRejectsInvalidPlacementBeforePut(t *testing.T) {
	client := &fakeFloorClient{config: committedConfig()}
	editor := NewConfigurationEditor(client, nil)
	assert.NoError(t, editor.Load(context.Background()))

	bad := models.Table{Code: "BAD", IsEnabled: true, GridX: intPtr(20), GridY: intPtr(1)}
	assert.NoError(t, editor.PreviewChange(ConfigurationPatch{Upsert: []models.Table{bad}}))

	_, err := editor.Save(context.Background())
	var verr *floorplan.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Errors, 1)
	assert.Equal(t, "BAD", verr.Errors[0].Code)

	// Rejected before the atomic PUT: the server never saw the request,
	// and the dirty edits are preserved.
	assert.Empty(t, client.saved)
	assert.Equal(t, EditorPhaseDirty, editor.Phase())
}

func TestSaveSuccessAdoptsCanonicalConfiguration(t *testing.T) {
	client := &fakeFloorClient{config: committedConfig()}
	client.saveFn = func(cfg models.Configuration) (models.Configuration, error) {
		// The server issues ids for new tables and owns ordering.
		out := cfg
		out.Tables = make([]models.Table, len(cfg.Tables))
		copy(out.Tables, cfg.Tables)
		next := uint(100)
		for i := range out.Tables {
			if out.Tables[i].ID == 0 {
				out.Tables[i].ID = next
				out.Tables[i].LocalKey = ""
				next++
			}
		}
		return out, nil
	}

	editor := NewConfigurationEditor(client, nil)
	assert.NoError(t, editor.Load(context.Background()))

	assert.NoError(t, editor.PreviewChange(ConfigurationPatch{
		Upsert: []models.Table{{Code: "M3", IsEnabled: true, GridX: intPtr(3), GridY: intPtr(1)}},
	}))

	canonical, err := editor.Save(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, EditorPhaseClean, editor.Phase())
	assert.Len(t, client.saved, 1)

	// The editor's state is exactly the server's canonical configuration.
	preview, _ := editor.Preview()
	assert.Equal(t, canonical, preview)
	assert.Equal(t, uint(100), preview.Tables[2].ID)
}

func TestSaveFailurePreservesDirtyEdits(t *testing.T) {
	client := &fakeFloorClient{config: committedConfig()}
	client.saveFn = func(models.Configuration) (models.Configuration, error) {
		return models.Configuration{}, errors.New("gateway timeout")
	}

	editor := NewConfigurationEditor(client, nil)
	assert.NoError(t, editor.Load(context.Background()))
	assert.NoError(t, editor.PreviewChange(ConfigurationPatch{Remove: []uint{2}}))

	_, err := editor.Save(context.Background())
	assert.Error(t, err)
	assert.Equal(t, EditorPhaseDirty, editor.Phase())

	preview, _ := editor.Preview()
	assert.Len(t, preview.Tables, 1) // the unsaved removal is still there
}

func TestDiscardRevertsToCommitted(t *testing.T) {
	client := &fakeFloorClient{config: committedConfig()}
	editor := NewConfigurationEditor(client, nil)
	assert.NoError(t, editor.Load(context.Background()))

	assert.NoError(t, editor.PreviewChange(ConfigurationPatch{Remove: []uint{1, 2}}))
	preview, _ := editor.Preview()
	assert.Empty(t, preview.Tables)

	assert.NoError(t, editor.Discard())
	assert.Equal(t, EditorPhaseClean, editor.Phase())
	preview, _ = editor.Preview()
	assert.Len(t, preview.Tables, 2)
}

func TestDirtyEditorSuspendsFloorPolling(t *testing.T) {
	client := &fakeFloorClient{config: committedConfig(), snapshot: testSnapshot()}
	fs := NewFloorSynchronizer(client)
	editor := NewConfigurationEditor(client, fs)
	assert.NoError(t, editor.Load(context.Background()))

	fs.poll()
	assert.Equal(t, 1, client.fetches())

	// A dirty preview must not be raced by background snapshot polls.
	assert.NoError(t, editor.PreviewChange(ConfigurationPatch{Remove: []uint{1}}))
	fs.poll()
	assert.Equal(t, 1, client.fetches())

	_, err := editor.Save(context.Background())
	assert.NoError(t, err)
	fs.poll()
	assert.Equal(t, 2, client.fetches())
}

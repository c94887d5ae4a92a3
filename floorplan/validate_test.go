package floorplan

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/LucasMargets11/mirubrodigital-sub002/models"
)

func validLayout() models.Layout {
	return models.Layout{GridCols: intPtr(10), GridRows: intPtr(6)}
}

func TestValidateAcceptsInBoundsGrid(t *testing.T) {
	cfg := models.Configuration{
		Layout: validLayout(),
		Tables: []models.Table{
			{ID: 1, Code: "M1", GridX: intPtr(1), GridY: intPtr(1)},
			{ID: 2, Code: "M2", GridX: intPtr(9), GridY: intPtr(5), GridW: intPtr(2), GridH: intPtr(2)},
		},
	}
	assert.Nil(t, ValidateConfiguration(cfg))
}

func TestValidateRejectsOutOfBoundsExtentPerTable(t *testing.T) {
	cfg := models.Configuration{
		Layout: validLayout(),
		Tables: []models.Table{
			{ID: 1, Code: "OK", GridX: intPtr(1), GridY: intPtr(1)},
			{ID: 2, Code: "WIDE", GridX: intPtr(9), GridY: intPtr(1), GridW: intPtr(3)},
			{ID: 3, Code: "TALL", GridX: intPtr(1), GridY: intPtr(6), GridH: intPtr(2)},
		},
	}
	verr := ValidateConfiguration(cfg)

	assert.NotNil(t, verr)
	assert.Len(t, verr.Errors, 2)
	assert.Equal(t, "WIDE", verr.Errors[0].Code)
	assert.Equal(t, "TALL", verr.Errors[1].Code)
}

func TestValidateRejectsGridPlacementWithoutGridBounds(t *testing.T) {
	cfg := models.Configuration{
		Layout: models.Layout{},
		Tables: []models.Table{
			{ID: 1, Code: "M1", GridX: intPtr(1), GridY: intPtr(1)},
		},
	}
	verr := ValidateConfiguration(cfg)

	assert.NotNil(t, verr)
	assert.Len(t, verr.Errors, 1)
}

func TestValidateRejectsZeroBasedCells(t *testing.T) {
	cfg := models.Configuration{
		Layout: validLayout(),
		Tables: []models.Table{
			{ID: 1, Code: "M1", GridX: intPtr(0), GridY: intPtr(1)},
		},
	}
	assert.NotNil(t, ValidateConfiguration(cfg))
}

func TestValidateRejectsDuplicateCodes(t *testing.T) {
	cfg := models.Configuration{
		Layout: validLayout(),
		Tables: []models.Table{
			{ID: 1, Code: "M1"},
			{ID: 2, Code: "m1"},
		},
	}
	verr := ValidateConfiguration(cfg)

	assert.NotNil(t, verr)
	assert.Len(t, verr.Errors, 1)
	assert.Equal(t, uint(2), verr.Errors[0].TableID)
}

func TestValidateIgnoresAbsoluteOutOfRange(t *testing.T) {
	// Absolute values are trusted from the editor and clipped visually.
	cfg := models.Configuration{
		Layout: validLayout(),
		Tables: []models.Table{
			{ID: 1, Code: "M1", AbsX: floatPtr(120), AbsY: floatPtr(-5), AbsW: floatPtr(50), AbsH: floatPtr(50)},
		},
	}
	assert.Nil(t, ValidateConfiguration(cfg))
}

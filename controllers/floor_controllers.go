package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/LucasMargets11/mirubrodigital-sub002/floorplan"
	"github.com/LucasMargets11/mirubrodigital-sub002/models"
	"github.com/LucasMargets11/mirubrodigital-sub002/utils"
)

type FloorController struct {
	DB *gorm.DB
}

func NewFloorController(db *gorm.DB) *FloorController {
	return &FloorController{DB: db}
}

// GetSnapshot -> one consistent read of layout + derived table nodes.
// This is the endpoint the live floor view polls.
func (fc *FloorController) GetSnapshot(c *gin.Context) {
	layout, nodes, err := fc.buildFloor()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	snapshot := models.FloorSnapshot{
		ServerTime: time.Now(),
		Layout:     layout,
		Tables:     nodes,
	}
	utils.RespondJSON(c, http.StatusOK, "Floor snapshot", snapshot)
}

// GetFloorStats -> counts-by-state aggregate for dashboard badges.
func (fc *FloorController) GetFloorStats(c *gin.Context) {
	_, nodes, err := fc.buildFloor()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	counts := floorplan.Summarize(nodes)
	utils.RespondJSON(c, http.StatusOK, "Floor stats", gin.H{
		"free":     counts[models.TableStateFree],
		"occupied": counts[models.TableStateOccupied],
		"paused":   counts[models.TableStatePaused],
		"disabled": counts[models.TableStateDisabled],
		"total":    len(nodes),
	})
}

// buildFloor loads the layout and all tables, joins the active order per
// table and derives node state. Nodes are rebuilt from scratch on every
// call; state is never read from storage.
func (fc *FloorController) buildFloor() (*models.Layout, []models.TableNode, error) {
	var layout *models.Layout
	var stored models.Layout
	if err := fc.DB.First(&stored).Error; err == nil {
		layout = &stored
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}

	var tables []models.Table
	if err := fc.DB.Order("id ASC").Find(&tables).Error; err != nil {
		return nil, nil, err
	}

	var orders []models.Order
	if err := fc.DB.
		Where("table_id IS NOT NULL AND status NOT IN ?", []string{models.OrderStatusClosed, models.OrderStatusCancelled}).
		Order("updated_at ASC").
		Find(&orders).Error; err != nil {
		return nil, nil, err
	}

	// At most one active order per table; if upstream data has more, the
	// most recently updated one wins.
	activeByTable := make(map[uint]models.ActiveOrder, len(orders))
	for i := range orders {
		if orders[i].TableID != nil {
			activeByTable[*orders[i].TableID] = orders[i].ActiveView()
		}
	}

	nodes := make([]models.TableNode, 0, len(tables))
	for _, t := range tables {
		var active *models.ActiveOrder
		if ao, ok := activeByTable[t.ID]; ok {
			active = &ao
		}
		nodes = append(nodes, floorplan.BuildNode(t, active))
	}
	return layout, nodes, nil
}

package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/LucasMargets11/mirubrodigital-sub002/models"
	"github.com/LucasMargets11/mirubrodigital-sub002/utils"
)

type OrderController struct {
	DB *gorm.DB
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db}
}

// CreateOrder -> start a new order at a table. This is the navigation
// target of the FREE primary action on the floor.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req struct {
		TableID uint `json:"table_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var table models.Table
	if err := oc.DB.First(&table, req.TableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if !table.IsEnabled {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("table %s is disabled", table.Code))
		return
	}
	if table.IsPaused {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("table %s is paused", table.Code))
		return
	}

	var existing int64
	oc.DB.Model(&models.Order{}).
		Where("table_id = ? AND status NOT IN ?", table.ID, []string{models.OrderStatusClosed, models.OrderStatusCancelled}).
		Count(&existing)
	if existing > 0 {
		utils.RespondError(c, http.StatusConflict, fmt.Errorf("table %s already has an active order", table.Code))
		return
	}

	order := models.Order{
		Status:    models.OrderStatusOpen,
		TableID:   &table.ID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := oc.DB.Create(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Order %s started at table %s", order.DisplayNumber(), table.Code)
	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// GetOrderByID -> order detail, the OCCUPIED primary-action target.
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	idStr := c.Param("order_id")
	id, _ := strconv.Atoi(idStr)

	var order models.Order
	if err := oc.DB.Preload("Table").First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// AssignTable -> move an order to another table.
func (oc *OrderController) AssignTable(c *gin.Context) {
	idStr := c.Param("order_id")
	id, _ := strconv.Atoi(idStr)

	var req struct {
		TableID uint `json:"table_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var order models.Order
	if err := oc.DB.First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if !order.IsActive() {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("order %s is no longer active", order.DisplayNumber()))
		return
	}

	var table models.Table
	if err := oc.DB.First(&table, req.TableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if !table.IsEnabled {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("table %s is disabled", table.Code))
		return
	}

	order.TableID = &table.ID
	order.UpdatedAt = time.Now()
	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Order %s assigned to table %s", order.DisplayNumber(), table.Code)
	utils.RespondJSON(c, http.StatusOK, "Order assigned to table", order)
}

// CloseOrder -> close an order, freeing its table on the next snapshot.
func (oc *OrderController) CloseOrder(c *gin.Context) {
	idStr := c.Param("order_id")
	id, _ := strconv.Atoi(idStr)

	var order models.Order
	if err := oc.DB.First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	order.Status = models.OrderStatusClosed
	order.UpdatedAt = time.Now()
	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Order %s closed", order.DisplayNumber())
	utils.RespondJSON(c, http.StatusOK, "Order closed", order)
}

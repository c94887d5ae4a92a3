package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/LucasMargets11/mirubrodigital-sub002/floorplan"
	"github.com/LucasMargets11/mirubrodigital-sub002/models"
	"github.com/LucasMargets11/mirubrodigital-sub002/utils"
)

type ConfigurationController struct {
	DB *gorm.DB
}

func NewConfigurationController(db *gorm.DB) *ConfigurationController {
	return &ConfigurationController{DB: db}
}

// GetConfiguration -> the editable pair of table list + layout.
func (cc *ConfigurationController) GetConfiguration(c *gin.Context) {
	cfg, err := cc.loadConfiguration()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Floor configuration", cfg)
}

// ReplaceConfiguration -> atomic whole-replace of tables + layout.
//
// There is deliberately no per-table patch endpoint: table existence and
// placements are interdependent (deleting a table must drop its placement
// with it), so the whole configuration is validated and swapped in one
// transaction. Concurrent saves are last-write-wins; the resource carries
// no version token.
func (cc *ConfigurationController) ReplaceConfiguration(c *gin.Context) {
	var req models.Configuration
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if verr := floorplan.ValidateConfiguration(req); verr != nil {
		utils.RespondJSON(c, http.StatusUnprocessableEntity, "Invalid configuration", verr.Errors)
		return
	}

	err := cc.DB.Transaction(func(tx *gorm.DB) error {
		var layout models.Layout
		err := tx.First(&layout).Error
		switch {
		case err == nil:
			layout.GridCols = req.Layout.GridCols
			layout.GridRows = req.Layout.GridRows
			if err := tx.Save(&layout).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			layout = models.Layout{GridCols: req.Layout.GridCols, GridRows: req.Layout.GridRows}
			if err := tx.Create(&layout).Error; err != nil {
				return err
			}
		default:
			return err
		}

		// Tables absent from the request are removed, placements with them.
		keep := make([]uint, 0, len(req.Tables))
		for _, t := range req.Tables {
			if t.ID != 0 {
				keep = append(keep, t.ID)
			}
		}
		del := tx.Model(&models.Table{})
		if len(keep) > 0 {
			del = del.Where("id NOT IN ?", keep)
		} else {
			del = del.Where("id > 0")
		}
		if err := del.Delete(&models.Table{}).Error; err != nil {
			return err
		}

		for i := range req.Tables {
			if req.Tables[i].ID == 0 {
				// New table: the server issues the id.
				if err := tx.Create(&req.Tables[i]).Error; err != nil {
					return err
				}
			} else {
				if err := tx.Save(&req.Tables[i]).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	cfg, err := cc.loadConfiguration()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Floor configuration replaced: %d tables", len(cfg.Tables))
	utils.RespondJSON(c, http.StatusOK, "Configuration saved", cfg)
}

// loadConfiguration reads the canonical configuration in id order, the
// ordering clients adopt after a save.
func (cc *ConfigurationController) loadConfiguration() (models.Configuration, error) {
	var cfg models.Configuration
	if err := cc.DB.Order("id ASC").Find(&cfg.Tables).Error; err != nil {
		return cfg, err
	}
	if err := cc.DB.First(&cfg.Layout).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return cfg, err
	}
	return cfg, nil
}

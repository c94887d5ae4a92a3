package Controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/LucasMargets11/mirubrodigital-sub002/controllers"
	"github.com/LucasMargets11/mirubrodigital-sub002/models"
	"github.com/LucasMargets11/mirubrodigital-sub002/utils"
)

func setupTestDBForFloor(t *testing.T) *gorm.DB {
	// One named in-memory database per test so seeds do not leak between
	// tests while the pool still shares a single database.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.Table{}, &models.Layout{}, &models.Order{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func setupFloorRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	floorCtrl := controllers.NewFloorController(db)
	router.GET("/floor/snapshot", floorCtrl.GetSnapshot)
	router.GET("/floor/stats", floorCtrl.GetFloorStats)
	return router
}

func intPtr(v int) *int { return &v }
func floatPtr(v float64) *float64 { return &v }

func seedFloor(t *testing.T, db *gorm.DB) {
	layout := models.Layout{GridCols: intPtr(10), GridRows: intPtr(6)}
	assert.NoError(t, db.Create(&layout).Error)

	tables := []models.Table{
		{Code: "M11", Name: "Window 1", IsEnabled: true, GridX: intPtr(1), GridY: intPtr(1)},
		{Code: "M12", Name: "Window 2", IsEnabled: true, GridX: intPtr(2), GridY: intPtr(1)},
		{Code: "T1", Name: "Terrace 1", IsEnabled: true, IsPaused: true,
			AbsX: floatPtr(10), AbsY: floatPtr(10), AbsW: floatPtr(10), AbsH: floatPtr(10)},
		{Code: "T2", Name: "Terrace 2", IsEnabled: false},
	}
	for i := range tables {
		assert.NoError(t, db.Create(&tables[i]).Error)
	}

	order := models.Order{Status: models.OrderStatusOpen, TableID: &tables[1].ID,
		CreatedAt: time.Now(), UpdatedAt: time.Now()}
	assert.NoError(t, db.Create(&order).Error)
}

type snapshotResponse struct {
	Status  bool                 `json:"status"`
	Message string               `json:"message"`
	Data    models.FloorSnapshot `json:"data"`
}

func TestGetSnapshotDerivesStates(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForFloor(t)
	seedFloor(t, db)

	router := setupFloorRouter(db)
	req, _ := http.NewRequest("GET", "/floor/snapshot", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp snapshotResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Floor snapshot", resp.Message)
	assert.False(t, resp.Data.ServerTime.IsZero())

	assert.NotNil(t, resp.Data.Layout)
	assert.Equal(t, 10, *resp.Data.Layout.GridCols)

	assert.Len(t, resp.Data.Tables, 4)
	byCode := map[string]models.TableNode{}
	for _, n := range resp.Data.Tables {
		byCode[n.Table.Code] = n
	}

	assert.Equal(t, models.TableStateFree, byCode["M11"].State)
	assert.Equal(t, models.TableStateOccupied, byCode["M12"].State)
	assert.NotNil(t, byCode["M12"].ActiveOrder)
	assert.Equal(t, models.TableStatePaused, byCode["T1"].State)
	assert.Equal(t, models.TableStateDisabled, byCode["T2"].State)

	// Placements resolve from the stored columns.
	assert.NotNil(t, byCode["M11"].Grid)
	assert.NotNil(t, byCode["T1"].Absolute)
	assert.Nil(t, byCode["T2"].Grid)
	assert.Nil(t, byCode["T2"].Absolute)
}

func TestGetSnapshotDisabledTableWithOrderStaysDisabled(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForFloor(t)

	table := models.Table{Code: "X1", Name: "Broken", IsEnabled: false}
	assert.NoError(t, db.Create(&table).Error)
	order := models.Order{Status: models.OrderStatusOpen, TableID: &table.ID,
		CreatedAt: time.Now(), UpdatedAt: time.Now()}
	assert.NoError(t, db.Create(&order).Error)

	router := setupFloorRouter(db)
	req, _ := http.NewRequest("GET", "/floor/snapshot", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp snapshotResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	// Upstream inconsistency tolerated: disabled wins for display.
	assert.Equal(t, models.TableStateDisabled, resp.Data.Tables[0].State)
}

func TestGetFloorStats(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForFloor(t)
	seedFloor(t, db)

	router := setupFloorRouter(db)
	req, _ := http.NewRequest("GET", "/floor/stats", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["free"])
	assert.Equal(t, float64(1), data["occupied"])
	assert.Equal(t, float64(1), data["paused"])
	assert.Equal(t, float64(1), data["disabled"])
	assert.Equal(t, float64(4), data["total"])
}

package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"restaurant-reservation/config"
	"restaurant-reservation/controllers"
	"restaurant-reservation/models"
	"restaurant-reservation/utils"
)

func setupTestDBForReservations(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	if err := config.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func setupReservationRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	reservationCtrl := controllers.NewReservationController(db)
	r.GET("/reservations", reservationCtrl.GetAllReservations)
	r.POST("/reservations", reservationCtrl.CreateReservation)
	r.PUT("/reservations/:id", reservationCtrl.UpdateReservationStatus)
	r.PUT("/reservations/:id/cancel", reservationCtrl.CancelReservation)
	r.DELETE("/reservations/:id", reservationCtrl.DeleteReservation)
	return r
}

func seedTable(t *testing.T, db *gorm.DB, name string) models.Table {
	table := models.Table{Name: name, Capacity: 4, Location: models.LocationHall}
	if err := db.Create(&table).Error; err != nil {
		t.Fatalf("failed to seed table: %v", err)
	}
	return table
}

func activeSlotCount(db *gorm.DB, tableID uint, at time.Time) int64 {
	var count int64
	db.Model(&models.Reservation{}).
		Where("table_id = ? AND time = ? AND status IN ?", tableID, at,
			[]string{models.ReservationPending, models.ReservationConfirmed}).
		Count(&count)
	return count
}

// The core invariant: a slot can be booked once, rejected while active, and
// booked again after the holder cancels.
func TestReservationSlotConflict(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForReservations(t)
	r := setupReservationRouter(db)
	table := seedTable(t, db, "T1")
	slot := "2024-06-01T20:00:00Z"
	slotTime, _ := time.Parse(time.RFC3339, slot)

	w := postJSON(r, http.MethodPost, "/reservations", map[string]interface{}{
		"table": table.ID, "name": "Sara", "phone": "09120000001", "guests": 2, "time": slot,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp utils.JSONResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	first := resp.Data.(map[string]interface{})
	assert.Equal(t, models.ReservationPending, first["status"])
	firstID := int(first["id"].(float64))

	// Same table, same instant: rejected, nothing written.
	w = postJSON(r, http.MethodPost, "/reservations", map[string]interface{}{
		"table": table.ID, "name": "Reza", "phone": "09120000002", "guests": 3, "time": slot,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, int64(1), activeSlotCount(db, table.ID, slotTime))

	// A different instant on the same table is fine.
	w = postJSON(r, http.MethodPost, "/reservations", map[string]interface{}{
		"table": table.ID, "name": "Reza", "phone": "09120000002", "guests": 3, "time": "2024-06-01T21:00:00Z",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// Cancelling frees the slot.
	url := "/reservations/" + strconv.Itoa(firstID)
	w = postJSON(r, http.MethodPut, url, map[string]interface{}{"status": "cancelled"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = postJSON(r, http.MethodPost, "/reservations", map[string]interface{}{
		"table": table.ID, "name": "Nima", "phone": "09120000003", "guests": 4, "time": slot,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, int64(1), activeSlotCount(db, table.ID, slotTime))
}

func TestReservationConfirmedAlsoBlocks(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForReservations(t)
	r := setupReservationRouter(db)
	table := seedTable(t, db, "T1")
	slot := "2024-06-02T19:30:00Z"

	w := postJSON(r, http.MethodPost, "/reservations", map[string]interface{}{
		"table": table.ID, "name": "Sara", "phone": "09120000001", "guests": 2, "time": slot,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp utils.JSONResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	id := int(resp.Data.(map[string]interface{})["id"].(float64))

	w = postJSON(r, http.MethodPut, "/reservations/"+strconv.Itoa(id), map[string]interface{}{"status": "confirmed"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = postJSON(r, http.MethodPost, "/reservations", map[string]interface{}{
		"table": table.ID, "name": "Reza", "phone": "09120000002", "guests": 2, "time": slot,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateReservationValidation(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForReservations(t)
	r := setupReservationRouter(db)
	table := seedTable(t, db, "T1")

	// Unknown table.
	w := postJSON(r, http.MethodPost, "/reservations", map[string]interface{}{
		"table": 999, "name": "Sara", "phone": "0912", "guests": 2, "time": "2024-06-01T20:00:00Z",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Zero guests.
	w = postJSON(r, http.MethodPost, "/reservations", map[string]interface{}{
		"table": table.ID, "name": "Sara", "phone": "0912", "guests": 0, "time": "2024-06-01T20:00:00Z",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Missing phone.
	w = postJSON(r, http.MethodPost, "/reservations", map[string]interface{}{
		"table": table.ID, "name": "Sara", "guests": 2, "time": "2024-06-01T20:00:00Z",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	db.Model(&models.Reservation{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestReservationStatusUpdateRules(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForReservations(t)
	r := setupReservationRouter(db)
	table := seedTable(t, db, "T1")

	reservation := models.Reservation{
		TableID: table.ID, Name: "Sara", Phone: "0912", Guests: 2,
		Time: time.Date(2024, 6, 1, 20, 0, 0, 0, time.UTC), Status: models.ReservationConfirmed,
	}
	db.Create(&reservation)
	url := "/reservations/" + strconv.Itoa(int(reservation.ID))

	// Transitions are permissive: confirmed may go back to pending.
	w := postJSON(r, http.MethodPut, url, map[string]interface{}{"status": "pending"})
	assert.Equal(t, http.StatusOK, w.Code)

	// But the value must be in the enum.
	w = postJSON(r, http.MethodPut, url, map[string]interface{}{"status": "archived"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(r, http.MethodPut, "/reservations/9999", map[string]interface{}{"status": "confirmed"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// A cancelled reservation cannot be re-activated into a slot someone else
// took meanwhile; the unique index rejects it and the row stays cancelled.
func TestReactivateIntoOccupiedSlot(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForReservations(t)
	r := setupReservationRouter(db)
	table := seedTable(t, db, "T1")
	slot := "2024-06-03T20:00:00Z"
	slotTime, _ := time.Parse(time.RFC3339, slot)

	w := postJSON(r, http.MethodPost, "/reservations", map[string]interface{}{
		"table": table.ID, "name": "Sara", "phone": "09120000001", "guests": 2, "time": slot,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	var resp utils.JSONResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	firstID := int(resp.Data.(map[string]interface{})["id"].(float64))
	firstURL := "/reservations/" + strconv.Itoa(firstID)

	w = postJSON(r, http.MethodPut, firstURL, map[string]interface{}{"status": "cancelled"})
	assert.Equal(t, http.StatusOK, w.Code)

	// Someone else grabs the freed slot.
	w = postJSON(r, http.MethodPost, "/reservations", map[string]interface{}{
		"table": table.ID, "name": "Reza", "phone": "09120000002", "guests": 3, "time": slot,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	for _, status := range []string{"pending", "confirmed"} {
		w = postJSON(r, http.MethodPut, firstURL, map[string]interface{}{"status": status})
		assert.Equal(t, http.StatusConflict, w.Code)
	}
	assert.Equal(t, int64(1), activeSlotCount(db, table.ID, slotTime))

	var first models.Reservation
	db.First(&first, firstID)
	assert.Equal(t, models.ReservationCancelled, first.Status)
}

func TestCancelReservationOwnerCheck(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForReservations(t)
	r := setupReservationRouter(db)
	table := seedTable(t, db, "T1")

	reservation := models.Reservation{
		TableID: table.ID, Name: "Sara", Phone: "09120000001", Guests: 2,
		Time: time.Date(2024, 6, 1, 20, 0, 0, 0, time.UTC), Status: models.ReservationConfirmed,
	}
	db.Create(&reservation)
	url := "/reservations/" + strconv.Itoa(int(reservation.ID)) + "/cancel"

	// No session, wrong phone: refused.
	req := httptest.NewRequest(http.MethodPut, url+"?phone=09999999999", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Matching phone cancels, even from confirmed.
	req = httptest.NewRequest(http.MethodPut, url+"?phone=09120000001", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.Reservation
	db.First(&updated, reservation.ID)
	assert.Equal(t, models.ReservationCancelled, updated.Status)
	assert.Nil(t, updated.Active)
}

func TestListReservationFilters(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForReservations(t)
	r := setupReservationRouter(db)
	table := seedTable(t, db, "T1")

	seed := []models.Reservation{
		{TableID: table.ID, Name: "Sara Mohammadi", Phone: "09120000001", Guests: 2,
			Time: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), Status: models.ReservationPending},
		{TableID: table.ID, Name: "Reza Karimi", Phone: "09350000002", Guests: 4,
			Time: time.Date(2024, 6, 1, 23, 30, 0, 0, time.UTC), Status: models.ReservationConfirmed},
		{TableID: table.ID, Name: "Nima Sadeghi", Phone: "09120000003", Guests: 3,
			Time: time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC), Status: models.ReservationPending},
	}
	for i := range seed {
		db.Create(&seed[i])
	}

	listLen := func(url string) int {
		req := httptest.NewRequest(http.MethodGet, url, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		var resp utils.JSONResponse
		json.Unmarshal(w.Body.Bytes(), &resp)
		if resp.Data == nil {
			return 0
		}
		return len(resp.Data.([]interface{}))
	}

	// Day filter is half-open: midnight of the next day is excluded.
	assert.Equal(t, 2, listLen("/reservations?date=2024-06-01"))
	assert.Equal(t, 1, listLen("/reservations?date=2024-06-02"))

	assert.Equal(t, 1, listLen("/reservations?status=confirmed"))

	// Substring, case-insensitive.
	assert.Equal(t, 1, listLen("/reservations?name=reza"))
	assert.Equal(t, 2, listLen("/reservations?phone=0912"))

	req := httptest.NewRequest(http.MethodGet, "/reservations?date=bad-date", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteReservation(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForReservations(t)
	r := setupReservationRouter(db)
	table := seedTable(t, db, "T1")

	reservation := models.Reservation{
		TableID: table.ID, Name: "Sara", Phone: "0912", Guests: 2,
		Time: time.Date(2024, 6, 1, 20, 0, 0, 0, time.UTC), Status: models.ReservationPending,
	}
	db.Create(&reservation)

	req := httptest.NewRequest(http.MethodDelete, "/reservations/"+strconv.Itoa(int(reservation.ID)), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodDelete, "/reservations/9999", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"restaurant-reservation/config"
	"restaurant-reservation/controllers"
	"restaurant-reservation/models"
	"restaurant-reservation/utils"
)

func setupTestDBForUsers(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	if err := config.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func setupUserRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	userCtrl := controllers.NewUserController(db)
	r.GET("/users", userCtrl.GetAllUsers)
	r.PUT("/users/:id", userCtrl.UpdateUserRole)
	r.DELETE("/users/:id", userCtrl.DeleteUser)
	return r
}

func seedUsers(db *gorm.DB) {
	db.Create(&models.User{Email: "sara@example.com", Password: "x", FirstName: "Sara",
		LastName: "Mohammadi", Phone: "09120000001", Role: models.RoleUser})
	db.Create(&models.User{Email: "reza@example.com", Password: "x", FirstName: "Reza",
		LastName: "Karimi", Phone: "09350000002", Role: models.RoleUser})
	db.Create(&models.User{Email: "admin@example.com", Password: "x", FirstName: "Admin",
		LastName: "System", Role: models.RoleAdmin})
}

func TestListUsersFilters(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForUsers(t)
	r := setupUserRouter(db)
	seedUsers(db)

	listBody := func(url string) (int, string) {
		req := httptest.NewRequest(http.MethodGet, url, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		var resp utils.JSONResponse
		json.Unmarshal(w.Body.Bytes(), &resp)
		if resp.Data == nil {
			return 0, w.Body.String()
		}
		return len(resp.Data.([]interface{})), w.Body.String()
	}

	count, body := listBody("/users")
	assert.Equal(t, 3, count)
	// The hash never leaves the server.
	assert.False(t, strings.Contains(body, "\"password\""))

	count, _ = listBody("/users?name=karimi")
	assert.Equal(t, 1, count)

	count, _ = listBody("/users?email=SARA")
	assert.Equal(t, 1, count)

	count, _ = listBody("/users?phone=0912")
	assert.Equal(t, 1, count)
}

func TestUpdateUserRole(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForUsers(t)
	r := setupUserRouter(db)
	seedUsers(db)

	var user models.User
	db.Where("email = ?", "sara@example.com").First(&user)
	url := "/users/" + strconv.Itoa(int(user.ID))

	w := postJSON(r, http.MethodPut, url, map[string]interface{}{"role": "admin"})
	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.User
	db.First(&updated, user.ID)
	assert.Equal(t, models.RoleAdmin, updated.Role)

	w = postJSON(r, http.MethodPut, url, map[string]interface{}{"role": "superuser"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(r, http.MethodPut, "/users/9999", map[string]interface{}{"role": "admin"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteUser(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForUsers(t)
	r := setupUserRouter(db)
	seedUsers(db)

	var user models.User
	db.Where("email = ?", "reza@example.com").First(&user)

	req := httptest.NewRequest(http.MethodDelete, "/users/"+strconv.Itoa(int(user.ID)), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(2), count)

	req = httptest.NewRequest(http.MethodDelete, "/users/9999", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

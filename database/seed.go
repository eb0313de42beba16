package database

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"restaurant-reservation/models"
	"restaurant-reservation/utils"
)

// Seed wipes tables, menu items and users and loads the demo dataset:
// seven tables, the sixteen-dish menu and two known accounts
// (admin@example.com/admin123, user@example.com/user123).
func Seed(db *gorm.DB) error {
	if err := db.Where("1 = 1").Delete(&models.OrderItem{}).Error; err != nil {
		return err
	}
	if err := db.Where("1 = 1").Delete(&models.Order{}).Error; err != nil {
		return err
	}
	if err := db.Where("1 = 1").Delete(&models.Reservation{}).Error; err != nil {
		return err
	}
	for _, model := range []interface{}{&models.Table{}, &models.MenuItem{}, &models.User{}} {
		if err := db.Where("1 = 1").Delete(model).Error; err != nil {
			return err
		}
	}

	tables := []models.Table{
		{Name: "میز ۱", Capacity: 2, Location: models.LocationHall},
		{Name: "میز ۲", Capacity: 4, Location: models.LocationHall},
		{Name: "میز ۳", Capacity: 6, Location: models.LocationHall},
		{Name: "میز ۴", Capacity: 2, Location: models.LocationVIP},
		{Name: "میز ۵", Capacity: 4, Location: models.LocationVIP},
		{Name: "میز ۶", Capacity: 8, Location: models.LocationOutdoor},
		{Name: "میز ۷", Capacity: 4, Location: models.LocationOutdoor},
	}
	if err := db.Create(&tables).Error; err != nil {
		return err
	}

	menu := []models.MenuItem{
		{Title: "کباب کوبیده", Price: 45000, Category: models.CategoryKebab, Available: true},
		{Title: "کباب برگ", Price: 55000, Category: models.CategoryKebab, Available: true},
		{Title: "جوجه کباب", Price: 40000, Category: models.CategoryKebab, Available: true},
		{Title: "کباب چنجه", Price: 60000, Category: models.CategoryKebab, Available: true},
		{Title: "قرمه سبزی", Price: 35000, Category: models.CategoryStew, Available: true},
		{Title: "قیمه", Price: 38000, Category: models.CategoryStew, Available: true},
		{Title: "فسنجان", Price: 42000, Category: models.CategoryStew, Available: true},
		{Title: "بادمجان", Price: 30000, Category: models.CategoryStew, Available: true},
		{Title: "سالاد شیرازی", Price: 15000, Category: models.CategoryAppetizer, Available: true},
		{Title: "ماست و خیار", Price: 12000, Category: models.CategoryAppetizer, Available: true},
		{Title: "کشک بادمجان", Price: 18000, Category: models.CategoryAppetizer, Available: true},
		{Title: "میرزاقاسمی", Price: 16000, Category: models.CategoryAppetizer, Available: true},
		{Title: "دوغ", Price: 8000, Category: models.CategoryDrink, Available: true},
		{Title: "شربت آلبالو", Price: 10000, Category: models.CategoryDrink, Available: true},
		{Title: "چای", Price: 5000, Category: models.CategoryDrink, Available: true},
		{Title: "قهوه ترک", Price: 15000, Category: models.CategoryDrink, Available: true},
	}
	if err := db.Create(&menu).Error; err != nil {
		return err
	}

	users := []struct {
		email, password, first, last, role string
	}{
		{"admin@example.com", "admin123", "مدیر", "سیستم", models.RoleAdmin},
		{"user@example.com", "user123", "کاربر", "تست", models.RoleUser},
	}
	for _, u := range users {
		hashed, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := models.User{
			Email:     u.email,
			Password:  string(hashed),
			FirstName: u.first,
			LastName:  u.last,
			Role:      u.role,
		}
		if err := db.Create(&user).Error; err != nil {
			return err
		}
	}

	utils.InfoLogger.Printf("Seeded %d tables, %d menu items and %d users", len(tables), len(menu), len(users))
	return nil
}

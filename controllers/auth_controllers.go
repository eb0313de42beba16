package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"restaurant-reservation/config"
	"restaurant-reservation/middlewares"
	"restaurant-reservation/models"
	"restaurant-reservation/utils"
)

type AuthController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAuthController(db *gorm.DB, cfg *config.Config) *AuthController {
	return &AuthController{DB: db, Cfg: cfg}
}

func (ac *AuthController) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(utils.SessionCookie, token, int(ac.Cfg.TokenTTL.Seconds()), "/", "", ac.Cfg.CookieSecure, true)
}

// Register creates a user account and signs it in immediately.
func (ac *AuthController) Register(c *gin.Context) {
	var req struct {
		Email     string `json:"email" binding:"required,email"`
		Password  string `json:"password" binding:"required,min=6"`
		FirstName string `json:"firstName" binding:"required"`
		LastName  string `json:"lastName" binding:"required"`
		Phone     string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var existing models.User
	if err := ac.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		utils.RespondError(c, http.StatusConflict, errors.New("a user with this email is already registered"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	user := models.User{
		Email:     req.Email,
		Password:  string(hashed),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Role:      models.RoleUser,
	}

	if err := ac.DB.Create(&user).Error; err != nil {
		// Unique index on email catches the race the pre-check can lose.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondError(c, http.StatusConflict, errors.New("a user with this email is already registered"))
			return
		}
		utils.RespondDBError(c, err, "user not found")
		return
	}

	token, err := utils.GenerateToken(ac.Cfg.JWTSecret, ac.Cfg.TokenTTL, user.ID, user.Role)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	ac.setSessionCookie(c, token)

	utils.InfoLogger.Printf("New user registered: %s", user.Email)
	utils.RespondJSON(c, http.StatusCreated, user)
}

// Login checks credentials and issues a session cookie. Unknown email and
// wrong password return the same message.
func (ac *AuthController) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var user models.User
	if err := ac.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid email or password"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid email or password"))
		return
	}

	token, err := utils.GenerateToken(ac.Cfg.JWTSecret, ac.Cfg.TokenTTL, user.ID, user.Role)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	ac.setSessionCookie(c, token)

	utils.InfoLogger.Printf("User logged in: %s", user.Email)
	utils.RespondJSON(c, http.StatusOK, user)
}

// Logout clears the session cookie. Safe to call with no session at all.
func (ac *AuthController) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(utils.SessionCookie, "", -1, "/", "", ac.Cfg.CookieSecure, true)
	utils.RespondJSON(c, http.StatusOK, gin.H{"message": "logged out"})
}

// Me returns the session user's public projection.
func (ac *AuthController) Me(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, user)
}

// UpdateProfile lets the session user change their own contact fields.
func (ac *AuthController) UpdateProfile(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}

	var req struct {
		FirstName *string `json:"firstName"`
		LastName  *string `json:"lastName"`
		Phone     *string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.FirstName != nil {
		if *req.FirstName == "" {
			utils.RespondError(c, http.StatusBadRequest, errors.New("firstName must not be empty"))
			return
		}
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		if *req.LastName == "" {
			utils.RespondError(c, http.StatusBadRequest, errors.New("lastName must not be empty"))
			return
		}
		user.LastName = *req.LastName
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}

	if err := ac.DB.Save(&user).Error; err != nil {
		utils.RespondDBError(c, err, "user not found")
		return
	}
	utils.RespondJSON(c, http.StatusOK, user)
}

package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type JSONResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func RespondJSON(c *gin.Context, code int, data interface{}) {
	c.JSON(code, JSONResponse{
		Success: true,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, JSONResponse{
		Success: false,
		Error:   err.Error(),
	})
}

// RespondDBError hides database internals behind a generic message. Missing
// rows and duplicate keys map to their own statuses; everything else is
// logged and surfaced as a 500.
func RespondDBError(c *gin.Context, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		RespondError(c, http.StatusNotFound, errors.New(notFoundMsg))
	case errors.Is(err, gorm.ErrDuplicatedKey):
		RespondError(c, http.StatusConflict, errors.New("duplicate record"))
	default:
		ErrorLogger.Printf("database error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
	}
}

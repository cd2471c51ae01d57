package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/astralisgame/astralis-backend/internal/platform/apierr"
)

// RespondError maps an error to the {"error": "..."} body the client
// expects, honoring an apierr status when one is attached.
func RespondError(c *gin.Context, status int, err error) {
	var ae *apierr.Error
	if errors.As(err, &ae) && ae.Status != 0 {
		status = ae.Status
	}
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, gin.H{"error": msg})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetHome godoc
// @Summary Home endpoint
// @Produce plain
// @Success 200 {string} string "minhasfinancas API"
// @Router / [get]
func GetHome(c *gin.Context) {
	c.String(http.StatusOK, "minhasfinancas API")
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func RegisterHealth(router gin.IRoutes) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "Healthy"})
	})
	router.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "Ready"})
	})
}

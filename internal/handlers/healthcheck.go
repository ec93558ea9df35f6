package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const HelloGreeting = "Hello, CRM!"

func HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// Hello is the trivial liveness query the heartbeat job verifies.
func Hello(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"hello": HelloGreeting})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"serverless-gin-api/internal/models"
)

// @Summary Say hello
// @Description Plain-text greeting. Without a name it greets the world.
// @Tags greetings
// @Produce plain
// @Param name query string false "Name to greet"
// @Success 200 {string} string "Hello world!"
// @Router /hello [get]
func Hello(c *gin.Context) {
	c.String(http.StatusOK, models.Salutation(c.Query("name")))
}

package controllers

import (
	"net/http"

	"github.com/5pponent/diary-server/api/models"

	"github.com/gin-gonic/gin"
)

// GetOccupations lists the catalog users choose their occupation and interests from.
func (server *Server) GetOccupations(c *gin.Context) {
	occupations, err := models.FindOccupations(server.db(c.Request.Context()))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   http.StatusOK,
		"response": occupationsToDTO(occupations),
	})
}

package web

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "awesomejar",
		"mode":    "cloud-scheduler",
	})
}

// handleTrigger is called by the external scheduler to send one milestone.
func (s *Server) handleTrigger(c *gin.Context) {
	log.Println("received trigger from scheduler")

	item, err := s.courier.Send(c.Request.Context(), s.send)
	if err != nil {
		log.Printf("trigger: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
			"message": "Failed to send milestone",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"category": item.Category,
		"message":  "Milestone sent successfully",
	})
}

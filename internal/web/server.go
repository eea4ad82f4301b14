// Package web exposes the Cloud-Scheduler style HTTP trigger: a health
// check and an endpoint that sends one milestone.
package web

import (
	"github.com/gin-gonic/gin"

	"github.com/jo/awesomejar/internal/deliver"
)

// Server is the milestone trigger server.
type Server struct {
	courier *deliver.Courier
	send    deliver.SendFunc
	router  *gin.Engine
}

// NewServer wires the trigger routes. send delivers the composed message
// to the user (DM or webhook).
func NewServer(courier *deliver.Courier, send deliver.SendFunc) *Server {
	router := gin.Default()

	s := &Server{
		courier: courier,
		send:    send,
		router:  router,
	}

	router.GET("/", s.handleHealth)
	router.GET("/cron/send-milestone", s.handleTrigger)
	router.POST("/cron/send-milestone", s.handleTrigger)

	return s
}

// Run starts the server (blocking).
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

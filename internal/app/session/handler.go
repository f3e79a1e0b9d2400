package session

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler interface {
	CreateSession(c *gin.Context)
	EndSession(c *gin.Context)
}

type handler struct {
	service Service
}

func NewHandler(service Service) Handler {
	return &handler{service: service}
}

func (h *handler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	session, user, err := h.service.CreateSession(req.Email, c.GetHeader("User-Agent"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"_id":        user.ID,
		"name":       user.Name,
		"team_id":    user.TeamID,
		"sessionKey": session.SessionKey,
	})
}

func (h *handler) EndSession(c *gin.Context) {
	sessionKey := c.Query("session_key")
	if sessionKey == "" {
		sessionKey = c.GetHeader("X-Session-Key")
	}
	if sessionKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_key is required"})
		return
	}

	if err := h.service.EndSession(sessionKey); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

package message

import (
	"errors"
	"net/http"

	"backend/internal/app/user"
	"backend/internal/middleware"
	"backend/internal/providers/minio"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler interface {
	GetConversation(c *gin.Context)
	Send(c *gin.Context)
	Edit(c *gin.Context)
	Delete(c *gin.Context)
	React(c *gin.Context)
	ChatList(c *gin.Context)
}

type handler struct {
	service Service
	userSvc user.Service
	minioP  *minio.MinioProvider
	logger  *zap.SugaredLogger
}

func NewHandler(service Service, userSvc user.Service, minioP *minio.MinioProvider, logger *zap.Logger) Handler {
	return &handler{
		service: service,
		userSvc: userSvc,
		minioP:  minioP,
		logger:  logger.Sugar(),
	}
}

// GetConversation returns the full history between the caller and the given
// user, oldest first, with attachment URLs resolved.
func (h *handler) GetConversation(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	otherID := c.Param("userId")
	if _, err := uuid.Parse(otherID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID format"})
		return
	}

	messages, err := h.service.GetConversation(c.Request.Context(), caller.ID, otherID)
	if err != nil {
		h.logger.Errorw("GetConversation failed", "caller", caller.ID, "other", otherID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	other, err := h.userSvc.GetUserByID(c.Request.Context(), otherID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, ConversationResponse{
		Messages: messages,
		User:     other,
		Client:   caller.ID,
	})
}

// Send accepts a multipart form with a receiver, an optional text body and an
// optional file. The persisted record is returned; delivery to live websocket
// sessions happens through the event bus.
func (h *handler) Send(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	receiver := c.PostForm("receiver")
	if _, err := uuid.Parse(receiver); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid receiver"})
		return
	}
	body := c.PostForm("message")

	var fileID string
	if file, err := c.FormFile("files"); err == nil && file != nil {
		if h.minioP == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "file storage unavailable"})
			return
		}
		stored, err := h.minioP.Store(file)
		if err != nil {
			h.logger.Errorw("Send: file upload failed", "filename", file.Filename, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload file"})
			return
		}
		fileID = stored.ObjectName
	}

	msg, err := h.service.SendMessage(c.Request.Context(), SendMessageInput{
		Sender:   caller.ID,
		Receiver: receiver,
		Body:     body,
		FileID:   fileID,
	})
	if err != nil {
		if errors.Is(err, ErrEmptyMessage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Errorw("Send failed", "sender", caller.ID, "receiver", receiver, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, SendMessageResponse{
		Success: true,
		Message: msg,
		MsgID:   msg.ID,
	})
}

func (h *handler) Edit(c *gin.Context) {
	messageID := c.Param("messageId")
	if _, err := uuid.Parse(messageID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message ID format"})
		return
	}

	var req EditMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	msg, err := h.service.EditMessage(c.Request.Context(), messageID, req.NewMessage)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
			return
		}
		h.logger.Errorw("Edit failed", "message_id", messageID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, msg)
}

func (h *handler) Delete(c *gin.Context) {
	messageID := c.Param("messageId")
	if _, err := uuid.Parse(messageID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message ID format"})
		return
	}

	if err := h.service.DeleteMessage(c.Request.Context(), messageID); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
			return
		}
		h.logger.Errorw("Delete failed", "message_id", messageID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message deleted successfully"})
}

func (h *handler) React(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	messageID := c.Param("messageId")
	if _, err := uuid.Parse(messageID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message ID format"})
		return
	}

	var req AddReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	msg, err := h.service.AddReaction(c.Request.Context(), messageID, caller.ID, req.Emoji)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
			return
		}
		h.logger.Errorw("React failed", "message_id", messageID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, msg)
}

// ChatList returns the caller's candidate conversation partners: members of
// the given team, excluding the caller and the given email.
func (h *handler) ChatList(c *gin.Context) {
	caller, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	teamID := c.Query("team_id")
	email := c.Query("email")
	if teamID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "team_id is required"})
		return
	}

	partners, err := h.userSvc.TeamPartners(c.Request.Context(), teamID, email, caller.ID)
	if err != nil {
		h.logger.Errorw("ChatList failed", "team_id", teamID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if len(partners) == 0 {
		c.JSON(http.StatusForbidden, gin.H{"error": "No users found"})
		return
	}

	c.JSON(http.StatusOK, partners)
}

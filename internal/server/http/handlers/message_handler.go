package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/mysticmart/internal/domain/model"
	"github.com/polkiloo/mysticmart/internal/server/http/dto"
)

// MessageHandler accepts contact form submissions and serves the inbox.
type MessageHandler struct {
	facade MessageFacade
}

// NewMessageHandler constructs MessageHandler.
func NewMessageHandler(facade MessageFacade) *MessageHandler {
	return &MessageHandler{facade: facade}
}

// Submit handles POST /api/contact.
func (h *MessageHandler) Submit(c *gin.Context) {
	var req dto.ContactRequest
	if !bindJSON(c, &req, false) {
		return
	}
	msg, err := h.facade.SubmitMessage(c.Request.Context(), model.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toMessageResponse(*msg))
}

// List handles GET /api/admin/contact-messages[?unread=true].
func (h *MessageHandler) List(c *gin.Context) {
	messages, err := h.facade.Messages(c.Request.Context(), boolQuery(c, "unread"), pageQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSlice(messages, toMessageResponse))
}

// MarkRead handles PUT /api/admin/contact-messages. read defaults to true.
func (h *MessageHandler) MarkRead(c *gin.Context) {
	var req dto.MarkReadRequest
	if !bindJSON(c, &req, true) {
		return
	}
	id, err := recordID(c, "id", req.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	read := true
	if req.Read != nil {
		read = *req.Read
	}
	msg, err := h.facade.MarkMessageRead(c.Request.Context(), id, read)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMessageResponse(*msg))
}

// Delete handles DELETE /api/admin/contact-messages.
func (h *MessageHandler) Delete(c *gin.Context) {
	var req dto.IDRequest
	if !bindJSON(c, &req, true) {
		return
	}
	id, err := recordID(c, "id", req.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.facade.DeleteMessage(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Success: true})
}

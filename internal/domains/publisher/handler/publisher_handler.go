package handler

import (
	"net/http"

	"newsapi-backend/internal/domains/publisher"
	"newsapi-backend/internal/shared/middleware"
	"newsapi-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// PublisherHandler handles HTTP requests for publisher domain
type PublisherHandler struct {
	service publisher.Service
}

func NewPublisherHandler(service publisher.Service) *PublisherHandler {
	return &PublisherHandler{service: service}
}

// Register handles POST /auth/register
func (h *PublisherHandler) Register(c *gin.Context) {
	var req publisher.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// Login handles POST /auth/login
func (h *PublisherHandler) Login(c *gin.Context) {
	var req publisher.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Me handles GET /me
func (h *PublisherHandler) Me(c *gin.Context) {
	result, err := h.service.Me(c.Request.Context(), middleware.CallerFrom(c))
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// UpdateWebhook handles PUT /me/webhook
func (h *PublisherHandler) UpdateWebhook(c *gin.Context) {
	caller := middleware.CallerFrom(c)
	if _, err := caller.Require(); err != nil {
		response.Fail(c, err)
		return
	}

	var req publisher.UpdateWebhookRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.service.UpdateWebhook(c.Request.Context(), caller, req)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// List handles GET /publishers
func (h *PublisherHandler) List(c *gin.Context) {
	result, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return false
	}
	return true
}

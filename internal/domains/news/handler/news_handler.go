package handler

import (
	"net/http"

	"newsapi-backend/internal/domains/news"
	"newsapi-backend/internal/shared/middleware"
	"newsapi-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// NewsHandler handles HTTP requests for news domain
type NewsHandler struct {
	service news.Service
}

func NewNewsHandler(service news.Service) *NewsHandler {
	return &NewsHandler{service: service}
}

// List handles GET /news
func (h *NewsHandler) List(c *gin.Context) {
	var req news.ListNewsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// ListMine handles GET /me/news
func (h *NewsHandler) ListMine(c *gin.Context) {
	caller := middleware.CallerFrom(c)
	if _, err := caller.Require(); err != nil {
		response.Fail(c, err)
		return
	}

	var req news.MyNewsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.service.ListMine(c.Request.Context(), caller, req)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// GetByID handles GET /news/:id
func (h *NewsHandler) GetByID(c *gin.Context) {
	h.detail(c, news.DetailRequest{ID: c.Param("id")})
}

// GetBySlug handles GET /news/slug/:slug
func (h *NewsHandler) GetBySlug(c *gin.Context) {
	h.detail(c, news.DetailRequest{Slug: c.Param("slug")})
}

func (h *NewsHandler) detail(c *gin.Context, req news.DetailRequest) {
	result, err := h.service.Detail(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Create handles POST /news
func (h *NewsHandler) Create(c *gin.Context) {
	caller := middleware.CallerFrom(c)
	if _, err := caller.Require(); err != nil {
		response.Fail(c, err)
		return
	}

	var req news.CreateNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.service.Create(c.Request.Context(), caller, req)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// Update handles PUT /news/:id
func (h *NewsHandler) Update(c *gin.Context) {
	caller := middleware.CallerFrom(c)
	if _, err := caller.Require(); err != nil {
		response.Fail(c, err)
		return
	}

	var req news.UpdateNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.service.Update(c.Request.Context(), caller, c.Param("id"), req)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Delete handles DELETE /news/:id
func (h *NewsHandler) Delete(c *gin.Context) {
	result, err := h.service.Delete(c.Request.Context(), middleware.CallerFrom(c), c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

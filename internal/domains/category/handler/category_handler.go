package handler

import (
	"net/http"

	"newsapi-backend/internal/domains/category"
	"newsapi-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	service category.Service
}

func NewCategoryHandler(svc category.Service) *CategoryHandler {
	return &CategoryHandler{service: svc}
}

// ========== LIST: GET /api/v1/categories ==========
func (h *CategoryHandler) List(c *gin.Context) {
	resp, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"stockroom/internal/core/apperror"
	"stockroom/internal/metadata"
)

// MetadataHandler serves entity descriptions for form builders.
type MetadataHandler struct {
	*BaseHandler
	registry *metadata.Registry
}

func NewMetadataHandler(base *BaseHandler, registry *metadata.Registry) *MetadataHandler {
	return &MetadataHandler{
		BaseHandler: base,
		registry:    registry,
	}
}

// ListEntities returns all registered entity definitions.
// GET /api/v1/meta
func (h *MetadataHandler) ListEntities(c *gin.Context) {
	h.OK(c, h.registry.List())
}

// GetEntity returns the definition of a single entity.
// GET /api/v1/meta/:name
func (h *MetadataHandler) GetEntity(c *gin.Context) {
	name := c.Param("name")
	def, ok := h.registry.Get(name)
	if !ok {
		h.Error(c, apperror.NewNotFound("entity not found", name))
		return
	}
	h.OK(c, def)
}

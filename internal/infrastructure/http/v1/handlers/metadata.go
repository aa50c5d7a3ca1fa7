package handlers

import (
	"github.com/gin-gonic/gin"

	"knkadmin/internal/metadata"
)

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

// ListEntities returns every registered entity config.
// GET /api/v1/meta
func (h *MetadataHandler) ListEntities(c *gin.Context) {
	h.OK(c, h.registry.List())
}

// GetEntity returns the config for one type tag.
// GET /api/v1/meta/:type
func (h *MetadataHandler) GetEntity(c *gin.Context) {
	cfg, err := h.registry.Lookup(c.Param("type"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, cfg)
}

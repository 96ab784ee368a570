package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"stocksapi/internal/provider"
)

// SnapshotStore reads back what the watcher recorded.
type SnapshotStore interface {
	Latest(ctx context.Context) ([]provider.Quote, error)
}

type SnapshotsResponse struct {
	Quotes []provider.Quote `json:"quotes"`
}

type SnapshotHandler struct {
	store SnapshotStore
}

func NewSnapshotHandler(store SnapshotStore) *SnapshotHandler {
	return &SnapshotHandler{store: store}
}

// Latest handles GET /api/snapshots/latest.
func (h *SnapshotHandler) Latest(c *gin.Context) {
	quotes, err := h.store.Latest(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	if quotes == nil {
		quotes = []provider.Quote{}
	}
	c.JSON(http.StatusOK, SnapshotsResponse{Quotes: quotes})
}

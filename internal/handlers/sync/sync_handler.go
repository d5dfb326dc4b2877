// internal/handlers/sync/sync_handler.go
package sync

import (
	"net/http"

	"alamin-service/internal/domain/snapshot"
	"alamin-service/internal/pkg/response"
	service "alamin-service/internal/service/sync"

	"github.com/gin-gonic/gin"
)

type SyncHandler struct {
	syncService *service.SyncService
}

func NewSyncHandler(syncService *service.SyncService) *SyncHandler {
	return &SyncHandler{
		syncService: syncService,
	}
}

// Export returns the full backup document.
func (h *SyncHandler) Export(c *gin.Context) {
	snap, err := h.syncService.Export(c.Request.Context())
	if err != nil {
		response.FromError(c, "failed to export data", err)
		return
	}

	// Raw document, not the response envelope: the export is re-imported
	// verbatim.
	c.JSON(http.StatusOK, snap)
}

// Import merges a backup document into the store.
func (h *SyncHandler) Import(c *gin.Context) {
	var doc snapshot.ImportDocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid import document", err)
		return
	}

	report, err := h.syncService.Import(c.Request.Context(), &doc)
	if err != nil {
		response.FromError(c, "import failed", err)
		return
	}

	response.Success(c, http.StatusOK, "import completed", report)
}

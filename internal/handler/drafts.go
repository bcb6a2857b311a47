package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stock-ahora/truestock-api/internal/state"
)

// draftKeyPrefix namespaces caller-supplied draft keys in the state table.
const draftKeyPrefix = "truestock.draft."

// DraftsHandler stores in-progress form state under caller-supplied keys.
// Writes go through the debounced draft store so typing bursts coalesce.
type DraftsHandler struct {
	Drafts *state.DraftStore
}

func (h *DraftsHandler) Get(c *gin.Context) {
	raw, ok, err := h.Drafts.Get(draftKeyPrefix + c.Param("key"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load draft"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Draft not found"})
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}

func (h *DraftsHandler) Put(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil || !json.Valid(body) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "draft must be a JSON document"})
		return
	}
	h.Drafts.Put(draftKeyPrefix+c.Param("key"), body)
	c.JSON(http.StatusAccepted, gin.H{"message": "Draft saved"})
}

func (h *DraftsHandler) Delete(c *gin.Context) {
	if err := h.Drafts.Delete(draftKeyPrefix + c.Param("key")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete draft"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Draft deleted"})
}

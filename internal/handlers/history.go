package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const errLoadHistory = "error al leer el historial"

// @Summary      Event history
// @Description  Reverse-chronological event log. Entries with a missing description or timestamp are excluded.
// @Tags         history
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, events"
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/history [get]
func (h *Handler) getHistory(c *gin.Context) {
	entries, err := h.services.History.List(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadHistory, "history_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":  len(entries),
		"events": entries,
	})
}

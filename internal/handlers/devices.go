package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gigahouse/internal/models"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK      = "ok"
	statusToggled = "toggled"

	errToggleDevice = "no se pudo cambiar el estado"
	errProbeFailed  = "dispositivo no disponible"
)

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Current state snapshot
// @Description  Last observed device states, temperature, and siren status. Eventually consistent; connected=false means the values may be stale.
// @Tags         devices
// @Produce      json
// @Success      200  {object}  models.StateSnapshot
// @Router       /api/v1/state [get]
func (h *Handler) getState(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Observer.Snapshot())
}

// @Summary      List controllable devices
// @Tags         devices
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "devices"
// @Router       /api/v1/devices [get]
func (h *Handler) listDevices(c *gin.Context) {
	snap := h.services.Observer.Snapshot()
	type deviceView struct {
		models.Device
		On bool `json:"on"`
	}
	out := make([]deviceView, 0, len(models.Catalog()))
	for _, d := range models.Catalog() {
		out = append(out, deviceView{Device: d, On: snap.Devices[d.ID]})
	}
	c.JSON(http.StatusOK, gin.H{"devices": out})
}

// @Summary      Get one device state
// @Tags         devices
// @Produce      json
// @Param        id  path  string  true  "Logical device identifier"
// @Success      200  {object}  map[string]interface{}  "device, on"
// @Router       /api/v1/devices/{id} [get]
func (h *Handler) getDevice(c *gin.Context) {
	id := c.Param("id")
	snap := h.services.Observer.Snapshot()
	c.JSON(http.StatusOK, gin.H{"device": id, "on": snap.Devices[id]})
}

// @Summary      Toggle a device
// @Description  Inverts the device state (read-then-write or direct device call depending on mode). Not operation-idempotent: every call flips again.
// @Tags         devices
// @Produce      json
// @Param        id  path  string  true  "Logical device identifier"
// @Success      200  {object}  map[string]interface{}  "status, device, on"
// @Failure      502  {object}  map[string]interface{}  "error, on=false"
// @Router       /api/v1/devices/{id}/toggle [post]
func (h *Handler) toggleDevice(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	on, err := h.services.Dispatcher.Toggle(ctx, id)
	if err != nil {
		// Transport failure: report off so the caller never ends up undefined.
		if h.log != nil {
			h.log.Errorw("device_toggle_failed", "err", err, "device", id)
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": errToggleDevice, "device": id, "on": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusToggled, "device": id, "on": on})
}

// @Summary      Connectivity probe
// @Description  Issues a point-in-time liveness check against the store or device. There is no periodic background poll.
// @Tags         devices
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "connected"
// @Failure      502  {object}  map[string]interface{}
// @Router       /api/v1/probe [post]
func (h *Handler) probe(c *gin.Context) {
	if err := h.services.Observer.Probe(c.Request.Context()); err != nil {
		h.logAndJSONError(c, http.StatusBadGateway, errProbeFailed, "probe_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"connected": true})
}

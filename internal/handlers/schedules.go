package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gigahouse/internal/models"
	"gigahouse/internal/service"
)

const (
	statusScheduleSaved = "saved"

	errSaveSchedule = "error al guardar la programación"
	errLoadSchedule = "error al leer la programación"

	defaultScheduleDescription = "Programación desde app"

	msgSameDaySaved  = "¡Programación normal guardada!"
	msgExtendedSaved = "¡Programación extendida guardada!"
)

// Request DTO for saving a schedule.
type scheduleRequest struct {
	Tipo          string `json:"tipo" binding:"required"` // mismo_dia | extendido
	FechaInicio   string `json:"fecha_inicio"`
	FechaFin      string `json:"fecha_fin,omitempty"` // required if tipo=extendido
	HoraEncendido string `json:"hora_encendido"`
	HoraApagado   string `json:"hora_apagado"`
	Descripcion   string `json:"descripcion,omitempty"`
	Activo        bool   `json:"activo"`
}

// @Summary      Save a schedule
// @Description  Overwrites the device's timed-activation rule, replacing any prior one. mismo_dia needs fecha_inicio; extendido also needs fecha_fin.
// @Tags         schedules
// @Accept       json
// @Produce      json
// @Param        id    path  string           true  "Device identifier"
// @Param        body  body  scheduleRequest  true  "Schedule payload"
// @Success      200   {object}  map[string]interface{}  "status, message"
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/schedules/{id} [put]
func (h *Handler) putSchedule(c *gin.Context) {
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body: " + err.Error()})
		return
	}
	if req.Descripcion == "" {
		req.Descripcion = defaultScheduleDescription
	}

	rule := models.ScheduleRule{
		DeviceID:    c.Param("id"),
		Kind:        models.ScheduleKind(req.Tipo),
		StartDate:   req.FechaInicio,
		EndDate:     req.FechaFin,
		OnTime:      req.HoraEncendido,
		OffTime:     req.HoraApagado,
		Description: req.Descripcion,
		Active:      req.Activo,
	}

	if err := h.services.Scheduler.Save(c.Request.Context(), rule); err != nil {
		switch {
		case errors.Is(err, service.ErrMissingDevice),
			errors.Is(err, service.ErrMissingDate),
			errors.Is(err, service.ErrMissingEndDate):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logAndJSONError(c, http.StatusInternalServerError, errSaveSchedule, "schedule_save_failed", err, "device", rule.DeviceID)
		}
		return
	}

	message := msgSameDaySaved
	if rule.Kind == models.ScheduleExtended {
		message = msgExtendedSaved
	}
	c.JSON(http.StatusOK, gin.H{"status": statusScheduleSaved, "message": message})
}

// @Summary      Get a device's schedule
// @Tags         schedules
// @Produce      json
// @Param        id  path  string  true  "Device identifier"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/schedules/{id} [get]
func (h *Handler) getSchedule(c *gin.Context) {
	id := c.Param("id")
	rule, ok, err := h.services.Scheduler.Get(c.Request.Context(), id)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadSchedule, "schedule_get_failed", err, "device", id)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "sin programación"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"device":         id,
		"tipo":           rule.Kind,
		"fecha_inicio":   rule.StartDate,
		"fecha_fin":      rule.EndDate,
		"hora_encendido": rule.OnTime,
		"hora_apagado":   rule.OffTime,
		"descripcion":    rule.Description,
		"activo":         rule.Active,
	})
}

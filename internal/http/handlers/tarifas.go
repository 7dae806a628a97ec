package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"transportes-backend/internal/domain"
	"transportes-backend/internal/domain/models"
	"transportes-backend/internal/pricing"
	"transportes-backend/internal/repositories"

	"github.com/gin-gonic/gin"
)

type tarifaPayload struct {
	AliadoID   int64            `json:"aliadoId"`
	ServicioID int64            `json:"servicioId"`
	VehiculoID int64            `json:"vehiculoId"`
	Precio     pricing.Montoish `json:"precio"`
	Comision   pricing.Montoish `json:"comision"`
}

// GET /api/tarifas?aliadoId=3
func GetTarifas(c *gin.Context) {
	var aliadoID int64
	if raw := strings.TrimSpace(c.Query("aliadoId")); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "aliadoId invalido"})
			return
		}
		aliadoID = v
	}

	list, err := repositories.TarifaRepo{}.List(aliadoID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// POST /api/tarifas  (upsert por aliado+servicio+vehiculo)
func UpsertTarifa(c *gin.Context) {
	var payload tarifaPayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	if payload.Precio < 0 || payload.Comision < 0 {
		RespondDomainError(c, domain.ValidationError{Field: "tarifa", Msg: "precio y comision no pueden ser negativos"})
		return
	}

	t := models.Tarifa{
		AliadoID:   payload.AliadoID,
		ServicioID: payload.ServicioID,
		VehiculoID: payload.VehiculoID,
		Precio:     payload.Precio.Int64(),
		Comision:   payload.Comision.Int64(),
	}
	if err := (repositories.TarifaRepo{}).Upsert(t); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "tarifa guardada"})
}

// DELETE /api/tarifas/:id
func DeleteTarifa(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id invalido"})
		return
	}
	if err := (repositories.TarifaRepo{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "tarifa eliminada"})
}

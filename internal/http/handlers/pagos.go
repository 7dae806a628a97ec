package handlers

import (
	"net/http"
	"time"

	"transportes-backend/internal/http/middleware"
	"transportes-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type confirmarPagoRequest struct {
	Codigo     string `json:"codigo"`
	Referencia string `json:"referencia"`
}

// POST /api/pagos/confirmar
// El frontend llama aqui al volver del checkout del procesador.
func ConfirmarPago(c *gin.Context) {
	var req confirmarPagoRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	d := getDeps()
	svc := services.PagoService{
		Procesador: d.Procesador,
		Metrics:    d.Metrics,
		RequestID:  middleware.GetRequestID(c),
		Intentos:   d.Env.PagosIntentos,
		Backoff:    time.Second,
	}
	resultado, err := svc.Confirmar(c.Request.Context(), req.Codigo, req.Referencia)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resultado)
}

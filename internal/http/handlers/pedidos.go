package handlers

import (
	"net/http"

	"transportes-backend/internal/http/middleware"
	"transportes-backend/internal/repositories"
	"transportes-backend/internal/services"

	"github.com/gin-gonic/gin"
)

// POST /api/pedidos
func CrearPedido(c *gin.Context) {
	var input services.PedidoInput
	if !BindJSONOrError(c, &input) {
		return
	}

	d := getDeps()
	svc := services.PedidoService{
		ReservaSvc: reservaService(c),
		Metrics:    d.Metrics,
		RequestID:  middleware.GetRequestID(c),
	}
	pedido, err := svc.Crear(c.Request.Context(), input)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pedido)
}

// GET /api/pedidos/:codigo
func GetPedido(c *gin.Context) {
	pedido, err := repositories.PedidoRepo{}.GetByCodigo(c.Param("codigo"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, pedido)
}

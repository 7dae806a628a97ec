package api

import (
	"log"
	stdhttp "net/http"

	intconfig "transportes-backend/internal/config"
	h "transportes-backend/internal/http/handlers"
	"transportes-backend/internal/http/middleware"
	"transportes-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(env intconfig.Env, lg logger.Logger) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(lg), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "ruta no encontrada",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", h.Login)

		// Flujo de cliente (publico)
		reservas := api.Group("/reservas")
		reservas.POST("", h.CrearReserva)
		reservas.GET("/:codigo", h.GetReserva)
		reservas.GET("/:codigo/voucher", h.GetReservaVoucher)
		reservas.POST("/:codigo/calificacion", h.CrearCalificacion)

		pedidos := api.Group("/pedidos")
		pedidos.POST("", h.CrearPedido)
		pedidos.GET("/:codigo", h.GetPedido)

		pagos := api.Group("/pagos")
		pagos.POST("/confirmar", h.ConfirmarPago)

		// Panel administrativo (JWT)
		admin := api.Group("")
		admin.Use(middleware.RequireRol(env.JWTSecret, "admin"))
		{
			admin.PUT("/reservas/:codigo/estado", h.ActualizarReserva)
			admin.GET("/estadisticas", h.GetEstadisticas)

			aliados := admin.Group("/aliados")
			aliados.GET("", h.GetAliados)
			aliados.POST("", h.CreateAliado)
			aliados.PUT("/:id", h.UpdateAliado)
			aliados.DELETE("/:id", h.DeleteAliado)

			conductores := admin.Group("/conductores")
			conductores.GET("", h.GetConductores)
			conductores.POST("", h.CreateConductor)
			conductores.PUT("/:id", h.UpdateConductor)
			conductores.DELETE("/:id", h.DeleteConductor)

			vehiculos := admin.Group("/vehiculos")
			vehiculos.GET("", h.GetVehiculos)
			vehiculos.POST("", h.CreateVehiculo)
			vehiculos.PUT("/:id", h.UpdateVehiculo)
			vehiculos.DELETE("/:id", h.DeleteVehiculo)

			servicios := admin.Group("/servicios")
			servicios.GET("", h.GetServicios)
			servicios.POST("", h.CreateServicio)
			servicios.PUT("/:id", h.UpdateServicio)
			servicios.DELETE("/:id", h.DeleteServicio)

			tarifas := admin.Group("/tarifas")
			tarifas.GET("", h.GetTarifas)
			tarifas.POST("", h.UpsertTarifa)
			tarifas.DELETE("/:id", h.DeleteTarifa)
		}
	}

	h.SetRouter(r)
	return r
}

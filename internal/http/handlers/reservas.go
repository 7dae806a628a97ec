package handlers

import (
	"net/http"
	"strings"

	intconfig "transportes-backend/internal/config"
	"transportes-backend/internal/domain"
	"transportes-backend/internal/domain/models"
	"transportes-backend/internal/http/middleware"
	"transportes-backend/internal/repositories"
	"transportes-backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"
)

func reservaService(c *gin.Context) services.ReservaService {
	d := getDeps()
	return services.ReservaService{
		Notificador: services.NotificacionService{
			Correo:     d.Correo,
			Calendario: d.Calendario,
			Log:        d.Log,
			Metrics:    d.Metrics,
			RequestID:  middleware.GetRequestID(c),
		},
		Metrics:   d.Metrics,
		RequestID: middleware.GetRequestID(c),
	}
}

// POST /api/reservas
func CrearReserva(c *gin.Context) {
	var input services.ReservaInput
	if !BindJSONOrError(c, &input) {
		return
	}

	res, err := reservaService(c).Crear(c.Request.Context(), input)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// GET /api/reservas/:codigo
func GetReserva(c *gin.Context) {
	res, err := repositories.ReservaRepo{}.GetByCodigo(c.Param("codigo"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type reservaUpdateRequest struct {
	Estado             *string `json:"estado"`
	EstadoPago         *string `json:"estadoPago"`
	VehiculoID         *int64  `json:"vehiculoId"`
	ConductorID        *int64  `json:"conductorId"`
	EventoCalendarioID *string `json:"eventoCalendarioId"`
}

// PUT /api/reservas/:codigo/estado  (solo admin)
func ActualizarReserva(c *gin.Context) {
	var req reservaUpdateRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	if req.Estado != nil && !domain.EstadoValido(*req.Estado) {
		RespondDomainError(c, domain.ValidationError{Field: "estado", Msg: "estado desconocido"})
		return
	}
	if req.EstadoPago != nil {
		ep := strings.ToUpper(strings.TrimSpace(*req.EstadoPago))
		switch ep {
		case "", domain.PagoPendiente, domain.PagoAprobado, domain.PagoRechazado:
			req.EstadoPago = &ep
		default:
			RespondDomainError(c, domain.ValidationError{Field: "estadoPago", Msg: "estado de pago desconocido"})
			return
		}
	}

	upd := models.ReservaUpdate{
		Estado:             req.Estado,
		EstadoPago:         req.EstadoPago,
		VehiculoID:         req.VehiculoID,
		ConductorID:        req.ConductorID,
		EventoCalendarioID: req.EventoCalendarioID,
	}
	if err := (repositories.ReservaRepo{}).Actualizar(c.Param("codigo"), upd); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "reserva actualizada"})
}

// GET /api/reservas/:codigo/voucher
func GetReservaVoucher(c *gin.Context) {
	svc := services.VoucherService{
		RequestID: middleware.GetRequestID(c),
	}
	pdfBytes, filename, err := svc.GenerarVoucher(c.Param("codigo"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

type calificacionRequest struct {
	Puntaje    int    `json:"puntaje"`
	Comentario string `json:"comentario"`
}

// POST /api/reservas/:codigo/calificacion
func CrearCalificacion(c *gin.Context) {
	var req calificacionRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.Puntaje < 1 || req.Puntaje > 5 {
		RespondDomainError(c, domain.ValidationError{Field: "puntaje", Msg: "debe estar entre 1 y 5"})
		return
	}

	res, err := repositories.ReservaRepo{}.GetByCodigo(c.Param("codigo"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if res.Estado != domain.EstadoCompletada {
		RespondDomainError(c, domain.ValidationError{Field: "estado", Msg: "solo se califica una reserva completada"})
		return
	}

	_, err = intconfig.DB.Exec(`
		INSERT INTO calificaciones (reserva_id, puntaje, comentario, created_at)
		VALUES (?, ?, ?, NOW())
	`, res.ID, req.Puntaje, strings.TrimSpace(req.Comentario))
	if err != nil {
		if me, ok := err.(*mysql.MySQLError); ok && me.Number == 1062 {
			c.JSON(http.StatusConflict, gin.H{"error": "la reserva ya fue calificada"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo guardar la calificacion: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "calificacion registrada"})
}

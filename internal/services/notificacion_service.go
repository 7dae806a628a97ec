package services

import (
	"context"
	"fmt"

	"transportes-backend/internal/domain/models"
	"transportes-backend/internal/utils"
	"transportes-backend/pkg/logger"
	"transportes-backend/pkg/metrics"

	"github.com/google/uuid"
)

// EnviadorCorreo sends one confirmation email. Implemented over Gmail.
type EnviadorCorreo interface {
	Enviar(ctx context.Context, para, asunto, cuerpo string) error
}

// CreadorCalendario creates one operations-calendar event and returns its id.
type CreadorCalendario interface {
	CrearEvento(ctx context.Context, ev EventoReserva) (string, error)
}

// EventoReserva is the calendar payload for a confirmed reserva.
type EventoReserva struct {
	Codigo    string
	Titulo    string
	Detalle   string
	Fecha     string // YYYY-MM-DD
	Hora      string // HH:MM
	Municipio string
}

// NotificacionService dispatches post-persistence side effects. Contrato:
// un solo intento por canal, nunca bloquea ni falla la creacion de la
// reserva; las fallas quedan en logs y contadores.
type NotificacionService struct {
	Correo     EnviadorCorreo    // nil = canal deshabilitado
	Calendario CreadorCalendario // nil = canal deshabilitado
	Log        logger.Logger
	Metrics    *metrics.Metrics
	RequestID  string
}

// ReservaCreada emails the client (when an address exists) and creates the
// calendar event. Returns the calendar event id, "" when none was created.
func (s NotificacionService) ReservaCreada(ctx context.Context, res models.Reserva) (eventoID string) {
	ref := uuid.New().String()

	if s.Correo != nil && res.CorreoCliente != "" {
		asunto := fmt.Sprintf("Reserva %s confirmada", res.Codigo)
		cuerpo := cuerpoCorreoReserva(res)
		if err := s.Correo.Enviar(ctx, res.CorreoCliente, asunto, cuerpo); err != nil {
			s.contarError("correo_reserva")
			s.logError("correo de reserva fallo", res.Codigo, ref, err)
		} else {
			s.contarCorreo()
			utils.LogEvent(s.RequestID, "notificacion", "correo_reserva", "codigo="+res.Codigo)
		}
	}

	if s.Calendario != nil {
		ev := EventoReserva{
			Codigo:    res.Codigo,
			Titulo:    fmt.Sprintf("[%s] %s (%d pax)", res.Codigo, res.NombreCliente, res.NumPasajeros),
			Detalle:   detalleEvento(res),
			Fecha:     res.Fecha,
			Hora:      res.Hora,
			Municipio: res.Municipio,
		}
		id, err := s.Calendario.CrearEvento(ctx, ev)
		if err != nil {
			s.contarError("calendario_reserva")
			s.logError("evento de calendario fallo", res.Codigo, ref, err)
			return ""
		}
		s.contarEvento()
		utils.LogEvent(s.RequestID, "notificacion", "evento_reserva", "codigo="+res.Codigo+" evento="+id)
		return id
	}
	return ""
}

// PedidoCreado emails the order summary. Calendar events se crean por
// reserva hija, no por pedido.
func (s NotificacionService) PedidoCreado(ctx context.Context, p models.Pedido) {
	if s.Correo == nil || p.CorreoCliente == "" {
		return
	}
	ref := uuid.New().String()
	asunto := fmt.Sprintf("Pedido %s recibido", p.Codigo)
	cuerpo := cuerpoCorreoPedido(p)
	if err := s.Correo.Enviar(ctx, p.CorreoCliente, asunto, cuerpo); err != nil {
		s.contarError("correo_pedido")
		s.logError("correo de pedido fallo", p.Codigo, ref, err)
		return
	}
	s.contarCorreo()
	utils.LogEvent(s.RequestID, "notificacion", "correo_pedido", "codigo="+p.Codigo)
}

func cuerpoCorreoReserva(res models.Reserva) string {
	return fmt.Sprintf(
		"Hola %s,\n\nTu reserva %s quedo registrada para el %s a las %s en %s.\nTotal: %s\n\nGracias por viajar con nosotros.",
		res.NombreCliente, res.Codigo, res.Fecha, res.Hora, res.Municipio,
		utils.FormatPesos(res.Total),
	)
}

func cuerpoCorreoPedido(p models.Pedido) string {
	return fmt.Sprintf(
		"Hola %s,\n\nRecibimos tu pedido %s con %d servicios.\nSubtotal: %s\nTarifa procesador: %s\nTotal: %s",
		p.NombreCliente, p.Codigo, len(p.Reservas),
		utils.FormatPesos(p.Subtotal),
		utils.FormatPesos(p.TarifaProcesador),
		utils.FormatPesos(p.Total),
	)
}

func detalleEvento(res models.Reserva) string {
	detalle := fmt.Sprintf("Cliente: %s (%s)\nPasajeros: %d\nTotal: %s",
		res.NombreCliente, res.TelefonoCliente, res.NumPasajeros, utils.FormatPesos(res.Total))
	if res.DireccionRecogida != "" {
		detalle += "\nRecogida: " + res.DireccionRecogida
	}
	return detalle
}

func (s NotificacionService) logError(msg, codigo, ref string, err error) {
	if s.Log == nil {
		return
	}
	s.Log.Warn(msg, "codigo", codigo, "referencia", ref, "error", err)
}

func (s NotificacionService) contarCorreo() {
	if s.Metrics != nil {
		s.Metrics.CorreosEnviados.Inc()
	}
}

func (s NotificacionService) contarEvento() {
	if s.Metrics != nil {
		s.Metrics.EventosCreados.Inc()
	}
}

func (s NotificacionService) contarError(operacion string) {
	if s.Metrics != nil {
		s.Metrics.ErroresCount.WithLabelValues(operacion).Inc()
	}
}

package services

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"transportes-backend/internal/domain"
	"transportes-backend/internal/domain/models"
	"transportes-backend/internal/pricing"
	"transportes-backend/internal/repositories"
	"transportes-backend/internal/utils"
	"transportes-backend/pkg/metrics"
)

// PedidoInput is the submitted cart: shared contact data, one payment
// method, and the line items.
type PedidoInput struct {
	NombreCliente   string `json:"nombreCliente"`
	TelefonoCliente string `json:"telefonoCliente"`
	CorreoCliente   string `json:"correoCliente"`
	MetodoPago      string `json:"metodoPago"`

	EsAliado bool  `json:"esAliado"`
	AliadoID int64 `json:"aliadoId"`

	Items []ReservaInput `json:"items"`
}

// PedidoService aggregates a cart into one pedido with child reservas.
type PedidoService struct {
	PedidoRepo repositories.PedidoRepo
	ReservaSvc ReservaService
	CodigoSvc  CodigoService
	Metrics    *metrics.Metrics
	RequestID  string
	DB         *sql.DB
}

func (s PedidoService) pedidos() repositories.PedidoRepo {
	if s.PedidoRepo.DB != nil {
		return s.PedidoRepo
	}
	return repositories.PedidoRepo{DB: s.DB}
}

// Crear validates the cart, prices every line independently, applies the
// order-level processor fee, and stores everything in one transaction.
func (s PedidoService) Crear(ctx context.Context, input PedidoInput) (models.Pedido, error) {
	input.NombreCliente = utils.NormalizeSpace(input.NombreCliente)
	input.TelefonoCliente = utils.NormalizePhone(input.TelefonoCliente)
	input.CorreoCliente = strings.TrimSpace(input.CorreoCliente)

	if len(input.Items) == 0 {
		return models.Pedido{}, domain.ValidationError{Field: "items", Msg: "el carrito esta vacio"}
	}
	if input.NombreCliente == "" {
		return models.Pedido{}, domain.ValidationError{Field: "nombreCliente", Msg: "nombre obligatorio"}
	}
	if input.TelefonoCliente == "" {
		return models.Pedido{}, domain.ValidationError{Field: "telefonoCliente", Msg: "telefono obligatorio"}
	}
	metodoPago, ok := pricing.NormalizarMetodoPago(input.MetodoPago)
	if !ok {
		return models.Pedido{}, domain.ValidationError{Field: "metodoPago", Msg: "metodo de pago desconocido"}
	}

	// Cada linea conserva su propio total y comision; el contacto y el
	// metodo de pago del pedido mandan sobre los de cada item.
	reservas := make([]models.Reserva, 0, len(input.Items))
	var subtotal int64
	for i, item := range input.Items {
		item.NombreCliente = input.NombreCliente
		item.TelefonoCliente = input.TelefonoCliente
		item.CorreoCliente = input.CorreoCliente
		item.MetodoPago = metodoPago
		item.EsAliado = input.EsAliado
		item.AliadoID = input.AliadoID

		res, err := s.ReservaSvc.ResolverItem(item)
		if err != nil {
			var vErr domain.ValidationError
			if errors.As(err, &vErr) {
				return models.Pedido{}, domain.ValidationError{
					Field: posicionItem(i, vErr.Field),
					Msg:   vErr.Msg,
					Err:   vErr.Err,
				}
			}
			return models.Pedido{}, err
		}

		codigo, err := s.CodigoSvc.GenerarReserva()
		if err != nil {
			return models.Pedido{}, domain.InternalError{Msg: "no se pudo generar el codigo", Err: err}
		}
		res.Codigo = codigo
		subtotal += res.Total
		reservas = append(reservas, res)
	}

	tarifa := pricing.TarifaProcesador(subtotal, metodoPago)

	codigoPedido, err := s.CodigoSvc.GenerarPedido()
	if err != nil {
		return models.Pedido{}, domain.InternalError{Msg: "no se pudo generar el codigo", Err: err}
	}

	// El estado de pago del pedido sigue la misma regla que sus lineas.
	estadoPago := ""
	if metodoPago == domain.MetodoTarjeta {
		estadoPago = domain.PagoPendiente
	}

	pedido := models.Pedido{
		Codigo:           codigoPedido,
		AliadoID:         aliadoEfectivo(ReservaInput{EsAliado: input.EsAliado, AliadoID: input.AliadoID}),
		NombreCliente:    input.NombreCliente,
		TelefonoCliente:  input.TelefonoCliente,
		CorreoCliente:    input.CorreoCliente,
		Subtotal:         subtotal,
		TarifaProcesador: tarifa,
		Total:            subtotal + tarifa,
		EstadoPago:       estadoPago,
		MetodoPago:       metodoPago,
		Reservas:         reservas,
	}

	creado, err := s.pedidos().Crear(pedido)
	if err != nil {
		return models.Pedido{}, err
	}
	if s.Metrics != nil {
		s.Metrics.PedidosCreados.Inc()
	}
	utils.LogEvent(s.RequestID, "pedido", "crear", "codigo="+creado.Codigo+" items="+strconv.Itoa(len(creado.Reservas)))

	notificador := s.ReservaSvc.Notificador
	notificador.RequestID = s.RequestID
	notificador.PedidoCreado(ctx, creado)

	return creado, nil
}

func posicionItem(i int, campo string) string {
	pos := "items[" + strconv.Itoa(i) + "]"
	if campo == "" {
		return pos
	}
	return pos + "." + campo
}

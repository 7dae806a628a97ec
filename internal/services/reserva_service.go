package services

import (
	"context"
	"database/sql"
	"strings"

	"transportes-backend/internal/domain"
	"transportes-backend/internal/domain/models"
	"transportes-backend/internal/pricing"
	"transportes-backend/internal/repositories"
	"transportes-backend/internal/utils"
	"transportes-backend/pkg/metrics"
)

// ReservaInput is one submitted line item. Los montos llegan del cliente y
// se toleran como number o string (Montoish).
type ReservaInput struct {
	ServicioID int64 `json:"servicioId"`
	VehiculoID int64 `json:"vehiculoId"`

	Fecha string `json:"fecha"`
	Hora  string `json:"hora"`

	NombreCliente   string `json:"nombreCliente"`
	TelefonoCliente string `json:"telefonoCliente"`
	CorreoCliente   string `json:"correoCliente"`
	NumPasajeros    int    `json:"numPasajeros"`

	EsAeropuerto      bool   `json:"esAeropuerto"`
	Municipio         string `json:"municipio"`
	DireccionRecogida string `json:"direccionRecogida"`

	PrecioBase        pricing.Montoish `json:"precioBase"`
	PrecioAdicionales pricing.Montoish `json:"precioAdicionales"`
	RecargoNocturno   pricing.Montoish `json:"recargoNocturno"`
	RecargoMunicipio  pricing.Montoish `json:"recargoMunicipio"`
	DescuentoAliado   pricing.Montoish `json:"descuentoAliado"`

	MetodoPago string `json:"metodoPago"`

	EsAliado bool  `json:"esAliado"`
	AliadoID int64 `json:"aliadoId"`

	Pasajeros []models.Pasajero `json:"pasajeros"`
}

// ReservaService prices, resolves state, and persists single reservas.
type ReservaService struct {
	ReservaRepo  repositories.ReservaRepo
	ServicioRepo repositories.ServicioRepo
	TarifaRepo   repositories.TarifaRepo
	CodigoSvc    CodigoService
	Notificador  NotificacionService
	Metrics      *metrics.Metrics
	RequestID    string
	DB           *sql.DB
}

func (s ReservaService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return nil
}

func (s ReservaService) reservas() repositories.ReservaRepo {
	if s.ReservaRepo.DB != nil {
		return s.ReservaRepo
	}
	return repositories.ReservaRepo{DB: s.db()}
}

// Crear validates, prices, and stores one reserva, then fires the
// best-effort side effects. Ninguna falla de correo/calendario revierte la
// reserva ya persistida.
func (s ReservaService) Crear(ctx context.Context, input ReservaInput) (models.Reserva, error) {
	res, err := s.ResolverItem(input)
	if err != nil {
		return models.Reserva{}, err
	}

	var codigo string
	if res.Estado == domain.EstadoPendienteCotizacion {
		codigo, err = s.CodigoSvc.GenerarCotizacion()
	} else {
		codigo, err = s.CodigoSvc.GenerarReserva()
	}
	if err != nil {
		return models.Reserva{}, domain.InternalError{Msg: "no se pudo generar el codigo", Err: err}
	}
	res.Codigo = codigo

	creada, err := s.reservas().Crear(res)
	if err != nil {
		return models.Reserva{}, err
	}
	if s.Metrics != nil {
		s.Metrics.ReservasCreadas.Inc()
	}
	utils.LogEvent(s.RequestID, "reserva", "crear", "codigo="+creada.Codigo+" estado="+creada.Estado)

	// Efectos best-effort: correo + evento de calendario. El id del evento
	// se escribe de vuelta sobre la reserva cuando se logra crear.
	notificador := s.Notificador
	notificador.RequestID = s.RequestID
	if eventoID := notificador.ReservaCreada(ctx, creada); eventoID != "" {
		if err := s.reservas().Actualizar(creada.Codigo, models.ReservaUpdate{EventoCalendarioID: &eventoID}); err != nil {
			utils.LogEvent(s.RequestID, "reserva", "evento_calendario", "no se pudo guardar evento: "+err.Error())
		} else {
			creada.EventoCalendarioID = eventoID
		}
	}

	return creada, nil
}

// ResolverItem runs validation, pricing, commission, and initial-state
// assignment for one line item without touching reservas. Lo comparte el
// flujo de pedidos.
func (s ReservaService) ResolverItem(input ReservaInput) (models.Reserva, error) {
	input.NombreCliente = utils.NormalizeSpace(input.NombreCliente)
	input.TelefonoCliente = utils.NormalizePhone(input.TelefonoCliente)
	input.CorreoCliente = strings.TrimSpace(input.CorreoCliente)
	input.DireccionRecogida = strings.TrimSpace(input.DireccionRecogida)

	// Campos obligatorios: se rechaza antes de calcular o persistir nada.
	if input.ServicioID <= 0 {
		return models.Reserva{}, domain.ValidationError{Field: "servicioId", Msg: "servicio obligatorio"}
	}
	if _, err := utils.ParseDate(input.Fecha); err != nil {
		return models.Reserva{}, domain.ValidationError{Field: "fecha", Msg: "formato invalido (YYYY-MM-DD)"}
	}
	hora, err := utils.NormalizeHora(input.Hora)
	if err != nil {
		return models.Reserva{}, domain.ValidationError{Field: "hora", Msg: err.Error()}
	}
	if input.NombreCliente == "" {
		return models.Reserva{}, domain.ValidationError{Field: "nombreCliente", Msg: "nombre obligatorio"}
	}
	if input.TelefonoCliente == "" {
		return models.Reserva{}, domain.ValidationError{Field: "telefonoCliente", Msg: "telefono obligatorio"}
	}
	if input.NumPasajeros <= 0 {
		return models.Reserva{}, domain.ValidationError{Field: "numPasajeros", Msg: "debe ser mayor a cero"}
	}
	municipio, ok := pricing.CanonicalMunicipio(input.Municipio)
	if !ok {
		return models.Reserva{}, domain.ValidationError{Field: "municipio", Msg: "municipio no atendido"}
	}
	metodoPago, ok := pricing.NormalizarMetodoPago(input.MetodoPago)
	if !ok {
		return models.Reserva{}, domain.ValidationError{Field: "metodoPago", Msg: "metodo de pago desconocido"}
	}

	desglose := pricing.Desglose{
		Base:        input.PrecioBase.Int64(),
		Adicionales: input.PrecioAdicionales.Int64(),
		Nocturno:    input.RecargoNocturno.Int64(),
		Municipio:   input.RecargoMunicipio.Int64(),
		Descuento:   input.DescuentoAliado.Int64(),
	}
	if err := desglose.Validar(); err != nil {
		return models.Reserva{}, err
	}
	total := desglose.Total()

	estado, estadoPago := pricing.EstadoInicial(municipio, metodoPago)
	comision := s.calcularComision(input, total)

	return models.Reserva{
		ServicioID:        input.ServicioID,
		VehiculoID:        input.VehiculoID,
		AliadoID:          aliadoEfectivo(input),
		Fecha:             strings.TrimSpace(input.Fecha),
		Hora:              hora,
		NombreCliente:     input.NombreCliente,
		TelefonoCliente:   input.TelefonoCliente,
		CorreoCliente:     input.CorreoCliente,
		NumPasajeros:      input.NumPasajeros,
		EsAeropuerto:      input.EsAeropuerto,
		Municipio:         municipio,
		DireccionRecogida: input.DireccionRecogida,
		PrecioBase:        desglose.Base,
		PrecioAdicionales: desglose.Adicionales,
		RecargoNocturno:   desglose.Nocturno,
		RecargoMunicipio:  desglose.Municipio,
		DescuentoAliado:   desglose.Descuento,
		Total:             total,
		Comision:          comision,
		Estado:            estado,
		EstadoPago:        estadoPago,
		MetodoPago:        metodoPago,
		Pasajeros:         input.Pasajeros,
	}, nil
}

// calcularComision aplica las reglas de comision de aliados. Cualquier error
// de lookup deja la comision en 0: mejor una comision perdida que una
// reserva caida.
func (s ReservaService) calcularComision(input ReservaInput, total int64) int64 {
	if !input.EsAliado || input.AliadoID <= 0 {
		return 0
	}

	servicio, err := s.servicios().GetByID(input.ServicioID)
	if err != nil {
		s.contarErrorComision(err)
		return 0
	}
	if servicio.Tipo == domain.TipoTransporteMunicipal {
		// Transporte municipal: 10% plano sobre el total, sin importar vehiculo.
		return pricing.ComisionMunicipal(total)
	}
	if input.VehiculoID <= 0 {
		return 0
	}

	comision, found, err := s.tarifas().GetComision(input.AliadoID, input.ServicioID, input.VehiculoID)
	if err != nil {
		s.contarErrorComision(err)
		return 0
	}
	if !found {
		return 0
	}
	return comision
}

func (s ReservaService) contarErrorComision(err error) {
	if s.Metrics != nil {
		s.Metrics.ErroresCount.WithLabelValues("comision_lookup").Inc()
	}
	utils.LogEvent(s.RequestID, "reserva", "comision", "lookup fallo, comision=0: "+err.Error())
}

func (s ReservaService) servicios() repositories.ServicioRepo {
	if s.ServicioRepo.DB != nil {
		return s.ServicioRepo
	}
	return repositories.ServicioRepo{DB: s.db()}
}

func (s ReservaService) tarifas() repositories.TarifaRepo {
	if s.TarifaRepo.DB != nil {
		return s.TarifaRepo
	}
	return repositories.TarifaRepo{DB: s.db()}
}

func aliadoEfectivo(input ReservaInput) int64 {
	if !input.EsAliado {
		return 0
	}
	return input.AliadoID
}

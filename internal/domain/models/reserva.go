package models

// Pasajero is one attendee sub-row of a reserva.
type Pasajero struct {
	Nombre    string `json:"nombre"`
	Documento string `json:"documento"`
}

// Reserva captures a single transportation service request.
type Reserva struct {
	ID         int64  `json:"id"`
	Codigo     string `json:"codigo"`
	ServicioID int64  `json:"servicioId"`
	VehiculoID int64  `json:"vehiculoId,omitempty"`
	AliadoID   int64  `json:"aliadoId,omitempty"`
	PedidoID   int64  `json:"pedidoId,omitempty"`

	Fecha string `json:"fecha"` // YYYY-MM-DD
	Hora  string `json:"hora"`  // HH:MM

	NombreCliente   string `json:"nombreCliente"`
	TelefonoCliente string `json:"telefonoCliente"`
	CorreoCliente   string `json:"correoCliente,omitempty"`
	NumPasajeros    int    `json:"numPasajeros"`

	EsAeropuerto      bool   `json:"esAeropuerto"`
	Municipio         string `json:"municipio"`
	DireccionRecogida string `json:"direccionRecogida,omitempty"`

	// Montos en pesos colombianos enteros.
	PrecioBase        int64 `json:"precioBase"`
	PrecioAdicionales int64 `json:"precioAdicionales"`
	RecargoNocturno   int64 `json:"recargoNocturno"`
	RecargoMunicipio  int64 `json:"recargoMunicipio"`
	DescuentoAliado   int64 `json:"descuentoAliado"`
	Total             int64 `json:"total"`
	Comision          int64 `json:"comision"`

	Estado     string `json:"estado"`
	EstadoPago string `json:"estadoPago,omitempty"` // "" = no aplica
	MetodoPago string `json:"metodoPago"`

	EventoCalendarioID string `json:"eventoCalendarioId,omitempty"`

	Pasajeros []Pasajero `json:"pasajeros,omitempty"`
}

// ReservaUpdate supports PATCH-style updates via key presence.
type ReservaUpdate struct {
	Estado             *string
	EstadoPago         *string
	VehiculoID         *int64
	ConductorID        *int64
	EventoCalendarioID *string
}

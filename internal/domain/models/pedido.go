package models

// Pedido is a cart of reservas submitted and paid together.
type Pedido struct {
	ID       int64  `json:"id"`
	Codigo   string `json:"codigo"`
	AliadoID int64  `json:"aliadoId,omitempty"`

	NombreCliente   string `json:"nombreCliente"`
	TelefonoCliente string `json:"telefonoCliente"`
	CorreoCliente   string `json:"correoCliente,omitempty"`

	// total = subtotal + tarifaProcesador
	Subtotal         int64 `json:"subtotal"`
	TarifaProcesador int64 `json:"tarifaProcesador"`
	Total            int64 `json:"total"`

	EstadoPago string `json:"estadoPago,omitempty"`
	MetodoPago string `json:"metodoPago"`

	Reservas []Reserva `json:"reservas,omitempty"`
}

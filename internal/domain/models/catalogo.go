package models

// Aliado is a referring hotel/agency eligible for commissions.
type Aliado struct {
	ID       int64  `json:"id"`
	Nombre   string `json:"nombre"`
	Tipo     string `json:"tipo"` // hotel, agencia, propiedad
	Contacto string `json:"contacto,omitempty"`
	Telefono string `json:"telefono,omitempty"`
	Correo   string `json:"correo,omitempty"`
	Estado   string `json:"estado"`
}

// Servicio is a bookable transportation service (traslado, tour, etc.).
type Servicio struct {
	ID          int64  `json:"id"`
	Nombre      string `json:"nombre"`
	Tipo        string `json:"tipo"`
	Descripcion string `json:"descripcion,omitempty"`
	Estado      string `json:"estado"`
}

type Vehiculo struct {
	ID          int64  `json:"id"`
	Placa       string `json:"placa"`
	Tipo        string `json:"tipo"`
	Capacidad   int    `json:"capacidad"`
	ConductorID int64  `json:"conductorId,omitempty"`
	Estado      string `json:"estado"`
}

type Conductor struct {
	ID        int64  `json:"id"`
	Nombre    string `json:"nombre"`
	Documento string `json:"documento"`
	Telefono  string `json:"telefono,omitempty"`
	Estado    string `json:"estado"`
}

// Tarifa is the aliado x servicio x vehiculo price/commission record used
// for non-municipal commissions.
type Tarifa struct {
	ID         int64 `json:"id"`
	AliadoID   int64 `json:"aliadoId"`
	ServicioID int64 `json:"servicioId"`
	VehiculoID int64 `json:"vehiculoId"`
	Precio     int64 `json:"precio"`
	Comision   int64 `json:"comision"`
}

// Calificacion is a post-service rating attached to a reserva.
type Calificacion struct {
	ID         int64  `json:"id"`
	ReservaID  int64  `json:"reservaId"`
	Puntaje    int    `json:"puntaje"` // 1..5
	Comentario string `json:"comentario,omitempty"`
}

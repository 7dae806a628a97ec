package domain

// ID is used across domain entities.
type ID int64

// Estados de una reserva. Soft states: una reserva nunca se borra,
// "CANCELADA" representa el retiro.
const (
	EstadoPendienteCotizacion           = "PENDIENTE_COTIZACION"
	EstadoConfirmadaPendientePago       = "CONFIRMADA_PENDIENTE_PAGO"
	EstadoConfirmadaPendienteAsignacion = "CONFIRMADA_PENDIENTE_ASIGNACION"
	EstadoAsignada                      = "ASIGNADA"
	EstadoCompletada                    = "COMPLETADA"
	EstadoCancelada                     = "CANCELADA"
)

// Estados de pago. El estado de pago es nullable: "" significa que el pago
// todavia no aplica (cotizacion pendiente o pago en efectivo).
const (
	PagoPendiente = "PENDIENTE"
	PagoAprobado  = "APROBADO"
	PagoRechazado = "RECHAZADO"
)

// Metodos de pago.
const (
	MetodoTarjeta  = "TARJETA"
	MetodoEfectivo = "EFECTIVO"
)

// TipoTransporteMunicipal es la categoria de servicio con comision plana
// del 10% para aliados, sin importar el vehiculo.
const TipoTransporteMunicipal = "TRANSPORTE_MUNICIPAL"

// MunicipioOtro is the sentinel for custom destinations that need a manual
// quote before payment can proceed.
const MunicipioOtro = "OTRO"

// EstadoValido reports whether s is a known reservation state.
func EstadoValido(s string) bool {
	switch s {
	case EstadoPendienteCotizacion,
		EstadoConfirmadaPendientePago,
		EstadoConfirmadaPendienteAsignacion,
		EstadoAsignada,
		EstadoCompletada,
		EstadoCancelada:
		return true
	}
	return false
}

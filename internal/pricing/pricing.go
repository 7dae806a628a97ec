package pricing

import (
	"transportes-backend/internal/domain"
)

// Porcentajes fijos del negocio.
const (
	PorcentajeComisionMunicipal = 10 // comision plana sobre el total para transporte municipal
	PorcentajeTarifaProcesador  = 6  // recargo del procesador en pedidos pagados con tarjeta
)

// Desglose agrupa los componentes de precio de una reserva, en pesos enteros.
type Desglose struct {
	Base        int64
	Adicionales int64
	Nocturno    int64
	Municipio   int64
	Descuento   int64
}

// Total aplica la formula lineal:
// total = base + adicionales + nocturno + municipio - descuento.
func (d Desglose) Total() int64 {
	return d.Base + d.Adicionales + d.Nocturno + d.Municipio - d.Descuento
}

// Validar rejects negative components and a discount larger than the sum of
// the other terms. Un descuento que deja el total negativo es una tarifa mal
// cargada, no un precio.
func (d Desglose) Validar() error {
	for _, par := range []struct {
		nombre string
		valor  int64
	}{
		{"precio_base", d.Base},
		{"precio_adicionales", d.Adicionales},
		{"recargo_nocturno", d.Nocturno},
		{"recargo_municipio", d.Municipio},
		{"descuento_aliado", d.Descuento},
	} {
		if par.valor < 0 {
			return domain.ValidationError{Field: par.nombre, Msg: "no puede ser negativo"}
		}
	}
	if d.Total() < 0 {
		return domain.ValidationError{Field: "descuento_aliado", Msg: "el descuento supera el total"}
	}
	return nil
}

// EstadoInicial resolves the initial lifecycle state and payment state of a
// reserva, in precedence order:
//  1. municipio OTRO -> pendiente de cotizacion, sin estado de pago
//  2. pago en efectivo -> confirmada pendiente de asignacion, sin estado de pago
//  3. tarjeta -> confirmada pendiente de pago, pago PENDIENTE
func EstadoInicial(municipio, metodoPago string) (estado, estadoPago string) {
	if EsOtro(municipio) {
		return domain.EstadoPendienteCotizacion, ""
	}
	if metodoPago == domain.MetodoEfectivo {
		return domain.EstadoConfirmadaPendienteAsignacion, ""
	}
	return domain.EstadoConfirmadaPendientePago, domain.PagoPendiente
}

// ComisionMunicipal returns the flat 10% commission over the computed total.
func ComisionMunicipal(total int64) int64 {
	return Porcentaje(total, PorcentajeComisionMunicipal)
}

// TarifaProcesador returns the 6% card-processor fee over an order subtotal,
// 0 for cash.
func TarifaProcesador(subtotal int64, metodoPago string) int64 {
	if metodoPago != domain.MetodoTarjeta {
		return 0
	}
	return Porcentaje(subtotal, PorcentajeTarifaProcesador)
}

// Porcentaje computes pct% of n in whole pesos, rounding half up.
func Porcentaje(n, pct int64) int64 {
	return (n*pct + 50) / 100
}

// NormalizarMetodoPago defaults to TARJETA and tolerates lowercase input.
func NormalizarMetodoPago(raw string) (string, bool) {
	switch normalizarClave(raw) {
	case "", "tarjeta", "card", "wompi":
		return domain.MetodoTarjeta, true
	case "efectivo", "cash":
		return domain.MetodoEfectivo, true
	}
	return "", false
}

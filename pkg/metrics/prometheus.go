package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics agrupa los contadores prometheus del backend.
//
// Los efectos secundarios best-effort (correo, calendario, lookup de
// comisiones) nunca tumban la creacion de una reserva; estos contadores son
// la unica forma de ver sus fallas.
type Metrics struct {
	ReservasCreadas  prometheus.Counter
	PedidosCreados   prometheus.Counter
	CorreosEnviados  prometheus.Counter
	EventosCreados   prometheus.Counter
	PagosConfirmados prometheus.Counter
	ErroresCount     *prometheus.CounterVec
}

// NewMetrics registers and returns all counters under the given namespace.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		ReservasCreadas: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservas_creadas_total",
			Help:      "Total de reservas creadas",
		}),
		PedidosCreados: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pedidos_creados_total",
			Help:      "Total de pedidos (carritos) creados",
		}),
		CorreosEnviados: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "correos_enviados_total",
			Help:      "Total de correos de confirmacion enviados",
		}),
		EventosCreados: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "eventos_calendario_total",
			Help:      "Total de eventos de calendario creados",
		}),
		PagosConfirmados: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pagos_confirmados_total",
			Help:      "Total de pagos confirmados contra el procesador",
		}),
		ErroresCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errores_total",
			Help:      "Total de errores por operacion",
		}, []string{"operacion"}),
	}
}

// NewTestMetrics builds metrics on a private registry so tests do not
// collide on the default registerer.
func NewTestMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		ReservasCreadas:  factory.NewCounter(prometheus.CounterOpts{Name: "reservas_creadas_total"}),
		PedidosCreados:   factory.NewCounter(prometheus.CounterOpts{Name: "pedidos_creados_total"}),
		CorreosEnviados:  factory.NewCounter(prometheus.CounterOpts{Name: "correos_enviados_total"}),
		EventosCreados:   factory.NewCounter(prometheus.CounterOpts{Name: "eventos_calendario_total"}),
		PagosConfirmados: factory.NewCounter(prometheus.CounterOpts{Name: "pagos_confirmados_total"}),
		ErroresCount:     factory.NewCounterVec(prometheus.CounterOpts{Name: "errores_total"}, []string{"operacion"}),
	}
}

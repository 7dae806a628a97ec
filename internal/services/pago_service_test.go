package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"transportes-backend/internal/domain"
	"transportes-backend/internal/repositories"
	"transportes-backend/pkg/metrics"

	"github.com/DATA-DOG/go-sqlmock"
)

// consultorFijo devuelve una secuencia de respuestas, una por llamada.
type consultorFijo struct {
	respuestas []consultaRespuesta
	llamadas   int
}

type consultaRespuesta struct {
	estado string
	err    error
}

func (c *consultorFijo) Consultar(ctx context.Context, referencia string) (string, error) {
	i := c.llamadas
	if i >= len(c.respuestas) {
		i = len(c.respuestas) - 1
	}
	c.llamadas++
	r := c.respuestas[i]
	return r.estado, r.err
}

func TestConfirmarPagoAprobadoActualizaReserva(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE reservas").
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := PagoService{
		Procesador:  &consultorFijo{respuestas: []consultaRespuesta{{estado: TransaccionAprobada}}},
		ReservaRepo: repositories.ReservaRepo{DB: db},
		Metrics:     metrics.NewTestMetrics(),
		Backoff:     time.Millisecond,
	}

	resultado, err := svc.Confirmar(context.Background(), "abcd2345", "ref-1")
	if err != nil {
		t.Fatalf("Confirmar error: %v", err)
	}
	if resultado.EstadoPago != domain.PagoAprobado {
		t.Fatalf("estado de pago: got %q want APROBADO", resultado.EstadoPago)
	}
	if resultado.Codigo != "ABCD2345" {
		t.Fatalf("codigo sin normalizar: %q", resultado.Codigo)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestConfirmarPagoAprobadoActualizaPedido(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// Pedido + propagacion a sus reservas en una transaccion.
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE pedidos").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE reservas").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	svc := PagoService{
		Procesador: &consultorFijo{respuestas: []consultaRespuesta{{estado: TransaccionAprobada}}},
		PedidoRepo: repositories.PedidoRepo{DB: db},
		Backoff:    time.Millisecond,
	}

	resultado, err := svc.Confirmar(context.Background(), "PEDXY234", "ref-2")
	if err != nil {
		t.Fatalf("Confirmar error: %v", err)
	}
	if resultado.EstadoPago != domain.PagoAprobado {
		t.Fatalf("estado de pago: got %q want APROBADO", resultado.EstadoPago)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestConfirmarPagoReintentaErroresTransitorios(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE reservas").
		WillReturnResult(sqlmock.NewResult(0, 1))

	consultor := &consultorFijo{respuestas: []consultaRespuesta{
		{err: errors.New("timeout")},
		{err: errors.New("503")},
		{estado: TransaccionAprobada},
	}}
	svc := PagoService{
		Procesador:  consultor,
		ReservaRepo: repositories.ReservaRepo{DB: db},
		Intentos:    3,
		Backoff:     time.Millisecond,
	}

	if _, err := svc.Confirmar(context.Background(), "ABCD2345", "ref-3"); err != nil {
		t.Fatalf("Confirmar deberia recuperarse, got %v", err)
	}
	if consultor.llamadas != 3 {
		t.Fatalf("intentos: got %d want 3", consultor.llamadas)
	}
}

func TestConfirmarPagoAgotaReintentos(t *testing.T) {
	consultor := &consultorFijo{respuestas: []consultaRespuesta{
		{err: errors.New("timeout")},
	}}
	svc := PagoService{
		Procesador: consultor,
		Metrics:    metrics.NewTestMetrics(),
		Intentos:   3,
		Backoff:    time.Millisecond,
	}

	_, err := svc.Confirmar(context.Background(), "ABCD2345", "ref-4")
	if !domain.IsInternal(err) {
		t.Fatalf("esperaba InternalError, got %v", err)
	}
	if consultor.llamadas != 3 {
		t.Fatalf("intentos: got %d want 3", consultor.llamadas)
	}
}

func TestConfirmarPagoNoEncontradaEsTerminal(t *testing.T) {
	consultor := &consultorFijo{respuestas: []consultaRespuesta{
		{err: ErrTransaccionNoEncontrada},
	}}
	svc := PagoService{
		Procesador: consultor,
		Intentos:   3,
		Backoff:    time.Millisecond,
	}

	_, err := svc.Confirmar(context.Background(), "ABCD2345", "ref-5")
	if !domain.IsNotFound(err) {
		t.Fatalf("esperaba NotFoundError, got %v", err)
	}
	if consultor.llamadas != 1 {
		t.Fatalf("not found no debe reintentarse, got %d llamadas", consultor.llamadas)
	}
}

func TestConfirmarPagoRechazado(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE reservas").
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := PagoService{
		Procesador:  &consultorFijo{respuestas: []consultaRespuesta{{estado: TransaccionRechazada}}},
		ReservaRepo: repositories.ReservaRepo{DB: db},
		Backoff:     time.Millisecond,
	}

	resultado, err := svc.Confirmar(context.Background(), "ABCD2345", "ref-6")
	if err != nil {
		t.Fatalf("Confirmar error: %v", err)
	}
	if resultado.EstadoPago != domain.PagoRechazado {
		t.Fatalf("estado de pago: got %q want RECHAZADO", resultado.EstadoPago)
	}
}

func TestConfirmarPagoPendienteNoToca(t *testing.T) {
	svc := PagoService{
		Procesador: &consultorFijo{respuestas: []consultaRespuesta{{estado: TransaccionPendiente}}},
		Backoff:    time.Millisecond,
	}

	resultado, err := svc.Confirmar(context.Background(), "ABCD2345", "ref-7")
	if err != nil {
		t.Fatalf("Confirmar error: %v", err)
	}
	if resultado.EstadoPago != domain.PagoPendiente {
		t.Fatalf("estado de pago: got %q want PENDIENTE", resultado.EstadoPago)
	}
}

package services

import (
	"strings"
	"testing"

	"transportes-backend/internal/domain"
	"transportes-backend/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

var columnasReserva = []string{
	"id", "codigo", "servicio_id",
	"vehiculo_id", "aliado_id", "pedido_id",
	"fecha", "hora",
	"nombre_cliente", "telefono_cliente", "correo_cliente",
	"num_pasajeros", "es_aeropuerto", "municipio", "direccion_recogida",
	"precio_base", "precio_adicionales", "recargo_nocturno", "recargo_municipio",
	"descuento_aliado", "total", "comision",
	"estado", "estado_pago", "metodo_pago",
	"evento_calendario_id",
}

func filaReserva(estado, estadoPago string) *sqlmock.Rows {
	return sqlmock.NewRows(columnasReserva).AddRow(
		int64(42), "ABCD2345", int64(1),
		int64(0), int64(0), int64(0),
		"2026-09-15", "07:30",
		"Ana Maria", "3001234567", "ana@example.com",
		2, false, "Santa Marta", "Calle 10 #5-20",
		int64(100000), int64(20000), int64(0), int64(15000),
		int64(5000), int64(130000), int64(0),
		estado, estadoPago, domain.MetodoEfectivo,
		"",
	)
}

func TestGenerarVoucherProduceArchivoPDF(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM reservas").WithArgs("ABCD2345").
		WillReturnRows(filaReserva(domain.EstadoConfirmadaPendienteAsignacion, ""))
	// sin tabla de pasajeros: el voucher sale igual
	mock.ExpectQuery("information_schema\\.tables").WithArgs("reserva_pasajeros").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))

	svc := VoucherService{ReservaRepo: repositories.ReservaRepo{DB: db}}
	pdf, filename, err := svc.GenerarVoucher("abcd2345")
	if err != nil {
		t.Fatalf("GenerarVoucher error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatalf("pdf vacio")
	}
	if !strings.HasPrefix(filename, "VOUCHER_ABCD2345") {
		t.Fatalf("nombre de archivo inesperado: %s", filename)
	}
}

func TestGenerarVoucherRechazaCotizacionPendiente(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM reservas").WithArgs("ABCD2345").
		WillReturnRows(filaReserva(domain.EstadoPendienteCotizacion, ""))
	mock.ExpectQuery("information_schema\\.tables").WithArgs("reserva_pasajeros").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))

	svc := VoucherService{ReservaRepo: repositories.ReservaRepo{DB: db}}
	if _, _, err := svc.GenerarVoucher("ABCD2345"); !domain.IsValidation(err) {
		t.Fatalf("cotizacion pendiente no deberia tener voucher, got %v", err)
	}
}

func TestGenerarVoucherRechazaPagoPendiente(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM reservas").WithArgs("ABCD2345").
		WillReturnRows(filaReserva(domain.EstadoConfirmadaPendientePago, domain.PagoPendiente))
	mock.ExpectQuery("information_schema\\.tables").WithArgs("reserva_pasajeros").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))

	svc := VoucherService{ReservaRepo: repositories.ReservaRepo{DB: db}}
	if _, _, err := svc.GenerarVoucher("ABCD2345"); !domain.IsValidation(err) {
		t.Fatalf("pago pendiente no deberia tener voucher, got %v", err)
	}
}

package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"transportes-backend/internal/domain"
	"transportes-backend/internal/repositories"
	"transportes-backend/pkg/metrics"

	"github.com/DATA-DOG/go-sqlmock"
)

func reservaInputValida() ReservaInput {
	return ReservaInput{
		ServicioID:        1,
		Fecha:             "2026-09-15",
		Hora:              "7:30",
		NombreCliente:     "  Ana   Maria ",
		TelefonoCliente:   "300 123-4567",
		NumPasajeros:      2,
		Municipio:         "santa marta",
		MetodoPago:        "tarjeta",
		PrecioBase:        100000,
		PrecioAdicionales: 20000,
		RecargoMunicipio:  15000,
		DescuentoAliado:   5000,
	}
}

func TestResolverItemNormalizaYCalcula(t *testing.T) {
	svc := ReservaService{}
	res, err := svc.ResolverItem(reservaInputValida())
	if err != nil {
		t.Fatalf("ResolverItem error: %v", err)
	}

	if res.NombreCliente != "Ana Maria" {
		t.Fatalf("nombre sin normalizar: %q", res.NombreCliente)
	}
	if res.TelefonoCliente != "3001234567" {
		t.Fatalf("telefono sin normalizar: %q", res.TelefonoCliente)
	}
	if res.Hora != "07:30" {
		t.Fatalf("hora sin normalizar: %q", res.Hora)
	}
	if res.Municipio != "Santa Marta" {
		t.Fatalf("municipio sin canonizar: %q", res.Municipio)
	}
	if res.Total != 130000 {
		t.Fatalf("total incorrecto: got %d want 130000", res.Total)
	}
	if res.Estado != domain.EstadoConfirmadaPendientePago || res.EstadoPago != domain.PagoPendiente {
		t.Fatalf("estado inicial incorrecto: %s/%s", res.Estado, res.EstadoPago)
	}
	if res.Comision != 0 {
		t.Fatalf("reserva sin aliado deberia tener comision 0, got %d", res.Comision)
	}
}

func TestResolverItemRechazaCamposObligatorios(t *testing.T) {
	svc := ReservaService{}
	cases := []struct {
		mutar func(*ReservaInput)
		campo string
	}{
		{func(in *ReservaInput) { in.ServicioID = 0 }, "servicioId"},
		{func(in *ReservaInput) { in.Fecha = "15/09/2026" }, "fecha"},
		{func(in *ReservaInput) { in.Hora = "mediodia" }, "hora"},
		{func(in *ReservaInput) { in.NombreCliente = "   " }, "nombreCliente"},
		{func(in *ReservaInput) { in.TelefonoCliente = "" }, "telefonoCliente"},
		{func(in *ReservaInput) { in.NumPasajeros = 0 }, "numPasajeros"},
		{func(in *ReservaInput) { in.Municipio = "bogota" }, "municipio"},
		{func(in *ReservaInput) { in.MetodoPago = "bitcoin" }, "metodoPago"},
	}
	for _, tc := range cases {
		in := reservaInputValida()
		tc.mutar(&in)
		_, err := svc.ResolverItem(in)
		var vErr domain.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("%s: esperaba ValidationError, got %v", tc.campo, err)
		}
		if vErr.Field != tc.campo {
			t.Fatalf("campo incorrecto: got %q want %q", vErr.Field, tc.campo)
		}
	}
}

func TestResolverItemRechazaDescuentoMayorAlTotal(t *testing.T) {
	in := reservaInputValida()
	in.DescuentoAliado = 500000
	if _, err := (ReservaService{}).ResolverItem(in); !domain.IsValidation(err) {
		t.Fatalf("esperaba ValidationError, got %v", err)
	}
}

func TestResolverItemComisionMunicipal(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT id, nombre, tipo").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nombre", "tipo", "descripcion", "estado"}).
			AddRow(1, "Transporte municipal", domain.TipoTransporteMunicipal, "", "activo"))

	svc := ReservaService{ServicioRepo: repositories.ServicioRepo{DB: db}}
	in := reservaInputValida()
	in.EsAliado = true
	in.AliadoID = 3

	res, err := svc.ResolverItem(in)
	if err != nil {
		t.Fatalf("ResolverItem error: %v", err)
	}
	// 10% plano sobre 130000, sin importar vehiculo.
	if res.Comision != 13000 {
		t.Fatalf("comision municipal: got %d want 13000", res.Comision)
	}
	if res.AliadoID != 3 {
		t.Fatalf("aliado_id perdido: got %d", res.AliadoID)
	}
}

func TestResolverItemComisionPorTarifa(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT id, nombre, tipo").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nombre", "tipo", "descripcion", "estado"}).
			AddRow(1, "Traslado aeropuerto", "TRASLADO", "", "activo"))
	mock.ExpectQuery("SELECT comision").WithArgs(int64(3), int64(1), int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"comision"}).AddRow(25000))

	svc := ReservaService{
		ServicioRepo: repositories.ServicioRepo{DB: db},
		TarifaRepo:   repositories.TarifaRepo{DB: db},
	}
	in := reservaInputValida()
	in.EsAliado = true
	in.AliadoID = 3
	in.VehiculoID = 9

	res, err := svc.ResolverItem(in)
	if err != nil {
		t.Fatalf("ResolverItem error: %v", err)
	}
	if res.Comision != 25000 {
		t.Fatalf("comision por tarifa: got %d want 25000", res.Comision)
	}
}

func TestResolverItemComisionCeroSinTarifaRegistrada(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT id, nombre, tipo").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nombre", "tipo", "descripcion", "estado"}).
			AddRow(1, "Traslado aeropuerto", "TRASLADO", "", "activo"))
	// No hay registro para la combinacion aliado/servicio/vehiculo.
	mock.ExpectQuery("SELECT comision").WithArgs(int64(3), int64(1), int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"comision"}))

	svc := ReservaService{
		ServicioRepo: repositories.ServicioRepo{DB: db},
		TarifaRepo:   repositories.TarifaRepo{DB: db},
	}
	in := reservaInputValida()
	in.EsAliado = true
	in.AliadoID = 3
	in.VehiculoID = 9

	res, err := svc.ResolverItem(in)
	if err != nil {
		t.Fatalf("ResolverItem error: %v", err)
	}
	if res.Comision != 0 {
		t.Fatalf("sin tarifa registrada la comision debe ser 0, got %d", res.Comision)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCrearReservaDestinoOtroRecibeCodigoCotizacion(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT id FROM reservas").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("SELECT id FROM pedidos").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO reservas").
		WillReturnResult(sqlmock.NewResult(55, 1))
	mock.ExpectCommit()

	svc := ReservaService{
		ReservaRepo: repositories.ReservaRepo{DB: db},
		CodigoSvc:   CodigoService{CodigoRepo: repositories.CodigoRepo{DB: db}},
		Metrics:     metrics.NewTestMetrics(),
		DB:          db,
	}

	in := reservaInputValida()
	in.Municipio = "otro"

	creada, err := svc.Crear(context.Background(), in)
	if err != nil {
		t.Fatalf("Crear error: %v", err)
	}
	if creada.Estado != domain.EstadoPendienteCotizacion || creada.EstadoPago != "" {
		t.Fatalf("estado de cotizacion incorrecto: %s/%s", creada.Estado, creada.EstadoPago)
	}
	if !strings.HasPrefix(creada.Codigo, PrefijoCotizacion) {
		t.Fatalf("cotizacion sin prefijo RES: %s", creada.Codigo)
	}
	if len(creada.Codigo) != LargoCodigo {
		t.Fatalf("largo incorrecto: got %d want %d", len(creada.Codigo), LargoCodigo)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestResolverItemComisionCeroSinVehiculo(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT id, nombre, tipo").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nombre", "tipo", "descripcion", "estado"}).
			AddRow(1, "Traslado aeropuerto", "TRASLADO", "", "activo"))

	svc := ReservaService{
		ServicioRepo: repositories.ServicioRepo{DB: db},
		TarifaRepo:   repositories.TarifaRepo{DB: db},
	}
	in := reservaInputValida()
	in.EsAliado = true
	in.AliadoID = 3
	// Sin vehiculo asignado: no municipal, no hay tarifa que consultar.

	res, err := svc.ResolverItem(in)
	if err != nil {
		t.Fatalf("ResolverItem error: %v", err)
	}
	if res.Comision != 0 {
		t.Fatalf("sin vehiculo la comision debe ser 0, got %d", res.Comision)
	}

	// Ninguna consulta de tarifas debe haberse ejecutado.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestResolverItemComisionCeroSiLookupFalla(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT id, nombre, tipo").WithArgs(int64(1)).
		WillReturnError(errors.New("conexion caida"))

	svc := ReservaService{
		ServicioRepo: repositories.ServicioRepo{DB: db},
		Metrics:      metrics.NewTestMetrics(),
	}
	in := reservaInputValida()
	in.EsAliado = true
	in.AliadoID = 3

	res, err := svc.ResolverItem(in)
	if err != nil {
		t.Fatalf("el lookup fallido no debe tumbar la reserva: %v", err)
	}
	if res.Comision != 0 {
		t.Fatalf("comision deberia ser 0 ante error de lookup, got %d", res.Comision)
	}
}

func TestCrearReservaPersisteYAsignaCodigo(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// Codigo libre al primer intento.
	mock.ExpectQuery("SELECT id FROM reservas").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("SELECT id FROM pedidos").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO reservas").
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectCommit()

	svc := ReservaService{
		ReservaRepo: repositories.ReservaRepo{DB: db},
		CodigoSvc:   CodigoService{CodigoRepo: repositories.CodigoRepo{DB: db}},
		Metrics:     metrics.NewTestMetrics(),
		DB:          db,
	}

	creada, err := svc.Crear(context.Background(), reservaInputValida())
	if err != nil {
		t.Fatalf("Crear error: %v", err)
	}
	if creada.ID != 42 {
		t.Fatalf("id no asignado: got %d", creada.ID)
	}
	if len(creada.Codigo) != LargoCodigo {
		t.Fatalf("codigo no asignado: %q", creada.Codigo)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

package services

import (
	"errors"
	"strings"
	"testing"

	"transportes-backend/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestGenerarReservaEvitaColision(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// Primer intento: el codigo ya existe en reservas. Segundo intento: libre.
	mock.ExpectQuery("SELECT id FROM reservas").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery("SELECT id FROM reservas").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("SELECT id FROM pedidos").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	svc := CodigoService{CodigoRepo: repositories.CodigoRepo{DB: db}}
	codigo, err := svc.GenerarReserva()
	if err != nil {
		t.Fatalf("GenerarReserva error: %v", err)
	}
	if len(codigo) != LargoCodigo {
		t.Fatalf("largo incorrecto: got %d want %d", len(codigo), LargoCodigo)
	}
	for _, r := range codigo {
		if !strings.ContainsRune(AlfabetoCodigos, r) {
			t.Fatalf("caracter fuera del alfabeto: %q en %s", r, codigo)
		}
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGenerarPedidoUsaPrefijo(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT id FROM reservas").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("SELECT id FROM pedidos").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	svc := CodigoService{CodigoRepo: repositories.CodigoRepo{DB: db}}
	codigo, err := svc.GenerarPedido()
	if err != nil {
		t.Fatalf("GenerarPedido error: %v", err)
	}
	if !strings.HasPrefix(codigo, PrefijoPedido) {
		t.Fatalf("codigo sin prefijo PED: %s", codigo)
	}
	if len(codigo) != LargoCodigo {
		t.Fatalf("largo incorrecto: got %d want %d", len(codigo), LargoCodigo)
	}
}

func TestGenerarCotizacionUsaPrefijo(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT id FROM reservas").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("SELECT id FROM pedidos").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	svc := CodigoService{CodigoRepo: repositories.CodigoRepo{DB: db}}
	codigo, err := svc.GenerarCotizacion()
	if err != nil {
		t.Fatalf("GenerarCotizacion error: %v", err)
	}
	if !strings.HasPrefix(codigo, PrefijoCotizacion) {
		t.Fatalf("codigo sin prefijo RES: %s", codigo)
	}
	if len(codigo) != LargoCodigo {
		t.Fatalf("largo incorrecto: got %d want %d", len(codigo), LargoCodigo)
	}
}

func TestGenerarAgotaIntentos(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// Todos los sorteos chocan con un codigo existente.
	for i := 0; i < maxIntentosCodigo; i++ {
		mock.ExpectQuery("SELECT id FROM reservas").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	}

	svc := CodigoService{CodigoRepo: repositories.CodigoRepo{DB: db}}
	_, err = svc.GenerarReserva()
	if !errors.Is(err, ErrCodigoAgotado) {
		t.Fatalf("esperaba ErrCodigoAgotado, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

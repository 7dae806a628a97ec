package repositories

import (
	"testing"

	"transportes-backend/internal/domain"
	"transportes-backend/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

func TestActualizarSoloTocaCamposPresentes(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	estado := domain.EstadoAsignada
	vehiculoID := int64(9)
	mock.ExpectExec("UPDATE reservas SET estado=\\?,vehiculo_id=\\?,updated_at=NOW\\(\\)").
		WithArgs(estado, vehiculoID, "ABCD2345").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := ReservaRepo{DB: db}
	err = repo.Actualizar("abcd2345", models.ReservaUpdate{
		Estado:     &estado,
		VehiculoID: &vehiculoID,
	})
	if err != nil {
		t.Fatalf("Actualizar error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestActualizarSinCamposEsNoOp(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	repo := ReservaRepo{DB: db}
	if err := repo.Actualizar("ABCD2345", models.ReservaUpdate{}); err != nil {
		t.Fatalf("update vacio deberia ser no-op, got %v", err)
	}
}

func TestActualizarCodigoInexistente(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	estado := domain.EstadoCancelada
	mock.ExpectExec("UPDATE reservas").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := ReservaRepo{DB: db}
	err = repo.Actualizar("NOEXISTE", models.ReservaUpdate{Estado: &estado})
	if !domain.IsNotFound(err) {
		t.Fatalf("esperaba NotFoundError, got %v", err)
	}
}

func TestCrearTraduceCodigoDuplicado(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO reservas").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	mock.ExpectRollback()

	repo := ReservaRepo{DB: db}
	_, err = repo.Crear(models.Reserva{Codigo: "ABCD2345"})
	if !domain.IsConflict(err) {
		t.Fatalf("duplicado deberia mapear a ConflictError, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPedidoActualizarEstadoPagoPropaga(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE pedidos").
		WithArgs(domain.PagoAprobado, "PEDXY234").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE reservas").
		WithArgs(domain.PagoAprobado, domain.EstadoConfirmadaPendienteAsignacion, "PEDXY234").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	repo := PedidoRepo{DB: db}
	err = repo.ActualizarEstadoPago("pedxy234", domain.PagoAprobado, domain.EstadoConfirmadaPendienteAsignacion)
	if err != nil {
		t.Fatalf("ActualizarEstadoPago error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

package repositories

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "transportes-backend/internal/config"
	intdb "transportes-backend/internal/db"
	"transportes-backend/internal/domain"
	"transportes-backend/internal/domain/models"

	"github.com/go-sql-driver/mysql"
)

type ReservaRepo struct {
	DB *sql.DB
}

func (r ReservaRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const reservaCols = `
	id, codigo, servicio_id,
	COALESCE(vehiculo_id, 0), COALESCE(aliado_id, 0), COALESCE(pedido_id, 0),
	fecha, hora,
	nombre_cliente, telefono_cliente, COALESCE(correo_cliente, ''),
	num_pasajeros, es_aeropuerto, municipio, COALESCE(direccion_recogida, ''),
	precio_base, precio_adicionales, recargo_nocturno, recargo_municipio,
	descuento_aliado, total, comision,
	estado, COALESCE(estado_pago, ''), metodo_pago,
	COALESCE(evento_calendario_id, '')`

// Crear inserts the reserva plus its pasajero sub-rows in one transaction.
func (r ReservaRepo) Crear(res models.Reserva) (models.Reserva, error) {
	db := r.db()
	tx, err := db.Begin()
	if err != nil {
		return models.Reserva{}, domain.InternalError{Msg: "no se pudo abrir la transaccion", Err: err}
	}
	defer tx.Rollback()

	id, err := r.CrearConTx(tx, res)
	if err != nil {
		return models.Reserva{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Reserva{}, domain.InternalError{Err: err}
	}
	res.ID = id
	return res, nil
}

// CrearConTx inserts one reserva row (plus pasajeros) inside an existing
// transaction. Used directly by the pedido flow.
func (r ReservaRepo) CrearConTx(tx *sql.Tx, res models.Reserva) (int64, error) {
	result, err := tx.Exec(`
		INSERT INTO reservas (
			codigo, servicio_id, vehiculo_id, aliado_id, pedido_id,
			fecha, hora,
			nombre_cliente, telefono_cliente, correo_cliente,
			num_pasajeros, es_aeropuerto, municipio, direccion_recogida,
			precio_base, precio_adicionales, recargo_nocturno, recargo_municipio,
			descuento_aliado, total, comision,
			estado, estado_pago, metodo_pago,
			created_at, updated_at
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,NOW(),NOW())`,
		res.Codigo, res.ServicioID, intdb.NullIfZero(res.VehiculoID),
		intdb.NullIfZero(res.AliadoID), intdb.NullIfZero(res.PedidoID),
		res.Fecha, res.Hora,
		res.NombreCliente, res.TelefonoCliente, intdb.NullIfEmpty(res.CorreoCliente),
		res.NumPasajeros, res.EsAeropuerto, res.Municipio, intdb.NullIfEmpty(res.DireccionRecogida),
		res.PrecioBase, res.PrecioAdicionales, res.RecargoNocturno, res.RecargoMunicipio,
		res.DescuentoAliado, res.Total, res.Comision,
		res.Estado, intdb.NullIfEmpty(res.EstadoPago), res.MetodoPago,
	)
	if err != nil {
		return 0, traducirErrorMySQL("reserva", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}

	for _, p := range res.Pasajeros {
		if strings.TrimSpace(p.Nombre) == "" {
			continue
		}
		if _, err := tx.Exec(`
			INSERT INTO reserva_pasajeros (reserva_id, nombre, documento)
			VALUES (?,?,?)`,
			id, strings.TrimSpace(p.Nombre), intdb.NullIfEmpty(strings.TrimSpace(p.Documento)),
		); err != nil {
			return 0, domain.InternalError{Err: err}
		}
	}
	return id, nil
}

// GetByCodigo fetches one reserva with its pasajeros.
func (r ReservaRepo) GetByCodigo(codigo string) (models.Reserva, error) {
	codigo = strings.ToUpper(strings.TrimSpace(codigo))
	if codigo == "" {
		return models.Reserva{}, domain.ValidationError{Field: "codigo", Msg: "codigo vacio"}
	}
	db := r.db()

	var res models.Reserva
	err := db.QueryRow(`SELECT `+reservaCols+` FROM reservas WHERE codigo=? LIMIT 1`, codigo).Scan(
		&res.ID, &res.Codigo, &res.ServicioID,
		&res.VehiculoID, &res.AliadoID, &res.PedidoID,
		&res.Fecha, &res.Hora,
		&res.NombreCliente, &res.TelefonoCliente, &res.CorreoCliente,
		&res.NumPasajeros, &res.EsAeropuerto, &res.Municipio, &res.DireccionRecogida,
		&res.PrecioBase, &res.PrecioAdicionales, &res.RecargoNocturno, &res.RecargoMunicipio,
		&res.DescuentoAliado, &res.Total, &res.Comision,
		&res.Estado, &res.EstadoPago, &res.MetodoPago,
		&res.EventoCalendarioID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Reserva{}, domain.NotFoundError{Resource: "reserva"}
		}
		return models.Reserva{}, domain.InternalError{Err: err}
	}

	pasajeros, err := r.listPasajeros(res.ID)
	if err != nil {
		return models.Reserva{}, err
	}
	res.Pasajeros = pasajeros
	return res, nil
}

// ListByPedidoID returns the reservas belonging to a pedido.
func (r ReservaRepo) ListByPedidoID(pedidoID int64) ([]models.Reserva, error) {
	db := r.db()
	rows, err := db.Query(`SELECT `+reservaCols+` FROM reservas WHERE pedido_id=? ORDER BY id ASC`, pedidoID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Reserva{}
	for rows.Next() {
		var res models.Reserva
		if err := rows.Scan(
			&res.ID, &res.Codigo, &res.ServicioID,
			&res.VehiculoID, &res.AliadoID, &res.PedidoID,
			&res.Fecha, &res.Hora,
			&res.NombreCliente, &res.TelefonoCliente, &res.CorreoCliente,
			&res.NumPasajeros, &res.EsAeropuerto, &res.Municipio, &res.DireccionRecogida,
			&res.PrecioBase, &res.PrecioAdicionales, &res.RecargoNocturno, &res.RecargoMunicipio,
			&res.DescuentoAliado, &res.Total, &res.Comision,
			&res.Estado, &res.EstadoPago, &res.MetodoPago,
			&res.EventoCalendarioID,
		); err != nil {
			return out, domain.InternalError{Err: err}
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// Actualizar performs PATCH-style updates based on key presence.
func (r ReservaRepo) Actualizar(codigo string, upd models.ReservaUpdate) error {
	codigo = strings.ToUpper(strings.TrimSpace(codigo))
	if codigo == "" {
		return domain.ValidationError{Field: "codigo", Msg: "codigo vacio"}
	}
	sets := []string{}
	args := []any{}

	if upd.Estado != nil {
		sets = append(sets, "estado=?")
		args = append(args, *upd.Estado)
	}
	if upd.EstadoPago != nil {
		sets = append(sets, "estado_pago=?")
		args = append(args, intdb.NullIfEmpty(*upd.EstadoPago))
	}
	if upd.VehiculoID != nil {
		sets = append(sets, "vehiculo_id=?")
		args = append(args, intdb.NullIfZero(*upd.VehiculoID))
	}
	if upd.ConductorID != nil {
		sets = append(sets, "conductor_id=?")
		args = append(args, intdb.NullIfZero(*upd.ConductorID))
	}
	if upd.EventoCalendarioID != nil {
		sets = append(sets, "evento_calendario_id=?")
		args = append(args, intdb.NullIfEmpty(*upd.EventoCalendarioID))
	}
	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at=NOW()")
	args = append(args, codigo)

	result, err := r.db().Exec(`UPDATE reservas SET `+strings.Join(sets, ",")+` WHERE codigo=?`, args...)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "reserva"}
	}
	return nil
}

func (r ReservaRepo) listPasajeros(reservaID int64) ([]models.Pasajero, error) {
	db := r.db()
	if !intdb.HasTable(db, "reserva_pasajeros") {
		return []models.Pasajero{}, nil
	}
	rows, err := db.Query(`
		SELECT nombre, COALESCE(documento, '')
		FROM reserva_pasajeros
		WHERE reserva_id=?
		ORDER BY id ASC`, reservaID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Pasajero{}
	for rows.Next() {
		var p models.Pasajero
		if err := rows.Scan(&p.Nombre, &p.Documento); err != nil {
			return out, domain.InternalError{Err: err}
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// traducirErrorMySQL maps duplicate-key violations (codigo UNIQUE) to a
// ConflictError so the handler can answer 409 instead of 500.
func traducirErrorMySQL(resource string, err error) error {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return domain.ConflictError{Resource: resource, Msg: "codigo duplicado", Err: err}
	}
	return domain.InternalError{Err: err}
}

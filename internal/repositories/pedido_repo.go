package repositories

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "transportes-backend/internal/config"
	intdb "transportes-backend/internal/db"
	"transportes-backend/internal/domain"
	"transportes-backend/internal/domain/models"
)

type PedidoRepo struct {
	DB          *sql.DB
	ReservaRepo ReservaRepo
}

func (r PedidoRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r PedidoRepo) reservas() ReservaRepo {
	if r.ReservaRepo.DB != nil {
		return r.ReservaRepo
	}
	return ReservaRepo{DB: r.db()}
}

// Crear persists the pedido and every child reserva in a single
// transaction: o entra todo el carrito o no entra nada.
func (r PedidoRepo) Crear(p models.Pedido) (models.Pedido, error) {
	db := r.db()
	tx, err := db.Begin()
	if err != nil {
		return models.Pedido{}, domain.InternalError{Msg: "no se pudo abrir la transaccion", Err: err}
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		INSERT INTO pedidos (
			codigo, aliado_id,
			nombre_cliente, telefono_cliente, correo_cliente,
			subtotal, tarifa_procesador, total,
			estado_pago, metodo_pago,
			created_at, updated_at
		) VALUES (?,?,?,?,?,?,?,?,?,?,NOW(),NOW())`,
		p.Codigo, intdb.NullIfZero(p.AliadoID),
		p.NombreCliente, p.TelefonoCliente, intdb.NullIfEmpty(p.CorreoCliente),
		p.Subtotal, p.TarifaProcesador, p.Total,
		intdb.NullIfEmpty(p.EstadoPago), p.MetodoPago,
	)
	if err != nil {
		return models.Pedido{}, traducirErrorMySQL("pedido", err)
	}
	pedidoID, err := result.LastInsertId()
	if err != nil {
		return models.Pedido{}, domain.InternalError{Err: err}
	}

	reservaRepo := r.reservas()
	for i := range p.Reservas {
		p.Reservas[i].PedidoID = pedidoID
		id, err := reservaRepo.CrearConTx(tx, p.Reservas[i])
		if err != nil {
			return models.Pedido{}, err
		}
		p.Reservas[i].ID = id
	}

	if err := tx.Commit(); err != nil {
		return models.Pedido{}, domain.InternalError{Err: err}
	}
	p.ID = pedidoID
	return p, nil
}

// GetByCodigo fetches a pedido with its reservas.
func (r PedidoRepo) GetByCodigo(codigo string) (models.Pedido, error) {
	codigo = strings.ToUpper(strings.TrimSpace(codigo))
	if codigo == "" {
		return models.Pedido{}, domain.ValidationError{Field: "codigo", Msg: "codigo vacio"}
	}
	db := r.db()

	var p models.Pedido
	err := db.QueryRow(`
		SELECT id, codigo, COALESCE(aliado_id, 0),
		       nombre_cliente, telefono_cliente, COALESCE(correo_cliente, ''),
		       subtotal, tarifa_procesador, total,
		       COALESCE(estado_pago, ''), metodo_pago
		FROM pedidos
		WHERE codigo=? LIMIT 1`, codigo).Scan(
		&p.ID, &p.Codigo, &p.AliadoID,
		&p.NombreCliente, &p.TelefonoCliente, &p.CorreoCliente,
		&p.Subtotal, &p.TarifaProcesador, &p.Total,
		&p.EstadoPago, &p.MetodoPago,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Pedido{}, domain.NotFoundError{Resource: "pedido"}
		}
		return models.Pedido{}, domain.InternalError{Err: err}
	}

	reservas, err := r.reservas().ListByPedidoID(p.ID)
	if err != nil {
		return models.Pedido{}, err
	}
	p.Reservas = reservas
	return p, nil
}

// ActualizarEstadoPago sets the pedido payment state and propagates it to
// every child reserva.
func (r PedidoRepo) ActualizarEstadoPago(codigo, estadoPago, estadoReserva string) error {
	codigo = strings.ToUpper(strings.TrimSpace(codigo))
	db := r.db()

	tx, err := db.Begin()
	if err != nil {
		return domain.InternalError{Err: err}
	}
	defer tx.Rollback()

	result, err := tx.Exec(`UPDATE pedidos SET estado_pago=?, updated_at=NOW() WHERE codigo=?`,
		intdb.NullIfEmpty(estadoPago), codigo)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "pedido"}
	}

	sets := "estado_pago=?, updated_at=NOW()"
	args := []any{intdb.NullIfEmpty(estadoPago)}
	if estadoReserva != "" {
		sets += ", estado=?"
		args = append(args, estadoReserva)
	}
	args = append(args, codigo)
	if _, err := tx.Exec(`
		UPDATE reservas SET `+sets+`
		WHERE pedido_id = (SELECT id FROM pedidos WHERE codigo=?)`, args...); err != nil {
		return domain.InternalError{Err: err}
	}

	return tx.Commit()
}

package repositories

import (
	"database/sql"
	"errors"

	intconfig "transportes-backend/internal/config"
	"transportes-backend/internal/domain"
	"transportes-backend/internal/domain/models"
)

// TarifaRepo resolves the aliado x servicio x vehiculo commission records.
type TarifaRepo struct {
	DB *sql.DB
}

func (r TarifaRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// GetComision returns the stored fixed commission for the composite key.
// found=false (sin error) cuando no hay registro: eso vale comision 0.
func (r TarifaRepo) GetComision(aliadoID, servicioID, vehiculoID int64) (comision int64, found bool, err error) {
	err = r.db().QueryRow(`
		SELECT comision
		FROM tarifas
		WHERE aliado_id=? AND servicio_id=? AND vehiculo_id=?
		LIMIT 1`, aliadoID, servicioID, vehiculoID).Scan(&comision)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return comision, true, nil
}

// List returns every tarifa, optionally filtered by aliado.
func (r TarifaRepo) List(aliadoID int64) ([]models.Tarifa, error) {
	query := `SELECT id, aliado_id, servicio_id, vehiculo_id, precio, comision FROM tarifas`
	args := []any{}
	if aliadoID > 0 {
		query += ` WHERE aliado_id=?`
		args = append(args, aliadoID)
	}
	query += ` ORDER BY id DESC`

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	out := []models.Tarifa{}
	for rows.Next() {
		var t models.Tarifa
		if err := rows.Scan(&t.ID, &t.AliadoID, &t.ServicioID, &t.VehiculoID, &t.Precio, &t.Comision); err != nil {
			return out, domain.InternalError{Err: err}
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Upsert creates or replaces the record for the composite key.
func (r TarifaRepo) Upsert(t models.Tarifa) error {
	if t.AliadoID <= 0 || t.ServicioID <= 0 || t.VehiculoID <= 0 {
		return domain.ValidationError{Field: "tarifa", Msg: "aliado, servicio y vehiculo son obligatorios"}
	}
	_, err := r.db().Exec(`
		INSERT INTO tarifas (aliado_id, servicio_id, vehiculo_id, precio, comision, created_at, updated_at)
		VALUES (?,?,?,?,?,NOW(),NOW())
		ON DUPLICATE KEY UPDATE precio=VALUES(precio), comision=VALUES(comision), updated_at=NOW()`,
		t.AliadoID, t.ServicioID, t.VehiculoID, t.Precio, t.Comision)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	return nil
}

// Delete removes a tarifa by id.
func (r TarifaRepo) Delete(id int64) error {
	result, err := r.db().Exec(`DELETE FROM tarifas WHERE id=?`, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "tarifa"}
	}
	return nil
}

package repositories

import (
	"database/sql"
	"errors"

	intconfig "transportes-backend/internal/config"
	"transportes-backend/internal/domain"
	"transportes-backend/internal/domain/models"
)

type ServicioRepo struct {
	DB *sql.DB
}

func (r ServicioRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// GetByID fetches one servicio. El tipo decide la regla de comision.
func (r ServicioRepo) GetByID(id int64) (models.Servicio, error) {
	if id <= 0 {
		return models.Servicio{}, domain.ValidationError{Field: "servicio_id", Msg: "id invalido"}
	}
	var s models.Servicio
	err := r.db().QueryRow(`
		SELECT id, nombre, tipo, COALESCE(descripcion, ''), COALESCE(estado, 'activo')
		FROM servicios
		WHERE id=? LIMIT 1`, id).Scan(&s.ID, &s.Nombre, &s.Tipo, &s.Descripcion, &s.Estado)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Servicio{}, domain.NotFoundError{Resource: "servicio"}
		}
		return models.Servicio{}, domain.InternalError{Err: err}
	}
	return s, nil
}

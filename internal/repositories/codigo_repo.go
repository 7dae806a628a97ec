package repositories

import (
	"database/sql"
	"errors"

	intconfig "transportes-backend/internal/config"
)

// CodigoRepo answers "does this short code already exist?" across the two
// tables that share the code namespace.
type CodigoRepo struct {
	DB *sql.DB
}

func (r CodigoRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Existe checks reservas and pedidos for the exact code. Solo lecturas; la
// garantia real de unicidad es la UNIQUE KEY de cada tabla.
func (r CodigoRepo) Existe(codigo string) (bool, error) {
	db := r.db()

	for _, table := range []string{"reservas", "pedidos"} {
		var id int64
		err := db.QueryRow(`SELECT id FROM `+table+` WHERE codigo=? LIMIT 1`, codigo).Scan(&id)
		if err == nil {
			return true, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return false, err
		}
	}
	return false, nil
}

package handlers

import (
	"net/http"
	"strings"
	"time"

	intconfig "transportes-backend/internal/config"

	"github.com/gin-gonic/gin"
)

type estadoConteo struct {
	Estado   string `json:"estado"`
	Cantidad int64  `json:"cantidad"`
}

type comisionAliado struct {
	AliadoID int64  `json:"aliadoId"`
	Aliado   string `json:"aliado"`
	Reservas int64  `json:"reservas"`
	Comision int64  `json:"comision"`
}

// GET /api/estadisticas?desde=2026-01-01&hasta=2026-01-31
func GetEstadisticas(c *gin.Context) {
	desde := strings.TrimSpace(c.Query("desde"))
	hasta := strings.TrimSpace(c.Query("hasta"))
	for _, v := range []string{desde, hasta} {
		if v == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", v); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "formato de fecha debe ser YYYY-MM-DD"})
			return
		}
	}

	where := ""
	args := []any{}
	if desde != "" {
		where += " AND fecha >= ?"
		args = append(args, desde)
	}
	if hasta != "" {
		where += " AND fecha <= ?"
		args = append(args, hasta)
	}

	db := intconfig.DB
	if db == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "base de datos no conectada"})
		return
	}

	// Conteo por estado.
	porEstado := []estadoConteo{}
	rows, err := db.Query(`
		SELECT estado, COUNT(*)
		FROM reservas
		WHERE 1=1`+where+`
		GROUP BY estado
		ORDER BY estado`, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudieron calcular las estadisticas: " + err.Error()})
		return
	}
	for rows.Next() {
		var e estadoConteo
		if err := rows.Scan(&e.Estado, &e.Cantidad); err != nil {
			rows.Close()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "fallo el scan de estados: " + err.Error()})
			return
		}
		porEstado = append(porEstado, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error iterando filas: " + err.Error()})
		return
	}

	// Ingresos: solo reservas pagadas o contra entrega ya completadas.
	var ingresos, comisiones int64
	err = db.QueryRow(`
		SELECT COALESCE(SUM(total),0), COALESCE(SUM(comision),0)
		FROM reservas
		WHERE estado IN ('CONFIRMADA_PENDIENTE_ASIGNACION','ASIGNADA','COMPLETADA')`+where,
		args...).Scan(&ingresos, &comisiones)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudieron sumar los ingresos: " + err.Error()})
		return
	}

	// Comisiones por aliado.
	porAliado := []comisionAliado{}
	rows, err = db.Query(`
		SELECT r.aliado_id, COALESCE(a.nombre,''), COUNT(*), COALESCE(SUM(r.comision),0)
		FROM reservas r
		LEFT JOIN aliados a ON a.id = r.aliado_id
		WHERE r.aliado_id IS NOT NULL AND r.aliado_id > 0`+strings.ReplaceAll(where, " fecha", " r.fecha")+`
		GROUP BY r.aliado_id, a.nombre
		ORDER BY SUM(r.comision) DESC`, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudieron calcular las comisiones: " + err.Error()})
		return
	}
	defer rows.Close()
	for rows.Next() {
		var ca comisionAliado
		if err := rows.Scan(&ca.AliadoID, &ca.Aliado, &ca.Reservas, &ca.Comision); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "fallo el scan de comisiones: " + err.Error()})
			return
		}
		porAliado = append(porAliado, ca)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error iterando filas: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"porEstado":  porEstado,
		"ingresos":   ingresos,
		"comisiones": comisiones,
		"porAliado":  porAliado,
	})
}

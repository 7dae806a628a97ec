package handlers

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"

	intconfig "transportes-backend/internal/config"
	"transportes-backend/internal/domain/models"

	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"
)

type vehiculoPayload struct {
	Placa       string `json:"placa" binding:"required"`
	Tipo        string `json:"tipo"`
	Capacidad   int    `json:"capacidad"`
	ConductorID int64  `json:"conductorId"`
	Estado      string `json:"estado"`
}

// GET /api/vehiculos?q=ABC&page=1&limit=50
func GetVehiculos(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))

	baseSelect := `
		SELECT
			id,
			placa,
			COALESCE(tipo,'') AS tipo,
			COALESCE(capacidad,0) AS capacidad,
			conductor_id,
			COALESCE(estado,'ACTIVO') AS estado
		FROM vehiculos
	`

	where := ""
	args := []any{}
	if q != "" {
		where = " WHERE (placa LIKE ? OR tipo LIKE ?) "
		like := "%" + q + "%"
		args = append(args, like, like)
	}

	query := baseSelect + where + " ORDER BY id DESC " + limitClause(c, &args)
	rows, err := intconfig.DB.Query(query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudieron obtener los vehiculos: " + err.Error()})
		return
	}
	defer rows.Close()

	list := []models.Vehiculo{}
	for rows.Next() {
		var v models.Vehiculo
		var conductorID sql.NullInt64
		if err := rows.Scan(&v.ID, &v.Placa, &v.Tipo, &v.Capacidad, &conductorID, &v.Estado); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "fallo el scan de vehiculos: " + err.Error()})
			return
		}
		if conductorID.Valid {
			v.ConductorID = conductorID.Int64
		}
		list = append(list, v)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error iterando filas: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, list)
}

// POST /api/vehiculos
func CreateVehiculo(c *gin.Context) {
	var payload vehiculoPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "datos invalidos", "detail": err.Error()})
		return
	}

	placa := strings.ToUpper(strings.TrimSpace(payload.Placa))
	if placa == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "placa es obligatoria"})
		return
	}
	if payload.Capacidad < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "capacidad no puede ser negativa"})
		return
	}
	estado := strings.ToUpper(strings.TrimSpace(payload.Estado))
	if estado == "" {
		estado = "ACTIVO"
	}

	var conductorID any
	if payload.ConductorID > 0 {
		conductorID = payload.ConductorID
	}

	res, err := intconfig.DB.Exec(`
		INSERT INTO vehiculos (placa, tipo, capacidad, conductor_id, estado)
		VALUES (?, ?, ?, ?, ?)
	`, placa, nullIfEmpty(payload.Tipo), payload.Capacidad, conductorID, estado)
	if err != nil {
		if me, ok := err.(*mysql.MySQLError); ok && me.Number == 1062 {
			c.JSON(http.StatusConflict, gin.H{"error": "ya existe un vehiculo con esa placa"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo crear el vehiculo: " + err.Error()})
		return
	}

	id, _ := res.LastInsertId()
	c.JSON(http.StatusCreated, gin.H{"message": "vehiculo creado", "id": id})
}

// PUT /api/vehiculos/:id
func UpdateVehiculo(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id invalido"})
		return
	}

	var payload vehiculoPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "datos invalidos", "detail": err.Error()})
		return
	}
	placa := strings.ToUpper(strings.TrimSpace(payload.Placa))
	if placa == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "placa es obligatoria"})
		return
	}
	if payload.Capacidad < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "capacidad no puede ser negativa"})
		return
	}
	estado := strings.ToUpper(strings.TrimSpace(payload.Estado))
	if estado == "" {
		estado = "ACTIVO"
	}

	var conductorID any
	if payload.ConductorID > 0 {
		conductorID = payload.ConductorID
	}

	res, err := intconfig.DB.Exec(`
		UPDATE vehiculos
		SET placa = ?, tipo = ?, capacidad = ?, conductor_id = ?, estado = ?
		WHERE id = ?
	`, placa, nullIfEmpty(payload.Tipo), payload.Capacidad, conductorID, estado, id)
	if err != nil {
		if me, ok := err.(*mysql.MySQLError); ok && me.Number == 1062 {
			c.JSON(http.StatusConflict, gin.H{"error": "ya existe un vehiculo con esa placa"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo actualizar el vehiculo: " + err.Error()})
		return
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "vehiculo no encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "vehiculo actualizado"})
}

// DELETE /api/vehiculos/:id  (baja logica)
func DeleteVehiculo(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id invalido"})
		return
	}

	res, err := intconfig.DB.Exec(`UPDATE vehiculos SET estado = 'INACTIVO' WHERE id = ?`, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo desactivar el vehiculo: " + err.Error()})
		return
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "vehiculo no encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "vehiculo desactivado"})
}

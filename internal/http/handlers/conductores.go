package handlers

import (
	"net/http"
	"strconv"
	"strings"

	intconfig "transportes-backend/internal/config"
	"transportes-backend/internal/domain/models"

	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"
)

type conductorPayload struct {
	Nombre    string `json:"nombre" binding:"required"`
	Documento string `json:"documento" binding:"required"`
	Telefono  string `json:"telefono"`
	Estado    string `json:"estado"`
}

// GET /api/conductores?q=juan
func GetConductores(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))

	baseSelect := `
		SELECT
			id,
			nombre,
			documento,
			COALESCE(telefono,'') AS telefono,
			COALESCE(estado,'ACTIVO') AS estado
		FROM conductores
	`

	where := ""
	args := []any{}
	if q != "" {
		where = " WHERE (nombre LIKE ? OR documento LIKE ?) "
		like := "%" + q + "%"
		args = append(args, like, like)
	}

	query := baseSelect + where + " ORDER BY id DESC " + limitClause(c, &args)
	rows, err := intconfig.DB.Query(query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudieron obtener los conductores: " + err.Error()})
		return
	}
	defer rows.Close()

	list := []models.Conductor{}
	for rows.Next() {
		var d models.Conductor
		if err := rows.Scan(&d.ID, &d.Nombre, &d.Documento, &d.Telefono, &d.Estado); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "fallo el scan de conductores: " + err.Error()})
			return
		}
		list = append(list, d)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error iterando filas: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, list)
}

// POST /api/conductores
func CreateConductor(c *gin.Context) {
	var payload conductorPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "datos invalidos", "detail": err.Error()})
		return
	}

	nombre := strings.TrimSpace(payload.Nombre)
	documento := strings.TrimSpace(payload.Documento)
	if nombre == "" || documento == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nombre y documento son obligatorios"})
		return
	}
	estado := strings.ToUpper(strings.TrimSpace(payload.Estado))
	if estado == "" {
		estado = "ACTIVO"
	}

	res, err := intconfig.DB.Exec(`
		INSERT INTO conductores (nombre, documento, telefono, estado)
		VALUES (?, ?, ?, ?)
	`, nombre, documento, nullIfEmpty(payload.Telefono), estado)
	if err != nil {
		if me, ok := err.(*mysql.MySQLError); ok && me.Number == 1062 {
			c.JSON(http.StatusConflict, gin.H{"error": "ya existe un conductor con ese documento"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo crear el conductor: " + err.Error()})
		return
	}

	id, _ := res.LastInsertId()
	c.JSON(http.StatusCreated, gin.H{"message": "conductor creado", "id": id})
}

// PUT /api/conductores/:id
func UpdateConductor(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id invalido"})
		return
	}

	var payload conductorPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "datos invalidos", "detail": err.Error()})
		return
	}
	nombre := strings.TrimSpace(payload.Nombre)
	documento := strings.TrimSpace(payload.Documento)
	if nombre == "" || documento == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nombre y documento son obligatorios"})
		return
	}
	estado := strings.ToUpper(strings.TrimSpace(payload.Estado))
	if estado == "" {
		estado = "ACTIVO"
	}

	res, err := intconfig.DB.Exec(`
		UPDATE conductores
		SET nombre = ?, documento = ?, telefono = ?, estado = ?
		WHERE id = ?
	`, nombre, documento, nullIfEmpty(payload.Telefono), estado, id)
	if err != nil {
		if me, ok := err.(*mysql.MySQLError); ok && me.Number == 1062 {
			c.JSON(http.StatusConflict, gin.H{"error": "ya existe un conductor con ese documento"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo actualizar el conductor: " + err.Error()})
		return
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "conductor no encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "conductor actualizado"})
}

// DELETE /api/conductores/:id  (baja logica)
func DeleteConductor(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id invalido"})
		return
	}

	res, err := intconfig.DB.Exec(`UPDATE conductores SET estado = 'INACTIVO' WHERE id = ?`, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo desactivar el conductor: " + err.Error()})
		return
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "conductor no encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "conductor desactivado"})
}

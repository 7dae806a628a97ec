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

type servicioPayload struct {
	Nombre      string `json:"nombre" binding:"required"`
	Tipo        string `json:"tipo" binding:"required"`
	Descripcion string `json:"descripcion"`
	Estado      string `json:"estado"`
}

// GET /api/servicios?q=aeropuerto
func GetServicios(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))

	baseSelect := `
		SELECT
			id,
			nombre,
			tipo,
			COALESCE(descripcion,'') AS descripcion,
			COALESCE(estado,'ACTIVO') AS estado
		FROM servicios
	`

	where := ""
	args := []any{}
	if q != "" {
		where = " WHERE (nombre LIKE ? OR tipo LIKE ?) "
		like := "%" + q + "%"
		args = append(args, like, like)
	}

	query := baseSelect + where + " ORDER BY id DESC " + limitClause(c, &args)
	rows, err := intconfig.DB.Query(query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudieron obtener los servicios: " + err.Error()})
		return
	}
	defer rows.Close()

	list := []models.Servicio{}
	for rows.Next() {
		var s models.Servicio
		if err := rows.Scan(&s.ID, &s.Nombre, &s.Tipo, &s.Descripcion, &s.Estado); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "fallo el scan de servicios: " + err.Error()})
			return
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error iterando filas: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, list)
}

// POST /api/servicios
func CreateServicio(c *gin.Context) {
	var payload servicioPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "datos invalidos", "detail": err.Error()})
		return
	}

	nombre := strings.TrimSpace(payload.Nombre)
	tipo := strings.ToUpper(strings.TrimSpace(payload.Tipo))
	if nombre == "" || tipo == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nombre y tipo son obligatorios"})
		return
	}
	estado := strings.ToUpper(strings.TrimSpace(payload.Estado))
	if estado == "" {
		estado = "ACTIVO"
	}

	res, err := intconfig.DB.Exec(`
		INSERT INTO servicios (nombre, tipo, descripcion, estado)
		VALUES (?, ?, ?, ?)
	`, nombre, tipo, nullIfEmpty(payload.Descripcion), estado)
	if err != nil {
		if me, ok := err.(*mysql.MySQLError); ok && me.Number == 1062 {
			c.JSON(http.StatusConflict, gin.H{"error": "ya existe un servicio con ese nombre"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo crear el servicio: " + err.Error()})
		return
	}

	id, _ := res.LastInsertId()
	c.JSON(http.StatusCreated, gin.H{"message": "servicio creado", "id": id})
}

// PUT /api/servicios/:id
func UpdateServicio(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id invalido"})
		return
	}

	var payload servicioPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "datos invalidos", "detail": err.Error()})
		return
	}
	nombre := strings.TrimSpace(payload.Nombre)
	tipo := strings.ToUpper(strings.TrimSpace(payload.Tipo))
	if nombre == "" || tipo == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nombre y tipo son obligatorios"})
		return
	}
	estado := strings.ToUpper(strings.TrimSpace(payload.Estado))
	if estado == "" {
		estado = "ACTIVO"
	}

	res, err := intconfig.DB.Exec(`
		UPDATE servicios
		SET nombre = ?, tipo = ?, descripcion = ?, estado = ?
		WHERE id = ?
	`, nombre, tipo, nullIfEmpty(payload.Descripcion), estado, id)
	if err != nil {
		if me, ok := err.(*mysql.MySQLError); ok && me.Number == 1062 {
			c.JSON(http.StatusConflict, gin.H{"error": "ya existe un servicio con ese nombre"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo actualizar el servicio: " + err.Error()})
		return
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "servicio no encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "servicio actualizado"})
}

// DELETE /api/servicios/:id  (baja logica)
func DeleteServicio(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id invalido"})
		return
	}

	res, err := intconfig.DB.Exec(`UPDATE servicios SET estado = 'INACTIVO' WHERE id = ?`, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo desactivar el servicio: " + err.Error()})
		return
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "servicio no encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "servicio desactivado"})
}

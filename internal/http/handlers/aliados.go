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

type aliadoPayload struct {
	Nombre   string `json:"nombre" binding:"required"`
	Tipo     string `json:"tipo"`
	Contacto string `json:"contacto"`
	Telefono string `json:"telefono"`
	Correo   string `json:"correo"`
	Estado   string `json:"estado"`
}

// GET /api/aliados?q=hotel&page=1&limit=50
func GetAliados(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))

	baseSelect := `
		SELECT
			id,
			nombre,
			COALESCE(tipo,'') AS tipo,
			COALESCE(contacto,'') AS contacto,
			COALESCE(telefono,'') AS telefono,
			COALESCE(correo,'') AS correo,
			COALESCE(estado,'ACTIVO') AS estado
		FROM aliados
	`

	where := ""
	args := []any{}
	if q != "" {
		where = " WHERE (nombre LIKE ? OR correo LIKE ?) "
		like := "%" + q + "%"
		args = append(args, like, like)
	}

	query := baseSelect + where + " ORDER BY id DESC " + limitClause(c, &args)
	rows, err := intconfig.DB.Query(query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudieron obtener los aliados: " + err.Error()})
		return
	}
	defer rows.Close()

	list := []models.Aliado{}
	for rows.Next() {
		var a models.Aliado
		if err := rows.Scan(&a.ID, &a.Nombre, &a.Tipo, &a.Contacto, &a.Telefono, &a.Correo, &a.Estado); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "fallo el scan de aliados: " + err.Error()})
			return
		}
		list = append(list, a)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error iterando filas: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, list)
}

// POST /api/aliados
func CreateAliado(c *gin.Context) {
	var payload aliadoPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "datos invalidos", "detail": err.Error()})
		return
	}

	nombre := strings.TrimSpace(payload.Nombre)
	if nombre == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nombre es obligatorio"})
		return
	}
	estado := strings.ToUpper(strings.TrimSpace(payload.Estado))
	if estado == "" {
		estado = "ACTIVO"
	}

	res, err := intconfig.DB.Exec(`
		INSERT INTO aliados (nombre, tipo, contacto, telefono, correo, estado)
		VALUES (?, ?, ?, ?, ?, ?)
	`, nombre, nullIfEmpty(payload.Tipo), nullIfEmpty(payload.Contacto),
		nullIfEmpty(payload.Telefono), nullIfEmpty(payload.Correo), estado)
	if err != nil {
		if me, ok := err.(*mysql.MySQLError); ok && me.Number == 1062 {
			c.JSON(http.StatusConflict, gin.H{"error": "ya existe un aliado con ese nombre"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo crear el aliado: " + err.Error()})
		return
	}

	id, _ := res.LastInsertId()
	c.JSON(http.StatusCreated, gin.H{"message": "aliado creado", "id": id})
}

// PUT /api/aliados/:id
func UpdateAliado(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id invalido"})
		return
	}

	var payload aliadoPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "datos invalidos", "detail": err.Error()})
		return
	}
	nombre := strings.TrimSpace(payload.Nombre)
	if nombre == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nombre es obligatorio"})
		return
	}
	estado := strings.ToUpper(strings.TrimSpace(payload.Estado))
	if estado == "" {
		estado = "ACTIVO"
	}

	res, err := intconfig.DB.Exec(`
		UPDATE aliados
		SET nombre = ?, tipo = ?, contacto = ?, telefono = ?, correo = ?, estado = ?
		WHERE id = ?
	`, nombre, nullIfEmpty(payload.Tipo), nullIfEmpty(payload.Contacto),
		nullIfEmpty(payload.Telefono), nullIfEmpty(payload.Correo), estado, id)
	if err != nil {
		if me, ok := err.(*mysql.MySQLError); ok && me.Number == 1062 {
			c.JSON(http.StatusConflict, gin.H{"error": "ya existe un aliado con ese nombre"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo actualizar el aliado: " + err.Error()})
		return
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "aliado no encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "aliado actualizado"})
}

// DELETE /api/aliados/:id  (baja logica)
func DeleteAliado(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id invalido"})
		return
	}

	res, err := intconfig.DB.Exec(`UPDATE aliados SET estado = 'INACTIVO' WHERE id = ?`, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo desactivar el aliado: " + err.Error()})
		return
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "aliado no encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "aliado desactivado"})
}

// limitClause appends LIMIT/OFFSET when page & limit query params are present.
func limitClause(c *gin.Context, args *[]any) string {
	pageStr := strings.TrimSpace(c.Query("page"))
	limitStr := strings.TrimSpace(c.Query("limit"))
	if pageStr == "" || limitStr == "" {
		return ""
	}
	page, _ := strconv.Atoi(pageStr)
	limit, _ := strconv.Atoi(limitStr)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	*args = append(*args, limit, (page-1)*limit)
	return " LIMIT ? OFFSET ?"
}

func nullIfEmpty(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return s
}

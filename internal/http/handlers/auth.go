package handlers

import (
	"database/sql"
	"net/http"
	"strings"
	"time"

	intconfig "transportes-backend/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthUser es el usuario que devuelve el login.
type AuthUser struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
	Correo string `json:"correo"`
	Rol    string `json:"rol"`
}

type loginRequest struct {
	Correo     string `json:"correo"`
	Contrasena string `json:"contrasena"`
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "payload invalido"})
		return
	}
	correo := strings.ToLower(strings.TrimSpace(req.Correo))
	if correo == "" || req.Contrasena == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "correo y contrasena son obligatorios"})
		return
	}

	var (
		user AuthUser
		hash string
	)
	err := intconfig.DB.QueryRow(`
        SELECT id, nombre, correo, contrasena_hash, rol
        FROM usuarios
        WHERE correo = ?
    `, correo).Scan(&user.ID, &user.Nombre, &user.Correo, &hash, &user.Rol)

	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "correo o contrasena incorrectos"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "fallo la consulta de usuario: " + err.Error()})
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Contrasena)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "correo o contrasena incorrectos"})
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"rol":     user.Rol,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})

	tokenString, err := token.SignedString([]byte(getDeps().Env.JWTSecret))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo generar el token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": tokenString,
		"user":  user,
	})
}

package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Env holds the runtime configuration of the backend.
type Env struct {
	AppAddr string
	GinMode string

	DBUser string
	DBPass string
	DBHost string
	DBName string

	JWTSecret string

	// Gmail / Calendar (OAuth refresh-token flow). Vacios = notificaciones
	// deshabilitadas.
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRefreshToken string
	CorreoRemitente    string
	CalendarioID       string

	// Procesador de pagos (consulta de transacciones por referencia).
	PagosBaseURL  string
	PagosLlave    string
	PagosTimeout  time.Duration
	PagosIntentos int
}

// LoadEnv reads .env (when present) and environment variables with defaults.
func LoadEnv() Env {
	godotenv.Load()

	return Env{
		AppAddr: getEnv("APP_ADDR", ":8080"),
		GinMode: getEnv("GIN_MODE", ""),

		DBUser: getEnv("DB_USER", "root"),
		DBPass: getEnv("DB_PASS", ""),
		DBHost: getEnv("DB_HOST", "127.0.0.1:3306"),
		DBName: getEnv("DB_NAME", "transportes_app"),

		JWTSecret: getEnv("JWT_SECRET", "cambia-esta-llave"),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRefreshToken: getEnv("GOOGLE_REFRESH_TOKEN", ""),
		CorreoRemitente:    getEnv("CORREO_REMITENTE", ""),
		CalendarioID:       getEnv("CALENDARIO_ID", "primary"),

		PagosBaseURL:  getEnv("PAGOS_BASE_URL", ""),
		PagosLlave:    getEnv("PAGOS_LLAVE_PRIVADA", ""),
		PagosTimeout:  time.Duration(getEnvAsInt("PAGOS_TIMEOUT_SEG", 10)) * time.Second,
		PagosIntentos: getEnvAsInt("PAGOS_INTENTOS", 3),
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

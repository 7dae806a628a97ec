package handlers

import (
	"net/http"
	"sync"

	intconfig "transportes-backend/internal/config"
	"transportes-backend/internal/http/middleware"
	"transportes-backend/internal/services"
	"transportes-backend/pkg/logger"
	"transportes-backend/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// Deps are the shared pieces every handler may need. Set once at startup.
type Deps struct {
	Env        intconfig.Env
	Log        logger.Logger
	Metrics    *metrics.Metrics
	Correo     services.EnviadorCorreo
	Calendario services.CreadorCalendario
	Procesador services.ConsultorPagos
}

var (
	depsMu sync.RWMutex
	deps   Deps
)

func SetDeps(d Deps) {
	depsMu.Lock()
	defer depsMu.Unlock()
	if d.Log == nil {
		d.Log = logger.NewNop()
	}
	deps = d
}

func getDeps() Deps {
	depsMu.RLock()
	defer depsMu.RUnlock()
	d := deps
	if d.Log == nil {
		d.Log = logger.NewNop()
	}
	return d
}

// RespondError sends standard error payload with request_id included.
// Keeps backward compatibility by always providing "message".
func RespondError(c *gin.Context, status int, message string, err error) {
	reqID := middleware.GetRequestID(c)
	payload := gin.H{
		"message":    message,
		"request_id": reqID,
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "cuerpo vacio", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "payload invalido", err)
		return false
	}
	return true
}

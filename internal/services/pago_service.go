package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	intconfig "transportes-backend/internal/config"
	"transportes-backend/internal/domain"
	"transportes-backend/internal/domain/models"
	"transportes-backend/internal/repositories"
	"transportes-backend/internal/utils"
	"transportes-backend/pkg/metrics"
)

// Estados que reporta el procesador de pagos.
const (
	TransaccionAprobada  = "APPROVED"
	TransaccionRechazada = "DECLINED"
	TransaccionPendiente = "PENDING"
	TransaccionError     = "ERROR"
)

// ErrTransaccionNoEncontrada is terminal: no amount of retrying will make
// the processor find the reference.
var ErrTransaccionNoEncontrada = errors.New("transaccion no encontrada en el procesador")

// ConsultorPagos checks one transaction by its processor reference.
type ConsultorPagos interface {
	Consultar(ctx context.Context, referencia string) (string, error)
}

// ProcesadorHTTP consulta transacciones contra el API REST del procesador.
type ProcesadorHTTP struct {
	BaseURL string
	Llave   string
	Cliente *http.Client
}

func NewProcesadorHTTP(env intconfig.Env) *ProcesadorHTTP {
	if env.PagosBaseURL == "" {
		return nil
	}
	return &ProcesadorHTTP{
		BaseURL: strings.TrimRight(env.PagosBaseURL, "/"),
		Llave:   env.PagosLlave,
		Cliente: &http.Client{Timeout: env.PagosTimeout},
	}
}

func (p *ProcesadorHTTP) Consultar(ctx context.Context, referencia string) (string, error) {
	url := fmt.Sprintf("%s/v1/transactions/%s", p.BaseURL, referencia)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	if p.Llave != "" {
		req.Header.Set("Authorization", "Bearer "+p.Llave)
	}

	resp, err := p.Cliente.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", ErrTransaccionNoEncontrada
	}
	if resp.StatusCode >= 500 {
		return "", fmt.Errorf("procesador respondio %d", resp.StatusCode)
	}

	var cuerpo struct {
		Data struct {
			Status string `json:"status"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&cuerpo); err != nil {
		return "", err
	}
	estado := strings.ToUpper(strings.TrimSpace(cuerpo.Data.Status))
	if estado == "" {
		return "", fmt.Errorf("respuesta del procesador sin status")
	}
	return estado, nil
}

// PagoService confirms card payments against the processor and updates the
// reserva/pedido accordingly.
type PagoService struct {
	Procesador  ConsultorPagos
	ReservaRepo repositories.ReservaRepo
	PedidoRepo  repositories.PedidoRepo
	Metrics     *metrics.Metrics
	RequestID   string
	DB          *sql.DB

	// Intentos y Backoff controlan el reintento ante fallas transitorias.
	Intentos int
	Backoff  time.Duration
}

// ResultadoPago is what the payment-result page shows.
type ResultadoPago struct {
	Codigo     string `json:"codigo"`
	Referencia string `json:"referencia"`
	EstadoPago string `json:"estadoPago"`
}

// Confirmar polls the processor for the transaction referenced by the
// checkout flow and applies the outcome. Transitorio = reintento con
// backoff exponencial; "not found" y "declined" son terminales.
func (s PagoService) Confirmar(ctx context.Context, codigo, referencia string) (ResultadoPago, error) {
	codigo = strings.ToUpper(strings.TrimSpace(codigo))
	referencia = strings.TrimSpace(referencia)
	if codigo == "" {
		return ResultadoPago{}, domain.ValidationError{Field: "codigo", Msg: "codigo obligatorio"}
	}
	if referencia == "" {
		return ResultadoPago{}, domain.ValidationError{Field: "referencia", Msg: "referencia obligatoria"}
	}
	if s.Procesador == nil {
		return ResultadoPago{}, domain.InternalError{Msg: "procesador de pagos no configurado"}
	}

	intentos := s.Intentos
	if intentos <= 0 {
		intentos = 3
	}
	backoff := s.Backoff
	if backoff <= 0 {
		backoff = time.Second
	}

	var estado string
	var err error
	for intento := 1; intento <= intentos; intento++ {
		estado, err = s.Procesador.Consultar(ctx, referencia)
		if err == nil {
			break
		}
		if errors.Is(err, ErrTransaccionNoEncontrada) {
			return ResultadoPago{}, domain.NotFoundError{Resource: "transaccion", Err: err}
		}
		utils.LogEvent(s.RequestID, "pago", "consultar",
			fmt.Sprintf("intento %d/%d fallo: %v", intento, intentos, err))
		if intento == intentos {
			s.contarError("pago_consulta")
			return ResultadoPago{}, domain.InternalError{Msg: "el procesador no respondio", Err: err}
		}
		if err := esperar(ctx, backoff); err != nil {
			return ResultadoPago{}, domain.InternalError{Err: err}
		}
		backoff *= 2
	}

	resultado := ResultadoPago{Codigo: codigo, Referencia: referencia}
	switch estado {
	case TransaccionAprobada:
		resultado.EstadoPago = domain.PagoAprobado
		if err := s.aplicar(codigo, domain.PagoAprobado, domain.EstadoConfirmadaPendienteAsignacion); err != nil {
			return ResultadoPago{}, err
		}
		if s.Metrics != nil {
			s.Metrics.PagosConfirmados.Inc()
		}
	case TransaccionRechazada, TransaccionError:
		resultado.EstadoPago = domain.PagoRechazado
		if err := s.aplicar(codigo, domain.PagoRechazado, ""); err != nil {
			return ResultadoPago{}, err
		}
	case TransaccionPendiente:
		// Sin cambios: el cliente vuelve a consultar.
		resultado.EstadoPago = domain.PagoPendiente
	default:
		return ResultadoPago{}, domain.InternalError{Msg: "estado de transaccion desconocido: " + estado}
	}

	utils.LogEvent(s.RequestID, "pago", "confirmar", "codigo="+codigo+" estado="+resultado.EstadoPago)
	return resultado, nil
}

// aplicar updates either the pedido (and its child reservas) or the single
// reserva, depending on the code prefix.
func (s PagoService) aplicar(codigo, estadoPago, estadoReserva string) error {
	if strings.HasPrefix(codigo, PrefijoPedido) {
		repo := s.PedidoRepo
		if repo.DB == nil {
			repo = repositories.PedidoRepo{DB: s.DB}
		}
		return repo.ActualizarEstadoPago(codigo, estadoPago, estadoReserva)
	}

	repo := s.ReservaRepo
	if repo.DB == nil {
		repo = repositories.ReservaRepo{DB: s.DB}
	}
	upd := models.ReservaUpdate{EstadoPago: &estadoPago}
	if estadoReserva != "" {
		upd.Estado = &estadoReserva
	}
	return repo.Actualizar(codigo, upd)
}

func (s PagoService) contarError(operacion string) {
	if s.Metrics != nil {
		s.Metrics.ErroresCount.WithLabelValues(operacion).Inc()
	}
}

func esperar(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

package services

import (
	"crypto/rand"
	"database/sql"
	"errors"
	"math/big"
	"strings"

	"transportes-backend/internal/repositories"
)

// AlfabetoCodigos excluye caracteres ambiguos (0/O/1/I): los codigos se
// dictan por telefono y se copian a mano.
const AlfabetoCodigos = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const (
	// LargoCodigo is the total length of every short code.
	LargoCodigo = 8
	// PrefijoPedido marks order codes ("PED" + 5 random chars).
	PrefijoPedido = "PED"
	// PrefijoCotizacion marks admin quote codes.
	PrefijoCotizacion = "RES"

	maxIntentosCodigo = 10
)

// ErrCodigoAgotado: no free code after maxIntentosCodigo draws. Con 33^5
// combinaciones esto es casi imposible; si pasa, el espacio de codigos esta
// saturado y hay que alargarlos.
var ErrCodigoAgotado = errors.New("no se pudo generar un codigo unico")

// CodigoService draws random short codes and checks them against the store.
// La verificacion es solo una optimizacion anti-colision; la UNIQUE KEY de
// cada tabla es la garantia real.
type CodigoService struct {
	CodigoRepo repositories.CodigoRepo
	DB         *sql.DB
}

func (s CodigoService) repo() repositories.CodigoRepo {
	if s.CodigoRepo.DB != nil {
		return s.CodigoRepo
	}
	return repositories.CodigoRepo{DB: s.DB}
}

// Generar returns a code of total length largo starting with prefijo, not
// currently present in reservas nor pedidos.
func (s CodigoService) Generar(prefijo string, largo int) (string, error) {
	prefijo = strings.ToUpper(strings.TrimSpace(prefijo))
	if largo <= len(prefijo) {
		largo = len(prefijo) + 5
	}

	repo := s.repo()
	for intento := 0; intento < maxIntentosCodigo; intento++ {
		sufijo, err := cadenaAleatoria(largo - len(prefijo))
		if err != nil {
			return "", err
		}
		codigo := prefijo + sufijo

		existe, err := repo.Existe(codigo)
		if err != nil {
			return "", err
		}
		if !existe {
			return codigo, nil
		}
	}
	return "", ErrCodigoAgotado
}

// GenerarReserva draws a standard 8-char reservation code (no prefix).
func (s CodigoService) GenerarReserva() (string, error) {
	return s.Generar("", LargoCodigo)
}

// GenerarPedido draws a "PED" + 5-char order code.
func (s CodigoService) GenerarPedido() (string, error) {
	return s.Generar(PrefijoPedido, LargoCodigo)
}

// GenerarCotizacion draws a "RES" + 5-char quote code. Las reservas que
// entran pendientes de cotizacion se identifican por el prefijo.
func (s CodigoService) GenerarCotizacion() (string, error) {
	return s.Generar(PrefijoCotizacion, LargoCodigo)
}

func cadenaAleatoria(n int) (string, error) {
	max := big.NewInt(int64(len(AlfabetoCodigos)))
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(AlfabetoCodigos[idx.Int64()])
	}
	return b.String(), nil
}

package pricing

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Montoish tolera montos enviados como number o string ("120000",
// "120000.00", 120000). Valores ausentes o basura quedan en 0; los
// componentes de precio vienen del cliente y se parsean a la defensiva.
type Montoish int64

func (m *Montoish) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*m = 0
		return nil
	}
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		*m = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*m = 0
		return nil
	}
	*m = Montoish(math.Round(f))
	return nil
}

func (m Montoish) Int64() int64 { return int64(m) }

var _ json.Unmarshaler = (*Montoish)(nil)

package pricing

import (
	"strings"

	"transportes-backend/internal/domain"
)

// Municipios atendidos alrededor de Santa Marta. Cualquier destino fuera de
// la lista debe llegar como el centinela OTRO y pasa a cotizacion manual.
var municipios = []struct {
	clave   string
	display string
}{
	{"santa marta", "Santa Marta"},
	{"taganga", "Taganga"},
	{"cienaga", "Ciénaga"},
	{"pueblo viejo", "Pueblo Viejo"},
	{"zona bananera", "Zona Bananera"},
	{"aracataca", "Aracataca"},
	{"fundacion", "Fundación"},
	{"el reten", "El Retén"},
	{"sitionuevo", "Sitionuevo"},
	{"barranquilla", "Barranquilla"},
}

// CanonicalMunicipio normalizes caller input (case/accent tolerant) to the
// canonical display name. ok=false when the municipality is not served.
func CanonicalMunicipio(raw string) (display string, ok bool) {
	key := normalizarClave(raw)
	if key == "" {
		return "", false
	}
	if key == "otro" || key == "other" {
		return domain.MunicipioOtro, true
	}
	for _, m := range municipios {
		if m.clave == key {
			return m.display, true
		}
	}
	return "", false
}

// EsOtro reports whether the canonical municipality is the manual-quote
// sentinel.
func EsOtro(municipio string) bool {
	return strings.EqualFold(strings.TrimSpace(municipio), domain.MunicipioOtro)
}

func normalizarClave(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	replacer := strings.NewReplacer(
		"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ñ", "n",
	)
	s = replacer.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

package pricing

import (
	"encoding/json"
	"testing"

	"transportes-backend/internal/domain"
)

func TestDesgloseTotalFormula(t *testing.T) {
	d := Desglose{
		Base:        100000,
		Adicionales: 20000,
		Nocturno:    0,
		Municipio:   15000,
		Descuento:   5000,
	}
	if got := d.Total(); got != 130000 {
		t.Fatalf("total incorrecto: got %d want 130000", got)
	}
}

func TestDesgloseValidarRechazaNegativos(t *testing.T) {
	d := Desglose{Base: -1}
	if err := d.Validar(); !domain.IsValidation(err) {
		t.Fatalf("componente negativo deberia fallar validacion, got %v", err)
	}
}

func TestDesgloseValidarRechazaDescuentoMayorAlTotal(t *testing.T) {
	d := Desglose{Base: 50000, Descuento: 60000}
	if err := d.Validar(); !domain.IsValidation(err) {
		t.Fatalf("descuento mayor al total deberia fallar validacion, got %v", err)
	}
	// Descuento exactamente igual al resto de terminos: total 0, valido.
	d = Desglose{Base: 50000, Descuento: 50000}
	if err := d.Validar(); err != nil {
		t.Fatalf("total cero deberia ser valido, got %v", err)
	}
}

func TestEstadoInicialTablaCompleta(t *testing.T) {
	cases := []struct {
		municipio  string
		metodo     string
		estado     string
		estadoPago string
	}{
		{"Santa Marta", domain.MetodoTarjeta, domain.EstadoConfirmadaPendientePago, domain.PagoPendiente},
		{"Santa Marta", domain.MetodoEfectivo, domain.EstadoConfirmadaPendienteAsignacion, ""},
		{domain.MunicipioOtro, domain.MetodoTarjeta, domain.EstadoPendienteCotizacion, ""},
		{domain.MunicipioOtro, domain.MetodoEfectivo, domain.EstadoPendienteCotizacion, ""},
		{"Taganga", domain.MetodoTarjeta, domain.EstadoConfirmadaPendientePago, domain.PagoPendiente},
		{"Barranquilla", domain.MetodoEfectivo, domain.EstadoConfirmadaPendienteAsignacion, ""},
	}
	for _, tc := range cases {
		estado, estadoPago := EstadoInicial(tc.municipio, tc.metodo)
		if estado != tc.estado || estadoPago != tc.estadoPago {
			t.Fatalf("%s/%s: got (%s,%q) want (%s,%q)",
				tc.municipio, tc.metodo, estado, estadoPago, tc.estado, tc.estadoPago)
		}
	}
}

func TestComisionMunicipalDiezPorciento(t *testing.T) {
	if got := ComisionMunicipal(130000); got != 13000 {
		t.Fatalf("comision municipal: got %d want 13000", got)
	}
	// Redondeo half-up en pesos enteros.
	if got := ComisionMunicipal(105); got != 11 {
		t.Fatalf("comision municipal con redondeo: got %d want 11", got)
	}
	if got := ComisionMunicipal(104); got != 10 {
		t.Fatalf("comision municipal con redondeo: got %d want 10", got)
	}
}

func TestTarifaProcesador(t *testing.T) {
	if got := TarifaProcesador(350000, domain.MetodoTarjeta); got != 21000 {
		t.Fatalf("tarifa procesador tarjeta: got %d want 21000", got)
	}
	if got := TarifaProcesador(350000, domain.MetodoEfectivo); got != 0 {
		t.Fatalf("tarifa procesador efectivo: got %d want 0", got)
	}
}

func TestNormalizarMetodoPago(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"", domain.MetodoTarjeta, true},
		{"tarjeta", domain.MetodoTarjeta, true},
		{"TARJETA", domain.MetodoTarjeta, true},
		{"wompi", domain.MetodoTarjeta, true},
		{"efectivo", domain.MetodoEfectivo, true},
		{"CASH", domain.MetodoEfectivo, true},
		{"bitcoin", "", false},
	}
	for _, tc := range cases {
		out, ok := NormalizarMetodoPago(tc.in)
		if out != tc.out || ok != tc.ok {
			t.Fatalf("%q: got (%q,%v) want (%q,%v)", tc.in, out, ok, tc.out, tc.ok)
		}
	}
}

func TestCanonicalMunicipio(t *testing.T) {
	cases := []struct {
		in      string
		display string
		ok      bool
	}{
		{"santa marta", "Santa Marta", true},
		{"  SANTA  MARTA ", "Santa Marta", true},
		{"cienaga", "Ciénaga", true},
		{"Ciénaga", "Ciénaga", true},
		{"fundación", "Fundación", true},
		{"otro", domain.MunicipioOtro, true},
		{"OTHER", domain.MunicipioOtro, true},
		{"bogota", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		display, ok := CanonicalMunicipio(tc.in)
		if display != tc.display || ok != tc.ok {
			t.Fatalf("%q: got (%q,%v) want (%q,%v)", tc.in, display, ok, tc.display, tc.ok)
		}
	}
}

func TestMontoishToleraNumerosYStrings(t *testing.T) {
	var payload struct {
		A Montoish `json:"a"`
		B Montoish `json:"b"`
		C Montoish `json:"c"`
		D Montoish `json:"d"`
		E Montoish `json:"e"`
	}
	raw := `{"a":120000,"b":"120000","c":"120,000.40","d":null,"e":"basura"}`
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("unmarshal fallo: %v", err)
	}
	if payload.A != 120000 || payload.B != 120000 {
		t.Fatalf("montos simples: got %d/%d", payload.A, payload.B)
	}
	if payload.C != 120000 {
		t.Fatalf("monto con comas y decimales: got %d want 120000", payload.C)
	}
	if payload.D != 0 || payload.E != 0 {
		t.Fatalf("null y basura deben quedar en 0: got %d/%d", payload.D, payload.E)
	}
}

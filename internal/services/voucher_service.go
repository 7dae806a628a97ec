package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"transportes-backend/internal/domain"
	"transportes-backend/internal/domain/models"
	"transportes-backend/internal/repositories"
	"transportes-backend/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// VoucherService genera el comprobante PDF de una reserva confirmada.
type VoucherService struct {
	ReservaRepo repositories.ReservaRepo
	RequestID   string
}

func (s VoucherService) GenerarVoucher(codigo string) ([]byte, string, error) {
	res, err := s.ReservaRepo.GetByCodigo(codigo)
	if err != nil {
		return nil, "", err
	}
	if res.Estado == domain.EstadoPendienteCotizacion {
		return nil, "", domain.ValidationError{Field: "estado", Msg: "la reserva aun no esta confirmada"}
	}
	if res.EstadoPago == domain.PagoPendiente || res.EstadoPago == domain.PagoRechazado {
		return nil, "", domain.ValidationError{Field: "estadoPago", Msg: "el pago no ha sido aprobado"}
	}
	utils.LogEvent(s.RequestID, "voucher", "generar", "codigo="+res.Codigo)
	return buildVoucherPDF(res)
}

func buildVoucherPDF(res models.Reserva) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Voucher de Reserva", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "VOUCHER DE RESERVA")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Codigo      : "+res.Codigo)
	pdf.Ln(7)
	pdf.Cell(0, 7, "Emitido     : "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Datos del cliente:")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 12)
	lineas := []string{
		fmt.Sprintf("Nombre      : %s", conRelleno(res.NombreCliente, "-")),
		fmt.Sprintf("Telefono    : %s", conRelleno(res.TelefonoCliente, "-")),
		fmt.Sprintf("Correo      : %s", conRelleno(res.CorreoCliente, "-")),
	}
	for _, l := range lineas {
		pdf.Cell(0, 7, l)
		pdf.Ln(7)
	}
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Detalle del servicio:")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 12)
	detalle := []string{
		fmt.Sprintf("Fecha/Hora  : %s %s", conRelleno(res.Fecha, "-"), conRelleno(res.Hora, "-")),
		fmt.Sprintf("Municipio   : %s", conRelleno(res.Municipio, "-")),
		fmt.Sprintf("Recogida    : %s", conRelleno(res.DireccionRecogida, "-")),
		fmt.Sprintf("Pasajeros   : %d", res.NumPasajeros),
		fmt.Sprintf("Estado      : %s", conRelleno(res.Estado, "-")),
	}
	for _, l := range detalle {
		pdf.Cell(0, 7, l)
		pdf.Ln(7)
	}
	if len(res.Pasajeros) > 0 {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, "Pasajeros:")
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 11)
		for i, p := range res.Pasajeros {
			pdf.Cell(0, 6, fmt.Sprintf("%d) %s %s", i+1, conRelleno(p.Nombre, "-"), p.Documento))
			pdf.Ln(6)
		}
	}
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Valores:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	valores := []struct {
		etiqueta string
		monto    int64
	}{
		{"Precio base", res.PrecioBase},
		{"Adicionales", res.PrecioAdicionales},
		{"Recargo nocturno", res.RecargoNocturno},
		{"Recargo municipio", res.RecargoMunicipio},
		{"Descuento", -res.DescuentoAliado},
	}
	for _, v := range valores {
		if v.monto == 0 {
			continue
		}
		pdf.Cell(0, 6, fmt.Sprintf("%-18s %s", v.etiqueta+":", utils.FormatPesos(v.monto)))
		pdf.Ln(6)
	}
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total: "+utils.FormatPesos(res.Total))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Presente este voucher al conductor al momento de la recogida. Valido solo para la fecha y hora indicadas.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("VOUCHER_%s.pdf", parteArchivo(res.Codigo))
	return buf.Bytes(), filename, nil
}

func conRelleno(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func parteArchivo(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}

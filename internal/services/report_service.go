package services

import (
	"bytes"
	"context"
	"fmt"

	"botpanel-backend/internal/models"
	"botpanel-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
)

type RateRepo interface {
	List(ctx context.Context, scope models.Scope, destino string) ([]*models.Rate, error)
	Create(ctx context.Context, rate *models.Rate) error
	Update(ctx context.Context, scope models.Scope, rate *models.Rate) error
	Delete(ctx context.Context, scope models.Scope, id int) error
}

// ReportService renders printable exports of panel data.
type ReportService struct {
	Rates RateRepo
}

func NewReportService(rates RateRepo) *ReportService {
	return &ReportService{Rates: rates}
}

// RatesPDF renders the visible rate table as a PDF.
func (s *ReportService) RatesPDF(ctx context.Context, scope models.Scope, destino string) ([]byte, error) {
	rates, err := s.Rates.List(ctx, scope, destino)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "Tarifas de Transporte", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generado: %s", timeutil.FormatVET(timeutil.Now(), timeutil.DisplayLayout)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFillColor(230, 230, 230)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(55, 7, "Origen", "1", 0, "C", true, 0, "")
	pdf.CellFormat(55, 7, "Destino", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Tarifa", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Moneda", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, rate := range rates {
		pdf.CellFormat(55, 6, rate.Origen, "1", 0, "L", false, 0, "")
		pdf.CellFormat(55, 6, rate.Destino, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%.2f", rate.Tarifa), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, rate.Moneda, "1", 1, "C", false, 0, "")
	}
	if len(rates) == 0 {
		pdf.CellFormat(190, 6, "Sin tarifas registradas", "1", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

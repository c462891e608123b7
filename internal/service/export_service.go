package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tu-wellness/booking-api/internal/models"
	appErrors "github.com/tu-wellness/booking-api/pkg/errors"
	"github.com/tu-wellness/booking-api/pkg/export"
)

// Export formats for class rosters.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

type rosterLister interface {
	ListByClass(ctx context.Context, classID string) ([]models.Booking, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportResult carries a rendered roster file.
type ExportResult struct {
	Payload     []byte
	ContentType string
	Filename    string
}

// ExportService renders class rosters as downloadable files for the studio
// operator.
type ExportService struct {
	bookings rosterLister
	csv      csvRenderer
	pdf      pdfRenderer
	logger   *zap.Logger
}

// NewExportService constructs the roster exporter.
func NewExportService(bookings rosterLister, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{bookings: bookings, csv: csv, pdf: pdf, logger: logger}
}

var rosterHeaders = []string{"Booking", "Customer", "Email", "WhatsApp", "Level", "Payment", "Status", "Created"}

// ClassRoster renders the roster of one slot in the requested format.
func (s *ExportService) ClassRoster(ctx context.Context, classID, format string) (*ExportResult, error) {
	format = strings.ToLower(format)
	if format != ExportFormatCSV && format != ExportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}

	bookings, err := s.bookings.ListByClass(ctx, classID)
	if err != nil {
		return nil, err
	}

	dataset := export.Dataset{Headers: rosterHeaders, Rows: make([]map[string]string, 0, len(bookings))}
	for _, booking := range bookings {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Booking":  booking.ID,
			"Customer": booking.CustomerName,
			"Email":    booking.Email,
			"WhatsApp": booking.WhatsApp,
			"Level":    string(booking.ExperienceLevel),
			"Payment":  string(booking.PaymentStatus),
			"Status":   string(booking.Status),
			"Created":  booking.CreatedAt.Format(time.RFC3339),
		})
	}

	switch format {
	case ExportFormatCSV:
		payload, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
		}
		return &ExportResult{
			Payload:     payload,
			ContentType: "text/csv",
			Filename:    "roster-" + classID + ".csv",
		}, nil
	default:
		payload, err := s.pdf.Render(dataset, "Class Roster "+classID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, appErrors.ErrInternal.Message)
		}
		return &ExportResult{
			Payload:     payload,
			ContentType: "application/pdf",
			Filename:    "roster-" + classID + ".pdf",
		}, nil
	}
}

package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-wellness/booking-api/internal/models"
	appErrors "github.com/tu-wellness/booking-api/pkg/errors"
)

type stubRoster struct {
	bookings []models.Booking
	err      error
}

func (s *stubRoster) ListByClass(ctx context.Context, classID string) ([]models.Booking, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.bookings, nil
}

func rosterFixture() *stubRoster {
	return &stubRoster{bookings: []models.Booking{
		{
			ID:              "TU-20260615-A3B7C",
			ClassID:         "2026-06-15-0700-group",
			CustomerName:    "Sarah Johnson",
			Email:           "sarah@example.com",
			WhatsApp:        "+573001234567",
			ExperienceLevel: models.ExperienceIntermediate,
			PaymentStatus:   models.PaymentCompleted,
			Status:          models.BookingConfirmed,
			CreatedAt:       time.Date(2026, 6, 14, 10, 0, 0, 0, time.UTC),
		},
	}}
}

func TestClassRosterCSV(t *testing.T) {
	svc := NewExportService(rosterFixture(), nil, nil, nil)

	result, err := svc.ClassRoster(context.Background(), "2026-06-15-0700-group", "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.Equal(t, "roster-2026-06-15-0700-group.csv", result.Filename)

	records, err := csv.NewReader(bytes.NewReader(result.Payload)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, rosterHeaders, records[0])
	assert.Equal(t, "TU-20260615-A3B7C", records[1][0])
	assert.Equal(t, "Sarah Johnson", records[1][1])
	assert.Equal(t, "confirmed", records[1][6])
}

func TestClassRosterPDF(t *testing.T) {
	svc := NewExportService(rosterFixture(), nil, nil, nil)

	result, err := svc.ClassRoster(context.Background(), "2026-06-15-0700-group", "PDF")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, bytes.HasPrefix(result.Payload, []byte("%PDF")))
}

func TestClassRosterUnknownFormat(t *testing.T) {
	svc := NewExportService(rosterFixture(), nil, nil, nil)

	_, err := svc.ClassRoster(context.Background(), "2026-06-15-0700-group", "xlsx")
	assert.Equal(t, "VALIDATION_ERROR", appErrors.FromError(err).Code)
}

func TestClassRosterPropagatesListError(t *testing.T) {
	svc := NewExportService(&stubRoster{err: appErrors.ErrInvalidClassID}, nil, nil, nil)

	_, err := svc.ClassRoster(context.Background(), "bad", "csv")
	assert.ErrorIs(t, err, appErrors.ErrInvalidClassID)
}

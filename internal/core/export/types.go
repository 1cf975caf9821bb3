package export

import (
	"fmt"
	"io"
	"time"

	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/models"
)

// Format is the export file format
type Format string

const (
	FormatExcel Format = "excel"
	FormatPDF   Format = "pdf"
)

// Exporter renders a table snapshot into one output format
type Exporter interface {
	Export(data *Data, writer io.Writer) error
	GetContentType() string
	GetFileExtension() string
}

// Data is a board snapshot ready for rendering
type Data struct {
	Title     string
	CreatedAt time.Time
	Headers   []string
	Rows      [][]interface{}
}

// BuildTaskExport flattens the task board into table rows
func BuildTaskExport(tasks []models.Task) *Data {
	rows := make([][]interface{}, len(tasks))
	for i, t := range tasks {
		rows[i] = []interface{}{t.Name, t.Status, t.CreatedAt.Format("2006-01-02")}
	}

	return &Data{
		Title:     "Tasks",
		CreatedAt: time.Now(),
		Headers:   []string{"Name", "Status", "Created"},
		Rows:      rows,
	}
}

// BuildAppointmentExport flattens the appointment board into table rows
func BuildAppointmentExport(appointments []models.Appointment) *Data {
	rows := make([][]interface{}, len(appointments))
	for i, a := range appointments {
		rows[i] = []interface{}{a.Name, a.Email, a.Date.Format("2006-01-02"), a.Time, a.Type, a.Status}
	}

	return &Data{
		Title:     "Appointments",
		CreatedAt: time.Now(),
		Headers:   []string{"Name", "Email", "Date", "Time", "Type", "Status"},
		Rows:      rows,
	}
}

// BuildReservationExport flattens the reservation board into table rows
func BuildReservationExport(reservations []models.Reservation) *Data {
	rows := make([][]interface{}, len(reservations))
	for i, r := range reservations {
		rows[i] = []interface{}{r.Name, r.Email, r.Date.Format("2006-01-02"), r.Time, r.ReservationType, r.PeopleCount, r.Status}
	}

	return &Data{
		Title:     "Reservations",
		CreatedAt: time.Now(),
		Headers:   []string{"Name", "Email", "Date", "Time", "Type", "Party Size", "Status"},
		Rows:      rows,
	}
}

// NewExporter returns the exporter for a format
func NewExporter(format Format) (Exporter, error) {
	switch format {
	case FormatExcel:
		return NewExcelExporter(), nil
	case FormatPDF:
		return NewPDFExporter(), nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

// Package receipt renders a customer's booking history as a PDF.
package receipt

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/iliyamo/cinema-seat-booking/internal/model"
	"github.com/iliyamo/cinema-seat-booking/internal/service"
)

// Render builds a one-document receipt listing every screening in h with
// its seats and subtotal.  generatedAt is printed in the header.
func Render(username string, h *service.History, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking receipt", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BOOKING RECEIPT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Customer : "+username)
	pdf.Ln(7)
	pdf.Cell(0, 7, "Issued   : "+generatedAt.UTC().Format("2006-01-02 15:04")+" UTC")
	pdf.Ln(10)

	if len(h.Groups) == 0 {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.Cell(0, 7, "No bookings.")
		pdf.Ln(7)
	}
	for i, g := range h.Groups {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, fmt.Sprintf("%d) %s", i+1, g.Movie.Title))
		pdf.Ln(7)

		pdf.SetFont("Helvetica", "", 11)
		pdf.Cell(0, 6, fmt.Sprintf("Hall %s, %s (%s)", g.Hall.Name, g.Screening.StartTime.UTC().Format("Mon 02 Jan 2006 15:04"), g.Status))
		pdf.Ln(6)
		pdf.MultiCell(0, 6, "Seats: "+seatList(g.Seats), "", "", false)
		pdf.Cell(0, 6, fmt.Sprintf("%d x %s = %s", len(g.Seats), model.FormatPrice(g.Screening.PriceCents), model.FormatPrice(g.TotalCents)))
		pdf.Ln(9)
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Total: %s for %d seat(s) in %d screening(s)", model.FormatPrice(h.TotalCents), h.Seats, h.Screenings))
	pdf.Ln(8)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func seatList(seats []model.Position) string {
	parts := make([]string, 0, len(seats))
	for _, p := range seats {
		parts = append(parts, p.String())
	}
	return strings.Join(parts, "; ")
}

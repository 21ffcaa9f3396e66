package bookings

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/phpdave11/gofpdf"
)

// TicketData carries everything the e-ticket PDF needs. The service fills it
// from the booking and its trip.
type TicketData struct {
	BookingRef    string
	CustomerName  string
	CustomerPhone string
	SeatNumbers   []int
	Origin        string
	Destination   string
	BusName       string
	Registration  string
	DepartureAt   string
	TotalSeats    int
	TotalAmount   float64
	Status        string
}

func buildTicketPDF(d TicketData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BUS E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking Ref  : %s", safeText(d.BookingRef, "-")),
		fmt.Sprintf("Passenger    : %s", safeText(d.CustomerName, "-")),
		fmt.Sprintf("Phone        : %s", safeText(d.CustomerPhone, "-")),
		fmt.Sprintf("Route        : %s -> %s", safeText(d.Origin, "-"), safeText(d.Destination, "-")),
		fmt.Sprintf("Bus          : %s (%s)", safeText(d.BusName, "-"), safeText(d.Registration, "-")),
		fmt.Sprintf("Departure    : %s", safeText(d.DepartureAt, "-")),
		fmt.Sprintf("Seats        : %s", formatSeatList(d.SeatNumbers)),
		fmt.Sprintf("Total Amount : %.2f", d.TotalAmount),
		fmt.Sprintf("Status       : %s", safeText(d.Status, "-")),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Please present this ticket and a valid ID at boarding. Seats are non-transferable between trips.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("TICKET_%s.pdf", safeFilenamePart(d.BookingRef))
	return buf.Bytes(), filename, nil
}

func formatSeatList(seats []int) string {
	if len(seats) == 0 {
		return "-"
	}
	sorted := make([]int, len(seats))
	copy(sorted, seats)
	sort.Ints(sorted)

	parts := make([]string, 0, len(sorted))
	for _, s := range sorted {
		parts = append(parts, fmt.Sprintf("%d", s))
	}
	return strings.Join(parts, ", ")
}

func safeText(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
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

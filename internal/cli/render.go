package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/iliyamo/cinema-seat-booking/internal/model"
	"github.com/iliyamo/cinema-seat-booking/internal/service"
)

const (
	cellFree    = "[ ]"
	cellTaken   = "[X]"
	cellMissing = " - "
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.Style().Format.Footer = text.FormatDefault
	return t
}

func renderMovies(w io.Writer, movies []model.Movie) {
	t := newTable(w)
	t.AppendHeader(table.Row{"ID", "Title", "Duration"})
	for _, m := range movies {
		t.AppendRow(table.Row{m.ID, m.Title, fmt.Sprintf("%d min", m.DurationMinutes)})
	}
	t.Render()
}

func renderScreenings(w io.Writer, list []model.ScreeningDetail) {
	t := newTable(w)
	t.AppendHeader(table.Row{"ID", "Movie", "Hall", "Starts (UTC)", "Price"})
	for _, d := range list {
		t.AppendRow(table.Row{
			d.Screening.ID,
			d.Movie.Title,
			d.Hall.Name,
			d.Screening.StartTime.UTC().Format("Mon 02 Jan 15:04"),
			model.FormatPrice(d.Screening.PriceCents),
		})
	}
	t.Render()
}

// renderSeatMap draws the grid with one column per seat number, then the
// occupancy summary.
func renderSeatMap(w io.Writer, d *model.ScreeningDetail, l *model.Layout) {
	fmt.Fprintf(w, "%s | %s | %s\n", d.Movie.Title, d.Hall.Name, d.Screening.StartTime.UTC().Format("Mon 02 Jan 15:04"))

	t := newTable(w)
	header := table.Row{"Row"}
	configs := []table.ColumnConfig{{Number: 1, Align: text.AlignRight}}
	for s := 1; s <= l.SeatsPerRow; s++ {
		header = append(header, strconv.Itoa(s))
		configs = append(configs, table.ColumnConfig{Number: s + 1, Align: text.AlignCenter, AlignHeader: text.AlignCenter})
	}
	t.AppendHeader(header)
	t.SetColumnConfigs(configs)
	for r := 1; r <= l.Rows; r++ {
		row := table.Row{r}
		for s := 1; s <= l.SeatsPerRow; s++ {
			row = append(row, seatCell(l, model.Position{Row: r, Seat: s}))
		}
		t.AppendRow(row)
	}
	st := l.Stats()
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d/%d free, %.1f%% sold", st.Available, st.Total, st.Occupancy)})
	t.Render()
	fmt.Fprintf(w, "%s free  %s taken or held  %s no seat\n", cellFree, cellTaken, cellMissing)
}

func seatCell(l *model.Layout, p model.Position) string {
	switch {
	case l.SeatID(p) == model.NoSeat:
		return cellMissing
	case l.Taken(p):
		return cellTaken
	default:
		return cellFree
	}
}

func renderBookingResult(w io.Writer, res *model.BookingResult) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Seat", "Result"})
	for _, o := range res.Outcomes {
		status := "booked"
		switch o.Status {
		case model.SeatRejectedTaken:
			status = "already taken"
		case model.SeatRejectedInvalid:
			status = "invalid seat"
		}
		t.AppendRow(table.Row{o.Position.String(), status})
	}
	t.Render()
	if res.AllSucceeded {
		fmt.Fprintf(w, "All %d seat(s) booked.\n", len(res.Succeeded))
		return
	}
	fmt.Fprintf(w, "%d booked, %d failed.\n", len(res.Succeeded), len(res.Failed))
}

func renderHistory(w io.Writer, h *service.History) {
	if len(h.Groups) == 0 {
		fmt.Fprintln(w, "No bookings yet.")
		return
	}
	t := newTable(w)
	t.AppendHeader(table.Row{"Movie", "Hall", "Starts (UTC)", "Status", "Seats", "Total"})
	for _, g := range h.Groups {
		seats := ""
		for i, p := range g.Seats {
			if i > 0 {
				seats += "\n"
			}
			seats += p.String()
		}
		t.AppendRow(table.Row{
			g.Movie.Title,
			g.Hall.Name,
			g.Screening.StartTime.UTC().Format("Mon 02 Jan 15:04"),
			string(g.Status),
			seats,
			model.FormatPrice(g.TotalCents),
		})
	}
	t.AppendFooter(table.Row{"", "", "", "", fmt.Sprintf("%d seat(s)", h.Seats), model.FormatPrice(h.TotalCents)})
	t.Render()
}

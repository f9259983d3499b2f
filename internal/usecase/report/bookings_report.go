package report

import (
	"context"
	"encoding/csv"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/access"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type BookingLister interface {
	Range(ctx context.Context, scope access.Scope, from, to string) ([]models.Booking, error)
}

type ServiceRevenue struct {
	ServiceID uuid.UUID `json:"service_id"`
	Name      string    `json:"name"`
	Completed int       `json:"completed"`
	Revenue   float64   `json:"revenue"`
}

type BookingsReport struct {
	From     string           `json:"from"`
	To       string           `json:"to"`
	Total    int              `json:"total"`
	ByStatus map[string]int   `json:"by_status"`
	Revenue  float64          `json:"revenue"`
	Services []ServiceRevenue `json:"services"`

	Bookings []models.Booking `json:"-"`
}

type BuildBookingsReport struct {
	bookings BookingLister
}

func NewBuildBookingsReport(bookings BookingLister) *BuildBookingsReport {
	return &BuildBookingsReport{bookings: bookings}
}

// Execute summarises bookings in [from, to]. Revenue counts completed
// bookings only, at the service's current price.
func (uc *BuildBookingsReport) Execute(
	ctx context.Context,
	scope access.Scope,
	from, to string,
) (*BookingsReport, error) {

	rows, err := uc.bookings.Range(ctx, scope, from, to)
	if err != nil {
		return nil, err
	}

	r := &BookingsReport{
		From: from,
		To:   to,
		ByStatus: map[string]int{
			string(domain.StatusScheduled): 0,
			string(domain.StatusCompleted): 0,
			string(domain.StatusCancelled): 0,
		},
		Services: []ServiceRevenue{},
		Bookings: rows,
	}

	perService := map[uuid.UUID]*ServiceRevenue{}
	for _, b := range rows {
		r.Total++
		r.ByStatus[b.Status]++

		if b.Status != string(domain.StatusCompleted) {
			continue
		}
		r.Revenue += b.Service.Price

		sr, ok := perService[b.ServiceID]
		if !ok {
			sr = &ServiceRevenue{ServiceID: b.ServiceID, Name: b.Service.Name}
			perService[b.ServiceID] = sr
		}
		sr.Completed++
		sr.Revenue += b.Service.Price
	}

	for _, sr := range perService {
		r.Services = append(r.Services, *sr)
	}
	sort.Slice(r.Services, func(i, j int) bool {
		if r.Services[i].Revenue != r.Services[j].Revenue {
			return r.Services[i].Revenue > r.Services[j].Revenue
		}
		return r.Services[i].Name < r.Services[j].Name
	})

	return r, nil
}

var csvHeader = []string{
	"id", "date", "time", "status",
	"client_name", "client_phone", "client_email",
	"barbershop", "barber", "service", "price",
}

// textCell quotes values a spreadsheet would run as a formula; client
// fields come straight from the public booking form.
func textCell(v string) string {
	if v != "" && strings.ContainsRune("=+-@\t\r", rune(v[0])) {
		return "'" + v
	}
	return v
}

// WriteCSV writes one line per booking of the report.
func WriteCSV(w io.Writer, r *BookingsReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, b := range r.Bookings {
		if err := cw.Write([]string{
			b.ID.String(),
			b.Date,
			b.Time,
			b.Status,
			textCell(b.ClientName),
			textCell(b.ClientPhone),
			textCell(b.ClientEmail),
			textCell(b.Barbershop.Name),
			textCell(b.Barber.Name),
			textCell(b.Service.Name),
			strconv.FormatFloat(b.Service.Price, 'f', 2, 64),
		}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

package booking

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
	"github.com/BruksfildServices01/barbershop-booking/internal/validators"
)

// ===============================
// Wizard steps
// ===============================

type Step int

const (
	StepSelectShop Step = iota
	StepSelectBarberAndService
	StepSelectDateTime
	StepEnterClientInfo
)

func (s Step) String() string {
	switch s {
	case StepSelectShop:
		return "select_shop"
	case StepSelectBarberAndService:
		return "select_barber_and_service"
	case StepSelectDateTime:
		return "select_date_time"
	case StepEnterClientInfo:
		return "enter_client_info"
	}
	return "unknown"
}

// SlotSource returns the free slots of a barber on a YYYY-MM-DD date.
type SlotSource func(ctx context.Context, barberID uuid.UUID, date string) ([]string, error)

// Submission is what a form that passed every guard hands to the commit.
type Submission struct {
	BarbershopID uuid.UUID
	BarberID     uuid.UUID
	ServiceID    uuid.UUID
	Date         string
	Time         string
	ClientName   string
	ClientPhone  string
	ClientEmail  string
	Notes        string
}

// Form is the four-step booking wizard. It holds everything in memory;
// nothing is written until the caller commits the Submission.
type Form struct {
	step Step

	shopID    uuid.UUID
	barberID  uuid.UUID
	serviceID uuid.UUID
	date      string
	time      string

	clientName  string
	clientPhone string
	clientEmail string
	notes       string

	available []string

	slots SlotSource
	tz    string
	now   func() time.Time
}

func NewForm(slots SlotSource, tz string, now func() time.Time) *Form {
	if now == nil {
		now = time.Now
	}
	return &Form{slots: slots, tz: tz, now: now}
}

func (f *Form) Step() Step { return f.step }

// Available is the result of the last availability computation.
func (f *Form) Available() []string {
	return append([]string(nil), f.available...)
}

func (f *Form) Selection() Submission {
	return Submission{
		BarbershopID: f.shopID,
		BarberID:     f.barberID,
		ServiceID:    f.serviceID,
		Date:         f.date,
		Time:         f.time,
		ClientName:   f.clientName,
		ClientPhone:  f.clientPhone,
		ClientEmail:  f.clientEmail,
		Notes:        f.notes,
	}
}

// ===============================
// Selections
// ===============================

// SelectShop drops every selection that belonged to the previous shop.
func (f *Form) SelectShop(id uuid.UUID) {
	if id == f.shopID {
		return
	}
	f.shopID = id
	f.barberID = uuid.Nil
	f.serviceID = uuid.Nil
	f.date = ""
	f.time = ""
	f.available = nil
	f.rewind(StepSelectBarberAndService)
}

func (f *Form) SelectBarber(ctx context.Context, id uuid.UUID) error {
	if id == f.barberID {
		return nil
	}
	f.barberID = id
	return f.recompute(ctx)
}

func (f *Form) SelectService(id uuid.UUID) {
	f.serviceID = id
}

func (f *Form) SelectDate(ctx context.Context, date string) error {
	date = strings.TrimSpace(date)
	if date == f.date {
		return nil
	}
	f.date = date

	if _, err := timezone.ParseDate(f.tz, date); err != nil {
		f.available = nil
		f.clearStaleTime()
		return httperr.ValidationError{Fields: map[string]string{"date": msgInvalidDate}}
	}
	return f.recompute(ctx)
}

func (f *Form) SelectTime(t string) {
	f.time = strings.TrimSpace(t)
}

func (f *Form) SetClientInfo(name, phone, email, notes string) {
	f.clientName = strings.TrimSpace(name)
	f.clientPhone = strings.TrimSpace(phone)
	f.clientEmail = strings.TrimSpace(email)
	f.notes = strings.TrimSpace(notes)
}

// ===============================
// Navigation
// ===============================

// Next runs the guard of the current step and advances on success.
func (f *Form) Next() error {
	fields := map[string]string{}

	switch f.step {
	case StepSelectShop:
		f.guardShop(fields)
	case StepSelectBarberAndService:
		f.guardBarberAndService(fields)
	case StepSelectDateTime:
		f.guardDateTime(fields)
	case StepEnterClientInfo:
		return nil
	}

	if len(fields) > 0 {
		return httperr.ValidationError{Fields: fields}
	}
	f.step++
	return nil
}

// Back re-opens the previous step for editing.
func (f *Form) Back() {
	if f.step > StepSelectShop {
		f.step--
	}
}

// Submit checks every guard at once so all offending fields are reported.
func (f *Form) Submit() (Submission, error) {
	fields := map[string]string{}
	f.guardShop(fields)
	f.guardBarberAndService(fields)
	f.guardDateTime(fields)
	f.guardClient(fields)

	if len(fields) > 0 {
		return Submission{}, httperr.ValidationError{Fields: fields}
	}
	return f.Selection(), nil
}

// ===============================
// Guards
// ===============================

const (
	msgShopRequired    = "Selecione uma barbearia."
	msgBarberRequired  = "Selecione um barbeiro."
	msgServiceRequired = "Selecione um serviço."
	msgDateRequired    = "Selecione uma data."
	msgInvalidDate     = "Data inválida."
	msgPastDate        = "A data não pode estar no passado."
	msgTimeRequired    = "Selecione um horário."
	msgTimeUnavailable = "Horário indisponível."
	msgNameRequired    = "Informe seu nome."
	msgInvalidPhone    = "Telefone inválido. Use (11) 98765-4321."
	msgInvalidEmail    = "E-mail inválido."
)

func (f *Form) guardShop(fields map[string]string) {
	if f.shopID == uuid.Nil {
		fields["barbershop_id"] = msgShopRequired
	}
}

func (f *Form) guardBarberAndService(fields map[string]string) {
	if f.barberID == uuid.Nil {
		fields["barber_id"] = msgBarberRequired
	}
	if f.serviceID == uuid.Nil {
		fields["service_id"] = msgServiceRequired
	}
}

func (f *Form) guardDateTime(fields map[string]string) {
	switch d, err := timezone.ParseDate(f.tz, f.date); {
	case f.date == "":
		fields["date"] = msgDateRequired
	case err != nil:
		fields["date"] = msgInvalidDate
	case timezone.IsPastDate(d, f.now().In(d.Location())):
		fields["date"] = msgPastDate
	}

	switch {
	case f.time == "":
		fields["time"] = msgTimeRequired
	case !contains(f.available, f.time):
		fields["time"] = msgTimeUnavailable
	}
}

func (f *Form) guardClient(fields map[string]string) {
	if f.clientName == "" {
		fields["client_name"] = msgNameRequired
	}
	if !validators.IsBrazilianPhone(f.clientPhone) {
		fields["client_phone"] = msgInvalidPhone
	}
	if f.clientEmail != "" && !validators.IsEmail(f.clientEmail) {
		fields["client_email"] = msgInvalidEmail
	}
}

// ===============================
// Availability
// ===============================

// Refresh recomputes availability for the current barber and date.
func (f *Form) Refresh(ctx context.Context) error {
	return f.recompute(ctx)
}

func (f *Form) recompute(ctx context.Context) error {
	_, dateErr := timezone.ParseDate(f.tz, f.date)
	if f.barberID == uuid.Nil || dateErr != nil || f.slots == nil {
		f.available = nil
		f.clearStaleTime()
		return nil
	}

	slots, err := f.slots(ctx, f.barberID, f.date)
	if err != nil {
		f.available = nil
		f.clearStaleTime()
		return err
	}

	f.available = slots
	f.clearStaleTime()
	return nil
}

func (f *Form) clearStaleTime() {
	if f.time != "" && !contains(f.available, f.time) {
		f.time = ""
		f.rewind(StepSelectDateTime)
	}
}

func (f *Form) rewind(to Step) {
	if f.step > to {
		f.step = to
	}
}

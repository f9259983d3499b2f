package booking

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
	"github.com/BruksfildServices01/barbershop-booking/internal/validators"
)

const whatsAppBase = "https://wa.me/"

// Confirmation is handed back to the client right after the booking is
// stored; opening the link is up to the client and may fail silently.
type Confirmation struct {
	Message     string `json:"message"`
	WhatsAppURL string `json:"whatsapp_url"`
}

func BuildConfirmation(
	shop *models.Barbershop,
	barber *models.Barber,
	service *models.Service,
	date string,
	at string,
) Confirmation {
	longDate := date
	if d, err := timezone.ParseDate(shop.Timezone, date); err == nil {
		longDate = LongDatePT(d)
	}

	var b strings.Builder
	b.WriteString("Olá! Gostaria de confirmar meu agendamento:\n\n")
	fmt.Fprintf(&b, "Barbearia: %s\n", shop.Name)
	fmt.Fprintf(&b, "Data: %s\n", longDate)
	fmt.Fprintf(&b, "Horário: %s\n", at)
	fmt.Fprintf(&b, "Barbeiro: %s\n", barber.Name)
	fmt.Fprintf(&b, "Serviço: %s\n", service.Name)
	fmt.Fprintf(&b, "Valor: %s", FormatBRL(service.Price))

	msg := b.String()
	return Confirmation{
		Message:     msg,
		WhatsAppURL: WhatsAppLink(shop.Phone, msg),
	}
}

// WhatsAppLink addresses a wa.me chat; local 10/11-digit numbers get the
// Brazilian country code.
func WhatsAppLink(phone, message string) string {
	digits := validators.DigitsOnly(phone)
	if n := len(digits); n == 10 || n == 11 {
		digits = "55" + digits
	}
	text := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return whatsAppBase + digits + "?text=" + text
}

var (
	weekdaysPT = [...]string{
		"domingo", "segunda-feira", "terça-feira", "quarta-feira",
		"quinta-feira", "sexta-feira", "sábado",
	}
	monthsPT = [...]string{
		"janeiro", "fevereiro", "março", "abril", "maio", "junho",
		"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
	}
)

// LongDatePT renders e.g. "terça-feira, 10 de junho de 2025".
func LongDatePT(t time.Time) string {
	return fmt.Sprintf("%s, %d de %s de %d",
		weekdaysPT[t.Weekday()], t.Day(), monthsPT[t.Month()-1], t.Year())
}

// FormatBRL renders 1234.5 as "R$ 1.234,50".
func FormatBRL(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	cents := int64(v*100 + 0.5)
	whole, frac := cents/100, cents%100

	digits := fmt.Sprintf("%d", whole)
	var grouped strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(r)
	}
	return fmt.Sprintf("%sR$ %s,%02d", sign, grouped.String(), frac)
}

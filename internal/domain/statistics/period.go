// Package statistics calcula los períodos calendario y los agregados por bucket
// de las estadísticas de ventas. No hace I/O: recibe muestras y devuelve sumas.
package statistics

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
)

// Mode granularidad del período consultado.
type Mode string

const (
	ModeDay   Mode = "day"   // 24 buckets horarios
	ModeWeek  Mode = "week"  // semana ISO (lunes a domingo), buckets diarios
	ModeMonth Mode = "month" // mes calendario, buckets diarios
	ModeYear  Mode = "year"  // año calendario, buckets mensuales
)

// MaxOffsetMinutes límite del desfase horario aceptado (UTC-14 a UTC+14).
const MaxOffsetMinutes = 14 * 60

// ParseMode valida el modo recibido.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeDay, ModeWeek, ModeMonth, ModeYear:
		return m, nil
	}
	return "", domain.Invalid("mode", "debe ser day, week, month o year")
}

// Date fecha calendario sin hora ni zona.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func dateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Formatos sin zona: se interpretan como hora local del cliente.
var localLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// ParseAnchor interpreta la fecha ancla. Un instante con zona (RFC 3339) se lleva primero
// al marco local del cliente (offsetMinutes) y después se toma su fecha calendario.
func ParseAnchor(s string, offsetMinutes int) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, domain.Invalid("anchor", "requerido")
	}
	for _, layout := range localLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return dateOf(t), nil
		}
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return dateOf(t.In(offsetZone(offsetMinutes))), nil
	}
	return Date{}, domain.Invalid("anchor", "fecha inválida: "+s)
}

// ValidateOffset verifica que el desfase esté dentro de ±14 horas.
func ValidateOffset(offsetMinutes int) error {
	if offsetMinutes < -MaxOffsetMinutes || offsetMinutes > MaxOffsetMinutes {
		return domain.Invalid("tzOffset", "fuera de rango (±840 minutos)")
	}
	return nil
}

// offsetZone zona fija con desfase respecto de UTC (local = UTC + offset).
func offsetZone(offsetMinutes int) *time.Location {
	sign := '+'
	m := offsetMinutes
	if m < 0 {
		sign = '-'
		m = -m
	}
	return time.FixedZone(fmt.Sprintf("UTC%c%02d:%02d", sign, m/60, m%60), offsetMinutes*60)
}

// Bucket subintervalo [Start, End) del período, en UTC, con sus agregados.
type Bucket struct {
	Label    string // en hora local del cliente
	Start    time.Time
	End      time.Time
	Count    int
	Quantity int64
	Revenue  decimal.Decimal
}

// Period rango [Start, End) en UTC y sus buckets contiguos.
type Period struct {
	Mode          Mode
	Anchor        Date
	OffsetMinutes int
	Start         time.Time
	End           time.Time
	Buckets       []Bucket
}

// NewPeriod traduce modo + ancla + desfase a un rango de instantes en UTC.
// Los límites son medianoches (u horas en punto) del calendario local del cliente:
// con offset -180, el día 2024-03-10 va de 03:00Z a 03:00Z del día siguiente.
func NewPeriod(mode Mode, anchor Date, offsetMinutes int) (Period, error) {
	if err := ValidateOffset(offsetMinutes); err != nil {
		return Period{}, err
	}
	loc := offsetZone(offsetMinutes)
	day := time.Date(anchor.Year, anchor.Month, anchor.Day, 0, 0, 0, 0, loc)

	var start, end time.Time
	var step func(time.Time) time.Time
	var layout string
	switch mode {
	case ModeDay:
		start, end = day, day.AddDate(0, 0, 1)
		step = func(t time.Time) time.Time { return t.Add(time.Hour) }
		layout = "15:04"
	case ModeWeek:
		back := (int(day.Weekday()) + 6) % 7 // lunes = 0
		start = day.AddDate(0, 0, -back)
		end = start.AddDate(0, 0, 7)
		step = func(t time.Time) time.Time { return t.AddDate(0, 0, 1) }
		layout = "2006-01-02"
	case ModeMonth:
		start = time.Date(anchor.Year, anchor.Month, 1, 0, 0, 0, 0, loc)
		end = start.AddDate(0, 1, 0)
		step = func(t time.Time) time.Time { return t.AddDate(0, 0, 1) }
		layout = "2006-01-02"
	case ModeYear:
		start = time.Date(anchor.Year, time.January, 1, 0, 0, 0, 0, loc)
		end = start.AddDate(1, 0, 0)
		step = func(t time.Time) time.Time { return t.AddDate(0, 1, 0) }
		layout = "2006-01"
	default:
		return Period{}, domain.Invalid("mode", "desconocido: "+string(mode))
	}

	p := Period{
		Mode:          mode,
		Anchor:        anchor,
		OffsetMinutes: offsetMinutes,
		Start:         start.UTC(),
		End:           end.UTC(),
	}
	for cur := start; cur.Before(end); {
		next := step(cur)
		p.Buckets = append(p.Buckets, Bucket{
			Label: cur.Format(layout),
			Start: cur.UTC(),
			End:   next.UTC(),
		})
		cur = next
	}
	return p, nil
}

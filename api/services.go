package api

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/adrischez00/campel-fichajes/calendar"
	"github.com/adrischez00/campel-fichajes/fichaje"
)

// punchDTO is the wire form of one punch event.
type punchDTO struct {
	Tipo      string `json:"tipo"`
	Timestamp string `json:"timestamp"`
	IsManual  bool   `json:"is_manual"`
	Motivo    string `json:"motivo,omitempty"`
}

// Fichajes fetches the caller's raw punch stream. Punches with unparseable
// timestamps are skipped: one bad record must not take the whole summary
// down with it.
func (c *Client) Fichajes(ctx context.Context) ([]fichaje.Punch, error) {
	var dtos []punchDTO
	if err := c.get(ctx, "/fichajes", &dtos); err != nil {
		return nil, err
	}
	punches := make([]fichaje.Punch, 0, len(dtos))
	for _, d := range dtos {
		ts, err := fichaje.ParseTimestamp(d.Timestamp)
		if err != nil {
			continue
		}
		punches = append(punches, fichaje.Punch{
			Kind:      fichaje.Kind(d.Tipo),
			Timestamp: ts,
			IsManual:  d.IsManual,
			Motive:    d.Motivo,
		})
	}
	return punches, nil
}

// Fichar registers a punch of the given kind, stamped by the server.
func (c *Client) Fichar(ctx context.Context, kind fichaje.Kind) error {
	form := url.Values{}
	form.Set("tipo", string(kind))
	return c.postForm(ctx, "/fichar", form, nil)
}

type absenceDTO struct {
	Tipo        string `json:"tipo"`
	Subtipo     string `json:"subtipo"`
	Estado      string `json:"estado"`
	Parcial     bool   `json:"parcial"`
	Retribuida  bool   `json:"retribuida"`
	FechaInicio string `json:"fecha_inicio"`
	FechaFin    string `json:"fecha_fin"`
	HoraInicio  string `json:"hora_inicio"`
	HoraFin     string `json:"hora_fin"`
	Motivo      string `json:"motivo"`
}

func (d absenceDTO) toEntry() calendar.DayEntry {
	return calendar.DayEntry{
		Tipo:        d.Tipo,
		Subtipo:     d.Subtipo,
		Estado:      d.Estado,
		Parcial:     d.Parcial,
		Retribuida:  d.Retribuida,
		FechaInicio: d.FechaInicio,
		FechaFin:    d.FechaFin,
		HoraInicio:  d.HoraInicio,
		HoraFin:     d.HoraFin,
		Motivo:      d.Motivo,
	}
}

// MisAusencias lists the caller's own absence requests.
func (c *Client) MisAusencias(ctx context.Context) ([]calendar.DayEntry, error) {
	var dtos []absenceDTO
	if err := c.get(ctx, "/ausencias/mias", &dtos); err != nil {
		return nil, err
	}
	entries := make([]calendar.DayEntry, 0, len(dtos))
	for _, d := range dtos {
		entries = append(entries, d.toEntry())
	}
	return entries, nil
}

// AbsenceRequest is the payload for a new absence request.
type AbsenceRequest struct {
	Tipo        string `json:"tipo"`
	Subtipo     string `json:"subtipo,omitempty"`
	FechaInicio string `json:"fecha_inicio"`
	FechaFin    string `json:"fecha_fin"`
	Parcial     bool   `json:"parcial"`
	Retribuida  bool   `json:"retribuida"`
	HoraInicio  string `json:"hora_inicio,omitempty"`
	HoraFin     string `json:"hora_fin,omitempty"`
	Motivo      string `json:"motivo,omitempty"`
}

// CrearAusencia submits a new absence request. A client-generated
// idempotency key keeps a retried submission from creating duplicates.
func (c *Client) CrearAusencia(ctx context.Context, req AbsenceRequest) error {
	header := http.Header{}
	header.Set("X-Idempotency-Key", uuid.NewString())
	return c.postJSON(ctx, "/ausencias", req, nil, header)
}

// CalendarEvents fetches the unified holiday/event feed for a span of ISO
// dates, inclusive.
func (c *Client) CalendarEvents(ctx context.Context, start, end string) ([]calendar.HolidayEvent, error) {
	var events []calendar.HolidayEvent
	q := url.Values{"start": {start}, "end": {end}}
	if err := c.get(ctx, "/calendar/events?"+q.Encode(), &events); err != nil {
		return nil, err
	}
	return events, nil
}

// WorkingDays asks the backend how many working days the span contains. The
// backend owns the holiday calendar; this count is authoritative.
func (c *Client) WorkingDays(ctx context.Context, start, end string) (int, error) {
	var payload struct {
		WorkingDays int `json:"working_days"`
	}
	q := url.Values{"start": {start}, "end": {end}}
	if err := c.get(ctx, "/calendar/working-days?"+q.Encode(), &payload); err != nil {
		return 0, err
	}
	return payload.WorkingDays, nil
}

// Saldo is one leave-type balance for the current year.
type Saldo struct {
	Tipo       string  `json:"tipo"`
	Asignado   float64 `json:"asignado"`
	Arrastre   float64 `json:"arrastre"`
	Gastado    float64 `json:"gastado"`
	Disponible float64 `json:"disponible"`
}

// Balance is the caller's leave balances, external and informational only.
type Balance struct {
	Anio   int     `json:"anio"`
	Saldos []Saldo `json:"saldos"`
}

// Balance fetches the caller's leave balances.
func (c *Client) Balance(ctx context.Context) (Balance, error) {
	var b Balance
	if err := c.get(ctx, "/ausencias/balance", &b); err != nil {
		return Balance{}, err
	}
	if b.Anio == 0 {
		b.Anio = time.Now().Year()
	}
	return b, nil
}

// RangeKeys renders a merged range as the (start, end) ISO pair the backend
// expects.
func RangeKeys(r calendar.DateRange) (string, string) {
	return calendar.ToKey(r.Start), calendar.ToKey(r.End)
}

// SpanKeys returns the ISO bounds of a whole visible span, e.g. the months
// currently on screen.
func SpanKeys(start, end time.Time) (string, string) {
	if end.Before(start) {
		start, end = end, start
	}
	return calendar.ToKey(start), calendar.ToKey(end)
}

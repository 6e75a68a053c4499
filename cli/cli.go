package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/adrischez00/campel-fichajes/api"
	"github.com/adrischez00/campel-fichajes/calendar"
	"github.com/adrischez00/campel-fichajes/fichaje"
	"github.com/adrischez00/campel-fichajes/storage"
)

// loadPunches fetches the punch stream, falling back to the local cache when
// the backend is unreachable. Successful fetches refresh the cache.
func loadPunches(ctx context.Context, client *api.Client) ([]fichaje.Punch, bool, error) {
	punches, err := client.Fichajes(ctx)
	if err == nil {
		// Best effort: a cache write failure must not break the command.
		_ = storage.WritePunches(punches, "")
		return punches, false, nil
	}

	cached, cacheErr := storage.ReadPunches("")
	if cacheErr != nil || len(cached) == 0 {
		return nil, false, err
	}
	return cached, true, nil
}

// FormatDuration formats a duration as "XhYYm".
func FormatDuration(d time.Duration) string {
	totalSeconds := int(d.Seconds())
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	return fmt.Sprintf("%dh%02dm", hours, minutes)
}

// CommandFichar registers a clock-in or clock-out punch.
func CommandFichar(client *api.Client, loc *time.Location, kind fichaje.Kind) error {
	ctx := context.Background()
	if err := client.Fichar(ctx, kind); err != nil {
		return err
	}

	now := time.Now().In(loc)
	switch kind {
	case fichaje.Entrada:
		fmt.Printf("Entrada registrada a las %s\n", now.Format("15:04"))
	case fichaje.Salida:
		fmt.Printf("Salida registrada a las %s\n", now.Format("15:04"))
	}
	return nil
}

// CommandStatus shows whether a shift is open and today's worked total.
func CommandStatus(client *api.Client, loc *time.Location) error {
	ctx := context.Background()
	punches, fromCache, err := loadPunches(ctx, client)
	if err != nil {
		return err
	}
	if fromCache {
		fmt.Println("(sin conexión: mostrando datos de la última sincronización)")
	}

	now := time.Now()
	res := fichaje.BuildResumen(punches, now, loc)

	if res.Open == nil {
		fmt.Println("No hay jornada abierta.")
	} else {
		elapsed, live := fichaje.OpenDuration(*res.Open, now, loc)
		since := res.Open.Since.In(loc)
		if live {
			fmt.Printf("Jornada abierta desde las %s (%s)\n", since.Format("15:04"), FormatDuration(elapsed))
		} else {
			fmt.Printf("Jornada sin cerrar del %s (%s computadas)\n", since.Format("2006-01-02"), FormatDuration(elapsed))
		}
		if res.Open.IsManual {
			fmt.Println("  (entrada registrada manualmente)")
		}
	}

	fmt.Printf("Total de hoy: %s\n", FormatDuration(fichaje.TodayTotal(res, now, loc)))
	return nil
}

// CommandResumen prints the reconstructed sessions for a date range. With no
// flags it covers today only.
func CommandResumen(client *api.Client, loc *time.Location, fromDate, toDate string) error {
	ctx := context.Background()
	punches, fromCache, err := loadPunches(ctx, client)
	if err != nil {
		return err
	}
	if fromCache {
		fmt.Println("(sin conexión: mostrando datos de la última sincronización)")
	}

	now := time.Now()
	today := now.In(loc).Format("2006-01-02")
	if fromDate == "" {
		fromDate = today
	}
	if toDate == "" {
		toDate = fromDate
	}
	if _, err := calendar.FromKey(fromDate); err != nil {
		return fmt.Errorf("invalid from date: %w", err)
	}
	if _, err := calendar.FromKey(toDate); err != nil {
		return fmt.Errorf("invalid to date: %w", err)
	}
	if toDate < fromDate {
		return fmt.Errorf("end date cannot be before start date")
	}

	res := fichaje.BuildResumen(punches, now, loc)

	var grand time.Duration
	shown := 0
	for _, day := range res.Days {
		if day.Date < fromDate || day.Date > toDate {
			continue
		}
		shown++
		fmt.Printf("%s\n", day.Date)
		for _, iv := range day.Intervals {
			fmt.Printf("  %s\n", formatInterval(iv, loc))
		}
		fmt.Printf("  Total: %s\n", FormatDuration(day.Total))
		grand += day.Total
	}

	if shown == 0 {
		fmt.Println("No hay fichajes en el rango seleccionado.")
		return nil
	}
	if shown > 1 {
		fmt.Printf("Total %s a %s: %s\n", fromDate, toDate, FormatDuration(grand))
	}
	if len(res.Future) > 0 {
		fmt.Printf("Aviso: %d fichaje(s) con fecha futura.\n", len(res.Future))
	}
	return nil
}

func formatInterval(iv fichaje.Interval, loc *time.Location) string {
	clock := func(p *fichaje.Punch) string {
		if p == nil {
			return "--:--"
		}
		return p.Timestamp.In(loc).Format("15:04")
	}

	line := fmt.Sprintf("%s -> %s", clock(iv.Entrada), clock(iv.Salida))
	if iv.Duration != nil {
		line += " : " + FormatDuration(*iv.Duration)
	}
	if iv.Anomaly != "" {
		line += " [" + iv.Anomaly + "]"
	}
	return line
}

// CommandAusencias lists the user's absence requests, optionally restricted
// to the given leave types.
func CommandAusencias(client *api.Client, types []string) error {
	ctx := context.Background()
	entries, err := client.MisAusencias(ctx)
	if err != nil {
		return err
	}

	if len(types) > 0 {
		want := make(map[string]bool, len(types))
		for _, t := range types {
			want[strings.ToUpper(t)] = true
		}
		var kept []calendar.DayEntry
		for _, e := range entries {
			if want[strings.ToUpper(e.Tipo)] {
				kept = append(kept, e)
			}
		}
		entries = kept
	}

	if len(entries) == 0 {
		fmt.Println("No hay ausencias solicitadas.")
		return nil
	}
	for _, e := range entries {
		span := e.FechaInicio
		if e.FechaFin != "" && e.FechaFin != e.FechaInicio {
			span += " a " + e.FechaFin
		}
		line := fmt.Sprintf("- %s [%s] %s", span, e.Estado, e.Tipo)
		if e.Parcial {
			line += fmt.Sprintf(" (parcial %s-%s)", e.HoraInicio, e.HoraFin)
		}
		fmt.Println(line)
	}
	return nil
}

// CommandSolicitar submits a new absence request for a date range.
func CommandSolicitar(client *api.Client, req api.AbsenceRequest) error {
	if req.Tipo == "" {
		return fmt.Errorf("solicitar requires --tipo")
	}
	start, err := calendar.FromKey(req.FechaInicio)
	if err != nil {
		return fmt.Errorf("invalid from date: %w", err)
	}
	end, err := calendar.FromKey(req.FechaFin)
	if err != nil {
		return fmt.Errorf("invalid to date: %w", err)
	}
	if end.Before(start) {
		return fmt.Errorf("end date cannot be before start date")
	}
	if req.Parcial && (req.HoraInicio == "" || req.HoraFin == "") {
		return fmt.Errorf("--parcial requires --desde and --hasta times")
	}
	if req.HoraInicio != "" {
		if _, _, err := fichaje.ParseTimeOfDay(req.HoraInicio); err != nil {
			return fmt.Errorf("invalid --desde: %w", err)
		}
	}
	if req.HoraFin != "" {
		if _, _, err := fichaje.ParseTimeOfDay(req.HoraFin); err != nil {
			return fmt.Errorf("invalid --hasta: %w", err)
		}
	}

	ctx := context.Background()
	if err := client.CrearAusencia(ctx, req); err != nil {
		return err
	}
	fmt.Printf("Solicitud enviada: %s %s a %s\n", req.Tipo, req.FechaInicio, req.FechaFin)
	return nil
}

// CommandBalance prints the leave balances for the current year.
func CommandBalance(client *api.Client) error {
	ctx := context.Background()
	bal, err := client.Balance(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Saldos %d\n", bal.Anio)
	if len(bal.Saldos) == 0 {
		fmt.Println("  (sin saldos)")
		return nil
	}
	for _, s := range bal.Saldos {
		fmt.Printf(
			"- %s: %.1f disponibles (%.1f asignados + %.1f arrastre, %.1f gastados)\n",
			s.Tipo, s.Disponible, s.Asignado, s.Arrastre, s.Gastado,
		)
	}
	return nil
}

// RunCLI parses command-line arguments and executes the appropriate command.
func RunCLI(client *api.Client, loc *time.Location, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no command specified")
	}

	command := args[0]
	remaining := args[1:]

	switch command {
	case "fichar":
		if len(remaining) == 0 {
			return fmt.Errorf("fichar requires entrada or salida")
		}
		switch remaining[0] {
		case "entrada":
			return CommandFichar(client, loc, fichaje.Entrada)
		case "salida":
			return CommandFichar(client, loc, fichaje.Salida)
		default:
			return fmt.Errorf("unknown punch type: %s", remaining[0])
		}

	case "status":
		return CommandStatus(client, loc)

	case "resumen":
		var fromDate, toDate string
		for i := 0; i < len(remaining); i++ {
			switch remaining[i] {
			case "--from":
				if i+1 >= len(remaining) {
					return fmt.Errorf("--from requires a date value")
				}
				fromDate = remaining[i+1]
				i++
			case "--to":
				if i+1 >= len(remaining) {
					return fmt.Errorf("--to requires a date value")
				}
				toDate = remaining[i+1]
				i++
			default:
				return fmt.Errorf("unknown flag: %s", remaining[i])
			}
		}
		return CommandResumen(client, loc, fromDate, toDate)

	case "ausencias":
		var types []string
		for i := 0; i < len(remaining); i++ {
			switch remaining[i] {
			case "--tipo":
				if i+1 >= len(remaining) {
					return fmt.Errorf("--tipo requires a value")
				}
				types = append(types, remaining[i+1])
				i++
			default:
				return fmt.Errorf("unknown flag: %s", remaining[i])
			}
		}
		return CommandAusencias(client, types)

	case "solicitar":
		var req api.AbsenceRequest
		req.Retribuida = true
		for i := 0; i < len(remaining); i++ {
			switch remaining[i] {
			case "--tipo":
				if i+1 >= len(remaining) {
					return fmt.Errorf("--tipo requires a value")
				}
				req.Tipo = remaining[i+1]
				i++
			case "--subtipo":
				if i+1 >= len(remaining) {
					return fmt.Errorf("--subtipo requires a value")
				}
				req.Subtipo = remaining[i+1]
				i++
			case "--from":
				if i+1 >= len(remaining) {
					return fmt.Errorf("--from requires a date value")
				}
				req.FechaInicio = remaining[i+1]
				i++
			case "--to":
				if i+1 >= len(remaining) {
					return fmt.Errorf("--to requires a date value")
				}
				req.FechaFin = remaining[i+1]
				i++
			case "--parcial":
				req.Parcial = true
			case "--desde":
				if i+1 >= len(remaining) {
					return fmt.Errorf("--desde requires a time value")
				}
				req.HoraInicio = remaining[i+1]
				i++
			case "--hasta":
				if i+1 >= len(remaining) {
					return fmt.Errorf("--hasta requires a time value")
				}
				req.HoraFin = remaining[i+1]
				i++
			case "--motivo":
				if i+1 >= len(remaining) {
					return fmt.Errorf("--motivo requires a value")
				}
				req.Motivo = remaining[i+1]
				i++
			default:
				return fmt.Errorf("unknown flag: %s", remaining[i])
			}
		}
		if req.FechaFin == "" {
			req.FechaFin = req.FechaInicio
		}
		return CommandSolicitar(client, req)

	case "balance":
		return CommandBalance(client)

	case "tui":
		return fmt.Errorf("TUI should be called from main")

	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

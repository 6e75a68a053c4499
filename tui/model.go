package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/adrischez00/campel-fichajes/api"
	"github.com/adrischez00/campel-fichajes/calendar"
	"github.com/adrischez00/campel-fichajes/fichaje"
	"github.com/adrischez00/campel-fichajes/tui/components"
)

// ViewMode identifies the active tab.
type ViewMode int

const (
	ViewFichajes ViewMode = iota
	ViewCalendario
)

// Where the month grid content lands on screen: tabs row, blank row, box
// border, then the grid's own header rows. Pointer hit-testing depends on
// the view rendering exactly this.
const (
	calOriginX = 2
	calOriginY = 3 + components.HeaderRows
)

var absenceTypes = []string{"VACACIONES", "ASUNTOS_PROPIOS", "BAJA_MEDICA", "OTROS"}

// absenceForm is the minimal in-TUI request form: pick a type, optionally
// type a motive, confirm. One request is submitted per selected range.
type absenceForm struct {
	tipoIndex int
	motivo    string
}

// Model is the Bubbletea model for the whole TUI.
type Model struct {
	client *api.Client
	loc    *time.Location

	width  int
	height int
	now    time.Time
	view   ViewMode

	// fichajes
	res fichaje.Resumen

	// calendar
	month     time.Time // first day of the visible month, midnight UTC
	layout    components.MonthLayout
	sel       *calendar.Selection
	cursor    time.Time
	lastHover time.Time // last day the pointer entered during a drag

	absByDay    map[string][]calendar.DayEntry
	holByDay    map[string][]calendar.DayEntry
	statTypes   []string // leave types participating in stats; nil = all
	workingDays *int
	wdGen       int
	balance     api.Balance
	chipIndex   int

	form    *absenceForm
	ticking bool

	message      string
	messageError bool
}

// Messages delivered by fetch commands.
type (
	tickMsg        time.Time
	punchesMsg     []fichaje.Punch
	ausenciasMsg   []calendar.DayEntry
	eventsMsg      []calendar.HolidayEvent
	balanceMsg     api.Balance
	ficharDoneMsg  fichaje.Kind
	requestSentMsg int // how many requests went out
	errMsg         struct{ err error }
	workingDaysMsg struct {
		gen int
		n   int
	}
)

// NewModel builds the initial model.
func NewModel(client *api.Client, loc *time.Location) Model {
	now := time.Now()
	today := calendar.AtMidnight(now.In(loc))
	month := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	return Model{
		client:   client,
		loc:      loc,
		now:      now,
		month:    month,
		layout:   components.NewMonthLayout(month, calOriginX, calOriginY),
		sel:      calendar.NewSelection(),
		cursor:   today,
		absByDay: map[string][]calendar.DayEntry{},
		holByDay: map[string][]calendar.DayEntry{},
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.fetchPunches(),
		m.fetchAusencias(),
		m.fetchEvents(),
		m.fetchBalance(),
	)
}

// liveShift reports whether there is an open shift that should tick.
func (m Model) liveShift() bool {
	if m.res.Open == nil {
		return false
	}
	_, live := fichaje.OpenDuration(*m.res.Open, m.now, m.loc)
	return live
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) fetchPunches() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		punches, err := client.Fichajes(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return punchesMsg(punches)
	}
}

func (m Model) fetchAusencias() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		entries, err := client.MisAusencias(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return ausenciasMsg(entries)
	}
}

// fetchEvents covers the visible month plus a week either side so the grid's
// leading and trailing cells are decorated too.
func (m Model) fetchEvents() tea.Cmd {
	client := m.client
	start, end := api.SpanKeys(m.month.AddDate(0, 0, -7), m.month.AddDate(0, 1, 6))
	return func() tea.Msg {
		events, err := client.CalendarEvents(context.Background(), start, end)
		if err != nil {
			return errMsg{err}
		}
		return eventsMsg(events)
	}
}

func (m Model) fetchBalance() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		bal, err := client.Balance(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return balanceMsg(bal)
	}
}

// fetchWorkingDays sums the backend working-day counts over every selected
// range. The generation tag discards responses from a superseded selection.
func (m Model) fetchWorkingDays() tea.Cmd {
	client := m.client
	gen := m.wdGen
	ranges := m.sel.Ranges()
	if len(ranges) == 0 {
		return nil
	}
	return func() tea.Msg {
		total := 0
		for _, r := range ranges {
			start, end := api.RangeKeys(r)
			n, err := client.WorkingDays(context.Background(), start, end)
			if err != nil {
				return errMsg{err}
			}
			total += n
		}
		return workingDaysMsg{gen: gen, n: total}
	}
}

func (m Model) fichar(kind fichaje.Kind) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		if err := client.Fichar(context.Background(), kind); err != nil {
			return errMsg{err}
		}
		return ficharDoneMsg(kind)
	}
}

func (m Model) submitRequests(form absenceForm) tea.Cmd {
	client := m.client
	ranges := m.sel.Ranges()
	return func() tea.Msg {
		for _, r := range ranges {
			start, end := api.RangeKeys(r)
			req := api.AbsenceRequest{
				Tipo:        absenceTypes[form.tipoIndex],
				FechaInicio: start,
				FechaFin:    end,
				Retribuida:  true,
				Motivo:      form.motivo,
			}
			if err := client.CrearAusencia(context.Background(), req); err != nil {
				return errMsg{err}
			}
		}
		return requestSentMsg(len(ranges))
	}
}

// selectionChanged resets the backend-derived counts and refetches them.
func (m *Model) selectionChanged() tea.Cmd {
	m.wdGen++
	m.workingDays = nil
	m.chipIndex = 0
	return m.fetchWorkingDays()
}

func (m *Model) setMonth(month time.Time) tea.Cmd {
	m.month = month
	m.layout = components.NewMonthLayout(month, calOriginX, calOriginY)
	return m.fetchEvents()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout = components.NewMonthLayout(m.month, calOriginX, calOriginY)
		return m, nil

	case tickMsg:
		m.now = time.Time(msg)
		// Keep ticking only while there is a live open shift to animate.
		if m.liveShift() {
			return m, tickCmd()
		}
		m.ticking = false
		return m, nil

	case punchesMsg:
		m.now = time.Now()
		m.res = fichaje.BuildResumen(msg, m.now, m.loc)
		if m.liveShift() && !m.ticking {
			m.ticking = true
			return m, tickCmd()
		}
		return m, nil

	case ausenciasMsg:
		m.absByDay = calendar.ExpandToDays(msg)
		return m, nil

	case eventsMsg:
		m.holByDay = calendar.HolidayIndex(msg)
		return m, nil

	case balanceMsg:
		m.balance = api.Balance(msg)
		return m, nil

	case workingDaysMsg:
		if msg.gen == m.wdGen {
			n := msg.n
			m.workingDays = &n
		}
		return m, nil

	case ficharDoneMsg:
		if fichaje.Kind(msg) == fichaje.Entrada {
			m.setMessage("Entrada registrada", false)
		} else {
			m.setMessage("Salida registrada", false)
		}
		return m, m.fetchPunches()

	case requestSentMsg:
		m.setMessage(fmt.Sprintf("%d solicitud(es) enviadas", int(msg)), false)
		m.sel.Clear()
		m.form = nil
		cmd := m.selectionChanged()
		return m, tea.Batch(m.fetchAusencias(), m.fetchBalance(), cmd)

	case errMsg:
		m.setMessage(msg.err.Error(), true)
		return m, nil

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.view != ViewCalendario || m.form != nil {
		return m, nil
	}

	day, onDay := m.layout.DayAt(msg.X, msg.Y)
	mods := calendar.Modifiers{Shift: msg.Shift, Ctrl: msg.Ctrl}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !onDay {
			return m, nil
		}
		m.sel.Press(day, mods)
		m.lastHover = day
		m.cursor = day
		return m, m.selectionChanged()

	case tea.MouseActionMotion:
		if !m.sel.Dragging() || !onDay || day.Equal(m.lastHover) {
			return m, nil
		}
		m.sel.Enter(day)
		m.lastHover = day
		m.cursor = day
		return m, m.selectionChanged()

	case tea.MouseActionRelease:
		// Every release ends the drag, wherever the pointer is; a release
		// over a day is also the synthesized click.
		m.sel.Release()
		if onDay {
			m.sel.Click(day, mods)
			m.cursor = day
		}
		m.lastHover = time.Time{}
		return m, m.selectionChanged()
	}

	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.form != nil {
		return m.updateForm(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "1":
		m.view = ViewFichajes
		return m, nil
	case "2":
		m.view = ViewCalendario
		return m, nil
	case "tab":
		if m.view == ViewFichajes {
			m.view = ViewCalendario
		} else {
			m.view = ViewFichajes
		}
		return m, nil

	case "r":
		return m, tea.Batch(m.fetchPunches(), m.fetchAusencias(), m.fetchEvents(), m.fetchBalance())

	case "e":
		return m, m.fichar(fichaje.Entrada)
	case "s":
		return m, m.fichar(fichaje.Salida)
	}

	if m.view != ViewCalendario {
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.sel.Clear()
		return m, m.selectionChanged()

	case "left", "right", "up", "down":
		step := map[string]int{"left": -1, "right": 1, "up": -7, "down": 7}[msg.String()]
		m.cursor = m.cursor.AddDate(0, 0, step)
		if m.cursor.Month() != m.month.Month() || m.cursor.Year() != m.month.Year() {
			first := time.Date(m.cursor.Year(), m.cursor.Month(), 1, 0, 0, 0, 0, time.UTC)
			return m, m.setMonth(first)
		}
		return m, nil

	case "enter":
		m.sel.Click(m.cursor, calendar.Modifiers{})
		return m, m.selectionChanged()
	case " ":
		m.sel.Click(m.cursor, calendar.Modifiers{Ctrl: true})
		return m, m.selectionChanged()
	case "V":
		m.sel.Click(m.cursor, calendar.Modifiers{Shift: true})
		return m, m.selectionChanged()

	case "n", "]":
		return m, m.setMonth(m.month.AddDate(0, 1, 0))
	case "p", "[":
		return m, m.setMonth(m.month.AddDate(0, -1, 0))

	case "home":
		m.cursor = time.Date(m.month.Year(), m.month.Month(), 1, 0, 0, 0, 0, time.UTC)
		return m, nil
	case "end":
		m.cursor = time.Date(m.month.Year(), m.month.Month(), 1, 0, 0, 0, 0, time.UTC).
			AddDate(0, 1, -1)
		return m, nil
	case "h":
		// Jump back to today.
		today := calendar.AtMidnight(m.now.In(m.loc))
		m.cursor = today
		if today.Month() != m.month.Month() || today.Year() != m.month.Year() {
			return m, m.setMonth(time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC))
		}
		return m, nil

	case "c":
		if n := len(m.sel.Ranges()); n > 0 {
			m.chipIndex = (m.chipIndex + 1) % n
		}
		return m, nil
	case "backspace", "delete":
		ranges := m.sel.Ranges()
		if m.chipIndex < len(ranges) {
			m.sel.RemoveRange(ranges[m.chipIndex])
			return m, m.selectionChanged()
		}
		return m, nil

	case "t":
		// Cycle the stats type filter: all types, then each one alone.
		switch {
		case m.statTypes == nil:
			m.statTypes = absenceTypes[:1]
		default:
			for i, tipo := range absenceTypes {
				if m.statTypes[0] == tipo {
					if i+1 < len(absenceTypes) {
						m.statTypes = absenceTypes[i+1 : i+2]
					} else {
						m.statTypes = nil
					}
					break
				}
			}
		}
		return m, nil

	case "a":
		if !m.sel.IsEmpty() {
			m.form = &absenceForm{}
		}
		return m, nil
	}

	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	form := m.form
	switch msg.String() {
	case "esc":
		m.form = nil
		return m, nil
	case "up":
		form.tipoIndex = (form.tipoIndex + len(absenceTypes) - 1) % len(absenceTypes)
		return m, nil
	case "down":
		form.tipoIndex = (form.tipoIndex + 1) % len(absenceTypes)
		return m, nil
	case "enter":
		return m, m.submitRequests(*form)
	case "backspace":
		if r := []rune(form.motivo); len(r) > 0 {
			form.motivo = string(r[:len(r)-1])
		}
		return m, nil
	case " ":
		form.motivo += " "
		return m, nil
	}
	if msg.Type == tea.KeyRunes {
		form.motivo += string(msg.Runes)
	}
	return m, nil
}

func (m *Model) setMessage(text string, isError bool) {
	m.message = text
	m.messageError = isError
}

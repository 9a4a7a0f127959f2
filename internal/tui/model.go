// Package tui is the interactive circuit editor: a wire-and-column view of
// the gate sequence, a gate picker, and an experiment panel that fans trials
// out through the trials package and summarizes the measured outcomes.
package tui

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/VidhiDesai2/QuantumTeleportation/internal/circuits"
	"github.com/VidhiDesai2/QuantumTeleportation/internal/sim"
	"github.com/VidhiDesai2/QuantumTeleportation/internal/trials"
)

const (
	maxQubits    = 8
	defaultShots = 1024
)

type focusArea int

const (
	focusCircuit focusArea = iota
	focusMenu
	focusTarget
	focusParam
	focusBit
	focusShots
	focusSeed
)

// runSummary is the reduced view of one finished experiment. state is the
// final state of trial zero, kept so the panel can show amplitudes and
// marginals for one concrete run alongside the aggregate counts.
type runSummary struct {
	id      string
	shots   int
	seed    int64
	bits    []int
	counts  map[string]int
	order   []string
	freqs   map[int]float64
	state   *sim.StateVector
	elapsed time.Duration
}

type resultsMsg struct {
	summary *runSummary
	err     error
}

// Model is the bubbletea model for the editor.
type Model struct {
	circuit *sim.Circuit
	cursor  int // column under the cursor; len(Gates) is the append slot
	qubit   int // wire under the cursor

	focus    focusArea
	menuCat  int
	menuItem int

	// Gate under construction while the picker flow is active.
	pending     sim.Gate
	pendingCond bool
	target      int

	input textinput.Model
	prog  progress.Model

	shots   int
	seed    int64
	running bool

	results *runSummary
	status  string

	log    zerolog.Logger
	width  int
	height int
}

// New builds the editor around an initial circuit. A nil circuit starts a
// fresh two-qubit one.
func New(c *sim.Circuit, shots int, seed int64, logger zerolog.Logger) Model {
	if c == nil {
		c = sim.NewCircuit(2)
	}
	if shots <= 0 {
		shots = defaultShots
	}
	in := textinput.New()
	in.CharLimit = 24
	in.Width = 16
	pr := progress.New(progress.WithDefaultGradient())
	pr.Width = 24
	return Model{
		circuit: c,
		cursor:  len(c.Gates),
		shots:   shots,
		seed:    seed,
		input:   in,
		prog:    pr,
		log:     logger.With().Str("component", "tui").Logger(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case resultsMsg:
		m.running = false
		if msg.err != nil {
			m.status = "run failed: " + msg.err.Error()
			return m, nil
		}
		m.results = msg.summary
		m.status = fmt.Sprintf("ran %d shots in %s", msg.summary.shots, msg.summary.elapsed.Round(time.Millisecond))
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.focus {
	case focusCircuit:
		return m.handleCircuitKey(msg)
	case focusMenu:
		return m.handleMenuKey(msg)
	case focusTarget:
		return m.handleTargetKey(msg)
	default:
		return m.handleInputKey(msg)
	}
}

func (m Model) handleCircuitKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "left", "h":
		if m.cursor > 0 {
			m.cursor--
		}
	case "right", "l":
		if m.cursor < len(m.circuit.Gates) {
			m.cursor++
		}
	case "up", "k":
		if m.qubit > 0 {
			m.qubit--
		}
	case "down", "j":
		if m.qubit < m.circuit.NumQubits-1 {
			m.qubit++
		}
	case "enter", "a":
		m.focus = focusMenu
		m.menuCat, m.menuItem = 0, 0
	case "d", "backspace":
		m.deleteAtCursor()
	case "+":
		if m.circuit.NumQubits < maxQubits {
			m.circuit.NumQubits++
			m.status = fmt.Sprintf("now %d qubits", m.circuit.NumQubits)
		}
	case "-":
		m.removeLastQubit()
	case "c":
		m.circuit = sim.NewCircuit(m.circuit.NumQubits)
		m.cursor, m.qubit = 0, 0
		m.results = nil
		m.status = "cleared"
	case "1":
		m.loadTemplate("bell", circuits.BellPair())
	case "2":
		m.loadTemplate("teleport", circuits.NewTeleportation(math.Pi/3, 0, 0).Circuit)
	case "3":
		m.loadTemplate("repetition", circuits.NewRepetition(math.Pi/3, 0.15).Circuit)
	case "s":
		m.openInput(focusShots, "shots", strconv.Itoa(m.shots))
	case "e":
		m.openInput(focusSeed, "seed", strconv.FormatInt(m.seed, 10))
	case "r":
		if m.running {
			m.status = "already running"
			return m, nil
		}
		m.running = true
		m.status = "running..."
		return m, m.runCmd()
	}
	return m, nil
}

func (m Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.focus = focusCircuit
	case "left", "h":
		if m.menuCat > 0 {
			m.menuCat--
			m.menuItem = 0
		}
	case "right", "l":
		if m.menuCat < len(gateMenu)-1 {
			m.menuCat++
			m.menuItem = 0
		}
	case "up", "k":
		if m.menuItem > 0 {
			m.menuItem--
		}
	case "down", "j":
		if m.menuItem < len(gateMenu[m.menuCat].items)-1 {
			m.menuItem++
		}
	case "enter":
		item := gateMenu[m.menuCat].items[m.menuItem]
		m.pending = sim.Gate{
			Family: item.family,
			Qubits: []int{m.qubit},
			Cbit:   -1,
			Cond:   -1,
		}
		m.pendingCond = item.conditional
		switch {
		case item.family.Arity() == 2:
			if m.circuit.NumQubits < 2 {
				m.status = item.label + " needs a second wire"
				m.focus = focusCircuit
				return m, nil
			}
			m.focus = focusTarget
			m.target = m.otherQubit(m.qubit)
		case item.family.NeedsParam():
			m.openParamInput()
		case item.conditional:
			m.openInput(focusBit, "condition bit", "")
		case item.family == sim.GateMeasure:
			m.pending.Cbit = m.qubit
			m.commitPending()
		default:
			m.commitPending()
		}
	}
	return m, nil
}

func (m Model) handleTargetKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.focus = focusCircuit
	case "up", "k":
		for t := m.target - 1; t >= 0; t-- {
			if t != m.qubit {
				m.target = t
				break
			}
		}
	case "down", "j":
		for t := m.target + 1; t < m.circuit.NumQubits; t++ {
			if t != m.qubit {
				m.target = t
				break
			}
		}
	case "enter":
		m.pending.Qubits = []int{m.qubit, m.target}
		m.commitPending()
	}
	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.focus = focusCircuit
		m.input.Blur()
		return m, nil
	case "enter":
		m.commitInput()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) commitInput() {
	val := m.input.Value()
	switch m.focus {
	case focusParam:
		p, ok := parseAngle(val)
		if !ok {
			m.status = "bad value: " + val
			return
		}
		m.pending.Params = []float64{p}
		if m.pendingCond {
			m.openInput(focusBit, "condition bit", "")
			return
		}
		m.commitPending()
	case focusBit:
		bit, err := strconv.Atoi(val)
		if err != nil || bit < 0 {
			m.status = "bad bit: " + val
			return
		}
		m.pending.Cond = bit
		m.commitPending()
	case focusShots:
		n, err := strconv.Atoi(val)
		if err != nil || n <= 0 {
			m.status = "bad shot count: " + val
			return
		}
		m.shots = n
		m.status = fmt.Sprintf("shots = %d", n)
		m.closeInput()
	case focusSeed:
		n, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			m.status = "bad seed: " + val
			return
		}
		m.seed = n
		m.status = fmt.Sprintf("seed = %d", n)
		m.closeInput()
	}
	m.input.Blur()
}

func (m *Model) openParamInput() {
	prompt := "angle"
	if m.pending.Family.IsNoise() {
		prompt = "probability"
	}
	m.openInput(focusParam, prompt, "")
}

func (m *Model) openInput(f focusArea, placeholder, initial string) {
	m.focus = f
	m.input.Placeholder = placeholder
	m.input.SetValue(initial)
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *Model) closeInput() {
	m.focus = focusCircuit
	m.input.Blur()
}

// commitPending inserts the gate under construction at the cursor column.
func (m *Model) commitPending() {
	gs := m.circuit.Gates
	gs = append(gs, sim.Gate{})
	copy(gs[m.cursor+1:], gs[m.cursor:])
	gs[m.cursor] = m.pending
	m.circuit.Gates = gs
	m.cursor++
	m.focus = focusCircuit
	m.input.Blur()
	m.status = "added " + describeGate(m.pending)
}

func (m *Model) deleteAtCursor() {
	if m.cursor >= len(m.circuit.Gates) {
		return
	}
	g := m.circuit.Gates[m.cursor]
	m.circuit.Gates = append(m.circuit.Gates[:m.cursor], m.circuit.Gates[m.cursor+1:]...)
	m.status = "removed " + describeGate(g)
}

func (m *Model) removeLastQubit() {
	last := m.circuit.NumQubits - 1
	if last < 1 {
		return
	}
	for _, g := range m.circuit.Gates {
		for _, q := range g.Qubits {
			if q == last {
				m.status = fmt.Sprintf("q%d still has gates", last)
				return
			}
		}
	}
	m.circuit.NumQubits = last
	if m.qubit >= last {
		m.qubit = last - 1
	}
	m.status = fmt.Sprintf("now %d qubits", last)
}

func (m *Model) loadTemplate(name string, c *sim.Circuit) {
	m.circuit = c
	m.cursor = len(c.Gates)
	m.qubit = 0
	m.results = nil
	m.status = "loaded " + name
}

// otherQubit returns any wire other than q, for seeding target selection.
func (m *Model) otherQubit(q int) int {
	if q == 0 {
		return 1
	}
	return 0
}

// measuredBits lists the classical destination bits of the circuit in order.
func measuredBits(c *sim.Circuit) []int {
	seen := make(map[int]bool)
	var bits []int
	for _, g := range c.Gates {
		if g.Family == sim.GateMeasure && !seen[g.Cbit] {
			seen[g.Cbit] = true
			bits = append(bits, g.Cbit)
		}
	}
	sort.Ints(bits)
	return bits
}

// runCmd snapshots the circuit and runs the experiment off the update loop.
func (m *Model) runCmd() tea.Cmd {
	snapshot := sim.NewCircuit(m.circuit.NumQubits)
	snapshot.Gates = append(snapshot.Gates, m.circuit.Gates...)
	shots, seed, log := m.shots, m.seed, m.log

	return func() tea.Msg {
		start := time.Now()
		exp := trials.New(snapshot, shots, seed, log)
		results, err := exp.Run()
		if err != nil {
			return resultsMsg{err: err}
		}

		bits := measuredBits(snapshot)
		counts := trials.OutcomeCounts(results, bits)
		freqs := make(map[int]float64, len(bits))
		for _, b := range bits {
			freqs[b] = trials.BitFrequency(results, b)
		}
		var state *sim.StateVector
		if len(results) > 0 {
			state = results[0].State
		}
		return resultsMsg{summary: &runSummary{
			id:      exp.ID.String(),
			shots:   shots,
			seed:    seed,
			bits:    bits,
			counts:  counts,
			order:   trials.Outcomes(counts),
			freqs:   freqs,
			state:   state,
			elapsed: time.Since(start),
		}}
	}
}

func describeGate(g sim.Gate) string {
	s := g.Family.String()
	for _, q := range g.Qubits {
		s += fmt.Sprintf(" q%d", q)
	}
	if len(g.Params) > 0 {
		s += "(" + formatAngle(g.Params[0]) + ")"
	}
	if g.Family == sim.GateMeasure {
		s += fmt.Sprintf(" -> c%d", g.Cbit)
	}
	if g.Conditional() {
		s += fmt.Sprintf(" if c%d", g.Cond)
	}
	return s
}

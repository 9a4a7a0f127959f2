package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/VidhiDesai2/QuantumTeleportation/internal/sim"
)

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Quantum Teleportation Lab"))
	b.WriteString("\n\n")
	b.WriteString(circuitStyle.Render(m.renderCircuit()))
	b.WriteString("\n")

	if m.focus == focusMenu {
		b.WriteString(menuBorderStyle.Render(m.renderMenu()))
		b.WriteString("\n")
	}
	if m.isInputFocus() {
		b.WriteString(controlsStyle.Render(m.input.Placeholder + ": " + m.input.View()))
		b.WriteString("\n")
	}

	b.WriteString(resultsStyle.Render(m.renderResults()))
	b.WriteString("\n")
	b.WriteString(controlsStyle.Render(m.renderControls()))
	if m.status != "" {
		b.WriteString("\n" + accentStyle.Render(m.status))
	}
	return b.String()
}

func (m Model) isInputFocus() bool {
	switch m.focus {
	case focusParam, focusBit, focusShots, focusSeed:
		return true
	}
	return false
}

// renderCircuit draws one column per gate plus a trailing append column.
// Each qubit wire is three text rows so gate boxes and vertical connectors
// have room; a doubled classical wire runs underneath.
func (m Model) renderCircuit() string {
	nq := m.circuit.NumQubits
	cols := make([]columnCells, 0, len(m.circuit.Gates)+1)
	for _, g := range m.circuit.Gates {
		cols = append(cols, gateColumn(g, nq))
	}
	cols = append(cols, emptyColumn(nq))

	rows := make([]string, 0, 3*nq+2)
	for q := 0; q < nq; q++ {
		for line := 0; line < 3; line++ {
			var sb strings.Builder
			label := strings.Repeat(" ", labelW)
			if line == 1 {
				tag := fmt.Sprintf("q%d:", q)
				if q == m.qubit && m.focus == focusCircuit {
					tag = "q" + fmt.Sprint(q) + "◂"
					sb.WriteString(cursorStyle.Render(fmt.Sprintf("%-*s", labelW, tag)))
				} else if m.focus == focusTarget && (q == m.target || q == m.qubit) {
					sb.WriteString(targetSelectStyle.Render(fmt.Sprintf("%-*s", labelW, tag)))
				} else {
					sb.WriteString(wireLabelStyle.Render(fmt.Sprintf("%-*s", labelW, tag)))
				}
			} else {
				sb.WriteString(label)
			}
			for ci, col := range cols {
				cell := col.cells[q][line]
				sb.WriteString(m.styleCell(cell, ci, col.noise))
			}
			rows = append(rows, sb.String())
		}
	}

	var cw strings.Builder
	cw.WriteString(wireLabelStyle.Render(fmt.Sprintf("%-*s", labelW, "c:")))
	for ci, col := range cols {
		if ci == m.cursor {
			cw.WriteString(cursorStyle.Render(col.cwire))
		} else {
			cw.WriteString(cbitWireStyle.Render(col.cwire))
		}
	}
	rows = append(rows, "", cw.String())
	return strings.Join(rows, "\n")
}

func (m Model) styleCell(cell string, col int, noise bool) string {
	switch {
	case col == m.cursor:
		return cursorStyle.Render(cell)
	case noise:
		return noiseStyle.Render(cell)
	default:
		return gateStyle.Render(cell)
	}
}

// columnCells is one rendered circuit column: three lines per qubit plus the
// classical-wire line.
type columnCells struct {
	cells [][3]string
	cwire string
	noise bool
}

func emptyColumn(nq int) columnCells {
	blank := strings.Repeat(" ", cellW)
	wire := strings.Repeat("─", cellW)
	col := columnCells{cells: make([][3]string, nq), cwire: strings.Repeat("═", cellW)}
	for q := range col.cells {
		col.cells[q] = [3]string{blank, wire, blank}
	}
	return col
}

func gateColumn(g sim.Gate, nq int) columnCells {
	col := emptyColumn(nq)
	col.noise = g.Family.IsNoise()

	switch g.Family {
	case sim.GateCNOT:
		ctl, tgt := g.Qubits[0], g.Qubits[1]
		col.cells[ctl][1] = wireWith("●")
		col.cells[tgt][1] = wireWith("⊕")
		connectQubits(&col, ctl, tgt)
	case sim.GateCZ:
		a, b := g.Qubits[0], g.Qubits[1]
		col.cells[a][1] = wireWith("●")
		col.cells[b][1] = wireWith("●")
		connectQubits(&col, a, b)
	case sim.GateSWAP:
		a, b := g.Qubits[0], g.Qubits[1]
		col.cells[a][1] = wireWith("╳")
		col.cells[b][1] = wireWith("╳")
		connectQubits(&col, a, b)
	case sim.GateMeasure:
		q := g.Qubits[0]
		drawBox(&col, q, "M")
		connectClassical(&col, q, nq)
		col.cwire = doubleWireWith("╩")
	default:
		q := g.Qubits[0]
		drawBox(&col, q, boxName(g))
		if g.Conditional() {
			connectClassical(&col, q, nq)
			col.cwire = doubleWireWith("●")
		}
	}
	return col
}

func boxName(g sim.Gate) string {
	switch g.Family {
	case sim.GateDepolarize:
		return "DEP"
	case sim.GateBitFlip:
		return "BF"
	case sim.GatePhaseFlip:
		return "PF"
	case sim.GateSdg:
		return "S†"
	case sim.GateTdg:
		return "T†"
	default:
		return g.Family.String()
	}
}

// drawBox places a named gate box on qubit q's three rows.
func drawBox(col *columnCells, q int, name string) {
	if len([]rune(name)) > gateNameW {
		name = string([]rune(name)[:gateNameW])
	}
	pad := gateNameW - len([]rune(name))
	left := pad / 2
	inner := strings.Repeat(" ", left) + name + strings.Repeat(" ", pad-left)
	col.cells[q][0] = "  ┌───┐  "
	col.cells[q][1] = "──┤" + inner + "├──"
	col.cells[q][2] = "  └───┘  "
}

// connectQubits draws the single vertical between the two wires of a
// two-qubit gate.
func connectQubits(col *columnCells, a, b int) {
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	col.cells[lo][2] = centerMark(col.cells[lo][2], "│")
	col.cells[hi][0] = centerMark(col.cells[hi][0], "│")
	for q := lo + 1; q < hi; q++ {
		col.cells[q][0] = centerMark(col.cells[q][0], "│")
		col.cells[q][1] = centerMark(col.cells[q][1], "┼")
		col.cells[q][2] = centerMark(col.cells[q][2], "│")
	}
}

// connectClassical draws the doubled vertical from qubit q down to the
// classical wire.
func connectClassical(col *columnCells, q, nq int) {
	col.cells[q][2] = centerMark(col.cells[q][2], "║")
	for r := q + 1; r < nq; r++ {
		col.cells[r][0] = centerMark(col.cells[r][0], "║")
		col.cells[r][1] = centerMark(col.cells[r][1], "╫")
		col.cells[r][2] = centerMark(col.cells[r][2], "║")
	}
}

func wireWith(mark string) string {
	return centerMark(strings.Repeat("─", cellW), mark)
}

func doubleWireWith(mark string) string {
	return centerMark(strings.Repeat("═", cellW), mark)
}

// centerMark overwrites the center rune of a cell line.
func centerMark(s, mark string) string {
	runes := []rune(s)
	runes[len(runes)/2] = []rune(mark)[0]
	return string(runes)
}

func (m Model) renderMenu() string {
	var tabs []string
	for i, cat := range gateMenu {
		if i == m.menuCat {
			tabs = append(tabs, menuSelectedStyle.Render("["+cat.name+"]"))
		} else {
			tabs = append(tabs, menuNormalStyle.Render(" "+cat.name+" "))
		}
	}
	lines := []string{strings.Join(tabs, " ")}
	for i, item := range gateMenu[m.menuCat].items {
		if i == m.menuItem {
			lines = append(lines, menuSelectedStyle.Render("▸ "+item.label))
		} else {
			lines = append(lines, menuNormalStyle.Render("  "+item.label))
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderResults() string {
	if m.running {
		return accentStyle.Render("running...")
	}
	if m.results == nil {
		return dimStyle.Render("no results yet — press r to run")
	}
	r := m.results

	var lines []string
	lines = append(lines, titleStyle.Render(
		fmt.Sprintf("%d shots, seed %d (%s)", r.shots, r.seed, r.elapsed.Round(time.Millisecond))))
	lines = append(lines, dimStyle.Render("experiment "+r.id))

	if r.state != nil {
		lines = append(lines, "", wireLabelStyle.Render("final state, trial 0"))
		for q, p := range r.state.QubitProbabilities() {
			lines = append(lines, fmt.Sprintf("q%d P(1) %s %.3f", q, m.prog.ViewAs(p.Prob1), p.Prob1))
		}
		lines = append(lines, renderAmplitudes(r.state)...)
	}

	if len(r.bits) == 0 {
		lines = append(lines, "", dimStyle.Render("circuit has no measurements"))
		return strings.Join(lines, "\n")
	}

	lines = append(lines, "", wireLabelStyle.Render("measured bits, all trials"))
	for _, b := range r.bits {
		f := r.freqs[b]
		lines = append(lines, fmt.Sprintf("c%d P(1) %s %.3f", b, m.prog.ViewAs(f), f))
	}

	lines = append(lines, "", wireLabelStyle.Render("outcomes ("+bitsHeader(r.bits)+")"))
	shown := r.order
	if len(shown) > 8 {
		shown = shown[:8]
	}
	for _, k := range shown {
		n := r.counts[k]
		lines = append(lines, fmt.Sprintf("  %s  %5d  %5.1f%%", k, n, 100*float64(n)/float64(r.shots)))
	}
	return strings.Join(lines, "\n")
}

// renderAmplitudes lists the nonzero basis amplitudes, largest first, capped
// so deep superpositions stay readable.
func renderAmplitudes(s *sim.StateVector) []string {
	type entry struct {
		index int
		p     float64
	}
	var entries []entry
	for i, a := range s.Amplitudes {
		p := real(a)*real(a) + imag(a)*imag(a)
		if p > 1e-9 {
			entries = append(entries, entry{i, p})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].p > entries[j].p })
	if len(entries) > 6 {
		entries = entries[:6]
	}
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		a := s.Amplitudes[e.index]
		lines = append(lines, fmt.Sprintf("  |%0*b⟩  %+.3f%+.3fi  (%.3f)",
			s.NumQubits, e.index, real(a), imag(a), e.p))
	}
	return lines
}

func bitsHeader(bits []int) string {
	parts := make([]string, len(bits))
	for i, b := range bits {
		parts[i] = fmt.Sprintf("c%d", b)
	}
	return strings.Join(parts, " ")
}

func (m Model) renderControls() string {
	var help string
	switch m.focus {
	case focusMenu:
		help = "←/→ category · ↑/↓ gate · enter pick · esc cancel"
	case focusTarget:
		help = "↑/↓ target wire · enter place · esc cancel"
	case focusParam, focusBit, focusShots, focusSeed:
		help = "enter confirm · esc cancel"
	default:
		help = "←/→ column · ↑/↓ wire · a add · d delete · +/- qubits · " +
			"1 bell 2 teleport 3 repetition · s shots · e seed · r run · q quit"
	}
	line := dimStyle.Render(help)
	if m.focus == focusCircuit && m.cursor < len(m.circuit.Gates) {
		line += "\n" + gateStyle.Render("▪ "+describeGate(m.circuit.Gates[m.cursor]))
	}
	return line
}

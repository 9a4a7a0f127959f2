package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/VidhiDesai2/QuantumTeleportation/internal/circuits"
	"github.com/VidhiDesai2/QuantumTeleportation/internal/sim"
	"github.com/VidhiDesai2/QuantumTeleportation/internal/trials"
	"github.com/VidhiDesai2/QuantumTeleportation/internal/tui"
)

func main() {
	var (
		template = flag.String("template", "teleport", "circuit to load: teleport, bell, repetition, or none")
		theta    = flag.Float64("theta", 1.0471975511965976, "message RX angle for the teleport template")
		phi      = flag.Float64("phi", 0, "message RZ angle for the teleport template")
		noise    = flag.Float64("noise", 0, "depolarizing (teleport) or bit-flip (repetition) probability")
		shots    = flag.Int("shots", 1024, "trials per run")
		seed     = flag.Int64("seed", time.Now().UnixNano(), "base random seed")
		headless = flag.Bool("headless", false, "run once and print a summary instead of the editor")
		logPath  = flag.String("log", "", "append structured logs to this file (editor mode)")
	)
	flag.Parse()

	circuit, err := buildTemplate(*template, *theta, *phi, *noise)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if *headless {
		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
			With().Timestamp().Logger()
		if err := runHeadless(circuit, *shots, *seed, logger); err != nil {
			logger.Error().Err(err).Msg("run failed")
			os.Exit(1)
		}
		return
	}

	logger := zerolog.Nop()
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		defer f.Close()
		logger = zerolog.New(f).With().Timestamp().Logger()
	}

	m := tui.New(circuit, *shots, *seed, logger)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildTemplate(name string, theta, phi, noise float64) (*sim.Circuit, error) {
	switch name {
	case "teleport":
		return circuits.NewTeleportation(theta, phi, noise).Circuit, nil
	case "bell":
		return circuits.BellPair(), nil
	case "repetition":
		return circuits.NewRepetition(theta, noise).Circuit, nil
	case "none", "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown template %q", name)
	}
}

func runHeadless(c *sim.Circuit, shots int, seed int64, logger zerolog.Logger) error {
	if c == nil {
		return fmt.Errorf("headless mode needs a template")
	}
	exp := trials.New(c, shots, seed, logger)
	results, err := exp.Run()
	if err != nil {
		return err
	}

	bits := make([]int, 0)
	seen := make(map[int]bool)
	for _, g := range c.Gates {
		if g.Family == sim.GateMeasure && !seen[g.Cbit] {
			seen[g.Cbit] = true
			bits = append(bits, g.Cbit)
		}
	}

	counts := trials.OutcomeCounts(results, bits)
	for _, outcome := range trials.Outcomes(counts) {
		logger.Info().
			Str("outcome", outcome).
			Int("count", counts[outcome]).
			Float64("fraction", float64(counts[outcome])/float64(shots)).
			Msg("outcome")
	}
	for _, b := range bits {
		logger.Info().
			Int("bit", b).
			Float64("p1", trials.BitFrequency(results, b)).
			Msg("bit frequency")
	}
	return nil
}

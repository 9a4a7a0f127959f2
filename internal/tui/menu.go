package tui

import "github.com/VidhiDesai2/QuantumTeleportation/internal/sim"

// menuItem is one selectable gate in the picker. Conditional items build the
// same family but gated on a classical bit the user supplies.
type menuItem struct {
	label       string
	family      sim.Family
	conditional bool
}

type menuCategory struct {
	name  string
	items []menuItem
}

var gateMenu = []menuCategory{
	{
		name: "Single Qubit",
		items: []menuItem{
			{label: "H", family: sim.GateH},
			{label: "X", family: sim.GateX},
			{label: "Y", family: sim.GateY},
			{label: "Z", family: sim.GateZ},
			{label: "S", family: sim.GateS},
			{label: "S†", family: sim.GateSdg},
			{label: "T", family: sim.GateT},
			{label: "T†", family: sim.GateTdg},
		},
	},
	{
		name: "Rotation",
		items: []menuItem{
			{label: "RX", family: sim.GateRX},
			{label: "RY", family: sim.GateRY},
			{label: "RZ", family: sim.GateRZ},
		},
	},
	{
		name: "Two Qubit",
		items: []menuItem{
			{label: "CNOT", family: sim.GateCNOT},
			{label: "CZ", family: sim.GateCZ},
			{label: "SWAP", family: sim.GateSWAP},
		},
	},
	{
		name: "Measure",
		items: []menuItem{
			{label: "Measure", family: sim.GateMeasure},
		},
	},
	{
		name: "Conditional",
		items: []menuItem{
			{label: "X if bit", family: sim.GateX, conditional: true},
			{label: "Z if bit", family: sim.GateZ, conditional: true},
		},
	},
	{
		name: "Noise",
		items: []menuItem{
			{label: "Depolarize", family: sim.GateDepolarize},
			{label: "Bit flip", family: sim.GateBitFlip},
			{label: "Phase flip", family: sim.GatePhaseFlip},
		},
	},
}

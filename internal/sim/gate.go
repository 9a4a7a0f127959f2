package sim

// Family identifies a gate operation. The set is closed: every family has a
// fixed arity and parameter requirement, recorded in familyTable and checked
// once before execution.
type Family int

const (
	GateH Family = iota
	GateX
	GateY
	GateZ
	GateS
	GateSdg
	GateT
	GateTdg
	GateRX
	GateRY
	GateRZ
	GateCNOT
	GateCZ
	GateSWAP
	GateMeasure
	GateDepolarize
	GateBitFlip
	GatePhaseFlip
)

// familySpec fixes the static shape of a gate family.
type familySpec struct {
	name       string
	arity      int
	needsParam bool
	noise      bool
}

var familyTable = [...]familySpec{
	GateH:          {name: "H", arity: 1},
	GateX:          {name: "X", arity: 1},
	GateY:          {name: "Y", arity: 1},
	GateZ:          {name: "Z", arity: 1},
	GateS:          {name: "S", arity: 1},
	GateSdg:        {name: "SDG", arity: 1},
	GateT:          {name: "T", arity: 1},
	GateTdg:        {name: "TDG", arity: 1},
	GateRX:         {name: "RX", arity: 1, needsParam: true},
	GateRY:         {name: "RY", arity: 1, needsParam: true},
	GateRZ:         {name: "RZ", arity: 1, needsParam: true},
	GateCNOT:       {name: "CX", arity: 2},
	GateCZ:         {name: "CZ", arity: 2},
	GateSWAP:       {name: "SWAP", arity: 2},
	GateMeasure:    {name: "MEASURE", arity: 1},
	GateDepolarize: {name: "DEPOL", arity: 1, needsParam: true, noise: true},
	GateBitFlip:    {name: "BITFLIP", arity: 1, needsParam: true, noise: true},
	GatePhaseFlip:  {name: "PHASEFLIP", arity: 1, needsParam: true, noise: true},
}

func (f Family) known() bool {
	return f >= 0 && int(f) < len(familyTable)
}

func (f Family) String() string {
	if !f.known() {
		return "UNKNOWN"
	}
	return familyTable[f].name
}

// Arity returns the number of qubits the family operates on.
func (f Family) Arity() int {
	if !f.known() {
		return 0
	}
	return familyTable[f].arity
}

// NeedsParam reports whether the family requires a numeric parameter
// (rotation angle or noise probability).
func (f Family) NeedsParam() bool {
	return f.known() && familyTable[f].needsParam
}

// IsNoise reports whether the family is a stochastic noise channel rather
// than a unitary or measurement.
func (f Family) IsNoise() bool {
	return f.known() && familyTable[f].noise
}

// Gate is an immutable description of one circuit operation. Absent optional
// fields use the -1 sentinel.
type Gate struct {
	Family Family
	Qubits []int
	Params []float64 // rotation angle or noise probability; nil when absent
	Cbit   int       // classical destination bit for MEASURE, -1 otherwise
	Cond   int       // classical condition bit; gate runs only if that bit holds 1
}

// Conditional reports whether the gate carries a classical-control guard.
func (g Gate) Conditional() bool {
	return g.Cond >= 0
}

func (g Gate) param() float64 {
	if len(g.Params) > 0 {
		return g.Params[0]
	}
	return 0
}

package sim

// Circuit holds a declared qubit count and an ordered gate sequence. Order
// is execution order; the Runner never reorders. A Circuit is plain data
// and must not be mutated once handed to a Runner.
type Circuit struct {
	NumQubits int
	Gates     []Gate
}

// NewCircuit creates an empty circuit over numQubits qubits.
func NewCircuit(numQubits int) *Circuit {
	return &Circuit{NumQubits: numQubits}
}

// Append adds a fully-formed gate to the end of the circuit.
func (c *Circuit) Append(g Gate) {
	c.Gates = append(c.Gates, g)
}

func (c *Circuit) add(f Family, qubits []int, params []float64, cbit, cond int) {
	c.Gates = append(c.Gates, Gate{
		Family: f,
		Qubits: qubits,
		Params: params,
		Cbit:   cbit,
		Cond:   cond,
	})
}

// AddGate appends an unparameterized single-qubit gate.
func (c *Circuit) AddGate(f Family, target int) {
	c.add(f, []int{target}, nil, -1, -1)
}

func (c *Circuit) AddH(target int) { c.AddGate(GateH, target) }
func (c *Circuit) AddX(target int) { c.AddGate(GateX, target) }
func (c *Circuit) AddY(target int) { c.AddGate(GateY, target) }
func (c *Circuit) AddZ(target int) { c.AddGate(GateZ, target) }

// AddRotation appends a parameterized rotation gate.
func (c *Circuit) AddRotation(f Family, target int, theta float64) {
	c.add(f, []int{target}, []float64{theta}, -1, -1)
}

func (c *Circuit) AddRX(target int, theta float64) { c.AddRotation(GateRX, target, theta) }
func (c *Circuit) AddRY(target int, theta float64) { c.AddRotation(GateRY, target, theta) }
func (c *Circuit) AddRZ(target int, theta float64) { c.AddRotation(GateRZ, target, theta) }

// AddCNOT appends a controlled-NOT with the given control and target.
func (c *Circuit) AddCNOT(control, target int) {
	c.add(GateCNOT, []int{control, target}, nil, -1, -1)
}

// AddCZ appends a controlled-Z gate.
func (c *Circuit) AddCZ(control, target int) {
	c.add(GateCZ, []int{control, target}, nil, -1, -1)
}

// AddSWAP appends a SWAP of two qubits.
func (c *Circuit) AddSWAP(a, b int) {
	c.add(GateSWAP, []int{a, b}, nil, -1, -1)
}

// AddMeasure appends a measurement of qubit into classical bit cbit.
func (c *Circuit) AddMeasure(qubit, cbit int) {
	c.add(GateMeasure, []int{qubit}, nil, cbit, -1)
}

// AddNoise appends a stochastic noise channel on qubit with the given
// probability parameter.
func (c *Circuit) AddNoise(f Family, qubit int, prob float64) {
	c.add(f, []int{qubit}, []float64{prob}, -1, -1)
}

func (c *Circuit) AddDepolarize(qubit int, prob float64) { c.AddNoise(GateDepolarize, qubit, prob) }
func (c *Circuit) AddBitFlip(qubit int, prob float64)    { c.AddNoise(GateBitFlip, qubit, prob) }
func (c *Circuit) AddPhaseFlip(qubit int, prob float64)  { c.AddNoise(GatePhaseFlip, qubit, prob) }

// AddConditional appends a single-qubit gate guarded on classical bit cond:
// it executes only if that bit was previously measured as 1.
func (c *Circuit) AddConditional(f Family, target, cond int) {
	c.add(f, []int{target}, nil, -1, cond)
}

// AddConditionalRotation is AddConditional for parameterized rotations.
func (c *Circuit) AddConditionalRotation(f Family, target int, theta float64, cond int) {
	c.add(f, []int{target}, []float64{theta}, -1, cond)
}

// Package circuits builds canned gate sequences on top of the simulation
// kernel: entangled pairs, teleportation, and a bit-flip repetition code
// cycle. Builders append to the circuit they are given and return it for
// chaining; wire indices come from an explicit Allocator.
package circuits

import (
	"github.com/VidhiDesai2/QuantumTeleportation/internal/sim"
)

// AppendBellPair entangles qubits a and b into the |Φ+> state.
func AppendBellPair(c *sim.Circuit, a, b int) *sim.Circuit {
	c.AddH(a)
	c.AddCNOT(a, b)
	return c
}

// BellPair returns a fresh two-qubit circuit preparing |Φ+> and measuring
// both halves.
func BellPair() *sim.Circuit {
	var alloc Allocator
	a, b := alloc.Qubit(), alloc.Qubit()
	c := sim.NewCircuit(alloc.NumQubits())
	AppendBellPair(c, a, b)
	c.AddMeasure(a, alloc.Bit())
	c.AddMeasure(b, alloc.Bit())
	return c
}

// AppendMessageState prepares RX(theta) then RZ(phi) on qubit q, the
// single-qubit state the teleportation demo carries.
func AppendMessageState(c *sim.Circuit, q int, theta, phi float64) *sim.Circuit {
	c.AddRX(q, theta)
	if phi != 0 {
		c.AddRZ(q, phi)
	}
	return c
}

// Teleportation describes the wiring of a built teleportation circuit.
type Teleportation struct {
	Circuit *sim.Circuit
	Message int // qubit carrying the state to teleport
	Alice   int // Alice's half of the entangled pair
	Bob     int // Bob's half; holds the message state after corrections
	MBits   [2]int // classical bits: Bell measurement of Message, Alice
}

// NewTeleportation builds the full protocol: message preparation,
// entanglement, optional depolarizing noise on Bob's half of the channel,
// Bell measurement, and classically-conditioned X/Z corrections.
func NewTeleportation(theta, phi, noiseProb float64) Teleportation {
	var alloc Allocator
	tp := Teleportation{
		Message: alloc.Qubit(),
		Alice:   alloc.Qubit(),
		Bob:     alloc.Qubit(),
	}
	tp.MBits = [2]int{alloc.Bit(), alloc.Bit()}

	c := sim.NewCircuit(alloc.NumQubits())
	AppendMessageState(c, tp.Message, theta, phi)
	AppendBellPair(c, tp.Alice, tp.Bob)
	if noiseProb > 0 {
		c.AddDepolarize(tp.Bob, noiseProb)
	}

	// Bell measurement of the message against Alice's half.
	c.AddCNOT(tp.Message, tp.Alice)
	c.AddH(tp.Message)
	c.AddMeasure(tp.Message, tp.MBits[0])
	c.AddMeasure(tp.Alice, tp.MBits[1])

	// Bob's corrections, keyed on the transmitted classical bits.
	c.AddConditional(sim.GateX, tp.Bob, tp.MBits[1])
	c.AddConditional(sim.GateZ, tp.Bob, tp.MBits[0])

	tp.Circuit = c
	return tp
}

// Repetition describes a three-qubit bit-flip code cycle.
type Repetition struct {
	Circuit  *sim.Circuit
	Data     [3]int
	Ancilla  [2]int
	Syndrome [2]int // classical bits holding the measured syndromes
	Out      [3]int // classical bits holding the final data readout
}

// AppendEncode spreads the state of data[0] over all three data qubits.
func AppendEncode(c *sim.Circuit, data [3]int) *sim.Circuit {
	c.AddCNOT(data[0], data[1])
	c.AddCNOT(data[0], data[2])
	return c
}

// AppendSyndrome extracts the two parity syndromes onto fresh ancillas and
// measures them: bits[0] reads data0⊕data1, bits[1] reads data1⊕data2.
func AppendSyndrome(c *sim.Circuit, data [3]int, anc [2]int, bits [2]int) *sim.Circuit {
	c.AddCNOT(data[0], anc[0])
	c.AddCNOT(data[1], anc[0])
	c.AddCNOT(data[1], anc[1])
	c.AddCNOT(data[2], anc[1])
	c.AddMeasure(anc[0], bits[0])
	c.AddMeasure(anc[1], bits[1])
	return c
}

// AppendCorrections applies syndrome-conditioned recovery. Single-bit
// conditions recover a flip on either edge qubit; a flip on the middle
// qubit raises both syndromes and is outside what this cycle can repair.
func AppendCorrections(c *sim.Circuit, data [3]int, bits [2]int) *sim.Circuit {
	c.AddConditional(sim.GateX, data[0], bits[0])
	c.AddConditional(sim.GateX, data[2], bits[1])
	return c
}

// NewRepetition builds one code cycle: prepare RX(prepTheta) on the logical
// qubit, encode, subject each data qubit to bit-flip noise of strength
// flipProb, extract and measure syndromes, correct, and read out the data
// qubits.
func NewRepetition(prepTheta, flipProb float64) Repetition {
	var alloc Allocator
	rep := Repetition{}
	copy(rep.Data[:], alloc.Qubits(3))
	copy(rep.Ancilla[:], alloc.Qubits(2))
	rep.Syndrome = [2]int{alloc.Bit(), alloc.Bit()}
	rep.Out = [3]int{alloc.Bit(), alloc.Bit(), alloc.Bit()}

	c := sim.NewCircuit(alloc.NumQubits())
	if prepTheta != 0 {
		c.AddRX(rep.Data[0], prepTheta)
	}
	AppendEncode(c, rep.Data)
	if flipProb > 0 {
		for _, q := range rep.Data {
			c.AddBitFlip(q, flipProb)
		}
	}
	AppendSyndrome(c, rep.Data, rep.Ancilla, rep.Syndrome)
	AppendCorrections(c, rep.Data, rep.Syndrome)
	for i, q := range rep.Data {
		c.AddMeasure(q, rep.Out[i])
	}

	rep.Circuit = c
	return rep
}

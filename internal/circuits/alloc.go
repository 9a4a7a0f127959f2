package circuits

// Allocator hands out fresh qubit and classical-bit indices so that
// independently built sub-circuits can never alias each other's wires.
// Collisions then show up as validation failures instead of silent overlap.
type Allocator struct {
	qubits int
	bits   int
}

// Qubit allocates the next unused qubit index.
func (a *Allocator) Qubit() int {
	q := a.qubits
	a.qubits++
	return q
}

// Qubits allocates n consecutive fresh qubit indices.
func (a *Allocator) Qubits(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = a.Qubit()
	}
	return out
}

// Bit allocates the next unused classical-bit index.
func (a *Allocator) Bit() int {
	b := a.bits
	a.bits++
	return b
}

// NumQubits returns how many qubits have been allocated.
func (a *Allocator) NumQubits() int { return a.qubits }

// NumBits returns how many classical bits have been allocated.
func (a *Allocator) NumBits() int { return a.bits }

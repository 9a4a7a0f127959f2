package sim

// ClassicalRegister is a sparse store of measurement outcomes. Bits are
// allocated on first write and only measurement writes them; conditional
// gates read them. A register lives for exactly one run.
type ClassicalRegister struct {
	bits map[int]int
}

// NewClassicalRegister returns an empty register.
func NewClassicalRegister() *ClassicalRegister {
	return &ClassicalRegister{bits: make(map[int]int)}
}

// Set records outcome (0 or 1) for the given bit index.
func (r *ClassicalRegister) Set(bit, outcome int) {
	r.bits[bit] = outcome
}

// Get returns the recorded outcome for bit and whether it was ever written.
func (r *ClassicalRegister) Get(bit int) (int, bool) {
	v, ok := r.bits[bit]
	return v, ok
}

// Len returns the number of bits written so far.
func (r *ClassicalRegister) Len() int {
	return len(r.bits)
}

// Bits returns a copy of the written bits keyed by index.
func (r *ClassicalRegister) Bits() map[int]int {
	out := make(map[int]int, len(r.bits))
	for k, v := range r.bits {
		out[k] = v
	}
	return out
}

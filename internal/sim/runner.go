package sim

// Runner executes circuits. It owns exactly one StateVector and one
// ClassicalRegister per invocation and hands both to the caller when done;
// a Runner value itself holds no mutable state and may be shared across
// concurrent Run calls.
type Runner struct {
	noise NoiseModel
}

// NewRunner returns a ready Runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Run validates the circuit, executes it from the ground state with a
// source seeded by seed, and returns the final state and register.
func (r *Runner) Run(c *Circuit, seed int64) (*StateVector, *ClassicalRegister, error) {
	if err := validate(c); err != nil {
		return nil, nil, err
	}
	return r.execute(c, NewStateVector(c.NumQubits), NewRandomSource(seed))
}

// RunFrom is Run starting from a caller-supplied initial amplitude vector.
// The vector must describe exactly c.NumQubits qubits and be unit-normalized
// within tolerance; otherwise it is rejected before any execution and the
// circuit is left untouched.
func (r *Runner) RunFrom(c *Circuit, initial []complex128, seed int64) (*StateVector, *ClassicalRegister, error) {
	if err := validate(c); err != nil {
		return nil, nil, err
	}
	state, err := NewStateVectorFrom(initial)
	if err != nil {
		return nil, nil, err
	}
	if state.NumQubits != c.NumQubits {
		return nil, nil, validationf("initial state has %d qubits, circuit declares %d",
			state.NumQubits, c.NumQubits)
	}
	return r.execute(c, state, NewRandomSource(seed))
}

// execute walks the gate sequence strictly in order. A gate whose classical
// condition bit is unwritten or 0 is skipped with no side effect of any
// kind. Any error aborts the run; partial state is never returned.
func (r *Runner) execute(c *Circuit, state *StateVector, rng RandomSource) (*StateVector, *ClassicalRegister, error) {
	reg := NewClassicalRegister()

	for _, g := range c.Gates {
		if g.Conditional() {
			if v, ok := reg.Get(g.Cond); !ok || v != 1 {
				continue
			}
		}

		switch {
		case g.Family == GateMeasure:
			outcome, err := state.Measure(g.Qubits[0], rng)
			if err != nil {
				return nil, nil, err
			}
			reg.Set(g.Cbit, outcome)
		case g.Family.IsNoise():
			if err := r.noise.Apply(state, g, rng); err != nil {
				return nil, nil, err
			}
		default:
			if err := state.ApplyUnitary(g.Family, g.Qubits, g.param()); err != nil {
				return nil, nil, err
			}
		}
	}

	return state, reg, nil
}

// validate fail-fast checks the whole circuit before any state exists, so a
// rejected circuit has no observable side effects.
func validate(c *Circuit) error {
	if c.NumQubits <= 0 {
		return validationf("circuit declares %d qubits", c.NumQubits)
	}

	for i, g := range c.Gates {
		if !g.Family.known() {
			return configurationf("gate %d: unknown family %d", i, int(g.Family))
		}
		if len(g.Qubits) != g.Family.Arity() {
			return configurationf("gate %d: %s takes %d qubit(s), got %d",
				i, g.Family, g.Family.Arity(), len(g.Qubits))
		}
		for _, q := range g.Qubits {
			if q < 0 || q >= c.NumQubits {
				return validationf("gate %d: qubit %d outside range [0,%d)", i, q, c.NumQubits)
			}
		}
		if len(g.Qubits) == 2 && g.Qubits[0] == g.Qubits[1] {
			return configurationf("gate %d: %s qubit pair collides on %d", i, g.Family, g.Qubits[0])
		}
		if g.Family.NeedsParam() && len(g.Params) == 0 {
			return configurationf("gate %d: %s requires a parameter", i, g.Family)
		}
		if g.Family.IsNoise() {
			if p := g.param(); p < 0 || p > 1 {
				return configurationf("gate %d: %s probability %g outside [0,1]", i, g.Family, p)
			}
		}
		if g.Family == GateMeasure && g.Cbit < 0 {
			return configurationf("gate %d: MEASURE needs a classical destination bit", i)
		}
		if g.Conditional() && g.Family == GateMeasure {
			return configurationf("gate %d: MEASURE cannot be classically conditioned", i)
		}
	}
	return nil
}

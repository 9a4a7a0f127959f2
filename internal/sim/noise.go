package sim

// NoiseModel maps a noise gate to a randomized unitary choice. It is
// stateless: all randomness comes from the supplied source, and nothing is
// ever written to the classical register.
type NoiseModel struct{}

// Apply samples and applies the noise channel described by g.
//
// DEPOLARIZE picks one of {identity, X, Y, Z} with probabilities
// {1-p, p/3, p/3, p/3}. BITFLIP applies X with probability p, PHASEFLIP
// applies Z with probability p. Identity draws leave the state untouched.
func (NoiseModel) Apply(state *StateVector, g Gate, rng RandomSource) error {
	p := g.param()
	switch g.Family {
	case GateDepolarize:
		draw := rng.Float64()
		switch {
		case draw < 1-p:
			return nil
		case draw < 1-p+p/3:
			return state.ApplyUnitary(GateX, g.Qubits, 0)
		case draw < 1-p+2*p/3:
			return state.ApplyUnitary(GateY, g.Qubits, 0)
		default:
			return state.ApplyUnitary(GateZ, g.Qubits, 0)
		}
	case GateBitFlip:
		if rng.Float64() < p {
			return state.ApplyUnitary(GateX, g.Qubits, 0)
		}
		return nil
	case GatePhaseFlip:
		if rng.Float64() < p {
			return state.ApplyUnitary(GateZ, g.Qubits, 0)
		}
		return nil
	default:
		return configurationf("%s is not a noise channel", g.Family)
	}
}

package sim

import (
	"math"
	"math/cmplx"
)

// normTolerance bounds how far the squared-magnitude sum may drift from 1
// before a state is considered invalid.
const normTolerance = 1e-6

// probEpsilon is the threshold below which renormalizing by an outcome's
// probability is undefined.
const probEpsilon = 1e-12

// StateVector is a dense pure-state amplitude buffer of size 2^NumQubits.
// Index bits are big-endian over qubits: qubit 0 is the most significant
// bit of the basis-state index. All gate application mutates in place.
type StateVector struct {
	Amplitudes []complex128
	NumQubits  int
}

// NewStateVector returns the computational-basis ground state |0...0>.
func NewStateVector(numQubits int) *StateVector {
	amps := make([]complex128, 1<<numQubits)
	amps[0] = 1
	return &StateVector{Amplitudes: amps, NumQubits: numQubits}
}

// NewStateVectorFrom builds a state from caller-supplied amplitudes. The
// vector must have power-of-two length and unit norm within tolerance; it is
// copied, never aliased.
func NewStateVectorFrom(amps []complex128) (*StateVector, error) {
	n := len(amps)
	if n == 0 || n&(n-1) != 0 {
		return nil, validationf("initial state length %d is not a power of two", n)
	}
	norm := 0.0
	for _, a := range amps {
		norm += real(a * cmplx.Conj(a))
	}
	if math.Abs(norm-1) > normTolerance {
		return nil, validationf("initial state norm %g is not 1 within tolerance", norm)
	}
	numQubits := 0
	for 1<<numQubits < n {
		numQubits++
	}
	buf := make([]complex128, n)
	copy(buf, amps)
	return &StateVector{Amplitudes: buf, NumQubits: numQubits}, nil
}

// Clone returns an independent copy of the state.
func (s *StateVector) Clone() *StateVector {
	amps := make([]complex128, len(s.Amplitudes))
	copy(amps, s.Amplitudes)
	return &StateVector{Amplitudes: amps, NumQubits: s.NumQubits}
}

// mask returns the index bit addressing qubit q (big-endian).
func (s *StateVector) mask(q int) int {
	return 1 << (s.NumQubits - 1 - q)
}

// Norm returns the sum of squared amplitude magnitudes.
func (s *StateVector) Norm() float64 {
	norm := 0.0
	for _, a := range s.Amplitudes {
		norm += real(a * cmplx.Conj(a))
	}
	return norm
}

// QubitProbability holds the marginal 0/1 probabilities of one qubit.
type QubitProbability struct {
	Prob0 float64
	Prob1 float64
}

// QubitProbabilities returns the marginal distribution of every qubit.
func (s *StateVector) QubitProbabilities() []QubitProbability {
	probs := make([]QubitProbability, s.NumQubits)
	for i, a := range s.Amplitudes {
		p := real(a * cmplx.Conj(a))
		for q := 0; q < s.NumQubits; q++ {
			if i&s.mask(q) != 0 {
				probs[q].Prob1 += p
			} else {
				probs[q].Prob0 += p
			}
		}
	}
	return probs
}

// ApplyUnitary applies the unitary operator for family f to the addressed
// qubit(s), leaving all other tensor factors untouched. Only unitary
// families are accepted; measurement and noise dispatch elsewhere. The
// circuit is validated before execution, so qubit indices are trusted here.
func (s *StateVector) ApplyUnitary(f Family, qubits []int, theta float64) error {
	switch f {
	case GateH:
		s.applyH(qubits[0])
	case GateX:
		s.applyX(qubits[0])
	case GateY:
		s.applyY(qubits[0])
	case GateZ:
		s.applyPhaseFlip(qubits[0], -1)
	case GateS:
		s.applyPhaseFlip(qubits[0], 1i)
	case GateSdg:
		s.applyPhaseFlip(qubits[0], -1i)
	case GateT:
		s.applyPhaseFlip(qubits[0], cmplx.Exp(complex(0, math.Pi/4)))
	case GateTdg:
		s.applyPhaseFlip(qubits[0], cmplx.Exp(complex(0, -math.Pi/4)))
	case GateRX:
		s.applyRX(qubits[0], theta)
	case GateRY:
		s.applyRY(qubits[0], theta)
	case GateRZ:
		s.applyRZ(qubits[0], theta)
	case GateCNOT:
		s.applyCNOT(qubits[0], qubits[1])
	case GateCZ:
		s.applyCZ(qubits[0], qubits[1])
	case GateSWAP:
		s.applySWAP(qubits[0], qubits[1])
	default:
		return configurationf("%s is not a unitary gate", f)
	}
	return nil
}

func (s *StateVector) applyH(q int) {
	hFactor := complex(1.0/math.Sqrt2, 0)
	bit := s.mask(q)
	for i := range s.Amplitudes {
		if i&bit == 0 {
			j := i | bit
			a0, a1 := s.Amplitudes[i], s.Amplitudes[j]
			s.Amplitudes[i] = hFactor * (a0 + a1)
			s.Amplitudes[j] = hFactor * (a0 - a1)
		}
	}
}

func (s *StateVector) applyX(q int) {
	bit := s.mask(q)
	for i := range s.Amplitudes {
		if i&bit == 0 {
			j := i | bit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

func (s *StateVector) applyY(q int) {
	bit := s.mask(q)
	for i := range s.Amplitudes {
		if i&bit == 0 {
			j := i | bit
			s.Amplitudes[i], s.Amplitudes[j] = -1i*s.Amplitudes[j], 1i*s.Amplitudes[i]
		}
	}
}

// applyPhaseFlip multiplies the |1> component of qubit q by factor. Z, S,
// S-dagger, T and T-dagger are all diagonal and share this kernel.
func (s *StateVector) applyPhaseFlip(q int, factor complex128) {
	bit := s.mask(q)
	for i := range s.Amplitudes {
		if i&bit != 0 {
			s.Amplitudes[i] *= factor
		}
	}
}

func (s *StateVector) applyRX(q int, theta float64) {
	bit := s.mask(q)
	c := complex(math.Cos(theta/2), 0)
	js := complex(0, -math.Sin(theta/2))
	for i := range s.Amplitudes {
		if i&bit == 0 {
			j := i | bit
			a0, a1 := s.Amplitudes[i], s.Amplitudes[j]
			s.Amplitudes[i] = c*a0 + js*a1
			s.Amplitudes[j] = js*a0 + c*a1
		}
	}
}

func (s *StateVector) applyRY(q int, theta float64) {
	bit := s.mask(q)
	c := complex(math.Cos(theta/2), 0)
	sn := complex(math.Sin(theta/2), 0)
	for i := range s.Amplitudes {
		if i&bit == 0 {
			j := i | bit
			a0, a1 := s.Amplitudes[i], s.Amplitudes[j]
			s.Amplitudes[i] = c*a0 - sn*a1
			s.Amplitudes[j] = sn*a0 + c*a1
		}
	}
}

func (s *StateVector) applyRZ(q int, theta float64) {
	bit := s.mask(q)
	phase := cmplx.Exp(complex(0, theta/2))
	for i := range s.Amplitudes {
		if i&bit != 0 {
			s.Amplitudes[i] *= phase
		} else {
			s.Amplitudes[i] *= cmplx.Conj(phase)
		}
	}
}

func (s *StateVector) applyCNOT(control, target int) {
	cBit := s.mask(control)
	tBit := s.mask(target)
	for i := range s.Amplitudes {
		if i&cBit != 0 && i&tBit == 0 {
			j := i | tBit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

func (s *StateVector) applyCZ(control, target int) {
	cBit := s.mask(control)
	tBit := s.mask(target)
	for i := range s.Amplitudes {
		if i&cBit != 0 && i&tBit != 0 {
			s.Amplitudes[i] *= -1
		}
	}
}

func (s *StateVector) applySWAP(q1, q2 int) {
	bit1 := s.mask(q1)
	bit2 := s.mask(q2)
	for i := range s.Amplitudes {
		if i&bit1 != 0 && i&bit2 == 0 {
			j := (i &^ bit1) | bit2
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

// Measure samples qubit q per the Born rule, collapses the state onto the
// sampled outcome and renormalizes. Returns the sampled outcome. If the
// sampled outcome's probability is below probEpsilon the renormalization is
// undefined and a NumericalError is returned with the state unspecified.
func (s *StateVector) Measure(q int, rng RandomSource) (int, error) {
	bit := s.mask(q)

	p0 := 0.0
	for i, a := range s.Amplitudes {
		if i&bit == 0 {
			p0 += real(a * cmplx.Conj(a))
		}
	}

	outcome := 0
	prob := p0
	if rng.Float64() >= p0 {
		outcome = 1
		prob = 1 - p0
	}
	if prob < probEpsilon {
		return 0, numericalf("measured qubit %d outcome %d with probability %g", q, outcome, prob)
	}

	norm := complex(math.Sqrt(prob), 0)
	for i := range s.Amplitudes {
		matches := (i&bit != 0) == (outcome == 1)
		if matches {
			s.Amplitudes[i] /= norm
		} else {
			s.Amplitudes[i] = 0
		}
	}
	return outcome, nil
}

package sim

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedSource replays a fixed sequence of draws.
type scriptedSource struct {
	draws []float64
	next  int
}

func (s *scriptedSource) Float64() float64 {
	v := s.draws[s.next%len(s.draws)]
	s.next++
	return v
}

func TestGroundState(t *testing.T) {
	s := NewStateVector(3)
	require.Len(t, s.Amplitudes, 8)
	assert.Equal(t, complex128(1), s.Amplitudes[0])
	assert.InDelta(t, 1.0, s.Norm(), 1e-12)
}

func TestHadamardBigEndianLayout(t *testing.T) {
	// H on qubit 0 of a 2-qubit register populates |00> and |10>. Qubit 0
	// is the most significant index bit, so that is indices 0 and 2.
	s := NewStateVector(2)
	require.NoError(t, s.ApplyUnitary(GateH, []int{0}, 0))

	inv := 1.0 / math.Sqrt2
	assert.InDelta(t, inv, real(s.Amplitudes[0]), 1e-12)
	assert.InDelta(t, inv, real(s.Amplitudes[2]), 1e-12)
	assert.Equal(t, complex128(0), s.Amplitudes[1])
	assert.Equal(t, complex128(0), s.Amplitudes[3])
}

func TestRotationExactness(t *testing.T) {
	theta := 2 * math.Acos(0.8)
	s := NewStateVector(1)
	require.NoError(t, s.ApplyUnitary(GateRX, []int{0}, theta))

	// RX(theta)|0> = [cos(theta/2), -i*sin(theta/2)]
	assert.InDelta(t, 0.8, cmplx.Abs(s.Amplitudes[0]), 1e-6)
	assert.InDelta(t, 0.6, cmplx.Abs(s.Amplitudes[1]), 1e-6)
	assert.InDelta(t, 0.8, real(s.Amplitudes[0]), 1e-6)
	assert.InDelta(t, -0.6, imag(s.Amplitudes[1]), 1e-6)
}

func TestBellAmplitudes(t *testing.T) {
	s := NewStateVector(2)
	require.NoError(t, s.ApplyUnitary(GateH, []int{0}, 0))
	require.NoError(t, s.ApplyUnitary(GateCNOT, []int{0, 1}, 0))

	inv := 1.0 / math.Sqrt2
	assert.InDelta(t, inv, real(s.Amplitudes[0]), 1e-12)
	assert.InDelta(t, inv, real(s.Amplitudes[3]), 1e-12)
	assert.Equal(t, complex128(0), s.Amplitudes[1])
	assert.Equal(t, complex128(0), s.Amplitudes[2])
}

func TestPauliY(t *testing.T) {
	s := NewStateVector(1)
	require.NoError(t, s.ApplyUnitary(GateY, []int{0}, 0))
	assert.Equal(t, complex128(0), s.Amplitudes[0])
	assert.InDelta(t, 1.0, imag(s.Amplitudes[1]), 1e-12)
}

func TestSWAPMovesExcitation(t *testing.T) {
	s := NewStateVector(2)
	require.NoError(t, s.ApplyUnitary(GateX, []int{0}, 0)) // |10>
	require.NoError(t, s.ApplyUnitary(GateSWAP, []int{0, 1}, 0))
	assert.Equal(t, complex128(1), s.Amplitudes[1]) // |01>
}

func TestNormPreservedAcrossAllUnitaries(t *testing.T) {
	s := NewStateVector(3)
	steps := []struct {
		f      Family
		qubits []int
		theta  float64
	}{
		{GateH, []int{0}, 0},
		{GateRX, []int{1}, 0.7},
		{GateRY, []int{2}, 1.3},
		{GateRZ, []int{0}, -0.4},
		{GateCNOT, []int{0, 2}, 0},
		{GateCZ, []int{1, 2}, 0},
		{GateS, []int{1}, 0},
		{GateT, []int{2}, 0},
		{GateSdg, []int{1}, 0},
		{GateTdg, []int{2}, 0},
		{GateY, []int{0}, 0},
		{GateSWAP, []int{0, 1}, 0},
		{GateX, []int{2}, 0},
		{GateZ, []int{0}, 0},
	}
	for _, st := range steps {
		require.NoError(t, s.ApplyUnitary(st.f, st.qubits, st.theta))
		assert.InDelta(t, 1.0, s.Norm(), normTolerance, "after %s", st.f)
	}
}

func TestApplyUnitaryRejectsNonUnitary(t *testing.T) {
	s := NewStateVector(1)
	var cfgErr *ConfigurationError
	require.ErrorAs(t, s.ApplyUnitary(GateMeasure, []int{0}, 0), &cfgErr)
	require.ErrorAs(t, s.ApplyUnitary(GateDepolarize, []int{0}, 0.1), &cfgErr)
}

func TestStateVectorFromRejectsUnnormalized(t *testing.T) {
	_, err := NewStateVectorFrom([]complex128{0.5, 0.5})
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
}

func TestStateVectorFromRejectsBadLength(t *testing.T) {
	var valErr *ValidationError
	_, err := NewStateVectorFrom([]complex128{1, 0, 0})
	require.ErrorAs(t, err, &valErr)
	_, err = NewStateVectorFrom(nil)
	require.ErrorAs(t, err, &valErr)
}

func TestStateVectorFromCopies(t *testing.T) {
	amps := []complex128{1, 0}
	s, err := NewStateVectorFrom(amps)
	require.NoError(t, err)
	amps[0] = 0
	assert.Equal(t, complex128(1), s.Amplitudes[0])
}

func TestMeasureCollapsesBellState(t *testing.T) {
	bell := func() *StateVector {
		s := NewStateVector(2)
		s.applyH(0)
		s.applyCNOT(0, 1)
		return s
	}

	// Draw below p0 = 0.5 selects outcome 0 and collapses to |00>.
	s := bell()
	outcome, err := s.Measure(0, &scriptedSource{draws: []float64{0.3}})
	require.NoError(t, err)
	assert.Equal(t, 0, outcome)
	assert.InDelta(t, 1.0, real(s.Amplitudes[0]), 1e-12)
	assert.InDelta(t, 1.0, s.Norm(), 1e-12)

	// Draw at or above p0 selects outcome 1 and collapses to |11>.
	s = bell()
	outcome, err = s.Measure(0, &scriptedSource{draws: []float64{0.9}})
	require.NoError(t, err)
	assert.Equal(t, 1, outcome)
	assert.InDelta(t, 1.0, real(s.Amplitudes[3]), 1e-12)
	assert.InDelta(t, 1.0, s.Norm(), 1e-12)
}

func TestMeasureNearZeroProbabilityIsNumericalError(t *testing.T) {
	// Outcome 1 carries probability ~1e-13, below the renormalization
	// threshold. Forcing the draw onto that branch must surface an error,
	// not a silent outcome-0 fallback.
	small := math.Sqrt(1e-13)
	big := math.Sqrt(1 - 1e-13)
	s, err := NewStateVectorFrom([]complex128{complex(big, 0), complex(small, 0)})
	require.NoError(t, err)

	_, err = s.Measure(0, &scriptedSource{draws: []float64{1 - 5e-14}})
	var numErr *NumericalError
	require.ErrorAs(t, err, &numErr)
}

func TestQubitProbabilities(t *testing.T) {
	s := NewStateVector(2)
	require.NoError(t, s.ApplyUnitary(GateRX, []int{1}, 2*math.Acos(0.8)))

	probs := s.QubitProbabilities()
	require.Len(t, probs, 2)
	assert.InDelta(t, 1.0, probs[0].Prob0, 1e-9)
	assert.InDelta(t, 0.64, probs[1].Prob0, 1e-9)
	assert.InDelta(t, 0.36, probs[1].Prob1, 1e-9)
}

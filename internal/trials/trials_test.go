package trials

import (
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VidhiDesai2/QuantumTeleportation/internal/circuits"
	"github.com/VidhiDesai2/QuantumTeleportation/internal/sim"
)

func bellExperiment(shots int, seed int64) *Experiment {
	return New(circuits.BellPair(), shots, seed, zerolog.Nop())
}

func TestExperimentIsDeterministicPerSeed(t *testing.T) {
	a, err := bellExperiment(500, 17).Run()
	require.NoError(t, err)
	b, err := bellExperiment(500, 17).Run()
	require.NoError(t, err)

	assert.Equal(t, OutcomeCounts(a, []int{0, 1}), OutcomeCounts(b, []int{0, 1}))
	for i := range a {
		assert.Equal(t, a[i].Seed, b[i].Seed)
		assert.Equal(t, a[i].Register.Bits(), b[i].Register.Bits())
	}
}

func TestBellExperimentStatistics(t *testing.T) {
	results, err := bellExperiment(2000, 3).Run()
	require.NoError(t, err)
	require.Len(t, results, 2000)

	counts := OutcomeCounts(results, []int{0, 1})
	assert.Zero(t, counts["01"])
	assert.Zero(t, counts["10"])
	assert.Equal(t, 2000, counts["00"]+counts["11"])
	assert.InDelta(t, 0.5, BitFrequency(results, 0), 0.04)
}

func TestExperimentPropagatesValidationError(t *testing.T) {
	bad := sim.NewCircuit(1)
	bad.AddX(3)
	results, err := New(bad, 10, 1, zerolog.Nop()).Run()
	var valErr *sim.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Nil(t, results)
}

func TestExperimentSingleWorker(t *testing.T) {
	e := bellExperiment(50, 9)
	e.Workers = 1
	results, err := e.Run()
	require.NoError(t, err)
	require.Len(t, results, 50)
	for i, r := range results {
		assert.Equal(t, i, r.Trial)
	}
}

func TestZeroShots(t *testing.T) {
	results, err := bellExperiment(0, 1).Run()
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestFidelity(t *testing.T) {
	ground := sim.NewStateVector(1)
	assert.InDelta(t, 1.0, Fidelity(ground, ground.Clone()), 1e-12)

	excited := sim.NewStateVector(1)
	require.NoError(t, excited.ApplyUnitary(sim.GateX, []int{0}, 0))
	assert.InDelta(t, 0.0, Fidelity(ground, excited), 1e-12)

	plus := sim.NewStateVector(1)
	require.NoError(t, plus.ApplyUnitary(sim.GateH, []int{0}, 0))
	assert.InDelta(t, 0.5, Fidelity(ground, plus), 1e-12)

	mismatch := sim.NewStateVector(2)
	assert.Zero(t, Fidelity(ground, mismatch))
}

func TestTeleportationFidelityAcrossTrials(t *testing.T) {
	theta := 2 * math.Acos(0.8)
	tp := circuits.NewTeleportation(theta, 0, 0)

	want := sim.NewStateVector(1)
	require.NoError(t, want.ApplyUnitary(sim.GateRX, []int{0}, theta))

	results, err := New(tp.Circuit, 200, 5, zerolog.Nop()).Run()
	require.NoError(t, err)

	fids := make([]float64, len(results))
	for i, r := range results {
		// Project Bob's qubit out of the collapsed 3-qubit state: the other
		// two qubits are in the measured basis state, so the two amplitudes
		// at the measured base index are exactly Bob's state.
		m0, _ := r.Register.Get(tp.MBits[0])
		m1, _ := r.Register.Get(tp.MBits[1])
		base := m0*4 + m1*2
		bob, err := sim.NewStateVectorFrom(r.State.Amplitudes[base : base+2])
		require.NoError(t, err)
		fids[i] = Fidelity(want, bob)
	}
	assert.InDelta(t, 1.0, Mean(fids), 1e-9)
	assert.InDelta(t, 0.0, StdDev(fids), 1e-9)
}

func TestOutcomesSorted(t *testing.T) {
	counts := map[string]int{"00": 5, "11": 9, "01": 5}
	assert.Equal(t, []string{"11", "00", "01"}, Outcomes(counts))
}

func TestMeanStdDev(t *testing.T) {
	assert.Zero(t, Mean(nil))
	assert.Zero(t, StdDev(nil))
	assert.InDelta(t, 2.0, Mean([]float64{1, 2, 3}), 1e-12)
	assert.InDelta(t, 1.0, StdDev([]float64{1, 2, 3}), 1e-12)
}

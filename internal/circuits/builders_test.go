package circuits

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VidhiDesai2/QuantumTeleportation/internal/sim"
)

func TestAllocatorHandsOutFreshIndices(t *testing.T) {
	var alloc Allocator
	assert.Equal(t, 0, alloc.Qubit())
	assert.Equal(t, 1, alloc.Qubit())
	assert.Equal(t, []int{2, 3, 4}, alloc.Qubits(3))
	assert.Equal(t, 5, alloc.NumQubits())

	assert.Equal(t, 0, alloc.Bit())
	assert.Equal(t, 1, alloc.Bit())
	assert.Equal(t, 2, alloc.NumBits())
}

func TestBellPairCircuit(t *testing.T) {
	c := BellPair()
	require.Equal(t, 2, c.NumQubits)
	require.Len(t, c.Gates, 4)
	assert.Equal(t, sim.GateH, c.Gates[0].Family)
	assert.Equal(t, sim.GateCNOT, c.Gates[1].Family)
	assert.Equal(t, sim.GateMeasure, c.Gates[2].Family)
	assert.Equal(t, sim.GateMeasure, c.Gates[3].Family)

	// Outcomes agree on every trial.
	r := sim.NewRunner()
	for seed := int64(0); seed < 200; seed++ {
		_, reg, err := r.Run(c, seed)
		require.NoError(t, err)
		b0, _ := reg.Get(0)
		b1, _ := reg.Get(1)
		require.Equal(t, b0, b1, "seed %d", seed)
	}
}

func TestTeleportationDeliversMessageExactly(t *testing.T) {
	theta := 2 * math.Acos(0.8)
	tp := NewTeleportation(theta, 0, 0)

	alpha := complex(math.Cos(theta/2), 0)
	beta := complex(0, -math.Sin(theta/2))

	r := sim.NewRunner()
	for seed := int64(0); seed < 50; seed++ {
		state, reg, err := r.Run(tp.Circuit, seed)
		require.NoError(t, err)

		m0, ok := reg.Get(tp.MBits[0])
		require.True(t, ok)
		m1, ok := reg.Get(tp.MBits[1])
		require.True(t, ok)

		// Message and Alice are collapsed to |m0 m1>; Bob carries the
		// message state exactly, whatever the Bell outcome was.
		base := m0*4 + m1*2
		for i, a := range state.Amplitudes {
			switch i {
			case base:
				assert.InDelta(t, 0, cmplxAbs(a-alpha), 1e-9, "seed %d amp %d", seed, i)
			case base + 1:
				assert.InDelta(t, 0, cmplxAbs(a-beta), 1e-9, "seed %d amp %d", seed, i)
			default:
				assert.InDelta(t, 0, cmplxAbs(a), 1e-9, "seed %d amp %d", seed, i)
			}
		}
	}
}

func TestTeleportationWithNoiseKeepsNormalization(t *testing.T) {
	tp := NewTeleportation(1.1, 0.3, 0.4)
	r := sim.NewRunner()
	for seed := int64(0); seed < 100; seed++ {
		state, _, err := r.Run(tp.Circuit, seed)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, state.Norm(), 1e-6, "seed %d", seed)
	}
}

func TestRepetitionNoiselessCycleIsClean(t *testing.T) {
	rep := NewRepetition(0, 0)
	r := sim.NewRunner()

	_, reg, err := r.Run(rep.Circuit, 1)
	require.NoError(t, err)
	for _, b := range rep.Syndrome {
		v, ok := reg.Get(b)
		require.True(t, ok)
		assert.Equal(t, 0, v)
	}
	for _, b := range rep.Out {
		v, _ := reg.Get(b)
		assert.Equal(t, 0, v)
	}
}

func TestRepetitionCorrectsEdgeFlip(t *testing.T) {
	for _, flipped := range []int{0, 2} {
		var alloc Allocator
		var data [3]int
		copy(data[:], alloc.Qubits(3))
		var anc [2]int
		copy(anc[:], alloc.Qubits(2))
		syndrome := [2]int{alloc.Bit(), alloc.Bit()}
		out := [3]int{alloc.Bit(), alloc.Bit(), alloc.Bit()}

		c := sim.NewCircuit(alloc.NumQubits())
		c.AddX(data[0]) // logical |1>
		AppendEncode(c, data)
		c.AddX(data[flipped]) // deterministic single bit-flip error
		AppendSyndrome(c, data, anc, syndrome)
		AppendCorrections(c, data, syndrome)
		for i, q := range data {
			c.AddMeasure(q, out[i])
		}

		_, reg, err := sim.NewRunner().Run(c, 1)
		require.NoError(t, err)
		for _, b := range out {
			v, ok := reg.Get(b)
			require.True(t, ok)
			assert.Equal(t, 1, v, "flip on data[%d]: codeword must be restored", flipped)
		}
	}
}

func TestAllocatedCircuitsValidate(t *testing.T) {
	// Every template must pass runner validation as built.
	r := sim.NewRunner()
	for _, c := range []*sim.Circuit{
		BellPair(),
		NewTeleportation(0.5, 0.25, 0.1).Circuit,
		NewRepetition(0.9, 0.05).Circuit,
	} {
		_, _, err := r.Run(c, 1)
		require.NoError(t, err)
	}
}

func cmplxAbs(a complex128) float64 {
	return math.Hypot(real(a), imag(a))
}

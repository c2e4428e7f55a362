package analysis_test

import (
	"bytes"
	"log"
	"testing"

	"github.com/edp1096/nodemesh/pkg/analysis"
	"github.com/edp1096/nodemesh/pkg/circuit"
	"github.com/edp1096/nodemesh/pkg/equation"
	"github.com/edp1096/nodemesh/pkg/solver"
	"github.com/stretchr/testify/require"
)

func loadCircuit(t *testing.T, mode equation.Mode, lines ...string) *circuit.Circuit {
	t.Helper()
	ckt, err := circuit.New("test", mode, len(lines))
	require.NoError(t, err)
	require.NoError(t, ckt.LoadEquations(lines))
	return ckt
}

func TestLinearNodalTwoNodes(t *testing.T) {
	for _, s := range []solver.Solver{nil, solver.NewGaussian(), solver.NewSparse()} {
		ckt := loadCircuit(t, equation.Nodal, "2V1 - V2 = 4", "-V1 + 3V2 = 5")

		var _ analysis.Analysis = analysis.NewLinear(s)
		op := analysis.NewLinear(s)
		require.NoError(t, op.Setup(ckt))
		require.NoError(t, op.Execute())

		results := op.GetResults()
		require.Len(t, results, 2)
		require.InDelta(t, 3.4, results["V1"][0], 1e-9)
		require.InDelta(t, 2.8, results["V2"][0], 1e-9)
		require.Less(t, op.Residual(), 1e-9)
		require.GreaterOrEqual(t, int64(op.Elapsed()), int64(0))

		solution := ckt.GetSolution()
		require.InDelta(t, 3.4, solution["V1"], 1e-9)
		require.InDelta(t, 2.8, solution["V2"], 1e-9)
	}
}

func TestLinearMeshSingle(t *testing.T) {
	ckt := loadCircuit(t, equation.Mesh, "5I1 = 10")

	op := analysis.NewLinear(nil)
	require.NoError(t, op.Setup(ckt))
	require.NoError(t, op.Execute())
	require.Equal(t, map[string][]float64{"I1": {2}}, op.GetResults())
}

func TestLinearSingular(t *testing.T) {
	ckt := loadCircuit(t, equation.Nodal, "V1 + V2 = 1", "2V1 + 2V2 = 2")

	op := analysis.NewLinear(solver.NewGaussian())
	require.NoError(t, op.Setup(ckt))
	err := op.Execute()
	require.ErrorIs(t, err, solver.ErrSingular)
	require.Empty(t, op.GetResults())
	require.Empty(t, ckt.GetSolution())
}

func TestLinearExecuteTwice(t *testing.T) {
	ckt := loadCircuit(t, equation.Nodal, "2V1 - V2 = 4", "-V1 + 3V2 = 5")
	op := analysis.NewLinear(nil)
	require.NoError(t, op.Setup(ckt))
	require.NoError(t, op.Execute())

	require.ErrorIs(t, op.Execute(), analysis.ErrSolved)
	require.InDelta(t, 3.4, ckt.GetSolution()["V1"], 1e-9)
	require.InDelta(t, 2.8, ckt.GetSolution()["V2"], 1e-9)

	require.NoError(t, ckt.LoadEquations([]string{"2V1 - V2 = 4", "-V1 + 3V2 = 5"}))
	require.False(t, ckt.Solved())
	require.NoError(t, op.Execute())
	require.InDelta(t, 3.4, op.GetResults()["V1"][0], 1e-9)
	require.InDelta(t, 2.8, op.GetResults()["V2"][0], 1e-9)
}

func TestLinearSetupErrors(t *testing.T) {
	op := analysis.NewLinear(nil)
	require.Error(t, op.Execute())
	require.Error(t, op.Setup(nil))
}

func TestLinearPivotingKeepsResidualSmall(t *testing.T) {
	// without the row swap 1e-17 would be the first pivot
	ckt := loadCircuit(t, equation.Nodal, "1e-17V1 + V2 = 1", "V1 + V2 = 2")

	var buf bytes.Buffer
	op := analysis.NewLinear(solver.NewGaussian())
	op.SetLogger(log.New(&buf, "", 0))
	require.NoError(t, op.Setup(ckt))
	require.NoError(t, op.Execute())
	require.Less(t, op.Residual(), 1e-9)
	require.Empty(t, buf.String())
}

func TestCheckResidual(t *testing.T) {
	ba := analysis.NewBaseAnalysis()
	require.True(t, ba.CheckResidual(0, []float64{1}))
	require.True(t, ba.CheckResidual(1e-10, []float64{1}))
	require.False(t, ba.CheckResidual(1e-3, []float64{1}))
	require.True(t, ba.CheckResidual(1e-3, []float64{1e7}))
}

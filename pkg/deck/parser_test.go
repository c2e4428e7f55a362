package deck_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/edp1096/nodemesh/pkg/analysis"
	"github.com/edp1096/nodemesh/pkg/circuit"
	"github.com/edp1096/nodemesh/pkg/deck"
	"github.com/edp1096/nodemesh/pkg/equation"
	"github.com/stretchr/testify/require"
)

const twoNodes = `* two node example
.nodal
* node 1
2V1 - V2 = 4      ; R1 and R2
-V1 + 3V2
+ = 5

.end
this line is never read
`

func TestParseDeck(t *testing.T) {
	d, err := deck.Parse(twoNodes)
	require.NoError(t, err)

	require.Equal(t, "two node example", d.Title)
	require.Equal(t, equation.Nodal, d.Mode)
	require.False(t, d.Raw)
	require.Equal(t, []string{"2V1 - V2 = 4", "-V1 + 3V2 = 5"}, d.Equations)

	ckt, err := d.Circuit()
	require.NoError(t, err)
	require.Equal(t, "two node example", ckt.Name())

	op := analysis.NewLinear(nil)
	require.NoError(t, op.Setup(ckt))
	require.NoError(t, op.Execute())
	require.InDelta(t, 3.4, op.GetResults()["V1"][0], 1e-12)
	require.InDelta(t, 2.8, op.GetResults()["V2"][0], 1e-12)
}

func TestParseDeckLeadingPlusSign(t *testing.T) {
	input := "signed terms\n.nodal\n+2V1 - V2 = 4\n+V1 - 3V2\n+\n+\t= -5\n"
	d, err := deck.Parse(input)
	require.NoError(t, err)
	require.Equal(t, []string{"+2V1 - V2 = 4", "+V1 - 3V2 = -5"}, d.Equations)

	d, err = deck.Parse("signed terms\n.nodal\n+2V1 - V2 = 4\n-V1 + 3V2\n+ = 5\n")
	require.NoError(t, err)
	require.Equal(t, []string{"+2V1 - V2 = 4", "-V1 + 3V2 = 5"}, d.Equations)

	ckt, err := d.Circuit()
	require.NoError(t, err)
	require.Equal(t, []float64{2, -1}, ckt.GetSystem().Row(0))
}

func TestParseDeckRawMesh(t *testing.T) {
	input := "mesh currents\n.mode B\n.raw\n.count 2\n10 -4   6\n-4\t12 0\n"
	d, err := deck.Parse(input)
	require.NoError(t, err)
	require.Equal(t, equation.Mesh, d.Mode)
	require.True(t, d.Raw)
	require.Equal(t, 2, d.Count)
	require.Equal(t, []string{"10 -4 6", "-4 12 0"}, d.Equations)

	ckt, err := d.Circuit()
	require.NoError(t, err)
	require.Equal(t, []float64{10, -4}, ckt.GetSystem().Row(0))
	require.Equal(t, []float64{6, 0}, ckt.GetSystem().Constants())
}

func TestParseDeckErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
		err   error
	}{
		{"no mode", "title\nV1 = 1\n", deck.ErrInvalidDeck},
		{"bad mode", "title\n.mode C\nV1 = 1\n", equation.ErrInvalidMode},
		{"unknown directive", "title\n.tran 1 2\n", deck.ErrInvalidDeck},
		{"dangling continuation", "title\n.nodal\n+ V1 = 1\n", deck.ErrInvalidDeck},
		{"no equations", "title\n.mesh\n", circuit.ErrInvalidEquationCount},
		{"count mismatch", "title\n.mesh\n.count 2\nI1 = 1\n", circuit.ErrInvalidEquationCount},
		{"count too big", "title\n.mesh\n.count 11\n", circuit.ErrInvalidEquationCount},
		{"count not a number", "title\n.mesh\n.count two\n", circuit.ErrInvalidEquationCount},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := deck.Parse(tc.input)
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestDeckCircuitMalformed(t *testing.T) {
	d, err := deck.Parse("title\n.nodal\nV1 + V2\nV2 = 1\n")
	require.NoError(t, err)

	_, err = d.Circuit()
	require.ErrorIs(t, err, equation.ErrMalformedEquation)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mesh.cir")
	require.NoError(t, os.WriteFile(path, []byte("single mesh\n.mesh\n5I1 = 10\n"), 0o644))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	d, err := deck.Read(f)
	require.NoError(t, err)
	require.Equal(t, []string{"5I1 = 10"}, d.Equations)
}

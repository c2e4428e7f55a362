package equation_test

import (
	"testing"

	"github.com/edp1096/nodemesh/pkg/equation"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	cases := []struct {
		in   string
		want equation.Mode
	}{
		{"A", equation.Nodal},
		{"a", equation.Nodal},
		{" B\n", equation.Mesh},
		{"V", equation.Nodal},
		{"i", equation.Mesh},
	}
	for _, tc := range cases {
		got, err := equation.ParseMode(tc.in)
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.want, got, tc.in)
	}

	for _, bad := range []string{"", "C", "AB", "1"} {
		_, err := equation.ParseMode(bad)
		require.ErrorIs(t, err, equation.ErrInvalidMode, bad)
	}
}

func TestModeNaming(t *testing.T) {
	require.Equal(t, "V", equation.Nodal.Tag())
	require.Equal(t, "V", equation.Nodal.Unit())
	require.Equal(t, "I", equation.Mesh.Tag())
	require.Equal(t, "A", equation.Mesh.Unit())
	require.Equal(t, "I3", equation.Mesh.Name(3))
	require.Equal(t, "nodal", equation.Nodal.String())
	require.Equal(t, "mesh", equation.Mesh.String())
	require.False(t, equation.Mode('X').Valid())
}

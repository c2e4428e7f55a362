package util

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatValueFactor(t *testing.T) {
	cases := []struct {
		value float64
		unit  string
		want  string
	}{
		{3.4, "V", "3.400 V"},
		{0, "A", "0.000 A"},
		{-0.0025, "A", "-2.500 mA"},
		{4.7e-6, "V", "4.700 uV"},
		{1e-15, "A", "1.000e-15 A"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, FormatValueFactor(tc.value, tc.unit))
	}
}

func TestFormatUnknown(t *testing.T) {
	require.Equal(t, "V1 = 3.4000 V", FormatUnknown("V1", 3.4, "V", 4))
	require.Equal(t, "I2 = -2.00 A", FormatUnknown("I2", -2, "A", 0))
	require.Equal(t, "I1 = 0.00 A", FormatUnknown("I1", math.Copysign(0, -1), "A", 2))
	require.Equal(t, "V2 = 12.000 mV", FormatUnknown("V2", 0.012, "V", -1))
}

func TestBounds(t *testing.T) {
	require.True(t, InRange(0, 0, 3))
	require.True(t, InRange(2, 0, 3))
	require.False(t, InRange(3, 0, 3))
	require.False(t, InRange(-1, 0, 3))

	require.Equal(t, 2, Clamp(0, 2, 12))
	require.Equal(t, 12, Clamp(20, 2, 12))
	require.Equal(t, 4, Clamp(4, 2, 12))

	require.Equal(t, 0.0, AbsMax[float64](nil))
	require.Equal(t, 7.5, AbsMax([]float64{1, -7.5, 3}))
}

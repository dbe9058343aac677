package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHasAny(t *testing.T) {
	require.True(t, HasAny("Light Rain Shower", "drizzle", "rain"))
	require.False(t, HasAny("Sunny", "cloud", "rain"))
	require.False(t, HasAny("anything"))
}

func TestNormalizeName(t *testing.T) {
	require.Equal(t, "new delhi", NormalizeName("  New   Delhi "))
	require.Equal(t, "", NormalizeName("   "))
}

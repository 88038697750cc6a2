package seq

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLessWrapsAroundBoundary(t *testing.T) {
	cases := []struct {
		name string
		a, b Num
		want bool
	}{
		{"no wrap", 100, 200, true},
		{"equal", 100, 100, false},
		{"reverse", 200, 100, false},
		{"wraps past zero", 0xFFFFFFFF, 0, true},
		{"wraps past zero reversed", 0, 0xFFFFFFFF, false},
		{"half window apart", 0x7FFFFFFF, 0xFFFFFFFF, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.want, c.a.Less(c.b))
		})
	}
}

func TestIncrAddi(t *testing.T) {
	var n Num = 0xFFFFFFFF
	require.Equal(t, Num(0), n.Incr())
	require.Equal(t, Num(5), Num(10).Addi(-5))
}

func TestMaxPicksLaterInSequenceOrder(t *testing.T) {
	require.Equal(t, Num(0), Num(0).Max(Num(0xFFFFFFFF)))
	require.Equal(t, Num(200), Num(100).Max(Num(200)))
}

func TestLessEqualGreaterEqual(t *testing.T) {
	require.True(t, Num(100).LessEqual(100))
	require.True(t, Num(100).LessEqual(101))
	require.False(t, Num(101).LessEqual(100))
	require.True(t, Num(101).GreaterEqual(100))
	require.True(t, Num(100).GreaterEqual(100))
}

package tcpflags

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPredicates(t *testing.T) {
	require.True(t, Flags(0).IsEmpty())
	require.True(t, SYN.Only(SYN))
	require.False(t, (SYN | ACK).Only(SYN))
	require.True(t, (SYN | ACK).Exact(SYN | ACK))
	require.True(t, FIN.OrAck(FIN))
	require.True(t, (FIN | ACK).OrAck(FIN))
	require.False(t, (FIN | PSH).OrAck(FIN))
	require.True(t, (FIN | PSH | ACK).Has(PSH))
}

func TestString(t *testing.T) {
	require.Equal(t, "<empty>", Flags(0).String())
	require.Equal(t, "SYN|ACK", (SYN | ACK).String())
}

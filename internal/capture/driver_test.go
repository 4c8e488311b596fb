package capture

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestDriverPushAndDrain(t *testing.T) {
	d := NewDriver(4, zerolog.Nop())
	for i := 0; i < 4; i++ {
		d.Push([]complex128{complex(float64(i), 0)})
	}
	require.Zero(t, d.Dropped())

	d.Close()
	var seen []uint64
	for buf := range d.Buffers() {
		seen = append(seen, buf.Seq)
	}
	require.Len(t, seen, 4)
	for i, seq := range seen {
		require.Equal(t, uint64(i+1), seq)
	}
}

func TestDriverDropsWhenFull(t *testing.T) {
	d := NewDriver(2, zerolog.Nop())
	for i := 0; i < 5; i++ {
		d.Push([]complex128{complex(float64(i), 0)})
	}
	require.Equal(t, uint64(3), d.Dropped())

	d.Close()
	var count int
	for range d.Buffers() {
		count++
	}
	require.Equal(t, 2, count)
}

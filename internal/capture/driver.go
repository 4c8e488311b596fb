// Package capture drives a live front-end (an audio interface standing
// in for an SDR, spec.md §1) on one goroutine and feeds captured buffers
// to a decode goroutine through a bounded queue, per the two-thread
// producer/consumer model of spec.md §5. The core decode pipeline itself
// stays synchronous and single-threaded; this package only supplies the
// surrounding plumbing.
package capture

import (
	"github.com/rs/zerolog"
)

// Buffer is one captured slice of complex baseband samples, paired with
// a sequence number so a consumer can detect drops.
type Buffer struct {
	Seq     uint64
	Samples []complex128
}

// Driver is a bounded single-producer-single-consumer queue between a
// capture loop and a decode loop. When the queue is full, Push drops the
// incoming buffer rather than blocking the producer — backpressure is
// the driver's responsibility, matching spec.md §5's "driver may drop
// buffers" policy. This mirrors the teacher's non-blocking
// select/default send into Session.eventChan (internal/protocol/session.go),
// generalized from a fixed 100-slot event channel to a caller-sized
// buffer queue.
type Driver struct {
	queue   chan Buffer
	log     zerolog.Logger
	dropped uint64
	seq     uint64
}

// NewDriver creates a driver with the given queue depth.
func NewDriver(depth int, log zerolog.Logger) *Driver {
	return &Driver{
		queue: make(chan Buffer, depth),
		log:   log,
	}
}

// Push enqueues samples as the next captured buffer. If the queue is
// full, the buffer is dropped and a counter is incremented; Push never
// blocks.
func (d *Driver) Push(samples []complex128) {
	d.seq++
	buf := Buffer{Seq: d.seq, Samples: samples}
	select {
	case d.queue <- buf:
	default:
		d.dropped++
		d.log.Warn().Uint64("seq", buf.Seq).Uint64("total_dropped", d.dropped).Msg("capture buffer dropped, decoder is behind")
	}
}

// Buffers returns the channel a decode goroutine should range over.
func (d *Driver) Buffers() <-chan Buffer {
	return d.queue
}

// Close signals no further buffers will be pushed.
func (d *Driver) Close() {
	close(d.queue)
}

// Dropped returns the number of buffers dropped due to a full queue.
func (d *Driver) Dropped() uint64 {
	return d.dropped
}

package sync

// State names the receive pipeline's position, mirroring the state
// machine of spec.md section 4.9.
type State int

const (
	Idle State = iota
	Syncing
	Estimating
	Decoding
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Syncing:
		return "Syncing"
	case Estimating:
		return "Estimating"
	case Decoding:
		return "Decoding"
	case Done:
		return "Done"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Result carries the receive pipeline's recovered state: the symbol
// stream ready for demodulation, the measured CFO, and the estimated
// channel response, in case a caller wants diagnostics alongside the
// decoded bytes.
type Result struct {
	Symbols []complex128
	FDelta  float64
	H       []complex128
	State   State
}

// Run drives the full synchronization pipeline over a raw capture:
// locate the locking sequence, estimate and correct CFO, estimate the
// channel from the training blocks, then equalize every payload block
// into a demodulation-ready symbol stream. Run passes through Syncing
// (locating the preamble) and Estimating (CFO and channel response)
// internally; the returned Result.State is Decoding once symbols are
// equalized and ready for demodulation, or Failed if locating the
// preamble failed. A caller driving
// demodulation and deframing after Run returns is expected to advance
// the state to Done on success or Failed on a deframe error, since Run
// only covers the synchronization stages (ofdm.Decode does this).
func Run(capture []complex128, guardBands bool) (*Result, error) {
	state := Idle

	state = Syncing
	trimmed, err := Locate(capture)
	if err != nil {
		return &Result{State: Failed}, err
	}

	state = Estimating
	fDelta := EstimateCFO(trimmed)
	corrected := CorrectCFO(trimmed, fDelta)
	h := EstimateChannel(corrected)

	state = Decoding
	symbols := EqualizePayload(corrected, h, guardBands)

	return &Result{
		Symbols: symbols,
		FDelta:  fDelta,
		H:       h,
		State:   state,
	}, nil
}

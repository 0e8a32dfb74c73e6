package codec

// predictor estimates the next value in a block from already-reconstructed
// neighbors. The same ramp runs on both compress and decompress, always over
// reconstructed values (never ground truth), so the scheme is causal and
// exactly reversible:
//
//   - no history: predict 0
//   - one value:  predict the previous reconstructed value
//   - otherwise:  linear extrapolation, 2*prev - prev2
//
// The ramp restarts at every block boundary (blocks share no state) and
// after every outlier. An outlier's magnitude is, by definition, far from
// the local trend; feeding it back as context would drag the following
// residuals out of code range, so the outlier path resets the history
// instead of extending it.
type predictor struct {
	prev  float64
	prev2 float64
	n     int
}

// predict returns the estimate for the next position.
func (p *predictor) predict() float64 {
	switch p.n {
	case 0:
		return 0
	case 1:
		return p.prev
	default:
		return 2*p.prev - p.prev2
	}
}

// push records a reconstructed value as context for subsequent positions.
func (p *predictor) push(v float64) {
	p.prev2 = p.prev
	p.prev = v
	if p.n < 2 {
		p.n++
	}
}

// reset clears the history, restarting the prediction ramp.
func (p *predictor) reset() {
	p.n = 0
}

package detection

// harvest scans the accumulator and feeds qualifying cells to the merger.
//
// The scan is theta-outer, rho-inner. The order matters: it decides the
// sequence in which candidates reach the merger and therefore which segment
// wins a merge, so it must not be changed.
//
// A cell is emitted when its votes meet cfg.MinVotes and it has not been
// recorded yet. Recorded is set before emission: adjacent theta
// quantizations can alias to one cell, and the flag keeps an aliased cell
// from emitting twice.
func harvest(acc *Accumulator, mg *merger, cfg Config, metrics *Metrics) {
	nRho, nTheta := acc.Dims()

	for t := 0; t < nTheta; t++ {
		for r := 0; r < nRho; r++ {
			c := acc.Cell(r, t)
			if c.Votes == 0 {
				continue
			}
			metrics.NumPossibleLines++

			if c.Votes < cfg.MinVotes || c.Recorded {
				continue
			}
			c.Recorded = true
			metrics.NumLinesWithMinVotes++

			mg.offer(c.EndpointA, c.EndpointB)
		}
	}
}

package detection

import (
	"image"
	"math"

	"github.com/dfdean/imageLib/internal/imaging"
)

// sweepVotes converts the edge map into accumulator votes.
//
// For each edge pixel inside bbox the local gradient angle is computed from
// the stored Sobel components — atan2 of the row-oriented gradient over the
// column-oriented gradient. At an edge pixel the gradient is aligned with
// the perpendicular line, so that angle is the center of the (rho, theta)
// band worth voting in. The full [-pi/2, pi/2) sweep a classic Hough
// transform performs is wasteful here: the gradient already narrows theta
// to within pixelation noise, and a band of ThetaSweep either side absorbs
// that noise at a fraction of the votes.
//
// rho uses x*cos(theta) - y*sin(theta): the sign of the y term matches a
// coordinate system with y growing downward. Deviating from it silently
// inverts theta.
//
// Nothing in the sweep is fatal. Rho and theta are clamped into range
// before the cell lookup, so boundary pixels vote on the nearest
// representable cell rather than being dropped.
func sweepVotes(m *imaging.LuminanceMap, acc *Accumulator, bbox image.Rectangle, cfg Config) {
	thetaMin := acc.ThetaMin()
	thetaMax := acc.ThetaMax()
	step := acc.ThetaStep()
	rhoMax := float64(acc.RhoMax())

	for y := bbox.Min.Y; y < bbox.Max.Y; y++ {
		for x := bbox.Min.X; x < bbox.Max.X; x++ {
			if !m.IsEdge(x, y) {
				continue
			}

			gx, gy := m.Gradient(x, y)
			thetaCenter := math.Atan2(float64(gy), float64(gx))

			// Lines are non-directional: fold into [-pi/2, pi/2).
			for thetaCenter >= math.Pi/2 {
				thetaCenter -= math.Pi
			}
			for thetaCenter < -math.Pi/2 {
				thetaCenter += math.Pi
			}
			thetaCenter = math.Round(thetaCenter/step) * step

			p := Point{X: x, Y: y}
			for theta := thetaCenter - cfg.ThetaSweep; theta <= thetaCenter+cfg.ThetaSweep+step/2; theta += step {
				th := theta
				if th < thetaMin {
					th = thetaMin
				} else if th >= thetaMax {
					th = thetaMax - step
				}

				rho := float64(x)*math.Cos(th) - float64(y)*math.Sin(th)
				if rho < -rhoMax {
					rho = -rhoMax
				} else if rho > rhoMax {
					rho = rhoMax
				}

				acc.CellAt(rho, th).vote(p)
			}
		}
	}
}

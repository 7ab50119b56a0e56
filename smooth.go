package scrollwork

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// smoothSettle is the spring's angular frequency times the lag. At t = lag
// about 4% of a jump remains.
const smoothSettle = 5.0

// progressSmoother eases applied progress toward the scroll-derived value
// with a critically damped spring.
type progressSmoother struct {
	spring  harmonica.Spring
	dt      float32
	lag     float32
	pos     float64
	vel     float64
	started bool
}

// step advances toward target and returns the progress to apply. A
// non-positive lag or snap follows target exactly; so does the first sample.
func (s *progressSmoother) step(target float64, dt, lag float32, snap bool) float64 {
	if lag <= 0 || snap || !s.started {
		s.started = true
		s.pos, s.vel = target, 0
		return target
	}
	if dt != s.dt || lag != s.lag {
		s.dt, s.lag = dt, lag
		s.spring = harmonica.NewSpring(float64(dt), smoothSettle/float64(lag), 1)
	}
	s.pos, s.vel = s.spring.Update(s.pos, s.vel, target)
	if math.Abs(target-s.pos) < 1e-4 && math.Abs(s.vel) < 1e-3 {
		s.pos, s.vel = target, 0
	}
	s.pos = clamp01(s.pos)
	return s.pos
}

package scatter

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/Faultbox/vertex-scatter/pkg/host"
	"github.com/Faultbox/vertex-scatter/pkg/math"
)

// NewSource returns a PCG source for the seed. A zero seed draws one.
func NewSource(seed uint64) rand.Source {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
}

// Jitter draws per-instance rotation and scale from uniform distributions.
type Jitter struct {
	rotate [3]distuv.Uniform
	scale  distuv.Uniform
}

// NewJitter builds the distributions for cfg. cfg should already be valid.
func NewJitter(cfg Config, src rand.Source) *Jitter {
	return &Jitter{
		rotate: [3]distuv.Uniform{
			{Min: cfg.MinRotate.X, Max: cfg.MaxRotate.X, Src: src},
			{Min: cfg.MinRotate.Y, Max: cfg.MaxRotate.Y, Src: src},
			{Min: cfg.MinRotate.Z, Max: cfg.MaxRotate.Z, Src: src},
		},
		scale: distuv.Uniform{Min: cfg.MinScale, Max: cfg.MaxScale, Src: src},
	}
}

// Rotation draws one XYZ rotation in degrees.
func (j *Jitter) Rotation() math.Vec3 {
	return math.Vec3{
		X: j.sample(j.rotate[0]),
		Y: j.sample(j.rotate[1]),
		Z: j.sample(j.rotate[2]),
	}
}

// Scale draws one uniform scale factor.
func (j *Jitter) Scale() float64 {
	return j.sample(j.scale)
}

// sample returns Min exactly for a collapsed range and never exceeds Max.
func (j *Jitter) sample(u distuv.Uniform) float64 {
	if u.Min == u.Max {
		return u.Min
	}
	return min(u.Rand(), u.Max)
}

// Apply draws a rotation and a scale and applies both to id as relative
// transforms. The rotation is applied before the scale.
func (j *Jitter) Apply(m host.Mutator, id host.ObjectID) (math.Vec3, float64, error) {
	rot := j.Rotation()
	scale := j.Scale()
	if err := m.RotateRelative(id, rot); err != nil {
		return rot, scale, err
	}
	if err := m.ScaleRelative(id, scale); err != nil {
		return rot, scale, err
	}
	return rot, scale, nil
}

package terrain

import (
	"math"
	"math/rand"
)

// gradients are the 12 cube edge centres used by improved Perlin noise.
var gradients = [12][3]float64{
	{1, 1, 0}, {-1, 1, 0}, {1, -1, 0}, {-1, -1, 0},
	{1, 0, 1}, {-1, 0, 1}, {1, 0, -1}, {-1, 0, -1},
	{0, 1, 1}, {0, -1, 1}, {0, 1, -1}, {0, -1, -1},
}

type permutation [512]int

func newPermutation(seed int64) *permutation {
	var p permutation
	rng := rand.New(rand.NewSource(seed))

	for i := 0; i < 256; i++ {
		p[i] = i
	}
	// Fisher-Yates
	for i := 255; i > 0; i-- {
		j := rng.Intn(i + 1)
		p[i], p[j] = p[j], p[i]
	}
	for i := 0; i < 256; i++ {
		p[256+i] = p[i]
	}
	return &p
}

// 6t^5 - 15t^4 + 10t^3
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}

func grad(hash int, x, y, z float64) float64 {
	g := gradients[hash%12]
	return g[0]*x + g[1]*y + g[2]*z
}

func (p *permutation) noise3D(x, y, z float64) float64 {
	X := int(math.Floor(x)) & 255
	Y := int(math.Floor(y)) & 255
	Z := int(math.Floor(z)) & 255

	x -= math.Floor(x)
	y -= math.Floor(y)
	z -= math.Floor(z)

	u := fade(x)
	v := fade(y)
	w := fade(z)

	A := p[X] + Y
	AA := p[A] + Z
	AB := p[A+1] + Z
	B := p[X+1] + Y
	BA := p[B] + Z
	BB := p[B+1] + Z

	return lerp(w,
		lerp(v,
			lerp(u, grad(p[AA], x, y, z), grad(p[BA], x-1, y, z)),
			lerp(u, grad(p[AB], x, y-1, z), grad(p[BB], x-1, y-1, z))),
		lerp(v,
			lerp(u, grad(p[AA+1], x, y, z-1), grad(p[BA+1], x-1, y, z-1)),
			lerp(u, grad(p[AB+1], x, y-1, z-1), grad(p[BB+1], x-1, y-1, z-1))))
}

// ImprovedNoise is Ken Perlin's 2002 noise summed over octaves. The z plane is
// offset from the lattice so integer world columns do not all sample zero.
type ImprovedNoise struct {
	Frequency   float64
	Octaves     int
	Persistence float64

	tables map[int64]*permutation
}

func NewImprovedNoise(frequency float64, octaves int, persistence float64) *ImprovedNoise {
	if octaves <= 0 {
		octaves = 1
	}
	return &ImprovedNoise{
		Frequency:   frequency,
		Octaves:     octaves,
		Persistence: persistence,
		tables:      make(map[int64]*permutation),
	}
}

const improvedPlane = 0.5

func (n *ImprovedNoise) Height(worldX, worldZ float64, seed int64) float64 {
	p, ok := n.tables[seed]
	if !ok {
		p = newPermutation(seed)
		n.tables[seed] = p
	}

	value := 0.0
	amplitude := 1.0
	frequency := n.Frequency
	total := 0.0
	for i := 0; i < n.Octaves; i++ {
		value += p.noise3D(worldX*frequency, worldZ*frequency, improvedPlane) * amplitude
		total += amplitude
		amplitude *= n.Persistence
		frequency *= 2
	}
	return clamp(value / total)
}

package generate

import (
	"math"

	"github.com/matzehuels/latgraph/pkg/errors"
	"github.com/matzehuels/latgraph/pkg/lattice"
)

// Nanotube returns a carbon nanotube of chirality (n, m), cells translational
// unit cells long, periodic along its axis. Every atom has three neighbours.
//
// The atoms of one unit cell are generated on the unrolled graphene sheet by
// repeatedly applying the symmetry vector R; atom 2i sits on lattice point
// i*R and atom 2i+1 is its partner one bond further. Each further cell is
// shifted by the translation vector T. In 3D the sheet is rolled up around
// the z axis; with opts.Dim 2 the unrolled sheet coordinates (distance
// around the circumference, distance along the axis) are returned instead.
//
// Bonds are found by comparing all atom pairs, so the cost is quadratic in
// the atom count.
func Nanotube(n, m, cells int, opts Options) (*lattice.Lattice, error) {
	o, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	if n < 1 || m < 0 || m > n {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nanotube chirality must satisfy n >= 1 and 0 <= m <= n, got (%d, %d)", n, m)
	}
	if cells < 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nanotube needs at least one unit cell, got %d", cells)
	}

	s := o.Spacing
	g := newTubeGeometry(n, m, s)
	if g.ch <= 2*s {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nanotube (%d, %d) is too thin: circumference %.3g is not more than two bonds", n, m, g.ch)
	}
	length := float64(cells) * g.t
	if length <= 2*s {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nanotube (%d, %d) with %d cell(s) is too short to close along its axis", n, m, cells)
	}
	r, err := g.symmetryVector()
	if err != nil {
		return nil, err
	}

	// Unrolled coordinates: psi around the circumference, tau along the axis.
	shift := scale(add(g.a1, g.a2), 1.0/3)
	var psi, tau []float64
	for c := 0; c < cells; c++ {
		for i := 0; i < g.hexagons; i++ {
			p := scale(r, float64(i))
			for _, q := range [2]vec2{p, add(p, shift)} {
				psi = append(psi, wrap(dot(q, g.uCh), g.ch))
				tau = append(tau, wrap(dot(q, g.uT), g.t)+float64(c)*g.t)
			}
		}
	}

	tol := 1e-6 * s
	b := builder{dim: o.Dim}
	radius := g.ch / (2 * math.Pi)
	for i := range psi {
		if o.Dim == 2 {
			b.vertex(psi[i], tau[i])
		} else {
			theta := psi[i] / radius
			b.vertex3(radius*math.Cos(theta), radius*math.Sin(theta), tau[i])
		}
		for j := i + 1; j < len(psi); j++ {
			dp := nearestImage(psi[j]-psi[i], g.ch)
			dt := nearestImage(tau[j]-tau[i], length)
			d := math.Hypot(dp, dt)
			if d < tol {
				return nil, errors.New(errors.ErrCodeInternal, "nanotube (%d, %d): atoms %d and %d coincide", n, m, i, j)
			}
			if math.Abs(d-s) < tol {
				b.edge(i, j)
			}
		}
	}
	return b.build(o)
}

type vec2 [2]float64

func add(a, b vec2) vec2           { return vec2{a[0] + b[0], a[1] + b[1]} }
func scale(a vec2, k float64) vec2 { return vec2{a[0] * k, a[1] * k} }
func dot(a, b vec2) float64        { return a[0]*b[0] + a[1]*b[1] }
func norm(a vec2) float64          { return math.Hypot(a[0], a[1]) }

// wrap maps x into [0, period).
func wrap(x, period float64) float64 {
	x = math.Mod(x, period)
	if x < 0 {
		x += period
	}
	return x
}

// nearestImage maps a periodic difference into [-period/2, period/2).
func nearestImage(d, period float64) float64 {
	return wrap(d+period/2, period) - period/2
}

// tubeGeometry holds the graphene lattice vectors of a (n, m) tube: a1 and
// a2 span the sheet, Ch wraps the circumference and T is the shortest
// lattice vector along the axis.
type tubeGeometry struct {
	a1, a2   vec2
	ch, t    float64 // |Ch| and |T|
	uCh, uT  vec2    // unit vectors along Ch and T
	t1, t2   int     // T in the a1, a2 basis
	hexagons int     // hexagons (lattice points) per unit cell
}

func newTubeGeometry(n, m int, s float64) tubeGeometry {
	h := math.Sqrt(3) / 2
	g := tubeGeometry{
		a1: vec2{1.5 * s, h * s},
		a2: vec2{1.5 * s, -h * s},
	}
	dR := gcd(2*m+n, 2*n+m)
	g.t1 = (2*m + n) / dR
	g.t2 = -(2*n + m) / dR
	g.hexagons = 2 * (m*m + n*n + m*n) / dR

	chv := add(scale(g.a1, float64(n)), scale(g.a2, float64(m)))
	tv := add(scale(g.a1, float64(g.t1)), scale(g.a2, float64(g.t2)))
	g.ch, g.t = norm(chv), norm(tv)
	g.uCh, g.uT = scale(chv, 1/g.ch), scale(tv, 1/g.t)
	return g
}

// symmetryVector returns R = p*a1 + q*a2 for the smallest p >= 1 with
// t1*q - t2*p = 1.
func (g tubeGeometry) symmetryVector() (vec2, error) {
	for p := 1; p <= 2*g.hexagons; p++ {
		num := 1 + p*g.t2
		if num%g.t1 != 0 {
			continue
		}
		q := num / g.t1
		return add(scale(g.a1, float64(p)), scale(g.a2, float64(q))), nil
	}
	return vec2{}, errors.New(errors.ErrCodeInternal, "no symmetry vector for T = (%d, %d)", g.t1, g.t2)
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

package measure

import (
	"math"
	"math/rand"
)

type point struct {
	x, y float64
}

type circle struct {
	center point
	radius float64
}

func (c circle) contains(p point) bool {
	dx := p.x - c.center.x
	dy := p.y - c.center.y
	return math.Sqrt(dx*dx+dy*dy) <= c.radius+1e-9
}

func circleFrom2(a, b point) circle {
	center := point{(a.x + b.x) / 2, (a.y + b.y) / 2}
	dx := a.x - b.x
	dy := a.y - b.y
	return circle{center, math.Sqrt(dx*dx+dy*dy) / 2}
}

// circleFrom3 returns the circumcircle of three points, falling back to a
// two-point circle when they are collinear.
func circleFrom3(a, b, c point) circle {
	bx, by := b.x-a.x, b.y-a.y
	cx, cy := c.x-a.x, c.y-a.y
	d := 2 * (bx*cy - by*cx)
	if math.Abs(d) < 1e-12 {
		out := circleFrom2(a, b)
		if alt := circleFrom2(a, c); alt.radius > out.radius {
			out = alt
		}
		if alt := circleFrom2(b, c); alt.radius > out.radius {
			out = alt
		}
		return out
	}

	ux := (cy*(bx*bx+by*by) - by*(cx*cx+cy*cy)) / d
	uy := (bx*(cx*cx+cy*cy) - cx*(bx*bx+by*by)) / d
	center := point{a.x + ux, a.y + uy}
	return circle{center, math.Sqrt(ux*ux + uy*uy)}
}

func trivialCircle(boundary []point) circle {
	switch len(boundary) {
	case 1:
		return circle{boundary[0], 0}
	case 2:
		return circleFrom2(boundary[0], boundary[1])
	case 3:
		return circleFrom3(boundary[0], boundary[1], boundary[2])
	}
	return circle{}
}

func welzl(points, boundary []point) circle {
	if len(points) == 0 || len(boundary) == 3 {
		return trivialCircle(boundary)
	}

	p := points[len(points)-1]
	c := welzl(points[:len(points)-1], boundary)
	if c.contains(p) {
		return c
	}
	return welzl(points[:len(points)-1], append(boundary, p))
}

// enclosingCircle computes the minimum enclosing circle with Welzl's
// algorithm. The input is shuffled with a fixed seed so the recursion depth
// stays small on structured point sets.
func enclosingCircle(points []point) circle {
	shuffled := make([]point, len(points))
	copy(shuffled, points)
	rng := rand.New(rand.NewSource(1))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return welzl(shuffled, make([]point, 0, 3))
}

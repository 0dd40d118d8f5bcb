package brackets

// circle is the classic round-robin rotation over n vertices. Vertex n-1 is
// fixed; the remaining vertices sit on a ring that turns one step per factor.
// n must be even; callers pad odd counts with a phantom vertex.
type circle struct {
	n int
}

func newCircle(vertices int) circle {
	if vertices%2 == 1 {
		vertices++
	}
	return circle{n: vertices}
}

// length is the number of distinct perfect matchings the rotation yields.
func (c circle) length() int {
	return c.n - 1
}

func (c circle) fixed() int {
	return c.n - 1
}

// factor returns the f-th perfect matching. The pair holding the fixed
// vertex comes first, then pairs ordered outward from it.
func (c circle) factor(f int) [][2]int {
	m := c.length()
	f = ((f % m) + m) % m
	pairs := make([][2]int, 0, c.n/2)
	pairs = append(pairs, [2]int{c.fixed(), f})
	for k := 1; k <= (m-1)/2; k++ {
		pairs = append(pairs, [2]int{(f + k) % m, (f - k + m) % m})
	}
	return pairs
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

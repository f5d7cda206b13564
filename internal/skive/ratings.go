package skive

import "fmt"

// Ratings is an immutable path → score map that remembers insertion order.
// Set returns a new value; the receiver and anything sharing it never change.
type Ratings struct {
	order  []Path
	scores map[Path]int
}

// NewRatings returns an empty Ratings.
func NewRatings() Ratings {
	return Ratings{scores: map[Path]int{}}
}

// Get returns the score at p.
func (r Ratings) Get(p Path) (int, bool) {
	v, ok := r.scores[p]
	return v, ok
}

// Set returns a copy of r with p set to score.
func (r Ratings) Set(p Path, score int) (Ratings, error) {
	if _, err := ParsePath(string(p)); err != nil {
		return r, err
	}
	if score < MinScore || score > MaxScore {
		return r, fmt.Errorf("%s=%d: %w", p, score, ErrScoreRange)
	}

	next := Ratings{
		order:  r.order,
		scores: make(map[Path]int, len(r.scores)+1),
	}
	for k, v := range r.scores {
		next.scores[k] = v
	}
	if _, ok := r.scores[p]; !ok {
		// Full-slice expression forces append to copy.
		next.order = append(r.order[:len(r.order):len(r.order)], p)
	}
	next.scores[p] = score
	return next, nil
}

// Len returns the number of leaves.
func (r Ratings) Len() int {
	return len(r.order)
}

// Paths returns every leaf path in insertion order.
func (r Ratings) Paths() []Path {
	out := make([]Path, len(r.order))
	copy(out, r.order)
	return out
}

// DomainPaths returns the leaves under d in insertion order.
func (r Ratings) DomainPaths(d Domain) []Path {
	var out []Path
	for _, p := range r.order {
		if p.Domain() == d {
			out = append(out, p)
		}
	}
	return out
}

// Backfill returns ratings holding every leaf of seed. Seed order comes
// first, using r's score where present, followed by leaves only r has.
func (r Ratings) Backfill(seed Ratings) Ratings {
	out := Ratings{scores: make(map[Path]int, seed.Len()+r.Len())}
	for _, p := range seed.order {
		v, ok := r.scores[p]
		if !ok {
			v = seed.scores[p]
		}
		out.order = append(out.order, p)
		out.scores[p] = v
	}
	for _, p := range r.order {
		if _, ok := out.scores[p]; ok {
			continue
		}
		out.order = append(out.order, p)
		out.scores[p] = r.scores[p]
	}
	return out
}

// Equal reports whether both hold the same leaves and scores.
func (r Ratings) Equal(o Ratings) bool {
	if len(r.scores) != len(o.scores) {
		return false
	}
	for k, v := range r.scores {
		if ov, ok := o.scores[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// Clamp bounds v to the valid score range.
func Clamp(v int) int {
	if v < MinScore {
		return MinScore
	}
	if v > MaxScore {
		return MaxScore
	}
	return v
}

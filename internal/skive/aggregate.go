package skive

import (
	"math"
	"sort"
)

// Point is one radar-chart sample.
type Point struct {
	Key   string
	Label string
	Value int
}

// Series is an ordered set of points.
type Series []Point

// DomainAverage returns the rounded mean of every leaf under d across all
// of its sub-categories, or 0 when d has no leaves.
func DomainAverage(r Ratings, d Domain) int {
	sum, n := 0, 0
	for _, p := range r.order {
		if p.Domain() == d {
			sum += r.scores[p]
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(n)))
}

// Summary returns one point per domain in display order.
func Summary(r Ratings) Series {
	out := make(Series, 0, len(AllDomains))
	for _, d := range AllDomains {
		out = append(out, Point{
			Key:   string(d),
			Label: d.DisplayName(),
			Value: DomainAverage(r, d),
		})
	}
	return out
}

// LeafSeries returns one point per leaf of d in insertion order.
func LeafSeries(r Ratings, d Domain) Series {
	var out Series
	for _, p := range r.DomainPaths(d) {
		out = append(out, Point{
			Key:   string(p),
			Label: Title(p.Leaf()),
			Value: r.scores[p],
		})
	}
	return out
}

// Group is a set of leaves sharing a parent: a sub-category of a nested
// domain, or a whole flat domain.
type Group struct {
	Key   string
	Label string
	Paths []Path
}

// Groups partitions the leaves of r by parent, in insertion order.
func Groups(r Ratings) []Group {
	var out []Group
	index := make(map[string]int)
	for _, p := range r.order {
		k := p.Group()
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, Group{Key: k, Label: Title(k)})
		}
		out[i].Paths = append(out[i].Paths, p)
	}
	return out
}

// Tier buckets a score.
type Tier string

const (
	TierLow    Tier = "Low"
	TierMedium Tier = "Medium"
	TierHigh   Tier = "High"
)

// TierOf returns Low for 1-3, Medium for 4-7 and High for 8-10.
func TierOf(score int) Tier {
	switch {
	case score >= 8:
		return TierHigh
	case score >= 4:
		return TierMedium
	default:
		return TierLow
	}
}

// Archetype is the locally derived competency breakdown of a rating set.
type Archetype struct {
	Name         string
	Signature    Series
	Supporting   Series
	Foundational Series
}

// DeriveArchetype ranks every leaf by score. The top three are the
// signature, later leaves scoring High are supporting, and leaves scoring
// Medium are foundational.
func DeriveArchetype(r Ratings) Archetype {
	all := make(Series, 0, r.Len())
	for _, p := range r.order {
		all = append(all, Point{Key: string(p), Label: Title(p.Leaf()), Value: r.scores[p]})
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Value > all[j].Value })

	var a Archetype
	for i, pt := range all {
		switch {
		case i < 3:
			a.Signature = append(a.Signature, pt)
		case TierOf(pt.Value) == TierHigh:
			a.Supporting = append(a.Supporting, pt)
		}
		if TierOf(pt.Value) == TierMedium {
			a.Foundational = append(a.Foundational, pt)
		}
	}
	for i, pt := range a.Signature {
		if i > 0 {
			a.Name += " "
		}
		a.Name += pt.Label
	}
	return a
}

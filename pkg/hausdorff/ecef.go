package hausdorff

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/spatial/kdtree"

	"github.com/azybler/geodist/pkg/geo"
)

func project(points []tagged[geo.Point3D], e geo.Ellipsoid) []tagged[r3.Vector] {
	out := make([]tagged[r3.Vector], len(points))
	for i, p := range points {
		out[i] = tagged[r3.Vector]{value: geo.ToECEFUnchecked(p.value, e), index: p.index}
	}
	return out
}

func directed3D(origins, candidates []tagged[r3.Vector]) (DirectedWitness, error) {
	if ChooseStrategy(len(origins), len(candidates)) == Indexed {
		return indexedDirected3D(origins, candidates)
	}
	return naiveDirected3D(origins, candidates)
}

func naiveDirected3D(origins, candidates []tagged[r3.Vector]) (DirectedWitness, error) {
	far := newFarthest()
	for _, o := range origins {
		best, bestIdx := math.Inf(1), -1
		for _, c := range candidates {
			if d := o.value.Sub(c.value).Norm(); d < best {
				best, bestIdx = d, c.index
			}
		}
		far.offer(best, o.index, bestIdx)
	}
	return far.witness()
}

func indexedDirected3D(origins, candidates []tagged[r3.Vector]) (DirectedWitness, error) {
	nodes := make(ecefPoints, len(candidates))
	for i, c := range candidates {
		nodes[i] = ecefPoint{v: c.value, index: c.index}
	}
	// New reorders nodes in place; nodes is a private copy.
	tree := kdtree.New(nodes, false)

	far := newFarthest()
	for _, o := range origins {
		q := ecefPoint{v: o.value, index: -1}
		nearest, d2 := tree.Nearest(q)
		bestIdx := nearest.(ecefPoint).index

		keep := kdtree.NewDistKeeper(d2)
		tree.NearestSet(keep, q)
		for _, cd := range keep.Heap {
			if cd.Comparable == nil {
				continue
			}
			if idx := cd.Comparable.(ecefPoint).index; cd.Dist == d2 && idx < bestIdx {
				bestIdx = idx
			}
		}
		far.offer(math.Sqrt(d2), o.index, bestIdx)
	}
	return far.witness()
}

// ecefPoint is a kdtree.Comparable over ECEF meters. Distance is squared
// Euclidean, as the kdtree pruning rule requires.
type ecefPoint struct {
	v     r3.Vector
	index int
}

func (p ecefPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(ecefPoint)
	return coord(p.v, d) - coord(q.v, d)
}

func (p ecefPoint) Dims() int { return 3 }

func (p ecefPoint) Distance(c kdtree.Comparable) float64 {
	q := c.(ecefPoint)
	return p.v.Sub(q.v).Norm2()
}

func coord(v r3.Vector, d kdtree.Dim) float64 {
	switch d {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

type ecefPoints []ecefPoint

func (p ecefPoints) Index(i int) kdtree.Comparable { return p[i] }
func (p ecefPoints) Len() int                      { return len(p) }
func (p ecefPoints) Pivot(d kdtree.Dim) int        { return ecefPlane{points: p, dim: d}.Pivot() }
func (p ecefPoints) Slice(start, end int) kdtree.Interface {
	return p[start:end]
}

type ecefPlane struct {
	points ecefPoints
	dim    kdtree.Dim
}

func (p ecefPlane) Less(i, j int) bool {
	return coord(p.points[i].v, p.dim) < coord(p.points[j].v, p.dim)
}
func (p ecefPlane) Pivot() int    { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }
func (p ecefPlane) Len() int      { return len(p.points) }
func (p ecefPlane) Swap(i, j int) { p.points[i], p.points[j] = p.points[j], p.points[i] }
func (p ecefPlane) Slice(start, end int) kdtree.SortSlicer {
	p.points = p.points[start:end]
	return p
}

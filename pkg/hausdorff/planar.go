package hausdorff

import (
	"math"

	"github.com/tidwall/rtree"

	"github.com/azybler/geodist/pkg/geo"
)

// RectBounder is implemented by algorithms that can bound their distance from
// a point to any point of a lat/lon rectangle from below. The indexed
// strategy uses it to visit index nodes in a useful order; algorithms without
// it still get exact results, the index just prunes nothing.
type RectBounder interface {
	LowerBoundToRect(p geo.Point, minLat, minLon, maxLat, maxLon float64) float64
}

func directed2D(alg geo.Algorithm, origins, candidates []tagged[geo.Point]) (DirectedWitness, error) {
	if ChooseStrategy(len(origins), len(candidates)) == Indexed {
		return indexedDirected2D(alg, origins, candidates)
	}
	return naiveDirected2D(alg, origins, candidates)
}

func naiveDirected2D(alg geo.Algorithm, origins, candidates []tagged[geo.Point]) (DirectedWitness, error) {
	far := newFarthest()
	for _, o := range origins {
		best, bestIdx := math.Inf(1), -1
		for _, c := range candidates {
			d, err := alg.Distance(o.value, c.value)
			if err != nil {
				return DirectedWitness{}, err
			}
			if d.Meters() < best {
				best, bestIdx = d.Meters(), c.index
			}
		}
		far.offer(best, o.index, bestIdx)
	}
	return far.witness()
}

// indexedDirected2D answers one nearest-neighbour query per origin against an
// R-tree of the candidates. Envelopes are raw [lon, lat] pairs and only drive
// partitioning; items are ranked by alg itself so the result matches the
// naive scan.
func indexedDirected2D(alg geo.Algorithm, origins, candidates []tagged[geo.Point]) (DirectedWitness, error) {
	var tr rtree.RTreeG[int]
	for i, c := range candidates {
		pt := [2]float64{c.value.Lon, c.value.Lat}
		tr.Insert(pt, pt, i)
	}
	bounder, _ := alg.(RectBounder)

	far := newFarthest()
	for _, o := range origins {
		var queryErr error
		best, bestIdx := math.Inf(1), -1

		tr.Nearby(
			func(min, max [2]float64, i int, item bool) float64 {
				if !item {
					if bounder == nil {
						return 0
					}
					return bounder.LowerBoundToRect(o.value, min[1], min[0], max[1], max[0])
				}
				d, err := alg.Distance(o.value, candidates[i].value)
				if err != nil {
					if queryErr == nil {
						queryErr = err
					}
					return math.Inf(1)
				}
				return d.Meters()
			},
			func(_, _ [2]float64, i int, dist float64) bool {
				if queryErr != nil || dist > best {
					return false
				}
				// Items arrive in ascending distance; keep draining exact
				// ties so the lowest caller index wins, as in the naive scan.
				if idx := candidates[i].index; dist < best || idx < bestIdx {
					best, bestIdx = dist, idx
				}
				return true
			},
		)
		if queryErr != nil {
			return DirectedWitness{}, queryErr
		}
		far.offer(best, o.index, bestIdx)
	}
	return far.witness()
}

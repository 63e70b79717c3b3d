// Package densify resamples polylines along great-circle arcs so that
// consecutive samples respect a maximum spacing, within a hard cap on the
// number of emitted samples.
//
// Densification runs in two passes. The first validates every part and counts
// the samples it will emit; the cap is checked against that count before
// anything is allocated. The second pass interpolates.
package densify

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"

	"github.com/azybler/geodist/pkg/geo"
)

// maxSplits bounds the split count of one segment so that sums stay finite.
const maxSplits = math.MaxInt32

type segment struct {
	start, end geo.Point
	angle      s1.Angle
	splits     int
}

// plan is the counting-pass result for one part.
type plan struct {
	first    geo.Point
	segments []segment
	samples  int
}

// Polyline densifies a single polyline.
func Polyline(vertices []geo.Point, opts Options) ([]geo.Point, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	p, err := planPart(vertices, NoPart, opts)
	if err != nil {
		return nil, err
	}
	if p.samples > opts.SampleCap {
		return nil, &SampleCapError{Expected: p.samples, Cap: opts.SampleCap, Part: NoPart}
	}
	return p.emit(make([]geo.Point, 0, p.samples)), nil
}

// Multiline densifies every part and concatenates the samples. Part i of the
// result spans Offsets()[i]..Offsets()[i+1].
func Multiline(parts [][]geo.Point, opts Options) (FlattenedPolyline, error) {
	if err := opts.Validate(); err != nil {
		return FlattenedPolyline{}, err
	}

	plans := make([]plan, len(parts))
	total := 0
	for i, part := range parts {
		p, err := planPart(part, i, opts)
		if err != nil {
			return FlattenedPolyline{}, err
		}
		total = saturatingAdd(total, p.samples)
		if total > opts.SampleCap {
			return FlattenedPolyline{}, &SampleCapError{Expected: total, Cap: opts.SampleCap, Part: i}
		}
		plans[i] = p
	}

	samples := make([]geo.Point, 0, total)
	offsets := make([]int, 1, len(parts)+1)
	for _, p := range plans {
		samples = p.emit(samples)
		offsets = append(offsets, len(samples))
	}
	return FlattenedPolyline{samples: samples, offsets: offsets}, nil
}

func planPart(vertices []geo.Point, part int, opts Options) (plan, error) {
	for i, v := range vertices {
		if err := v.Validate(); err != nil {
			return plan{}, &VertexError{Part: part, Vertex: i, Err: err}
		}
	}

	deduped := collapseDuplicates(vertices)
	if len(deduped) < 2 {
		return plan{}, &DegeneratePolylineError{Part: part}
	}

	p := plan{first: deduped[0], samples: 1}
	for i := 1; i < len(deduped); i++ {
		start, end := deduped[i-1], deduped[i]
		d, err := geo.Spherical{}.Distance(start, end)
		if err != nil {
			return plan{}, err
		}
		if d.Meters() == 0 {
			continue
		}
		splits := splitCount(d.Meters(), opts)
		p.segments = append(p.segments, segment{
			start:  start,
			end:    end,
			angle:  s1.Angle(d.Meters() / geo.EarthRadiusMeters),
			splits: splits,
		})
		p.samples = saturatingAdd(p.samples, splits)
	}
	return p, nil
}

// collapseDuplicates drops vertices equal to their predecessor.
func collapseDuplicates(vertices []geo.Point) []geo.Point {
	out := make([]geo.Point, 0, len(vertices))
	for _, v := range vertices {
		if n := len(out); n > 0 && out[n-1] == v {
			continue
		}
		out = append(out, v)
	}
	return out
}

// splitCount is the number of sub-segments one segment needs so that each
// satisfies every active knob.
func splitCount(meters float64, opts Options) int {
	n := 1.0
	if opts.hasLength() {
		n = math.Max(n, math.Ceil(meters/opts.MaxSegmentLengthMeters))
	}
	if opts.hasAngle() {
		deg := s1.Angle(meters / geo.EarthRadiusMeters).Degrees()
		n = math.Max(n, math.Ceil(deg/opts.MaxSegmentAngleDegrees))
	}
	if n >= maxSplits {
		return maxSplits
	}
	return int(n)
}

// emit appends the first vertex and every interpolated sample. A part whose
// segments all had zero length emits its first vertex only.
func (p plan) emit(out []geo.Point) []geo.Point {
	out = append(out, p.first)
	for _, s := range p.segments {
		out = appendSlerp(out, s)
	}
	return out
}

// appendSlerp appends the points at fractions 1/n..n/n of the great-circle
// arc from s.start to s.end.
func appendSlerp(out []geo.Point, s segment) []geo.Point {
	θ := s.angle.Radians()
	sinθ := math.Sin(θ)
	if sinθ == 0 {
		return append(out, s.end)
	}

	a := s2.PointFromLatLng(s2.LatLngFromDegrees(s.start.Lat, s.start.Lon))
	b := s2.PointFromLatLng(s2.LatLngFromDegrees(s.end.Lat, s.end.Lon))

	for step := 1; step <= s.splits; step++ {
		f := float64(step) / float64(s.splits)
		w0 := math.Sin((1-f)*θ) / sinθ
		w1 := math.Sin(f*θ) / sinθ
		v := a.Mul(w0).Add(b.Mul(w1))
		ll := s2.LatLngFromPoint(s2.Point{Vector: v})
		out = append(out, geo.NewPointUnchecked(ll.Lat.Degrees(), ll.Lng.Degrees()))
	}
	return out
}

func saturatingAdd(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

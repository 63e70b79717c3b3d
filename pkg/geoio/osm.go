package geoio

import (
	"context"
	"io"
	"log/slog"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"

	"github.com/azybler/geodist/pkg/geo"
)

// Way is an OSM way resolved to coordinates.
type Way struct {
	ID     osm.WayID   `json:"id"`
	Points []geo.Point `json:"points"`
}

// OSMOptions selects which ways ReadOSMWays returns. Zero values disable the
// corresponding filter.
type OSMOptions struct {
	WayIDs    []osm.WayID      // keep only these ways
	TagKey    string           // keep ways carrying this tag
	TagValues []string         // with TagKey: keep only these values
	BBox      *geo.BoundingBox // drop ways with any vertex outside
}

func (o OSMOptions) matches(id osm.WayID, tags osm.Tags) bool {
	if len(o.WayIDs) > 0 && !slices.Contains(o.WayIDs, id) {
		return false
	}
	if o.TagKey == "" {
		return true
	}
	if !tags.HasTag(o.TagKey) {
		return false
	}
	return len(o.TagValues) == 0 || slices.Contains(o.TagValues, tags.Find(o.TagKey))
}

// wayInfo holds way data collected during pass 1.
type wayInfo struct {
	ID      osm.WayID
	NodeIDs []osm.NodeID
}

// ReadOSMWays reads an OSM PBF extract and returns the matching ways with
// their node coordinates. The reader is consumed twice (seeks back to start
// for the second pass), so it must implement io.ReadSeeker.
func ReadOSMWays(ctx context.Context, rs io.ReadSeeker, opts OSMOptions) ([]Way, error) {
	if opts.BBox != nil {
		if err := opts.BBox.Validate(); err != nil {
			return nil, err
		}
	}

	// Pass 1: scan ways to collect referenced node IDs.
	referencedNodes := make(map[osm.NodeID]struct{})
	var ways []wayInfo

	scanner := osmpbf.New(ctx, rs, 1)
	scanner.SkipNodes = true
	scanner.SkipRelations = true

	for scanner.Scan() {
		w, ok := scanner.Object().(*osm.Way)
		if !ok {
			continue
		}
		if len(w.Nodes) == 0 || !opts.matches(w.ID, w.Tags) {
			continue
		}

		nodeIDs := make([]osm.NodeID, len(w.Nodes))
		for i, wn := range w.Nodes {
			nodeIDs[i] = wn.ID
			referencedNodes[wn.ID] = struct{}{}
		}
		ways = append(ways, wayInfo{ID: w.ID, NodeIDs: nodeIDs})
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, errors.Wrap(err, "pass 1 (ways)")
	}
	scanner.Close()

	slog.Info("osm pass 1 complete", "ways", len(ways), "referenced_nodes", len(referencedNodes))

	// Pass 2: scan nodes to collect coordinates for referenced nodes only.
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "seek for pass 2")
	}

	coords := make(map[osm.NodeID]geo.Point, len(referencedNodes))

	scanner = osmpbf.New(ctx, rs, 1)
	scanner.SkipWays = true
	scanner.SkipRelations = true

	for scanner.Scan() {
		n, ok := scanner.Object().(*osm.Node)
		if !ok {
			continue
		}
		if _, needed := referencedNodes[n.ID]; !needed {
			continue
		}
		p, err := geo.NewPoint(n.Lat, n.Lon)
		if err != nil {
			scanner.Close()
			return nil, errors.Wrapf(err, "node %d", n.ID)
		}
		coords[n.ID] = p
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, errors.Wrap(err, "pass 2 (nodes)")
	}
	scanner.Close()

	slog.Info("osm pass 2 complete", "node_coordinates", len(coords))

	return assembleWays(ways, coords, opts.BBox), nil
}

// assembleWays resolves node references. Ways with a missing node are
// skipped, as are ways leaving bbox when it is set.
func assembleWays(ways []wayInfo, coords map[osm.NodeID]geo.Point, bbox *geo.BoundingBox) []Way {
	out := make([]Way, 0, len(ways))
	var missing, filtered int

	for _, w := range ways {
		points := make([]geo.Point, 0, len(w.NodeIDs))
		complete, inside := true, true
		for _, id := range w.NodeIDs {
			p, ok := coords[id]
			if !ok {
				complete = false
				break
			}
			if bbox != nil && !bbox.Contains(p) {
				inside = false
				break
			}
			points = append(points, p)
		}
		switch {
		case !complete:
			missing++
		case !inside:
			filtered++
		default:
			out = append(out, Way{ID: w.ID, Points: points})
		}
	}

	if missing > 0 {
		slog.Warn("skipped ways with missing node coordinates", "ways", missing)
	}
	if filtered > 0 {
		slog.Info("filtered ways outside bounding box", "ways", filtered)
	}
	slog.Info("resolved osm ways", "ways", len(out))
	return out
}

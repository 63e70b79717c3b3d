package api

import (
	"github.com/azybler/geodist/pkg/boundary"
	"github.com/azybler/geodist/pkg/densify"
	"github.com/azybler/geodist/pkg/geo"
	"github.com/azybler/geodist/pkg/hausdorff"
)

// GeodesicRequest is the JSON body for POST /api/v1/geodesic. At most one of
// RadiusMeters and Ellipsoid may be set; neither means the mean earth radius.
type GeodesicRequest struct {
	From         geo.Point      `json:"from"`
	To           geo.Point      `json:"to"`
	RadiusMeters *float64       `json:"radius_m,omitempty"`
	Ellipsoid    *geo.Ellipsoid `json:"ellipsoid,omitempty"`
}

// GeodesicResponse is the JSON response for POST /api/v1/geodesic.
type GeodesicResponse struct {
	geo.GeodesicSolution
	RadiusMeters float64 `json:"radius_m"`
}

// Distance3DRequest is the JSON body for POST /api/v1/distance3d.
type Distance3DRequest struct {
	From      geo.Point3D    `json:"from"`
	To        geo.Point3D    `json:"to"`
	Ellipsoid *geo.Ellipsoid `json:"ellipsoid,omitempty"`
}

// Distance3DResponse is the JSON response for POST /api/v1/distance3d.
type Distance3DResponse struct {
	Distance geo.Distance `json:"distance_m"`
}

// HausdorffRequest is the JSON body for POST /api/v1/hausdorff. Either A and
// B (surface points) or A3D and B3D (points with altitude) are set.
type HausdorffRequest struct {
	A         []geo.Point      `json:"a,omitempty"`
	B         []geo.Point      `json:"b,omitempty"`
	A3D       []geo.Point3D    `json:"a3d,omitempty"`
	B3D       []geo.Point3D    `json:"b3d,omitempty"`
	Directed  bool             `json:"directed,omitempty"`
	BBox      *geo.BoundingBox `json:"bbox,omitempty"`
	Ellipsoid *geo.Ellipsoid   `json:"ellipsoid,omitempty"`
}

// HausdorffResponse is the JSON response for POST /api/v1/hausdorff. Reverse
// is omitted for directed queries.
type HausdorffResponse struct {
	Dimension  string                     `json:"dimension"`
	Distance   geo.Distance               `json:"distance_m"`
	Forward    hausdorff.DirectedWitness  `json:"forward"`
	Reverse    *hausdorff.DirectedWitness `json:"reverse,omitempty"`
	Strategies StrategiesJSON             `json:"strategies"`
}

// StrategiesJSON reports the nearest-neighbour strategy used per direction.
type StrategiesJSON struct {
	Forward string `json:"forward"`
	Reverse string `json:"reverse,omitempty"`
}

// DensifyRequest is the JSON body for POST /api/v1/densify. Options default
// to the server configuration; the sample cap never exceeds the configured
// one.
type DensifyRequest struct {
	Parts   [][]geo.Point    `json:"parts"`
	Options *densify.Options `json:"options,omitempty"`
	BBox    *geo.BoundingBox `json:"bbox,omitempty"`
}

// DensifyResponse is the JSON response for POST /api/v1/densify.
type DensifyResponse struct {
	NumParts  int         `json:"num_parts"`
	Offsets   []int       `json:"offsets"`
	Samples   []geo.Point `json:"samples"`
	Polylines []string    `json:"polylines"`
}

// BoundaryRequest is the JSON body for POST /api/v1/boundary.
type BoundaryRequest struct {
	A        boundary.Polygon `json:"a"`
	B        boundary.Polygon `json:"b"`
	Directed bool             `json:"directed,omitempty"`
	Options  *densify.Options `json:"options,omitempty"`
}

// BoundaryResponse is the JSON response for POST /api/v1/boundary.
type BoundaryResponse struct {
	Distance geo.Distance              `json:"distance_m"`
	AToB     boundary.DirectedWitness  `json:"a_to_b"`
	BToA     *boundary.DirectedWitness `json:"b_to_a,omitempty"`
}

// ErrorResponse is the JSON response for errors.
type ErrorResponse struct {
	Error   string         `json:"error"`
	Code    string         `json:"code"`
	Details map[string]any `json:"details,omitempty"`
}

// HealthResponse is the JSON response for GET /api/v1/health.
type HealthResponse struct {
	Status string `json:"status"`
}

package api

import (
	"encoding/json"
	"mime"
	"net/http"

	"github.com/cockroachdb/errors"

	"github.com/azybler/geodist/pkg/boundary"
	"github.com/azybler/geodist/pkg/densify"
	"github.com/azybler/geodist/pkg/geo"
	"github.com/azybler/geodist/pkg/geoio"
	"github.com/azybler/geodist/pkg/hausdorff"
)

// HandlerConfig holds request limits and computation defaults.
type HandlerConfig struct {
	MaxBodyBytes int64
	MaxPoints    int
	Densify      densify.Options
	Ellipsoid    geo.Ellipsoid
}

// DefaultHandlerConfig returns the limits used when no configuration is given.
func DefaultHandlerConfig() HandlerConfig {
	return HandlerConfig{
		MaxBodyBytes: 1 << 20,
		MaxPoints:    100_000,
		Densify:      densify.DefaultOptions(),
		Ellipsoid:    geo.WGS84(),
	}
}

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	cfg HandlerConfig
}

// NewHandlers creates handlers with the given limits.
func NewHandlers(cfg HandlerConfig) *Handlers {
	return &Handlers{cfg: cfg}
}

// HandleGeodesic handles POST /api/v1/geodesic.
func (h *Handlers) HandleGeodesic(w http.ResponseWriter, r *http.Request) {
	var req GeodesicRequest
	if err := h.decode(w, r, &req); err != nil {
		writeDomainError(w, err)
		return
	}

	var (
		sol    geo.GeodesicSolution
		radius = geo.EarthRadiusMeters
		err    error
	)
	switch {
	case req.RadiusMeters != nil && req.Ellipsoid != nil:
		writeDomainError(w, badRequest("invalid_request", "set radius_m or ellipsoid, not both"))
		return
	case req.RadiusMeters != nil:
		radius = *req.RadiusMeters
		sol, err = geo.GeodesicWithBearingsOnRadius(radius, req.From, req.To)
	case req.Ellipsoid != nil:
		sol, err = geo.GeodesicWithBearingsOnEllipsoid(*req.Ellipsoid, req.From, req.To)
		if err == nil {
			radius, err = req.Ellipsoid.MeanRadius()
		}
	default:
		sol, err = geo.GeodesicWithBearings(req.From, req.To)
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, GeodesicResponse{GeodesicSolution: sol, RadiusMeters: radius})
}

// HandleDistance3D handles POST /api/v1/distance3d.
func (h *Handlers) HandleDistance3D(w http.ResponseWriter, r *http.Request) {
	var req Distance3DRequest
	if err := h.decode(w, r, &req); err != nil {
		writeDomainError(w, err)
		return
	}

	e := h.cfg.Ellipsoid
	if req.Ellipsoid != nil {
		e = *req.Ellipsoid
	}
	d, err := geo.GeodesicDistance3DOnEllipsoid(e, req.From, req.To)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, Distance3DResponse{Distance: d})
}

// HandleHausdorff handles POST /api/v1/hausdorff.
func (h *Handlers) HandleHausdorff(w http.ResponseWriter, r *http.Request) {
	var req HausdorffRequest
	if err := h.decode(w, r, &req); err != nil {
		writeDomainError(w, err)
		return
	}

	has2D := len(req.A) > 0 || len(req.B) > 0
	has3D := len(req.A3D) > 0 || len(req.B3D) > 0
	if has2D && has3D {
		writeDomainError(w, badRequest("invalid_request", "send a/b or a3d/b3d, not both"))
		return
	}
	if err := h.checkPoints(len(req.A) + len(req.B) + len(req.A3D) + len(req.B3D)); err != nil {
		writeDomainError(w, err)
		return
	}
	if err := r.Context().Err(); err != nil {
		writeDomainError(w, err)
		return
	}

	var (
		resp HausdorffResponse
		err  error
	)
	if has3D {
		resp, err = h.hausdorff3D(req)
	} else {
		resp, err = h.hausdorff2D(req)
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, resp)
}

func (h *Handlers) hausdorff2D(req HausdorffRequest) (HausdorffResponse, error) {
	resp := HausdorffResponse{Dimension: "2d"}
	nA, nB := len(req.A), len(req.B)
	if req.BBox != nil {
		nA, nB = countInside(req.A, req.BBox.Contains), countInside(req.B, req.BBox.Contains)
	}

	if req.Directed {
		var (
			dw  hausdorff.DirectedWitness
			err error
		)
		if req.BBox != nil {
			dw, err = hausdorff.DirectedClipped(req.A, req.B, *req.BBox)
		} else {
			dw, err = hausdorff.Directed(req.A, req.B)
		}
		if err != nil {
			return HausdorffResponse{}, err
		}
		resp.Distance, resp.Forward = dw.Distance, dw
		resp.Strategies = strategies(resp.Dimension, nA, nB, true)
		return resp, nil
	}

	var (
		wit hausdorff.Witness
		err error
	)
	if req.BBox != nil {
		wit, err = hausdorff.SymmetricClipped(req.A, req.B, *req.BBox)
	} else {
		wit, err = hausdorff.Symmetric(req.A, req.B)
	}
	if err != nil {
		return HausdorffResponse{}, err
	}
	resp.Distance, resp.Forward, resp.Reverse = wit.Distance, wit.Forward, &wit.Reverse
	resp.Strategies = strategies(resp.Dimension, nA, nB, false)
	return resp, nil
}

func (h *Handlers) hausdorff3D(req HausdorffRequest) (HausdorffResponse, error) {
	resp := HausdorffResponse{Dimension: "3d"}
	e := h.cfg.Ellipsoid
	if req.Ellipsoid != nil {
		e = *req.Ellipsoid
	}
	nA, nB := len(req.A3D), len(req.B3D)
	if req.BBox != nil {
		nA, nB = countInside(req.A3D, req.BBox.ContainsPoint3D), countInside(req.B3D, req.BBox.ContainsPoint3D)
	}

	if req.Directed {
		var (
			dw  hausdorff.DirectedWitness
			err error
		)
		if req.BBox != nil {
			dw, err = hausdorff.DirectedClipped3DOnEllipsoid(e, req.A3D, req.B3D, *req.BBox)
		} else {
			dw, err = hausdorff.Directed3DOnEllipsoid(e, req.A3D, req.B3D)
		}
		if err != nil {
			return HausdorffResponse{}, err
		}
		resp.Distance, resp.Forward = dw.Distance, dw
		resp.Strategies = strategies(resp.Dimension, nA, nB, true)
		return resp, nil
	}

	var (
		wit hausdorff.Witness
		err error
	)
	if req.BBox != nil {
		wit, err = hausdorff.SymmetricClipped3DOnEllipsoid(e, req.A3D, req.B3D, *req.BBox)
	} else {
		wit, err = hausdorff.Symmetric3DOnEllipsoid(e, req.A3D, req.B3D)
	}
	if err != nil {
		return HausdorffResponse{}, err
	}
	resp.Distance, resp.Forward, resp.Reverse = wit.Distance, wit.Forward, &wit.Reverse
	resp.Strategies = strategies(resp.Dimension, nA, nB, false)
	return resp, nil
}

// strategies reports and records the strategy of each directed pass.
func strategies(dimension string, nA, nB int, directed bool) StrategiesJSON {
	fwd := hausdorff.ChooseStrategy(nA, nB)
	observeStrategy(dimension, fwd)
	out := StrategiesJSON{Forward: fwd.String()}
	if !directed {
		rev := hausdorff.ChooseStrategy(nB, nA)
		observeStrategy(dimension, rev)
		out.Reverse = rev.String()
	}
	return out
}

func countInside[T any](points []T, contains func(T) bool) int {
	n := 0
	for _, p := range points {
		if contains(p) {
			n++
		}
	}
	return n
}

// HandleDensify handles POST /api/v1/densify.
func (h *Handlers) HandleDensify(w http.ResponseWriter, r *http.Request) {
	var req DensifyRequest
	if err := h.decode(w, r, &req); err != nil {
		writeDomainError(w, err)
		return
	}

	n := 0
	for _, part := range req.Parts {
		n += len(part)
	}
	if err := h.checkPoints(n); err != nil {
		writeDomainError(w, err)
		return
	}

	f, err := densify.Multiline(req.Parts, h.densifyOptions(req.Options))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if req.BBox != nil {
		if f, err = f.Clip(*req.BBox); err != nil {
			writeDomainError(w, err)
			return
		}
	}

	resp := DensifyResponse{
		NumParts: f.NumParts(),
		Offsets:  f.Offsets(),
		Samples:  f.Samples(),
	}
	for _, part := range f.Parts() {
		resp.Polylines = append(resp.Polylines, geoio.EncodePolyline(part))
	}
	densifySamples.Observe(float64(len(f.Samples())))

	writeJSON(w, resp)
}

// HandleBoundary handles POST /api/v1/boundary.
func (h *Handlers) HandleBoundary(w http.ResponseWriter, r *http.Request) {
	var req BoundaryRequest
	if err := h.decode(w, r, &req); err != nil {
		writeDomainError(w, err)
		return
	}

	n := 0
	for _, p := range []boundary.Polygon{req.A, req.B} {
		for _, ring := range p.Rings() {
			n += len(ring)
		}
	}
	if err := h.checkPoints(n); err != nil {
		writeDomainError(w, err)
		return
	}

	opts := h.densifyOptions(req.Options)
	if req.Directed {
		dw, err := boundary.Directed(req.A, req.B, opts)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, BoundaryResponse{Distance: dw.Distance, AToB: dw})
		return
	}

	wit, err := boundary.Symmetric(req.A, req.B, opts)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, BoundaryResponse{Distance: wit.Distance, AToB: wit.AToB, BToA: &wit.BToA})
}

// HandleHealth handles GET /api/v1/health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, HealthResponse{Status: "ok"})
}

// densifyOptions applies request overrides to the configured defaults. The
// configured sample cap is an upper bound.
func (h *Handlers) densifyOptions(override *densify.Options) densify.Options {
	opts := h.cfg.Densify
	if override == nil {
		return opts
	}
	capLimit := opts.SampleCap
	opts = *override
	if opts.SampleCap <= 0 || opts.SampleCap > capLimit {
		opts.SampleCap = capLimit
	}
	return opts
}

func (h *Handlers) checkPoints(n int) error {
	if n > h.cfg.MaxPoints {
		return &requestError{
			status: http.StatusRequestEntityTooLarge,
			code:   "too_many_points",
			msg:    "request has too many points",
		}
	}
	return nil
}

// decode enforces the JSON content type and body limit, then decodes the body
// into v.
func (h *Handlers) decode(w http.ResponseWriter, r *http.Request, v any) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		return &requestError{
			status: http.StatusUnsupportedMediaType,
			code:   "unsupported_media_type",
			msg:    "Content-Type must be application/json",
		}
	}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.cfg.MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return &requestError{
				status: http.StatusRequestEntityTooLarge,
				code:   "body_too_large",
				msg:    "request body too large",
			}
		}
		return badRequest("invalid_request", "malformed JSON body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

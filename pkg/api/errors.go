package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/cockroachdb/errors"

	"github.com/azybler/geodist/pkg/densify"
	"github.com/azybler/geodist/pkg/geo"
)

// requestError is a client error detected before any kernel runs.
type requestError struct {
	status int
	code   string
	msg    string
}

func (e *requestError) Error() string { return e.msg }

func badRequest(code, msg string) error {
	return &requestError{status: http.StatusBadRequest, code: code, msg: msg}
}

// writeDomainError maps err onto a status code and a structured error body.
// VertexError is checked before CoordinateError because it wraps one.
func writeDomainError(w http.ResponseWriter, err error) {
	var (
		reqErr    *requestError
		vertexErr *densify.VertexError
		coordErr  *geo.CoordinateError
		ellErr    *geo.EllipsoidError
		bboxErr   *geo.BoundingBoxError
		degErr    *densify.DegeneratePolylineError
		capErr    *densify.SampleCapError
	)

	switch {
	case errors.As(err, &reqErr):
		writeError(w, reqErr.status, ErrorResponse{Error: reqErr.msg, Code: reqErr.code})
	case errors.As(err, &vertexErr):
		details := map[string]any{"part": vertexErr.Part, "vertex": vertexErr.Vertex}
		if errors.As(vertexErr.Err, &coordErr) {
			details["kind"] = coordErr.Kind.String()
		}
		writeError(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "invalid_vertex", Details: details})
	case errors.As(err, &coordErr):
		writeError(w, http.StatusBadRequest, ErrorResponse{
			Error:   err.Error(),
			Code:    coordErr.Kind.String(),
			Details: map[string]any{"value": jsonFloat(coordErr.Value)},
		})
	case errors.As(err, &ellErr):
		writeError(w, http.StatusBadRequest, ErrorResponse{
			Error: err.Error(),
			Code:  "invalid_ellipsoid",
			Details: map[string]any{
				"semi_major_axis_m": jsonFloat(ellErr.SemiMajorAxis),
				"semi_minor_axis_m": jsonFloat(ellErr.SemiMinorAxis),
			},
		})
	case errors.As(err, &bboxErr):
		writeError(w, http.StatusBadRequest, ErrorResponse{
			Error: err.Error(),
			Code:  "invalid_bounding_box",
			Details: map[string]any{
				"min_lat": jsonFloat(bboxErr.MinLat),
				"max_lat": jsonFloat(bboxErr.MaxLat),
				"min_lon": jsonFloat(bboxErr.MinLon),
				"max_lon": jsonFloat(bboxErr.MaxLon),
			},
		})
	case errors.As(err, &degErr):
		writeError(w, http.StatusBadRequest, ErrorResponse{
			Error:   err.Error(),
			Code:    "degenerate_polyline",
			Details: map[string]any{"part": degErr.Part},
		})
	case errors.Is(err, geo.ErrEmptyPointSet):
		writeError(w, http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error(), Code: "empty_point_set"})
	case errors.As(err, &capErr):
		writeError(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:   err.Error(),
			Code:    "sample_cap_exceeded",
			Details: map[string]any{"expected": capErr.Expected, "cap": capErr.Cap, "part": capErr.Part},
		})
	case errors.Is(err, densify.ErrMissingDensificationKnob):
		writeError(w, http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error(), Code: "missing_densification_knob"})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, ErrorResponse{Error: "request timed out", Code: "request_timeout"})
	default:
		slog.Error("unhandled error", "error", err)
		writeError(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error", Code: "internal_error"})
	}
}

// jsonFloat keeps NaN and infinities encodable by sending them as strings.
func jsonFloat(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return v
}

func writeError(w http.ResponseWriter, status int, body ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

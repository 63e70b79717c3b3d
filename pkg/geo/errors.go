package geo

import (
	"fmt"
	"math"

	"github.com/cockroachdb/errors"
)

// ErrEmptyPointSet is returned when an operand, or what is left of it after
// bounding-box filtering, has no points.
var ErrEmptyPointSet = errors.New("point set must contain at least one point")

// Kind identifies the scalar that failed validation.
type Kind uint8

const (
	InvalidLatitude Kind = iota + 1
	InvalidLongitude
	InvalidAltitude
	InvalidDistance
	InvalidRadius
)

func (k Kind) String() string {
	switch k {
	case InvalidLatitude:
		return "invalid_latitude"
	case InvalidLongitude:
		return "invalid_longitude"
	case InvalidAltitude:
		return "invalid_altitude"
	case InvalidDistance:
		return "invalid_distance"
	case InvalidRadius:
		return "invalid_radius"
	default:
		return "unknown"
	}
}

// CoordinateError reports a scalar input that is out of range or not finite.
type CoordinateError struct {
	Kind  Kind
	Value float64
}

func (e *CoordinateError) Error() string {
	switch e.Kind {
	case InvalidLatitude:
		return fmt.Sprintf("invalid latitude %v: expected a finite value in [%v, %v]", e.Value, MinLatitude, MaxLatitude)
	case InvalidLongitude:
		return fmt.Sprintf("invalid longitude %v: expected a finite value in [%v, %v]", e.Value, MinLongitude, MaxLongitude)
	case InvalidAltitude:
		return fmt.Sprintf("invalid altitude %v: expected a finite value", e.Value)
	case InvalidDistance:
		return fmt.Sprintf("invalid distance %v: expected a finite, non-negative value", e.Value)
	case InvalidRadius:
		return fmt.Sprintf("invalid radius %v: expected a finite, positive value", e.Value)
	default:
		return fmt.Sprintf("invalid value %v", e.Value)
	}
}

// EllipsoidError reports non-positive, non-finite or inverted ellipsoid axes.
type EllipsoidError struct {
	SemiMajorAxis float64
	SemiMinorAxis float64
}

func (e *EllipsoidError) Error() string {
	return fmt.Sprintf("invalid ellipsoid (a=%v, b=%v): axes must be finite, positive and a >= b",
		e.SemiMajorAxis, e.SemiMinorAxis)
}

// BoundingBoxError reports out-of-range or unordered bounding box corners.
type BoundingBoxError struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
}

func (e *BoundingBoxError) Error() string {
	return fmt.Sprintf("invalid bounding box lat [%v, %v] lon [%v, %v]: corners must be valid and min <= max",
		e.MinLat, e.MaxLat, e.MinLon, e.MaxLon)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func validateLatitude(v float64) error {
	if !isFinite(v) || v < MinLatitude || v > MaxLatitude {
		return &CoordinateError{Kind: InvalidLatitude, Value: v}
	}
	return nil
}

func validateLongitude(v float64) error {
	if !isFinite(v) || v < MinLongitude || v > MaxLongitude {
		return &CoordinateError{Kind: InvalidLongitude, Value: v}
	}
	return nil
}

func validateAltitude(v float64) error {
	if !isFinite(v) {
		return &CoordinateError{Kind: InvalidAltitude, Value: v}
	}
	return nil
}

func validateRadius(v float64) error {
	if !isFinite(v) || v <= 0 {
		return &CoordinateError{Kind: InvalidRadius, Value: v}
	}
	return nil
}

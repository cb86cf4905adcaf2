package domain

// ScaleInfo relates sketch (pixel) distances to real-world distances.
// Produced by the drawing tool's calibration step.
type ScaleInfo struct {
	// PixelDistance is the calibration length in sketch units.
	PixelDistance float64

	// RealDistance is the same length in metres.
	RealDistance float64

	// Ratio is metres per sketch unit.
	Ratio float64
}

// Validate rejects unusable scales.
func (s ScaleInfo) Validate() error {
	if s.Ratio <= 0 {
		return ErrInvalidScale
	}
	return nil
}

// SupplyLine is a sketched 2D polyline plus the electrical metadata
// captured alongside it, prior to conversion into a CableRoute.
type SupplyLine struct {
	// ID identifies the sketched line within the drawing.
	ID string

	// Points is the freehand polyline in sketch units.
	Points []Point2D

	// From is the supply end label (e.g. "DB-1").
	From string

	// To is the load end label (e.g. "AHU-3").
	To string

	// CableType is the declared cable construction.
	CableType CableType

	// Diameter is the declared cable diameter in millimetres.
	Diameter float64

	// StartHeight is the vertical drop at the supply end, in metres.
	StartHeight float64

	// EndHeight is the vertical drop at the load end, in metres.
	EndHeight float64

	// TerminationCount is the number of terminations to allow for.
	TerminationCount int
}

// LineError records a single line's conversion failure within a batch.
// A failed line never aborts conversion of the others.
type LineError struct {
	// LineID identifies the sketched line that failed.
	LineID string

	// Err is the conversion failure.
	Err error
}

func (e LineError) Error() string {
	return "line " + e.LineID + ": " + e.Err.Error()
}

// Unwrap exposes the underlying failure for errors.Is checks.
func (e LineError) Unwrap() error {
	return e.Err
}

// Package maintain computes the Maintainability Index by combining the
// complexity, halstead, and rawmetrics engine outputs for one file.
package maintain

import (
	"math"

	"github.com/Sumatoshi-tech/codegauge/pkg/mathutil"
)

// Maintainability Index formula constants. The constant set follows the
// SEI/Visual Studio convention rescaled to 0-100; it is fixed and must not
// drift between releases.
const (
	miBase            = 171.0
	miVolumeCoeff     = 5.2
	miComplexityCoeff = 0.23
	miSLOCCoeff       = 16.2
	miCommentCoeff    = 50.0
	miCommentScale    = 2.46
	miMin             = 0.0
	miMax             = 100.0

	rankAMin = 19.0
	rankBMin = 9.0
)

// Index computes the clamped Maintainability Index. Degenerate inputs
// (non-positive volume or SLOC) yield the maximum score: an empty file has
// nothing to maintain.
func Index(volume, avgComplexity float64, sloc int, percentComment float64) float64 {
	if volume <= 0 || sloc <= 0 {
		return miMax
	}

	commentRadians := miCommentScale * percentComment * math.Pi / 180

	raw := miBase -
		miVolumeCoeff*math.Log(volume) -
		miComplexityCoeff*avgComplexity -
		miSLOCCoeff*math.Log(float64(sloc)) +
		miCommentCoeff*math.Sin(math.Sqrt(commentRadians))

	return mathutil.Clamp(raw*miMax/miBase, miMin, miMax)
}

// RankOf maps a Maintainability Index to its three-tier letter rank.
func RankOf(mi float64) string {
	switch {
	case mi > rankAMin:
		return "A"
	case mi > rankBMin:
		return "B"
	default:
		return "C"
	}
}

package facematch

import (
	"errors"
	"fmt"
	"math"
)

// DescriptorLength is the fixed length of a face descriptor vector.
const DescriptorLength = 128

var (
	// ErrNoMatch means no registered descriptor came strictly below the
	// recognition threshold (or the registry was empty).
	ErrNoMatch = errors.New("no matching face found")

	// ErrAmbiguousMatch means two different users tied at the minimum
	// distance, so the identification cannot be trusted.
	ErrAmbiguousMatch = errors.New("face matches multiple users")
)

// NoMatchError reports how close the nearest rejected candidate came. It
// unwraps to ErrNoMatch.
type NoMatchError struct {
	BestDistance float64
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("%s: best distance %.3f", ErrNoMatch, e.BestDistance)
}

func (e *NoMatchError) Unwrap() error { return ErrNoMatch }

// Candidate is one user's registered descriptor set.
type Candidate struct {
	UserID      string
	Descriptors [][]float64
}

// Match is a successful identification.
type Match struct {
	UserID     string
	Distance   float64
	Confidence float64
}

// Identify runs a nearest-neighbor scan of the probe against every
// registered descriptor and returns the user with the global minimum
// Euclidean distance, provided it is strictly below threshold.
//
// The registry must be in a deterministic order (the store returns it
// sorted by user id); an exact tie at the minimum between two different
// users is rejected as ErrAmbiguousMatch. Descriptors with the wrong
// length are skipped. The scan allocates nothing because it runs on every
// check-in and check-out.
func Identify(probe []float64, registry []Candidate, threshold float64) (Match, error) {
	if len(probe) != DescriptorLength {
		return Match{}, ErrNoMatch
	}

	best := math.Inf(1)
	bestUser := ""
	ambiguous := false

	for _, candidate := range registry {
		for _, descriptor := range candidate.Descriptors {
			if len(descriptor) != DescriptorLength {
				continue
			}

			distance := euclidean(probe, descriptor)
			switch {
			case distance < best:
				best = distance
				bestUser = candidate.UserID
				ambiguous = false
			case distance == best && candidate.UserID != bestUser:
				ambiguous = true
			}
		}
	}

	if bestUser == "" {
		return Match{}, ErrNoMatch
	}
	if best >= threshold {
		return Match{}, &NoMatchError{BestDistance: best}
	}
	if ambiguous {
		return Match{}, ErrAmbiguousMatch
	}

	return Match{
		UserID:     bestUser,
		Distance:   best,
		Confidence: math.Max(0, 1-best),
	}, nil
}

func euclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

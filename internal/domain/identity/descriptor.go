package identity

import (
	"encoding/json"
	"fmt"

	"github.com/kerjaflow/attendance-backend-go/internal/pkg/facematch"
)

// NormalizeDescriptors converts the legacy on-disk face data shapes into the
// canonical list-of-vectors form. Three shapes exist in old rows:
//
//	[0.1, ...]                 a single bare vector
//	[[0.1, ...], [0.2, ...]]   a list of vectors
//	{"descriptor": [0.1, ...]} an object wrapping one vector
//
// The matcher only ever sees the canonical form; shape sniffing stops here,
// at the storage boundary.
func NormalizeDescriptors(raw json.RawMessage) ([][]float64, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var vectors [][]float64
	if err := json.Unmarshal(raw, &vectors); err == nil {
		return vectors, nil
	}

	var single []float64
	if err := json.Unmarshal(raw, &single); err == nil {
		if len(single) == 0 {
			return nil, nil
		}
		return [][]float64{single}, nil
	}

	var wrapped struct {
		Descriptor []float64 `json:"descriptor"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Descriptor != nil {
		return [][]float64{wrapped.Descriptor}, nil
	}

	return nil, fmt.Errorf("%w: unrecognized stored shape", ErrInvalidDescriptor)
}

// ValidateDescriptor checks a descriptor submitted for enrollment.
func ValidateDescriptor(descriptor []float64) error {
	if len(descriptor) != facematch.DescriptorLength {
		return fmt.Errorf("%w: expected %d values, got %d",
			ErrInvalidDescriptor, facematch.DescriptorLength, len(descriptor))
	}
	return nil
}

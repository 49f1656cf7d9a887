package facematch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func descriptor(fill float64) []float64 {
	d := make([]float64, DescriptorLength)
	for i := range d {
		d[i] = fill
	}
	return d
}

func TestIdentify_SelfMatch(t *testing.T) {
	d := descriptor(0.25)
	registry := []Candidate{
		{UserID: "emp-1", Descriptors: [][]float64{descriptor(0.9)}},
		{UserID: "emp-2", Descriptors: [][]float64{d}},
	}

	match, err := Identify(d, registry, 0.6)
	require.NoError(t, err)
	assert.Equal(t, "emp-2", match.UserID)
	assert.Equal(t, 0.0, match.Distance)
	assert.Equal(t, 1.0, match.Confidence)
}

func TestIdentify_EmptyRegistry(t *testing.T) {
	_, err := Identify(descriptor(0.5), nil, 0.6)
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestIdentify_NothingBelowThreshold(t *testing.T) {
	registry := []Candidate{
		{UserID: "emp-1", Descriptors: [][]float64{descriptor(0.0)}},
	}

	// Probe differs by 0.1 per component: distance sqrt(128*0.01) ≈ 1.13.
	_, err := Identify(descriptor(0.1), registry, 0.6)
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestIdentify_RejectionCarriesBestDistance(t *testing.T) {
	registry := []Candidate{
		{UserID: "emp-1", Descriptors: [][]float64{descriptor(0.0)}},
	}
	probe := descriptor(0.0)
	probe[0] = 0.8

	_, err := Identify(probe, registry, 0.6)
	require.ErrorIs(t, err, ErrNoMatch)

	var noMatch *NoMatchError
	require.ErrorAs(t, err, &noMatch)
	assert.InDelta(t, 0.8, noMatch.BestDistance, 0.001)
}

func TestIdentify_ThresholdIsExclusive(t *testing.T) {
	registry := []Candidate{
		{UserID: "emp-1", Descriptors: [][]float64{descriptor(0.0)}},
	}
	probe := descriptor(0.0)
	probe[0] = 0.6 // distance exactly 0.6

	_, err := Identify(probe, registry, 0.6)
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestIdentify_NeverConfusesDistantUsers(t *testing.T) {
	// Two users whose descriptors differ in every component by more than
	// the threshold can never be confused for each other.
	a := descriptor(0.0)
	b := descriptor(0.7)
	registry := []Candidate{
		{UserID: "emp-a", Descriptors: [][]float64{a}},
		{UserID: "emp-b", Descriptors: [][]float64{b}},
	}

	matchA, err := Identify(a, registry, 0.6)
	require.NoError(t, err)
	assert.Equal(t, "emp-a", matchA.UserID)

	matchB, err := Identify(b, registry, 0.6)
	require.NoError(t, err)
	assert.Equal(t, "emp-b", matchB.UserID)
}

func TestIdentify_SkipsMalformedDescriptors(t *testing.T) {
	short := make([]float64, 64)
	registry := []Candidate{
		{UserID: "emp-1", Descriptors: [][]float64{short, descriptor(0.3)}},
	}

	match, err := Identify(descriptor(0.3), registry, 0.6)
	require.NoError(t, err)
	assert.Equal(t, "emp-1", match.UserID)
}

func TestIdentify_TieBetweenUsersIsAmbiguous(t *testing.T) {
	same := descriptor(0.4)
	registry := []Candidate{
		{UserID: "emp-1", Descriptors: [][]float64{same}},
		{UserID: "emp-2", Descriptors: [][]float64{descriptor(0.4)}},
	}

	_, err := Identify(same, registry, 0.6)
	assert.ErrorIs(t, err, ErrAmbiguousMatch)
}

func TestIdentify_TieWithinOneUserIsFine(t *testing.T) {
	d := descriptor(0.4)
	registry := []Candidate{
		{UserID: "emp-1", Descriptors: [][]float64{d, descriptor(0.4)}},
	}

	match, err := Identify(d, registry, 0.6)
	require.NoError(t, err)
	assert.Equal(t, "emp-1", match.UserID)
}

func TestIdentify_WrongLengthProbe(t *testing.T) {
	registry := []Candidate{
		{UserID: "emp-1", Descriptors: [][]float64{descriptor(0.3)}},
	}

	_, err := Identify(make([]float64, 32), registry, 0.6)
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestIdentify_ConfidenceFloorsAtZero(t *testing.T) {
	base := descriptor(0.0)
	registry := []Candidate{
		{UserID: "emp-1", Descriptors: [][]float64{base}},
	}

	// Distance ≈ 1.13 with a permissive threshold: confidence clamps to 0.
	match, err := Identify(descriptor(0.1), registry, 2.0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, match.Confidence)
}

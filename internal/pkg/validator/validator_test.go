package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.False(t, IsEmpty("x"))
}

func TestIsValidDate(t *testing.T) {
	_, ok := IsValidDate("2026-03-09")
	assert.True(t, ok)

	_, ok = IsValidDate("09-03-2026")
	assert.False(t, ok)

	_, ok = IsValidDate("2026-13-40")
	assert.False(t, ok)
}

func TestIsValidDateTime(t *testing.T) {
	_, ok := IsValidDateTime("2026-03-09T09:10:00Z")
	assert.True(t, ok)

	_, ok = IsValidDateTime("2026-03-09T09:10:00+07:00")
	assert.True(t, ok)

	_, ok = IsValidDateTime("2026-03-09 09:10:00")
	assert.False(t, ok)
}

func TestIsValidTimeOfDay(t *testing.T) {
	_, ok := IsValidTimeOfDay("21:00")
	assert.True(t, ok)

	_, ok = IsValidTimeOfDay("24:30")
	assert.False(t, ok)
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "reason", Message: "reason is required"},
		{Field: "date", Message: "bad format"},
	}

	assert.Equal(t, "reason: reason is required; date: bad format", errs.Error())
	assert.Equal(t, map[string]string{
		"reason": "reason is required",
		"date":   "bad format",
	}, errs.ToMap())
}

package util

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestCoerceInsideRange(t *testing.T) {
	// GIVEN
	value := 50.0

	// WHEN
	result := Coerce(value, 0, 100)

	// THEN
	assert.Equal(t, 50.0, result)
}

func TestCoerceBelowRange(t *testing.T) {
	// GIVEN
	value := -10.0

	// WHEN
	result := Coerce(value, 0, 100)

	// THEN
	assert.Equal(t, 0.0, result)
}

func TestCoerceAboveRange(t *testing.T) {
	// GIVEN
	value := 110.0

	// WHEN
	result := Coerce(value, 0, 100)

	// THEN
	assert.Equal(t, 100.0, result)
}

func TestRatioMidpoint(t *testing.T) {
	// GIVEN
	target := 65.0

	// WHEN
	result := Ratio(target, 55, 75)

	// THEN
	assert.Equal(t, 0.5, result)
}

func TestRatioLowerBound(t *testing.T) {
	// GIVEN
	target := 55.0

	// WHEN
	result := Ratio(target, 55, 75)

	// THEN
	assert.Equal(t, 0.0, result)
}

func TestUpdateSimpleMovingAvg(t *testing.T) {
	// GIVEN
	oldAvg := 50.0

	// WHEN
	newAvg := UpdateSimpleMovingAvg(oldAvg, 10, 60.0)

	// THEN
	assert.InDelta(t, 51.0, newAvg, 0.0001)
}

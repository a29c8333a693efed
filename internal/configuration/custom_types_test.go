package configuration

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func decodeDuration(t *testing.T, data interface{}) time.Duration {
	hook := secondsToDurationHookFunc()
	result, err := hook(reflect.TypeOf(data), reflect.TypeOf(time.Duration(0)), data)
	assert.NoError(t, err)
	duration, ok := result.(time.Duration)
	assert.True(t, ok)
	return duration
}

func TestBareIntegerDecodesAsSeconds(t *testing.T) {
	// GIVEN
	data := 10

	// WHEN
	duration := decodeDuration(t, data)

	// THEN
	assert.Equal(t, 10*time.Second, duration)
}

func TestFloatDecodesAsSeconds(t *testing.T) {
	// GIVEN
	data := 2.5

	// WHEN
	duration := decodeDuration(t, data)

	// THEN
	assert.Equal(t, 2500*time.Millisecond, duration)
}

func TestStringIsLeftToStringHook(t *testing.T) {
	// GIVEN
	hook := secondsToDurationHookFunc()
	data := "10s"

	// WHEN
	result, err := hook(reflect.TypeOf(data), reflect.TypeOf(time.Duration(0)), data)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, "10s", result)
}

func TestNonDurationTargetUntouched(t *testing.T) {
	// GIVEN
	hook := secondsToDurationHookFunc()
	data := 55

	// WHEN
	result, err := hook(reflect.TypeOf(data), reflect.TypeOf(float64(0)), data)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 55, result)
}

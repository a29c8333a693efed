package controller

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"pifand/internal/configuration"
)

type MockSensor struct {
	ID          string
	Temperature float64
	MovingAvg   float64
	Err         error
}

func (sensor *MockSensor) GetId() string {
	return sensor.ID
}

func (sensor *MockSensor) GetConfig() configuration.SensorConfig {
	panic("not implemented")
}

func (sensor *MockSensor) GetValue() (float64, error) {
	if sensor.Err != nil {
		return 0, sensor.Err
	}
	return sensor.Temperature, nil
}

func (sensor *MockSensor) GetMovingAvg() (avg float64) {
	return sensor.MovingAvg
}

func (sensor *MockSensor) SetMovingAvg(avg float64) {
	sensor.MovingAvg = avg
}

type MockFan struct {
	ID         string
	DutyCycle  float64
	DutyLog    []float64
	OpenCount  int
	CloseCount int
	SetErr     error
}

func (fan *MockFan) GetId() string {
	return fan.ID
}

func (fan *MockFan) GetConfig() configuration.FanConfig {
	panic("not implemented")
}

func (fan *MockFan) Open() error {
	fan.OpenCount++
	return nil
}

func (fan *MockFan) SetDutyCycle(percent float64) error {
	if fan.SetErr != nil {
		return fan.SetErr
	}
	fan.DutyCycle = percent
	fan.DutyLog = append(fan.DutyLog, percent)
	return nil
}

func (fan *MockFan) GetDutyCycle() float64 {
	return fan.DutyCycle
}

func (fan *MockFan) Close() error {
	fan.CloseCount++
	return nil
}

func testConfig() configuration.Configuration {
	return configuration.Configuration{
		MinTemp:               55,
		MinCoolTemp:           50,
		MaxTemp:               75,
		FanLow:                50,
		FanHigh:               100,
		WaitInterval:          10 * time.Millisecond,
		TempRollingWindowSize: 10,
	}
}

func createController(sensor *MockSensor, fan *MockFan) *fanController {
	return NewFanController(sensor, fan, testConfig()).(*fanController)
}

func TestUpdateFanSpeedAppliesPolicy(t *testing.T) {
	// GIVEN
	sensor := &MockSensor{ID: "cpu", Temperature: 65}
	fan := &MockFan{ID: "fan"}
	controller := createController(sensor, fan)

	// WHEN
	err := controller.UpdateFanSpeed()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 75.0, fan.DutyCycle)
	assert.True(t, controller.Snapshot().Activated)
}

func TestUpdateFanSpeedKeepsFanOffBelowMinTemp(t *testing.T) {
	// GIVEN
	sensor := &MockSensor{ID: "cpu", Temperature: 40}
	fan := &MockFan{ID: "fan"}
	controller := createController(sensor, fan)

	// WHEN
	err := controller.UpdateFanSpeed()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 0.0, fan.DutyCycle)
	assert.False(t, controller.Snapshot().Activated)
}

func TestHysteresisAcrossTicks(t *testing.T) {
	// GIVEN
	sensor := &MockSensor{ID: "cpu"}
	fan := &MockFan{ID: "fan"}
	controller := createController(sensor, fan)

	// WHEN: rising through the thresholds, then dropping below release
	expected := []struct {
		temperature float64
		duty        float64
		activated   bool
	}{
		{40, 0, false},
		{60, 62.5, true},
		{80, 100, true},
		{45, 0, false},
		{53, 0, false}, // below minTemp while idle, fan stays off
	}

	for _, step := range expected {
		sensor.Temperature = step.temperature
		err := controller.UpdateFanSpeed()

		// THEN
		assert.NoError(t, err)
		snapshot := controller.Snapshot()
		assert.Equal(t, step.duty, fan.DutyCycle, "temperature %.1f", step.temperature)
		assert.Equal(t, step.activated, snapshot.Activated, "temperature %.1f", step.temperature)
	}
}

func TestSensorErrorIsFatal(t *testing.T) {
	// GIVEN
	sensor := &MockSensor{ID: "cpu", Err: errors.New("read error")}
	fan := &MockFan{ID: "fan"}
	controller := createController(sensor, fan)

	// WHEN
	err := controller.UpdateFanSpeed()

	// THEN
	assert.Error(t, err)
	assert.Empty(t, fan.DutyLog)
}

func TestFanWriteErrorIsFatal(t *testing.T) {
	// GIVEN
	sensor := &MockSensor{ID: "cpu", Temperature: 65}
	fan := &MockFan{ID: "fan", SetErr: errors.New("write error")}
	controller := createController(sensor, fan)

	// WHEN
	err := controller.UpdateFanSpeed()

	// THEN
	assert.Error(t, err)
}

func TestRunSetsInitialSpeedAndShutsDownOnCancel(t *testing.T) {
	// GIVEN
	sensor := &MockSensor{ID: "cpu", Temperature: 40}
	fan := &MockFan{ID: "fan"}
	controller := createController(sensor, fan)
	ctx, cancel := context.WithCancel(context.Background())

	resultChan := make(chan error)
	go func() {
		resultChan <- controller.Run(ctx)
	}()

	// WHEN: let a few ticks pass, then cancel
	time.Sleep(50 * time.Millisecond)
	cancel()
	err := <-resultChan

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 1, fan.OpenCount)
	assert.Equal(t, 1, fan.CloseCount)
	// first write is the startup priming, last write is the safe
	// shutdown speed
	assert.Equal(t, 50.0, fan.DutyLog[0])
	assert.Equal(t, 50.0, fan.DutyLog[len(fan.DutyLog)-1])
}

func TestRunShutsDownOnSensorError(t *testing.T) {
	// GIVEN
	sensor := &MockSensor{ID: "cpu", Err: errors.New("read error")}
	fan := &MockFan{ID: "fan"}
	controller := createController(sensor, fan)

	// WHEN
	err := controller.Run(context.Background())

	// THEN
	assert.Error(t, err)
	assert.Equal(t, 1, fan.CloseCount)
	assert.Equal(t, 50.0, fan.DutyCycle)
}

func TestShutdownRunsExactlyOnce(t *testing.T) {
	// GIVEN
	sensor := &MockSensor{ID: "cpu", Temperature: 65}
	fan := &MockFan{ID: "fan"}
	controller := createController(sensor, fan)

	// WHEN
	controller.shutdown()
	controller.shutdown()

	// THEN
	assert.Equal(t, 1, fan.CloseCount)
}

func TestSnapshotCountsTicks(t *testing.T) {
	// GIVEN
	sensor := &MockSensor{ID: "cpu", Temperature: 60}
	fan := &MockFan{ID: "fan"}
	controller := createController(sensor, fan)

	// WHEN
	assert.NoError(t, controller.UpdateFanSpeed())
	assert.NoError(t, controller.UpdateFanSpeed())

	// THEN
	snapshot := controller.Snapshot()
	assert.Equal(t, uint64(2), snapshot.Ticks)
	assert.Equal(t, 60.0, snapshot.Temperature)
	assert.False(t, snapshot.LastUpdate.IsZero())
}

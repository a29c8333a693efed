package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"pifand/internal/controller"
	"pifand/internal/ui"
)

const (
	connectTimeout = 10 * time.Second
	publishTimeout = 5 * time.Second
)

// Publisher sends controller status messages to an MQTT broker.
type Publisher struct {
	client paho.Client
	topic  string
}

func NewPublisher(broker string, topic string) (*Publisher, error) {
	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID("pifand").
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second)

	client := paho.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("connection timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	return &Publisher{
		client: client,
		topic:  topic,
	}, nil
}

// Publish sends a single status snapshot. QoS 0, status messages are
// periodic and a lost one is replaced by the next.
func (p *Publisher) Publish(snapshot controller.Snapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("format payload: %w", err)
	}

	token := p.client.Publish(p.topic, 0, false, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish: %w", err)
	}

	return nil
}

// Close disconnects from the broker.
func (p *Publisher) Close() error {
	p.client.Disconnect(1000)
	return nil
}

// Report publishes the controller snapshot on every interval until ctx is
// cancelled. Telemetry is best effort, publish failures are logged and the
// loop keeps going.
func (p *Publisher) Report(ctx context.Context, fanController controller.FanController, interval time.Duration) error {
	tick := time.Tick(interval)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick:
			if err := p.Publish(fanController.Snapshot()); err != nil {
				ui.Warning("Unable to publish status message: %v", err)
			}
		}
	}
}

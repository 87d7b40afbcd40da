package motion

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// MQTTConfig selects the broker and topic carrying accelerometer samples.
type MQTTConfig struct {
	Broker   string
	Topic    string
	ClientID string
	// Buffer is the sample channel capacity. Samples arriving while the
	// buffer is full are dropped. Default 64.
	Buffer int
}

// Subscribe connects to the broker and streams decoded samples until ctx is
// done, then disconnects and closes the returned channel.
func Subscribe(ctx context.Context, cfg MQTTConfig) (<-chan Sample, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.Broker, token.Error())
	}
	log.Printf("motion: connected to MQTT broker at %s", cfg.Broker)

	f := newFeed(cfg.Buffer, time.Now())
	token := client.Subscribe(cfg.Topic, 0, func(_ mqtt.Client, msg mqtt.Message) {
		f.deliver(msg.Payload())
	})
	token.Wait()
	if token.Error() != nil {
		client.Disconnect(250)
		return nil, fmt.Errorf("subscribe %s: %w", cfg.Topic, token.Error())
	}
	log.Printf("motion: subscribed to %s", cfg.Topic)

	go func() {
		<-ctx.Done()
		client.Unsubscribe(cfg.Topic).Wait()
		client.Disconnect(250)
		f.close()
		log.Println("motion: disconnected")
	}()

	return f.out, nil
}

// feed decodes payloads into a channel that can be closed while the
// client's callback goroutine may still be delivering.
type feed struct {
	mu     sync.Mutex
	out    chan Sample
	closed bool
	start  time.Time
	now    func() time.Time
}

func newFeed(buffer int, start time.Time) *feed {
	if buffer <= 0 {
		buffer = 64
	}
	return &feed{out: make(chan Sample, buffer), start: start, now: time.Now}
}

func (f *feed) deliver(payload []byte) {
	s, err := decodeSample(payload, f.now().Sub(f.start).Milliseconds())
	if err != nil {
		log.Printf("motion: sample unmarshal error: %v", err)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	select {
	case f.out <- s:
	default:
		log.Println("motion: sample buffer full, dropping sample")
	}
}

func (f *feed) close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.closed {
		f.closed = true
		close(f.out)
	}
}

// decodeSample parses a JSON sample. Samples without a timestamp are stamped
// with receivedMs so the debounce clock keeps moving.
func decodeSample(payload []byte, receivedMs int64) (Sample, error) {
	var s Sample
	if err := json.Unmarshal(payload, &s); err != nil {
		return Sample{}, err
	}
	if s.AtMs == 0 {
		s.AtMs = receivedMs
	}
	return s, nil
}

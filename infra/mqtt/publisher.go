// Package mqtt publishes tick summaries to an MQTT broker so external
// consumers (signage, apps) can follow occupancy without polling the API.
// Delivery is best effort; the tick pipeline never waits on the broker.
package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/tbaudier/parkwatch/config"
	"github.com/tbaudier/parkwatch/core/logger"
	"github.com/tbaudier/parkwatch/core/model"
	infralogger "github.com/tbaudier/parkwatch/infra/logger"
)

const publishTimeout = 5 * time.Second

type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// Publisher sends tick summaries to a fixed topic.
type Publisher struct {
	cli   pahoClient
	topic string
	qos   byte
	log   logger.Logger
}

// NewPublisher connects to the broker. Returns nil when publishing is
// disabled in the configuration.
func NewPublisher(cfg config.MQTTConfig) (*Publisher, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	clientID := cfg.ClientID
	if clientID == "" {
		clientID = "parkwatch-" + uuid.NewString()[:8]
	}
	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectTimeout(publishTimeout)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	cli := newMQTTClient(opts)
	token := cli.Connect()
	if !token.WaitTimeout(publishTimeout) {
		return nil, fmt.Errorf("mqtt connect timeout to %s", cfg.Broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect: %w", err)
	}
	return &Publisher{
		cli:   cli,
		topic: cfg.Topic,
		qos:   cfg.QoS,
		log:   infralogger.New("mqtt-publisher"),
	}, nil
}

// PublishTick serialises the summary and publishes it without waiting for
// broker confirmation beyond the timeout.
func (p *Publisher) PublishTick(summary model.TickSummary) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshal tick summary: %w", err)
	}
	token := p.cli.Publish(p.topic, p.qos, false, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish timeout on %s", p.topic)
	}
	return token.Error()
}

// Close disconnects from the broker.
func (p *Publisher) Close() {
	if p.cli != nil && p.cli.IsConnected() {
		p.cli.Disconnect(250)
	}
}

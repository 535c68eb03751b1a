package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"ftm-analyzer/internal/config"
	"ftm-analyzer/internal/interfaces"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog"
	"sync/atomic"
	"time"
)

type Client struct {
	client    mqtt.Client
	qos       byte
	logger    zerolog.Logger
	connected atomic.Bool
}

var _ interfaces.IMqClient = (*Client)(nil)

func NewClient(cfg config.MQTTConfig, logger zerolog.Logger) *Client {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s:%d", cfg.Host, cfg.Port))
	opts.SetClientID(cfg.ClientID)

	if cfg.Username != "" && cfg.Password != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	opts.SetKeepAlive(time.Duration(cfg.KeepAlive) * time.Second)
	opts.SetConnectTimeout(cfg.ConnectTimeout)
	opts.SetAutoReconnect(false)
	opts.SetCleanSession(true)

	mqttClient := &Client{
		qos:    cfg.QoS,
		logger: logger,
	}

	opts.SetOnConnectHandler(mqttClient.onConnect)
	opts.SetConnectionLostHandler(mqttClient.onConnectionLost)

	mqttClient.client = mqtt.NewClient(opts)

	return mqttClient
}

func (c *Client) Connect(ctx context.Context) error {
	token := c.client.Connect()

	select {
	case <-token.Done():
		if token.Error() != nil {
			return fmt.Errorf("error connecting to MQTT broker: %w", token.Error())
		}
		c.connected.Store(true)
		return nil
	case <-ctx.Done():
		return fmt.Errorf("connection to MQTT broker timed out: %w", ctx.Err())
	}
}

func (c *Client) Disconnect(ctx context.Context) {
	if !c.IsConnected() {
		c.logger.Debug().Msg("MQTT client is not connected, nothing to disconnect")
		return
	}

	c.client.Disconnect(250)

	select {
	case <-ctx.Done():
		c.logger.Warn().Msg("MQTT client disconnect timed out")
	default:
		c.connected.Store(false)
		c.logger.Info().Msg("MQTT client disconnected successfully")
	}
}

func (c *Client) PublishWithOptions(topic string, payload []byte, options *MessageOptions) error {
	if !c.IsConnected() {
		return fmt.Errorf("MQTT client is not connected")
	}

	token := c.client.Publish(topic, options.Qos, options.Retained, payload)
	if !token.WaitTimeout(options.Timeout) {
		return fmt.Errorf("publishing to topic %s timed out after %s", topic, options.Timeout)
	}

	if token.Error() != nil {
		return fmt.Errorf("failed to publish to topic %s: %w", topic, token.Error())
	}

	c.logger.Debug().
		Str("topic", topic).
		Int("payload_size", len(payload)).
		Msg("successfully published message")

	return nil
}

func (c *Client) PublishJson(topic string, data interface{}) error {
	options := DefaultMessageOptions()
	options.Qos = c.qos

	payload, err := EncodeMessage(data, options.Source)
	if err != nil {
		return err
	}

	return c.PublishWithOptions(topic, payload, options)
}

func EncodeMessage(data interface{}, source string) ([]byte, error) {
	payload, err := json.Marshal(Message{Data: data, Source: source})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return payload, nil
}

func (c *Client) IsConnected() bool {
	return c.connected.Load() && c.client.IsConnected()
}

func (c *Client) onConnect(client mqtt.Client) {
	c.connected.Store(true)
	c.logger.Info().Msg("Successfully connected to broker")
}

func (c *Client) onConnectionLost(client mqtt.Client, err error) {
	c.connected.Store(false)
	c.logger.Warn().Err(err).Msg("lost connection to broker")
}

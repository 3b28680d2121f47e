package rabbitmq

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/miFu278/ECommercePlatform-sub000/pkg/logger"
)

// Conn owns the AMQP connection and a single channel for a service
// instance. The channel is shared by the publisher and the consumer loop.
type Conn struct {
	conn *amqp.Connection
	ch   *amqp.Channel
	log  logger.Logger
}

func New(url string, log logger.Logger) (*Conn, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	log.Info("rabbitmq connected")

	return &Conn{conn: conn, ch: ch, log: log}, nil
}

func (c *Conn) Channel() *amqp.Channel {
	return c.ch
}

func (c *Conn) Close() error {
	if err := c.ch.Close(); err != nil {
		c.log.Warn("close channel", logger.Err(err))
	}
	return c.conn.Close()
}

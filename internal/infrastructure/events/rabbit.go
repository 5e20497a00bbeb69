// Package events publica los cambios de stock en RabbitMQ.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-hojas/internal/application/dto"
	"github.com/jhoicas/inventario-hojas/internal/application/ports"
)

// RoutingKeyStockChanged clave de enrutamiento en el exchange topic.
const RoutingKeyStockChanged = "inventory.stock.changed"

var _ ports.StockNotifier = (*Rabbit)(nil)

// channel subconjunto de *amqp.Channel usado para publicar.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Rabbit publica un StockChangedEvent por cada mutación aplicada.
// Un fallo de publicación se registra y no afecta a la mutación.
type Rabbit struct {
	conn     *amqp.Connection
	ch       channel
	exchange string
	timeout  time.Duration
	log      zerolog.Logger
}

// NewRabbit conecta y declara el exchange topic (durable).
func NewRabbit(url, exchange string, log zerolog.Logger) (*Rabbit, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp exchange %s: %w", exchange, err)
	}
	r := newRabbit(ch, exchange, log)
	r.conn = conn
	return r, nil
}

func newRabbit(ch channel, exchange string, log zerolog.Logger) *Rabbit {
	return &Rabbit{ch: ch, exchange: exchange, timeout: 5 * time.Second, log: log}
}

// StockChanged implementa ports.StockNotifier.
func (r *Rabbit) StockChanged(ctx context.Context, change ports.StockChange) {
	body, err := json.Marshal(dto.NewStockChangedEvent(change))
	if err != nil {
		r.log.Error().Err(err).Msg("serializar evento de stock")
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
	defer cancel()

	err = r.ch.PublishWithContext(ctx, r.exchange, RoutingKeyStockChanged, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    change.At,
		Type:         dto.StockChangedType,
		Body:         body,
	})
	if err != nil {
		r.log.Warn().Err(err).Str("command", change.Command).Msg("no se pudo publicar el evento de stock")
		return
	}
	r.log.Debug().Str("command", change.Command).Int("products", len(change.Summaries)).Msg("evento de stock publicado")
}

// Close cierra canal y conexión.
func (r *Rabbit) Close() error {
	if r == nil {
		return nil
	}
	err := r.ch.Close()
	if r.conn != nil {
		if cerr := r.conn.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

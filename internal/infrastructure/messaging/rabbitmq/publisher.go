package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/baechuer/skillmarket/internal/domain"
)

const (
	DefaultExchange = "skillmarket.events"

	confirmWait = 2 * time.Second
)

// Publisher sends domain events to a durable topic exchange in confirm mode.
// It reconnects lazily after a channel or connection failure.
type Publisher struct {
	url      string
	exchange string
	now      func() time.Time

	mu        sync.Mutex
	conn      *amqp.Connection
	ch        *amqp.Channel
	confirmCh <-chan amqp.Confirmation
}

func NewPublisher(url, exchange string) (*Publisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}
	p := &Publisher{url: url, exchange: exchange, now: time.Now}
	if err := p.connect(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resetConn()
	return nil
}

func (p *Publisher) PublishUserRegistered(ctx context.Context, evt domain.UserRegisteredEvent) error {
	return p.publishJSON(ctx, domain.EventUserRegistered, evt)
}

func (p *Publisher) PublishProfileUpdated(ctx context.Context, evt domain.ProfileUpdatedEvent) error {
	return p.publishJSON(ctx, domain.EventProfileUpdated, evt)
}

func (p *Publisher) connect() error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return domain.ErrRabbitUnavailable(fmt.Errorf("dial: %w", err))
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return domain.ErrRabbitUnavailable(fmt.Errorf("channel: %w", err))
	}
	if err := ch.ExchangeDeclare(p.exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return domain.ErrRabbitUnavailable(fmt.Errorf("exchange declare: %w", err))
	}
	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return domain.ErrRabbitUnavailable(fmt.Errorf("confirm mode: %w", err))
	}

	p.confirmCh = ch.NotifyPublish(make(chan amqp.Confirmation, 1))
	p.conn = conn
	p.ch = ch
	return nil
}

func (p *Publisher) ensureConnected() error {
	if p.conn != nil && !p.conn.IsClosed() && p.ch != nil && !p.ch.IsClosed() {
		return nil
	}
	p.resetConn()
	return p.connect()
}

// newMessage builds the persistent JSON publishing for payload.
func newMessage(payload any, routingKey string, now time.Time) (amqp.Publishing, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("marshal %s: %w", routingKey, err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         routingKey,
		Timestamp:    now,
		Body:         body,
	}, nil
}

func (p *Publisher) publishJSON(ctx context.Context, routingKey string, payload any) error {
	msg, err := newMessage(payload, routingKey, p.now())
	if err != nil {
		return err
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, confirmWait)
		defer cancel()
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ensureConnected(); err != nil {
		return err
	}

	tag := p.ch.GetNextPublishSeqNo()
	if err := p.ch.PublishWithContext(ctx, p.exchange, routingKey, false, false, msg); err != nil {
		p.resetConn()
		return domain.ErrRabbitUnavailable(fmt.Errorf("publish %s: %w", routingKey, err))
	}

	if err := awaitConfirm(ctx, p.confirmCh, tag); err != nil {
		// a late confirm on this channel would otherwise meet the next publish
		p.resetConn()
		return fmt.Errorf("%s: %w", routingKey, err)
	}
	return nil
}

// awaitConfirm waits for the confirmation carrying tag. Confirmations for
// earlier tags belong to publishes that already gave up and are skipped.
func awaitConfirm(ctx context.Context, confirms <-chan amqp.Confirmation, tag uint64) error {
	for {
		select {
		case conf, ok := <-confirms:
			if !ok {
				return domain.ErrRabbitUnavailable(fmt.Errorf("confirm channel closed: tag=%d", tag))
			}
			if conf.DeliveryTag < tag {
				continue
			}
			if conf.DeliveryTag > tag {
				return domain.ErrRabbitUnavailable(fmt.Errorf("confirm out of order: want tag=%d got %d", tag, conf.DeliveryTag))
			}
			if !conf.Ack {
				return domain.ErrRabbitUnavailable(fmt.Errorf("nack: tag=%d", tag))
			}
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (p *Publisher) resetConn() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

// Package events phát các sự kiện nghiệp vụ ra message broker sau khi transaction đã commit.
package events

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Routing keys
const (
	ReservationCheckedOut = "reservation.checked_out"
	CleaningDone          = "cleaning.done"
	depositPrefix         = "deposit."
)

// DepositRoutingKey trả về routing key cho một loại sự kiện cọc, ví dụ deposit.refund
func DepositRoutingKey(eventType string) string {
	return depositPrefix + eventType
}

type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
	Close() error
}

// DepositMessage nội dung sự kiện deposit.*
type DepositMessage struct {
	ReservationID   uint      `json:"reservationId"`
	ReservationCode string    `json:"reservationCode"`
	EventID         uint      `json:"eventId"`
	Type            string    `json:"type"`
	Amount          int64     `json:"amount"`
	Status          string    `json:"status"`
	ActorID         *uint     `json:"actorId,omitempty"`
	OccurredAt      time.Time `json:"occurredAt"`
}

// CheckoutMessage nội dung sự kiện reservation.checked_out
type CheckoutMessage struct {
	ReservationID   uint      `json:"reservationId"`
	ReservationCode string    `json:"reservationCode"`
	UnitID          uint      `json:"unitId"`
	CleaningTaskID  uint      `json:"cleaningTaskId"`
	CheckedOutAt    time.Time `json:"checkedOutAt"`
}

// CleaningMessage nội dung sự kiện cleaning.done
type CleaningMessage struct {
	TaskID        uint      `json:"taskId"`
	ReservationID uint      `json:"reservationId"`
	UnitID        uint      `json:"unitId"`
	AssignedToID  *uint     `json:"assignedToId,omitempty"`
	Photos        int       `json:"photos"`
	CompletedAt   time.Time `json:"completedAt"`
}

// NopPublisher bỏ qua mọi sự kiện, dùng khi không cấu hình AMQP_URL
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, routingKey string, payload interface{}) error {
	return nil
}

func (NopPublisher) Close() error { return nil }

// amqpChannel phần của *amqp.Channel mà publisher dùng
type amqpChannel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	IsClosed() bool
	Close() error
}

type dialFunc func(url string) (amqpChannel, io.Closer, error)

func dialAMQP(url string) (amqpChannel, io.Closer, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("rabbitmq: dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("rabbitmq: open channel: %w", err)
	}
	return ch, conn, nil
}

// AMQPPublisher gửi JSON persistent vào queue durable cùng tên routing key.
// Khi broker đóng channel, lần Publish kế tiếp sẽ dial lại.
type AMQPPublisher struct {
	mu       sync.Mutex
	url      string
	dial     dialFunc
	conn     io.Closer
	ch       amqpChannel
	declared map[string]bool
}

func NewAMQPPublisher(url string) (*AMQPPublisher, error) {
	return newAMQPPublisher(url, dialAMQP)
}

func newAMQPPublisher(url string, dial dialFunc) (*AMQPPublisher, error) {
	p := &AMQPPublisher{url: url, dial: dial, declared: map[string]bool{}}
	if err := p.ensureChannel(); err != nil {
		return nil, err
	}
	return p, nil
}

// ensureChannel phải được gọi khi đang giữ p.mu
func (p *AMQPPublisher) ensureChannel() error {
	if p.ch != nil && !p.ch.IsClosed() {
		return nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
	p.ch = nil

	ch, conn, err := p.dial(p.url)
	if err != nil {
		return err
	}
	p.ch, p.conn = ch, conn
	// queue khai báo trên channel cũ có thể chưa tồn tại nếu broker đã restart
	p.declared = map[string]bool{}
	return nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, routingKey string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("rabbitmq: marshal %s: %w", routingKey, err)
	}

	// amqp.Channel không an toàn khi publish đồng thời
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ensureChannel(); err != nil {
		return err
	}

	if !p.declared[routingKey] {
		if _, err := p.ch.QueueDeclare(routingKey, true, false, false, false, nil); err != nil {
			return fmt.Errorf("rabbitmq: declare %s: %w", routingKey, err)
		}
		p.declared[routingKey] = true
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := p.ch.PublishWithContext(ctx, "", routingKey, false, false, msg); err != nil {
		return fmt.Errorf("rabbitmq: publish %s: %w", routingKey, err)
	}
	return nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var err error
	if p.ch != nil && !p.ch.IsClosed() {
		err = p.ch.Close()
	}
	if p.conn != nil {
		if cerr := p.conn.Close(); err == nil {
			err = cerr
		}
	}
	p.ch, p.conn = nil, nil
	return err
}

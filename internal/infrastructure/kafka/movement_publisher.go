// Package kafka publica los movimientos registrados para consumidores externos
// (conciliación, reportes). Es opcional: sin brokers configurados no se usa.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/stock-ledger-api/internal/application/movements"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

var _ movements.EventPublisher = (*MovementPublisher)(nil)

// EventTypeMovementRecorded tipo del evento publicado.
const EventTypeMovementRecorded = "movement.recorded"

// MovementRecordedEvent cuerpo JSON del mensaje. La key del mensaje es el owner_id,
// así todos los movimientos de un dueño van a la misma partición y conservan el orden.
type MovementRecordedEvent struct {
	EventType    string           `json:"event_type"`
	MovementID   string           `json:"movement_id"`
	OwnerID      string           `json:"owner_id"`
	ProductID    string           `json:"product_id"`
	ProductTitle string           `json:"product_title"`
	CustomerID   *string          `json:"customer_id,omitempty"`
	Quantity     int              `json:"quantity"`
	UnitPrice    *decimal.Decimal `json:"unit_price,omitempty"`
	PriceKey     *int             `json:"price_key,omitempty"`
	Revenue      decimal.Decimal  `json:"revenue"`
	Partial      bool             `json:"partial"`
	CreatedAt    time.Time        `json:"created_at"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// MovementPublisher productor Kafka de movimientos.
type MovementPublisher struct {
	writer messageWriter
}

// publishBatchTimeout cada publicación es un solo mensaje y, con registro síncrono,
// la respuesta de la venta espera el WriteMessages: no se acumula lote.
const publishBatchTimeout = 10 * time.Millisecond

// NewMovementPublisher crea el productor para el tópico indicado.
func NewMovementPublisher(brokers []string, topic string) *MovementPublisher {
	return &MovementPublisher{writer: newWriter(brokers, topic)}
}

func newWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		BatchTimeout: publishBatchTimeout,
		WriteTimeout: 10 * time.Second,
		ReadTimeout:  10 * time.Second,
	}
}

// PublishMovementRecorded publica el movimiento ya persistido.
func (p *MovementPublisher) PublishMovementRecorded(ctx context.Context, m *entity.Movement) error {
	msg, err := messageFor(m)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: escribir movimiento %s: %w", m.ID, err)
	}
	return nil
}

// Close cierra el productor (flush de mensajes pendientes).
func (p *MovementPublisher) Close() error {
	return p.writer.Close()
}

func messageFor(m *entity.Movement) (kafka.Message, error) {
	body, err := json.Marshal(MovementRecordedEvent{
		EventType:    EventTypeMovementRecorded,
		MovementID:   m.ID,
		OwnerID:      m.OwnerID,
		ProductID:    m.ProductID,
		ProductTitle: m.ProductTitle,
		CustomerID:   m.CustomerID,
		Quantity:     m.Quantity,
		UnitPrice:    m.UnitPrice,
		PriceKey:     m.PriceKey,
		Revenue:      m.Revenue(),
		Partial:      m.IsPartial(),
		CreatedAt:    m.CreatedAt,
	})
	if err != nil {
		return kafka.Message{}, fmt.Errorf("kafka: serializar movimiento: %w", err)
	}
	return kafka.Message{
		Key:   []byte(m.OwnerID),
		Value: body,
		Time:  m.CreatedAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(EventTypeMovementRecorded)},
		},
	}, nil
}

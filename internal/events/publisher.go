package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/sharpcut-app/booking-api/internal/logger"
)

// Channel carries booking lifecycle events. The notification scheduler (a
// separate process) subscribes here.
const Channel = "bookings.events"

const (
	TypeConfirmed   = "booking.confirmed"
	TypeCancelled   = "booking.cancelled"
	TypeRescheduled = "booking.rescheduled"
)

type BookingEvent struct {
	Type          string    `json:"type"`
	AppointmentID uint      `json:"appointment_id"`
	Code          string    `json:"code"`
	BarberID      uint      `json:"barber_id"`
	ClientID      uint      `json:"client_id"`
	StartTime     time.Time `json:"start_time"`
}

// Publisher pushes booking events to redis pub/sub through a buffered
// channel, same fire-and-forget contract as the audit dispatcher.
type Publisher struct {
	rdb   *redis.Client
	queue chan BookingEvent
}

func NewPublisher(rdb *redis.Client) *Publisher {
	p := &Publisher{
		rdb:   rdb,
		queue: make(chan BookingEvent, 100),
	}

	go p.worker()
	return p
}

func (p *Publisher) worker() {
	for ev := range p.queue {
		payload, err := json.Marshal(ev)
		if err != nil {
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := p.rdb.Publish(ctx, Channel, payload).Err(); err != nil {
			logger.L().Warn("booking event publish failed",
				zap.String("type", ev.Type),
				zap.Error(err))
		}
		cancel()
	}
}

func (p *Publisher) Publish(ev BookingEvent) {
	if p == nil {
		return
	}

	select {
	case p.queue <- ev:
	default:
		logger.L().Warn("event queue full, dropping event",
			zap.String("type", ev.Type))
	}
}

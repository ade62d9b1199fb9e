package worker

import (
	"context"
	"log"

	"storefront/internal/broker"
	"storefront/internal/notify"
)

// NotificationWorker consumes order events and dispatches customer and
// admin notifications. Delivery is best-effort end to end: a failed
// dispatch is logged inside the dispatcher and the message is still
// committed, so broken mail never wedges the consumer group.
type NotificationWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
}

// NewNotificationWorker creates a new notification worker
func NewNotificationWorker(consumer *broker.Consumer, dispatcher *notify.Dispatcher) *NotificationWorker {
	eventHandler := broker.NewEventHandler()
	eventHandler.OnOrderPlaced(dispatcher.NotifyOrderPlaced)

	return &NotificationWorker{
		consumer:     consumer,
		eventHandler: eventHandler,
	}
}

// Start starts the worker
func (w *NotificationWorker) Start(ctx context.Context) error {
	log.Println("Starting notification worker...")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *NotificationWorker) Stop() error {
	log.Println("Stopping notification worker...")
	return w.consumer.Close()
}

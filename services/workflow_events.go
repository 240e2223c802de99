package services

import (
	"log"
	"time"

	"news-editorial-api/models"
)

// WorkflowEvent is emitted after every Execute call, successful or rejected.
// Side-effect consumers (audit log, notifications) subscribe to the bus; the
// engine never waits on them, so a logging or mail outage cannot block or
// roll back a state transition.
type WorkflowEvent struct {
	Action        string
	Detail        string
	Success       bool
	Reason        string
	ContentID     int
	ContentTitle  string
	Category      string
	AuthorID      int
	ContentStatus string
	ReviewStatus  string
	Actor         Actor
	Recipients    []string
	OccurredAt    time.Time
}

// EventPublisher is what the engine holds. The production implementation is
// the async EventBus; tests substitute a synchronous recorder.
type EventPublisher interface {
	Publish(ev WorkflowEvent)
}

// EventSubscriber consumes workflow events. Implementations must swallow
// their own failures; returning is the only contract.
type EventSubscriber interface {
	HandleWorkflowEvent(ev WorkflowEvent)
}

// EventBus fans workflow events out to subscribers from a single dispatcher
// goroutine. Publish never blocks: when the buffer is full the event is
// dropped and logged, which loses audit detail but never a state transition.
type EventBus struct {
	ch   chan WorkflowEvent
	subs []EventSubscriber
	done chan struct{}
}

const eventBufferSize = 256

func NewEventBus(subs ...EventSubscriber) *EventBus {
	b := &EventBus{
		ch:   make(chan WorkflowEvent, eventBufferSize),
		subs: subs,
		done: make(chan struct{}),
	}
	go b.dispatch()
	return b
}

func (b *EventBus) Publish(ev WorkflowEvent) {
	select {
	case b.ch <- ev:
	default:
		log.Printf("workflow event bus full, dropping %s event for content %d", ev.Action, ev.ContentID)
	}
}

// Close stops the dispatcher after draining buffered events.
func (b *EventBus) Close() {
	close(b.ch)
	<-b.done
}

func (b *EventBus) dispatch() {
	defer close(b.done)
	for ev := range b.ch {
		for _, sub := range b.subs {
			b.deliver(sub, ev)
		}
	}
}

func (b *EventBus) deliver(sub EventSubscriber, ev WorkflowEvent) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("workflow event subscriber panic on %s: %v", ev.Action, r)
		}
	}()
	sub.HandleWorkflowEvent(ev)
}

// SystemEvent builds an event not tied to a content item, used for audited
// configuration changes (assignments, publishing rules).
func SystemEvent(action, detail string, actor Actor) WorkflowEvent {
	return WorkflowEvent{
		Action:     action,
		Detail:     detail,
		Success:    true,
		ContentID:  models.SystemContentID,
		Actor:      actor,
		OccurredAt: time.Now(),
	}
}

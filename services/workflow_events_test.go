package services

import (
	"sync"
	"testing"

	"news-editorial-api/models"
)

type countingSubscriber struct {
	mu     sync.Mutex
	events []WorkflowEvent
	panics bool
}

func (s *countingSubscriber) HandleWorkflowEvent(ev WorkflowEvent) {
	if s.panics {
		panic("subscriber blew up")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *countingSubscriber) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

func TestEventBusFansOutToAllSubscribers(t *testing.T) {
	first := &countingSubscriber{}
	second := &countingSubscriber{}
	bus := NewEventBus(first, second)

	for i := 0; i < 5; i++ {
		bus.Publish(WorkflowEvent{Action: models.ActionSubmitted, ContentID: i})
	}
	bus.Close()

	if first.count() != 5 || second.count() != 5 {
		t.Fatalf("expected both subscribers to see 5 events, got %d and %d", first.count(), second.count())
	}
}

func TestEventBusSurvivesSubscriberPanic(t *testing.T) {
	broken := &countingSubscriber{panics: true}
	healthy := &countingSubscriber{}
	bus := NewEventBus(broken, healthy)

	bus.Publish(WorkflowEvent{Action: models.ActionApproved, ContentID: 1})
	bus.Publish(WorkflowEvent{Action: models.ActionPublished, ContentID: 1})
	bus.Close()

	if healthy.count() != 2 {
		t.Fatalf("healthy subscriber must still get both events, got %d", healthy.count())
	}
}

func TestSystemEventTargetsSystemContentID(t *testing.T) {
	ev := SystemEvent("rule_updated", "raised the minimum word count", Actor{ID: 1, Role: models.RoleAdmin})
	if ev.ContentID != models.SystemContentID {
		t.Fatalf("expected system content id, got %d", ev.ContentID)
	}
	if !ev.Success {
		t.Fatalf("system events are successful by definition")
	}
}

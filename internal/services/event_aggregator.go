package services

import (
	"time"

	"github.com/jerome2525/wingz-api/internal/models"
	"github.com/jerome2525/wingz-api/internal/utils"
)

// EventAggregator derives per-ride event views from events already loaded
// for the listing. It is pure: it never queries, only filters, so the bulk
// event fetch stays the single round trip per page.
type EventAggregator struct {
	location *time.Location
	now      func() time.Time
}

func NewEventAggregator(location *time.Location) *EventAggregator {
	if location == nil {
		location = time.UTC
	}
	return &EventAggregator{
		location: location,
		now:      time.Now,
	}
}

// TodaysEvents keeps the events created since local midnight, preserving the
// input order. Events are compared in the aggregator's configured timezone
// regardless of how they were stored.
func (a *EventAggregator) TodaysEvents(events []*models.RideEvent) []*models.RideEvent {
	midnight := utils.StartOfDay(a.now().In(a.location))

	todays := []*models.RideEvent{}
	for _, event := range events {
		if !event.CreatedAt.In(a.location).Before(midnight) {
			todays = append(todays, event)
		}
	}
	return todays
}

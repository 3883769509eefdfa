package infrastructure

import (
	"fmt"

	"stakemax/domain/events"
)

// EventSubjectMapper maps domain events to NATS subjects
type EventSubjectMapper struct {
	prefix string
}

// NewEventSubjectMapper creates a mapper with the given subject prefix
func NewEventSubjectMapper(prefix string) *EventSubjectMapper {
	if prefix == "" {
		prefix = "stakemax"
	}
	return &EventSubjectMapper{prefix: prefix}
}

// MapEventToSubject returns the NATS subject for an event
func (m *EventSubjectMapper) MapEventToSubject(event events.Event) string {
	return fmt.Sprintf("%s.events.%s", m.prefix, event.Type())
}

// StatsSubject returns the subject used for stats snapshot broadcasts
func (m *EventSubjectMapper) StatsSubject() string {
	return fmt.Sprintf("%s.stats.snapshot", m.prefix)
}

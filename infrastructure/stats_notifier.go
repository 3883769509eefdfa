package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"stakemax/domain/entities"
	"stakemax/domain/events"
	"stakemax/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// StatsNotifier fans the aggregate stats snapshot out to subscribed
// observers after every committed bet, and again whenever an observer
// connects or disconnects. Delivery is best-effort: a slow observer's stale
// snapshot is dropped in favor of the newer one, and a disconnected observer
// simply stops receiving.
type StatsNotifier struct {
	statsService  interfaces.StatsService
	natsClient    *NATSClient
	subjectMapper *EventSubjectMapper

	mu        sync.Mutex
	observers map[int64]chan entities.StatsSnapshot
	nextID    int64
}

// NewStatsNotifier creates a stats notifier. The NATS client is optional;
// when nil, snapshots go to in-process observers only.
func NewStatsNotifier(statsService interfaces.StatsService, natsClient *NATSClient, subjectMapper *EventSubjectMapper) *StatsNotifier {
	return &StatsNotifier{
		statsService:  statsService,
		natsClient:    natsClient,
		subjectMapper: subjectMapper,
		observers:     make(map[int64]chan entities.StatsSnapshot),
	}
}

// Register attaches the notifier to an event publisher so every committed
// stats update triggers a broadcast
func (n *StatsNotifier) Register(publisher *NATSEventPublisher) {
	publisher.RegisterLocalHandler(events.EventTypeStatsUpdated, n.onStatsUpdated)
}

// Subscribe adds an observer. The current snapshot is delivered immediately;
// the returned cancel function removes the observer.
func (n *StatsNotifier) Subscribe(ctx context.Context) (<-chan entities.StatsSnapshot, func(), error) {
	ch := make(chan entities.StatsSnapshot, 1)

	n.mu.Lock()
	n.nextID++
	id := n.nextID
	n.observers[id] = ch
	n.mu.Unlock()

	cancel := func() {
		n.mu.Lock()
		delete(n.observers, id)
		n.mu.Unlock()
		// Observer counts changed; let the remaining observers know
		n.Broadcast(context.Background())
	}

	if err := n.Broadcast(ctx); err != nil {
		cancel()
		return nil, nil, err
	}

	return ch, cancel, nil
}

// ObserverCount returns the number of currently connected observers
func (n *StatsNotifier) ObserverCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.observers)
}

// Broadcast reads the current snapshot and delivers it to every observer
// and to NATS
func (n *StatsNotifier) Broadcast(ctx context.Context) error {
	snapshot, err := n.statsService.GetStats(ctx)
	if err != nil {
		return fmt.Errorf("failed to read stats for broadcast: %w", err)
	}
	snapshot = snapshot.Clone()
	snapshot[entities.StatActiveUsers] = int64(n.ObserverCount())

	n.mu.Lock()
	for _, ch := range n.observers {
		select {
		case ch <- snapshot:
		default:
			// Replace a stale undelivered snapshot with the newer one
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snapshot:
			default:
			}
		}
	}
	n.mu.Unlock()

	if n.natsClient != nil {
		data, err := json.Marshal(snapshot)
		if err != nil {
			return fmt.Errorf("failed to marshal stats snapshot: %w", err)
		}
		if err := n.natsClient.Publish(ctx, n.subjectMapper.StatsSubject(), data); err != nil {
			log.WithError(err).Warn("Failed to publish stats snapshot to NATS")
		}
	}

	return nil
}

func (n *StatsNotifier) onStatsUpdated(ctx context.Context, event events.Event) error {
	if _, ok := event.(events.StatsUpdatedEvent); !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}
	return n.Broadcast(ctx)
}

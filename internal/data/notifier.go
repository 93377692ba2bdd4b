package data

import (
	"fmt"
	"sync"
	"time"

	"github.com/stellarshenson/stars-ultranova-web-sub000/internal/game"
	"github.com/stellarshenson/stars-ultranova-web-sub000/pkg/logger"
)

// TurnEvent :
// Describes the event published when a turn is generated.
//
// The `GameID` identifies the game.
//
// The `TurnYear` defines the freshly generated year.
//
// The `Messages` holds the report of each empire.
type TurnEvent struct {
	GameID   string
	TurnYear int
	Messages map[int][]game.Message
}

// Listener :
// Contract of an outbound event consumer. A listener that
// returns an error is retried with exponential backoff.
type Listener interface {
	OnTurnGenerated(event TurnEvent) error
}

// Notifier :
// Fans the turn-generated events out to the registered
// listeners. Delivery runs outside of the turn pipeline so a
// slow consumer never stalls the engine; failed deliveries
// are retried a few times with exponential backoff before
// being dropped.
//
// The `locker` protects the concurrent accesses to the
// listeners.
//
// The `listeners` holds the registered consumers.
//
// The `log` allows to notify delivery failures.
type Notifier struct {
	locker    sync.Mutex
	listeners []Listener
	log       logger.Logger
}

// notifierModule : The logging module of the notifier.
const notifierModule = "notifier"

// deliveryAttempts : How many times a failing listener is
// retried before the event is dropped for it.
const deliveryAttempts = 3

// NewNotifier :
// Builds a notifier with no listener.
//
// The `log` defines the logger.
//
// Returns the notifier.
func NewNotifier(log logger.Logger) *Notifier {
	return &Notifier{
		log: log,
	}
}

// Register :
// Adds a listener to the fan-out list.
//
// The `listener` defines the consumer to add.
func (n *Notifier) Register(listener Listener) {
	n.locker.Lock()
	defer n.locker.Unlock()

	n.listeners = append(n.listeners, listener)
}

// TurnGenerated :
// Publishes a turn-generated event to every listener. The
// deliveries run in their own goroutine.
//
// The `event` defines the event to publish.
func (n *Notifier) TurnGenerated(event TurnEvent) {
	n.locker.Lock()
	listeners := make([]Listener, len(n.listeners))
	copy(listeners, n.listeners)
	n.locker.Unlock()

	for _, listener := range listeners {
		go n.deliver(listener, event)
	}
}

// deliver :
// Pushes an event to one listener, retrying with exponential
// backoff on failure.
//
// The `listener` defines the consumer to deliver to.
//
// The `event` defines the event to deliver.
func (n *Notifier) deliver(listener Listener, event TurnEvent) {
	backoff := 100 * time.Millisecond

	for attempt := 0; attempt < deliveryAttempts; attempt++ {
		err := listener.OnTurnGenerated(event)
		if err == nil {
			return
		}

		n.log.Trace(logger.Warning, notifierModule, fmt.Sprintf("Failed to deliver turn %d of \"%s\" (err: %v)", event.TurnYear, event.GameID, err))

		time.Sleep(backoff)
		backoff *= 2
	}

	n.log.Trace(logger.Error, notifierModule, fmt.Sprintf("Dropped turn %d of \"%s\" after %d attempts", event.TurnYear, event.GameID, deliveryAttempts))
}

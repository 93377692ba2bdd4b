package data

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stellarshenson/stars-ultranova-web-sub000/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type silentLogger struct{}

func (l silentLogger) Trace(level logger.Severity, module string, message string) {}

// recordingListener :
// Listener pushing every received event on a channel, failing
// the configured number of times beforehand.
type recordingListener struct {
	failures int32
	events   chan TurnEvent
}

func newRecordingListener(failures int32) *recordingListener {
	return &recordingListener{
		failures: failures,
		events:   make(chan TurnEvent, 4),
	}
}

func (l *recordingListener) OnTurnGenerated(event TurnEvent) error {
	if atomic.AddInt32(&l.failures, -1) >= 0 {
		return fmt.Errorf("Not ready yet")
	}

	l.events <- event
	return nil
}

func (l *recordingListener) wait(t *testing.T) TurnEvent {
	select {
	case event := <-l.events:
		return event
	case <-time.After(2 * time.Second):
		require.FailNow(t, "No event delivered in time")
		return TurnEvent{}
	}
}

func TestNotifierFansOutToEveryListener(t *testing.T) {
	notifier := NewNotifier(silentLogger{})

	first := newRecordingListener(0)
	second := newRecordingListener(0)
	notifier.Register(first)
	notifier.Register(second)

	notifier.TurnGenerated(TurnEvent{GameID: "alpha", TurnYear: 2401})

	assert.Equal(t, 2401, first.wait(t).TurnYear)
	assert.Equal(t, "alpha", second.wait(t).GameID)
}

func TestFailingListenerIsRetried(t *testing.T) {
	notifier := NewNotifier(silentLogger{})

	flaky := newRecordingListener(1)
	notifier.Register(flaky)

	notifier.TurnGenerated(TurnEvent{GameID: "beta", TurnYear: 2402})

	assert.Equal(t, 2402, flaky.wait(t).TurnYear)
}

func TestListenerExhaustingItsRetriesIsDropped(t *testing.T) {
	notifier := NewNotifier(silentLogger{})

	broken := newRecordingListener(deliveryAttempts)
	notifier.Register(broken)

	notifier.TurnGenerated(TurnEvent{GameID: "gamma", TurnYear: 2403})

	select {
	case <-broken.events:
		t.Fatal("Expected the event to be dropped")
	case <-time.After(time.Second):
	}
}

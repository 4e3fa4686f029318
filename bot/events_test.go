package bot

import (
	"testing"
	"time"

	"github.com/korjavin/triviabot/session"
	"github.com/stretchr/testify/require"
)

func TestOnExpireDeliversWhenBufferHasRoom(t *testing.T) {
	events := make(chan event, 1)
	sink := &chatEvents{chatID: 7, events: events, done: make(chan struct{})}

	sink.OnExpire(session.Snapshot{})

	select {
	case ev := <-events:
		require.Equal(t, eventExpired, ev.kind)
		require.EqualValues(t, 7, ev.chatID)
	case <-time.After(time.Second):
		t.Fatal("expiry event was not delivered")
	}
}

func TestOnExpireGivesUpAfterShutdown(t *testing.T) {
	events := make(chan event) // nobody reads
	done := make(chan struct{})
	sink := &chatEvents{chatID: 7, events: events, done: done}
	close(done)

	returned := make(chan struct{})
	go func() {
		sink.send(event{kind: eventExpired, chatID: 7})
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("send blocked after the bot stopped")
	}
}

func TestShutdownReleasesPendingExpiry(t *testing.T) {
	b, _ := newTestBot(t, &stubSource{})

	sink := &chatEvents{chatID: 1, events: make(chan event), done: b.done}
	returned := make(chan struct{})
	go func() {
		sink.send(event{kind: eventExpired, chatID: 1})
		close(returned)
	}()

	close(b.done)
	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("pending expiry was not released")
	}
}

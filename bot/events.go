package bot

import (
	"errors"
	"log"

	"github.com/korjavin/triviabot/session"
	"github.com/korjavin/triviabot/trivia"
)

type eventKind int

const (
	eventLoaded eventKind = iota
	eventTick
	eventExpired
)

// event carries session activity back into the update loop
type event struct {
	kind   eventKind
	chatID int64
	round  int
	err    error
}

// chatEvents forwards countdown events of one chat into the update loop.
// It runs under the controller's lock, so it never blocks.
type chatEvents struct {
	chatID int64
	events chan<- event
	done   <-chan struct{}
}

func (e *chatEvents) OnTick(remaining int) {
	if !showTick(remaining) {
		return
	}
	select {
	case e.events <- event{kind: eventTick, chatID: e.chatID}:
	default:
		// a later tick refreshes the display anyway
	}
}

func (e *chatEvents) OnExpire(session.Snapshot) {
	ev := event{kind: eventExpired, chatID: e.chatID}
	select {
	case e.events <- ev:
	default:
		go e.send(ev)
	}
}

// send blocks until the update loop takes ev or the bot has stopped
func (e *chatEvents) send(ev event) {
	select {
	case e.events <- ev:
	case <-e.done:
	}
}

// showTick limits timer message edits to every ten seconds and the last five
func showTick(remaining int) bool {
	return remaining%10 == 0 || remaining <= 5
}

func (b *Bot) handleEvent(ev event) {
	chat, ok := b.chats[ev.chatID]
	if !ok {
		return
	}

	switch ev.kind {
	case eventLoaded:
		b.handleLoaded(ev, chat)
	case eventTick:
		snap := chat.ctrl.Snapshot()
		if !chat.loaded || chat.finished || snap.Timer != session.TimerRunning {
			return
		}
		b.editMessage(ev.chatID, chat.timerMsg, formatTimer(snap.Remaining, snap.TimeBudget), ptr(submitKeyboard(chat.round)))
	case eventExpired:
		// an expiry from an earlier round shows up as a session that is not submitted
		if !chat.loaded || chat.finished || !chat.ctrl.Submitted() {
			return
		}
		b.finish(ev.chatID, chat)
	}
}

func (b *Bot) handleLoaded(ev event, chat *chatState) {
	if ev.round != chat.round || errors.Is(ev.err, session.ErrSuperseded) {
		return
	}
	if ev.err != nil {
		log.Printf("Error loading questions for chat %d: %v", ev.chatID, ev.err)
		b.sendMessage(ev.chatID, trivia.UserMessage(ev.err))
		return
	}

	snap := chat.ctrl.Snapshot()
	chat.loaded = true
	log.Printf("Loaded %d questions for chat %d", len(snap.Questions), ev.chatID)

	chat.questionMsg = make([]int, len(snap.Questions))
	for i, q := range snap.Questions {
		selected, has := snap.Selections[q.ID]
		chat.questionMsg[i] = b.sendWithMarkup(ev.chatID, formatQuestion(i, len(snap.Questions), q),
			ptr(answerKeyboard(chat.round, i, q, selected, has)))
	}
	chat.timerMsg = b.sendWithMarkup(ev.chatID, formatTimer(snap.Remaining, snap.TimeBudget), ptr(submitKeyboard(chat.round)))

	// the countdown may have run out while the questions were being sent
	if snap.Submitted {
		b.finish(ev.chatID, chat)
	}
}

// finish shows and stores the result of a submitted quiz, once per round
func (b *Bot) finish(chatID int64, chat *chatState) {
	if chat.finished {
		return
	}
	chat.finished = true

	snap := chat.ctrl.Snapshot()
	b.editMessage(chatID, chat.timerMsg, "Quiz submitted.", nil)
	b.sendMessage(chatID, formatResult(snap))

	if err := b.db.SaveSessionResult(snap.Result(chat.userID, b.now().Unix())); err != nil {
		log.Printf("Error saving session result: %v", err)
	}
}

func ptr[T any](v T) *T {
	return &v
}

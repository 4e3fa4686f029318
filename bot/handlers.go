package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/korjavin/triviabot/session"
)

const helpText = `Welcome to TriviaBot!

Pick your options, then answer the questions with the buttons under each one.

Commands:
/play - Load a new quiz with your options
/submit - Submit the current quiz
/score - Show progress of the current quiz
/options - Show your options
/amount, /category, /difficulty, /type, /encoding, /timer - Change options
/categories - List categories
/stat - View your statistics
/help - Show this message`

// splitCommand extracts the command name and arguments from "/cmd@bot args"
func splitCommand(text string) (string, string) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", text
	}
	name, args, _ := strings.Cut(text[1:], " ")
	name, _, _ = strings.Cut(name, "@")
	return strings.ToLower(name), strings.TrimSpace(args)
}

// handleMessage processes incoming messages
func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.From == nil || message.Chat == nil {
		return
	}
	log.Printf("Received message from %s (ID: %d): %s", message.From.UserName, message.From.ID, message.Text)

	cmd, args := splitCommand(message.Text)
	chatID := message.Chat.ID
	userID := message.From.ID

	switch {
	case cmd == cmdStart || cmd == cmdHelp:
		b.sendMessage(chatID, helpText)
	case cmd == cmdOptions:
		b.handleOptionsCommand(chatID, userID)
	case cmd == cmdCategories:
		b.sendMessage(chatID, formatCategories())
	case isOptionCommand(cmd):
		b.handleSetOption(chatID, userID, cmd, args)
	case cmd == cmdPlay:
		b.handlePlayCommand(ctx, chatID, userID)
	case cmd == cmdSubmit:
		b.handleSubmit(chatID)
	case cmd == cmdScore:
		b.handleScoreCommand(chatID)
	case cmd == cmdStat:
		b.handleStatCommand(chatID, userID)
	default:
		b.sendMessage(chatID, "Unknown command. Use /play to start a quiz or /help for assistance.")
	}
}

func (b *Bot) handleOptionsCommand(chatID, userID int64) {
	opts, err := b.db.GetUserOptions(userID)
	if err != nil {
		log.Printf("Error getting user options: %v", err)
		b.sendMessage(chatID, "Sorry, I couldn't load your options. Please try again later.")
		return
	}
	b.sendMessage(chatID, formatOptions(opts))
}

func (b *Bot) handleSetOption(chatID, userID int64, cmd, args string) {
	opts, err := b.db.GetUserOptions(userID)
	if err != nil {
		log.Printf("Error getting user options: %v", err)
		b.sendMessage(chatID, "Sorry, I couldn't load your options. Please try again later.")
		return
	}

	opts, err = applyOption(opts, cmd, args)
	if err != nil {
		b.sendMessage(chatID, err.Error())
		return
	}

	if err := b.db.SaveUserOptions(userID, opts); err != nil {
		log.Printf("Error saving user options: %v", err)
		b.sendMessage(chatID, "Sorry, I couldn't save your options. Please try again later.")
		return
	}
	b.sendMessage(chatID, formatOptions(opts))
}

// handlePlayCommand starts loading a new quiz. The fetch runs on its own
// goroutine and reports back through the event loop.
func (b *Bot) handlePlayCommand(ctx context.Context, chatID, userID int64) {
	opts, err := b.db.GetUserOptions(userID)
	if err != nil {
		log.Printf("Error getting user options: %v", err)
		b.sendMessage(chatID, "Sorry, I couldn't load your options. Please try again later.")
		return
	}

	chat := b.chat(chatID)
	if chat.loaded && !chat.finished && chat.ctrl.Submitted() {
		// the previous quiz expired but its event has not been handled yet
		b.finish(chatID, chat)
	}
	chat.round++
	chat.userID = userID
	chat.questionMsg = nil
	chat.timerMsg = 0
	chat.loaded = false
	chat.finished = false
	round := chat.round

	b.sendMessage(chatID, "Loading questions...")

	ctrl := chat.ctrl
	go func() {
		ev := event{kind: eventLoaded, chatID: chatID, round: round, err: ctrl.Load(ctx, opts)}
		select {
		case b.events <- ev:
		case <-ctx.Done():
		}
	}()
}

func (b *Bot) handleScoreCommand(chatID int64) {
	chat, ok := b.chats[chatID]
	if !ok {
		b.sendMessage(chatID, "No quiz yet. Use /play to start one.")
		return
	}
	b.sendMessage(chatID, formatProgress(chat.ctrl.Snapshot()))
}

func (b *Bot) handleStatCommand(chatID, userID int64) {
	stats, err := b.db.GetUserStats(userID)
	if err != nil {
		log.Printf("Error getting user stats: %v", err)
		b.sendMessage(chatID, "Sorry, I couldn't retrieve your statistics. Please try again later.")
		return
	}

	recent, err := b.db.GetRecentResults(userID, recentResults)
	if err != nil {
		log.Printf("Error getting recent results: %v", err)
	}

	b.sendMessage(chatID, formatStats(stats, recent))
}

// handleSubmit submits the running quiz of the chat
func (b *Bot) handleSubmit(chatID int64) {
	chat, ok := b.chats[chatID]
	if !ok || len(chat.ctrl.Questions()) == 0 {
		b.sendMessage(chatID, "There is no quiz to submit. Use /play to start one.")
		return
	}
	if !chat.ctrl.Submit() {
		b.sendMessage(chatID, "This quiz was already submitted. Use /play for a new one.")
		return
	}
	b.finish(chatID, chat)
}

// handleCallback processes callback queries from inline buttons
func (b *Bot) handleCallback(callback *tgbotapi.CallbackQuery) {
	if callback.From == nil || callback.Message == nil || callback.Message.Chat == nil {
		return
	}
	log.Printf("Handling callback from user %s (ID: %d) with data: %s",
		callback.From.UserName, callback.From.ID, callback.Data)

	chatID := callback.Message.Chat.ID
	switch {
	case strings.HasPrefix(callback.Data, answerPrefix):
		b.handleAnswerCallback(chatID, callback)
	case strings.HasPrefix(callback.Data, submitPrefix):
		round, err := strconv.Atoi(strings.TrimPrefix(callback.Data, submitPrefix))
		if err != nil {
			log.Printf("Invalid callback format: %s", callback.Data)
			b.sendCallbackResponse(callback.ID, "")
			return
		}
		if chat, ok := b.chats[chatID]; !ok || chat.round != round {
			b.sendCallbackResponse(callback.ID, "This quiz is no longer active.")
			return
		}
		b.sendCallbackResponse(callback.ID, "Submitting...")
		b.handleSubmit(chatID)
	default:
		log.Printf("Invalid callback prefix: %s", callback.Data)
		b.sendCallbackResponse(callback.ID, "")
	}
}

func (b *Bot) handleAnswerCallback(chatID int64, callback *tgbotapi.CallbackQuery) {
	round, qIndex, aIndex, err := parseAnswerData(callback.Data)
	if err != nil {
		log.Printf("Invalid callback format: %s: %v", callback.Data, err)
		b.sendCallbackResponse(callback.ID, "")
		return
	}

	chat, ok := b.chats[chatID]
	if !ok || chat.round != round {
		b.sendCallbackResponse(callback.ID, "This quiz is no longer active.")
		return
	}

	questions := chat.ctrl.Questions()
	if qIndex < 0 || qIndex >= len(questions) {
		b.sendCallbackResponse(callback.ID, "This question is no longer available.")
		return
	}
	q := questions[qIndex]
	answers := q.DisplayAnswers()
	if aIndex < 0 || aIndex >= len(answers) {
		b.sendCallbackResponse(callback.ID, "This answer is no longer available.")
		return
	}
	answer := answers[aIndex]

	switch err := chat.ctrl.SelectAnswer(q.ID, answer); {
	case errors.Is(err, session.ErrSubmitted):
		b.sendCallbackResponse(callback.ID, "This quiz was already submitted.")
		return
	case err != nil:
		log.Printf("Error selecting answer: %v", err)
		b.sendCallbackResponse(callback.ID, "This question is no longer available.")
		return
	}

	log.Printf("User selected answer %d for question %d", aIndex, qIndex)
	b.sendCallbackResponse(callback.ID, "Selected: "+answer)
	if qIndex < len(chat.questionMsg) {
		b.editKeyboard(chatID, chat.questionMsg[qIndex], answerKeyboard(round, qIndex, q, answer, true))
	}
}

func parseAnswerData(data string) (round, question, answer int, err error) {
	parts := strings.Split(strings.TrimPrefix(data, answerPrefix), ":")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("expected 3 fields, got %d", len(parts))
	}
	values := make([]int, 3)
	for i, p := range parts {
		if values[i], err = strconv.Atoi(p); err != nil {
			return 0, 0, 0, err
		}
	}
	return values[0], values[1], values[2], nil
}

// chat returns the state of chatID, creating its controller on first use
func (b *Bot) chat(chatID int64) *chatState {
	if chat, ok := b.chats[chatID]; ok {
		return chat
	}
	chat := &chatState{}
	chat.ctrl = session.NewController(b.source,
		session.WithTickInterval(b.tickInterval),
		session.WithEvents(&chatEvents{chatID: chatID, events: b.events, done: b.done}),
	)
	b.chats[chatID] = chat
	return chat
}

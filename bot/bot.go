package bot

import (
	"context"
	"fmt"
	"log"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/korjavin/triviabot/config"
	"github.com/korjavin/triviabot/database"
	"github.com/korjavin/triviabot/session"
	"github.com/korjavin/triviabot/trivia"
)

// botAPI is the part of the Telegram client the bot uses
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Bot represents the Telegram bot
type Bot struct {
	api          botAPI
	db           *database.DB
	source       session.QuestionSource
	tickInterval time.Duration
	now          func() time.Time

	// chats and events are only touched by the update loop
	chats  map[int64]*chatState
	events chan event
	done   chan struct{}
}

// chatState is the running quiz of one chat
type chatState struct {
	ctrl        *session.Controller
	round       int
	userID      int64
	questionMsg []int
	timerMsg    int
	loaded      bool
	finished    bool
}

const (
	cmdStart      = "start"
	cmdHelp       = "help"
	cmdOptions    = "options"
	cmdCategories = "categories"
	cmdPlay       = "play"
	cmdSubmit     = "submit"
	cmdScore      = "score"
	cmdStat       = "stat"

	recentResults = 5
	eventBuffer   = 64
)

// New creates a new bot instance
func New(cfg *config.Config) (*Bot, error) {
	// Create bot API
	botAPI, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}

	// Set bot debugging mode
	botAPI.Debug = cfg.Debug

	// Initialize database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	log.Printf("Authorized on account %s", botAPI.Self.UserName)

	return newBot(botAPI, db, trivia.NewClient(cfg.TriviaAPIURL, nil), session.DefaultTickInterval), nil
}

func newBot(api botAPI, db *database.DB, source session.QuestionSource, tickInterval time.Duration) *Bot {
	return &Bot{
		api:          api,
		db:           db,
		source:       source,
		tickInterval: tickInterval,
		now:          time.Now,
		chats:        make(map[int64]*chatState),
		events:       make(chan event, eventBuffer),
		done:         make(chan struct{}),
	}
}

// Start listens for updates and session events until ctx is cancelled
func (b *Bot) Start(ctx context.Context) {
	log.Println("Starting bot polling...")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.shutdown()

	for {
		select {
		case <-ctx.Done():
			log.Println("Stopping bot polling...")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.CallbackQuery != nil {
				b.handleCallback(update.CallbackQuery)
			} else if update.Message != nil {
				b.handleMessage(ctx, update.Message)
			}
		case ev := <-b.events:
			b.handleEvent(ev)
		}
	}
}

func (b *Bot) shutdown() {
	close(b.done)
	b.api.StopReceivingUpdates()
	for _, chat := range b.chats {
		chat.ctrl.Close()
	}
	if err := b.db.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
}

// sendMessage sends a plain text message and returns its id, 0 on failure
func (b *Bot) sendMessage(chatID int64, text string) int {
	return b.sendWithMarkup(chatID, text, nil)
}

func (b *Bot) sendWithMarkup(chatID int64, text string, markup *tgbotapi.InlineKeyboardMarkup) int {
	msg := tgbotapi.NewMessage(chatID, text)
	if markup != nil {
		msg.ReplyMarkup = *markup
	}

	sent, err := b.api.Send(msg)
	if err != nil {
		log.Printf("Error sending message: %v", err)
		return 0
	}
	return sent.MessageID
}

// editMessage edits an existing message, keeping an optional keyboard
func (b *Bot) editMessage(chatID int64, messageID int, text string, markup *tgbotapi.InlineKeyboardMarkup) {
	if messageID == 0 {
		return
	}
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ReplyMarkup = markup

	if _, err := b.api.Send(edit); err != nil {
		log.Printf("Error editing message: %v", err)
	}
}

func (b *Bot) editKeyboard(chatID int64, messageID int, markup tgbotapi.InlineKeyboardMarkup) {
	if messageID == 0 {
		return
	}
	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, markup)
	if _, err := b.api.Send(edit); err != nil {
		log.Printf("Error editing keyboard: %v", err)
	}
}

// sendCallbackResponse sends a response to a callback query
func (b *Bot) sendCallbackResponse(callbackID, text string) {
	callback := tgbotapi.NewCallback(callbackID, text)
	if _, err := b.api.Request(callback); err != nil {
		log.Printf("Error sending callback response: %v", err)
	}
}

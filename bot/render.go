package bot

import (
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/korjavin/triviabot/models"
	"github.com/korjavin/triviabot/session"
)

const (
	answerPrefix = "answer:"
	submitPrefix = "submit:"

	selectedMark = "✅ "
)

func formatOptions(o models.SessionOptions) string {
	timer := "off"
	if o.TimeBudget > 0 {
		timer = formatDuration(o.TimeBudget)
	}
	return fmt.Sprintf(`⚙️ Your options:

Questions: %d
Category: %s
Difficulty: %s
Type: %s
Encoding: %s
Timer: %s

Change them with /amount, /category, /difficulty, /type, /encoding, /timer.
Use /play to start.`,
		o.Amount, models.CategoryName(o.Category), o.Difficulty, o.Type, o.Encoding, timer)
}

func formatCategories() string {
	var sb strings.Builder
	sb.WriteString("Categories (use /category <id>):\n\n")
	sb.WriteString("any - Any Category\n")
	for _, id := range models.CategoryIDs() {
		fmt.Fprintf(&sb, "%d - %s\n", id, models.Categories[id])
	}
	return sb.String()
}

func formatQuestion(index, total int, q *models.Question) string {
	return fmt.Sprintf("Question %d/%d [%s, %s]\n\n%s",
		index+1, total, q.DecodedCategory(), q.Difficulty, q.DecodedText())
}

func answerCallbackData(round, question, answer int) string {
	return fmt.Sprintf("%s%d:%d:%d", answerPrefix, round, question, answer)
}

func submitCallbackData(round int) string {
	return fmt.Sprintf("%s%d", submitPrefix, round)
}

// answerKeyboard renders the frozen answer order, marking the selected answer
func answerKeyboard(round, index int, q *models.Question, selected string, hasSelection bool) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for j, answer := range q.DisplayAnswers() {
		label := answer
		if hasSelection && answer == selected {
			label = selectedMark + answer
		}
		button := tgbotapi.NewInlineKeyboardButtonData(label, answerCallbackData(round, index, j))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func submitKeyboard(round int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Submit", submitCallbackData(round)),
		),
	)
}

func formatTimer(remaining, budget int) string {
	if budget <= 0 {
		return "No timer. Press Submit when you are done."
	}
	return fmt.Sprintf("⏱ Time: %s left. Press Submit when you are done.", formatDuration(remaining))
}

func formatDuration(seconds int) string {
	return (time.Duration(seconds) * time.Second).String()
}

func formatProgress(snap session.Snapshot) string {
	switch {
	case snap.Loading:
		return "Loading questions..."
	case snap.Err != nil:
		return "The last load failed. Use /play to try again."
	case len(snap.Questions) == 0:
		return "No questions loaded. Use /play to start."
	case snap.Submitted:
		return fmt.Sprintf("You scored %d / %d", snap.Score, len(snap.Questions))
	}
	text := fmt.Sprintf("Answered %d of %d questions.", snap.Answered(), len(snap.Questions))
	if snap.TimeBudget > 0 {
		text += fmt.Sprintf("\nTime left: %s", formatDuration(snap.Remaining))
	}
	return text
}

// formatResult renders the final score with the correct answer for every question
func formatResult(snap session.Snapshot) string {
	var sb strings.Builder
	if snap.AutoSubmitted {
		sb.WriteString("⏰ Time's up!\n\n")
	}
	fmt.Fprintf(&sb, "🏁 You scored %d / %d\n", snap.Score, len(snap.Questions))

	for i, q := range snap.Questions {
		selected, answered := snap.Selections[q.ID]
		mark := "❌"
		if snap.IsCorrect(q) {
			mark = "✅"
		} else if !answered {
			mark = "➖"
			selected = "no answer"
		}
		fmt.Fprintf(&sb, "\n%s %d. %s\n   Your answer: %s\n   Correct: %s\n",
			mark, i+1, q.DecodedText(), selected, q.DecodedCorrect())
	}
	return sb.String()
}

func formatStats(stats models.UserStats, recent []models.SessionResult) string {
	if stats.Sessions == 0 {
		return "You have not finished any quiz yet. Use /play to start one."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `📊 Your Statistics:

Quizzes played: %d
Questions answered: %d
Correct answers: %d ✅
Accuracy: %.1f%%
Best score: %d / %d
Ran out of time: %d`,
		stats.Sessions, stats.QuestionsTotal, stats.CorrectTotal, stats.Accuracy(),
		stats.BestScore, stats.BestOutOf, stats.AutoSubmitted)

	if len(recent) > 0 {
		sb.WriteString("\n\nRecent quizzes:\n")
		for i, r := range recent {
			fmt.Fprintf(&sb, "%d. %d / %d - %s, %s, %s\n",
				i+1, r.Correct, r.QuestionCount, models.CategoryName(r.Category), r.Difficulty, r.Type)
		}
	}
	return sb.String()
}

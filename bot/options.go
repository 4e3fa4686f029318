package bot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/korjavin/triviabot/models"
)

const (
	cmdAmount     = "amount"
	cmdCategory   = "category"
	cmdDifficulty = "difficulty"
	cmdType       = "type"
	cmdEncoding   = "encoding"
	cmdTimer      = "timer"
)

// applyOption returns opts with one setting changed by an option command
func applyOption(opts models.SessionOptions, cmd, arg string) (models.SessionOptions, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return opts, fmt.Errorf("usage: %s", optionUsage(cmd))
	}

	switch cmd {
	case cmdAmount:
		n, err := strconv.Atoi(arg)
		if err != nil || n < models.MinAmount || n > models.MaxAmount {
			return opts, fmt.Errorf("number of questions must be between %d and %d", models.MinAmount, models.MaxAmount)
		}
		opts.Amount = n
	case cmdCategory:
		if strings.EqualFold(arg, "any") {
			opts.Category = models.CategoryAny
			break
		}
		id, err := strconv.Atoi(arg)
		if _, ok := models.Categories[id]; err != nil || !ok {
			return opts, fmt.Errorf("unknown category %q, see /categories", arg)
		}
		opts.Category = id
	case cmdDifficulty:
		d, ok := models.ParseDifficulty(arg)
		if !ok {
			return opts, fmt.Errorf("usage: %s", optionUsage(cmd))
		}
		opts.Difficulty = d
	case cmdType:
		t, ok := models.ParseAnswerType(arg)
		if !ok {
			return opts, fmt.Errorf("usage: %s", optionUsage(cmd))
		}
		opts.Type = t
	case cmdEncoding:
		e, ok := models.ParseEncoding(arg)
		if !ok {
			return opts, fmt.Errorf("usage: %s", optionUsage(cmd))
		}
		opts.Encoding = e
	case cmdTimer:
		seconds, err := parseSeconds(arg)
		if err != nil || seconds < 0 || seconds > models.MaxTimeBudget {
			return opts, fmt.Errorf("timer must be between 0 and %d seconds (0 disables it)", models.MaxTimeBudget)
		}
		opts.TimeBudget = seconds
	default:
		return opts, fmt.Errorf("unknown option %q", cmd)
	}
	return opts, nil
}

// parseSeconds accepts plain seconds or a minute suffix like "5m".
// Minute values beyond the largest time budget are rejected before scaling.
func parseSeconds(s string) (int, error) {
	s = strings.ToLower(s)
	if strings.HasSuffix(s, "m") {
		n, err := strconv.Atoi(strings.TrimSuffix(s, "m"))
		if err != nil {
			return 0, err
		}
		if n < 0 || n > models.MaxTimeBudget/60 {
			return 0, fmt.Errorf("%d minutes is out of range", n)
		}
		return n * 60, nil
	}
	return strconv.Atoi(strings.TrimSuffix(s, "s"))
}

func optionUsage(cmd string) string {
	switch cmd {
	case cmdAmount:
		return fmt.Sprintf("/amount <%d-%d>", models.MinAmount, models.MaxAmount)
	case cmdCategory:
		return "/category <id|any>"
	case cmdDifficulty:
		return "/difficulty any|easy|medium|hard"
	case cmdType:
		return "/type any|multiple|boolean"
	case cmdEncoding:
		return "/encoding default|url3986|base64"
	case cmdTimer:
		presets := make([]string, len(models.TimeBudgets))
		for i, seconds := range models.TimeBudgets {
			presets[i] = strconv.Itoa(seconds)
		}
		return "/timer <seconds|minutes m>, 0 disables it. Presets: " + strings.Join(presets, ", ")
	}
	return "/" + cmd
}

func isOptionCommand(cmd string) bool {
	switch cmd {
	case cmdAmount, cmdCategory, cmdDifficulty, cmdType, cmdEncoding, cmdTimer:
		return true
	}
	return false
}

package trivia

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/korjavin/triviabot/models"
)

const (
	DefaultBaseURL = "https://opentdb.com/api.php"
	DefaultTimeout = 20 * time.Second

	// maxBodySize caps the response read; fifty questions fit in a fraction of it
	maxBodySize = 4 << 20
)

// Open Trivia DB response codes
const (
	codeSuccess          = 0
	codeNoResults        = 1
	codeInvalidParameter = 2
	codeTokenNotFound    = 3
	codeTokenEmpty       = 4
)

// Client fetches questions from the Open Trivia DB
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for baseURL; an empty baseURL uses the public API.
// A nil httpClient gets one with DefaultTimeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

type apiQuestion struct {
	Category         string   `json:"category"`
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

type apiResponse struct {
	ResponseCode *int          `json:"response_code"`
	Results      []apiQuestion `json:"results"`
}

// BuildURL returns the request URL for opts. Filters set to "any" and the
// default encoding are left out of the query.
func (c *Client) BuildURL(opts models.SessionOptions) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("bad trivia url: %w", err)
	}
	opts = opts.Normalized()

	q := u.Query()
	q.Set("amount", strconv.Itoa(opts.Amount))
	if opts.Category != models.CategoryAny {
		q.Set("category", strconv.Itoa(opts.Category))
	}
	if opts.Difficulty != models.DifficultyAny {
		q.Set("difficulty", string(opts.Difficulty))
	}
	if opts.Type != models.AnswerTypeAny {
		q.Set("type", string(opts.Type))
	}
	if opts.Encoding != models.EncodingDefault {
		q.Set("encode", string(opts.Encoding))
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Fetch performs exactly one request and returns the decoded questions.
// Errors are *NetworkError, *ServerError, *DecodingError or ErrNoResults.
func (c *Client) Fetch(ctx context.Context, opts models.SessionOptions) ([]*models.Question, error) {
	opts = opts.Normalized()
	reqURL, err := c.BuildURL(opts)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating trivia request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	reqSentTime := time.Now()
	resp, err := c.httpClient.Do(req)
	reqDuration := time.Since(reqSentTime)
	if err != nil {
		log.Printf("Trivia request failed after %v: %v", reqDuration, err)
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	log.Printf("Trivia API answered in %v with status code: %d", reqDuration, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ServerError{Status: resp.StatusCode, Message: fmt.Sprintf("HTTP %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	if len(body) > maxBodySize {
		return nil, &DecodingError{Err: fmt.Errorf("response body exceeds %d bytes", maxBodySize)}
	}

	var decoded apiResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, &DecodingError{Err: err}
	}
	if decoded.ResponseCode == nil {
		return nil, &DecodingError{Err: fmt.Errorf("missing response_code")}
	}

	switch code := *decoded.ResponseCode; code {
	case codeSuccess:
	case codeNoResults:
		return nil, ErrNoResults
	case codeInvalidParameter:
		return nil, &ServerError{Message: "Invalid parameters"}
	case codeTokenNotFound:
		return nil, &ServerError{Message: "Session token not found"}
	case codeTokenEmpty:
		return nil, &ServerError{Message: "Session token exhausted"}
	default:
		return nil, &ServerError{Message: fmt.Sprintf("Unknown response code: %d", code)}
	}

	results := decoded.Results
	if len(results) > opts.Amount {
		log.Printf("Trivia API returned %d questions for %d requested, dropping the rest", len(results), opts.Amount)
		results = results[:opts.Amount]
	}

	questions := make([]*models.Question, 0, len(results))
	for i, raw := range results {
		q, err := toQuestion(raw, opts.Encoding)
		if err != nil {
			return nil, &DecodingError{Err: fmt.Errorf("question %d: %w", i, err)}
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// toQuestion validates the shape of one result. The type field is decoded
// eagerly because it selects how answers are handled; every other field is
// stored as delivered.
func toQuestion(raw apiQuestion, enc models.Encoding) (*models.Question, error) {
	qType, ok := models.ParseQuestionType(enc.Decode(raw.Type))
	if !ok {
		return nil, fmt.Errorf("unknown question type %q", raw.Type)
	}
	if qType == models.TypeMultiple && len(raw.IncorrectAnswers) == 0 {
		return nil, fmt.Errorf("multiple choice question without incorrect answers")
	}
	return models.NewQuestion(
		raw.Category,
		qType,
		enc.Decode(raw.Difficulty),
		raw.Question,
		raw.CorrectAnswer,
		raw.IncorrectAnswers,
		enc,
	), nil
}

package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Annsgit/melbourneedu-backend/internal/config"
	"github.com/Annsgit/melbourneedu-backend/internal/models"
	"github.com/Annsgit/melbourneedu-backend/pkg/logger"
)

// SchoolBot persona given to the model on every request
const schoolBotSystemPrompt = `You are SchoolBot, a helpful assistant for the Melbourne Education Guide website.
Your purpose is to help parents and students find the right schools in Melbourne, Australia.

You have access to a database of schools with the following information:
- Name, type (Public, Private, Catholic), and education level (Primary, Secondary, Combined)
- Location (suburb, postcode, address)
- Facilities and programs offered
- Academic performance metrics (for Secondary schools)
- Fees (mostly for Private and Catholic schools)
- Contact information

You should:
- Provide friendly, concise responses about Melbourne schools
- Help users compare schools based on various factors
- Suggest schools that match specific criteria (location, programs, fees, etc.)
- Answer questions about the education system in Victoria, Australia
- Be honest when you don't have enough information

You should NOT:
- Make up information about schools that isn't in your database
- Provide personal opinions on which school is "best" - focus on facts
- Discuss sensitive topics beyond educational considerations
- Provide information about schools outside of Melbourne and surrounding areas

Keep your answers relevant to education in Melbourne and focus on being helpful to parents making school choices.`

// Context sent to the model is capped to stay under token limits
const maxSchoolsInContext = 20

const openAIMaxRetries = 3

var openAIHTTPClient = &http.Client{Timeout: 60 * time.Second}

type openAIHTTPError struct {
	StatusCode int
	Body       string
}

func (e *openAIHTTPError) Error() string {
	return fmt.Sprintf("openai http %d: %s", e.StatusCode, e.Body)
}

func isRetryableOpenAIError(err error) bool {
	if err == nil {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var httpErr *openAIHTTPError
	if errors.As(err, &httpErr) {
		code := httpErr.StatusCode
		return code == http.StatusRequestTimeout || code == http.StatusTooManyRequests || code >= 500
	}
	return false
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// OpenAIConfigured reports whether an API key is present. Without one,
// SchoolBot answers from stored data alone.
func OpenAIConfigured() bool {
	return config.AppConfig != nil && config.AppConfig.OpenAIAPIKey != ""
}

func openAIBaseURL() string {
	if config.AppConfig.OpenAIBaseURL != "" {
		return config.AppConfig.OpenAIBaseURL
	}
	return "https://api.openai.com"
}

func openAIModel() string {
	if config.AppConfig.OpenAIModel != "" {
		return config.AppConfig.OpenAIModel
	}
	return "gpt-4o"
}

func openAIChatOnce(ctx context.Context, reqBody chatCompletionRequest) (*http.Response, []byte, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(reqBody); err != nil {
		return nil, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, openAIBaseURL()+"/v1/chat/completions", &buf)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+config.AppConfig.OpenAIAPIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := openAIHTTPClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return resp, nil, readErr
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp, raw, &openAIHTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return resp, raw, nil
}

// openAIChat calls the chat completions endpoint with exponential backoff
// on timeouts, 429s and 5xx responses, honoring Retry-After when present.
func openAIChat(ctx context.Context, messages []chatMessage) (string, error) {
	reqBody := chatCompletionRequest{
		Model:       openAIModel(),
		Messages:    messages,
		Temperature: 0.7,
		MaxTokens:   600,
	}

	backoff := 1 * time.Second
	var lastErr error

	for attempt := 0; attempt <= openAIMaxRetries; attempt++ {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		resp, raw, err := openAIChatOnce(ctx, reqBody)
		if err == nil {
			var parsed chatCompletionResponse
			if uErr := json.Unmarshal(raw, &parsed); uErr != nil {
				return "", fmt.Errorf("decode openai response: %w", uErr)
			}
			if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
				return "", errors.New("openai returned no choices")
			}
			return parsed.Choices[0].Message.Content, nil
		}

		lastErr = err
		if !isRetryableOpenAIError(err) || attempt == openAIMaxRetries {
			return "", err
		}

		sleepFor := backoff
		if resp != nil {
			if ra := strings.TrimSpace(resp.Header.Get("Retry-After")); ra != "" {
				if secs, parseErr := strconv.Atoi(ra); parseErr == nil && secs > 0 {
					sleepFor = time.Duration(secs) * time.Second
				}
			}
		}
		if sleepFor > 10*time.Second {
			sleepFor = 10 * time.Second
		}

		logger.Warn().
			Int("attempt", attempt+1).
			Int("max_retries", openAIMaxRetries).
			Dur("sleep", sleepFor).
			Err(err).
			Msg("OpenAI request retrying")
		time.Sleep(sleepFor)
		backoff *= 2
	}

	return "", lastErr
}

func formatSchoolContext(schools []models.School) string {
	var b strings.Builder
	for _, s := range schools {
		fmt.Fprintf(&b, "\nSchool: %s\n", s.Name)
		fmt.Fprintf(&b, "Type: %s\n", s.Type)
		fmt.Fprintf(&b, "Education Level: %s\n", s.EducationLevel)
		fmt.Fprintf(&b, "Location: %s, %s, %s\n", s.Suburb, s.Postcode, s.Address)
		if s.YearLevels != "" {
			fmt.Fprintf(&b, "Year Levels: %s\n", s.YearLevels)
		}
		if s.StudentCount > 0 {
			fmt.Fprintf(&b, "Student Count: %d\n", s.StudentCount)
		}
		if s.AtarAverage > 0 {
			fmt.Fprintf(&b, "ATAR Average: %.1f\n", float64(s.AtarAverage)/10)
		}
		if s.Fees != "" {
			fmt.Fprintf(&b, "Annual Fees: %s\n", s.Fees)
		} else if s.Type == "Public" {
			b.WriteString("Fees: Not applicable (Public School)\n")
		}
		if len(s.Facilities) > 0 {
			fmt.Fprintf(&b, "Facilities: %s\n", strings.Join(s.Facilities, ", "))
		}
		if len(s.Programs) > 0 {
			fmt.Fprintf(&b, "Programs: %s\n", strings.Join(s.Programs, ", "))
		}
		if s.Website != "" {
			fmt.Fprintf(&b, "Website: %s\n", s.Website)
		}
		if s.Description != "" {
			fmt.Fprintf(&b, "Description: %s\n", s.Description)
		}
	}
	return b.String()
}

// ProcessSchoolBotQuery answers a free-text question about Melbourne schools.
// It assembles relevant school data into the model context; when the API is
// unconfigured or errors out, it degrades to the rule-based direct answer.
func ProcessSchoolBotQuery(ctx context.Context, query string, filterSchoolIDs []uint) (string, error) {
	if !OpenAIConfigured() {
		return AnswerSchoolQueryDirect(query, filterSchoolIDs)
	}

	schools, err := findRelevantSchools(query, filterSchoolIDs, maxSchoolsInContext)
	if err != nil {
		return "", err
	}

	contextPrompt := fmt.Sprintf(
		"Here are details about %d schools in Melbourne that may be relevant to the user's query:\n%s\n"+
			"Based on this information, please provide a helpful response to the user's question. "+
			"If the information provided isn't sufficient to fully answer the query, you can mention this "+
			"and suggest what additional details might help.",
		len(schools), formatSchoolContext(schools))

	answer, err := openAIChat(ctx, []chatMessage{
		{Role: "system", Content: schoolBotSystemPrompt},
		{Role: "user", Content: contextPrompt},
		{Role: "user", Content: query},
	})
	if err != nil {
		logger.Error().Err(err).Msg("OpenAI query failed, using direct answer")
		return AnswerSchoolQueryDirect(query, filterSchoolIDs)
	}
	return answer, nil
}

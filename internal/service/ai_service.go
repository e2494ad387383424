package service

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"kidsphere_backend/internal/config"
	"kidsphere_backend/pkg/monitoring"
)

type AIService struct {
	config config.AIConfig
	client *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{
		config: cfg,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Model    string          `json:"model"`
	Messages []AIChatMessage `json:"messages"`
	Stream   bool            `json:"stream,omitempty"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
		Delta   AIChatMessage `json:"delta"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Chat sends one blocking completion request and returns the assistant
// reply with any Markdown code fences stripped.
func (s *AIService) Chat(system string, history []AIChatMessage, prompt string) (string, error) {
	messages := make([]AIChatMessage, 0, len(history)+2)
	if system != "" {
		messages = append(messages, AIChatMessage{Role: "system", Content: system})
	}
	messages = append(messages, history...)
	messages = append(messages, AIChatMessage{Role: "user", Content: prompt})

	reqBody := ChatCompletionRequest{
		Model:    s.config.Model,
		Messages: messages,
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest("POST", s.config.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	start := time.Now()
	resp, err := s.client.Do(req)
	monitoring.AICallDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var completion ChatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", err
	}
	if completion.Error != nil {
		return "", fmt.Errorf("AI API error: %s", completion.Error.Message)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("AI API returned no choices")
	}

	return StripCodeFences(completion.Choices[0].Message.Content), nil
}

// ChatStream streams completion chunks over a channel.
func (s *AIService) ChatStream(system string, history []AIChatMessage, prompt string) (<-chan string, <-chan error) {
	out := make(chan string)
	errChan := make(chan error, 1)

	messages := make([]AIChatMessage, 0, len(history)+2)
	if system != "" {
		messages = append(messages, AIChatMessage{Role: "system", Content: system})
	}
	messages = append(messages, history...)
	messages = append(messages, AIChatMessage{Role: "user", Content: prompt})

	reqBody := ChatCompletionRequest{
		Model:    s.config.Model,
		Messages: messages,
		Stream:   true,
	}
	jsonData, _ := json.Marshal(reqBody)

	go func() {
		defer close(out)
		defer close(errChan)

		req, err := http.NewRequest("POST", s.config.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
		if err != nil {
			errChan <- err
			return
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

		start := time.Now()
		resp, err := s.client.Do(req)
		if err != nil {
			errChan <- err
			return
		}
		defer resp.Body.Close()
		defer func() {
			monitoring.AICallDuration.Observe(time.Since(start).Seconds())
		}()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			errChan <- fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))
			return
		}

		reader := bufio.NewReader(resp.Body)
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				if err != io.EOF {
					errChan <- err
				}
				break
			}

			line = strings.TrimSpace(line)
			if line == "" || !strings.HasPrefix(line, "data: ") {
				continue
			}

			data := strings.TrimPrefix(line, "data: ")
			if data == "[DONE]" {
				break
			}

			var streamResp ChatCompletionResponse
			if err := json.Unmarshal([]byte(data), &streamResp); err != nil {
				continue
			}
			if len(streamResp.Choices) > 0 {
				if content := streamResp.Choices[0].Delta.Content; content != "" {
					out <- content
				}
			}
		}
	}()

	return out, errChan
}

// StripCodeFences unwraps a reply the model wrapped in triple backticks,
// with or without a language tag. Content stored in the result cache is
// plain text, so fences would leak into clients verbatim.
func StripCodeFences(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		// Drop the language tag line (```json etc).
		trimmed = trimmed[idx+1:]
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

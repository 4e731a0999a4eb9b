package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Menova10/menova-empower-journey/internal/domain"
	"github.com/Menova10/menova-empower-journey/internal/logger"
	"github.com/Menova10/menova-empower-journey/internal/normalize"
)

// MaxGeneratedResources caps how many resources one generation call asks for.
const MaxGeneratedResources = 5

type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
}

// OpenAI asks a chat-completion endpoint for curated resources.
type OpenAI struct {
	cfg    OpenAIConfig
	client *http.Client
	log    logger.Logger
}

func NewOpenAI(cfg OpenAIConfig, client *http.Client, log logger.Logger) *OpenAI {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &OpenAI{cfg: cfg, client: client, log: log}
}

func (o *OpenAI) Name() domain.Source { return domain.SourceOpenAI }

// HasCredential reports whether an API key is configured.
func (o *OpenAI) HasCredential() bool { return o.cfg.APIKey != "" }

// BaseURL is the configured endpoint root, used by reachability checks.
func (o *OpenAI) BaseURL() string { return o.cfg.BaseURL }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type generatedPayload struct {
	Resources *[]normalize.GeneratedResource `json:"resources"`
}

const systemPrompt = "You curate trustworthy menopause health resources. " +
	"Reply with a JSON object of the form " +
	`{"resources":[{"title":"","description":"","url":"","content_type":"article|video","categories":[""],"author_name":""}]}` +
	" and nothing else."

func buildPrompt(topics []string, n int) string {
	subject := "general menopause wellness"
	if len(topics) > 0 {
		subject = strings.Join(topics, ", ")
	}
	return fmt.Sprintf("List %d high-quality, currently available articles or videos about %s. "+
		"Use real URLs from reputable health organisations and tag each with the symptoms it covers.", n, subject)
}

func (o *OpenAI) Fetch(ctx context.Context, q Query) Result {
	start := time.Now()
	if !o.HasCredential() {
		return finish(o.log, o.Name(), start, failed(o.Name(), FailureCredential, domain.ErrMissingCredential))
	}
	n := clampMax(q.Max, MaxGeneratedResources, MaxGeneratedResources)

	content, res := o.complete(ctx, chatRequest{
		Model: o.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(q.Topics, n)},
		},
		ResponseFormat: &responseFormat{Type: "json_object"},
		Temperature:    o.cfg.Temperature,
	})
	if res.Err != nil {
		return finish(o.log, o.Name(), start, res)
	}

	resources, err := parseResources(content)
	if err != nil {
		o.log.Warn("unparseable generation response", logger.String("raw", content))
		return finish(o.log, o.Name(), start, failed(o.Name(), FailureParse, err))
	}

	items := make([]domain.ContentItem, 0, len(resources))
	for _, r := range resources {
		item, err := normalize.FromGenerated(r)
		if err != nil {
			o.log.Debug("dropping generated resource", logger.Error(err))
			continue
		}
		items = append(items, item)
		if len(items) == n {
			break
		}
	}
	return finish(o.log, o.Name(), start, Result{Items: items})
}

func parseResources(content string) ([]normalize.GeneratedResource, error) {
	var payload generatedPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, fmt.Errorf("decode resources: %w", err)
	}
	if payload.Resources == nil {
		return nil, errors.New("decode resources: missing resources field")
	}
	return *payload.Resources, nil
}

// complete performs one chat completion and returns the first choice text.
func (o *OpenAI) complete(ctx context.Context, body chatRequest) (string, Result) {
	buf, err := json.Marshal(body)
	if err != nil {
		return "", failed(o.Name(), FailureParse, fmt.Errorf("encode request: %w", err))
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.cfg.BaseURL+"/chat/completions", bytes.NewReader(buf))
	if err != nil {
		return "", failed(o.Name(), FailureTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.cfg.APIKey)

	resp, err := o.client.Do(req)
	if err != nil {
		return "", failed(o.Name(), FailureTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", upstream(o.Name(), resp.StatusCode, readBody(resp))
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", failed(o.Name(), FailureParse, fmt.Errorf("decode completion: %w", err))
	}
	if len(out.Choices) == 0 {
		return "", failed(o.Name(), FailureParse, errors.New("completion has no choices"))
	}
	return out.Choices[0].Message.Content, Result{}
}

// Probe performs one minimal completion to confirm the credential works.
func (o *OpenAI) Probe(ctx context.Context) error {
	if !o.HasCredential() {
		return domain.ErrMissingCredential
	}
	_, res := o.complete(ctx, chatRequest{
		Model:       o.cfg.Model,
		Messages:    []chatMessage{{Role: "user", Content: "ping"}},
		Temperature: 0,
		MaxTokens:   5,
	})
	if res.Err != nil {
		return res.Err
	}
	return nil
}

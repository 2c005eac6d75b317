package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Chat roles form a closed set; anything else is rejected before the
// upstream call.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// FallbackReply is returned verbatim whenever the upstream model cannot
// be reached or answers with anything unusable.
const FallbackReply = "The AI consultant is currently unavailable. Please try again later."

type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// AdvisorService proxies the chat consultant to an external generative
// model. The pricing/order core never calls it.
type AdvisorService struct {
	URL    string
	Key    string
	Client *http.Client
}

func NewAdvisorService(url, key string, client *http.Client) *AdvisorService {
	if client == nil {
		client = http.DefaultClient
	}
	return &AdvisorService{URL: url, Key: key, Client: client}
}

// ValidateTranscript checks the closed role set exhaustively.
func ValidateTranscript(turns []Turn) error {
	if len(turns) == 0 {
		return fmt.Errorf("empty transcript")
	}
	for i, t := range turns {
		switch t.Role {
		case RoleUser, RoleModel:
			if strings.TrimSpace(t.Content) == "" {
				return fmt.Errorf("turn %d: empty content", i)
			}
		default:
			return fmt.Errorf("turn %d: unknown role %q", i, t.Role)
		}
	}
	return nil
}

type advisorRequest struct {
	Messages []Turn `json:"messages"`
}

type advisorResponse struct {
	Reply string `json:"reply"`
}

// Ask forwards the transcript upstream and returns the model's reply.
// Every failure mode (no URL configured, network error, bad status,
// undecodable or empty reply) recovers locally into FallbackReply; the
// caller only sees a string. Cancellation comes from ctx, not from a
// hardcoded delay.
func (s *AdvisorService) Ask(ctx context.Context, turns []Turn) string {
	if s.URL == "" {
		return FallbackReply
	}

	body, err := json.Marshal(advisorRequest{Messages: turns})
	if err != nil {
		return FallbackReply
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewReader(body))
	if err != nil {
		return FallbackReply
	}
	req.Header.Set("Content-Type", "application/json")
	if s.Key != "" {
		req.Header.Set("Authorization", "Bearer "+s.Key)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return FallbackReply
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return FallbackReply
	}

	var out advisorResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return FallbackReply
	}
	if strings.TrimSpace(out.Reply) == "" {
		return FallbackReply
	}
	return out.Reply
}

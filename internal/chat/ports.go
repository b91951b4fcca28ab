package chat

import (
	"context"
	"errors"
	"time"

	"github.com/Vovarama1992/gold-assistant/internal/intent"
)

var (
	ErrInvalidInput = errors.New("invalid message")
	ErrInternal     = errors.New("internal error")
	ErrNoHitLog     = errors.New("intent hit log is not configured")
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of the conversation the client keeps.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Request struct {
	Message string
	History []Message
}

type Reply struct {
	Response string
	Intent   intent.Intent
	OffTopic bool
}

// Hit is what gets recorded per answered request. No message text.
type Hit struct {
	Intent     intent.Intent
	OffTopic   bool
	HistoryLen int
	CreatedAt  time.Time
}

type IntentCount struct {
	Intent intent.Intent `json:"intent"`
	Count  int64         `json:"count"`
}

// Guard is the pre-filter run before matching.
type Guard interface {
	Refuse(normalized string) (string, bool)
}

// Matcher selects the canned response for an utterance.
type Matcher interface {
	Match(utterance string) (intent.Result, error)
}

// Repo — intent hit log
type Repo interface {
	RecordHit(ctx context.Context, hit Hit) error
	Stats(ctx context.Context) ([]IntentCount, error)
}

type Service interface {
	Reply(ctx context.Context, req Request) (Reply, error)
	Welcome() string
	Stats(ctx context.Context) ([]IntentCount, error)
}

package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// KVRepo stores opaque text records under string keys.
type KVRepo interface {
	// Get returns the record stored under key. ok is false when absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Put stores value under key, replacing any previous record.
	Put(ctx context.Context, key, value string) error

	// Delete removes the record under key. Deleting an absent key is not
	// an error.
	Delete(ctx context.Context, key string) error
}

// Account is a registered user of the local account registry.
type Account struct {
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}

// SavedPathway is a pathway saved to an account, stored as raw JSON.
type SavedPathway struct {
	PathwayID string
	Data      []byte
	SavedAt   time.Time
}

// AccountRepo manages accounts and their saved pathways.
type AccountRepo interface {
	// CreateAccount inserts a new account. Returns ErrConflict when the
	// email is already registered.
	CreateAccount(ctx context.Context, a Account) error

	// GetAccount returns the account for email, or nil if none exists.
	GetAccount(ctx context.Context, email string) (*Account, error)

	// SavePathway appends a pathway to the account's saved list. Returns
	// ErrConflict when the pathway id is already saved for that account.
	SavePathway(ctx context.Context, email string, p SavedPathway) error

	// SavedPathways returns the account's saved pathways in save order.
	SavedPathways(ctx context.Context, email string) ([]SavedPathway, error)
}

// SharedPathway is a pathway published for read-only access by id.
type SharedPathway struct {
	ID        string
	Data      []byte
	Views     int
	CreatedAt time.Time
}

// SharedPathwayRepo manages published pathways.
type SharedPathwayRepo interface {
	// Publish stores a pathway under id. Published content never
	// changes: publishing identical data again is a no-op, different data
	// under a taken id returns ErrConflict.
	Publish(ctx context.Context, id string, data []byte) error

	// Get returns the published pathway and counts the view. Returns nil
	// when id is unknown.
	Get(ctx context.Context, id string) (*SharedPathway, error)
}

// FeedbackEventData captures a learner's comment about a pathway.
type FeedbackEventData struct {
	PathwayID    string
	AccountEmail string
	Message      string
}

// FeedbackEvent is a persisted feedback record.
type FeedbackEvent struct {
	Sequence  int64
	Timestamp time.Time
	FeedbackEventData
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a persisted LLM request record.
type LLMRequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM request events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns a single LLM request event by id, or nil.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)

	// AppendFeedback records learner feedback on a pathway.
	AppendFeedback(ctx context.Context, data FeedbackEventData) error

	// QueryFeedback returns feedback events, newest first.
	QueryFeedback(ctx context.Context, opts QueryOpts) ([]FeedbackEvent, error)

	// LLMUsageByPurpose aggregates LLM calls per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)

	// LLMUsageByModel aggregates LLM calls per model.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}

// LLMUsageStats is the token usage of one request purpose.
type LLMUsageStats struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage is the token usage of one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

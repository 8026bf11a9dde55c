package app

import (
	"context"
	"errors"
	"log"
	"time"

	"example/thinking-assistant/app/config"
	"example/thinking-assistant/app/models"
)

// ErrNotFound is returned by store lookups that resolve nothing.
var ErrNotFound = errors.New("not found")

var store Store

// Store is the document-store boundary. Back-references between sessions,
// messages and ideas are plain string ids; nothing enforces them.
type Store interface {
	Ping(ctx context.Context) error
	CollectionNames(ctx context.Context) ([]string, error)

	InsertAccount(ctx context.Context, a models.Account) error
	AccountByClientID(ctx context.Context, clientID string) (models.Account, error)
	AccountBySubscriptionID(ctx context.Context, subscriptionID string) (models.Account, error)
	AccountByCustomerID(ctx context.Context, customerID string) (models.Account, error)
	// SaveAccount replaces the account document keyed by client_id,
	// creating it if absent.
	SaveAccount(ctx context.Context, a models.Account) error

	InsertSession(ctx context.Context, s models.Session) (string, error)
	SessionByID(ctx context.Context, id string) (models.Session, error)
	// AdvanceSessionStep atomically increments the step cursor by one.
	AdvanceSessionStep(ctx context.Context, id string) error
	CountSessionsSince(ctx context.Context, clientID string, since time.Time) (int, error)

	InsertMessage(ctx context.Context, m models.Message) error
	MessagesBySessionID(ctx context.Context, sessionID string) ([]models.Message, error)

	InsertIdea(ctx context.Context, idea models.Idea) (string, error)
}

// MustInitStore initializes the global store and logs fatally on error.
func MustInitStore() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.DB.URI == "" {
		log.Fatalf("MONGO_URI is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s, err := newMongoStore(ctx, cfg.DB.URI, cfg.DB.Database)
	if err != nil {
		log.Fatalf("mongo connect: %v", err)
	}
	if err := s.Ping(ctx); err != nil {
		log.Fatalf("mongo ping: %v", err)
	}

	log.Println("Connected to MongoDB")
	store = s
}

package app

import (
	"context"
	"errors"
	"time"

	"example/thinking-assistant/app/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names mirror the lowercase schema names of the original service.
const (
	collAccounts = "accounts"
	collSessions = "sessions"
	collMessages = "messages"
	collIdeas    = "ideas"
)

type mongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

func newMongoStore(ctx context.Context, uri, database string) (*mongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if database == "" {
		database = "thinking_assistant"
	}
	return &mongoStore{client: client, db: client.Database(database)}, nil
}

func (s *mongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *mongoStore) CollectionNames(ctx context.Context) ([]string, error) {
	return s.db.ListCollectionNames(ctx, bson.M{})
}

func (s *mongoStore) InsertAccount(ctx context.Context, a models.Account) error {
	_, err := s.db.Collection(collAccounts).InsertOne(ctx, a)
	return err
}

func (s *mongoStore) AccountByClientID(ctx context.Context, clientID string) (models.Account, error) {
	return s.findAccount(ctx, bson.M{"client_id": clientID})
}

func (s *mongoStore) AccountBySubscriptionID(ctx context.Context, subscriptionID string) (models.Account, error) {
	return s.findAccount(ctx, bson.M{"stripe_subscription_id": subscriptionID})
}

func (s *mongoStore) AccountByCustomerID(ctx context.Context, customerID string) (models.Account, error) {
	return s.findAccount(ctx, bson.M{"stripe_customer_id": customerID})
}

func (s *mongoStore) findAccount(ctx context.Context, filter bson.M) (models.Account, error) {
	var a models.Account
	err := s.db.Collection(collAccounts).FindOne(ctx, filter).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Account{}, ErrNotFound
	}
	if err != nil {
		return models.Account{}, err
	}
	return a, nil
}

func (s *mongoStore) SaveAccount(ctx context.Context, a models.Account) error {
	_, err := s.db.Collection(collAccounts).ReplaceOne(
		ctx,
		bson.M{"client_id": a.ClientID},
		a,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (s *mongoStore) InsertSession(ctx context.Context, sess models.Session) (string, error) {
	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}
	if _, err := s.db.Collection(collSessions).InsertOne(ctx, sess); err != nil {
		return "", err
	}
	return sess.ID, nil
}

func (s *mongoStore) SessionByID(ctx context.Context, id string) (models.Session, error) {
	var sess models.Session
	err := s.db.Collection(collSessions).FindOne(ctx, bson.M{"_id": id}).Decode(&sess)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Session{}, ErrNotFound
	}
	if err != nil {
		return models.Session{}, err
	}
	return sess, nil
}

func (s *mongoStore) AdvanceSessionStep(ctx context.Context, id string) error {
	res, err := s.db.Collection(collSessions).UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{
			"$inc": bson.M{"step": 1},
			"$set": bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoStore) CountSessionsSince(ctx context.Context, clientID string, since time.Time) (int, error) {
	n, err := s.db.Collection(collSessions).CountDocuments(ctx, bson.M{
		"client_id":  clientID,
		"created_at": bson.M{"$gte": since},
	})
	return int(n), err
}

func (s *mongoStore) InsertMessage(ctx context.Context, m models.Message) error {
	_, err := s.db.Collection(collMessages).InsertOne(ctx, m)
	return err
}

func (s *mongoStore) MessagesBySessionID(ctx context.Context, sessionID string) ([]models.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "step", Value: 1}, {Key: "created_at", Value: 1}})
	cur, err := s.db.Collection(collMessages).Find(ctx, bson.M{"session_id": sessionID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Message
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *mongoStore) InsertIdea(ctx context.Context, idea models.Idea) (string, error) {
	if idea.ID == "" {
		idea.ID = uuid.NewString()
	}
	if _, err := s.db.Collection(collIdeas).InsertOne(ctx, idea); err != nil {
		return "", err
	}
	return idea.ID, nil
}

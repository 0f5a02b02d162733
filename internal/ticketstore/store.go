package ticketstore

import (
	"context"
	"fmt"

	"mail-ticket-poller/internal/models"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	DefaultDatabase   = "TicketsMail"
	DefaultCollection = "tickets"
)

// Store persists tickets. Every Save is an unconditional insert.
type Store interface {
	Save(ctx context.Context, ticket *models.Ticket) error
	Close(ctx context.Context) error
}

// inserter is the part of *mongo.Collection the store uses.
type inserter interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
}

type MongoStore struct {
	client     *mongo.Client
	collection inserter
}

// Open connects to MongoDB once for the lifetime of the process. The driver dials lazily,
// so an unreachable server surfaces on Ping or on the first Save.
func Open(ctx context.Context, cfg models.MongoConfig) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}

	database := cfg.Database
	if database == "" {
		database = DefaultDatabase
	}
	collection := cfg.Collection
	if collection == "" {
		collection = DefaultCollection
	}

	return &MongoStore{
		client:     client,
		collection: client.Database(database).Collection(collection),
	}, nil
}

// Ping checks that the primary is reachable.
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Save inserts ticket as a new document. Failures are returned as PersistError.
func (s *MongoStore) Save(ctx context.Context, ticket *models.Ticket) error {
	if _, err := s.collection.InsertOne(ctx, ticket); err != nil {
		return &models.PersistError{Err: err}
	}
	return nil
}

// Close disconnects the client. It is safe on a store built without a client.
func (s *MongoStore) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

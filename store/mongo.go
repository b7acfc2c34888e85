package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"blog/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	DefaultMongoURL      = "mongodb://localhost:27017"
	DefaultMongoDatabase = "blog"
	postsCollection      = "posts"
)

type postDocument struct {
	ID    primitive.ObjectID `bson:"_id,omitempty"`
	Title string             `bson:"title"`
	Body  string             `bson:"body"`
	Date  time.Time          `bson:"date"`
}

func (d postDocument) post() domain.Post {
	return domain.Post{
		ID:    d.ID.Hex(),
		Title: d.Title,
		Body:  d.Body,
		Date:  d.Date.UTC(),
	}
}

// bsonTime drops what a BSON datetime cannot hold.
func bsonTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

// MongoStore keeps posts in a single collection. The client is shared by
// every request for the lifetime of the store.
type MongoStore struct {
	client *mongo.Client
	posts  *mongo.Collection
}

// NewMongoStore connects and pings the server, so an unreachable database
// fails here rather than on the first request.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	if uri == "" {
		uri = DefaultMongoURL
	}
	if database == "" {
		database = DefaultMongoDatabase
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return &MongoStore{
		client: client,
		posts:  client.Database(database).Collection(postsCollection),
	}, nil
}

func (s *MongoStore) Create(ctx context.Context, p *domain.Post) error {
	res, err := s.posts.InsertOne(ctx, postDocument{
		Title: p.Title,
		Body:  p.Body,
		Date:  bsonTime(p.Date),
	})
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("insert post: unexpected id type %T", res.InsertedID)
	}
	p.ID = oid.Hex()
	return nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (domain.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.Post{}, domain.ErrPostNotFound
	}
	var doc postDocument
	err = s.posts.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Post{}, domain.ErrPostNotFound
	}
	if err != nil {
		return domain.Post{}, fmt.Errorf("find post %s: %w", id, err)
	}
	return doc.post(), nil
}

func (s *MongoStore) Update(ctx context.Context, p domain.Post) error {
	oid, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		return nil
	}
	update := bson.M{"$set": bson.M{
		"title": p.Title,
		"body":  p.Body,
		"date":  bsonTime(p.Date),
	}}
	if _, err := s.posts.UpdateOne(ctx, bson.M{"_id": oid}, update); err != nil {
		return fmt.Errorf("update post %s: %w", p.ID, err)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	if _, err := s.posts.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("delete post %s: %w", id, err)
	}
	return nil
}

func (s *MongoStore) List(ctx context.Context) ([]domain.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cur, err := s.posts.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find posts: %w", err)
	}
	var docs []postDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	posts := make([]domain.Post, 0, len(docs))
	for _, d := range docs {
		posts = append(posts, d.post())
	}
	return posts, nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

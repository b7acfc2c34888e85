package store

import (
	"context"
	"testing"
	"time"

	"blog/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPostDocumentPost(t *testing.T) {
	oid := primitive.NewObjectID()
	date := time.Date(2024, 5, 1, 10, 0, 0, 0, time.FixedZone("CEST", 2*60*60))

	p := postDocument{ID: oid, Title: "T", Body: "B", Date: date}.post()

	assert.Equal(t, oid.Hex(), p.ID)
	assert.Equal(t, "T", p.Title)
	assert.Equal(t, "B", p.Body)
	assert.Equal(t, time.UTC, p.Date.Location())
	assert.True(t, p.Date.Equal(date))
}

func TestPostDocumentDateRoundTrip(t *testing.T) {
	before := time.Now().UTC().Truncate(time.Millisecond)
	stamped := bsonTime(time.Now())

	b, err := bson.Marshal(postDocument{ID: primitive.NewObjectID(), Title: "T", Date: stamped})
	require.NoError(t, err)
	var doc postDocument
	require.NoError(t, bson.Unmarshal(b, &doc))

	got := doc.post().Date
	assert.True(t, got.Equal(stamped), "round trip changed %v to %v", stamped, got)
	assert.False(t, got.Before(before), "stored date %v is before %v", got, before)
}

func TestBSONTimeKeepsMilliseconds(t *testing.T) {
	in := time.Date(2024, 5, 1, 10, 0, 0, 123456789, time.UTC)

	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 123000000, time.UTC), bsonTime(in))
}

func TestMongoStoreMalformedIDs(t *testing.T) {
	// A zero store has no collection, so any of these reaching the
	// database would panic.
	s := &MongoStore{}
	ctx := context.Background()

	_, err := s.Get(ctx, "not-hex")
	assert.ErrorIs(t, err, domain.ErrPostNotFound)
	assert.NoError(t, s.Update(ctx, domain.Post{ID: "not-hex", Title: "T"}))
	assert.NoError(t, s.Delete(ctx, "zzzzzzzzzzzzzzzzzzzzzzzz"))
}

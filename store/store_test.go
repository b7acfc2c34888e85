package store_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"blog/domain"
	"blog/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStoreSuite exercises the behaviour every backend shares.
func runStoreSuite(t *testing.T, s domain.PostStore) {
	t.Helper()
	ctx := context.Background()
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	t.Run("Create assigns an id and Get returns the fields", func(t *testing.T) {
		p := domain.Post{Title: "T", Body: "B", Date: created}
		require.NoError(t, s.Create(ctx, &p))
		require.NotEmpty(t, p.ID)

		got, err := s.Get(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, p.ID, got.ID)
		assert.Equal(t, "T", got.Title)
		assert.Equal(t, "B", got.Body)
		assert.True(t, got.Date.Equal(created), "date %v != %v", got.Date, created)
		assert.Equal(t, time.UTC, got.Date.Location())
	})

	t.Run("Update overwrites title body and date", func(t *testing.T) {
		p := domain.Post{Title: "T", Body: "B", Date: created}
		require.NoError(t, s.Create(ctx, &p))

		updated := domain.Post{ID: p.ID, Title: "T2", Body: "B2", Date: created.Add(time.Minute)}
		require.NoError(t, s.Update(ctx, updated))

		got, err := s.Get(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "T2", got.Title)
		assert.Equal(t, "B2", got.Body)
		assert.True(t, got.Date.After(created))
	})

	t.Run("Delete removes the post", func(t *testing.T) {
		p := domain.Post{Title: "gone", Body: "soon", Date: created}
		require.NoError(t, s.Create(ctx, &p))
		require.NoError(t, s.Delete(ctx, p.ID))

		_, err := s.Get(ctx, p.ID)
		assert.ErrorIs(t, err, domain.ErrPostNotFound)
	})

	t.Run("Unknown and malformed ids", func(t *testing.T) {
		_, err := s.Get(ctx, "not-an-id")
		assert.ErrorIs(t, err, domain.ErrPostNotFound)

		assert.NoError(t, s.Delete(ctx, "not-an-id"))
		assert.NoError(t, s.Update(ctx, domain.Post{ID: "not-an-id", Title: "x", Date: created}))
	})

	t.Run("Concurrent writes all succeed", func(t *testing.T) {
		const writers = 32
		var wg sync.WaitGroup
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				p := domain.Post{Title: "T", Body: "B", Date: created}
				if !assert.NoError(t, s.Create(ctx, &p)) {
					return
				}
				p.Title = "T2"
				p.Date = created.Add(time.Second)
				assert.NoError(t, s.Update(ctx, p))
			}()
		}
		wg.Wait()
	})

	t.Run("List returns every post newest first", func(t *testing.T) {
		existing, err := s.List(ctx)
		require.NoError(t, err)
		for _, p := range existing {
			require.NoError(t, s.Delete(ctx, p.ID))
		}

		ids := map[string]bool{}
		for i := 0; i < 5; i++ {
			p := domain.Post{Title: "post", Body: "body", Date: created.Add(time.Duration(i) * time.Hour)}
			require.NoError(t, s.Create(ctx, &p))
			ids[p.ID] = true
		}

		posts, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, posts, 5)
		for i, p := range posts {
			assert.True(t, ids[p.ID], "unexpected post %s", p.ID)
			if i > 0 {
				assert.False(t, p.Date.After(posts[i-1].Date), "posts not sorted newest first")
			}
		}
	})
}

func TestMemoryStore(t *testing.T) {
	runStoreSuite(t, store.NewMemoryStore())
}

func TestSQLiteStore(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "blog.db")
	s, err := store.NewSQLiteStore(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close(context.Background()) })

	runStoreSuite(t, s)
}

func TestSQLiteStoreReopen(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "blog.db")

	s, err := store.NewSQLiteStore(ctx, dsn)
	require.NoError(t, err)
	p := domain.Post{Title: "kept", Body: "across restarts", Date: time.Now().UTC()}
	require.NoError(t, s.Create(ctx, &p))
	require.NoError(t, s.Close(ctx))

	// Migrations already applied must not fail the second open.
	s, err = store.NewSQLiteStore(ctx, dsn)
	require.NoError(t, err)
	defer s.Close(ctx)

	got, err := s.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "kept", got.Title)
}

func TestMongoStore(t *testing.T) {
	url := os.Getenv("BLOG_TEST_MONGO_URL")
	if url == "" {
		t.Skip("BLOG_TEST_MONGO_URL not set")
	}
	ctx := context.Background()
	s, err := store.NewMongoStore(ctx, url, "blog_test_"+time.Now().Format("20060102150405"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close(ctx) })

	runStoreSuite(t, s)
}

func TestPostgresStore(t *testing.T) {
	url := os.Getenv("BLOG_TEST_POSTGRES_URL")
	if url == "" {
		t.Skip("BLOG_TEST_POSTGRES_URL not set")
	}
	s, err := store.NewPostgresStore(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close(context.Background()) })

	runStoreSuite(t, s)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := store.Open(ctx, domain.Config{DBDriver: domain.DriverMemory})
	require.NoError(t, err)
	assert.IsType(t, &store.MemoryStore{}, s)

	s, err = store.Open(ctx, domain.Config{
		DBDriver: domain.DriverSQLite,
		DBURL:    filepath.Join(t.TempDir(), "open.db"),
	})
	require.NoError(t, err)
	assert.IsType(t, &store.SQLiteStore{}, s)
	require.NoError(t, s.Close(ctx))

	_, err = store.Open(ctx, domain.Config{DBDriver: "couchdb"})
	assert.Error(t, err)
}

func TestMigrate(t *testing.T) {
	ctx := context.Background()

	err := store.Migrate(ctx, domain.Config{
		DBDriver: domain.DriverSQLite,
		DBURL:    filepath.Join(t.TempDir(), "migrate.db"),
	})
	assert.NoError(t, err)

	err = store.Migrate(ctx, domain.Config{DBDriver: domain.DriverMongo})
	assert.ErrorIs(t, err, store.ErrNoMigrations)
}

package repository_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printlab/quote-api/internal/models"
	"github.com/printlab/quote-api/internal/repository"
)

func newSubmission(name string) *models.Submission {
	return &models.Submission{
		Name:      name,
		Phone:     "+79123456789",
		Email:     "test@example.com",
		Task:      "Print 500 business cards",
		OriginIP:  "203.0.113.7",
		CreatedAt: time.Now().UTC(),
	}
}

func TestFileStore_AppendAndReadAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "submissions.json")
	store, err := repository.NewFileStore(path)
	require.NoError(t, err)

	ctx := context.Background()

	id1, err := store.Append(ctx, newSubmission("Anna"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), id1)

	id2, err := store.Append(ctx, newSubmission("Boris"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), id2)

	all, err := store.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Anna", all[0].Name)
	assert.Equal(t, "Boris", all[1].Name)
}

func TestFileStore_EmptyStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "submissions.json")
	store, err := repository.NewFileStore(path)
	require.NoError(t, err)

	all, err := store.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestFileStore_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "submissions.json")
	require.NoError(t, os.WriteFile(path, []byte{}, 0o644))

	store, err := repository.NewFileStore(path)
	require.NoError(t, err)

	all, err := store.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestFileStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "submissions.json")

	store, err := repository.NewFileStore(path)
	require.NoError(t, err)
	_, err = store.Append(context.Background(), newSubmission("Anna"))
	require.NoError(t, err)

	reopened, err := repository.NewFileStore(path)
	require.NoError(t, err)

	all, err := reopened.ReadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Anna", all[0].Name)
	assert.Equal(t, int64(1), all[0].ID)
}

func TestFileStore_IDsContinueAfterReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "submissions.json")

	store, err := repository.NewFileStore(path)
	require.NoError(t, err)
	_, err = store.Append(context.Background(), newSubmission("Anna"))
	require.NoError(t, err)
	_, err = store.Append(context.Background(), newSubmission("Boris"))
	require.NoError(t, err)

	reopened, err := repository.NewFileStore(path)
	require.NoError(t, err)
	id, err := reopened.Append(context.Background(), newSubmission("Clara"))
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)
}

func TestFileStore_ConcurrentAppendsGetDistinctIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "submissions.json")
	store, err := repository.NewFileStore(path)
	require.NoError(t, err)

	const writers = 10
	ids := make(chan int64, writers)

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, appendErr := store.Append(context.Background(), newSubmission("Concurrent"))
			assert.NoError(t, appendErr)
			ids <- id
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		assert.False(t, seen[id], "id %d assigned twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, writers)

	all, err := store.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, writers)
}

func TestFileStore_FileIsValidJSONArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "submissions.json")
	store, err := repository.NewFileStore(path)
	require.NoError(t, err)

	_, err = store.Append(context.Background(), newSubmission("Anna"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded []models.Submission
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "Anna", decoded[0].Name)
}

func TestFileStore_CorruptFileFailsLoudly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "submissions.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store, err := repository.NewFileStore(path)
	require.NoError(t, err)

	_, err = store.ReadAll(context.Background())
	assert.Error(t, err)

	_, err = store.Append(context.Background(), newSubmission("Anna"))
	assert.Error(t, err)
}

package results

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mind-engage/mindengage-practice/internal/session"
	"github.com/mind-engage/mindengage-practice/internal/storage"
	syncx "github.com/mind-engage/mindengage-practice/internal/sync"
)

func TestArchiveSink(t *testing.T) {
	ctx := context.Background()
	blobs, err := storage.NewFSStore(t.TempDir())
	require.NoError(t, err)
	sink := NewArchiveSink(blobs, "")

	r := sampleResult("s1", "alice", 85, time.Now())
	require.NoError(t, sink.Consume(ctx, r))
	assert.Equal(t, "results/verbal/s1.json", sink.Key(r))

	rc, err := blobs.Get(ctx, sink.Key(r))
	require.NoError(t, err)
	defer rc.Close()
	b, err := io.ReadAll(rc)
	require.NoError(t, err)

	var rep Report
	require.NoError(t, json.Unmarshal(b, &rep))
	assert.Equal(t, "s1", rep.SessionID)
	assert.Equal(t, "good", rep.Label)
	assert.Equal(t, "A", rep.Grade)
	assert.Equal(t, 1, rep.Correct)
	assert.NotEmpty(t, rep.Insights)
}

func TestEventSink(t *testing.T) {
	ctx := context.Background()
	repo := syncx.NewEventRepo(openDB(t))
	sink := NewEventSink(repo, "site-a")

	require.NoError(t, sink.Consume(ctx, sampleResult("s1", "alice", 50, time.Now())))

	evs, err := repo.Since(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, evs, 1)
	assert.Equal(t, syncx.TypeSessionSubmitted, evs[0].Type)
	assert.Equal(t, "s1", evs[0].Key)
	assert.Equal(t, "site-a", evs[0].SiteID)

	var r session.Result
	require.NoError(t, json.Unmarshal([]byte(evs[0].DataJSON), &r))
	assert.Equal(t, 50, r.Score)
}

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb, mr
}

func TestPublisher(t *testing.T) {
	ctx := context.Background()
	rdb, _ := setupTestRedis(t)

	sub := rdb.Subscribe(ctx, DefaultChannel)
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	pub := NewPublisher(rdb, "")
	require.NoError(t, pub.Consume(ctx, sampleResult("s9", "bob", 50, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))))

	select {
	case msg := <-sub.Channel():
		var ev SubmittedEvent
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &ev))
		assert.Equal(t, "s9", ev.SessionID)
		assert.Equal(t, "bob", ev.UserID)
		assert.Equal(t, 50, ev.Score)
		assert.Equal(t, "2026-01-02T03:04:05Z", ev.SubmittedAt)
		assert.Equal(t, session.CategoryScore{Correct: 1, Total: 2}, ev.CategoryScores["verbal"])
	case <-time.After(2 * time.Second):
		t.Fatal("no message published")
	}
}

func TestPublisher_RedisDown(t *testing.T) {
	rdb, mr := setupTestRedis(t)
	mr.Close()
	err := NewPublisher(rdb, "x").Consume(context.Background(), sampleResult("s1", "", 0, time.Now()))
	assert.Error(t, err)
}

func TestMultiSink_OneFailingSinkDoesNotStopOthers(t *testing.T) {
	ctx := context.Background()
	rdb, mr := setupTestRedis(t)
	mr.Close()
	store := NewSQLStore(openDB(t))

	err := session.MultiSink{NewPublisher(rdb, ""), store}.Consume(ctx, sampleResult("s1", "a", 10, time.Now()))
	assert.Error(t, err)
	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 10, got.Score)
}

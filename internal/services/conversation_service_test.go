package services

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appforge-pipeline/config"
	"appforge-pipeline/internal/catalog"
	"appforge-pipeline/internal/engine"
	"appforge-pipeline/internal/models"
	"appforge-pipeline/internal/pkg/logger"
)

// memoryStore is an in-memory ConversationStore for tests.
type memoryStore struct {
	mu         sync.Mutex
	snapshots  map[string]*models.ConversationSnapshot
	history    map[string][]models.Message
	updates    []*models.TurnUpdate
	publishErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		snapshots: map[string]*models.ConversationSnapshot{},
		history:   map[string][]models.Message{},
	}
}

func (m *memoryStore) GetConversation(_ context.Context, id string) (*models.ConversationSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if snap, ok := m.snapshots[id]; ok {
		return snap, nil
	}
	return &models.ConversationSnapshot{
		Context: models.NewConversationContext(),
		State:   models.NewConversationState(),
	}, nil
}

func (m *memoryStore) SaveConversation(_ context.Context, id string, snap *models.ConversationSnapshot, userMsg, reply models.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots[id] = snap
	m.history[id] = append(m.history[id], userMsg, reply)
	return nil
}

func (m *memoryStore) GetHistory(_ context.Context, id string, limit int) ([]models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	msgs := m.history[id]
	if len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	return append([]models.Message{}, msgs...), nil
}

func (m *memoryStore) PublishTurnUpdate(_ context.Context, update *models.TurnUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.publishErr != nil {
		return m.publishErr
	}
	m.updates = append(m.updates, update)
	return nil
}

func (m *memoryStore) ResetConversation(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.snapshots[id]; !ok {
		return models.ErrConversationNotFound
	}
	delete(m.snapshots, id)
	delete(m.history, id)
	return nil
}

func (m *memoryStore) HealthCheck(context.Context) error { return nil }

func newTestService(store *memoryStore) *ConversationService {
	eng := engine.New(catalog.Default(), rand.New(rand.NewSource(1)), nil)
	cfg := config.EngineConfig{HistoryTurn: 20}
	return NewConversationService(store, eng, cfg, logger.NewNop())
}

func TestProcessMessagePersistsAndPublishes(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store)

	resp, err := svc.ProcessMessage(context.Background(), "conv-1", "user-1",
		"I want to build a shopping app where users can browse products, add to cart, and checkout")
	require.NoError(t, err)

	assert.Equal(t, "conv-1", resp.ConversationID)
	assert.NotEmpty(t, resp.RequestID)
	assert.NotEmpty(t, resp.Reply)
	assert.GreaterOrEqual(t, resp.CompletionPercentage, 45)

	snap := store.snapshots["conv-1"]
	require.NotNil(t, snap)
	assert.Equal(t, "ecommerce", snap.Context.AppCategory)
	assert.Len(t, store.history["conv-1"], 2)

	require.Len(t, store.updates, 1)
	assert.Equal(t, "turn_processed", store.updates[0].Type)
	assert.Equal(t, resp.CompletionPercentage, store.updates[0].CompletionPercentage)
}

func TestProcessMessageRejectsEmptyText(t *testing.T) {
	svc := newTestService(newMemoryStore())

	_, err := svc.ProcessMessage(context.Background(), "conv-1", "user-1", "   ")
	assert.ErrorIs(t, err, models.ErrEmptyMessage)
}

func TestProcessMessageSurvivesPublishFailure(t *testing.T) {
	store := newMemoryStore()
	store.publishErr = models.NewExternalError("UPDATE_PUBLISH", "stream down")
	svc := newTestService(store)

	resp, err := svc.ProcessMessage(context.Background(), "conv-1", "user-1", "a habit tracker with streaks")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Reply)
}

func TestProcessMessageAccumulatesAcrossTurns(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store)
	ctx := context.Background()

	_, err := svc.ProcessMessage(ctx, "conv-1", "user-1",
		"I want to build a fitness app for tracking workouts")
	require.NoError(t, err)

	resp, err := svc.ProcessMessage(ctx, "conv-1", "user-1",
		"users can log exercises, see progress charts, and share with friends")
	require.NoError(t, err)

	snap := store.snapshots["conv-1"]
	assert.Equal(t, "fitness", snap.Context.AppCategory)
	assert.Equal(t, 2, snap.State.MessageCount)
	assert.Equal(t, resp.CompletionPercentage, snap.State.CompletionPercentage)
	assert.Len(t, store.history["conv-1"], 4)
}

func TestProcessMessageSerializesPerConversation(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.ProcessMessage(context.Background(), "conv-1", "user-1",
				"users can chat and share photos with friends")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	snap := store.snapshots["conv-1"]
	require.NotNil(t, snap)
	assert.Equal(t, 8, snap.State.MessageCount)
	assert.Len(t, store.history["conv-1"], 16)
}

func TestReset(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store)
	ctx := context.Background()

	_, err := svc.ProcessMessage(ctx, "conv-1", "user-1", "a recipe app with shopping lists")
	require.NoError(t, err)

	require.NoError(t, svc.Reset(ctx, "conv-1"))
	assert.ErrorIs(t, svc.Reset(ctx, "conv-1"), models.ErrConversationNotFound)
}

func TestCloseRejectsNewTurnsAndDrains(t *testing.T) {
	svc := newTestService(newMemoryStore())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, svc.Close(ctx))

	_, err := svc.ProcessMessage(context.Background(), "conv-1", "user-1", "a travel app")
	assert.ErrorIs(t, err, models.ErrServiceClosed)
}

func TestStats(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(store)

	_, err := svc.ProcessMessage(context.Background(), "conv-1", "user-1", "a budgeting app with charts")
	require.NoError(t, err)

	stats := svc.Stats()
	assert.Equal(t, int64(1), stats["processed_turns"])
	assert.Equal(t, int64(0), stats["active_turns"])
}

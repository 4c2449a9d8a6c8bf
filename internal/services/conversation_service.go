package services

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"appforge-pipeline/config"
	"appforge-pipeline/internal/engine"
	"appforge-pipeline/internal/models"
	"appforge-pipeline/internal/pkg/logger"
)

// ConversationStore is the persistence surface the service needs. Satisfied
// by RedisService; tests substitute an in-memory fake.
type ConversationStore interface {
	GetConversation(ctx context.Context, conversationID string) (*models.ConversationSnapshot, error)
	SaveConversation(ctx context.Context, conversationID string, snapshot *models.ConversationSnapshot, userMsg, reply models.Message) error
	GetHistory(ctx context.Context, conversationID string, limit int) ([]models.Message, error)
	PublishTurnUpdate(ctx context.Context, update *models.TurnUpdate) error
	ResetConversation(ctx context.Context, conversationID string) error
	HealthCheck(ctx context.Context) error
}

// ConversationService owns turn processing: it serializes turns per
// conversation, feeds the pure engine, persists results and publishes
// progress updates. The engine itself stays free of I/O.
type ConversationService struct {
	store   ConversationStore
	engine  *engine.Engine
	logger  *logger.Logger
	cfg     config.EngineConfig
	locks   sync.Map // conversationID -> *sync.Mutex
	active  int64
	turns   int64
	closed  atomic.Bool
	started time.Time
}

func NewConversationService(store ConversationStore, eng *engine.Engine, cfg config.EngineConfig, log *logger.Logger) *ConversationService {
	return &ConversationService{
		store:   store,
		engine:  eng,
		logger:  log,
		cfg:     cfg,
		started: time.Now(),
	}
}

// ProcessMessage runs one user turn end to end. Turns for the same
// conversation are processed strictly in arrival order; different
// conversations proceed in parallel.
func (s *ConversationService) ProcessMessage(ctx context.Context, conversationID, userID, text string) (*models.TurnResponse, error) {
	if s.closed.Load() {
		return nil, models.ErrServiceClosed
	}
	if strings.TrimSpace(text) == "" {
		return nil, models.ErrEmptyMessage
	}

	start := time.Now()
	requestID := uuid.New().String()

	atomic.AddInt64(&s.active, 1)
	defer atomic.AddInt64(&s.active, -1)

	lock := s.conversationLock(conversationID)
	lock.Lock()
	defer lock.Unlock()

	snapshot, err := s.store.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	history, err := s.store.GetHistory(ctx, conversationID, s.cfg.HistoryTurn*2)
	if err != nil {
		// A missing history degrades scoring slightly; it never blocks the turn.
		s.logger.WithError(err).Warn("proceeding without conversation history")
		history = nil
	}

	result := s.engine.ProcessTurn(engine.TurnInput{
		Text:    text,
		Context: snapshot.Context,
		State:   snapshot.State,
		History: history,
	})

	now := time.Now().UTC()
	updated := &models.ConversationSnapshot{
		Context: result.Context,
		State:   result.State,
	}
	userMsg := models.Message{Content: text, SenderRole: models.SenderUser, Timestamp: now}
	replyMsg := models.Message{Content: result.Reply, SenderRole: models.SenderAssistant, Timestamp: now}

	if err := s.store.SaveConversation(ctx, conversationID, updated, userMsg, replyMsg); err != nil {
		return nil, err
	}

	update := &models.TurnUpdate{
		Type:                 "turn_processed",
		ConversationID:       conversationID,
		RequestID:            requestID,
		Stage:                result.State.Stage,
		CompletionPercentage: result.State.CompletionPercentage,
		Rule:                 result.Rule,
		Reply:                result.Reply,
		Blockers:             result.State.Blockers,
		Timestamp:            now,
	}
	if err := s.store.PublishTurnUpdate(ctx, update); err != nil {
		s.logger.WithError(err).WithFields(logger.Fields{
			"conversation_id": conversationID,
		}).Warn("turn update not published")
	}

	atomic.AddInt64(&s.turns, 1)
	elapsed := time.Since(start)
	s.logger.LogTurn(conversationID, userID, result.Rule, result.State.CompletionPercentage, elapsed, nil)

	return &models.TurnResponse{
		ConversationID:       conversationID,
		RequestID:            requestID,
		Reply:                result.Reply,
		Rule:                 result.Rule,
		Stage:                result.State.Stage,
		CompletionPercentage: result.State.CompletionPercentage,
		Quality:              result.Score.Quality,
		ProgressDelta:        result.Score.ProgressDelta,
		Blockers:             result.State.Blockers,
		Timestamp:            now,
		TotalTimeMS:          float64(elapsed.Microseconds()) / 1000.0,
	}, nil
}

// GetStatus returns the stored snapshot for a conversation.
func (s *ConversationService) GetStatus(ctx context.Context, conversationID string) (*models.ConversationSnapshot, error) {
	return s.store.GetConversation(ctx, conversationID)
}

// Reset deletes a conversation entirely.
func (s *ConversationService) Reset(ctx context.Context, conversationID string) error {
	lock := s.conversationLock(conversationID)
	lock.Lock()
	defer lock.Unlock()
	return s.store.ResetConversation(ctx, conversationID)
}

// Stats reports service-level counters for the stats endpoint.
func (s *ConversationService) Stats() map[string]interface{} {
	return map[string]interface{}{
		"active_turns":    atomic.LoadInt64(&s.active),
		"processed_turns": atomic.LoadInt64(&s.turns),
		"uptime_seconds":  int64(time.Since(s.started).Seconds()),
	}
}

func (s *ConversationService) HealthCheck(ctx context.Context) error {
	return s.store.HealthCheck(ctx)
}

// Close stops accepting new turns and waits for in-flight ones to drain,
// up to the context deadline.
func (s *ConversationService) Close(ctx context.Context) error {
	s.closed.Store(true)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		if atomic.LoadInt64(&s.active) == 0 {
			s.logger.Info("conversation service drained")
			return nil
		}
		select {
		case <-ctx.Done():
			s.logger.Warn("shutdown timed out with turns in flight",
				"active_turns", atomic.LoadInt64(&s.active))
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (s *ConversationService) conversationLock(conversationID string) *sync.Mutex {
	actual, _ := s.locks.LoadOrStore(conversationID, &sync.Mutex{})
	return actual.(*sync.Mutex)
}

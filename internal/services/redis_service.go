package services

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"

	"appforge-pipeline/config"
	"appforge-pipeline/internal/models"
	"appforge-pipeline/internal/pkg/logger"
)

// RedisService persists conversations: a JSON snapshot per conversation, a
// capped history list, and a Redis stream of turn updates for live
// consumers. Stream publishing sits behind a circuit breaker so a flaky
// stream never slows down turn processing.
type RedisService struct {
	client  *redis.Client
	breaker *gobreaker.CircuitBreaker
	logger  *logger.Logger
	cfg     config.RedisConfig
}

func NewRedisService(cfg config.RedisConfig, log *logger.Logger) (*RedisService, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, models.NewExternalError("REDIS_CONFIG", "invalid redis url").WithCause(err)
	}
	opts.PoolSize = cfg.PoolSize
	opts.DialTimeout = cfg.DialTimeout
	opts.ReadTimeout = cfg.ReadTimeout
	opts.WriteTimeout = cfg.WriteTimeout

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, storeUnavailable(err)
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "conversation-updates",
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     15 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})

	log.Info("redis service connected",
		"pool_size", opts.PoolSize,
		"history_window", cfg.HistoryWindow,
	)

	return &RedisService{
		client:  client,
		breaker: breaker,
		logger:  log,
		cfg:     cfg,
	}, nil
}

func storeUnavailable(err error) *models.PipelineError {
	return models.ErrStoreUnavailable.WithCause(err)
}

func snapshotKey(conversationID string) string {
	return fmt.Sprintf("conversation:%s:snapshot", conversationID)
}

func historyKey(conversationID string) string {
	return fmt.Sprintf("conversation:%s:history", conversationID)
}

func updatesKey(conversationID string) string {
	return fmt.Sprintf("conversation:%s:updates", conversationID)
}

// GetConversation loads the snapshot for a conversation. An unknown
// conversation returns fresh context and state rather than an error; the
// first turn creates it.
func (s *RedisService) GetConversation(ctx context.Context, conversationID string) (*models.ConversationSnapshot, error) {
	start := time.Now()
	raw, err := s.client.Get(ctx, snapshotKey(conversationID)).Bytes()
	if err == redis.Nil {
		return &models.ConversationSnapshot{
			Context: models.NewConversationContext(),
			State:   models.NewConversationState(),
		}, nil
	}
	if err != nil {
		return nil, storeUnavailable(err).WithMetadata("conversation_id", conversationID)
	}

	var snapshot models.ConversationSnapshot
	if err := sonic.Unmarshal(raw, &snapshot); err != nil {
		return nil, models.NewInternalError("SNAPSHOT_DECODE", "corrupt conversation snapshot").
			WithCause(err).WithMetadata("conversation_id", conversationID)
	}
	if snapshot.Context == nil {
		snapshot.Context = models.NewConversationContext()
	}
	if snapshot.State == nil {
		snapshot.State = models.NewConversationState()
	}

	s.logger.LogService("redis", "get_conversation", time.Since(start), nil, nil)
	return &snapshot, nil
}

// SaveConversation writes the updated snapshot and appends the user message
// and reply to the history list, trimming it to the configured window.
func (s *RedisService) SaveConversation(ctx context.Context, conversationID string, snapshot *models.ConversationSnapshot, userMsg, reply models.Message) error {
	start := time.Now()
	snapshot.UpdatedAt = time.Now().UTC()

	encoded, err := sonic.Marshal(snapshot)
	if err != nil {
		return models.NewInternalError("SNAPSHOT_ENCODE", "failed to encode conversation snapshot").
			WithCause(err).WithMetadata("conversation_id", conversationID)
	}
	userRaw, err := sonic.Marshal(userMsg)
	if err != nil {
		return models.NewInternalError("MESSAGE_ENCODE", "failed to encode user message").WithCause(err)
	}
	replyRaw, err := sonic.Marshal(reply)
	if err != nil {
		return models.NewInternalError("MESSAGE_ENCODE", "failed to encode reply message").WithCause(err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, snapshotKey(conversationID), encoded, s.cfg.SnapshotTTL)
	pipe.RPush(ctx, historyKey(conversationID), userRaw, replyRaw)
	pipe.LTrim(ctx, historyKey(conversationID), int64(-s.cfg.HistoryWindow), -1)
	pipe.Expire(ctx, historyKey(conversationID), s.cfg.SnapshotTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return storeUnavailable(err).WithMetadata("conversation_id", conversationID)
	}

	s.logger.LogService("redis", "save_conversation", time.Since(start), nil, nil)
	return nil
}

// GetHistory returns up to limit most recent messages, oldest first.
func (s *RedisService) GetHistory(ctx context.Context, conversationID string, limit int) ([]models.Message, error) {
	raw, err := s.client.LRange(ctx, historyKey(conversationID), int64(-limit), -1).Result()
	if err != nil {
		return nil, storeUnavailable(err).WithMetadata("conversation_id", conversationID)
	}
	messages := make([]models.Message, 0, len(raw))
	for _, item := range raw {
		var msg models.Message
		if err := sonic.Unmarshal([]byte(item), &msg); err != nil {
			s.logger.WithError(err).Warn("skipping undecodable history entry")
			continue
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// PublishTurnUpdate emits a turn event onto the conversation's stream.
// Failures are surfaced to the caller but are never fatal to the turn.
func (s *RedisService) PublishTurnUpdate(ctx context.Context, update *models.TurnUpdate) error {
	payload, err := sonic.Marshal(update)
	if err != nil {
		return models.NewInternalError("UPDATE_ENCODE", "failed to encode turn update").WithCause(err)
	}

	_, err = s.breaker.Execute(func() (interface{}, error) {
		return s.client.XAdd(ctx, &redis.XAddArgs{
			Stream: updatesKey(update.ConversationID),
			MaxLen: s.cfg.StreamMaxLen,
			Approx: true,
			Values: map[string]interface{}{
				"type":    update.Type,
				"payload": string(payload),
			},
		}).Result()
	})
	if err != nil {
		return models.NewExternalError("UPDATE_PUBLISH", "failed to publish turn update").
			WithCause(err).WithMetadata("conversation_id", update.ConversationID)
	}
	return nil
}

// ResetConversation deletes everything stored for a conversation.
func (s *RedisService) ResetConversation(ctx context.Context, conversationID string) error {
	deleted, err := s.client.Del(ctx,
		snapshotKey(conversationID),
		historyKey(conversationID),
		updatesKey(conversationID),
	).Result()
	if err != nil {
		return storeUnavailable(err).WithMetadata("conversation_id", conversationID)
	}
	if deleted == 0 {
		return models.ErrConversationNotFound.WithMetadata("conversation_id", conversationID)
	}
	return nil
}

func (s *RedisService) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return storeUnavailable(err)
	}
	return nil
}

func (s *RedisService) Close() error {
	s.logger.Info("closing redis service")
	return s.client.Close()
}

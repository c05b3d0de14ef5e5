package mysql

import (
	"context"
	"encoding/json"
	"time"

	"Supply_Library/internal/model"

	"gorm.io/gorm"
)

type OutboxRepository struct {
	DB *gorm.DB
}

// insertOutbox 与业务写入同事务落事件表，由 relayer 异步投递
func insertOutbox(tx *gorm.DB, event string, communityID, actorID uint64, extra map[string]any) error {
	body := map[string]any{
		"event_time":   time.Now().UTC().Format(time.RFC3339Nano),
		"community_id": communityID,
		"actor_id":     actorID,
	}
	for k, v := range extra {
		body[k] = v
	}
	payload, _ := json.Marshal(body)
	ob := &model.CommunityOutbox{
		EventType:   event,
		CommunityID: communityID,
		ActorID:     actorID,
		Payload:     string(payload),
		Status:      0,
	}
	return tx.Create(ob).Error
}

func (r *OutboxRepository) List(ctx context.Context, batchSize int) ([]model.CommunityOutbox, error) {
	var list []model.CommunityOutbox
	if err := r.DB.WithContext(ctx).
		Where("status = 0").
		Order("id ASC").
		Limit(batchSize).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// RetryUpdate 投递失败，记一次重试
func (r *OutboxRepository) RetryUpdate(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.CommunityOutbox{}).Where("id = ?", id).
		Updates(map[string]any{"status": 2, "retry": gorm.Expr("retry + 1")}).Error
}

func (r *OutboxRepository) SuccessUpdate(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.CommunityOutbox{}).Where("id = ?", id).
		Update("status", 1).Error
}

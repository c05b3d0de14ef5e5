package service

import (
	"context"
	"encoding/json"
	"time"

	"Supply_Library/internal/model"
	"Supply_Library/internal/pkg"
	"Supply_Library/internal/repository/mysql"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Sender func(ctx context.Context, ob *model.CommunityOutbox) error

// OutboxRelayer 周期性从事件表捞 pending 记录交给 sender 投递
type OutboxRelayer struct {
	repo      *mysql.OutboxRepository
	batchSize int
	interval  time.Duration
	sender    Sender
	log       *zap.Logger
}

func NewOutboxRelayer(db *gorm.DB, sender Sender, log *zap.Logger) *OutboxRelayer {
	if log == nil {
		log = zap.NewNop()
	}
	return &OutboxRelayer{
		repo:      &mysql.OutboxRepository{DB: db},
		batchSize: 200,
		interval:  time.Second,
		sender:    sender,
		log:       log,
	}
}

func (r *OutboxRelayer) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.drainOnce(ctx)
		}
	}
}

func (r *OutboxRelayer) drainOnce(ctx context.Context) {
	rows, err := r.repo.List(ctx, r.batchSize)
	if err != nil {
		r.log.Error("outbox query failed", zap.Error(err))
		return
	}
	for i := range rows {
		ob := rows[i]
		if err = r.sender(ctx, &ob); err != nil {
			_ = r.repo.RetryUpdate(ctx, ob.ID)
			continue
		}
		_ = r.repo.SuccessUpdate(ctx, ob.ID)
	}
}

// KafkaSender 按社区ID分key投递，保证单社区事件有序
func KafkaSender(p *pkg.KafkaProducer) Sender {
	return func(ctx context.Context, ob *model.CommunityOutbox) error {
		value, err := json.Marshal(map[string]any{
			"event_type": ob.EventType,
			"payload":    json.RawMessage(ob.Payload),
		})
		if err != nil {
			return err
		}
		return p.Send(ctx, pkg.MakeKeyFromID(ob.CommunityID), value)
	}
}

// LogSender kafka 未配置时的降级 sender
func LogSender(log *zap.Logger) Sender {
	return func(ctx context.Context, ob *model.CommunityOutbox) error {
		log.Info("outbox event",
			zap.String("event_type", ob.EventType),
			zap.Uint64("community_id", ob.CommunityID),
			zap.Uint64("actor_id", ob.ActorID),
			zap.String("payload", ob.Payload))
		return nil
	}
}

// MemberCountReconciler 定期用成员表的真实值修正 communities.member_count
type MemberCountReconciler struct {
	repo      *mysql.MemberCountReconcilerRepo
	batchSize int
	interval  time.Duration
	log       *zap.Logger
}

func NewMemberCountReconciler(db *gorm.DB, log *zap.Logger) *MemberCountReconciler {
	if log == nil {
		log = zap.NewNop()
	}
	return &MemberCountReconciler{
		repo:      &mysql.MemberCountReconcilerRepo{DB: db},
		batchSize: 500,
		interval:  5 * time.Minute,
		log:       log,
	}
}

func (r *MemberCountReconciler) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.reconcileOnce(ctx)
		}
	}
}

// reconcileOnce 按游标分批扫全部社区
func (r *MemberCountReconciler) reconcileOnce(ctx context.Context) {
	var lastID uint64
	for {
		pairs, next, err := r.repo.ReconcileList(ctx, r.batchSize, lastID)
		if err != nil {
			r.log.Error("reconcile list failed", zap.Error(err))
			return
		}
		if len(pairs) == 0 {
			return
		}
		for _, p := range pairs {
			real, err := r.repo.RealMemberCount(ctx, p.ID)
			if err != nil {
				continue
			}
			if real != p.MemberCount {
				if err := r.repo.ReconcileMemberCount(ctx, p.ID, real); err != nil {
					r.log.Warn("reconcile update failed",
						zap.Uint64("community_id", p.ID), zap.Error(err))
				}
			}
		}
		lastID = next
	}
}

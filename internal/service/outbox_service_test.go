package service

import (
	"context"
	"errors"
	"testing"

	"Supply_Library/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDrainOnceDeliversAndMarks(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice", "alice@example.com", "secret")
	bob := seedUser(t, db, "bob", "bob@example.com", "secret")

	communitySvc := NewCommunityService(db, nil)
	c, err := communitySvc.Create(alice.ID, "Tools", "")
	require.NoError(t, err)
	require.NoError(t, communitySvc.Join(context.Background(), c.ID, bob.ID))

	var delivered []string
	sender := func(ctx context.Context, ob *model.CommunityOutbox) error {
		if ob.EventType == "member_joined" {
			return errors.New("broker unreachable")
		}
		delivered = append(delivered, ob.EventType)
		return nil
	}

	relayer := NewOutboxRelayer(db, sender, nil)
	relayer.drainOnce(context.Background())

	assert.Equal(t, []string{"community_created"}, delivered)

	var sent, failed int64
	require.NoError(t, db.Model(&model.CommunityOutbox{}).Where("status = 1").Count(&sent).Error)
	require.NoError(t, db.Model(&model.CommunityOutbox{}).Where("status = 2").Count(&failed).Error)
	assert.Equal(t, int64(1), sent)
	assert.Equal(t, int64(1), failed)

	// 第二轮没有 pending 事件可投
	delivered = nil
	relayer.drainOnce(context.Background())
	assert.Empty(t, delivered)
}

func TestReconcileOnceFixesDrift(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice", "alice@example.com", "secret")

	communitySvc := NewCommunityService(db, nil)
	c, err := communitySvc.Create(alice.ID, "Tools", "")
	require.NoError(t, err)

	require.NoError(t, db.Model(&model.Community{}).Where("id = ?", c.ID).
		UpdateColumn("member_count", 42).Error)

	reconciler := NewMemberCountReconciler(db, nil)
	reconciler.reconcileOnce(context.Background())

	var community model.Community
	require.NoError(t, db.First(&community, c.ID).Error)
	assert.Equal(t, int64(1), community.MemberCount)
}

func TestLogSenderNeverFails(t *testing.T) {
	sender := LogSender(zap.NewNop())
	err := sender(context.Background(), &model.CommunityOutbox{
		EventType: "community_created", CommunityID: 1, ActorID: 1, Payload: "{}",
	})
	assert.NoError(t, err)
}

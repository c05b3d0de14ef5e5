package mysql

import (
	"context"
	"testing"

	"Supply_Library/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinDuplicateIsConflict(t *testing.T) {
	db := newTestDB(t)
	seedProfile(t, db, 1, "alice", "alice@example.com")
	seedProfile(t, db, 2, "bob", "bob@example.com")
	c := seedCommunity(t, db, 1, "Tools")

	repo := &CommunityMemberRepository{DB: db}
	require.NoError(t, repo.Join(&model.CommunityMember{CommunityID: c.ID, MemberID: 2, Role: model.RoleMember}))

	err := repo.Join(&model.CommunityMember{CommunityID: c.ID, MemberID: 2, Role: model.RoleMember})
	assert.ErrorIs(t, err, ErrAlreadyMember)

	var rows int64
	require.NoError(t, db.Model(&model.CommunityMember{}).
		Where("community_id = ? AND member_id = ?", c.ID, uint64(2)).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)

	cnt, err := repo.MemberCount(c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), cnt)
}

func TestJoinAdjustsStoredCount(t *testing.T) {
	db := newTestDB(t)
	seedProfile(t, db, 1, "alice", "alice@example.com")
	c := seedCommunity(t, db, 1, "Tools")

	repo := &CommunityMemberRepository{DB: db}
	require.NoError(t, repo.Join(&model.CommunityMember{CommunityID: c.ID, MemberID: 2}))

	var community model.Community
	require.NoError(t, db.First(&community, c.ID).Error)
	assert.Equal(t, int64(2), community.MemberCount)
}

func TestLeaveIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	seedProfile(t, db, 1, "alice", "alice@example.com")
	c := seedCommunity(t, db, 1, "Tools")

	repo := &CommunityMemberRepository{DB: db}
	require.NoError(t, repo.Join(&model.CommunityMember{CommunityID: c.ID, MemberID: 2}))
	require.NoError(t, repo.Leave(c.ID, 2))

	// 再次退出，不是成员也不报错
	require.NoError(t, repo.Leave(c.ID, 2))

	cnt, err := repo.MemberCount(c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cnt)

	var community model.Community
	require.NoError(t, db.First(&community, c.ID).Error)
	assert.Equal(t, int64(1), community.MemberCount)
}

func TestAdjustMemberCountFloorsAtZero(t *testing.T) {
	db := newTestDB(t)
	seedProfile(t, db, 1, "alice", "alice@example.com")
	c := seedCommunity(t, db, 1, "Tools")

	require.NoError(t, adjustMemberCount(db, c.ID, -5))

	var community model.Community
	require.NoError(t, db.First(&community, c.ID).Error)
	assert.Equal(t, int64(0), community.MemberCount)
}

func TestIsMemberByEmail(t *testing.T) {
	db := newTestDB(t)
	seedProfile(t, db, 1, "alice", "alice@example.com")
	c := seedCommunity(t, db, 1, "Tools")

	repo := &CommunityMemberRepository{DB: db}

	ok, err := repo.IsMemberByEmail(c.ID, "alice@example.com")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.IsMemberByEmail(c.ID, "bob@example.com")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReconcileFixesDriftedCount(t *testing.T) {
	db := newTestDB(t)
	seedProfile(t, db, 1, "alice", "alice@example.com")
	c := seedCommunity(t, db, 1, "Tools")

	// 人为制造漂移
	require.NoError(t, db.Model(&model.Community{}).Where("id = ?", c.ID).
		UpdateColumn("member_count", 99).Error)

	ctx := context.Background()
	repo := &MemberCountReconcilerRepo{DB: db}

	pairs, next, err := repo.ReconcileList(ctx, 100, 0)
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, c.ID, next)
	assert.Equal(t, int64(99), pairs[0].MemberCount)

	real, err := repo.RealMemberCount(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), real)

	require.NoError(t, repo.ReconcileMemberCount(ctx, c.ID, real))

	var community model.Community
	require.NoError(t, db.First(&community, c.ID).Error)
	assert.Equal(t, int64(1), community.MemberCount)
}

func TestReconcileListCursorEnds(t *testing.T) {
	db := newTestDB(t)
	seedProfile(t, db, 1, "alice", "alice@example.com")
	c := seedCommunity(t, db, 1, "Tools")

	repo := &MemberCountReconcilerRepo{DB: db}
	pairs, _, err := repo.ReconcileList(context.Background(), 100, c.ID)
	require.NoError(t, err)
	assert.Empty(t, pairs)
}

package mysql

import (
	"testing"

	"Supply_Library/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCommunitySeedsCreatorAsAdmin(t *testing.T) {
	db := newTestDB(t)
	seedProfile(t, db, 1, "alice", "alice@example.com")

	c := seedCommunity(t, db, 1, "Tools")
	require.NotZero(t, c.ID)
	assert.Equal(t, int64(1), c.MemberCount)

	var member model.CommunityMember
	require.NoError(t, db.Where("community_id = ? AND member_id = ?", c.ID, uint64(1)).First(&member).Error)
	assert.Equal(t, model.RoleAdmin, member.Role)

	assert.Equal(t, []string{"community_created"}, outboxEvents(t, db))
}

func TestFindByIDNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := &CommunityRepository{DB: db}

	_, err := repo.FindByID(42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindByIDsEmpty(t *testing.T) {
	db := newTestDB(t)
	repo := &CommunityRepository{DB: db}

	list, err := repo.FindByIDs(nil)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUpdateCommunityAvatar(t *testing.T) {
	db := newTestDB(t)
	seedProfile(t, db, 1, "alice", "alice@example.com")
	c := seedCommunity(t, db, 1, "Tools")

	repo := &CommunityRepository{DB: db}
	require.NoError(t, repo.UpdateAvatar(c.ID, "/avatars/x.jpg"))

	got, err := repo.FindByID(c.ID)
	require.NoError(t, err)
	assert.Equal(t, "/avatars/x.jpg", got.AvatarURL)
}

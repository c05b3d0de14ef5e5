package mysql

import (
	"testing"

	"Supply_Library/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateWithCommunityWritesAssociation(t *testing.T) {
	db := newTestDB(t)
	seedProfile(t, db, 1, "alice", "alice@example.com")
	c := seedCommunity(t, db, 1, "Tools")

	repo := &ItemRepository{DB: db}
	item := &model.Item{Name: "Ladder", OwnerID: 1, Quantity: 1}
	require.NoError(t, repo.CreateWithCommunity(item, c.ID))
	require.NotZero(t, item.ID)

	ids, err := repo.ItemIDsInCommunity(c.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint64{item.ID}, ids)

	assert.Contains(t, outboxEvents(t, db), "item_shared")
}

func TestAddToCommunityDuplicateIsConflict(t *testing.T) {
	db := newTestDB(t)
	seedProfile(t, db, 1, "alice", "alice@example.com")
	c := seedCommunity(t, db, 1, "Tools")

	repo := &ItemRepository{DB: db}
	item := &model.Item{Name: "Drill", OwnerID: 1, Quantity: 1}
	require.NoError(t, repo.Create(item))

	require.NoError(t, repo.AddToCommunity(item.ID, c.ID, 1))
	err := repo.AddToCommunity(item.ID, c.ID, 1)
	assert.ErrorIs(t, err, ErrItemAlreadyShared)

	var rows int64
	require.NoError(t, db.Model(&model.CommunityItem{}).
		Where("community_id = ? AND item_id = ?", c.ID, item.ID).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}

func TestSearchOwnedCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	repo := &ItemRepository{DB: db}
	require.NoError(t, repo.Create(&model.Item{Name: "Electric Drill", OwnerID: 1, Quantity: 1}))
	require.NoError(t, repo.Create(&model.Item{Name: "Hammer", OwnerID: 1, Quantity: 1}))
	require.NoError(t, repo.Create(&model.Item{Name: "drill bits", OwnerID: 2, Quantity: 1}))

	found, err := repo.SearchOwned(1, "DRILL", nil)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Electric Drill", found[0].Name)
}

func TestSearchOwnedExcludesIDs(t *testing.T) {
	db := newTestDB(t)
	repo := &ItemRepository{DB: db}
	a := &model.Item{Name: "Saw", OwnerID: 1, Quantity: 1}
	b := &model.Item{Name: "Sawhorse", OwnerID: 1, Quantity: 1}
	require.NoError(t, repo.Create(a))
	require.NoError(t, repo.Create(b))

	found, err := repo.SearchOwned(1, "saw", []uint64{a.ID})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, b.ID, found[0].ID)
}

func TestSearchOwnedNoMatchesReturnsEmpty(t *testing.T) {
	db := newTestDB(t)
	repo := &ItemRepository{DB: db}

	found, err := repo.SearchOwned(1, "anything", nil)
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestFindByIDsMatchingFiltersByQuery(t *testing.T) {
	db := newTestDB(t)
	repo := &ItemRepository{DB: db}
	a := &model.Item{Name: "Garden Hose", OwnerID: 1, Quantity: 1}
	b := &model.Item{Name: "Rake", OwnerID: 1, Quantity: 1}
	require.NoError(t, repo.Create(a))
	require.NoError(t, repo.Create(b))

	found, err := repo.FindByIDsMatching([]uint64{a.ID, b.ID}, "hose")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, a.ID, found[0].ID)

	all, err := repo.FindByIDsMatching([]uint64{a.ID, b.ID}, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

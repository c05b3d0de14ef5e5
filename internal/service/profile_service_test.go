package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{0, 128, 255, 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestGetLazilyCreatesProfile(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice", "alice@example.com", "secret")
	svc := NewProfileService(db, t.TempDir())

	p, err := svc.Get(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, p.UserID)
	assert.Equal(t, "alice", p.Username)
	assert.Equal(t, "alice@example.com", p.Email)

	// 二次读取返回同一行
	again, err := svc.Get(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, p.UserID, again.UserID)
}

func TestGetUnknownUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewProfileService(db, t.TempDir())

	_, err := svc.Get(404)
	assert.Error(t, err)
}

func TestUpdateFullName(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice", "alice@example.com", "secret")
	svc := NewProfileService(db, t.TempDir())

	require.NoError(t, svc.Update(alice.ID, "Alice Liddell"))

	p, err := svc.Get(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Liddell", p.FullName)
}

func TestSaveAvatarWritesFileAndURL(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice", "alice@example.com", "secret")
	dir := t.TempDir()
	svc := NewProfileService(db, dir)

	url, err := svc.SaveAvatar(alice.ID, bytes.NewReader(pngBytes(t, 64, 64)))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/avatars/"))
	assert.True(t, strings.HasSuffix(url, ".jpg"))

	data, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/avatars/")))
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	p, err := svc.Get(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, url, p.AvatarURL)
}

func TestSaveAvatarRejectsNonImage(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice", "alice@example.com", "secret")
	svc := NewProfileService(db, t.TempDir())

	_, err := svc.SaveAvatar(alice.ID, strings.NewReader("definitely not an image"))
	assert.Error(t, err)
}

func TestSaveCommunityAvatarRequiresAdmin(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice", "alice@example.com", "secret")
	bob := seedUser(t, db, "bob", "bob@example.com", "secret")
	communitySvc := NewCommunityService(db, nil)
	c, err := communitySvc.Create(alice.ID, "Tools", "")
	require.NoError(t, err)

	svc := NewProfileService(db, t.TempDir())

	_, err = svc.SaveCommunityAvatar(c.ID, bob.ID, bytes.NewReader(pngBytes(t, 32, 32)))
	assert.ErrorIs(t, err, ErrNotAdmin)

	url, err := svc.SaveCommunityAvatar(c.ID, alice.ID, bytes.NewReader(pngBytes(t, 32, 32)))
	require.NoError(t, err)

	got, err := communitySvc.Detail(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, url, got.AvatarURL)
}

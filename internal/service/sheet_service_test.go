package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `Name,Description,Category,Condition,Quantity,Owner
Ladder,6ft aluminium,Tools,good,2,Alice
,missing name row,,,1,
Hammer,,Tools,,not-a-number,Bob
Tent,"4 person, waterproof",Camping,used,1,Carol
`

func TestFetchItemsParsesPublishedCSV(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	svc := NewSheetService(srv.URL)
	require.True(t, svc.Enabled())

	items, err := svc.FetchItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, "Ladder", items[0].Name)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "Alice", items[0].Owner)

	// 数量列解析失败时回落为 1
	assert.Equal(t, "Hammer", items[1].Name)
	assert.Equal(t, 1, items[1].Quantity)

	assert.Equal(t, "4 person, waterproof", items[2].Description)
}

func TestFetchItemsBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	svc := NewSheetService(srv.URL)
	_, err := svc.FetchItems(context.Background())
	assert.Error(t, err)
}

func TestSheetServiceDisabledWithoutURL(t *testing.T) {
	svc := NewSheetService("")
	assert.False(t, svc.Enabled())
}

func TestParseSheetCSVHeaderDrivenColumns(t *testing.T) {
	// 列顺序与标准不同，按表头名定位
	csv := "quantity,name\n3,Rope\n"
	items, err := parseSheetCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Rope", items[0].Name)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestParseSheetCSVShortRows(t *testing.T) {
	csv := "name,description,quantity\nRope\n"
	items, err := parseSheetCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Rope", items[0].Name)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestParseSheetCSVEmpty(t *testing.T) {
	items, err := parseSheetCSV(strings.NewReader("name,quantity\n"))
	require.NoError(t, err)
	assert.Empty(t, items)
}

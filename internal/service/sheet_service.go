package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// SheetItem 旧版表格导入的一行，只读展示用
type SheetItem struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	Condition   string `json:"condition,omitempty"`
	Quantity    int    `json:"quantity"`
	Owner       string `json:"owner,omitempty"`
}

// SheetService 拉取已发布表格的 CSV 导出并解析成行
type SheetService struct {
	url    string
	client *http.Client
}

func NewSheetService(url string) *SheetService {
	return &SheetService{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *SheetService) Enabled() bool { return s.url != "" }

func (s *SheetService) FetchItems(ctx context.Context) ([]SheetItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching sheet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching sheet: unexpected status %d", resp.StatusCode)
	}
	return parseSheetCSV(resp.Body)
}

// parseSheetCSV 第一行为表头，列按表头名定位，缺列容忍
func parseSheetCSV(r io.Reader) ([]SheetItem, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading sheet header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var items []SheetItem
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading sheet row: %w", err)
		}
		item := SheetItem{
			Name:        field(row, "name"),
			Description: field(row, "description"),
			Category:    field(row, "category"),
			Condition:   field(row, "condition"),
			Owner:       field(row, "owner"),
			Quantity:    1,
		}
		if q, err := strconv.Atoi(field(row, "quantity")); err == nil && q >= 1 {
			item.Quantity = q
		}
		if item.Name == "" {
			continue
		}
		items = append(items, item)
	}
	if items == nil {
		items = []SheetItem{}
	}
	return items, nil
}

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"meal-planner/internal/pkg/common"

	"github.com/go-resty/resty/v2"
)

// HTTPSource 從遠端商品服務讀取目錄，GET {baseURL}/items
type HTTPSource struct {
	client *resty.Client
}

// NewHTTPSource 創建遠端目錄來源
func NewHTTPSource(baseURL string, timeout time.Duration) *HTTPSource {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &HTTPSource{client: client}
}

// Items 讀取遠端商品列表
func (s *HTTPSource) Items(ctx context.Context) ([]Item, error) {
	items, _, err := s.fetch(ctx)
	return items, err
}

// Version 優先使用 HEAD 回應的 ETag，沒有時以內容雜湊值作為版本
func (s *HTTPSource) Version(ctx context.Context) (string, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		Head("/items")
	if err == nil && resp.IsSuccess() {
		if etag := resp.Header().Get("ETag"); etag != "" {
			return etag, nil
		}
	}

	_, body, err := s.fetch(ctx)
	if err != nil {
		return "", err
	}
	return common.HashString(string(body)), nil
}

// Ping 以 HEAD 檢查遠端服務是否可用，不下載內容
func (s *HTTPSource) Ping(ctx context.Context) error {
	resp, err := s.client.R().
		SetContext(ctx).
		Head("/items")
	if err != nil {
		return fmt.Errorf("failed to reach catalog: %w", err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("failed to reach catalog: status code %d", resp.StatusCode())
	}
	return nil
}

func (s *HTTPSource) fetch(ctx context.Context) ([]Item, []byte, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		Get("/items")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, nil, fmt.Errorf("failed to fetch catalog: status code %d", resp.StatusCode())
	}

	var items []Item
	if err := json.Unmarshal(resp.Body(), &items); err != nil {
		return nil, nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return items, resp.Body(), nil
}

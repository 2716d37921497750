package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"meal-planner/internal/pkg/common"
)

// Store 以 SQLite items 表為來源的商品目錄
type Store struct {
	db *sql.DB
}

// NewStore 創建商品目錄存取
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Items 依 ID 順序讀取所有商品
func (s *Store) Items(ctx context.Context) ([]Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, category, price, available_pieces, image_url FROM items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.Name, &item.Category, &item.Price, &item.AvailablePieces, &item.ImageURL); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}
	return items, nil
}

// Version 以 ID 順序對所有 id:name 計算雜湊，改名、刪除、新增都會改變版本
func (s *Store) Version(ctx context.Context) (string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM items ORDER BY id`)
	if err != nil {
		return "", fmt.Errorf("failed to read catalog version: %w", err)
	}
	defer rows.Close()

	var (
		b     strings.Builder
		count int
	)
	for rows.Next() {
		var (
			id   int64
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return "", fmt.Errorf("failed to scan catalog version: %w", err)
		}
		// 名稱長度前綴，避免拼接後產生歧義
		fmt.Fprintf(&b, "%d:%d:%s\n", id, len(name), name)
		count++
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("failed to read catalog version: %w", err)
	}
	return fmt.Sprintf("%d:%s", count, common.HashString(b.String())), nil
}

// Add 新增商品並回傳 ID，僅供初始資料與測試使用
func (s *Store) Add(ctx context.Context, item Item) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO items (name, price, available_pieces, image_url, category)
		 VALUES (?, ?, ?, ?, ?)`,
		item.Name, item.Price, item.AvailablePieces, item.ImageURL, item.Category,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert item: %w", err)
	}
	return res.LastInsertId()
}

// Ping 檢查資料庫是否可用
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

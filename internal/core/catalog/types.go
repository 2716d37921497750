package catalog

import "context"

// Item 可購買商品，核心只讀取 ID 與名稱
type Item struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Category        string  `json:"category,omitempty"`
	Price           float64 `json:"price,omitempty"`
	AvailablePieces int     `json:"available_pieces,omitempty"`
	ImageURL        string  `json:"image_url,omitempty"`
}

// Source 商品目錄的唯讀來源
type Source interface {
	// Items 回傳某一時間點的完整商品快照
	Items(ctx context.Context) ([]Item, error)
	// Version 目錄內容變動時必定改變的標記
	Version(ctx context.Context) (string, error)
}

// Indexer 為每次餐單請求提供目錄索引
type Indexer interface {
	Index(ctx context.Context) (Index, error)
}

// IndexCache 以目錄版本為鍵的索引快取
type IndexCache interface {
	Get(ctx context.Context, version string) (Index, bool)
	Set(ctx context.Context, version string, idx Index) error
}

package catalog

import (
	"context"
	"fmt"

	"meal-planner/internal/pkg/common"

	"go.uber.org/zap"
)

// CachedIndexer 讀取目錄快照並建立索引，cache 為 nil 時每次都重建
type CachedIndexer struct {
	source Source
	cache  IndexCache
}

// NewIndexer 創建索引器
func NewIndexer(source Source, cache IndexCache) *CachedIndexer {
	return &CachedIndexer{
		source: source,
		cache:  cache,
	}
}

// Index 取得目前目錄的索引。
// 快取以目錄版本為鍵，版本改變即視為失效；快取錯誤只會導致重建。
func (i *CachedIndexer) Index(ctx context.Context) (Index, error) {
	if i.cache == nil {
		return i.build(ctx)
	}

	version, err := i.source.Version(ctx)
	if err != nil {
		common.LogWarn("無法取得目錄版本，略過快取", zap.Error(err))
		return i.build(ctx)
	}

	if idx, ok := i.cache.Get(ctx, version); ok {
		common.LogCacheHit("catalog_index", version)
		return idx, nil
	}
	common.LogCacheMiss("catalog_index", version)

	idx, err := i.build(ctx)
	if err != nil {
		return nil, err
	}

	if err := i.cache.Set(ctx, version, idx); err != nil {
		common.LogWarn("目錄索引快取寫入失敗", zap.Error(err), zap.String("version", version))
	}
	return idx, nil
}

func (i *CachedIndexer) build(ctx context.Context) (Index, error) {
	items, err := i.source.Items(ctx)
	if err != nil {
		return nil, common.ErrCatalogUnavailable.Wrap(fmt.Errorf("failed to read catalog: %w", err))
	}

	idx := BuildIndex(items)
	common.LogDebug("目錄索引已建立",
		zap.Int("items", len(items)),
		zap.Int("entries", len(idx)),
	)
	return idx, nil
}

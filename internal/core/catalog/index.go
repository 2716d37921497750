package catalog

import "strings"

// Index 正規化商品名稱到商品 ID 的對應
type Index map[string]int64

// NormalizeName 轉小寫並去除頭尾空白
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// BuildIndex 由商品快照建立索引。
// 正規化後名稱重複時，以較晚出現的商品為準。
func BuildIndex(items []Item) Index {
	idx := make(Index, len(items))
	for _, item := range items {
		idx[NormalizeName(item.Name)] = item.ID
	}
	return idx
}

// Lookup 以正規化後的字詞查詢商品 ID
func (idx Index) Lookup(word string) (int64, bool) {
	id, ok := idx[NormalizeName(word)]
	return id, ok
}

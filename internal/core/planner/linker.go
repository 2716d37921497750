package planner

import (
	"fmt"
	"html"
	"strings"

	"meal-planner/internal/core/catalog"
)

// Linker 把食材字詞連結到商品下單頁
type Linker struct {
	orderPath string
}

// NewLinker orderPath 需包含一個 %d，例如 "/order/%d"
func NewLinker(orderPath string) *Linker {
	return &Linker{orderPath: orderPath}
}

// Annotate 逐字比對目錄索引。
// 以 ", " 切出片語、以空白切出字詞；比對單位是字詞，多字的商品名稱不會整體命中。
// 命中的字詞換成連結並顯示原字，其餘轉成小寫原樣保留。
func (l *Linker) Annotate(text string, idx catalog.Index) (string, []Link) {
	var links []Link

	phrases := strings.Split(text, ", ")
	for i, phrase := range phrases {
		words := strings.Fields(phrase)
		for j, word := range words {
			id, ok := idx.Lookup(word)
			if !ok {
				words[j] = catalog.NormalizeName(word)
				continue
			}
			words[j] = l.link(id, word)
			links = append(links, Link{Word: word, ItemID: id})
		}
		phrases[i] = strings.Join(words, " ")
	}

	return strings.Join(phrases, ", "), links
}

func (l *Linker) link(id int64, word string) string {
	href := fmt.Sprintf(l.orderPath, id)
	return fmt.Sprintf("<a href='%s'>%s</a>", html.EscapeString(href), html.EscapeString(word))
}

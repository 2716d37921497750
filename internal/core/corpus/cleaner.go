package corpus

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// spaceClass 涵蓋 Unicode 空白（NBSP、全形空白等），RE2 的 \s 只認 ASCII
const spaceClass = `\s\x{0b}\x{1c}-\x{1f}\x{85}\p{Z}`

var (
	whitespaceRun = regexp.MustCompile(`[` + spaceClass + `]+`)
	ellipsisRun   = regexp.MustCompile(`\.{3,}`)
	targetName    = regexp.MustCompile(`^[a-zA-Z0-9` + spaceClass + `,.-]+$`)
)

// CleanText 正規化食材文字。
// 刪去省略號後才合併空白並去頭尾，兩次套用結果不變。
func CleanText(text string, present bool) string {
	if !present {
		return MissingData
	}

	text = ellipsisRun.ReplaceAllString(text, "")
	text = whitespaceRun.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)
	if text == "" {
		return MissingData
	}

	return capitalizeFirst(text)
}

// capitalizeFirst 只把第一個字元轉大寫，其餘保持原樣
func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || unicode.IsUpper(r) {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// IsTargetLanguage 名稱只含英數、空白、逗號、句點、連字號時保留
func IsTargetLanguage(name string) bool {
	return targetName.MatchString(name)
}

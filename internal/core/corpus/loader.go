package corpus

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"meal-planner/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Stats 載入統計
type Stats struct {
	Rows    int
	Kept    int
	Dropped int
}

// Open 依來源類型載入食譜，http(s) 開頭視為 URL，其餘為本機檔案
func Open(ctx context.Context, source string, timeout time.Duration) (*Corpus, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return LoadURL(ctx, source, timeout)
	}
	return LoadFile(source)
}

// LoadFile 從 CSV 檔案載入
func LoadFile(path string) (*Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, common.ErrCorpusLoad.Wrap(fmt.Errorf("failed to open corpus: %w", err))
	}
	defer f.Close()

	c, stats, err := Load(f)
	if err != nil {
		return nil, err
	}

	common.LogInfo("食譜資料已載入",
		zap.String("source", path),
		zap.Int("rows", stats.Rows),
		zap.Int("kept", stats.Kept),
		zap.Int("dropped", stats.Dropped),
	)
	return c, nil
}

// LoadURL 從遠端下載 CSV 後載入
func LoadURL(ctx context.Context, url string, timeout time.Duration) (*Corpus, error) {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "text/csv")

	resp, err := client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(url)
	if err != nil {
		return nil, common.ErrCorpusLoad.Wrap(fmt.Errorf("failed to fetch corpus: %w", err))
	}
	body := resp.RawBody()
	defer body.Close()

	if !resp.IsSuccess() {
		return nil, common.ErrCorpusLoad.Wrap(fmt.Errorf("failed to fetch corpus: status code %d", resp.StatusCode()))
	}

	c, stats, err := Load(body)
	if err != nil {
		return nil, err
	}

	common.LogInfo("食譜資料已載入",
		zap.String("source", url),
		zap.Int("rows", stats.Rows),
		zap.Int("kept", stats.Kept),
		zap.Int("dropped", stats.Dropped),
	)
	return c, nil
}

// Load 解析 CSV 並清理、過濾，任何解析錯誤都使整個載入失敗
func Load(r io.Reader) (*Corpus, Stats, error) {
	var stats Stats

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, stats, common.ErrCorpusLoad.Wrap(fmt.Errorf("corpus is empty"))
		}
		return nil, stats, common.ErrCorpusLoad.Wrap(fmt.Errorf("failed to read header: %w", err))
	}

	index, err := columnIndex(header)
	if err != nil {
		return nil, stats, common.ErrCorpusLoad.Wrap(err)
	}

	var recipes []Recipe
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, stats, common.ErrCorpusLoad.Wrap(fmt.Errorf("failed to parse row %d: %w", stats.Rows+1, err))
		}
		stats.Rows++

		rec := parseRow(row, index)
		if !IsTargetLanguage(rec.Name) {
			stats.Dropped++
			common.LogDebug("略過非目標語言食譜", zap.String("name", rec.Name))
			continue
		}
		recipes = append(recipes, rec)
	}
	stats.Kept = len(recipes)

	return New(recipes), stats, nil
}

// columnIndex 建立欄位名稱到位置的對應，name/cuisine/course/ingredients 為必要欄位
func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}
	for _, required := range []string{"name", "cuisine", "course", "ingredients"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}
	return index, nil
}

// field 取出欄位值，空值或欄位不存在時 present 為 false
func field(row []string, index map[string]int, name string) (string, bool) {
	i, ok := index[name]
	if !ok || i >= len(row) {
		return "", false
	}
	v := row[i]
	if strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}

// sentinel 保留原值，缺漏時以標記替代
func sentinel(v string, present bool) string {
	if !present {
		return MissingData
	}
	return v
}

func parseRow(row []string, index map[string]int) Recipe {
	name, _ := field(row, index, "name")
	cuisine, _ := field(row, index, "cuisine")
	course, _ := field(row, index, "course")
	ingredients, hasIngredients := field(row, index, "ingredients")
	description, hasDescription := field(row, index, "description")
	instructions, hasInstructions := field(row, index, "instructions")
	imageURL, _ := field(row, index, "image_url")
	prep, _ := field(row, index, "prep_time")

	return Recipe{
		Name:         strings.TrimSpace(name),
		Cuisine:      strings.TrimSpace(cuisine),
		Course:       strings.TrimSpace(course),
		Ingredients:  CleanText(ingredients, hasIngredients),
		Description:  sentinel(description, hasDescription),
		PrepTime:     parsePrepTime(prep),
		Instructions: sentinel(instructions, hasInstructions),
		ImageURL:     strings.TrimSpace(imageURL),
	}
}

// parsePrepTime 解析分鐘數，接受 "30" 或 "30.0"，無法解析時為 0
func parsePrepTime(v string) int {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(math.Round(f))
}

package planner

import (
	"context"
	"errors"
	"strings"
	"time"

	"meal-planner/internal/core/catalog"
	"meal-planner/internal/core/corpus"
	"meal-planner/internal/pkg/common"

	"go.uber.org/zap"
)

// Service 對外提供料理查詢與餐單產生
type Service struct {
	corpus  *corpus.Corpus
	indexer catalog.Indexer
	sampler Sampler
	linker  *Linker
}

// NewService 創建餐單服務
func NewService(c *corpus.Corpus, indexer catalog.Indexer, sampler Sampler, linker *Linker) *Service {
	return &Service{
		corpus:  c,
		indexer: indexer,
		sampler: sampler,
		linker:  linker,
	}
}

// CorpusSize 可供抽樣的食譜數量
func (s *Service) CorpusSize() int {
	return s.corpus.Len()
}

// ListCuisines 所有料理類型
func (s *Service) ListCuisines() []string {
	return s.corpus.Cuisines()
}

// ListCoursesForCuisine 某料理類型下的所有餐別
func (s *Service) ListCoursesForCuisine(cuisine string) []string {
	return s.corpus.CoursesForCuisine(strings.TrimSpace(cuisine))
}

// GeneratePlan 產生一週餐單並為每道菜的食材加上商品連結。
// 目錄無法讀取時仍回傳餐單，只是沒有任何連結。
func (s *Service) GeneratePlan(ctx context.Context, cuisine string, courses []string) (*MealPlan, error) {
	start := time.Now()
	cuisine = strings.TrimSpace(cuisine)

	plan, err := Generate(s.corpus, cuisine, courses, s.sampler)
	if err != nil {
		if errors.Is(err, common.ErrNoMatch) {
			common.LogInfo("沒有符合的料理類型", zap.String("cuisine", cuisine))
		}
		return nil, err
	}

	if len(plan.Entries) > 0 {
		idx, err := s.indexer.Index(ctx)
		if err != nil {
			common.LogWarn("商品目錄無法讀取，餐單不含連結",
				zap.Error(err),
				zap.String("cuisine", cuisine),
			)
			idx = catalog.Index{}
		}

		for i := range plan.Entries {
			entry := &plan.Entries[i]
			entry.AnnotatedIngredients, entry.Links = s.linker.Annotate(entry.Recipe.Ingredients, idx)
		}
	}

	common.LogInfo("餐單已產生",
		zap.String("cuisine", cuisine),
		zap.Strings("courses", courses),
		zap.Int("entries", len(plan.Entries)),
		zap.Duration("耗時", time.Since(start)),
	)
	return plan, nil
}

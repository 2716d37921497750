package planner

import (
	"meal-planner/internal/core/corpus"
	"meal-planner/internal/pkg/common"
)

// Generate 對每一天、每個選擇的餐別抽出一道食譜。
// 餐別保留呼叫者給的順序與重複；同一道食譜可在不同天被抽中。
// 料理類型在 corpus 中完全沒有食譜時回傳 common.ErrNoMatch。
func Generate(c *corpus.Corpus, cuisine string, courses []string, sampler Sampler) (*MealPlan, error) {
	if !c.HasCuisine(cuisine) {
		return nil, common.ErrNoMatch
	}

	eligible := make([][]corpus.Recipe, len(courses))
	for i, course := range courses {
		eligible[i] = c.Match(cuisine, course)
	}

	plan := &MealPlan{
		Cuisine: cuisine,
		Courses: append([]string{}, courses...),
		Entries: []PlanEntry{},
	}

	for _, day := range Weekdays {
		for i, course := range courses {
			options := eligible[i]
			if len(options) == 0 {
				continue
			}
			plan.Entries = append(plan.Entries, PlanEntry{
				Day:    day,
				Course: course,
				Recipe: options[sampler.Intn(len(options))],
			})
		}
	}

	return plan, nil
}

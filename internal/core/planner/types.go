package planner

import "meal-planner/internal/core/corpus"

// Weekdays 餐單固定的七天，依序產生
var Weekdays = [7]string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
}

// Link 食材字詞與商品的對應
type Link struct {
	Word   string `json:"word"`
	ItemID int64  `json:"item_id"`
}

// PlanEntry 某天某餐別抽中的食譜
type PlanEntry struct {
	Day                  string        `json:"day"`
	Course               string        `json:"course"`
	Recipe               corpus.Recipe `json:"recipe"`
	AnnotatedIngredients string        `json:"annotated_ingredients"`
	Links                []Link        `json:"links"`
}

// MealPlan 依星期、再依餐別選擇順序排列；沒有候選食譜的格子不會出現
type MealPlan struct {
	Cuisine string      `json:"cuisine"`
	Courses []string    `json:"courses"`
	Entries []PlanEntry `json:"entries"`
}

package plan

import "meal-planner/internal/core/planner"

// GeneratePlanRequest 產生一週餐單
type GeneratePlanRequest struct {
	Cuisine string   `json:"cuisine" binding:"required"`             // 料理類型，不分大小寫
	Courses []string `json:"courses" binding:"max=20,dive,required"` // 餐別，依序排列，可為空；最多 20 個
}

// GeneratePlanResponse 餐單結果
type GeneratePlanResponse struct {
	Cuisine string          `json:"cuisine"`
	Entries []EntryResponse `json:"entries"`
	Count   int             `json:"count"`
}

// EntryResponse 餐單中的一格
type EntryResponse struct {
	Day          string         `json:"day"`
	Course       string         `json:"course"`
	MealName     string         `json:"meal_name"`
	Description  string         `json:"description"`
	PrepTimeMins int            `json:"prep_time_mins"`
	Ingredients  string         `json:"ingredients"` // 已加上商品連結的 HTML 片段
	Links        []planner.Link `json:"links"`
	Instructions string         `json:"instructions"`
	ImageURL     string         `json:"image_url"`
}

// MessageResponse 提示訊息
type MessageResponse struct {
	Message string `json:"message"`
}

// CuisinesResponse 料理類型列表
type CuisinesResponse struct {
	Cuisines []string `json:"cuisines"`
}

// CoursesResponse 某料理類型下的餐別
type CoursesResponse struct {
	Cuisine string   `json:"cuisine"`
	Courses []string `json:"courses"`
}

func toResponse(mp *planner.MealPlan) GeneratePlanResponse {
	entries := make([]EntryResponse, len(mp.Entries))
	for i, e := range mp.Entries {
		links := e.Links
		if links == nil {
			links = []planner.Link{}
		}
		entries[i] = EntryResponse{
			Day:          e.Day,
			Course:       e.Course,
			MealName:     e.Recipe.Name,
			Description:  e.Recipe.Description,
			PrepTimeMins: e.Recipe.PrepTime,
			Ingredients:  e.AnnotatedIngredients,
			Links:        links,
			Instructions: e.Recipe.Instructions,
			ImageURL:     e.Recipe.ImageURL,
		}
	}
	return GeneratePlanResponse{
		Cuisine: mp.Cuisine,
		Entries: entries,
		Count:   len(entries),
	}
}

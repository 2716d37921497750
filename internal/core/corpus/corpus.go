package corpus

import (
	"sort"
	"strings"
)

// Corpus 清理並過濾後的食譜集合。
// 建立後唯讀，可被多個請求同時查詢而不需加鎖。
type Corpus struct {
	recipes   []Recipe
	byCuisine map[string][]int
	cuisines  []string
}

// New 以給定的食譜建立 Corpus，輸入切片會被複製
func New(recipes []Recipe) *Corpus {
	c := &Corpus{
		recipes:   make([]Recipe, len(recipes)),
		byCuisine: make(map[string][]int),
	}
	copy(c.recipes, recipes)

	seen := make(map[string]bool)
	for i, r := range c.recipes {
		if r.Cuisine == "" {
			continue
		}
		key := strings.ToLower(r.Cuisine)
		c.byCuisine[key] = append(c.byCuisine[key], i)
		if !seen[r.Cuisine] {
			seen[r.Cuisine] = true
			c.cuisines = append(c.cuisines, r.Cuisine)
		}
	}
	sort.Strings(c.cuisines)

	return c
}

// Len 食譜數量
func (c *Corpus) Len() int {
	return len(c.recipes)
}

// Cuisines 回傳所有不重複的料理類型
func (c *Corpus) Cuisines() []string {
	out := make([]string, len(c.cuisines))
	copy(out, c.cuisines)
	return out
}

// HasCuisine 料理類型（不分大小寫）是否至少有一筆食譜
func (c *Corpus) HasCuisine(cuisine string) bool {
	return len(c.byCuisine[strings.ToLower(cuisine)]) > 0
}

// CoursesForCuisine 回傳該料理類型下不重複的餐別
func (c *Corpus) CoursesForCuisine(cuisine string) []string {
	seen := make(map[string]bool)
	courses := []string{}
	for _, i := range c.byCuisine[strings.ToLower(cuisine)] {
		course := c.recipes[i].Course
		if course == "" || seen[course] {
			continue
		}
		seen[course] = true
		courses = append(courses, course)
	}
	sort.Strings(courses)
	return courses
}

// Match 回傳料理類型與餐別皆相符（不分大小寫）的食譜，順序與來源一致
func (c *Corpus) Match(cuisine, course string) []Recipe {
	var matches []Recipe
	for _, i := range c.byCuisine[strings.ToLower(cuisine)] {
		if strings.EqualFold(c.recipes[i].Course, course) {
			matches = append(matches, c.recipes[i])
		}
	}
	return matches
}

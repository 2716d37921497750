package corpus

// MissingData 缺漏欄位的替代標記
const MissingData = "[missing data]"

// Recipe 一筆清理後的食譜紀錄，載入後不再變動
type Recipe struct {
	Name         string `json:"name"`
	Cuisine      string `json:"cuisine"`
	Course       string `json:"course"`
	Ingredients  string `json:"ingredients"`
	Description  string `json:"description"`
	PrepTime     int    `json:"prep_time"`
	Instructions string `json:"instructions"`
	ImageURL     string `json:"image_url,omitempty"`
}

package dto

type WeeklySummaryResponse struct {
	ThisWeek      float64 `json:"this_week"`
	LastWeek      float64 `json:"last_week"`
	PercentChange float64 `json:"percent_change"`
}

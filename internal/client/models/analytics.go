package models

// Analytics is returned by GET /admin/analytics.
type Analytics struct {
	UserGrowth   float64         `json:"userGrowth"`
	ActiveUsers  int             `json:"activeUsers"`
	TotalUsers   int             `json:"totalUsers"`
	UserActivity []ActivityPoint `json:"userActivity"`
}

// ActivityPoint is one bar of the activity chart.
type ActivityPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// MaxCount returns the largest count in the series, 0 for an empty series.
func (a Analytics) MaxCount() int {
	m := 0
	for _, p := range a.UserActivity {
		if p.Count > m {
			m = p.Count
		}
	}
	return m
}

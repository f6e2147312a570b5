package models

// DashboardStats is returned by GET /admin/dashboard/stats.
type DashboardStats struct {
	UserStats        UserStats        `json:"userStats"`
	SystemStats      SystemStats      `json:"systemStats"`
	RecentActivities []RecentActivity `json:"recentActivities"`
}

type UserStats struct {
	TotalUsers  int    `json:"totalUsers"`
	ActiveUsers int    `json:"activeUsers"`
	NewUsers    int    `json:"newUsers"`
	UserGrowth  string `json:"userGrowth"`
}

type SystemStats struct {
	CPUUsage    string `json:"cpuUsage"`
	MemoryUsage string `json:"memoryUsage"`
	DiskSpace   string `json:"diskSpace"`
	Healthy     bool   `json:"healthy"`
}

type RecentActivity struct {
	UserID      string `json:"userId"`
	Action      string `json:"action"`
	Description string `json:"description"`
	Timestamp   string `json:"timestamp"`
}

// Overview is the admin landing view model: statistics and the first page of
// users, fetched together.
type Overview struct {
	Stats DashboardStats
	Users UserPage
}

package models

// StatsSummary is the admin-facing usage snapshot.
type StatsSummary struct {
	TotalUsers    int `json:"total_users"`
	TotalFiles    int `json:"total_files"`
	RequestsToday int `json:"requests_today"`
}

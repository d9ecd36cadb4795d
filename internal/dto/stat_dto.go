package dto

type PlatformStatsResponse struct {
	TotalUsers    int64 `json:"total_users"`
	TotalProjects int64 `json:"total_projects"`
}

package dto

import "github.com/google/uuid"

type AuthorResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	AvatarURL *string   `json:"avatar_url"`
}

type PaginationMeta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// NewPaginationMeta derives page metadata from the full item count.
func NewPaginationMeta(page, limit int, total int64) PaginationMeta {
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return PaginationMeta{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: pages,
	}
}

type PageFilter struct {
	Page  int `form:"page"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=50"`
}

// Normalize applies the default page/limit used across list endpoints.
func (f *PageFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit == 0 {
		f.Limit = 10
	}
}

func (f *PageFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

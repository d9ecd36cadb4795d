package dto

import "github.com/google/uuid"

type ProfileResponse struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	FullName       string    `json:"full_name"`
	AvatarURL      *string   `json:"avatar_url,omitempty"`
	Bio            *string   `json:"bio,omitempty"`
	Skills         []string  `json:"skills,omitempty"`
	Certifications []string  `json:"certifications,omitempty"`
	GithubURL      *string   `json:"github_url,omitempty"`
	LinkedinURL    *string   `json:"linkedin_url,omitempty"`
	WebsiteURL     *string   `json:"website_url,omitempty"`
	IsPublic       bool      `json:"is_public"`
	CreatedAt      string    `json:"created_at"`
}

type UpdateProfileRequest struct {
	FullName       string   `json:"full_name" binding:"omitempty,max=100"`
	Bio            *string  `json:"bio" binding:"omitempty,max=1000"`
	Skills         []string `json:"skills" binding:"omitempty,max=30,dive,max=50"`
	Certifications []string `json:"certifications" binding:"omitempty,max=30,dive,max=100"`
	GithubURL      *string  `json:"github_url" binding:"omitempty,url"`
	LinkedinURL    *string  `json:"linkedin_url" binding:"omitempty,url"`
	WebsiteURL     *string  `json:"website_url" binding:"omitempty,url"`
	IsPublic       *bool    `json:"is_public"`
}

package service

import (
	"fmt"
	"html"
	"log"
	"os"
	"strings"
	"time"

	"github.com/devporto/backend/internal/model"
	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
)

type SearchService interface {
	IndexProject(project *model.Project) error
	DeleteProject(id string) error
	// GenerateSearchToken returns a tenant token scoped to the caller's
	// role; clients query Meilisearch directly with it.
	GenerateSearchToken(userRole string) (string, error)
}

type searchService struct {
	client        meilisearch.ServiceManager
	masterKey     string
	signingKeyUID string
	signingKey    string
	sanitizer     *bluemonday.Policy
}

func NewSearchService(client meilisearch.ServiceManager) SearchService {
	masterKey := os.Getenv("MEILI_MASTER_KEY")
	if masterKey == "" {
		log.Println("WARNING: MEILI_MASTER_KEY is not set.")
	}

	s := &searchService{
		client:    client,
		masterKey: masterKey,
		sanitizer: bluemonday.StrictPolicy(),
	}
	s.initIndexes()
	s.initSigningKey()
	return s
}

func (s *searchService) initIndexes() {
	filterableAttrs := []string{"is_public", "category"}
	filterableInterface := make([]any, len(filterableAttrs))
	for i, v := range filterableAttrs {
		filterableInterface[i] = v
	}
	_, err := s.client.Index("projects").UpdateFilterableAttributes(&filterableInterface)
	if err != nil {
		log.Printf("Failed to update projects filterable attributes: %v", err)
	}

	sortableAttrs := []string{"created_at", "likes_count", "average_rating"}
	_, err = s.client.Index("projects").UpdateSortableAttributes(&sortableAttrs)
	if err != nil {
		log.Printf("Failed to update projects sortable attributes: %v", err)
	}

	log.Println("Meilisearch indexes initialized")
}

func (s *searchService) initSigningKey() {
	resp, err := s.client.GetKeys(&meilisearch.KeysQuery{
		Limit: 20,
	})
	if err != nil {
		log.Printf("Failed to get meilisearch keys: %v", err)
		return
	}

	for _, key := range resp.Results {
		if key.Name == "TenantTokenSigner" {
			s.signingKeyUID = key.UID
			s.signingKey = key.Key
			log.Println("Found existing Meilisearch signing key")
			return
		}
	}

	expiry := time.Now().AddDate(100, 0, 0)

	key, err := s.client.CreateKey(&meilisearch.Key{
		Description: "Key to sign tenant tokens",
		Name:        "TenantTokenSigner",
		Actions:     []string{"search"},
		Indexes:     []string{"projects"},
		ExpiresAt:   expiry,
	})
	if err != nil {
		log.Printf("Failed to create signing key: %v", err)
		return
	}

	s.signingKeyUID = key.UID
	s.signingKey = key.Key
	log.Println("Created new Meilisearch signing key")
}

// Struct for Meilisearch indexing
type meiliProjectDoc struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	IsPublic      bool            `json:"is_public"`
	LikesCount    int64           `json:"likes_count"`
	AverageRating float64         `json:"average_rating"`
	CreatedAt     int64           `json:"created_at"`
	User          meiliUserSubset `json:"user"`
}

type meiliUserSubset struct {
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}

func (s *searchService) cleanContentForIndex(content string) string {
	// Replace block tags with spaces to prevent text merging
	content = strings.ReplaceAll(content, "</p>", " ")
	content = strings.ReplaceAll(content, "<br>", " ")
	content = strings.ReplaceAll(content, "</div>", " ")

	sanitized := s.sanitizer.Sanitize(content)
	cleanText := html.UnescapeString(sanitized)

	return strings.Join(strings.Fields(cleanText), " ")
}

func (s *searchService) IndexProject(project *model.Project) error {
	doc := meiliProjectDoc{
		ID:            project.ID.String(),
		Title:         project.Title,
		Description:   s.cleanContentForIndex(project.Description),
		Category:      project.Category,
		IsPublic:      project.IsPublic,
		LikesCount:    project.LikesCount,
		AverageRating: project.AverageRating,
		CreatedAt:     project.CreatedAt.Unix(),
		User: meiliUserSubset{
			Username:  project.User.Username,
			AvatarURL: getStringOrEmpty(project.User.AvatarURL),
		},
	}

	task, err := s.client.Index("projects").AddDocuments([]meiliProjectDoc{doc}, strPtr("id"))
	if err != nil {
		return err
	}
	log.Printf("Indexed project %s, task id: %d", project.ID, task.TaskUID)
	return nil
}

func (s *searchService) DeleteProject(id string) error {
	_, err := s.client.Index("projects").DeleteDocument(id)
	return err
}

func (s *searchService) GenerateSearchToken(userRole string) (string, error) {
	if s.signingKeyUID == "" || s.signingKey == "" {
		return "", fmt.Errorf("signing key not initialized")
	}

	searchRules := map[string]any{}

	switch userRole {
	case "admin":
		// Admins may search private projects too.
		searchRules["projects"] = map[string]any{"filter": nil}
	default:
		searchRules["projects"] = map[string]any{
			"filter": "is_public = true",
		}
	}

	token, err := s.client.GenerateTenantToken(s.signingKeyUID, searchRules, &meilisearch.TenantTokenOptions{
		APIKey:    s.signingKey,
		ExpiresAt: time.Now().Add(24 * time.Hour),
	})
	if err != nil {
		return "", err
	}

	return token, nil
}

func getStringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func strPtr(s string) *string {
	return &s
}

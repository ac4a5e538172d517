package domain

import "context"

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*CreateResponse, error)
	List(ctx context.Context, req ListRequest) ([]ListItem, error)
	Delete(ctx context.Context, id string) error
}

// CreateRequest is the decoded request body. Every field is untrusted and
// loosely typed; the service coerces it.
type CreateRequest map[string]any

type CreateResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// ListRequest carries the raw take value; nil selects the default.
type ListRequest struct {
	Take *int
}

type NamedRef struct {
	Name string `json:"name"`
}

type ListItem struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       int64     `json:"price"`
	ImageURL    string    `json:"imageUrl"`
	Available   bool      `json:"available"`
	Premium     bool      `json:"premium"`
	Gender      *string   `json:"gender"`
	Subcategory *string   `json:"subcategory"`
	Category    *NamedRef `json:"category"`
	Brand       *NamedRef `json:"brand"`
	Color       *NamedRef `json:"color"`
}

package entity

import "time"

// Project is a portfolio showcase entry
type Project struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	TechStack   []string  `json:"techStack"`
	GithubURL   string    `json:"githubUrl"`
	LiveURL     string    `json:"liveUrl"`
	ImageURL    string    `json:"imageUrl"`
	Featured    bool      `json:"featured"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProjectPatch carries the fields of a partial update; nil means unchanged
type ProjectPatch struct {
	Title       *string
	Description *string
	TechStack   *[]string
	GithubURL   *string
	LiveURL     *string
	ImageURL    *string
	Featured    *bool
	Order       *int
}

// Apply copies the set fields onto p
func (pp ProjectPatch) Apply(p *Project) {
	if pp.Title != nil {
		p.Title = *pp.Title
	}
	if pp.Description != nil {
		p.Description = *pp.Description
	}
	if pp.TechStack != nil {
		p.TechStack = *pp.TechStack
	}
	if pp.GithubURL != nil {
		p.GithubURL = *pp.GithubURL
	}
	if pp.LiveURL != nil {
		p.LiveURL = *pp.LiveURL
	}
	if pp.ImageURL != nil {
		p.ImageURL = *pp.ImageURL
	}
	if pp.Featured != nil {
		p.Featured = *pp.Featured
	}
	if pp.Order != nil {
		p.Order = *pp.Order
	}
}

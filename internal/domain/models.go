package domain

// Project is a repository shown in the portfolio.
type Project struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	HTMLURL     string   `json:"html_url"`
	Homepage    string   `json:"homepage,omitempty"`
	Language    string   `json:"language"`
	Stars       int      `json:"stargazers_count"`
	Forks       int      `json:"forks_count"`
	Topics      []string `json:"topics"`
	UpdatedAt   string   `json:"updated_at"`
}

// BlogPost is a published article. Content is Markdown.
type BlogPost struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Content     string   `json:"content"`
	Excerpt     string   `json:"excerpt,omitempty"`
	CoverImage  string   `json:"cover_image,omitempty"`
	Category    string   `json:"category,omitempty"`
	Tags        []string `json:"tags"`
	Status      string   `json:"status"`
	ViewCount   int      `json:"view_count"`
	IsFeatured  bool     `json:"is_featured"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
	PublishedAt string   `json:"published_at,omitempty"`
}

// LanguageStat is the share of projects written in one language.
type LanguageStat struct {
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// Stats aggregates activity across all projects.
type Stats struct {
	TotalProjects  int            `json:"total_projects"`
	TotalCommits   int            `json:"total_commits"`
	TotalAdditions int            `json:"total_additions"`
	TotalDeletions int            `json:"total_deletions"`
	Languages      []LanguageStat `json:"languages"`
}

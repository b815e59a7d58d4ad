package domain

import "context"

// ProjectRepository provides access to portfolio projects.
type ProjectRepository interface {
	ListProjects(ctx context.Context) ([]Project, error)
	GetProject(ctx context.Context, slug string) (Project, error)
}

// BlogRepository provides access to blog posts.
type BlogRepository interface {
	ListBlogPosts(ctx context.Context) ([]BlogPost, error)
	// GetBlogPost returns nil without error when the post does not exist.
	GetBlogPost(ctx context.Context, slug string) (*BlogPost, error)
}

// StatsRepository provides aggregate statistics.
type StatsRepository interface {
	GetStats(ctx context.Context) (Stats, error)
}

// Gateway is the primary port combining all backend operations.
// The TUI depends on this interface, not on concrete implementations.
type Gateway interface {
	BaseURL() string
	ProjectRepository
	BlogRepository
	StatsRepository
}

package api

import (
	"context"
	"errors"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/Taishi66/folio-tui/internal/domain"
)

// ListProjects returns all projects. When the backend is unreachable the
// built-in fallback list is returned instead of an error.
func (c *Client) ListProjects(ctx context.Context) ([]domain.Project, error) {
	var projects []domain.Project
	if err := c.getJSON(ctx, "/api/projects", &projects); err != nil {
		c.logFailure("ListProjects", err)
		if ParseError(err).IsNetworkError() {
			c.logger.Warn("network error, serving fallback projects")
			return FallbackProjects(), nil
		}
		return nil, err
	}
	return projects, nil
}

// GetProject returns a single project by slug.
func (c *Client) GetProject(ctx context.Context, slug string) (domain.Project, error) {
	if slug == "" {
		return domain.Project{}, domain.NewBadRequest("项目ID不能为空")
	}
	var project domain.Project
	if err := c.getJSON(ctx, "/api/projects/"+url.PathEscape(slug), &project); err != nil {
		c.logFailure("GetProject", err, zap.String("slug", slug))
		return domain.Project{}, err
	}
	return project, nil
}

// ListBlogPosts returns published posts, or an empty list when the
// backend is unreachable.
func (c *Client) ListBlogPosts(ctx context.Context) ([]domain.BlogPost, error) {
	var posts []domain.BlogPost
	if err := c.getJSON(ctx, "/api/blog/posts", &posts); err != nil {
		c.logFailure("ListBlogPosts", err)
		if ParseError(err).IsNetworkError() {
			c.logger.Warn("network error, serving empty blog list")
			return []domain.BlogPost{}, nil
		}
		return nil, err
	}
	return posts, nil
}

// GetBlogPost returns nil, nil when the post does not exist.
func (c *Client) GetBlogPost(ctx context.Context, slug string) (*domain.BlogPost, error) {
	if slug == "" {
		return nil, domain.NewBadRequest("博客文章slug不能为空")
	}
	var post domain.BlogPost
	if err := c.getJSON(ctx, "/api/blog/posts/"+url.PathEscape(slug), &post); err != nil {
		c.logFailure("GetBlogPost", err, zap.String("slug", slug))
		var apiErr *domain.APIError
		if errors.As(err, &apiErr) && apiErr.Kind == domain.NotFound {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// GetStats returns aggregate statistics, or zero stats when the backend is
// unreachable.
func (c *Client) GetStats(ctx context.Context) (domain.Stats, error) {
	var stats domain.Stats
	if err := c.getJSON(ctx, "/api/stats", &stats); err != nil {
		c.logFailure("GetStats", err)
		if ParseError(err).IsNetworkError() {
			c.logger.Warn("network error, serving default stats")
			return domain.Stats{Languages: []domain.LanguageStat{}}, nil
		}
		return domain.Stats{}, err
	}
	return stats, nil
}

// FallbackProjects is shown when the API is unavailable.
func FallbackProjects() []domain.Project {
	now := time.Now().UTC().Format(time.RFC3339)
	return []domain.Project{
		{
			ID:          "1",
			Name:        "PortfolioPulse",
			Description: "个人项目集动态平台 - 现代化的项目展示和追踪平台",
			HTMLURL:     "https://github.com/wyw121/PortfolioPulse",
			Language:    "TypeScript",
			Topics:      []string{"react", "typescript", "rust", "portfolio"},
			UpdatedAt:   now,
		},
		{
			ID:          "2",
			Name:        "示例项目",
			Description: "这是一个示例项目",
			HTMLURL:     "https://github.com/example/project",
			Language:    "JavaScript",
			Stars:       5,
			Forks:       2,
			Topics:      []string{"javascript", "example"},
			UpdatedAt:   now,
		},
	}
}

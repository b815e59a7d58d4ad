package domain

import (
	"context"
	"sync"
)

// MockGateway implements Gateway for testing.
type MockGateway struct {
	mu sync.Mutex

	BaseURLVal string

	Projects []Project
	Details  map[string]Project
	Posts    []BlogPost
	StatsVal Stats

	// Error injection
	ListProjectsErr  error
	GetProjectErr    error
	ListBlogPostsErr error
	GetBlogPostErr   error
	GetStatsErr      error

	// Call tracking
	ListProjectsCalls  int
	GetProjectCalls    int
	ListBlogPostsCalls int
	GetBlogPostCalls   int
	GetStatsCalls      int
	RequestedSlugs     []string
}

// Compile-time check.
var _ Gateway = (*MockGateway)(nil)

func (m *MockGateway) BaseURL() string { return m.BaseURLVal }

func (m *MockGateway) ListProjects(_ context.Context) ([]Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListProjectsCalls++
	if m.ListProjectsErr != nil {
		return nil, m.ListProjectsErr
	}
	return m.Projects, nil
}

func (m *MockGateway) GetProject(_ context.Context, slug string) (Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetProjectCalls++
	m.RequestedSlugs = append(m.RequestedSlugs, slug)
	if m.GetProjectErr != nil {
		return Project{}, m.GetProjectErr
	}
	if p, ok := m.Details[slug]; ok {
		return p, nil
	}
	for _, p := range m.Projects {
		if p.ID == slug {
			return p, nil
		}
	}
	return Project{}, NewNotFound("项目")
}

func (m *MockGateway) ListBlogPosts(_ context.Context) ([]BlogPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListBlogPostsCalls++
	if m.ListBlogPostsErr != nil {
		return nil, m.ListBlogPostsErr
	}
	return m.Posts, nil
}

func (m *MockGateway) GetBlogPost(_ context.Context, slug string) (*BlogPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetBlogPostCalls++
	if m.GetBlogPostErr != nil {
		return nil, m.GetBlogPostErr
	}
	for i := range m.Posts {
		if m.Posts[i].Slug == slug {
			p := m.Posts[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (m *MockGateway) GetStats(_ context.Context) (Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetStatsCalls++
	if m.GetStatsErr != nil {
		return Stats{}, m.GetStatsErr
	}
	return m.StatsVal, nil
}

package tui

import (
	"sort"
	"strings"

	"github.com/Taishi66/folio-tui/internal/domain"
)

// SortColumn identifies a column for sorting.
type SortColumn int

const (
	SortNone SortColumn = iota
	// Projects
	SortProjectName
	SortProjectStars
	SortProjectUpdated
	// Blog
	SortPostDate
	SortPostViews
)

// SortState holds the current sort configuration for a view.
type SortState struct {
	Column    SortColumn
	Ascending bool
}

// Label returns the header the sort applies to.
func (s SortState) Label() string {
	switch s.Column {
	case SortProjectName:
		return "NAME"
	case SortProjectStars:
		return "STARS"
	case SortProjectUpdated:
		return "UPDATED"
	case SortPostDate:
		return "DATE"
	case SortPostViews:
		return "VIEWS"
	default:
		return ""
	}
}

// SortIndicator returns ▲ or ▼ for the active sort column header.
func SortIndicator(header string, state SortState) string {
	label := state.Label()
	if label == "" || !strings.EqualFold(strings.TrimSpace(header), label) {
		return header
	}
	if state.Ascending {
		return header + " ▲"
	}
	return header + " ▼"
}

// --- Project sorting ---

// SortProjects returns a sorted copy. Stars and update time sort the
// largest or newest first when ascending.
func SortProjects(projects []domain.Project, state SortState) []domain.Project {
	if state.Column == SortNone || len(projects) == 0 {
		return projects
	}
	sorted := make([]domain.Project, len(projects))
	copy(sorted, projects)
	sort.SliceStable(sorted, func(i, j int) bool {
		var less bool
		switch state.Column {
		case SortProjectName:
			less = strings.ToLower(sorted[i].Name) < strings.ToLower(sorted[j].Name)
		case SortProjectStars:
			less = sorted[i].Stars > sorted[j].Stars
		case SortProjectUpdated:
			less = sorted[i].UpdatedAt > sorted[j].UpdatedAt // RFC 3339 sorts lexically
		default:
			return false
		}
		if !state.Ascending {
			return !less
		}
		return less
	})
	return sorted
}

func NextProjectSort(current SortColumn) SortColumn {
	switch current {
	case SortNone:
		return SortProjectName
	case SortProjectName:
		return SortProjectStars
	case SortProjectStars:
		return SortProjectUpdated
	default:
		return SortNone
	}
}

// --- Blog sorting ---

func postDate(p domain.BlogPost) string {
	if p.PublishedAt != "" {
		return p.PublishedAt
	}
	return p.CreatedAt
}

func SortPosts(posts []domain.BlogPost, state SortState) []domain.BlogPost {
	if state.Column == SortNone || len(posts) == 0 {
		return posts
	}
	sorted := make([]domain.BlogPost, len(posts))
	copy(sorted, posts)
	sort.SliceStable(sorted, func(i, j int) bool {
		var less bool
		switch state.Column {
		case SortPostDate:
			less = postDate(sorted[i]) > postDate(sorted[j])
		case SortPostViews:
			less = sorted[i].ViewCount > sorted[j].ViewCount
		default:
			return false
		}
		if !state.Ascending {
			return !less
		}
		return less
	})
	return sorted
}

func NextPostSort(current SortColumn) SortColumn {
	switch current {
	case SortNone:
		return SortPostDate
	case SortPostDate:
		return SortPostViews
	default:
		return SortNone
	}
}

package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Taishi66/folio-tui/internal/domain"
)

func TestProjectStore_Staleness(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	s := NewProjectStore(5 * time.Minute)
	s.SetClock(clock.Now)

	assert.True(t, s.IsStale(), "never fetched")

	s.SetItems([]domain.Project{{ID: "1"}})
	assert.False(t, s.IsStale())

	clock.Advance(4 * time.Minute)
	assert.False(t, s.IsStale(), "T+4min")

	clock.Advance(time.Minute)
	assert.False(t, s.IsStale(), "exactly TTL is still fresh")

	clock.Advance(time.Minute)
	assert.True(t, s.IsStale(), "T+6min")
}

func TestProjectStore_DefaultTTL(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	s := NewProjectStore(0)
	s.SetClock(clock.Now)
	s.SetItems(nil)

	clock.Advance(299 * time.Second)
	assert.False(t, s.IsStale())
	clock.Advance(2 * time.Second)
	assert.True(t, s.IsStale())
}

func TestProjectStore_SetItemsClearsError(t *testing.T) {
	s := NewProjectStore(time.Minute)
	s.SetError("服务器内部错误")
	assert.Equal(t, "服务器内部错误", s.Error())

	s.SetItems([]domain.Project{{ID: "1"}})
	assert.Empty(t, s.Error())
	assert.Len(t, s.Items(), 1)
	assert.False(t, s.LastFetch().IsZero())
}

func TestProjectStore_Details(t *testing.T) {
	s := NewProjectStore(time.Minute)
	_, ok := s.Detail("x")
	assert.False(t, ok)

	s.SetDetail("x", domain.Project{ID: "x", Name: "X"})
	p, ok := s.Detail("x")
	assert.True(t, ok)
	assert.Equal(t, "X", p.Name)
}

func TestProjectStore_ClearAll(t *testing.T) {
	s := NewProjectStore(time.Minute)
	s.SetItems([]domain.Project{{ID: "1"}})
	s.SetDetail("1", domain.Project{ID: "1"})
	s.SetError("x")

	s.ClearAll()

	assert.Empty(t, s.Items())
	_, ok := s.Detail("1")
	assert.False(t, ok)
	assert.True(t, s.LastFetch().IsZero())
	assert.True(t, s.IsStale())
	assert.Empty(t, s.Error())
}

func TestProjectStore_Loading(t *testing.T) {
	s := NewProjectStore(time.Minute)
	assert.False(t, s.IsLoading())
	s.SetLoading(true)
	assert.True(t, s.IsLoading())
	s.SetLoading(false)
	assert.False(t, s.IsLoading())
}

func TestProjectStore_Find(t *testing.T) {
	s := NewProjectStore(time.Minute)
	s.SetItems([]domain.Project{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}})

	p, ok := s.Find("b")
	assert.True(t, ok)
	assert.Equal(t, "B", p.Name)

	_, ok = s.Find("c")
	assert.False(t, ok)
}

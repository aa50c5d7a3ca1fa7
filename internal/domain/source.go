// Package domain defines the collaborator contracts the dashboard core consumes
// and the entity service built on top of them.
package domain

import (
	"context"
	"fmt"
	"sync"

	"knkadmin/internal/core/record"
)

// DataSource loads and stores view-shape records by entity type tag.
// Implementations own transport concerns (timeouts, caching); callers never retry.
type DataSource interface {
	FetchList(ctx context.Context, tag string) ([]record.Record, error)
	FetchOne(ctx context.Context, tag string, id any) (record.Record, error)
	Create(ctx context.Context, tag string, payload record.Record) (record.Record, error)
	Update(ctx context.Context, tag string, id any, payload record.Record) (record.Record, error)
	Delete(ctx context.Context, tag string, id any) error
}

// Navigator moves the user to another page. The core never builds URLs beyond the
// paths it passes here.
type Navigator interface {
	NavigateTo(path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(path string)

func (f NavigatorFunc) NavigateTo(path string) { f(path) }

// PathRecorder is a Navigator that remembers the last requested path.
// HTTP handlers use it to turn navigation into redirects.
type PathRecorder struct {
	mu   sync.Mutex
	path string
}

func (p *PathRecorder) NavigateTo(path string) {
	p.mu.Lock()
	p.path = path
	p.mu.Unlock()
}

// Path returns the last path, or "" when nothing navigated.
func (p *PathRecorder) Path() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.path
}

// Paths used by the default row actions and forms.
func ListPath(tag string) string         { return "/list/" + tag }
func ViewPath(tag string, id any) string { return fmt.Sprintf("/view/%s/%s", tag, record.Stringify(id)) }
func EditPath(tag string, id any) string { return fmt.Sprintf("/edit/%s/%s", tag, record.Stringify(id)) }
func CreatePath(tag string) string       { return "/create/" + tag }

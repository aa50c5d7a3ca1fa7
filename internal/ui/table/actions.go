package table

import (
	"context"
	"errors"

	"knkadmin/internal/core/record"
	"knkadmin/internal/domain"
)

// Default action ids.
const (
	ActionView   = "view"
	ActionEdit   = "edit"
	ActionDelete = "delete"
)

var (
	ErrUnknownAction = errors.New("unknown row action")
	ErrUnknownRow    = errors.New("unknown row")
	ErrNoHandler     = errors.New("action has no handler")
)

// ActionFunc runs a row action.
type ActionFunc func(ctx context.Context, row record.Record) error

// RowAction is one entry of the row action menu.
type RowAction struct {
	ID      string     `json:"id"`
	Label   string     `json:"label"`
	Icon    string     `json:"icon,omitempty"`
	Handler ActionFunc `json:"-"`
}

// actions returns view, edit and delete followed by the caller's actions.
func actions(tag string, opts Options) []RowAction {
	nav := opts.Navigator
	defaults := []RowAction{
		{
			ID: ActionView, Label: "View", Icon: "eye",
			Handler: func(_ context.Context, row record.Record) error {
				if nav == nil {
					return ErrNoHandler
				}
				nav.NavigateTo(domain.ViewPath(tag, row.Value("id")))
				return nil
			},
		},
		{
			ID: ActionEdit, Label: "Edit", Icon: "pencil",
			Handler: func(ctx context.Context, row record.Record) error {
				if opts.OnEdit != nil {
					return opts.OnEdit(ctx, row)
				}
				if nav == nil {
					return ErrNoHandler
				}
				nav.NavigateTo(domain.EditPath(tag, row.Value("id")))
				return nil
			},
		},
		{
			ID: ActionDelete, Label: "Delete", Icon: "trash",
			Handler: func(ctx context.Context, row record.Record) error {
				if opts.OnDelete == nil {
					return ErrNoHandler
				}
				return opts.OnDelete(ctx, row)
			},
		},
	}
	return append(defaults, opts.RowActions...)
}

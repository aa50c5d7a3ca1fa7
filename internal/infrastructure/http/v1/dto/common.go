// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"knkadmin/internal/ui/detail"
	"knkadmin/internal/ui/form"
	"knkadmin/internal/ui/table"
)

// --- Table ---

// TableQuery carries the table state the dashboard keeps in the URL.
type TableQuery struct {
	Sort string `form:"sort"`
	Dir  string `form:"dir" binding:"omitempty,oneof=asc desc"`
	// Menu is the input row index whose action menu is open.
	Menu *int `form:"menu" binding:"omitempty,min=0"`
}

// TableResponse is the table view model plus the sort state each header click leads to.
type TableResponse struct {
	table.View
	NextSort map[string]SortLink `json:"nextSort,omitempty"`
}

// SortLink is the query a header click produces.
type SortLink struct {
	Sort string `json:"sort,omitempty"`
	Dir  string `json:"dir,omitempty"`
}

// DetailResponse wraps the detail view of one record.
type DetailResponse struct {
	detail.View
	EditPath string `json:"editPath"`
	ListPath string `json:"listPath"`
}

// --- Forms ---

// OpenFormRequest opens a create form, or an edit form when ID is set.
type OpenFormRequest struct {
	Type string `json:"type" binding:"required"`
	ID   any    `json:"id"`
}

// SetValueRequest sets one field. Reference fields take the candidate id in Value
// ("__create__" opens the nested form); reference-list fields take IDs.
type SetValueRequest struct {
	Value any   `json:"value"`
	IDs   []any `json:"ids"`
}

// FormResponse is a form session with its current view.
type FormResponse struct {
	ID       string            `json:"id"`
	Form     form.View         `json:"form"`
	Redirect string            `json:"redirect,omitempty"`
	Errors   map[string]string `json:"errors,omitempty"`
}

// --- Actions ---

// ActionResponse carries where the dashboard should navigate next.
type ActionResponse struct {
	Redirect string `json:"redirect,omitempty"`
}

// --- Error Response ---

// ErrorResponse for error details.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

package handlers

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"knkadmin/internal/core/apperror"
	"knkadmin/internal/core/record"
	"knkadmin/internal/domain"
	"knkadmin/internal/infrastructure/http/v1/dto"
	"knkadmin/internal/ui/detail"
	"knkadmin/internal/ui/locale"
	"knkadmin/internal/ui/table"
)

// EntityHandler serves table and detail view models and runs row actions.
type EntityHandler struct {
	*BaseHandler
	svc *domain.EntityService
}

// NewEntityHandler creates a new entity handler.
func NewEntityHandler(base *BaseHandler, svc *domain.EntityService) *EntityHandler {
	return &EntityHandler{BaseHandler: base, svc: svc}
}

// buildTable loads the rows of tag into a table. A fetch failure yields a table
// showing the error; only an unknown tag is returned as an error.
func (h *EntityHandler) buildTable(ctx context.Context, tag string, loc *locale.Locale, nav domain.Navigator) (*table.Table, error) {
	opts := table.Options{
		Locale:    loc,
		Navigator: nav,
		OnDelete: func(ctx context.Context, row record.Record) error {
			id, ok := record.ID(row)
			if !ok {
				return apperror.NewInvalidInput("row has no id")
			}
			if err := h.svc.Delete(ctx, tag, id); err != nil {
				return err
			}
			if nav != nil {
				nav.NavigateTo(domain.ListPath(tag))
			}
			return nil
		},
	}

	cfg, rows, err := h.svc.List(ctx, tag)
	if err != nil {
		if cfg == nil {
			return nil, err
		}
		return table.Failed(cfg, err, opts), nil
	}
	return table.New(cfg, rows, opts), nil
}

// tableView renders the table for tag in the state carried by q.
func (h *EntityHandler) tableView(c *gin.Context, tag string, q dto.TableQuery) (dto.TableResponse, error) {
	t, err := h.buildTable(c.Request.Context(), tag, h.Locale(c), nil)
	if err != nil {
		return dto.TableResponse{}, err
	}
	t.SetSort(table.ParseSort(q.Sort, q.Dir))
	if q.Menu != nil {
		if _, err := t.ToggleMenu(*q.Menu); err != nil {
			return dto.TableResponse{}, apperror.NewInvalidInput(err.Error()).WithDetail("menu", *q.Menu)
		}
	}

	v := t.View()
	resp := dto.TableResponse{View: v, NextSort: make(map[string]dto.SortLink, len(v.Columns))}
	for _, col := range v.Columns {
		next := v.Sort.Click(col.Key)
		resp.NextSort[col.Key] = dto.SortLink{Sort: next.Column, Dir: string(next.Direction)}
	}
	return resp, nil
}

// List returns the table view model for a type.
// GET /api/v1/entities/:type?sort=&dir=&menu=
func (h *EntityHandler) List(c *gin.Context) {
	var q dto.TableQuery
	if !h.BindQuery(c, &q) {
		return
	}
	resp, err := h.tableView(c, c.Param("type"), q)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, resp)
}

// detailView loads one record and renders its detail view.
func (h *EntityHandler) detailView(c *gin.Context, tag, id string) (dto.DetailResponse, error) {
	cfg, rec, err := h.svc.Get(c.Request.Context(), tag, id)
	if err != nil {
		return dto.DetailResponse{}, err
	}
	return dto.DetailResponse{
		View:     detail.Render(rec, cfg, h.svc.Registry(), h.Locale(c)),
		EditPath: domain.EditPath(tag, id),
		ListPath: domain.ListPath(tag),
	}, nil
}

// Get returns the detail view model of one record.
// GET /api/v1/entities/:type/:id
func (h *EntityHandler) Get(c *gin.Context) {
	resp, err := h.detailView(c, c.Param("type"), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, resp)
}

// invoke runs a row action and returns where it navigated.
func (h *EntityHandler) invoke(c *gin.Context, tag string, row int, action string) (string, error) {
	nav := &domain.PathRecorder{}
	t, err := h.buildTable(c.Request.Context(), tag, h.Locale(c), nav)
	if err != nil {
		return "", err
	}
	if err := t.Invoke(c.Request.Context(), row, action); err != nil {
		switch {
		case errors.Is(err, table.ErrUnknownRow), errors.Is(err, table.ErrUnknownAction):
			return "", apperror.NewNotFound("row action", action).WithDetail("row", row)
		case errors.Is(err, table.ErrNoHandler):
			return "", apperror.NewInvalidInput(err.Error()).WithDetail("action", action)
		}
		return "", err
	}
	return nav.Path(), nil
}

// InvokeAction runs a row action. The row is the index in the unsorted list.
// POST /api/v1/entities/:type/rows/:row/actions/:action
func (h *EntityHandler) InvokeAction(c *gin.Context) {
	row, ok := h.ParseIntParam(c, "row")
	if !ok {
		return
	}
	path, err := h.invoke(c, c.Param("type"), row, c.Param("action"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ActionResponse{Redirect: path})
}

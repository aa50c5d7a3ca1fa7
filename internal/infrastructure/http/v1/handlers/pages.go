package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"knkadmin/internal/core/apperror"
	"knkadmin/internal/domain"
	"knkadmin/internal/infrastructure/http/v1/dto"
	"knkadmin/internal/infrastructure/session"
	"knkadmin/internal/metadata"
	"knkadmin/internal/ui/form"
)

// Form actions posted by the HTML form page in the "_action" field.
const (
	actionSave         = "save"
	actionSubmit       = "submit"
	actionCancel       = "cancel"
	actionCreate       = "create:"
	actionNestedSubmit = "nested-submit:"
	actionNestedCancel = "nested-cancel:"
)

// PageHandler renders the dashboard HTML pages.
type PageHandler struct {
	*BaseHandler
	registry *metadata.Registry
	entities *EntityHandler
	sessions *FormSessions
}

// NewPageHandler creates a new page handler.
func NewPageHandler(base *BaseHandler, registry *metadata.Registry, entities *EntityHandler, sessions *FormSessions) *PageHandler {
	return &PageHandler{BaseHandler: base, registry: registry, entities: entities, sessions: sessions}
}

// renderError shows an error page; HTML pages never answer with the JSON error body.
func (h *PageHandler) renderError(c *gin.Context, err error) {
	_ = c.Error(err)
	msg := "Internal server error"
	code := apperror.CodeInternal
	if appErr, ok := apperror.AsAppError(err); ok {
		msg, code = appErr.Message, appErr.Code
	}
	c.HTML(apperror.GetHTTPStatus(err), "error.html", gin.H{
		"Title":   "Error",
		"Code":    code,
		"Message": msg,
	})
}

// Index lists the registered entity types.
// GET /
func (h *PageHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Title":    "Dashboard",
		"Entities": h.registry.List(),
	})
}

// List renders the table page of a type.
// GET /list/:type
func (h *PageHandler) List(c *gin.Context) {
	var q dto.TableQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.renderError(c, apperror.NewValidation("invalid query parameters").WithDetail("error", err.Error()))
		return
	}
	resp, err := h.entities.tableView(c, c.Param("type"), q)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.HTML(http.StatusOK, "list.html", gin.H{
		"Title":      resp.Title,
		"Table":      resp,
		"Query":      q,
		"CreatePath": domain.CreatePath(resp.Type),
	})
}

// Action runs a row action and follows its navigation, back to the list by default.
// POST /list/:type/rows/:row/actions/:action
func (h *PageHandler) Action(c *gin.Context) {
	tag := c.Param("type")
	row, err := parseRow(c.Param("row"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	path, err := h.entities.invoke(c, tag, row, c.Param("action"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	if path == "" {
		path = domain.ListPath(tag)
	}
	c.Redirect(http.StatusSeeOther, path)
}

// View renders the detail page of one record.
// GET /view/:type/:id
func (h *PageHandler) View(c *gin.Context) {
	resp, err := h.entities.detailView(c, c.Param("type"), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.HTML(http.StatusOK, "view.html", gin.H{
		"Title":  resp.Title,
		"Detail": resp,
	})
}

// Create opens a create form session and redirects to it.
// GET /create/:type
func (h *PageHandler) Create(c *gin.Context) {
	h.open(c, nil)
}

// Edit opens an edit form session and redirects to it.
// GET /edit/:type/:id
func (h *PageHandler) Edit(c *gin.Context) {
	h.open(c, c.Param("id"))
}

func (h *PageHandler) open(c *gin.Context, id any) {
	e, err := h.sessions.Open(c.Request.Context(), c.Param("type"), id)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, formPath(e.ID))
}

// Form renders a form session. Candidate fetches are awaited so selects are complete.
// GET /forms/:id
func (h *PageHandler) Form(c *gin.Context) {
	e, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	h.renderForm(c, e, http.StatusOK, "")
}

func (h *PageHandler) renderForm(c *gin.Context, e *session.Entry, status int, notice string) {
	e.Form.WaitCandidates()
	if child, ok := openChild(e.Form); ok {
		child.WaitCandidates()
	}
	v := e.Form.View()
	c.HTML(status, "form.html", gin.H{
		"Title":    v.Title,
		"ID":       e.ID,
		"Form":     v,
		"Notice":   notice,
		"Action":   formPath(e.ID),
		"ListPath": domain.ListPath(e.Type),
	})
}

// Post applies the posted values and runs the requested action.
// POST /forms/:id
func (h *PageHandler) Post(c *gin.Context) {
	e, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	if err := c.Request.ParseForm(); err != nil {
		h.renderError(c, apperror.NewInvalidInput("malformed form body"))
		return
	}
	posted := c.Request.PostForm
	action := posted.Get("_action")
	if action == "" {
		action = actionSave
	}

	if action != actionCancel {
		if err := applyPosted(e.Form, posted, ""); err != nil {
			h.renderForm(c, e, apperror.GetHTTPStatus(err), message(err))
			return
		}
		for _, fd := range e.Form.VisibleFields() {
			if child, ok := e.Form.Nested(fd.Name); ok {
				if err := applyPosted(child, posted, fd.Name); err != nil {
					h.renderForm(c, e, apperror.GetHTTPStatus(err), message(err))
					return
				}
			}
		}
	}

	ctx := c.Request.Context()
	switch {
	case action == actionSubmit:
		if _, err := e.Form.Submit(ctx); err != nil {
			h.renderForm(c, e, http.StatusUnprocessableEntity, message(err))
			return
		}
		h.sessions.Close(e.ID)
		c.Redirect(http.StatusSeeOther, e.Nav.Path())
		return
	case action == actionCancel:
		if err := e.Form.Cancel(); err != nil {
			h.renderError(c, err)
			return
		}
		h.sessions.Close(e.ID)
		c.Redirect(http.StatusSeeOther, e.Nav.Path())
		return
	case strings.HasPrefix(action, actionCreate):
		err = e.Form.SelectReference(strings.TrimPrefix(action, actionCreate), form.CreateNew)
	case strings.HasPrefix(action, actionNestedSubmit):
		_, err = e.Form.SubmitNested(ctx, strings.TrimPrefix(action, actionNestedSubmit))
	case strings.HasPrefix(action, actionNestedCancel):
		err = e.Form.CancelNested(strings.TrimPrefix(action, actionNestedCancel))
	}
	if err != nil {
		h.renderForm(c, e, apperror.GetHTTPStatus(err), message(err))
		return
	}
	c.Redirect(http.StatusSeeOther, formPath(e.ID))
}

// applyPosted copies posted values into f. Only fields present in the body are
// touched; booleans and reference lists carry an empty marker input so that
// unchecked boxes and empty selections are posted too.
func applyPosted(f *form.Form, posted url.Values, prefix string) error {
	for _, fd := range f.Config().FieldList() {
		if fd.Hidden {
			continue
		}
		key := InputName(prefix, fd.Name)
		values, ok := posted[key]
		if !ok || len(values) == 0 {
			continue
		}
		last := values[len(values)-1]

		var err error
		switch fd.Kind {
		case metadata.KindReference:
			if last == form.CreateNew {
				continue
			}
			err = f.SelectReference(fd.Name, last)
		case metadata.KindReferenceList:
			ids := make([]any, 0, len(values))
			for _, v := range values {
				if v != "" {
					ids = append(ids, v)
				}
			}
			err = f.SelectReferences(fd.Name, ids)
		default:
			err = f.SetValue(fd.Name, last)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func openChild(f *form.Form) (*form.Form, bool) {
	for _, fd := range f.VisibleFields() {
		if child, ok := f.Nested(fd.Name); ok {
			return child, true
		}
	}
	return nil, false
}

// InputName is the HTML input name of a field; nested form fields are prefixed
// with the parent field name.
func InputName(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

func parseRow(s string) (int, error) {
	row, err := strconv.Atoi(s)
	if err != nil {
		return 0, apperror.NewInvalidInput("row must be an integer").WithDetail("row", s)
	}
	return row, nil
}

func formPath(id string) string {
	return "/forms/" + id
}

func message(err error) string {
	if appErr, ok := apperror.AsAppError(err); ok {
		return appErr.Message
	}
	return err.Error()
}

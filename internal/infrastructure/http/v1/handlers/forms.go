package handlers

import (
	"github.com/gin-gonic/gin"

	"knkadmin/internal/infrastructure/http/v1/dto"
	"knkadmin/internal/infrastructure/session"
)

// FormHandler exposes form sessions as JSON.
type FormHandler struct {
	*BaseHandler
	sessions *FormSessions
}

// NewFormHandler creates a new form handler.
func NewFormHandler(base *BaseHandler, sessions *FormSessions) *FormHandler {
	return &FormHandler{BaseHandler: base, sessions: sessions}
}

func (h *FormHandler) entry(c *gin.Context) (*session.Entry, bool) {
	e, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return nil, false
	}
	return e, true
}

func response(e *session.Entry) dto.FormResponse {
	return dto.FormResponse{ID: e.ID, Form: e.Form.View(), Redirect: e.Nav.Path()}
}

// Create opens a form session.
// POST /api/v1/forms
func (h *FormHandler) Create(c *gin.Context) {
	var req dto.OpenFormRequest
	if !h.BindJSON(c, &req) {
		return
	}
	e, err := h.sessions.Open(c.Request.Context(), req.Type, req.ID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, response(e))
}

// Get returns the current form view.
// GET /api/v1/forms/:id
func (h *FormHandler) Get(c *gin.Context) {
	e, ok := h.entry(c)
	if !ok {
		return
	}
	h.OK(c, response(e))
}

// SetValue sets one field.
// PUT /api/v1/forms/:id/values/:field
func (h *FormHandler) SetValue(c *gin.Context) {
	e, ok := h.entry(c)
	if !ok {
		return
	}
	var req dto.SetValueRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if err := ApplyValue(e.Form, c.Param("field"), req); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, response(e))
}

// Submit validates and submits the form. The session ends on success.
// POST /api/v1/forms/:id/submit
func (h *FormHandler) Submit(c *gin.Context) {
	e, ok := h.entry(c)
	if !ok {
		return
	}
	if _, err := e.Form.Submit(c.Request.Context()); err != nil {
		h.Error(c, err)
		return
	}
	h.sessions.Close(e.ID)
	h.OK(c, response(e))
}

// Cancel closes the form without submitting.
// DELETE /api/v1/forms/:id
func (h *FormHandler) Cancel(c *gin.Context) {
	e, ok := h.entry(c)
	if !ok {
		return
	}
	if err := e.Form.Cancel(); err != nil {
		h.Error(c, err)
		return
	}
	h.sessions.Close(e.ID)
	h.OK(c, dto.ActionResponse{Redirect: e.Nav.Path()})
}

// OpenNested opens the nested create form of a reference field.
// POST /api/v1/forms/:id/nested/:field
func (h *FormHandler) OpenNested(c *gin.Context) {
	e, ok := h.entry(c)
	if !ok {
		return
	}
	if _, err := e.Form.OpenNested(c.Param("field")); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, response(e))
}

// SetNestedValue sets one field of a nested form.
// PUT /api/v1/forms/:id/nested/:field/values/:sub
func (h *FormHandler) SetNestedValue(c *gin.Context) {
	e, ok := h.entry(c)
	if !ok {
		return
	}
	child, err := Nested(e.Form, c.Param("field"))
	if err != nil {
		h.Error(c, err)
		return
	}
	var req dto.SetValueRequest
	if !h.BindJSON(c, &req) {
		return
	}
	if err := ApplyValue(child, c.Param("sub"), req); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, response(e))
}

// SubmitNested submits a nested form into its parent field.
// POST /api/v1/forms/:id/nested/:field/submit
func (h *FormHandler) SubmitNested(c *gin.Context) {
	e, ok := h.entry(c)
	if !ok {
		return
	}
	if _, err := e.Form.SubmitNested(c.Request.Context(), c.Param("field")); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, response(e))
}

// CancelNested closes a nested form; the parent keeps its values.
// DELETE /api/v1/forms/:id/nested/:field
func (h *FormHandler) CancelNested(c *gin.Context) {
	e, ok := h.entry(c)
	if !ok {
		return
	}
	if err := e.Form.CancelNested(c.Param("field")); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, response(e))
}

package handlers

import (
	"context"

	"knkadmin/internal/core/apperror"
	appctx "knkadmin/internal/core/context"
	"knkadmin/internal/core/record"
	"knkadmin/internal/domain"
	"knkadmin/internal/infrastructure/http/v1/dto"
	"knkadmin/internal/infrastructure/session"
	"knkadmin/internal/metadata"
	"knkadmin/internal/ui/form"
	"knkadmin/pkg/logger"
)

// FormSessions opens forms backed by the entity service and keeps them in the session store.
type FormSessions struct {
	svc   *domain.EntityService
	store *session.Store
	log   *logger.Logger
}

// NewFormSessions creates the form session manager.
func NewFormSessions(svc *domain.EntityService, store *session.Store, log *logger.Logger) *FormSessions {
	if log == nil {
		log = logger.Default()
	}
	return &FormSessions{svc: svc, store: store, log: log.WithComponent("form_sessions")}
}

// Open creates and mounts a form for tag. With a non-empty id the record is loaded
// and submitting updates it; otherwise submitting creates a new record.
func (s *FormSessions) Open(ctx context.Context, tag string, id any) (*session.Entry, error) {
	cfg, err := s.svc.Config(tag)
	if err != nil {
		return nil, err
	}

	e := &session.Entry{Type: tag, Nav: &domain.PathRecorder{}}
	var initial record.Record
	if !record.IsEmpty(id) {
		_, rec, err := s.svc.Get(ctx, tag, id)
		if err != nil {
			return nil, err
		}
		initial = rec
		e.EditID = id
		if rid, ok := record.ID(rec); ok && !record.IsEmpty(rid) {
			e.EditID = rid
		}
	}

	nav := e.Nav
	editID := e.EditID
	submit := func(ctx context.Context, values record.Record) (record.Record, error) {
		var (
			out record.Record
			err error
		)
		if editID != nil {
			out, err = s.svc.Update(ctx, tag, editID, values)
		} else {
			out, err = s.svc.Create(ctx, tag, values)
		}
		if err != nil {
			return record.Record{}, err
		}
		if rid, ok := record.ID(out); ok && !record.IsEmpty(rid) {
			nav.NavigateTo(domain.ViewPath(tag, rid))
		} else {
			nav.NavigateTo(domain.ListPath(tag))
		}
		return out, nil
	}
	cancel := func() { nav.NavigateTo(domain.ListPath(tag)) }

	e.Form = form.New(cfg, initial, submit, cancel, false,
		form.WithSource(s.svc),
		form.WithRegistry(s.svc.Registry()),
		form.WithLogger(s.log),
	)
	e.Form.Mount(appctx.Detach(ctx))
	s.store.Put(e)

	s.log.WithContext(ctx).Debugw("form opened", "session", e.ID, "type", tag, "edit", e.EditID != nil)
	return e, nil
}

// Get returns the session with id.
func (s *FormSessions) Get(id string) (*session.Entry, error) {
	return s.store.Get(id)
}

// Close removes a finished session.
func (s *FormSessions) Close(id string) {
	s.store.Remove(id)
}

// Nested returns the open nested form of field.
func Nested(f *form.Form, field string) (*form.Form, error) {
	child, ok := f.Nested(field)
	if !ok {
		return nil, apperror.NewNotFound("nested form", field)
	}
	return child, nil
}

// ApplyValue sets one field from a request, dispatching on the field kind.
func ApplyValue(f *form.Form, field string, req dto.SetValueRequest) error {
	fd, ok := f.Config().Field(field)
	if ok {
		switch fd.Kind {
		case metadata.KindReference:
			return f.SelectReference(field, req.Value)
		case metadata.KindReferenceList:
			ids := req.IDs
			if ids == nil {
				if list, ok := req.Value.([]any); ok {
					ids = list
				}
			}
			return f.SelectReferences(field, ids)
		}
	}
	return f.SetValue(field, req.Value)
}

// Package session ties the registration form, the local cache, the list view
// and the submission gateway together.
package session

import (
	"context"
	"errors"
	"sync"

	"iris_registry/cache"
	"iris_registry/form"
	"iris_registry/models"
	"iris_registry/pager"
	"iris_registry/utils"

	"go.uber.org/zap"
)

var ErrSubmitInProgress = errors.New("a submission is already in progress")

// Submitter delivers a record to the registry.
type Submitter interface {
	Submit(ctx context.Context, record models.Employee) error
}

// Outcome describes an acknowledged submission. StorageErr is set when the
// record was accepted by the registry but could not be written to the local cache.
type Outcome struct {
	Record     models.Employee
	StorageErr error
}

// Session is driven from a single UI goroutine. Only Submit guards against
// being re-entered while a request is pending.
type Session struct {
	form    *form.Form
	cache   *cache.Cache
	gateway Submitter
	pager   pager.Pager

	showTable bool

	mu         sync.Mutex
	submitting bool
}

func New(f *form.Form, c *cache.Cache, g Submitter, pageSize int) *Session {
	return &Session{
		form:    f,
		cache:   c,
		gateway: g,
		pager:   pager.New(pageSize),
	}
}

// Start loads the cached records. A storage failure leaves an empty list.
func (s *Session) Start() error {
	err := s.cache.Load()
	if err != nil {
		utils.Logger.Warn("Failed to load cached entries", zap.Error(err))
	}
	s.pager = s.pager.Resize(s.cache.Len())
	utils.Logger.Debug("Loaded cached entries", zap.Int("count", s.cache.Len()))
	return err
}

func (s *Session) Form() *form.Form { return s.form }

// Submit validates step 2, sends the record and on success records it locally
// and marks the form submitted. On failure the draft is kept for a retry.
func (s *Session) Submit(ctx context.Context) (Outcome, error) {
	rec, err := s.form.Prepare()
	if err != nil {
		return Outcome{}, err
	}

	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return Outcome{}, ErrSubmitInProgress
	}
	s.submitting = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.submitting = false
		s.mu.Unlock()
	}()

	if err := s.gateway.Submit(ctx, rec); err != nil {
		utils.Logger.Error("Error adding employee", zap.Error(err))
		return Outcome{}, err
	}
	utils.Logger.Info("Employee added successfully", zap.String("name", rec.Name))

	out := Outcome{Record: rec}
	if err := s.cache.Append(rec); err != nil {
		utils.Logger.Warn("Failed to save entry to cache", zap.Error(err))
		out.StorageErr = err
	}

	s.form.MarkSubmitted()
	s.pager = s.pager.Resize(s.cache.Len())
	s.showTable = true
	return out, nil
}

// ResetForm starts a new entry and hides the list.
func (s *Session) ResetForm() {
	s.form.Reset()
	s.showTable = false
}

// ClearCache wipes every cached record.
func (s *Session) ClearCache() error {
	err := s.cache.Clear()
	if err != nil {
		utils.Logger.Warn("Failed to clear cache", zap.Error(err))
	}
	s.pager = pager.New(s.pager.Size)
	s.showTable = false
	return err
}

func (s *Session) ShowTable() bool        { return s.showTable }
func (s *Session) Pager() pager.Pager     { return s.pager }
func (s *Session) Entries() int           { return s.cache.Len() }
func (s *Session) NextPage()              { s.pager = s.pager.Next() }
func (s *Session) PrevPage()              { s.pager = s.pager.Prev() }
func (s *Session) GoToPage(n int)         { s.pager = s.pager.Go(n) }
func (s *Session) SetShowTable(show bool) { s.showTable = show }

// CurrentPage returns the records on the page being viewed.
func (s *Session) CurrentPage() []models.Employee {
	return pager.Page(s.cache.Records(), s.pager.Current, s.pager.Size)
}

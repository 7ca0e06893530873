// Package table keeps a paginated, sortable, searchable user table consistent
// with the remote collection. Mutations are confirmed by the server and then
// refetched; rows are never changed optimistically.
package table

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"adminpanel/internal/domain"
	"adminpanel/internal/form"
	"adminpanel/internal/request"
)

var ErrDialogClosed = errors.New("no open dialog")

// Collection is the remote user resource, e.g. *client.UserClient.
type Collection interface {
	List(ctx context.Context, req domain.PageRequest) (domain.PageResult, error)
	Create(ctx context.Context, data domain.UserFormData) (domain.User, error)
	Update(ctx context.Context, id string, data domain.UserFormData) (domain.User, error)
	Delete(ctx context.Context, id string) error
}

// Confirmer blocks until the operator answers; true means proceed.
type Confirmer interface {
	Confirm(ctx context.Context, message string) bool
}

type ConfirmFunc func(ctx context.Context, message string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, message string) bool { return f(ctx, message) }

type NotificationKind int

const (
	NotifySuccess NotificationKind = iota
	NotifyError
)

type Notification struct {
	Kind    NotificationKind
	Message string
}

type Notifier interface {
	Notify(Notification)
}

type NotifyFunc func(Notification)

func (f NotifyFunc) Notify(n Notification) { f(n) }

// View is what the table currently asks the server for.
type View struct {
	Page     int
	PageSize int
	Sort     *domain.Sort
	Search   string
}

func (v View) Request() domain.PageRequest {
	req := domain.PageRequest{Page: v.Page, PageSize: v.PageSize, Search: v.Search}
	if v.Sort != nil {
		s := *v.Sort
		req.Sort = &s
	}
	return req
}

// viewOf copies req into a View; Request already cloned the sort.
func viewOf(req domain.PageRequest) View {
	return View{Page: req.Page, PageSize: req.PageSize, Sort: req.Sort, Search: req.Search}
}

type dialog struct {
	open     bool
	selected *domain.User
	form     *form.UserForm
	err      error
}

type Controller struct {
	mu      sync.Mutex
	users   Collection
	fetcher *request.State[domain.PageRequest, domain.PageResult]
	view    View
	dialog  dialog
	menuFor string

	ordering       request.Ordering
	confirm        Confirmer
	notify         Notifier
	onChange       func(Snapshot)
	onUnauthorized func()
}

type Option func(*Controller)

// WithOrdering picks how overlapping fetches resolve. The default is
// request.LatestIssued.
func WithOrdering(o request.Ordering) Option {
	return func(c *Controller) { c.ordering = o }
}

func WithOnChange(fn func(Snapshot)) Option {
	return func(c *Controller) { c.onChange = fn }
}

// WithConfirmer sets the delete confirmation. Without one every delete is declined.
func WithConfirmer(cf Confirmer) Option {
	return func(c *Controller) { c.confirm = cf }
}

func WithNotifier(n Notifier) Option {
	return func(c *Controller) { c.notify = n }
}

// WithPageSize sets the initial page size; sizes outside domain.PageSizeOptions are ignored.
func WithPageSize(n int) Option {
	return func(c *Controller) {
		if domain.IsAllowedPageSize(n) {
			c.view.PageSize = n
		}
	}
}

// WithView sets the initial view. A view that fails validation is ignored.
func WithView(v View) Option {
	return func(c *Controller) {
		if v.Request().Validate() == nil {
			c.view = viewOf(v.Request())
		}
	}
}

// WithUnauthorizedHandler runs fn when any call fails with status 401.
func WithUnauthorizedHandler(fn func()) Option {
	return func(c *Controller) { c.onUnauthorized = fn }
}

func New(users Collection, opts ...Option) *Controller {
	c := &Controller{
		users:    users,
		view:     View{Page: 0, PageSize: domain.DefaultPageSize},
		ordering: request.LatestIssued,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.fetcher = request.New(func(ctx context.Context, req domain.PageRequest) (domain.PageResult, error) {
		return c.users.List(ctx, req)
	}, c.ordering)
	c.fetcher.OnChange(func(request.Snapshot[domain.PageResult]) { c.emit() })
	return c
}

// Load fetches the current view.
func (c *Controller) Load(ctx context.Context) error {
	return c.fetch(ctx)
}

func (c *Controller) Refresh(ctx context.Context) error {
	return c.fetch(ctx)
}

// fetch lists the view captured now. Superseded results are not errors.
func (c *Controller) fetch(ctx context.Context) error {
	c.mu.Lock()
	req := c.view.Request()
	c.mu.Unlock()

	_, err := c.fetcher.Execute(ctx, req)
	if errors.Is(err, request.ErrSuperseded) {
		return nil
	}
	c.checkUnauthorized(err)
	return err
}

func (c *Controller) update(ctx context.Context, fn func(v *View) error) error {
	c.mu.Lock()
	if err := fn(&c.view); err != nil {
		c.mu.Unlock()
		return err
	}
	c.mu.Unlock()
	c.emit()
	return c.fetch(ctx)
}

func (c *Controller) SetPage(ctx context.Context, page int) error {
	return c.update(ctx, func(v *View) error {
		if page < 0 {
			page = 0
		}
		v.Page = page
		return nil
	})
}

// SetPageSize returns to the first page.
func (c *Controller) SetPageSize(ctx context.Context, size int) error {
	return c.update(ctx, func(v *View) error {
		if !domain.IsAllowedPageSize(size) {
			return domain.ValidationError{Field: "pageSize", Msg: "must be one of 5, 10, 25"}
		}
		v.PageSize = size
		v.Page = 0
		return nil
	})
}

// SetSort keeps the current page index.
func (c *Controller) SetSort(ctx context.Context, field string, dir domain.SortDirection) error {
	return c.update(ctx, func(v *View) error {
		s := domain.Sort{Field: field, Direction: dir}
		probe := domain.PageRequest{PageSize: domain.DefaultPageSize, Sort: &s}
		if err := probe.Validate(); err != nil {
			return err
		}
		v.Sort = &s
		return nil
	})
}

// ToggleSort cycles field through ascending, descending and unsorted.
func (c *Controller) ToggleSort(ctx context.Context, field string) error {
	c.mu.Lock()
	cur := c.view.Sort
	c.mu.Unlock()

	switch {
	case cur == nil || cur.Field != field:
		return c.SetSort(ctx, field, domain.SortAsc)
	case cur.Direction == domain.SortAsc:
		return c.SetSort(ctx, field, domain.SortDesc)
	default:
		return c.ClearSort(ctx)
	}
}

func (c *Controller) ClearSort(ctx context.Context) error {
	return c.update(ctx, func(v *View) error {
		v.Sort = nil
		return nil
	})
}

// SetSearch returns to the first page.
func (c *Controller) SetSearch(ctx context.Context, search string) error {
	return c.update(ctx, func(v *View) error {
		v.Search = search
		v.Page = 0
		return nil
	})
}

func (c *Controller) OpenMenu(id string) {
	c.mu.Lock()
	c.menuFor = id
	c.mu.Unlock()
	c.emit()
}

func (c *Controller) CloseMenu() {
	c.OpenMenu("")
}

func (c *Controller) MenuOpenFor() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.menuFor
}

// OpenEdit opens the dialog pre-filled with u.
func (c *Controller) OpenEdit(u domain.User) {
	c.mu.Lock()
	sel := u
	c.dialog = dialog{open: true, selected: &sel, form: form.NewUserForm(&sel)}
	c.menuFor = ""
	c.mu.Unlock()
	c.emit()
}

// OpenCreate opens the dialog with the create defaults.
func (c *Controller) OpenCreate() {
	c.mu.Lock()
	c.dialog = dialog{open: true, form: form.NewUserForm(nil)}
	c.menuFor = ""
	c.mu.Unlock()
	c.emit()
}

func (c *Controller) CloseDialog() {
	c.mu.Lock()
	c.dialog = dialog{}
	c.mu.Unlock()
	c.emit()
}

// SetField edits the open dialog's form.
func (c *Controller) SetField(field, value string) error {
	c.mu.Lock()
	if !c.dialog.open {
		c.mu.Unlock()
		return ErrDialogClosed
	}
	err := c.dialog.form.Set(field, value)
	c.mu.Unlock()
	c.emit()
	return err
}

// Submit validates the form and, only when it passes, updates the selected
// user or creates a new one. On success the dialog closes and the table is
// refetched. On failure the dialog stays open with the error.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if !c.dialog.open {
		c.mu.Unlock()
		return ErrDialogClosed
	}
	f := c.dialog.form
	selected := c.dialog.selected
	data, err := f.Submit()
	if err != nil {
		c.dialog.err = err
		c.mu.Unlock()
		c.emit()
		return err
	}
	c.mu.Unlock()

	var (
		action  = "create"
		success = "User created successfully"
	)
	if selected != nil {
		action, success = "update", "User updated successfully"
		_, err = c.users.Update(ctx, selected.ID, data)
	} else {
		_, err = c.users.Create(ctx, data)
	}
	if err != nil {
		c.mu.Lock()
		if c.dialog.form == f {
			c.dialog.err = err
		}
		c.mu.Unlock()
		c.checkUnauthorized(err)
		c.notifyf(NotifyError, "Failed to "+action+" user: "+err.Error())
		c.emit()
		return err
	}

	c.mu.Lock()
	if c.dialog.form == f {
		c.dialog = dialog{}
	}
	c.mu.Unlock()
	c.notifyf(NotifySuccess, success)
	return c.fetch(ctx)
}

// Delete asks the Confirmer and, when affirmed, deletes id and refetches.
// It reports whether a delete was performed.
func (c *Controller) Delete(ctx context.Context, id string) (bool, error) {
	c.mu.Lock()
	c.menuFor = ""
	cf := c.confirm
	c.mu.Unlock()
	c.emit()

	if cf == nil || !cf.Confirm(ctx, "Are you sure you want to delete this user?") {
		return false, nil
	}

	if err := c.users.Delete(ctx, id); err != nil {
		c.checkUnauthorized(err)
		c.notifyf(NotifyError, "Failed to delete user: "+err.Error())
		return false, err
	}
	c.notifyf(NotifySuccess, "User deleted successfully")

	if err := c.fetch(ctx); err != nil {
		return true, err
	}
	return true, c.clampPage(ctx)
}

// clampPage moves to the last page when the current one came back empty
// although matches remain, e.g. after deleting the only row of the last page.
func (c *Controller) clampPage(ctx context.Context) error {
	snap := c.fetcher.Snapshot()
	if snap.Status != request.Success {
		return nil
	}
	c.mu.Lock()
	page, size := c.view.Page, c.view.PageSize
	if len(snap.Data.Users) > 0 || snap.Data.Total == 0 || page == 0 {
		c.mu.Unlock()
		return nil
	}
	last := domain.PageCount(snap.Data.Total, size) - 1
	if last >= page {
		c.mu.Unlock()
		return nil
	}
	c.view.Page = last
	c.mu.Unlock()
	return c.fetch(ctx)
}

func (c *Controller) PageCount() int {
	snap := c.fetcher.Snapshot()
	c.mu.Lock()
	size := c.view.PageSize
	c.mu.Unlock()
	return domain.PageCount(snap.Data.Total, size)
}

func (c *Controller) notifyf(kind NotificationKind, msg string) {
	if c.notify != nil {
		c.notify.Notify(Notification{Kind: kind, Message: msg})
	}
}

func (c *Controller) checkUnauthorized(err error) {
	if err == nil || c.onUnauthorized == nil {
		return
	}
	if rerr := request.Normalize(err); rerr.Status == http.StatusUnauthorized {
		c.onUnauthorized()
	}
}

func (c *Controller) emit() {
	if c.onChange != nil {
		c.onChange(c.Snapshot())
	}
}

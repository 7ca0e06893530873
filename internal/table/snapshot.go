package table

import (
	"adminpanel/internal/domain"
	"adminpanel/internal/request"
)

// DialogState is a copy of the edit dialog.
type DialogState struct {
	Open        bool
	Editing     bool
	Selected    *domain.User
	Data        domain.UserFormData
	FieldErrors map[string]string
	Err         error
}

// Snapshot is a consistent copy of everything a front-end renders. Users are
// the last successfully fetched rows; they stay visible while loading or after
// a failed fetch.
type Snapshot struct {
	View      View
	Users     []domain.User
	Total     int
	PageCount int
	Status    request.Status
	Err       *request.Error
	Dialog    DialogState
	MenuFor   string
}

func (c *Controller) Snapshot() Snapshot {
	fs := c.fetcher.Snapshot()

	c.mu.Lock()
	defer c.mu.Unlock()

	out := Snapshot{
		View:      c.view,
		Users:     append([]domain.User(nil), fs.Data.Users...),
		Total:     fs.Data.Total,
		PageCount: domain.PageCount(fs.Data.Total, c.view.PageSize),
		Status:    fs.Status,
		Err:       fs.Err,
		MenuFor:   c.menuFor,
	}
	if c.view.Sort != nil {
		s := *c.view.Sort
		out.View.Sort = &s
	}
	if c.dialog.open {
		out.Dialog = DialogState{
			Open:        true,
			Editing:     c.dialog.form.Editing(),
			Data:        c.dialog.form.Data(),
			FieldErrors: c.dialog.form.Errors(),
			Err:         c.dialog.err,
		}
		if c.dialog.selected != nil {
			sel := *c.dialog.selected
			out.Dialog.Selected = &sel
		}
	}
	return out
}

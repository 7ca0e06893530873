package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"adminpanel/internal/client"
	"adminpanel/internal/domain"
	"adminpanel/internal/form"
	"adminpanel/internal/table"
)

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "password (prompted when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var err error
	if *email == "" {
		if *email, err = a.prompt("Email: "); err != nil {
			return err
		}
	}
	if *password == "" {
		if *password, err = a.prompt("Password: "); err != nil {
			return err
		}
	}
	if *email == "" || *password == "" {
		return errors.New("email and password are required")
	}

	resp, err := client.NewAuthClient(a.api, a.sessions).Login(ctx, domain.LoginCredentials{Email: *email, Password: *password})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Logged in as %s (%s)\n", resp.User.Name, resp.User.Role)
	return nil
}

func (a *app) logout() error {
	if err := client.NewAuthClient(a.api, a.sessions).Logout(); err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, "Logged out")
	return nil
}

func (a *app) whoami() error {
	u, ok := a.sessions.User()
	if !ok {
		return errors.New("not logged in")
	}
	fmt.Fprintf(a.stdout, "%s <%s> %s\n", u.Name, u.Email, u.Role)
	return nil
}

func (a *app) stats(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	s, err := client.NewDashboardClient(a.api).Stats(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Total users\t%d\n", s.TotalUsers)
	fmt.Fprintf(w, "Total revenue\t%d\n", s.TotalRevenue)
	fmt.Fprintf(w, "Active projects\t%d\n", s.ActiveProjects)
	for _, r := range domain.Roles {
		if n, ok := s.UsersByRole[r]; ok {
			fmt.Fprintf(w, "  %s\t%d\n", r, n)
		}
	}
	return w.Flush()
}

func (a *app) users(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if len(args) == 0 {
		return errors.New("users: missing subcommand (list, add, edit, delete, export)")
	}
	switch args[0] {
	case "list":
		return a.usersList(ctx, args[1:])
	case "add":
		return a.usersAdd(ctx, args[1:])
	case "edit":
		return a.usersEdit(ctx, args[1:])
	case "delete":
		return a.usersDelete(ctx, args[1:])
	case "export":
		return a.usersExport(ctx, args[1:])
	default:
		return fmt.Errorf("users: unknown subcommand %q", args[0])
	}
}

func (a *app) controller(opts ...table.Option) *table.Controller {
	base := []table.Option{
		table.WithNotifier(table.NotifyFunc(func(n table.Notification) {
			fmt.Fprintln(a.stderr, n.Message)
		})),
	}
	return table.New(client.NewUserClient(a.api), append(base, opts...)...)
}

func (a *app) usersList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("users list", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	page := fs.Int("page", 1, "page number, starting at 1")
	size := fs.Int("size", domain.DefaultPageSize, "rows per page (5, 10 or 25)")
	sortField := fs.String("sort", "", "sort field: name, email, role, createdAt")
	order := fs.String("order", "asc", "sort order: asc or desc")
	search := fs.String("search", "", "filter by name or email")
	if err := fs.Parse(args); err != nil {
		return err
	}

	view := table.View{Page: *page - 1, PageSize: *size, Search: *search}
	if *sortField != "" {
		view.Sort = &domain.Sort{Field: *sortField, Direction: domain.SortDirection(strings.ToLower(*order))}
	}
	if err := view.Request().Validate(); err != nil {
		return err
	}

	c := a.controller(table.WithView(view))
	if err := c.Load(ctx); err != nil {
		return err
	}

	snap := c.Snapshot()
	w := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE\tCREATED")
	for _, u := range snap.Users {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Role, u.CreatedAt)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	pages := snap.PageCount
	if pages == 0 {
		pages = 1
	}
	fmt.Fprintf(a.stdout, "page %d of %d, %d users\n", snap.View.Page+1, pages, snap.Total)
	return nil
}

func (a *app) usersAdd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("users add", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "email address")
	role := fs.String("role", string(domain.RoleUser), "ADMIN, USER or MANAGER")
	if err := fs.Parse(args); err != nil {
		return err
	}

	c := a.controller()
	c.OpenCreate()
	return a.submit(ctx, c, map[string]*string{form.FieldName: name, form.FieldEmail: email, form.FieldRole: role})
}

func (a *app) usersEdit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("users edit", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	id := fs.String("id", "", "user id")
	name := fs.String("name", "", "new name")
	email := fs.String("email", "", "new email")
	role := fs.String("role", "", "new role")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("users edit: -id is required")
	}

	u, err := client.NewUserClient(a.api).Get(ctx, *id)
	if err != nil {
		return err
	}
	c := a.controller()
	c.OpenEdit(u)

	changes := map[string]*string{}
	for field, v := range map[string]*string{form.FieldName: name, form.FieldEmail: email, form.FieldRole: role} {
		if *v != "" {
			changes[field] = v
		}
	}
	return a.submit(ctx, c, changes)
}

// submit applies field values to the open dialog and submits it, printing
// per-field messages when the form is rejected locally.
func (a *app) submit(ctx context.Context, c *table.Controller, fields map[string]*string) error {
	for field, v := range fields {
		if err := c.SetField(field, *v); err != nil {
			return err
		}
	}
	err := c.Submit(ctx)
	if err == nil {
		return nil
	}
	if domain.IsValidation(err) {
		for field, msg := range c.Snapshot().Dialog.FieldErrors {
			fmt.Fprintf(a.stderr, "  %s: %s\n", field, msg)
		}
		return errors.New("invalid input")
	}
	return err
}

func (a *app) usersDelete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("users delete", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	id := fs.String("id", "", "user id")
	yes := fs.Bool("yes", false, "do not ask for confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("users delete: -id is required")
	}

	confirm := table.ConfirmFunc(func(_ context.Context, msg string) bool {
		if *yes {
			return true
		}
		answer, err := a.prompt(msg + " [y/N] ")
		if err != nil {
			return false
		}
		answer = strings.ToLower(answer)
		return answer == "y" || answer == "yes"
	})

	deleted, err := a.controller(table.WithConfirmer(confirm)).Delete(ctx, *id)
	if err != nil {
		return err
	}
	if !deleted {
		fmt.Fprintln(a.stdout, "Cancelled")
	}
	return nil
}

func (a *app) usersExport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("users export", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	out := fs.String("o", "users.pdf", "output file")
	search := fs.String("search", "", "filter by name or email")
	sortField := fs.String("sort", "", "sort field")
	order := fs.String("order", "asc", "sort order")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var sort *domain.Sort
	if *sortField != "" {
		sort = &domain.Sort{Field: *sortField, Direction: domain.SortDirection(strings.ToLower(*order))}
	}
	data, err := client.NewUserClient(a.api).ExportPDF(ctx, *search, sort)
	if err != nil {
		return err
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Wrote %s (%d bytes)\n", *out, len(data))
	return nil
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/userdir/internal/client/search"
)

// errShown marks failures the handler already reported to the user.
var errShown = errors.New("reported")

// List prints the collection, filtered by the joined args when present.
// A failed fetch shows the error view above the users still held.
func (a *App) List(ctx context.Context, args []string) error {
	st := a.store.State()
	if st.Loading {
		fmt.Fprintln(a.out, "Loading users...")
	}
	if st.HasError() {
		renderError(a.out, st.Error)
	}

	query := strings.Join(args, " ")
	renderList(a.out, search.Filter(st.Users, query), strings.TrimSpace(query))
	return nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}

	d := a.store.Detail(ctx, id)
	if d.User == nil {
		fmt.Fprintln(a.out, "Error:", d.Error)
		return errShown
	}
	renderDetail(a.out, *d.User)
	return nil
}

func (a *App) Add(ctx context.Context) error {
	fmt.Fprintln(a.out, "Add New User")
	d, err := readDraft(a.reader, a.out)
	if err != nil {
		return err
	}

	u, err := a.store.AddLocal(d)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added %s (#%d)\n", u.Name, u.ID)
	return nil
}

// Edit changes a user of the collection. Empty answers keep the current
// values.
func (a *App) Edit(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	u, ok := a.store.Find(id)
	if !ok {
		fmt.Fprintln(a.out, "Error: User not found")
		return errShown
	}

	fmt.Fprintf(a.out, "Editing %s (empty input keeps the current value)\n", u.Name)
	updated, err := readEdit(a.reader, a.out, u)
	if err != nil {
		return err
	}
	if !a.store.Update(updated) {
		fmt.Fprintln(a.out, "Error: User was removed while editing")
		return errShown
	}
	fmt.Fprintf(a.out, "Updated #%d\n", id)
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	u, ok := a.store.Find(id)
	if !ok {
		fmt.Fprintln(a.out, "Error: User not found")
		return errShown
	}

	yes, err := Confirm(a.reader, fmt.Sprintf("Delete %s (#%d)?", u.Name, u.ID), a.out)
	if err != nil {
		return err
	}
	if !yes {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}
	if a.store.Remove(id) {
		fmt.Fprintf(a.out, "Deleted #%d\n", id)
	}
	return nil
}

// Refresh reloads the collection from the API. The users already listed
// stay when it fails.
func (a *App) Refresh(ctx context.Context) error {
	a.store.FetchAll(ctx, true)

	st := a.store.State()
	if st.HasError() {
		renderError(a.out, st.Error)
		return errShown
	}
	fmt.Fprintf(a.out, "Loaded %s\n", plural(len(st.Users), "user", "users"))
	return nil
}

func (a *App) Status(ctx context.Context) error {
	renderStatus(a.out, a.store.State())
	return nil
}

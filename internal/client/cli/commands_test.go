package cli

import (
	"bytes"
	"context"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/userdir/internal/client/client"
	"github.com/dmitrijs2005/userdir/internal/client/config"
	"github.com/dmitrijs2005/userdir/internal/client/models"
	"github.com/dmitrijs2005/userdir/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDirectory struct {
	mu    sync.Mutex
	calls int
	users []models.User
	err   error
}

func (f *fakeDirectory) FetchCollection(ctx context.Context) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return append([]models.User(nil), f.users...), nil
}

func (f *fakeDirectory) FetchByID(ctx context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, client.ErrNotFound
}

func testConfig() *config.Config {
	var c config.Config
	c.LoadDefaults()
	return &c
}

// newTestApp returns an App reading input and a buffer with its output.
func newTestApp(t *testing.T, dir client.Directory, input string) (*App, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return newApp(testConfig(), logging.Nop(), dir, strings.NewReader(input), &out), &out
}

func loadedApp(t *testing.T, input string) (*App, *bytes.Buffer, *fakeDirectory) {
	t.Helper()
	dir := &fakeDirectory{users: []models.User{leanne, ervin}}
	a, out := newTestApp(t, dir, input)
	a.store.FetchAll(context.Background(), false)
	return a, out, dir
}

func TestApp_List(t *testing.T) {
	a, out, _ := loadedApp(t, "")

	require.NoError(t, a.List(context.Background(), nil))
	assert.Contains(t, out.String(), "2 users found")

	out.Reset()
	require.NoError(t, a.List(context.Background(), []string{"ANTON"}))
	assert.Contains(t, out.String(), "Ervin Howell")
	assert.NotContains(t, out.String(), "Leanne Graham")
	assert.Contains(t, out.String(), "1 result found")
}

func TestApp_ListShowsErrorAndStaleUsers(t *testing.T) {
	a, out, dir := loadedApp(t, "")
	dir.err = client.ErrTimeout

	err := a.Refresh(context.Background())
	assert.ErrorIs(t, err, errShown)
	assert.Contains(t, out.String(), "Error: Request timeout - please check your connection")
	assert.Contains(t, out.String(), "Type 'retry' to try again")

	out.Reset()
	require.NoError(t, a.List(context.Background(), nil))
	assert.Contains(t, out.String(), "Error: Request timeout")
	assert.Contains(t, out.String(), "Leanne Graham")
	assert.Equal(t, "(2 users, error)", a.getStatus())

	dir.err = nil
	out.Reset()
	require.NoError(t, a.Refresh(context.Background()))
	assert.Equal(t, "Loaded 2 users\n", out.String())
	assert.Equal(t, "(2 users)", a.getStatus())
	assert.Equal(t, 3, dir.calls)
}

func TestApp_Show(t *testing.T) {
	a, out, _ := loadedApp(t, "")

	require.NoError(t, a.Show(context.Background(), []string{"1"}))
	assert.Contains(t, out.String(), "Leanne Graham (@Bret, #1)")

	out.Reset()
	assert.ErrorIs(t, a.Show(context.Background(), []string{"99"}), errShown)
	assert.Equal(t, "Error: User not found\n", out.String())

	assert.ErrorIs(t, a.Show(context.Background(), nil), errUsage)
}

func TestApp_Add(t *testing.T) {
	a, out, dir := loadedApp(t, "Ada\nada@x.com\n\n\n\n\n")

	require.NoError(t, a.Add(context.Background()))
	assert.Contains(t, out.String(), "Added Ada (#")

	st := a.store.State()
	require.Len(t, st.Users, 3)
	assert.Equal(t, "Ada", st.Users[0].Name)
	assert.Equal(t, "Unknown Company", st.Users[0].Company.Name)
	assert.Equal(t, 1, dir.calls)
}

func TestApp_AddInvalid(t *testing.T) {
	a, _, _ := loadedApp(t, "A\nada@x.com\n\n\n\n\n")

	err := a.Add(context.Background())
	var fe FormErrors
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "Name must be at least 2 characters", fe["name"])
	assert.Len(t, a.store.State().Users, 2)
}

func TestApp_Edit(t *testing.T) {
	a, out, _ := loadedApp(t, "\n\n\n555-0000\n\n\n")

	require.NoError(t, a.Edit(context.Background(), []string{"2"}))
	assert.Contains(t, out.String(), "Updated #2")

	u, ok := a.store.Find(2)
	require.True(t, ok)
	assert.Equal(t, "555-0000", u.Phone)
	assert.Equal(t, "Ervin Howell", u.Name)
	assert.Equal(t, int64(2), a.store.State().Users[1].ID, "position kept")

	assert.ErrorIs(t, a.Edit(context.Background(), []string{"404"}), errShown)
}

func TestApp_Delete(t *testing.T) {
	a, out, _ := loadedApp(t, "n\ny\n")

	require.NoError(t, a.Delete(context.Background(), []string{"1"}))
	assert.Contains(t, out.String(), "Cancelled")
	assert.Len(t, a.store.State().Users, 2)

	require.NoError(t, a.Delete(context.Background(), []string{"1"}))
	assert.Contains(t, out.String(), "Deleted #1")
	assert.Len(t, a.store.State().Users, 1)

	assert.ErrorIs(t, a.Delete(context.Background(), []string{"1"}), errShown)
}

func TestApp_Status(t *testing.T) {
	a, out, _ := loadedApp(t, "")
	require.NoError(t, a.Status(context.Background()))
	assert.Contains(t, out.String(), "Users")
	assert.NotContains(t, out.String(), "never")
}

func TestApp_RunSession(t *testing.T) {
	dir := &fakeDirectory{users: []models.User{leanne, ervin}}
	input := strings.Join([]string{
		"add",
		"Ada Lovelace",
		"ada@x.com",
		"", "", "", "",
		"delete 2",
		"y",
		"list",
		"quit",
	}, "\n") + "\n"

	a, out := newTestApp(t, dir, input)
	a.Run(context.Background())

	s := out.String()
	assert.Contains(t, s, "userdir (2 users)> ")
	assert.Contains(t, s, "userdir (3 users)> ")
	assert.Contains(t, s, "Deleted #2")
	assert.Contains(t, s, "Ada Lovelace")
	assert.Contains(t, s, "2 users found")
	assert.NotContains(t, s, "Welcome", "banner only on terminals")
	assert.Equal(t, 1, dir.calls)
}

func TestApp_RunShowsInitialError(t *testing.T) {
	a, out := newTestApp(t, &fakeDirectory{err: client.ErrNetwork}, "exit\n")
	a.Run(context.Background())

	assert.Contains(t, out.String(), "Error: Network error")
	assert.Contains(t, out.String(), "userdir (0 users, error)> ")
}

func TestInteractive(t *testing.T) {
	orig := isTerminal
	t.Cleanup(func() { isTerminal = orig })

	isTerminal = func(int) bool { return true }
	assert.True(t, interactive(os.Stdin))
	assert.False(t, interactive(strings.NewReader("")))

	isTerminal = func(int) bool { return false }
	assert.False(t, interactive(os.Stdin))
}

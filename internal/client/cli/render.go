package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/userdir/internal/client/models"
	"github.com/dmitrijs2005/userdir/internal/client/store"
	"gopkg.in/yaml.v3"
)

// Output formats of the one-shot commands.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}

// renderList prints users as a table followed by a count line. query is the
// active search, if any.
func renderList(w io.Writer, users []models.User, query string) {
	if len(users) == 0 {
		if query != "" {
			fmt.Fprintf(w, "No users match %q\n", query)
			return
		}
		fmt.Fprintln(w, "No users found")
		fmt.Fprintln(w, "Type 'refresh' to reload or check your connection")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tUSERNAME\tEMAIL\tCOMPANY")
	for _, u := range users {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Username, u.Email, u.Company.Name)
	}
	tw.Flush()

	if query != "" {
		fmt.Fprintln(w, plural(len(users), "result", "results")+" found")
	} else {
		fmt.Fprintln(w, plural(len(users), "user", "users")+" found")
	}
}

// websiteURL adds https:// to websites stored without a scheme.
func websiteURL(site string) string {
	if site == "" || strings.HasPrefix(site, "http") {
		return site
	}
	return "https://" + site
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func renderDetail(w io.Writer, u models.User) {
	fmt.Fprintf(w, "%s (@%s, #%d)\n\n", u.Name, u.Username, u.ID)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Contact")
	fmt.Fprintf(tw, "  Email\t%s\n", orDash(u.Email))
	fmt.Fprintf(tw, "  Phone\t%s\n", orDash(u.Phone))
	fmt.Fprintf(tw, "  Website\t%s\n", orDash(websiteURL(u.Website)))
	fmt.Fprintln(tw, "Company")
	fmt.Fprintf(tw, "  Name\t%s\n", orDash(u.Company.Name))
	fmt.Fprintf(tw, "  Catch phrase\t%s\n", orDash(u.Company.CatchPhrase))
	fmt.Fprintf(tw, "  Business\t%s\n", orDash(u.Company.BS))
	fmt.Fprintln(tw, "Address")
	fmt.Fprintf(tw, "  Location\t%s\n", FormatAddress(u.Address))
	tw.Flush()
}

// renderError prints the error view of a failed fetch.
func renderError(w io.Writer, msg string) {
	fmt.Fprintf(w, "Error: %s\n", msg)
	fmt.Fprintln(w, "Type 'retry' to try again")
}

func renderStatus(w io.Writer, st store.State) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Users\t%d\n", len(st.Users))
	fmt.Fprintf(tw, "Loading\t%t\n", st.Loading)
	fmt.Fprintf(tw, "Error\t%s\n", orDash(st.Error))
	last := "never"
	if !st.LastFetched.IsZero() {
		last = st.LastFetched.Format(time.RFC3339)
	}
	fmt.Fprintf(tw, "Last fetched\t%s\n", last)
	tw.Flush()
}

// writeUsers prints users in the requested output format.
func writeUsers(w io.Writer, users []models.User, query, format string) error {
	switch format {
	case OutputTable, "":
		renderList(w, users, query)
		return nil
	default:
		return encode(w, users, format)
	}
}

// writeUser prints one user in the requested output format.
func writeUser(w io.Writer, u models.User, format string) error {
	switch format {
	case OutputTable, "":
		renderDetail(w, u)
		return nil
	default:
		return encode(w, u, format)
	}
}

func encode(w io.Writer, v any, format string) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: unknown output format %q", errUsage, format)
	}
}

package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/userdir/internal/client/client"
	"github.com/dmitrijs2005/userdir/internal/client/config"
	"github.com/dmitrijs2005/userdir/internal/client/search"
	"github.com/dmitrijs2005/userdir/internal/client/store"
	pb "github.com/dmitrijs2005/userdir/internal/proto"
	"github.com/spf13/cobra"
)

func newRemoteCmd() *cobra.Command {
	remote := &cobra.Command{
		Use:   "remote",
		Short: "Talk to a running bridge (see serve)",
	}
	config.RegisterBridgeFlags(remote.PersistentFlags())
	remote.PersistentFlags().String("token", "", "access token issued by the token command")

	remote.AddCommand(
		newRemoteListCmd(),
		newRemoteRefreshCmd(),
		newRemoteShowCmd(),
		newRemoteDeleteCmd(),
	)
	return remote
}

// withBridge runs fn with a connected bridge client and a call timeout.
func withBridge(cmd *cobra.Command, fn func(ctx context.Context, c *client.BridgeClient) error) error {
	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	c, err := dialBridge(cmd, rt)
	if err != nil {
		return err
	}
	defer c.Close()

	// A remote FetchAll waits for the bridge's own upstream call.
	ctx, cancel := context.WithTimeout(cmd.Context(), 2*rt.cfg.RequestTimeout)
	defer cancel()

	if err := fn(ctx, c); err != nil {
		return fmt.Errorf("bridge %s: %w", rt.cfg.BridgeAddr, err)
	}
	return nil
}

func stateFromMessage(m *pb.StateMessage) store.State {
	st := store.State{Users: m.Users, Loading: m.Loading, Error: m.Error}
	if m.LastFetched > 0 {
		st.LastFetched = time.UnixMilli(m.LastFetched)
	}
	return st
}

func printRemoteState(w io.Writer, st store.State, query string) {
	if st.HasError() {
		renderError(w, st.Error)
	}
	renderList(w, search.Filter(st.Users, query), query)
}

func newRemoteListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [query]",
		Short: "Print the users held by the bridge",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBridge(cmd, func(ctx context.Context, c *client.BridgeClient) error {
				m, err := c.State(ctx)
				if err != nil {
					return err
				}
				printRemoteState(cmd.OutOrStdout(), stateFromMessage(m), strings.TrimSpace(strings.Join(args, " ")))
				return nil
			})
		},
	}
}

func newRemoteRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Make the bridge reload its users from the API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBridge(cmd, func(ctx context.Context, c *client.BridgeClient) error {
				m, err := c.FetchAll(ctx, true)
				if err != nil {
					return err
				}
				st := stateFromMessage(m)
				if st.HasError() {
					renderError(cmd.OutOrStdout(), st.Error)
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Loaded %s\n", plural(len(st.Users), "user", "users"))
				return nil
			})
		},
	}
}

func newRemoteShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print one user as seen by the bridge",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args)
			if err != nil {
				return err
			}
			return withBridge(cmd, func(ctx context.Context, c *client.BridgeClient) error {
				u, err := c.User(ctx, id)
				if err != nil {
					return err
				}
				renderDetail(cmd.OutOrStdout(), *u)
				return nil
			})
		},
	}
}

func newRemoteDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a user from the bridge's collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args)
			if err != nil {
				return err
			}
			return withBridge(cmd, func(ctx context.Context, c *client.BridgeClient) error {
				found, err := c.Remove(ctx, id)
				if err != nil {
					return err
				}
				if !found {
					return client.ErrNotFound
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted #%d\n", id)
				return nil
			})
		},
	}
}

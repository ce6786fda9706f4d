package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/userdir/internal/buildinfo"
	"github.com/dmitrijs2005/userdir/internal/client/client"
	"github.com/dmitrijs2005/userdir/internal/client/config"
	"github.com/dmitrijs2005/userdir/internal/client/search"
	"github.com/dmitrijs2005/userdir/internal/logging"
	"github.com/dmitrijs2005/userdir/internal/server"
	"github.com/dmitrijs2005/userdir/internal/server/auth"
	"github.com/spf13/cobra"
)

// remoteTokenTTL is the lifetime of tokens minted on the fly by remote
// commands given a secret instead of a token.
const remoteTokenTTL = time.Minute

// runtime is what every command needs before doing its work.
type runtime struct {
	cfg    *config.Config
	logger logging.Logger
}

func setup(cmd *cobra.Command) (*runtime, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	return &runtime{cfg: cfg, logger: logger}, nil
}

func (rt *runtime) newApp(cmd *cobra.Command) *App {
	return NewApp(rt.cfg, rt.logger, cmd.InOrStdin(), cmd.OutOrStdout())
}

// NewRootCmd builds the userdir command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "userdir",
		Short:         "Browse and edit a remote user directory",
		Long:          "userdir fetches users from a read-only HTTP API and lets you search, view and locally add, edit or delete them.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          runREPLCmd,
	}
	config.RegisterGlobalFlags(root.PersistentFlags())

	root.AddCommand(
		newREPLCmd(),
		newListCmd(),
		newShowCmd(),
		newServeCmd(),
		newTokenCmd(),
		newRemoteCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command tree with ctx and prints a failure to stderr.
func Execute(ctx context.Context) error {
	root := NewRootCmd()
	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
	}
	return err
}

func runREPLCmd(cmd *cobra.Command, args []string) error {
	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	rt.newApp(cmd).Run(cmd.Context())
	return nil
}

func newREPLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start the interactive shell (default)",
		Args:  cobra.NoArgs,
		RunE:  runREPLCmd,
	}
}

func addOutputFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", OutputTable, "output format: table, json, yaml")
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [query]",
		Short: "Fetch and print users, optionally filtered by a search query",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(cmd)
			if err != nil {
				return err
			}
			st := rt.newApp(cmd).Store()
			st.FetchAll(cmd.Context(), true)

			state := st.State()
			if state.HasError() {
				return errors.New(state.Error)
			}

			format, _ := cmd.Flags().GetString("output")
			query := strings.TrimSpace(strings.Join(args, " "))
			return writeUsers(cmd.OutOrStdout(), search.Filter(state.Users, query), query, format)
		},
	}
	addOutputFlag(cmd)
	return cmd
}

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Fetch and print one user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args)
			if err != nil {
				return err
			}
			rt, err := setup(cmd)
			if err != nil {
				return err
			}
			d := rt.newApp(cmd).Store().Detail(cmd.Context(), id)
			if d.User == nil {
				return errors.New(d.Error)
			}

			format, _ := cmd.Flags().GetString("output")
			return writeUser(cmd.OutOrStdout(), *d.User, format)
		},
	}
	addOutputFlag(cmd)
	return cmd
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Load the users and serve them over the gRPC bridge",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(cmd)
			if err != nil {
				return err
			}
			st := rt.newApp(cmd).Store()
			return server.NewApp(rt.cfg, rt.logger, st).Run(cmd.Context())
		},
	}
	config.RegisterBridgeFlags(cmd.Flags())
	return cmd
}

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token for a bridge started with --secret",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(cmd)
			if err != nil {
				return err
			}
			if rt.cfg.BridgeSecret == "" {
				return fmt.Errorf("%w: --secret is required", errUsage)
			}
			subject, _ := cmd.Flags().GetString("subject")

			tok, err := auth.GenerateToken(subject, []byte(rt.cfg.BridgeSecret), rt.cfg.BridgeTokenTTL)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	config.RegisterBridgeFlags(cmd.Flags())
	config.RegisterTTLFlag(cmd.Flags())
	cmd.Flags().String("subject", "userdir-cli", "subject written into the token")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			buildinfo.PrintBuildData(cmd.OutOrStdout())
		},
	}
}

// dialBridge connects to the bridge named by the flags. Without --token a
// short-lived token is minted from --secret when one is given.
func dialBridge(cmd *cobra.Command, rt *runtime) (*client.BridgeClient, error) {
	token, _ := cmd.Flags().GetString("token")
	if token == "" && rt.cfg.BridgeSecret != "" {
		var err error
		token, err = auth.GenerateToken("userdir-remote", []byte(rt.cfg.BridgeSecret), remoteTokenTTL)
		if err != nil {
			return nil, err
		}
	}
	return client.NewBridgeClient(rt.cfg.BridgeAddr, token)
}

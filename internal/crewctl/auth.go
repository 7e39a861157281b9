package crewctl

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// NewChallengeCommand creates the challenge command.
func NewChallengeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "challenge",
		Short: "Fetch the current authentication challenge",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ch, err := NewClient(rootOpts.Server).GetChallenge()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "appId:  %s\n", ch.AppID)
			fmt.Fprintf(cmd.OutOrStdout(), "appKey: %s\n", ch.AppKey)
			fmt.Fprintf(cmd.OutOrStdout(), "realm:  %s\n", ch.Realm)
			fmt.Fprintf(cmd.OutOrStdout(), "nonce:  %s\n", ch.Nonce)
			fmt.Fprintf(cmd.OutOrStdout(), "qop:    %s\n", ch.Qop)
			return nil
		},
	}
}

// LoginOptions holds flags for the login command.
type LoginOptions struct {
	*RootOptions
	Password string
}

// NewLoginCommand creates the login command. The password is prompted for
// unless --password is given; the challenge is fetched and the context
// string assembled client-side, mirroring what any API consumer does.
func NewLoginCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LoginOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "login <identity>",
		Short: "Authenticate and print an access token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Password, "password", "", "password (prompted if omitted)")

	return cmd
}

func runLogin(opts *LoginOptions, identity string, cmd *cobra.Command) error {
	password := opts.Password
	if password == "" {
		fmt.Fprint(cmd.OutOrStdout(), "Password: ")
		raw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		password = string(raw)
	}
	if password == "" {
		return fmt.Errorf("password must not be empty")
	}

	client := NewClient(opts.Server)
	ch, err := client.GetChallenge()
	if err != nil {
		return fmt.Errorf("fetch challenge: %w", err)
	}

	context := strings.Join([]string{ch.AppID, ch.AppKey, ch.Realm, ch.Nonce, password}, ":")
	res, err := client.Login(identity, context)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s <%s>\n", res.Profile.ID, res.Profile.Email)
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", res.AccessToken)
	if res.SessionID != "" {
		fmt.Fprintf(os.Stderr, "session: %s\n", res.SessionID)
	}
	return nil
}

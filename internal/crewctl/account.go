package crewctl

import (
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// AccountOptions holds flags for account subcommands.
type AccountOptions struct {
	*RootOptions
	Email     string
	FirstName string
	LastName  string
	Password  string
	Roles     []string
	TeamID    string
}

// NewAccountCommand creates the account command group.
func NewAccountCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage accounts",
	}
	cmd.AddCommand(newAccountCreateCommand(rootOpts))
	cmd.AddCommand(newAccountDeleteCommand(rootOpts))
	return cmd
}

func newAccountCreateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AccountOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "create <id>",
		Short: "Create an account with its credentials",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAccountCreate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Email, "email", "", "account email (required)")
	cmd.Flags().StringVar(&opts.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&opts.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&opts.Password, "password", "", "password (prompted if omitted)")
	cmd.Flags().StringSliceVar(&opts.Roles, "role", nil, "role to grant (repeatable)")
	cmd.Flags().StringVar(&opts.TeamID, "team", "", "team to join after creation")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func runAccountCreate(opts *AccountOptions, id string, cmd *cobra.Command) error {
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

	p, err := NewClient(opts.Server).CreateAccount(&CreateAccountRequest{
		ID:        id,
		Email:     opts.Email,
		FirstName: opts.FirstName,
		LastName:  opts.LastName,
		Password:  password,
		Roles:     opts.Roles,
		TeamID:    opts.TeamID,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created account %s <%s>\n", p.ID, p.Email)
	return nil
}

func newAccountDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an account and its credentials",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := NewClient(rootOpts.Server).DeleteAccount(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted account %s\n", args[0])
			return nil
		},
	}
}

package crewctl

import (
	"fmt"

	"github.com/spf13/cobra"
)

// TeamOptions holds flags for team subcommands.
type TeamOptions struct {
	*RootOptions
	Description string
	CreatorID   string
}

// NewTeamCommand creates the team command group.
func NewTeamCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Manage teams",
	}
	cmd.AddCommand(newTeamCreateCommand(rootOpts))
	cmd.AddCommand(newTeamDeleteCommand(rootOpts))
	return cmd
}

func newTeamCreateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TeamOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			team, err := NewClient(opts.Server).CreateTeam(&CreateTeamRequest{
				Name:        args[0],
				Description: opts.Description,
				CreatorID:   opts.CreatorID,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created team %q with id %s\n", team.Name, team.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Description, "description", "", "team description")
	cmd.Flags().StringVar(&opts.CreatorID, "creator", "", "account id of the creator")

	return cmd
}

func newTeamDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := NewClient(rootOpts.Server).DeleteTeam(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted team %s\n", args[0])
			return nil
		},
	}
}

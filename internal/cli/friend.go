package cli

import (
	"github.com/spf13/cobra"
)

func newFriendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "friend",
		Short: "Friend list commands, always acting on the account given first",
	}

	cmd.AddCommand(newFriendListCmd("list", "Show friends", "friends"))
	cmd.AddCommand(newFriendListCmd("pending", "Show pending friend requests", "friends", "pending"))
	cmd.AddCommand(newFriendRequestCmd())
	cmd.AddCommand(newFriendAnswerCmd("accept", "Accept a friend request"))
	cmd.AddCommand(newFriendAnswerCmd("reject", "Reject a friend request"))
	cmd.AddCommand(newFriendRemoveCmd())

	return cmd
}

func newFriendListCmd(use, short string, segments ...string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result FriendList

			if err := client.Get(cmd.Context(), accountPath(args[0], segments...), &result); err != nil {
				return err
			}

			NewOutput(cmd.OutOrStdout(), cfg.Output).Print(result)
			return nil
		},
	}
}

func newFriendRequestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "request <id> <username>",
		Short: "Send a friend request to a username",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"username": args[1]}

			if err := client.Post(cmd.Context(), accountPath(args[0], "friends", "requests"), req, nil); err != nil {
				return err
			}

			NewOutput(cmd.OutOrStdout(), cfg.Output).PrintMessage("Friend request sent to " + args[1])
			return nil
		},
	}
}

// newFriendAnswerCmd builds accept and reject, which share a path shape
func newFriendAnswerCmd(action, short string) *cobra.Command {
	return &cobra.Command{
		Use:   action + " <id> <sender>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result FriendList

			if err := client.Post(cmd.Context(), accountPath(args[0], "friends", "requests", args[1], action), nil, &result); err != nil {
				return err
			}

			NewOutput(cmd.OutOrStdout(), cfg.Output).Print(result)
			return nil
		},
	}
}

func newFriendRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id> <friend>",
		Short: "Remove a friend",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(cmd.Context(), accountPath(args[0], "friends", args[1]), nil); err != nil {
				return err
			}

			NewOutput(cmd.OutOrStdout(), cfg.Output).PrintMessage("Removed " + args[1])
			return nil
		},
	}
}

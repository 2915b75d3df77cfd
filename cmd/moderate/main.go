// Command moderate reviews pending groups from the command line.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"commons/internal/bootstrap"
	"commons/internal/config"
	"commons/internal/service"

	"github.com/spf13/cobra"
)

var (
	moderatorID uint
	reason      string
)

var rootCmd = &cobra.Command{
	Use:   "moderate",
	Short: "Review groups awaiting moderation",
	Long: `Review groups awaiting moderation.

Available subcommands:
  list-pending - Show every pending group, oldest first
  approve      - Approve a pending group
  reject       - Reject a pending group with a reason`,
	SilenceUsage: true,
}

var listPendingCmd = &cobra.Command{
	Use:   "list-pending",
	Short: "Show every pending group, oldest first",
	Args:  cobra.NoArgs,
	RunE:  runListPending,
}

var approveCmd = &cobra.Command{
	Use:   "approve <group-id>",
	Short: "Approve a pending group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDecision(cmd.Context(), args[0], service.DecisionApprove, "")
	},
}

var rejectCmd = &cobra.Command{
	Use:   "reject <group-id>",
	Short: "Reject a pending group with a reason",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDecision(cmd.Context(), args[0], service.DecisionReject, reason)
	},
}

func init() {
	rootCmd.PersistentFlags().UintVar(&moderatorID, "moderator", 0, "user ID recorded as the reviewer")
	rejectCmd.Flags().StringVar(&reason, "reason", "", "rejection reason shown to the creator")
	_ = rejectCmd.MarkFlagRequired("reason")

	rootCmd.AddCommand(listPendingCmd, approveCmd, rejectCmd)
}

func services() (*bootstrap.Services, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	db, rdb, err := bootstrap.InitRuntime(cfg, bootstrap.Options{})
	if err != nil {
		return nil, err
	}
	return bootstrap.NewServices(cfg, db, rdb), nil
}

func runListPending(cmd *cobra.Command, _ []string) error {
	svc, err := services()
	if err != nil {
		return err
	}
	groups, err := svc.Groups.ListPendingGroups(cmd.Context())
	if err != nil {
		return err
	}
	if len(groups) == 0 {
		fmt.Println("No groups awaiting moderation.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tCITY\tCREATOR\tCREATED")
	for _, g := range groups {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\n",
			g.ID, g.Name, g.Category, g.City, g.CreatorID, g.CreatedAt.Format(time.DateTime))
	}
	return w.Flush()
}

func runDecision(ctx context.Context, rawID string, decision service.ModerationDecision, reason string) error {
	if moderatorID == 0 {
		return fmt.Errorf("--moderator is required")
	}
	id, err := strconv.ParseUint(rawID, 10, 32)
	if err != nil || id == 0 {
		return fmt.Errorf("invalid group id %q", rawID)
	}

	svc, err := services()
	if err != nil {
		return err
	}
	group, err := svc.Groups.ModerateGroup(ctx, uint(id), moderatorID, decision, reason)
	if err != nil {
		return err
	}
	fmt.Printf("Group %d (%s) is now %s\n", group.ID, group.Name, group.Lifecycle)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

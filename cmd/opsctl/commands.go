package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/blizon/ops-dashboard/internal/domain"
	"github.com/blizon/ops-dashboard/internal/idgen"
	"github.com/blizon/ops-dashboard/internal/metrics"
	"github.com/blizon/ops-dashboard/internal/repository"
	"github.com/blizon/ops-dashboard/internal/seed"
	"github.com/blizon/ops-dashboard/internal/service"
)

const dateLayout = "2006-01-02"

var version = "dev"

// app holds the services every command reads from
type app struct {
	search    *service.SearchService
	dashboard *service.DashboardService
	contracts *service.ContractService
	asJSON    bool
	now       func() time.Time
}

func newApp(seeded bool) *app {
	storeSeed := seed.Empty()
	if seeded {
		storeSeed = seed.Default()
	}
	store := repository.NewStore(storeSeed)
	log := zap.NewNop()
	m := metrics.New()
	ids := idgen.New()

	return &app{
		search:    service.NewSearchService(store, m, log),
		dashboard: service.NewDashboardService(store, log),
		contracts: service.NewContractService(store, repository.NewDraftRepository(), service.NewMilestoneLedger(ids, m), ids, log),
		now:       time.Now,
	}
}

func newRootCmd() *cobra.Command {
	var empty bool
	a := &app{}

	root := &cobra.Command{
		Use:   "opsctl",
		Short: "Inspect the operations dashboard data",
		Long: `opsctl runs the dashboard's search, statistics and calendar views
against the sample dataset.

Examples:
  opsctl search smith
  opsctl stats --json
  opsctl calendar --from 2025-04-01 --to 2025-04-30`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			asJSON := a.asJSON
			*a = *newApp(!empty)
			a.asJSON = asJSON
		},
	}

	root.PersistentFlags().BoolVar(&empty, "empty", false, "start from an empty store instead of the sample data")
	root.PersistentFlags().BoolVar(&a.asJSON, "json", false, "print JSON instead of tables")

	root.AddCommand(newSearchCmd(a), newStatsCmd(a), newCalendarCmd(a), newContractsCmd(a))
	return root
}

func newSearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search [query]",
		Short: "Search every collection and report the focused section",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			results := a.search.Search(cmd.Context(), query)
			if a.asJSON {
				return writeJSON(cmd.OutOrStdout(), results)
			}
			return printSearch(cmd.OutOrStdout(), results)
		},
	}
}

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print the dashboard headline counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats := a.dashboard.Stats(cmd.Context())
			if a.asJSON {
				return writeJSON(cmd.OutOrStdout(), stats)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "Total clients\t%d\n", stats.TotalClients)
			fmt.Fprintf(tw, "Active projects\t%d\n", stats.ActiveProjects)
			fmt.Fprintf(tw, "Team members\t%d\n", stats.TeamMembers)
			fmt.Fprintf(tw, "Onboarded interns\t%d\n", stats.OnboardedInterns)
			fmt.Fprintf(tw, "Contract value\t%s\n", stats.TotalContractValue.StringFixed(2))
			return tw.Flush()
		},
	}
}

func newCalendarCmd(a *app) *cobra.Command {
	var day, from, to string

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "List project deadlines and milestone due dates",
		Long: `List calendar events for one day (--date) or for a date range
(--from/--to). Without flags the next 30 days are shown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var events []domain.CalendarEvent
			if day != "" {
				d, err := time.ParseInLocation(dateLayout, day, time.UTC)
				if err != nil {
					return fmt.Errorf("invalid --date: %w", err)
				}
				events = a.dashboard.EventsOn(cmd.Context(), d)
			} else {
				start := a.now().UTC()
				if from != "" {
					d, err := time.ParseInLocation(dateLayout, from, time.UTC)
					if err != nil {
						return fmt.Errorf("invalid --from: %w", err)
					}
					start = d
				}
				end := start.AddDate(0, 0, 30)
				if to != "" {
					d, err := time.ParseInLocation(dateLayout, to, time.UTC)
					if err != nil {
						return fmt.Errorf("invalid --to: %w", err)
					}
					end = d
				}
				if end.Before(start) {
					return fmt.Errorf("--to must not be before --from")
				}
				events = a.dashboard.EventsBetween(cmd.Context(), start, end)
			}

			if a.asJSON {
				return writeJSON(cmd.OutOrStdout(), events)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "DATE\tTYPE\tTITLE\tDETAIL")
			for _, e := range events {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Date.Format(dateLayout), e.Type, e.Title, e.Description)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&day, "date", "", "single day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&from, "from", "", "first day of the range (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "last day of the range (YYYY-MM-DD)")
	cmd.MarkFlagsMutuallyExclusive("date", "from")
	cmd.MarkFlagsMutuallyExclusive("date", "to")
	return cmd
}

func newContractsCmd(a *app) *cobra.Command {
	var search, clientID string

	cmd := &cobra.Command{
		Use:   "contracts",
		Short: "List contracts with their milestone progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			contracts := a.contracts.List(cmd.Context(), service.ContractFilter{
				Search:   search,
				ClientID: domain.ClientID(clientID),
			})
			if a.asJSON {
				return writeJSON(cmd.OutOrStdout(), contracts)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tCLIENT\tVALUE\tPROGRESS")
			for _, c := range contracts {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d/%d (%d%%)\n",
					c.ID, c.Title, c.ClientName, c.TotalValue.StringFixed(2),
					c.CompletedMilestones, c.TotalMilestones, c.Progress)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "filter by title, description or client name")
	cmd.Flags().StringVar(&clientID, "client", "", "only contracts of this client id")
	return cmd
}

func printSearch(w io.Writer, results domain.SearchResults) error {
	if strings.TrimSpace(results.Query) == "" {
		_, err := fmt.Fprintln(w, "Empty query: nothing to focus")
		return err
	}
	if results.NoResults {
		_, err := fmt.Fprintf(w, "No results for %q\n", results.Query)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Focus\t%s\n", results.Focus)
	fmt.Fprintf(tw, "Clients\t%d\n", len(results.Clients))
	fmt.Fprintf(tw, "Projects\t%d\n", len(results.Projects))
	fmt.Fprintf(tw, "Team\t%d\n", len(results.TeamMembers))
	fmt.Fprintf(tw, "Interns\t%d\n", len(results.Interns))
	fmt.Fprintf(tw, "Contracts\t%d\n", len(results.Contracts))
	return tw.Flush()
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

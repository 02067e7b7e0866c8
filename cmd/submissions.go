package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abhisek/tourpref/internal/store"
)

var submissionsCmd = &cobra.Command{
	Use:   "submissions",
	Short: "Inspect recorded preference submissions",
}

var submissionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent submissions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		outcome, _ := cmd.Flags().GetString("outcome")
		sessionID, _ := cmd.Flags().GetString("session")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		s, _, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QuerySubmissionEvents(cmd.Context(), store.QueryOpts{
			Limit:     limit,
			Outcome:   outcome,
			SessionID: sessionID,
		})
		if err != nil {
			return fmt.Errorf("query submissions: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No submissions found.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-19s  %-20s  %-10s  %-6s  %-7s  %s\n",
			"ID", "Timestamp", "Tourist", "Outcome", "Status", "Ms", "Error")
		fmt.Fprintln(out, strings.Repeat("─", 100))

		for _, e := range events {
			status := "-"
			if e.StatusCode != 0 {
				status = strconv.Itoa(e.StatusCode)
			}
			fmt.Fprintf(out, "%-5d  %-19s  %-20s  ",
				e.ID,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				truncate(e.TouristID, 20),
			)
			outcomeColor(e.Outcome).Fprintf(out, "%-10s", e.Outcome)
			fmt.Fprintf(out, "  %-6s  %-7d  %s\n", status, e.LatencyMs, truncate(e.ErrorMessage, 40))
		}
		return nil
	},
}

var submissionsViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "View the full payload and result of a submission",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		s, _, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetSubmissionEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get submission: %w", err)
		}
		if e == nil {
			return fmt.Errorf("submission %d not found", id)
		}

		out := cmd.OutOrStdout()
		sep := strings.Repeat("─", 60)

		fmt.Fprintf(out, "ID:        %d\n", e.ID)
		fmt.Fprintf(out, "Time:      %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
		fmt.Fprintf(out, "Session:   %s\n", e.SessionID)
		fmt.Fprintf(out, "Tourist:   %s\n", e.TouristID)
		fmt.Fprintf(out, "Endpoint:  %s\n", e.Endpoint)
		fmt.Fprint(out, "Outcome:   ")
		outcomeColor(e.Outcome).Fprintln(out, e.Outcome)
		if e.StatusCode != 0 {
			fmt.Fprintf(out, "Status:    %d\n", e.StatusCode)
		}
		fmt.Fprintf(out, "Latency:   %dms\n", e.LatencyMs)
		if e.ErrorMessage != "" {
			fmt.Fprintf(out, "Error:     %s\n", e.ErrorMessage)
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, sep)
		fmt.Fprintln(out, "PAYLOAD")
		fmt.Fprintln(out, sep)
		fmt.Fprintln(out, prettyJSON(e.Payload))
		return nil
	},
}

var submissionsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show submission counts and latency by outcome",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		s, _, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		stats, err := s.EventRepo().SubmissionStatsByOutcome(cmd.Context())
		if err != nil {
			return fmt.Errorf("query stats: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(stats) == 0 {
			fmt.Fprintln(out, "No submissions recorded yet.")
			return nil
		}

		fmt.Fprintln(out, "Submissions by Outcome")
		fmt.Fprintln(out, strings.Repeat("─", 40))
		fmt.Fprintf(out, "%-12s  %8s  %10s\n", "Outcome", "Count", "Avg Ms")
		fmt.Fprintln(out, strings.Repeat("─", 40))

		var total int
		for _, st := range stats {
			outcomeColor(st.Outcome).Fprintf(out, "%-12s", st.Outcome)
			fmt.Fprintf(out, "  %8d  %10d\n", st.Count, st.AvgLatencyMs)
			total += st.Count
		}

		fmt.Fprintln(out, strings.Repeat("─", 40))
		fmt.Fprintf(out, "%-12s  %8d\n", "TOTAL", total)
		return nil
	},
}

func outcomeColor(outcome string) *color.Color {
	switch outcome {
	case store.OutcomeSuccess:
		return color.New(color.FgGreen)
	case store.OutcomeRejected, store.OutcomeMalformed:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

func prettyJSON(raw string) string {
	if raw == "" {
		return "(not captured)"
	}
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return raw
	}
	return string(b)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func init() {
	submissionsListCmd.Flags().IntP("limit", "n", 20, "Number of submissions to show")
	submissionsListCmd.Flags().StringP("outcome", "o", "", "Filter by outcome (success, rejected, malformed, transport)")
	submissionsListCmd.Flags().StringP("session", "s", "", "Filter by session ID")

	submissionsCmd.AddCommand(submissionsListCmd)
	submissionsCmd.AddCommand(submissionsViewCmd)
	submissionsCmd.AddCommand(submissionsStatsCmd)
}

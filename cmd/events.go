package cmd

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/prism/internal/llm"
	"github.com/abhisek/prism/internal/store"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Inspect recorded API and LLM calls",
}

var eventsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent events",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		kind, _ := cmd.Flags().GetString("kind")
		switch store.EventKind(kind) {
		case "", store.KindAPI, store.KindLLM:
		default:
			return fmt.Errorf("--kind must be %q or %q", store.KindAPI, store.KindLLM)
		}

		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		// Fetch unbounded when filtering so --limit counts matching rows.
		q := store.QueryOpts{Limit: limit}
		if kind != "" {
			q.Limit = 0
		}
		events, err := e.store.EventRepo().QueryEvents(cmd.Context(), q)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if kind != "" {
			filtered := events[:0]
			for _, ev := range events {
				if ev.Kind == store.EventKind(kind) {
					filtered = append(filtered, ev)
				}
			}
			events = filtered
			if limit > 0 && len(events) > limit {
				events = events[:limit]
			}
		}

		if len(events) == 0 {
			fmt.Println("No events found.")
			return nil
		}

		fmt.Printf("%-6s  %-4s  %-19s  %-28s  %-24s  %-7s  %s\n",
			"SEQ", "KIND", "TIME", "NAME", "DETAIL", "MS", "OK")
		fmt.Println(strings.Repeat("─", 100))
		for _, ev := range events {
			ok := "yes"
			if !ev.Success {
				ok = "no"
			}
			fmt.Printf("%-6d  %-4s  %-19s  %-28s  %-24s  %-7d  %s\n",
				ev.Sequence,
				ev.Kind,
				ev.Timestamp.Local().Format("2006-01-02 15:04:05"),
				truncate(ev.Name, 28),
				truncate(ev.Detail, 24),
				ev.LatencyMs,
				ok,
			)
		}
		return nil
	},
}

var eventsViewCmd = &cobra.Command{
	Use:   "view <seq>",
	Short: "Show an LLM request with its prompt and response",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		seq, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid sequence: %s", args[0])
		}

		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		rec, err := e.store.EventRepo().GetLLMRequest(cmd.Context(), seq)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if rec == nil {
			return fmt.Errorf("LLM event %d not found", seq)
		}

		sep := strings.Repeat("─", 60)

		fmt.Printf("Sequence:  %d\n", rec.Sequence)
		fmt.Printf("Time:      %s\n", rec.Timestamp.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("Provider:  %s\n", rec.Provider)
		fmt.Printf("Model:     %s\n", rec.Model)
		fmt.Printf("Purpose:   %s\n", rec.Purpose)
		fmt.Printf("Tokens:    %d in / %d out\n", rec.InputTokens, rec.OutputTokens)
		if cost, ok := llm.LookupCost(rec.Model); ok {
			fmt.Printf("Cost:      %s\n", formatCost(cost.Cost(rec.InputTokens, rec.OutputTokens)))
		}
		fmt.Printf("Latency:   %dms\n", rec.LatencyMs)
		fmt.Printf("Success:   %v\n", rec.Success)
		if rec.ErrorMessage != "" {
			fmt.Printf("Error:     %s\n", rec.ErrorMessage)
		}

		for _, part := range []struct{ title, body string }{
			{"REQUEST", rec.RequestBody},
			{"RESPONSE", rec.ResponseBody},
		} {
			fmt.Println()
			fmt.Println(sep)
			fmt.Println(part.title)
			fmt.Println(sep)
			if part.body != "" {
				fmt.Println(part.body)
			} else {
				fmt.Println("(not captured)")
			}
		}
		return nil
	},
}

var eventsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show call counts, failures and latency, plus estimated LLM cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		repo := e.store.EventRepo()
		stats, err := repo.Stats(ctx)
		if err != nil {
			return fmt.Errorf("query stats: %w", err)
		}
		if len(stats) == 0 {
			fmt.Println("No events recorded yet.")
			return nil
		}

		fmt.Println("Calls by Endpoint and Purpose")
		fmt.Println(strings.Repeat("─", 72))
		fmt.Printf("%-4s  %-32s  %6s  %8s  %10s\n", "Kind", "Name", "Calls", "Failed", "Avg Ms")
		fmt.Println(strings.Repeat("─", 72))
		var calls, failures int
		for _, st := range stats {
			fmt.Printf("%-4s  %-32s  %6d  %8d  %10.0f\n",
				st.Kind, truncate(st.Name, 32), st.Count, st.Failures, st.AvgLatencyMs)
			calls += st.Count
			failures += st.Failures
		}
		fmt.Println(strings.Repeat("─", 72))
		fmt.Printf("%-4s  %-32s  %6d  %8d\n", "", "TOTAL", calls, failures)

		usage, err := usageByModel(cmd, repo)
		if err != nil {
			return err
		}
		if len(usage) == 0 {
			return nil
		}

		fmt.Println()
		fmt.Println("Estimated LLM Cost (USD)")
		fmt.Println(strings.Repeat("─", 72))
		fmt.Printf("%-32s  %6s  %10s  %10s  %8s\n", "Model", "Calls", "Input", "Output", "Cost")
		fmt.Println(strings.Repeat("─", 72))

		var total float64
		var unknown []string
		for _, u := range usage {
			cost, ok := llm.LookupCost(u.model)
			if !ok {
				unknown = append(unknown, u.model)
				fmt.Printf("%-32s  %6d  %10d  %10d  %8s\n",
					truncate(u.model, 32), u.calls, u.input, u.output, "?")
				continue
			}
			c := cost.Cost(u.input, u.output)
			total += c
			fmt.Printf("%-32s  %6d  %10d  %10d  %8s\n",
				truncate(u.model, 32), u.calls, u.input, u.output, formatCost(c))
		}
		fmt.Println(strings.Repeat("─", 72))
		fmt.Printf("%-32s  %6s  %10s  %10s  %8s\n", "TOTAL", "", "", "", formatCost(total))
		if len(unknown) > 0 {
			fmt.Printf("\nNo pricing for: %s\n", strings.Join(unknown, ", "))
		}
		return nil
	},
}

type modelUsage struct {
	model         string
	calls         int
	input, output int
}

// usageByModel sums token counts per model over every LLM event.
func usageByModel(cmd *cobra.Command, repo store.EventRepo) ([]modelUsage, error) {
	ctx := cmd.Context()
	events, err := repo.QueryEvents(ctx, store.QueryOpts{})
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}

	byModel := map[string]*modelUsage{}
	for _, ev := range events {
		if ev.Kind != store.KindLLM {
			continue
		}
		rec, err := repo.GetLLMRequest(ctx, ev.Sequence)
		if err != nil {
			return nil, fmt.Errorf("get event %d: %w", ev.Sequence, err)
		}
		if rec == nil {
			continue
		}
		u, ok := byModel[rec.Model]
		if !ok {
			u = &modelUsage{model: rec.Model}
			byModel[rec.Model] = u
		}
		u.calls++
		u.input += rec.InputTokens
		u.output += rec.OutputTokens
	}

	out := make([]modelUsage, 0, len(byModel))
	for _, u := range byModel {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].model < out[j].model })
	return out, nil
}

func init() {
	eventsListCmd.Flags().Int("limit", 20, "Maximum number of events to show")
	eventsListCmd.Flags().String("kind", "", "Filter by kind (api or llm)")

	eventsCmd.AddCommand(eventsListCmd)
	eventsCmd.AddCommand(eventsViewCmd)
	eventsCmd.AddCommand(eventsStatsCmd)
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

func formatCost(c float64) string {
	if c < 0.01 {
		return fmt.Sprintf("$%.4f", c)
	}
	return fmt.Sprintf("$%.2f", c)
}

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/prism/internal/lists"
	"github.com/abhisek/prism/internal/objectives"
	"github.com/abhisek/prism/internal/provenance"
	"github.com/abhisek/prism/internal/skive"
	"github.com/abhisek/prism/internal/taxonomy"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Generate objectives and lists for a role",
}

var suggestObjectivesCmd = &cobra.Command{
	Use:     "objectives <competency-path>",
	Short:   "Generate three-tier objectives for one competency",
	Example: "  prism suggest objectives skills.cognitive.analytical --profession 1 --department 2 --role 3",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := skive.ParsePath(args[0])
		if err != nil {
			return err
		}
		return withSuggestion(cmd, func(ctx context.Context, key taxonomy.Key, og objectives.Generator, _ lists.Generator) error {
			s, err := og.SuggestObjectives(ctx, key, path)
			if err != nil {
				return err
			}
			fmt.Printf("%s for %s [%s]\n", skive.Title(path.Leaf()), key.Role.Name, sourceLabel(s.Source))
			for _, lvl := range objectives.AllLevels {
				fmt.Printf("  %-13s %s\n", lvl.DisplayName()+":", s.Levels.Get(lvl))
			}
			return nil
		})
	},
}

var suggestDayToDayCmd = &cobra.Command{
	Use:   "day-to-day",
	Short: "Generate day-to-day activities for a role",
	RunE: func(cmd *cobra.Command, args []string) error {
		return suggestList(cmd, lists.DayToDay)
	},
}

var suggestKRAsCmd = &cobra.Command{
	Use:   "kras",
	Short: "Generate key responsibility areas for a role",
	RunE: func(cmd *cobra.Command, args []string) error {
		return suggestList(cmd, lists.KRAs)
	},
}

func init() {
	for _, c := range []*cobra.Command{suggestObjectivesCmd, suggestDayToDayCmd, suggestKRAsCmd} {
		c.Flags().Int64("profession", 0, "Profession id")
		c.Flags().Int64("department", 0, "Department id")
		c.Flags().Int64("role", 0, "Role id")
		c.Flags().Bool("local", false, "Generate with the local LLM assistant instead of the API")
		_ = c.MarkFlagRequired("profession")
		_ = c.MarkFlagRequired("department")
		_ = c.MarkFlagRequired("role")
		suggestCmd.AddCommand(c)
	}
}

func suggestList(cmd *cobra.Command, kind lists.Kind) error {
	return withSuggestion(cmd, func(ctx context.Context, key taxonomy.Key, _ objectives.Generator, lg lists.Generator) error {
		s, err := lg.SuggestList(ctx, kind, key)
		if err != nil {
			return err
		}
		fmt.Printf("%s for %s [%s]\n", kind.DisplayName(), key.Role.Name, sourceLabel(s.Source))
		for i, it := range s.Items {
			fmt.Printf("  %d. %s\n", i+1, it)
		}
		return nil
	})
}

// withSuggestion resolves the role flags and the generators, then calls fn.
func withSuggestion(cmd *cobra.Command, fn func(context.Context, taxonomy.Key, objectives.Generator, lists.Generator) error) error {
	ctx := cmd.Context()
	profession, _ := cmd.Flags().GetInt64("profession")
	department, _ := cmd.Flags().GetInt64("department")
	role, _ := cmd.Flags().GetInt64("role")
	local, _ := cmd.Flags().GetBool("local")

	e, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer e.Close()

	tax, err := e.taxonomy(ctx)
	if err != nil {
		return err
	}
	key, err := resolveKey(ctx, tax, profession, department, role)
	if err != nil {
		return err
	}
	og, lg, err := e.generators(ctx, local)
	if err != nil {
		return err
	}
	return fn(ctx, key, og, lg)
}

func sourceLabel(s provenance.Source) string {
	if l := s.Label(); l != "" {
		return l
	}
	return "unknown source"
}

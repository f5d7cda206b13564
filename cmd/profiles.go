package cmd

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/prism/internal/objectives"
	"github.com/abhisek/prism/internal/profile"
	"github.com/abhisek/prism/internal/skive"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Browse saved profiles",
}

var profilesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		gw, err := e.gateway()
		if err != nil {
			return err
		}
		rows, err := gw.Simulations(cmd.Context())
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			fmt.Println("No saved profiles.")
			return nil
		}

		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("ID", "NAME", "ROLE", "DEPARTMENT", "ARCHETYPE", "UPDATED")
		for _, r := range rows {
			t.Row(strconv.FormatInt(r.ID, 10), r.ProfileName, r.SpecificRole, r.Department, r.Archetype, r.UpdatedAt)
		}
		lipgloss.Println(t)
		return nil
	},
}

var profilesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one saved profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		gw, err := e.gateway()
		if err != nil {
			return err
		}
		rec, err := gw.Simulation(cmd.Context(), id)
		if err != nil {
			return err
		}
		printProfile(profile.FromRecord(rec))
		return nil
	},
}

var profilesArchetypeCmd = &cobra.Command{
	Use:   "archetype <id>",
	Short: "Show the archetype of a saved profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		gw, err := e.gateway()
		if err != nil {
			return err
		}
		rec, err := gw.Simulation(cmd.Context(), id)
		if err != nil {
			return err
		}
		p := profile.FromRecord(rec)

		res, err := gw.Archetype(cmd.Context(), p.ArchetypeRequest())
		if err != nil {
			fmt.Fprintln(os.Stderr, "Archetype service unavailable:", err)
			fmt.Println("Local preview")
			printLocalArchetype(skive.DeriveArchetype(p.Ratings))
			return nil
		}

		fmt.Printf("Archetype:  %s\n", res.Archetype.Name)
		if res.Archetype.GlobalName != "" {
			fmt.Printf("Global:     %s\n", res.Archetype.GlobalName)
		}
		if res.Archetype.Narrative != "" {
			fmt.Printf("\n%s\n", res.Archetype.Narrative)
		}
		keys := make([]string, 0, len(res.RadarData))
		for key := range res.RadarData {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			printSeries(skive.Title(key), skive.Series(res.RadarData[key]))
		}
		if info := res.ProfessionInfo; info.Title != "" {
			fmt.Printf("\nProfession: %s\n", info.Title)
			if info.Summary != "" {
				fmt.Printf("  %s\n", info.Summary)
			}
			if info.SalaryRange != "" {
				fmt.Printf("  Salary:   %s\n", info.SalaryRange)
			}
			if info.YearsToRole > 0 {
				fmt.Printf("  Years:    %d\n", info.YearsToRole)
			}
		}
		return nil
	},
}

func init() {
	profilesCmd.AddCommand(profilesListCmd)
	profilesCmd.AddCommand(profilesShowCmd)
	profilesCmd.AddCommand(profilesArchetypeCmd)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func printProfile(p *profile.Profile) {
	key := p.Key()
	fmt.Printf("Profile #%d: %s\n", p.ID, p.Name)
	fmt.Printf("Role:       %s / %s / %s\n", key.Profession.Name, key.Department.Name, key.Role.Name)

	printSeries("Domain Summary", skive.Summary(p.Ratings))

	for _, ed := range []struct {
		title string
		items []string
	}{
		{p.DayToDay.Kind.DisplayName(), p.DayToDay.Items()},
		{p.KRAs.Kind.DisplayName(), p.KRAs.Items()},
	} {
		fmt.Printf("\n%s\n", ed.title)
		if len(ed.items) == 0 {
			fmt.Println("  (none)")
		}
		for i, it := range ed.items {
			fmt.Printf("  %d. %s\n", i+1, it)
		}
	}

	fmt.Printf("\nObjectives (%d competencies)\n", p.Objectives.Len())
	for _, path := range p.Objectives.Paths() {
		entry := p.Objectives.Get(path)
		fmt.Printf("  %s (%s)\n", skive.Title(path.Leaf()), path)
		for _, lvl := range objectives.AllLevels {
			if text := entry.Levels.Get(lvl); text != "" {
				fmt.Printf("    %-12s %s\n", lvl.DisplayName()+":", text)
			}
		}
	}
}

func printLocalArchetype(a skive.Archetype) {
	fmt.Printf("Archetype:  %s\n", a.Name)
	printSeries("Signature", a.Signature)
	printSeries("Supporting", a.Supporting)
	printSeries("Foundational", a.Foundational)
}

func printSeries(title string, s skive.Series) {
	if len(s) == 0 {
		return
	}
	fmt.Printf("\n%s\n", title)
	for _, pt := range s {
		fmt.Printf("  %-28s %3d %s\n", truncate(pt.Label, 28), pt.Value, strings.Repeat("█", max(pt.Value, 0)*2))
	}
}

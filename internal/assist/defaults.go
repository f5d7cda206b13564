package assist

import (
	"fmt"
	"strings"

	"github.com/abhisek/prism/internal/objectives"
	"github.com/abhisek/prism/internal/skive"
)

// DefaultDayToDay returns the deterministic day-to-day activities for a role.
func DefaultDayToDay(role, department string) []string {
	r := strings.ToLower(role)
	d := strings.ToLower(department)
	return []string{
		fmt.Sprintf("Review %s queue and triage high-priority items by 10 AM", r),
		fmt.Sprintf("Prepare and analyze %s metrics dashboard; share insights weekly", r),
		fmt.Sprintf("Collaborate with %s stakeholders to unblock dependencies", d),
		"Perform peer QA on team outputs and log defects",
		"Document key decisions and updates in the wiki",
		"Attend stand-up and align on next actions",
		"Respond to pending queries within SLA",
		"Identify one improvement and add to backlog",
		"Update project board with status and blockers",
		"Share daily summary with next steps by EOD",
	}
}

// DefaultKRAs returns the deterministic KRAs for a role.
func DefaultKRAs(role string) []string {
	r := strings.ToLower(role)
	return []string{
		fmt.Sprintf("Achieve ≥ 95%% SLA adherence for key %s processes by Q4", r),
		fmt.Sprintf("Reduce defect rate in %s outputs to < 2%% by end of quarter", r),
		"Improve cross-team collaboration with 2 initiatives this quarter",
		fmt.Sprintf("Increase automation coverage by 15%% for %s workflows", r),
		"Publish monthly KPI review with corrective actions",
		"Deliver two process improvements saving ≥ 5% effort",
		"Maintain stakeholder NPS ≥ 8.5/10 across counterparts",
		"Identify and mitigate top 3 operational risks quarterly",
	}
}

// DefaultObjectives builds the three tier templates from the leaf name of p.
func DefaultObjectives(p skive.Path) objectives.Levels {
	s := p.String()
	if i := strings.LastIndex(s, "."); i >= 0 {
		s = s[i+1:]
	}
	base := strings.ReplaceAll(s, "_", " ")
	return objectives.Levels{
		Basic:        fmt.Sprintf("Demonstrate basic competence in %s by completing 2 guided tasks within 2 weeks.", base),
		Intermediate: fmt.Sprintf("Independently apply %s to solve 3 realistic cases with <10%% errors within a month.", base),
		Advanced:     fmt.Sprintf("Lead a complex scenario requiring %s, documenting approach and outcomes within this quarter.", base),
	}
}

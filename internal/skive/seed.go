package skive

// seedGroup lists the leaves of one sub-category (or of a flat domain when
// sub is empty).
type seedGroup struct {
	domain Domain
	sub    string
	leaves []string
}

var seedGroups = []seedGroup{
	{Skills, "cognitive", []string{"analytical", "decisionMaking", "strategicPlanning", "criticalEvaluation"}},
	{Skills, "interpersonal", []string{"communication", "collaboration", "empathy", "negotiation"}},
	{Skills, "psychomotor", []string{"precision", "proceduralExecution", "coordination"}},
	{Skills, "metacognitive", []string{"reflection", "adaptability", "selfRegulation"}},
	{Knowledge, "declarative", []string{"conceptual", "factual", "theoretical"}},
	{Knowledge, "procedural", []string{"methods", "processes", "techniques"}},
	{Knowledge, "conditional", []string{"whenToApply", "contextualUse"}},
	{Identity, "", []string{"professionalRole", "communityBelonging", "selfEfficacy", "dispositions"}},
	{Values, "", []string{"coreValues", "epistemicValues", "stakeholderValues"}},
	{Ethics, "", []string{"deontological", "consequentialist", "virtue"}},
}

// Seed returns the fixed starting ratings: every known leaf at MinScore.
func Seed() Ratings {
	r := Ratings{scores: map[Path]int{}}
	for _, g := range seedGroups {
		for _, leaf := range g.leaves {
			p := JoinPath(g.domain, leaf)
			if g.sub != "" {
				p = JoinPath(g.domain, g.sub, leaf)
			}
			r.order = append(r.order, p)
			r.scores[p] = MinScore
		}
	}
	return r
}

var descriptions = map[string]string{
	"analytical":          "Ability to break down complex problems and identify patterns",
	"decisionMaking":      "Capacity to make informed choices under uncertainty",
	"strategicPlanning":   "Long-term thinking and planning capabilities",
	"criticalEvaluation":  "Assessing the validity and relevance of information",
	"communication":       "Effective verbal and written communication",
	"collaboration":       "Working effectively with others toward common goals",
	"empathy":             "Understanding and sharing the feelings of others",
	"negotiation":         "Reaching agreements through discussion and compromise",
	"precision":           "Executing tasks with exactness and accuracy",
	"proceduralExecution": "Following established procedures consistently",
	"coordination":        "Synchronizing movements or actions effectively",
	"reflection":          "Thinking about one's own thinking and learning processes",
	"adaptability":        "Adjusting to new conditions and challenges",
	"selfRegulation":      "Managing one's own emotions, thoughts, and behaviors",
	"conceptual":          "Grasp of theories, principles, and models",
	"factual":             "Specific details, terminology, and information",
	"theoretical":         "Understanding of abstract principles and explanatory frameworks",
	"methods":             "Knowing how to perform specific tasks",
	"processes":           "Understanding sequences of actions to achieve a goal",
	"techniques":          "Skillful ways of carrying out a particular task",
	"whenToApply":         "Knowing when and why to use certain knowledge or skills",
	"contextualUse":       "Adapting knowledge application to specific situations",
	"professionalRole":    "Embracing characteristic professional roles and behaviors",
	"communityBelonging":  "Sense of belonging within the professional community",
	"selfEfficacy":        "Confidence in professional capabilities",
	"dispositions":        "Inherent qualities of mind and character (e.g., skepticism, curiosity)",
	"coreValues":          "Fundamental values like patient well-being, innovation, excellence",
	"epistemicValues":     "Values related to knowledge and evidence (e.g., empirical evidence, user-centricity)",
	"stakeholderValues":   "Considering the values and needs of all relevant stakeholders",
	"deontological":       "Adherence to professional codes and duty-based ethics",
	"consequentialist":    "Considering outcomes and consequences in decision-making",
	"virtue":              "Character traits like integrity, responsibility, and honesty",
}

// Describe returns the description of the leaf at p, or "" if unknown.
func Describe(p Path) string {
	return descriptions[p.Leaf()]
}

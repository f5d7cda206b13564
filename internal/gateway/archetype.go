package gateway

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"sort"

	"github.com/abhisek/prism/internal/skive"
	"github.com/abhisek/prism/internal/taxonomy"
)

// ArchetypeRequest is the body of /api/archetype.
type ArchetypeRequest struct {
	ProfileID  int64         `json:"profile_id,omitempty"`
	Profession taxonomy.ID   `json:"profession"`
	Department taxonomy.ID   `json:"department"`
	Role       taxonomy.ID   `json:"role"`
	Skive      skive.Ratings `json:"skive"`
}

// ArchetypeInfo names the role archetype.
type ArchetypeInfo struct {
	Name       string `json:"name"`
	Narrative  string `json:"narrative"`
	GlobalName string `json:"globalName"`
}

// ProfessionInfo is the career card shown next to the archetype.
type ProfessionInfo struct {
	Title          string   `json:"title"`
	Summary        string   `json:"summary"`
	YearsToRole    int      `json:"yearsToRole"`
	Qualifications []string `json:"qualifications"`
	Certifications []string `json:"certifications"`
	SalaryRange    string   `json:"salaryRange"`
	Perks          []string `json:"perks"`
	Highs          string   `json:"highs"`
	Lows           string   `json:"lows"`
	VideoURL       string   `json:"videoUrl"`
	CareerPathway  string   `json:"careerPathway"`
}

// ArchetypeResult is the response of /api/archetype.
type ArchetypeResult struct {
	RadarData      map[string]RadarSeries `json:"radarData"`
	Archetype      ArchetypeInfo          `json:"archetype"`
	ProfessionInfo ProfessionInfo         `json:"professionInfo"`
}

// RadarSeries is one chart of the archetype view. The API sends either
// {"label": value} objects or [{"label","value"}] arrays.
type RadarSeries skive.Series

func (s *RadarSeries) UnmarshalJSON(data []byte) error {
	var arr []struct {
		Label   string  `json:"label"`
		Subject string  `json:"subject"`
		Value   float64 `json:"value"`
	}
	if err := json.Unmarshal(data, &arr); err == nil {
		out := make(RadarSeries, 0, len(arr))
		for _, p := range arr {
			label := p.Label
			if label == "" {
				label = p.Subject
			}
			out = append(out, skive.Point{Key: label, Label: skive.Title(label), Value: int(math.Round(p.Value))})
		}
		*s = out
		return nil
	}

	var obj map[string]float64
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make(RadarSeries, 0, len(keys))
	for _, k := range keys {
		out = append(out, skive.Point{Key: k, Label: skive.Title(k), Value: int(math.Round(obj[k]))})
	}
	*s = out
	return nil
}

// Archetype requests the archetype analysis for a rating set.
func (c *Client) Archetype(ctx context.Context, req ArchetypeRequest) (ArchetypeResult, error) {
	var out ArchetypeResult
	err := c.do(ctx, http.MethodPost, "/api/archetype", nil, req, &out)
	return out, err
}

package skive

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed_Shape(t *testing.T) {
	r := Seed()
	assert.Equal(t, 32, r.Len())
	assert.Len(t, r.DomainPaths(Skills), 14)
	assert.Len(t, r.DomainPaths(Knowledge), 8)
	assert.Len(t, r.DomainPaths(Identity), 4)
	assert.Len(t, r.DomainPaths(Values), 3)
	assert.Len(t, r.DomainPaths(Ethics), 3)

	for _, p := range r.Paths() {
		v, ok := r.Get(p)
		require.True(t, ok)
		assert.Equal(t, MinScore, v, p)
		assert.NotEmpty(t, Describe(p), p)
	}
}

func TestParsePath(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"skills.cognitive.analytical", false},
		{"identity.selfEfficacy", false},
		{"skills.analytical", true},
		{"identity.a.b", true},
		{"hobbies.chess", true},
		{"knowledge..factual", true},
	}
	for _, tt := range tests {
		_, err := ParsePath(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidPath, tt.in)
		} else {
			assert.NoError(t, err, tt.in)
		}
	}
}

func TestPath_Parts(t *testing.T) {
	p := Path("skills.cognitive.decisionMaking")
	assert.Equal(t, Skills, p.Domain())
	assert.Equal(t, "cognitive", p.Sub())
	assert.Equal(t, "decisionMaking", p.Leaf())
	assert.Equal(t, "skills.cognitive", p.Group())

	flat := Path("ethics.virtue")
	assert.Equal(t, "", flat.Sub())
	assert.Equal(t, "ethics", flat.Group())
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Decision Making", Title("decisionMaking"))
	assert.Equal(t, "When To Apply", Title("whenToApply"))
	assert.Equal(t, "Skills Cognitive", Title("skills.cognitive"))
	assert.Equal(t, "Core Values", Title("core_values"))
	assert.Equal(t, "Virtue", Title("virtue"))
}

func TestSet_CopyOnWrite(t *testing.T) {
	before := Seed()
	p := Path("skills.cognitive.analytical")

	after, err := before.Set(p, 7)
	require.NoError(t, err)

	old, _ := before.Get(p)
	assert.Equal(t, 1, old, "original must not change")
	v, _ := after.Get(p)
	assert.Equal(t, 7, v)
	assert.Equal(t, before.Paths(), after.Paths())
}

func TestSet_NewPathDoesNotLeakIntoSiblings(t *testing.T) {
	base := Seed()
	a, err := base.Set("ethics.care", 5)
	require.NoError(t, err)
	b, err := base.Set("ethics.justice", 6)
	require.NoError(t, err)

	_, ok := b.Get("ethics.care")
	assert.False(t, ok)
	_, ok = a.Get("ethics.justice")
	assert.False(t, ok)
	assert.Equal(t, base.Len()+1, a.Len())
	assert.Equal(t, Path("ethics.care"), a.Paths()[a.Len()-1])
	assert.Equal(t, Path("ethics.justice"), b.Paths()[b.Len()-1])
}

func TestSet_Rejects(t *testing.T) {
	r := Seed()
	_, err := r.Set("skills.cognitive.analytical", 0)
	assert.ErrorIs(t, err, ErrScoreRange)
	_, err = r.Set("skills.cognitive.analytical", 11)
	assert.ErrorIs(t, err, ErrScoreRange)
	_, err = r.Set("skills.analytical", 5)
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestBackfill(t *testing.T) {
	loaded := NewRatings()
	loaded, _ = loaded.Set("values.coreValues", 9)
	loaded, _ = loaded.Set("values.curiosity", 4)

	full := loaded.Backfill(Seed())
	assert.Equal(t, Seed().Len()+1, full.Len())
	v, _ := full.Get("values.coreValues")
	assert.Equal(t, 9, v)
	v, _ = full.Get("skills.cognitive.analytical")
	assert.Equal(t, 1, v)
	assert.Equal(t, Path("values.curiosity"), full.Paths()[full.Len()-1])
}

func TestJSON_PreservesOrderAndShape(t *testing.T) {
	r := NewRatings()
	r, _ = r.Set("skills.interpersonal.empathy", 3)
	r, _ = r.Set("skills.cognitive.analytical", 7)
	r, _ = r.Set("identity.selfEfficacy", 5)

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t,
		`{"skills":{"interpersonal":{"empathy":3},"cognitive":{"analytical":7}},"identity":{"selfEfficacy":5}}`,
		string(b))

	var back Ratings
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, r.Paths(), back.Paths())
	assert.True(t, r.Equal(back))
}

func TestJSON_DecodeClampsAndSkipsUnknown(t *testing.T) {
	in := `{"ethics":{"virtue":12.4,"deontological":0},"hobbies":{"chess":3},"knowledge":{"procedural":{"methods":"6"}}}`
	var r Ratings
	require.NoError(t, json.Unmarshal([]byte(in), &r))

	v, _ := r.Get("ethics.virtue")
	assert.Equal(t, 10, v)
	v, _ = r.Get("ethics.deontological")
	assert.Equal(t, 1, v)
	v, _ = r.Get("knowledge.procedural.methods")
	assert.Equal(t, 6, v)
	assert.Equal(t, 3, r.Len())
}

func TestJSON_DecodeClampsExtremeNumbers(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"1e300", 10},
		{"-1e300", 1},
		{"1e400", 10},
		{"-1e400", 1},
		{"9223372036854775808", 10},
		{"5.5", 6},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var r Ratings
			require.NoError(t, json.Unmarshal([]byte(`{"values":{"coreValues":`+tt.raw+`}}`), &r))
			v, ok := r.Get("values.coreValues")
			require.True(t, ok)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestJSON_NullLeafIsBackfilledFromSeed(t *testing.T) {
	var r Ratings
	require.NoError(t, json.Unmarshal([]byte(`{"ethics":{"virtue":null,"deontological":7}}`), &r))

	_, ok := r.Get("ethics.virtue")
	assert.False(t, ok)
	assert.Equal(t, 1, r.Len())

	full := r.Backfill(Seed())
	v, ok := full.Get("ethics.virtue")
	require.True(t, ok)
	assert.Equal(t, MinScore, v)
	v, _ = full.Get("ethics.deontological")
	assert.Equal(t, 7, v)
}

func TestJSON_Null(t *testing.T) {
	var r Ratings
	require.NoError(t, json.Unmarshal([]byte(`null`), &r))
	assert.Equal(t, 0, r.Len())
}

func TestJSON_RejectsMalformed(t *testing.T) {
	var r Ratings
	assert.Error(t, json.Unmarshal([]byte(`{"skills":{"cognitive":5}}`), &r))
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &r))
}

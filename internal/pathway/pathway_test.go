package pathway

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/skillnav/internal/llm"
)

func validPathwayJSON() json.RawMessage {
	return json.RawMessage(`{
		"pathwayTitle": "Personalized Pathway to become a Solar Panel Technician",
		"summary": "Start with electrical basics, then solar PV installation.",
		"steps": [
			{"stage": "Foundational Courses", "title": "Basic Electrician", "description": "Wiring and safety.", "duration": "3 months", "nsqfLevel": "Level 3", "provider": "ITI", "suggestedVideo": "basic electrical wiring"},
			{"stage": "On-the-Job Training", "title": "Solar Installer Apprenticeship", "description": "Rooftop installs.", "duration": "6 months", "nsqfLevel": "Level 4", "provider": "", "suggestedVideo": ""}
		],
		"marketInsights": {
			"jobDemand": "High",
			"salaryRange": "₹2-3.5 LPA",
			"topHiringCompanies": ["Tata Power Solar"],
			"keySkillsInDemand": ["PV installation"]
		},
		"careerGuidance": {
			"companyAnalyses": [{"name": "Tata Power Solar", "sector": "Renewable Energy"}],
			"recommendedCompany": {
				"name": "Tata Power Solar",
				"rationale": "Large installer network.",
				"jobStrategy": {"skillsToHighlight": ["Wiring"], "interviewPrep": ["Safety codes"], "networkingTips": ["Join SCGJ events"]}
			}
		}
	}`)
}

func TestGenerate(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validPathwayJSON()})
	g := NewGenerator(mock, DefaultConfig())

	profile := DefaultProfile("hi")
	profile.CareerAspiration = "Solar Panel Technician"
	profile.PriorSkills = []string{"Electrical Wiring"}

	p, err := g.Generate(t.Context(), profile)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if p.Title != "Personalized Pathway to become a Solar Panel Technician" {
		t.Errorf("title = %q", p.Title)
	}
	if len(p.Steps) != 2 || p.Steps[1].Stage != StageOnTheJob {
		t.Errorf("steps = %+v", p.Steps)
	}
	if p.CareerGuidance == nil || p.CareerGuidance.RecommendedCompany.Name != "Tata Power Solar" {
		t.Errorf("career guidance = %+v", p.CareerGuidance)
	}
	if p.ID != "" || p.CreatedAt != "" {
		t.Error("generator must not assign identity")
	}

	if mock.CallCount() != 1 {
		t.Fatalf("calls = %d, want 1", mock.CallCount())
	}
	req := mock.Calls[0]
	if req.Schema != Schema {
		t.Error("request must carry the pathway schema")
	}
	msg := req.Messages[0].Content
	for _, want := range []string{"Solar Panel Technician", "Electrical Wiring", "Hindi"} {
		if !strings.Contains(msg, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestGenerateRejectsMalformedResponses(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", `Sure! Here is your pathway`},
		{"no steps", `{"pathwayTitle": "X", "summary": "", "steps": [], "marketInsights": {}}`},
		{"unknown stage", `{"pathwayTitle": "X", "steps": [{"stage": "Bootcamp", "title": "T"}], "marketInsights": {}}`},
		{"missing title", `{"pathwayTitle": "", "steps": [{"stage": "Core Skills", "title": "T"}], "marketInsights": {}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(tt.content)})
			_, err := NewGenerator(mock, DefaultConfig()).Generate(t.Context(), DefaultProfile("en"))

			var inv *llm.ErrInvalidResponse
			if !errors.As(err, &inv) {
				t.Fatalf("err = %v, want ErrInvalidResponse", err)
			}
		})
	}
}

func TestGenerateProviderFailure(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrRateLimit{Err: errors.New("429")}})
	_, err := NewGenerator(mock, DefaultConfig()).Generate(t.Context(), DefaultProfile("en"))

	var rl *llm.ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("err = %v, want wrapped ErrRateLimit", err)
	}
}

func TestGenerateWithoutProvider(t *testing.T) {
	_, err := NewGenerator(nil, DefaultConfig()).Generate(t.Context(), DefaultProfile("en"))
	var unavail *llm.ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("err = %v, want ErrProviderUnavailable", err)
	}
}

func TestStamp(t *testing.T) {
	var a, b Pathway
	now := time.Date(2025, 3, 4, 5, 6, 7, 8_000_000, time.UTC)
	Stamp(&a, now)
	Stamp(&b, now)

	if !strings.HasPrefix(a.ID, IDPrefix) {
		t.Errorf("id = %q, want %s prefix", a.ID, IDPrefix)
	}
	if a.ID == b.ID {
		t.Error("ids must be unique")
	}
	if a.CreatedAt != "2025-03-04T05:06:07.008Z" {
		t.Errorf("createdAt = %q", a.CreatedAt)
	}
	if !a.Created().Equal(now) {
		t.Errorf("Created() = %v, want %v", a.Created(), now)
	}
}

func TestJSONFieldNames(t *testing.T) {
	p := Pathway{ID: "path_1", Title: "T", Steps: []Step{{Stage: StageCoreSkills, NSQFLevel: "4"}}}
	raw, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	s := string(raw)
	for _, want := range []string{`"pathwayTitle":"T"`, `"nsqfLevel":"4"`, `"marketInsights"`} {
		if !strings.Contains(s, want) {
			t.Errorf("json missing %s: %s", want, s)
		}
	}
	for _, absent := range []string{"careerGuidance", "provider", "suggestedVideo"} {
		if strings.Contains(s, absent) {
			t.Errorf("optional field %s should be omitted: %s", absent, s)
		}
	}
}

func TestMarkdown(t *testing.T) {
	var p Pathway
	if err := json.Unmarshal(validPathwayJSON(), &p); err != nil {
		t.Fatal(err)
	}
	tr := func(key string, args ...string) string {
		if len(args) == 2 {
			return key + ":" + args[1]
		}
		return key
	}

	md := Markdown(&p, tr)
	for _, want := range []string{
		"# Personalized Pathway to become a Solar Panel Technician",
		"### 1. Basic Electrician",
		"pathwayDisplay.nsqfLevel Level 3",
		"careerGuidance.roadmap:Tata Power Solar",
		"search_query=basic+electrical+wiring",
		"search_query=Solar+Installer+Apprenticeship",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Your Pathway to becoming a Drone Operator", "your-pathway-to-becoming-a-drone-operator.md"},
		{"  AR/VR -- Developer!! ", "ar-vr-developer.md"},
		{"सौर तकनीशियन", "pathway.md"},
	}
	for _, tt := range tests {
		if got := FileName(&Pathway{Title: tt.title}); got != tt.want {
			t.Errorf("FileName(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

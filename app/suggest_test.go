package app

import (
	"testing"

	"example/thinking-assistant/app/models"
)

func titlesOf(templates []ideaTemplate) []string {
	var out []string
	for _, tmpl := range templates {
		out = append(out, tmpl.Title)
	}
	return out
}

func TestMatchTemplates(t *testing.T) {
	cases := []struct {
		name     string
		category models.Category
		answers  string
		want     []string
	}{
		{
			"business ai keyword",
			models.CategoryBusiness,
			"i want to build a chatbot for dentists",
			[]string{"Niche AI Copilot", "Service-to-Product Transition"},
		},
		{
			"business marketplace keyword",
			models.CategoryBusiness,
			"a platform to connect tutors and students",
			[]string{"Curated Micro-Marketplace", "Service-to-Product Transition"},
		},
		{
			"business no keywords",
			models.CategoryBusiness,
			"a bakery for my neighborhood",
			[]string{"Service-to-Product Transition"},
		},
		{
			"content video keyword",
			models.CategoryContent,
			"short videos on youtube",
			[]string{"30-Day Video Sprint", "Theme + Pillars System"},
		},
		{
			"content both rules",
			models.CategoryContent,
			"a newsletter plus tiktok shorts",
			[]string{"30-Day Video Sprint", "Opinionated Weekly Newsletter", "Theme + Pillars System"},
		},
		{
			"general default always first",
			models.CategoryGeneral,
			"my apartment is too small",
			[]string{"Obstacle Breakdown"},
		},
		{
			"general time keyword after default",
			models.CategoryGeneral,
			"i can never focus on my schedule",
			[]string{"Obstacle Breakdown", "Time-Boxed Progress"},
		},
		{
			"empty answers still yield default",
			models.CategoryBusiness,
			"",
			[]string{"Service-to-Product Transition"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := titlesOf(matchTemplates(tc.category, tc.answers))
			if len(got) != len(tc.want) {
				t.Fatalf("matchTemplates = %v, want %v", got, tc.want)
			}
			for i := range tc.want {
				if got[i] != tc.want[i] {
					t.Fatalf("template %d = %q, want %q (full: %v)", i, got[i], tc.want[i], got)
				}
			}
		})
	}
}

func TestBusinessAIKeywordIsSubstringMatch(t *testing.T) {
	// "ai" matches as a plain substring, not a token: "maintain" contains it.
	got := titlesOf(matchTemplates(models.CategoryBusiness, "hard to maintain my garden"))
	if len(got) != 2 || got[0] != "Niche AI Copilot" {
		t.Fatalf("substring containment should fire the ai rule, got %v", got)
	}
}

func TestTemplateShapes(t *testing.T) {
	for category, rules := range suggestionRules {
		defaults := 0
		for _, rule := range rules {
			if len(rule.keywords) == 0 {
				defaults++
			}
			tmpl := rule.template
			if tmpl.Title == "" || tmpl.Summary == "" {
				t.Fatalf("%s rule %q missing title or summary", category, tmpl.Title)
			}
			if len(tmpl.Steps) < 3 || len(tmpl.Steps) > 4 {
				t.Fatalf("%s rule %q has %d steps, want 3-4", category, tmpl.Title, len(tmpl.Steps))
			}
			if len(tmpl.Tags) == 0 {
				t.Fatalf("%s rule %q has no tags", category, tmpl.Title)
			}
		}
		if defaults != 1 {
			t.Fatalf("%s has %d unconditional rules, want exactly 1", category, defaults)
		}
	}
}

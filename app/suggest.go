package app

import (
	"context"
	"strings"
	"time"

	"example/thinking-assistant/app/models"
)

type ideaTemplate struct {
	Title   string
	Summary string
	Steps   []string
	Tags    []string
}

// suggestionRule fires when any keyword appears as a substring of the
// case-folded answer text. An empty keyword list always fires.
type suggestionRule struct {
	keywords []string
	template ideaTemplate
}

// Rules are evaluated in declaration order and every firing rule emits an
// idea. Business and content put their unconditional rule last; general puts
// it first.
var suggestionRules = map[models.Category][]suggestionRule{
	models.CategoryBusiness: {
		{
			keywords: []string{"ai", "machine learning", "chatbot", "agent"},
			template: ideaTemplate{
				Title:   "Niche AI Copilot",
				Summary: "A focused AI assistant that automates a painful workflow for a specific role.",
				Steps: []string{
					"Interview 5 target users to validate workflows",
					"Map the top 3 tasks to automate",
					"Build a narrow MVP integrating with one tool (e.g., Google Docs)",
					"Launch a waitlist and onboard 5 pilots",
				},
				Tags: []string{"ai", "b2b", "automation"},
			},
		},
		{
			keywords: []string{"marketplace", "platform", "connect"},
			template: ideaTemplate{
				Title:   "Curated Micro-Marketplace",
				Summary: "A small, high-trust marketplace connecting a niche buyer and seller group.",
				Steps: []string{
					"Define the niche and curation criteria",
					"Bootstrap supply with personal outreach",
					"Ship a basic listing + messaging MVP",
					"Run a limited beta with manual curation",
				},
				Tags: []string{"marketplace", "community"},
			},
		},
		{
			template: ideaTemplate{
				Title:   "Service-to-Product Transition",
				Summary: "Start with a hands-on service to learn deeply, then productize repeating parts.",
				Steps: []string{
					"List top 3 outcomes you can deliver in 2 weeks",
					"Sell 1-2 projects to validate demand",
					"Document repeatable steps and templatize",
					"Package into a lightweight productized service",
				},
				Tags: []string{"services", "lean-startup"},
			},
		},
	},
	models.CategoryContent: {
		{
			keywords: []string{"video", "youtube", "tiktok", "shorts"},
			template: ideaTemplate{
				Title:   "30-Day Video Sprint",
				Summary: "Publish one short video daily to find your voice and audience quickly.",
				Steps: []string{
					"Pick one theme and 3 content pillars",
					"Batch-script 7 shorts and record in one session",
					"Post daily at the same time for 30 days",
					"Analyze 3 best performers and double down",
				},
				Tags: []string{"video", "growth"},
			},
		},
		{
			keywords: []string{"newsletter", "writing", "blog"},
			template: ideaTemplate{
				Title:   "Opinionated Weekly Newsletter",
				Summary: "A tight weekly email with a strong POV and one actionable takeaway.",
				Steps: []string{
					"Define a recurring structure (hook, insight, action)",
					"Collect 20 seed ideas from your experiences",
					"Schedule 2-hour writing blocks weekly",
					"Add 1 CTA to grow subscribers organically",
				},
				Tags: []string{"newsletter", "writing"},
			},
		},
		{
			template: ideaTemplate{
				Title:   "Theme + Pillars System",
				Summary: "Clarify your content theme and 3 pillars, then plan 12 pieces across formats.",
				Steps: []string{
					"Write your one-sentence positioning",
					"Choose 3 pillars that ladder up to your theme",
					"Create 12 titles (4 per pillar)",
					"Draft a 4-week publishing calendar",
				},
				Tags: []string{"strategy", "planning"},
			},
		},
	},
	models.CategoryGeneral: {
		{
			template: ideaTemplate{
				Title:   "Obstacle Breakdown",
				Summary: "Break the challenge into smaller parts and pick one 30-minute task.",
				Steps: []string{
					"List the 3 biggest blockers",
					"Brainstorm 2 ways around each",
					"Pick the easiest next step",
					"Schedule it on your calendar",
				},
				Tags: []string{"problem-solving", "productivity"},
			},
		},
		{
			keywords: []string{"time", "schedule", "focus"},
			template: ideaTemplate{
				Title:   "Time-Boxed Progress",
				Summary: "Use fixed time boxes to create momentum and reduce overwhelm.",
				Steps: []string{
					"Define a clear 7-day outcome",
					"Set a daily 25-minute focus block",
					"Track progress with a visible checklist",
					"Celebrate completion and reflect",
				},
				Tags: []string{"habits", "execution"},
			},
		},
	},
}

func (r suggestionRule) fires(answers string) bool {
	if len(r.keywords) == 0 {
		return true
	}
	for _, k := range r.keywords {
		if strings.Contains(answers, k) {
			return true
		}
	}
	return false
}

func matchTemplates(category models.Category, answers string) []ideaTemplate {
	var out []ideaTemplate
	for _, rule := range suggestionRules[category] {
		if rule.fires(answers) {
			out = append(out, rule.template)
		}
	}
	return out
}

// generateSuggestions matches the session's rules against the concatenated
// answer text and persists one Idea per firing template. Each call appends a
// fresh batch; only that batch is returned.
func generateSuggestions(ctx context.Context, sess models.Session) ([]models.Idea, error) {
	messages, err := store.MessagesBySessionID(ctx, sess.ID)
	if err != nil {
		return nil, err
	}

	parts := make([]string, 0, len(messages))
	for _, m := range messages {
		parts = append(parts, m.Answer)
	}
	answers := strings.ToLower(strings.Join(parts, " "))

	var ideas []models.Idea
	for _, tmpl := range matchTemplates(sess.Category, answers) {
		idea := models.Idea{
			SessionID: sess.ID,
			Title:     tmpl.Title,
			Summary:   tmpl.Summary,
			Steps:     tmpl.Steps,
			Tags:      tmpl.Tags,
			Category:  sess.Category,
			CreatedAt: time.Now().UTC(),
		}
		id, err := store.InsertIdea(ctx, idea)
		if err != nil {
			return nil, err
		}
		idea.ID = id
		ideas = append(ideas, idea)
	}

	return ideas, nil
}

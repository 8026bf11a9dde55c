package app

import "example/thinking-assistant/app/models"

// questionBank is process-wide static configuration: an ordered, immutable
// list of prompts per category.
var questionBank = map[models.Category][]string{
	models.CategoryBusiness: {
		"What problem do you want to solve?",
		"Who exactly has this problem (your target user)?",
		"How are they solving it today?",
		"What unique strengths or resources do you have?",
		"What constraints do you have (time, budget, skills)?",
	},
	models.CategoryContent: {
		"What topic or niche are you most excited about?",
		"Who is your ideal audience?",
		"What formats do you enjoy creating (video, writing, audio, etc.)?",
		"How often can you realistically publish?",
		"What platforms do you want to prioritize?",
	},
	models.CategoryGeneral: {
		"Describe the challenge in one sentence.",
		"What would a great outcome look like?",
		"What is the biggest obstacle right now?",
		"What resources or help do you have access to?",
		"What is the next smallest step you could take?",
	},
}

func questionsFor(category models.Category) ([]string, bool) {
	qs, ok := questionBank[category]
	return qs, ok
}

package config

import "os"

// ModelIDs maps user-facing model names to OpenRouter model identifiers.
// When the Anthropic provider is selected, the vendor prefix is stripped
// and only anthropic/* entries are reachable.
var ModelIDs = map[string]string{
	"Sonnet 4.5":       "anthropic/claude-sonnet-4.5",
	"Opus 4.1":         "anthropic/claude-opus-4.1",
	"Haiku 4.5":        "anthropic/claude-haiku-4.5",
	"GPT 4.5 Thinking": "openai/gpt-4.5-thinking",
	"GPT 4.5":          "openai/gpt-4.5",
	"GPT 4.1":          "openai/gpt-4.1",
	"GPT 4o Mini":      "openai/gpt-4o-mini",
	"Gemini 2.5 Pro":   "google/gemini-2.5-pro",
	"Gemini 2.5 Flash": "google/gemini-2.5-flash",
}

// ModelNames lists display names in a stable order for API responses
// and the smoke test.
var ModelNames = []string{
	"Sonnet 4.5",
	"Opus 4.1",
	"Haiku 4.5",
	"GPT 4.5 Thinking",
	"GPT 4.5",
	"GPT 4.1",
	"GPT 4o Mini",
	"Gemini 2.5 Pro",
	"Gemini 2.5 Flash",
}

// Topics is the closed set of legal subject areas questions are generated for.
var Topics = []string{
	"Criminal Procedure",
	"Evidence",
	"Professional Ethics",
	"Sentencing",
	"Bail & Pretrial",
	"Constitutional Criminal Law",
}

func IsValidTopic(topic string) bool {
	for _, t := range Topics {
		if t == topic {
			return true
		}
	}
	return false
}

func IsValidModel(name string) bool {
	_, ok := ModelIDs[name]
	return ok
}

// Getenv returns the environment value for key, or fallback when unset.
func Getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// QuestionsFile returns the path of the approved-question store.
func QuestionsFile() string {
	return Getenv("QUESTIONS_FILE", "questions.json")
}

// ResultsFile returns the path of the evaluation-result store.
func ResultsFile() string {
	return Getenv("RESULTS_FILE", "eval_results.json")
}

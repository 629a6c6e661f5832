package generator

import (
	"fmt"
	"strings"

	"github.com/legal-bench/backend/internal/models"
)

// GenerationSystemPrompt frames every generation call.
const GenerationSystemPrompt = "You are an expert in criminal law and legal education. Generate high-quality legal exam questions."

const generationRequirements = `Generate a legal multiple-choice question on the topic of %s.

Requirements:
- Create a moderately difficult to difficult question (no easy questions)
- Focus on federal law and broadly applicable legal principles relevant to public defenders
- Provide exactly 4 answer options labeled A, B, C, D
- Make the wrong answers adversarial - they should be plausible and require legal reasoning to rule out
- One answer must be clearly correct
- Include a detailed reasoning trace explaining why the correct answer is right and why the wrong answers are incorrect

Output format (valid JSON only):
{
    "question": "The question text here",
    "options": ["A) First option", "B) Second option", "C) Third option", "D) Fourth option"],
    "correct_answer": "C",
    "reasoning": "Detailed explanation of why C is correct and why A, B, D are incorrect"
}

Respond only with valid JSON, no additional text.`

// BuildGenerationPrompt returns the user prompt for generating one question.
// With a reference set present, a reference block is prepended instructing the
// model to match the style, difficulty, length and structure of the examples.
func BuildGenerationPrompt(topic string, ref *models.ReferenceSet) string {
	base := fmt.Sprintf(generationRequirements, topic)
	if ref == nil || len(ref.Questions) == 0 {
		return base
	}

	var b strings.Builder
	b.WriteString("\n\nREFERENCE QUESTIONS TO MATCH:\n")
	b.WriteString("Generate questions matching the style, difficulty, length, and structure of these reference questions:\n\n")

	for i, rq := range ref.Questions {
		fmt.Fprintf(&b, "Reference Question %d:\n", i+1)
		fmt.Fprintf(&b, "Question: %s\n", rq.Question)
		fmt.Fprintf(&b, "Options: %s\n", strings.Join(rq.Options, ", "))
		fmt.Fprintf(&b, "Correct Answer: %s\n", rq.CorrectAnswer)
		if rq.Reasoning != "" {
			fmt.Fprintf(&b, "Reasoning: %s\n", rq.Reasoning)
		}
		b.WriteString("\n")
	}

	if ref.StyleNotes != "" {
		fmt.Fprintf(&b, "\nStyle Characteristics:\n%s\n", ref.StyleNotes)
	}
	if ref.DifficultyNotes != "" {
		fmt.Fprintf(&b, "\nDifficulty Level: %s\n", ref.DifficultyNotes)
	}

	b.WriteString("\n")
	b.WriteString(base)
	return b.String()
}

const evaluationTemplate = `Answer this multiple choice question.

CRITICAL INSTRUCTION: You MUST respond with EXACTLY ONE LETTER: A, B, C, or D. Nothing else.

Question: %s

%s

Example CORRECT response: C
Example INCORRECT response: The answer is C because...

Your answer (single letter only):`

// BuildEvaluationPrompt returns the single-letter-answer prompt for one question.
func BuildEvaluationPrompt(question string, options []string) string {
	return fmt.Sprintf(evaluationTemplate, question, strings.Join(options, "\n"))
}

const extractionTemplate = `You are an expert at analyzing and extracting multiple-choice questions from unstructured text.

Analyze the following text and extract ALL multiple-choice questions (MCQs) you find. For each question:
1. Extract the question text
2. Extract all answer options (typically A, B, C, D)
3. Identify the correct answer (if provided)
4. If the correct answer is NOT explicitly stated, mark it as "unknown"
5. Generate a detailed reasoning trace explaining why the correct answer is right (if known) or analyze which answer is most likely correct based on legal principles

Also provide:
- Total count of MCQs found
- Style analysis (question length, complexity, formatting patterns)
- Difficulty assessment (easy, moderate, difficult)
- Topic identification for each question

IMPORTANT: If NO multiple-choice questions are found in the text, return an error in the JSON.

Output format (valid JSON only):
{
    "count": 3,
    "questions": [
        {
            "question": "Question text here",
            "options": ["A) First option", "B) Second option", "C) Third option", "D) Fourth option"],
            "correct_answer": "C",
            "reasoning": "Detailed explanation...",
            "topic": "Criminal Procedure",
            "has_answer": true
        }
    ],
    "style_notes": "Questions are detailed, scenario-based, approximately 2-3 sentences long...",
    "difficulty_notes": "Moderate to difficult, requires application of legal principles...",
    "error": null
}

If no MCQs found:
{
    "count": 0,
    "questions": [],
    "error": "No multiple-choice questions detected in the provided text."
}

Text to analyze:
%s

Respond only with valid JSON, no additional text.`

// BuildExtractionPrompt returns the reference-MCQ extraction prompt.
func BuildExtractionPrompt(referenceText string) string {
	return fmt.Sprintf(extractionTemplate, referenceText)
}

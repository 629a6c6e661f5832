package models

import "fmt"

// ReferenceQuestion is one MCQ extracted from pasted reference material.
// HasAnswer is false when the source text never stated the correct answer;
// the correction step fills CorrectAnswer in and flips HasAnswer.
type ReferenceQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Reasoning     string   `json:"reasoning,omitempty"`
	Topic         string   `json:"topic,omitempty"`
	HasAnswer     bool     `json:"has_answer"`
}

// ReferenceSet is the result of analyzing pasted text for reference MCQs.
// Count == len(Questions); Count == 0 implies Error is set.
type ReferenceSet struct {
	Count           int                 `json:"count"`
	Questions       []ReferenceQuestion `json:"questions"`
	StyleNotes      string              `json:"style_notes,omitempty"`
	DifficultyNotes string              `json:"difficulty_notes,omitempty"`
	Error           string              `json:"error,omitempty"`
}

// Clone returns a copy whose Questions can be read while Correct mutates the
// original. Option slices are shared; nothing writes them in place.
func (r *ReferenceSet) Clone() *ReferenceSet {
	if r == nil {
		return nil
	}
	c := *r
	c.Questions = append([]ReferenceQuestion(nil), r.Questions...)
	return &c
}

// Incomplete returns the indexes of questions with no stated correct answer.
func (r *ReferenceSet) Incomplete() []int {
	var idxs []int
	for i := range r.Questions {
		if !r.Questions[i].HasAnswer {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

// Correct writes a user-supplied answer onto the question at index i.
func (r *ReferenceSet) Correct(i int, letter string) error {
	if i < 0 || i >= len(r.Questions) {
		return fmt.Errorf("reference question index %d out of range", i)
	}
	if !IsAnswerLetter(letter) {
		return fmt.Errorf("invalid answer letter %q", letter)
	}
	r.Questions[i].CorrectAnswer = letter
	r.Questions[i].HasAnswer = true
	return nil
}

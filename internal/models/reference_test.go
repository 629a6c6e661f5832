package models

import "testing"

func TestReferenceSetClone_IsolatedFromCorrections(t *testing.T) {
	set := &ReferenceSet{
		Count: 1,
		Questions: []ReferenceQuestion{
			{
				Question:      "Q?",
				Options:       []string{"A) one", "B) two", "C) three", "D) four"},
				CorrectAnswer: "unknown",
			},
		},
	}

	clone := set.Clone()
	if err := set.Correct(0, "C"); err != nil {
		t.Fatalf("Correct failed: %v", err)
	}

	if clone.Questions[0].CorrectAnswer != "unknown" || clone.Questions[0].HasAnswer {
		t.Errorf("clone mutated by correction on the original: %+v", clone.Questions[0])
	}
	if set.Questions[0].CorrectAnswer != "C" {
		t.Errorf("original missing its correction: %+v", set.Questions[0])
	}
}

func TestReferenceSetClone_Nil(t *testing.T) {
	var set *ReferenceSet
	if set.Clone() != nil {
		t.Error("cloning a nil set should return nil")
	}
}

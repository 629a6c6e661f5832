package provider

import (
	"context"
	"io"
)

// Mock serves canned data for local development without an API key.
type Mock struct{}

func NewMock() *Mock {
	return &Mock{}
}

const mockQuestionJSON = `{
    "question": "[Mock] During a custodial interrogation, a suspect states 'maybe I should talk to a lawyer' and the detectives continue questioning. The suspect then confesses. Under Davis v. United States, is the confession admissible?",
    "options": [
        "A) No, because any mention of counsel requires questioning to cease immediately",
        "B) Yes, because the reference to counsel was ambiguous and did not invoke the right",
        "C) No, because the burden is on the state to clarify ambiguous invocations",
        "D) Yes, but only statements made before the reference to counsel are admissible"
    ],
    "correct_answer": "B",
    "reasoning": "[Mock] Under Davis v. United States, 512 U.S. 452 (1994), officers need only stop questioning after an unambiguous request for counsel. 'Maybe I should talk to a lawyer' was held to be equivocal, so questioning may continue. A overstates the rule, C inverts the burden, and D describes no recognized doctrine."
}`

// Short output budgets mark evaluation calls, which expect a bare letter.
func (m *Mock) Complete(ctx context.Context, model string, messages []Message, opts Options) (string, error) {
	if opts.MaxTokens > 0 && opts.MaxTokens <= 16 {
		return "B", nil
	}
	return mockQuestionJSON, nil
}

func (m *Mock) Stream(ctx context.Context, model string, messages []Message, opts Options) (Stream, error) {
	return &mockStream{text: mockQuestionJSON}, nil
}

type mockStream struct {
	text string
	pos  int
}

func (s *mockStream) Recv() (string, error) {
	if s.pos >= len(s.text) {
		return "", io.EOF
	}
	end := s.pos + 24
	if end > len(s.text) {
		end = len(s.text)
	}
	chunk := s.text[s.pos:end]
	s.pos = end
	return chunk, nil
}

func (s *mockStream) Close() error { return nil }

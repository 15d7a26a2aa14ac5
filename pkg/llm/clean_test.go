package llm

import "testing"

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain JSON unchanged",
			input: `{"bias":"neutral"}`,
			want:  `{"bias":"neutral"}`,
		},
		{
			name:  "strips json fenced block",
			input: "```json\n{\"bias\":\"neutral\"}\n```",
			want:  `{"bias":"neutral"}`,
		},
		{
			name:  "strips plain fenced block",
			input: "```\n{\"bias\":\"neutral\"}\n```",
			want:  `{"bias":"neutral"}`,
		},
		{
			name:  "trims surrounding whitespace",
			input: "  {\"bias\":\"neutral\"}  ",
			want:  `{"bias":"neutral"}`,
		},
		{
			name:  "extracts object from surrounding prose",
			input: "Here is the section:\n{\"bias\":\"neutral\"}\nLet me know if you need more.",
			want:  `{"bias":"neutral"}`,
		},
		{
			name:  "non-JSON text passes through",
			input: "no structured data available",
			want:  "no structured data available",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanJSONResponse(tt.input)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

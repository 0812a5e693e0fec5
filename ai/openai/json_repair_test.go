package openai

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRepairJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "valid json untouched",
			input: `{"merit": "a", "amount": "b"}`,
			want:  `{"merit": "a", "amount": "b"}`,
		},
		{
			name:  "unquoted keys",
			input: `{merit: "a", amount: "b"}`,
			want:  `{"merit": "a", "amount": "b"}`,
		},
		{
			name:  "missing opening quote",
			input: `{"merit": "a", amount": "b"}`,
			want:  `{"merit": "a", "amount": "b"}`,
		},
		{
			name:  "trailing comma in object",
			input: `{"merit": "a",}`,
			want:  `{"merit": "a"}`,
		},
		{
			name:  "trailing comma in array",
			input: `{"industry_tags": ["IT", "製造業", ]}`,
			want:  `{"industry_tags": ["IT", "製造業" ]}`,
		},
		{
			name:  "string contents are not altered",
			input: `{"pitfalls": "{note: x, }"}`,
			want:  `{"pitfalls": "{note: x, }"}`,
		},
		{
			name:  "escaped quotes inside strings",
			input: `{"overview": "a \"quoted\" word", merit: "b"}`,
			want:  `{"overview": "a \"quoted\" word", "merit": "b"}`,
		},
		{
			name:  "bare literals kept",
			input: `{"ok": true, "v": null}`,
			want:  `{"ok": true, "v": null}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := repairJSON(tt.input)
			assert.Equal(t, tt.want, got)
			assert.True(t, json.Valid([]byte(got)), "repaired output should be valid json: %s", got)
		})
	}
}

func TestStripCodeFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripCodeFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFences("```\n{\"a\":1}```"))
	assert.Equal(t, `{"a":1}`, stripCodeFences(`  {"a":1}  `))
}

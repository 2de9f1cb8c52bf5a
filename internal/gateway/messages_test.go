package gateway

import (
	"encoding/json"
	"testing"
)

// decode parses a JSON literal the way the gateway does before extraction.
func decode(t *testing.T, raw string) any {
	t.Helper()
	var payload any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("unmarshal %q: %v", raw, err)
	}
	return payload
}

func TestExtractMessage_ShapePrecedence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "message field wins",
			raw:  `{"message": "Invalid credentials", "error": "other", "detail": "third"}`,
			want: "Invalid credentials",
		},
		{
			name: "error field when message absent",
			raw:  `{"error": "Scan not found", "detail": "ignored"}`,
			want: "Scan not found",
		},
		{
			name: "detail string",
			raw:  `{"detail": "Input text cannot be empty"}`,
			want: "Input text cannot be empty",
		},
		{
			name: "detail list of field errors",
			raw:  `{"detail": [{"loc": ["body", "email"], "msg": "field required"}, {"loc": ["body", "password"], "msg": "too short"}]}`,
			want: "email: field required. password: too short",
		},
		{
			name: "detail list drops root marker",
			raw:  `{"detail": [{"loc": ["__root__"], "msg": "invalid payload"}]}`,
			want: "invalid payload",
		},
		{
			name: "detail list entry without msg",
			raw:  `{"detail": [{"loc": ["body", "text"]}]}`,
			want: "text: Invalid value",
		},
		{
			name: "detail list of strings",
			raw:  `{"detail": ["first", "second"]}`,
			want: "first. second",
		},
		{
			name: "detail object with msg",
			raw:  `{"detail": {"msg": "nested message"}}`,
			want: "nested message",
		},
		{
			name: "detail object with message",
			raw:  `{"detail": {"message": "nested message"}}`,
			want: "nested message",
		},
		{
			name: "detail object without message is dumped",
			raw:  `{"detail": {"code": 42}}`,
			want: `{"code":42}`,
		},
		{
			name: "unrecognized object",
			raw:  `{"status": "failed"}`,
			want: fallbackMessage,
		},
		{
			name: "non-object payload",
			raw:  `["not", "an", "object"]`,
			want: fallbackMessage,
		},
		{
			name: "message present but not a string",
			raw:  `{"message": 42, "error": "fallthrough"}`,
			want: "fallthrough",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := extractMessage(decode(t, tc.raw))
			if got != tc.want {
				t.Errorf("extractMessage() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestJoinDetailList_Empty(t *testing.T) {
	t.Parallel()
	if got := joinDetailList(nil); got != fallbackMessage {
		t.Errorf("joinDetailList(nil) = %q, want fallback", got)
	}
}

package llm

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func makeHistory(n int) []Message {
	msgs := make([]Message, 0, n)
	for i := 0; i < n; i++ {
		role := "user"
		if i%2 == 1 {
			role = "assistant"
		}
		msgs = append(msgs, Message{Role: role, Content: fmt.Sprintf("msg-%d", i)})
	}
	return msgs
}

func TestPrepareContext(t *testing.T) {
	tests := []struct {
		name       string
		total      int
		maxContext int
		wantLen    int
		wantFirst  string
	}{
		{"empty", 0, 2, 0, ""},
		{"short history passes through", 3, 2, 3, "msg-0"},
		{"exactly at window", 5, 2, 5, "msg-0"},
		{"truncates to window", 9, 2, 5, "msg-4"},
		{"single pair window", 7, 1, 3, "msg-4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PrepareContext(makeHistory(tt.total), tt.maxContext)
			assert.Len(t, got, tt.wantLen)
			if tt.wantLen > 0 {
				assert.Equal(t, tt.wantFirst, got[0].Content)
				assert.Equal(t, fmt.Sprintf("msg-%d", tt.total-1), got[tt.wantLen-1].Content)
			}
		})
	}
}

func TestOptionsApply(t *testing.T) {
	var opts Options
	for _, o := range []Option{
		WithTemperature(0.3),
		WithMaxTokens(512),
		WithModel("claude-3-5-sonnet-20241022"),
		WithSystem("be brief"),
	} {
		o(&opts)
	}

	assert.Equal(t, 0.3, opts.Temperature)
	assert.Equal(t, 512, opts.MaxTokens)
	assert.Equal(t, "claude-3-5-sonnet-20241022", opts.Model)
	assert.Equal(t, "be brief", opts.System)
}

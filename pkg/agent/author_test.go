package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"draftdesk/pkg/llm"
)

func TestAuthorPrompts(t *testing.T) {
	var gotSystem, gotUser string
	a, err := NewAuthor(llm.CompleterFunc(func(_ context.Context, system, user string) (string, error) {
		gotSystem, gotUser = system, user
		return "\n\n  Big news!\n\n#go #ai #agents #drafts  \n", nil
	}))
	require.NoError(t, err)

	out, err := a.Write(context.Background(), "Agentic AI Demo", "Announcing my workshop.")
	require.NoError(t, err)
	assert.Equal(t, "Big news!\n\n#go #ai #agents #drafts", out)
	assert.Equal(t, "You are an expert LinkedIn content writer. Write engaging, professional posts with a clear hook, body, and call-to-action. End with 4-7 relevant hashtags.", gotSystem)
	assert.Equal(t, "Create a LinkedIn post.\n\nTitle or context: Agentic AI Demo\nTopic description: Announcing my workshop.\n\nTone: professional, enthusiastic, concise.", gotUser)
}

func TestAuthorTone(t *testing.T) {
	a, err := NewAuthor(llm.CompleterFunc(func(context.Context, string, string) (string, error) { return "", nil }),
		WithTone("casual"))
	require.NoError(t, err)

	_, user, err := a.Prompts("t", "d")
	require.NoError(t, err)
	assert.Contains(t, user, "Tone: casual.")
}

func TestAuthorErrors(t *testing.T) {
	_, err := NewAuthor(nil)
	assert.Error(t, err)

	a, err := NewAuthor(llm.CompleterFunc(func(context.Context, string, string) (string, error) {
		return "", errors.New("timeout")
	}))
	require.NoError(t, err)
	_, err = a.Write(context.Background(), "t", "d")
	assert.ErrorContains(t, err, "timeout")
}

package printing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Request validation happens before any browser work, so these cases run
// without a Chrome binary.
func TestChromedpRenderer_RejectsBadRequests(t *testing.T) {
	r, err := NewChromedpRenderer(&ChromedpConfig{})
	require.NoError(t, err)
	defer r.Close()

	ctx := context.Background()

	_, err = r.Render(ctx, nil)
	assertRenderCode(t, err, ErrCodeInvalidHTML)

	_, err = r.Render(ctx, &RenderRequest{HTML: "   ", PaperWidth: 8.27, PaperHeight: 11.69})
	assertRenderCode(t, err, ErrCodeInvalidHTML)

	_, err = r.Render(ctx, &RenderRequest{HTML: "<p>hi</p>", PaperWidth: 0, PaperHeight: 11.69})
	assertRenderCode(t, err, ErrCodeInvalidHTML)
}

func assertRenderCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, code, renderErr.Code)
}

package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServe_StopsWhenContextDone(t *testing.T) {
	dir := writePosts(t, map[string]string{"hello.mdx": helloPost})

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, stderr, err := executeContext(t, ctx, "serve", "--dir", dir, "--addr", "127.0.0.1:0")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Serving "+dir+" on http://127.0.0.1:0")
}

func TestServe_ListenError(t *testing.T) {
	_, _, err := execute(t, "serve", "--dir", t.TempDir(), "--addr", "not-an-addr")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listening on not-an-addr")
}

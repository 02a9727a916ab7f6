package nuru

import (
	"bytes"
	"log"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testNuru(t *testing.T) (*Nuru, *bytes.Buffer) {
	buf := new(bytes.Buffer)
	n, err := New(filepath.Join(t.TempDir(), "nuru.db"), log.New(buf, "", 0))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, n.Close())
	})
	return n, buf
}

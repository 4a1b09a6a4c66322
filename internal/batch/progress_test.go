package batch

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsoleProgress(t *testing.T) {
	var buf bytes.Buffer
	p := &ConsoleProgress{Out: &buf}

	p.Start(2)
	p.FileDone(1, Result{Path: "in/a.tif"})
	p.FileDone(2, Result{Path: "in/b.tif", Err: errors.New("boom")})
	p.Finish()

	out := buf.String()
	assert.Contains(t, out, "1/2")
	assert.Contains(t, out, "2/2")
	assert.Contains(t, out, "a.tif")
	assert.Contains(t, out, "1 processed, 1 failed")
}

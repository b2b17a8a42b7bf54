package spinner

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStartNonInteractiveIsSilent(t *testing.T) {
	var buf bytes.Buffer

	stop := Start(&buf, false, "counting packages")
	stop()

	assert.Empty(t, buf.String())
}

package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("word short", From("word short"))
	assert.Equal("line 3 'x' y", From("line %d '%v' %v", 3, "x", "y"))
	assert.Equal("0x0a", From("0x%02x", 10))
}

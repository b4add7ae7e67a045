//go:build !tinygo

package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromFormatsArguments(t *testing.T) {
	assert.Equal(t, "lane 3 of 4", From("lane %d of %d", 3, 4))
	assert.Equal(t, "bus 0xDEADBEEF", From("bus %s", "0xDEADBEEF"))
}

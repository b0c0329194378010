// Package assert wraps testify assertions together with the *testing.T for
// terser test bodies.
package assert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Assert bundles testify's assert and require with the test handle.
type Assert struct {
	*assert.Assertions
	Require *require.Assertions
	T       *testing.T
}

// New creates a new Assert for t.
func New(t *testing.T) *Assert {
	return &Assert{
		Assertions: assert.New(t),
		Require:    require.New(t),
		T:          t,
	}
}

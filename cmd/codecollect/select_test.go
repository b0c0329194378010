package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectByPatternRegex(t *testing.T) {
	assert := assert.New(t)
	paths := []string{"cmd/main.go", "internal/app.go", "internal/app_test.go", "README.md"}

	got, err := selectByPattern(paths, `/_test\.go$`)
	require.NoError(t, err)
	assert.Equal([]string{"internal/app_test.go"}, got)

	got, err = selectByPattern(paths, `/^internal/`)
	require.NoError(t, err)
	assert.Equal([]string{"internal/app.go", "internal/app_test.go"}, got)

	_, err = selectByPattern(paths, `/[oops`)
	assert.ErrorContains(err, "invalid regex pattern")
}

func TestSelectByPatternFuzzy(t *testing.T) {
	assert := assert.New(t)
	paths := []string{"cmd/main.go", "internal/app.go", "docs/usage.md"}

	got, err := selectByPattern(paths, "app")
	require.NoError(t, err)
	assert.Equal([]string{"internal/app.go"}, got)

	// Fuzzy matches keep the candidate order, not the ranking order.
	got, err = selectByPattern(paths, "go")
	require.NoError(t, err)
	assert.Equal([]string{"cmd/main.go", "internal/app.go"}, got)

	got, err = selectByPattern(paths, "zzz")
	require.NoError(t, err)
	assert.Empty(got)
}

func TestSelectByPatternEmpty(t *testing.T) {
	paths := []string{"a.go", "b.go"}
	got, err := selectByPattern(paths, "")
	require.NoError(t, err)
	assert.Equal(t, paths, got)
}

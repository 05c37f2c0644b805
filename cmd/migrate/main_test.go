package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun_RejectsBadCommands(t *testing.T) {
	err := run(nil, t.TempDir(), "sideways", "")
	assert.ErrorContains(t, err, "unknown command")

	err = run(nil, t.TempDir(), "create", "")
	assert.ErrorContains(t, err, "name is required")
}

package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harrylevesque/hellonames/internal/view"
)

func TestPrintStateListsNames(t *testing.T) {
	var buf bytes.Buffer

	err := printState(&buf, view.State{Names: []string{"Ada", "Grace"}})

	assert.NoError(t, err)
	assert.Equal(t, "Ada\nGrace\n", buf.String())
}

func TestPrintStateReturnsError(t *testing.T) {
	var buf bytes.Buffer

	err := printState(&buf, view.State{Names: []string{"Ada"}, ErrorMessage: "duplicate name"})

	assert.EqualError(t, err, "duplicate name")
	assert.Empty(t, buf.String())
}

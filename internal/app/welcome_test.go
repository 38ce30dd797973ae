package app

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWelcomeEnterHandsOff(t *testing.T) {
	var out bytes.Buffer
	got := Welcome(strings.NewReader("\n"), &out)
	assert.True(t, got)
	assert.Contains(t, out.String(), "Welcome to E-miti")
}

func TestWelcomeQuit(t *testing.T) {
	var out bytes.Buffer
	got := Welcome(strings.NewReader("q\n"), &out)
	assert.False(t, got)
}

func TestWelcomeIgnoresOtherKeys(t *testing.T) {
	var out bytes.Buffer
	got := Welcome(strings.NewReader("x\nhello\n\n"), &out)
	assert.True(t, got, "unrecognized input is ignored until Enter")
}

func TestWelcomeEOF(t *testing.T) {
	var out bytes.Buffer
	got := Welcome(strings.NewReader(""), &out)
	assert.False(t, got)
}

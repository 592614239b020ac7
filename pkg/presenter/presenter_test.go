package presenter

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func newTestPresenter() (*TerminalPresenter, *bytes.Buffer, *bytes.Buffer) {
	color.NoColor = true
	var out, errOut bytes.Buffer
	return NewWithWriters(&out, &errOut), &out, &errOut
}

func TestErrorWritesToErrorOutput(t *testing.T) {
	p, out, errOut := newTestPresenter()

	p.Error(errors.New("boom"), "loading skill")

	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "[ERROR] loading skill: boom")
}

func TestErrorNilIsNoop(t *testing.T) {
	p, _, errOut := newTestPresenter()

	p.Error(nil, "ignored")
	assert.Empty(t, errOut.String())
}

func TestMessages(t *testing.T) {
	p, out, _ := newTestPresenter()

	p.Success("activated")
	p.Warning("skipped")
	p.Info("plain")
	p.Section("Skills")

	output := out.String()
	assert.Contains(t, output, "activated")
	assert.Contains(t, output, "skipped")
	assert.Contains(t, output, "plain")
	assert.Contains(t, output, "Skills\n------")
}

func TestQuietSuppressesNonErrors(t *testing.T) {
	p, out, errOut := newTestPresenter()
	p.SetQuiet(true)

	p.Success("hidden")
	p.Info("hidden")
	p.Warning("hidden")
	p.Separator()
	p.Error(errors.New("still shown"), "")

	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "still shown")
}

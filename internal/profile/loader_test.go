package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Valid(t *testing.T) {
	path := writeTemp(t, `
name: momentum-lite
rules:
  - id: rsi_trigger
    label: RSI Trigger
    low: 25
    high: 75
  - id: volume_surge
    threshold: 0.8
`)

	p, raw, err := Load(path)
	require.NoError(t, err)
	assert.NotEmpty(t, raw)
	assert.Equal(t, "momentum-lite", p.Name)
	require.Len(t, p.Rules, 2)
	assert.Equal(t, 25.0, *p.Rules[0].Low)
	assert.Equal(t, 0.8, *p.Rules[1].Threshold)
}

func TestLoad_UnknownFieldFails(t *testing.T) {
	path := writeTemp(t, `
name: broken
rules:
  - id: rsi_trigger
    thresold: 0.5
`)

	_, _, err := Load(path)
	assert.Error(t, err, "typo fields must fail fast")
}

func TestValidate(t *testing.T) {
	assert.Error(t, Validate(&Profile{Name: "", Rules: []RuleSpec{{ID: "x"}}}))
	assert.Error(t, Validate(&Profile{Name: "p"}))
	assert.Error(t, Validate(&Profile{Name: "p", Rules: []RuleSpec{{ID: ""}}}))
	assert.Error(t, Validate(&Profile{Name: "p", Rules: []RuleSpec{
		{ID: "a", Label: "Same"}, {ID: "b", Label: "Same"},
	}}))
	assert.NoError(t, Validate(Default()))
}

func TestHash_Deterministic(t *testing.T) {
	h1, err := Hash(Default())
	require.NoError(t, err)
	h2, err := Hash(Default())
	require.NoError(t, err)
	assert.Equal(t, h1, h2)

	other := Default()
	other.Name = "changed"
	h3, err := Hash(other)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3)
}

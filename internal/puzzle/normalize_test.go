package puzzle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"ROUGE", "rouge"},
		{"  Modrić ", "modric"},
		{"MBAPPÉ", "mbappe"},
		{"Müller", "muller"},
		{"Ødegaard", "ødegaard"},
		{"\tpelé\n", "pele"},
		{"", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Normalize(c.in), "Normalize(%q)", c.in)
	}
}

func TestNormalizeKeepsLetterCount(t *testing.T) {
	for _, w := range []string{"Modrić", "Mbappé", "Griezmann", "Ibrahimović", "Özil"} {
		assert.Equal(t, Length(w), Length(Normalize(w)), "letter count changed for %q", w)
	}
}

func TestNormalizeDecomposedInput(t *testing.T) {
	// "e" followed by a combining acute accent.
	assert.Equal(t, "pele", Normalize("Pelé"))
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "ROUGE", Display("rouge"))
	assert.Equal(t, "MODRIĆ", Display("Modrić"))
}

package species

import (
	"testing"

	"github.com/oykukmnGlad/ROOTEAM/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	require.NotEmpty(t, c.List())

	for _, e := range c.List() {
		assert.NotEmpty(t, e.Slug)
		assert.NotEmpty(t, e.Names.TR, e.Slug)
		assert.NotEmpty(t, e.Care.Water, e.Slug)
	}
}

func TestCatalog_Lookups(t *testing.T) {
	c := MustDefault()

	e, err := c.Get("ORKIDE")
	require.NoError(t, err)
	assert.Equal(t, "Orkide", e.Names.TR)

	care, err := c.Care("aloe-vera")
	require.NoError(t, err)
	assert.NotEmpty(t, care.Fertilizer)

	issues, err := c.Issues("aloe-vera")
	require.NoError(t, err)
	assert.Equal(t, []string{"leaf_browning", "mealybugs", "root_rot"}, issues)

	text, err := c.Treatment("aloe-vera", "root_rot")
	require.NoError(t, err)
	assert.Contains(t, text, "kök")

	_, err = c.Get("lale")
	assert.True(t, models.HasCode(err, models.CodeNotFound))
	_, err = c.Treatment("aloe-vera", "frost")
	assert.True(t, models.HasCode(err, models.CodeNotFound))
	_, err = c.Issues("lale")
	assert.True(t, models.HasCode(err, models.CodeNotFound))
}

func TestCatalog_Match(t *testing.T) {
	c := MustDefault()

	tests := []struct {
		input string
		slug  string
		found bool
	}{
		{"Orkide", "orkide", true},
		{"  monstera deliciosa ", "monstera", true},
		{"Deve Tabanı", "monstera", true},
		{"sukulent", "sukulent", true},
		{"Lale", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			e, ok := c.Match(tt.input)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.slug, e.Slug)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("- slug: a\n- slug: A\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("- names: {en: x}\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("not: [valid"))
	assert.Error(t, err)

	c, err := Parse([]byte("[]"))
	require.NoError(t, err)
	assert.Empty(t, c.List())
}

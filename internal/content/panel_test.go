package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultsAreValid(t *testing.T) {
	seen := map[string]bool{}
	for _, p := range Defaults() {
		require.NoError(t, p.Validate(), p.Slug)
		require.False(t, seen[p.Slug], "duplicate slug %s", p.Slug)
		seen[p.Slug] = true
	}
	require.Len(t, seen, 6)
}

func TestLinkOnlyPanelsHaveNoModal(t *testing.T) {
	for _, p := range Defaults() {
		switch p.Slug {
		case "email", "curriculo":
			require.False(t, p.HasModal(), p.Slug)
			require.NotEmpty(t, p.Href, p.Slug)
		default:
			require.True(t, p.HasModal(), p.Slug)
		}
	}
}

func TestChartValuesSkipsText(t *testing.T) {
	s := Section{Items: []Item{
		{Label: "Repositórios:", Value: "36"},
		{Label: "Linguagem", Value: "Go"},
		{Label: "Seguidores:", Value: " 4 "},
	}}
	labels, values := s.ChartValues()
	require.Equal(t, []string{"Repositórios", "Seguidores"}, labels)
	require.Equal(t, []float64{36, 4}, values)
}

func TestParseAndMerge(t *testing.T) {
	panels, err := Parse(`
[[panel]]
slug = "Sobre"
label = "Sobre Mim"
title = "Sobre Mim"
note = "Desenvolvedor em São Paulo"

[[panel]]
slug = "blog"
label = "Blog"
href = "https://example.com"
`)
	require.NoError(t, err)
	require.Len(t, panels, 2)
	require.Equal(t, "sobre", panels[0].Slug)

	merged := Merge(Defaults(), panels)
	require.Len(t, merged, 7)
	require.Equal(t, "Desenvolvedor em São Paulo", merged[5].Note)
	require.Equal(t, "blog", merged[6].Slug)
	require.Equal(t, "Depois arrumo isso", Defaults()[5].Note, "defaults must not be mutated")
}

func TestParseRejectsInvalidPanel(t *testing.T) {
	_, err := Parse(`
[[panel]]
slug = "empty"
label = "Empty"
`)
	require.Error(t, err)

	_, err = Parse(`not toml = [`)
	require.Error(t, err)
}

func TestLoadFileMissingIsEmpty(t *testing.T) {
	panels, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	require.Empty(t, panels)

	path := filepath.Join(t.TempDir(), "panels.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[panel]]\nslug = \"x\"\nlabel = \"X\"\nhref = \"https://x\"\n"), 0o600))
	panels, err = LoadFile(path)
	require.NoError(t, err)
	require.Len(t, panels, 1)
}

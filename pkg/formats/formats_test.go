package formats

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify_Strategies(t *testing.T) {
	cases := map[string]Strategy{
		"/tmp/a.ipynb":     Notebook,
		"/tmp/REPORT.PDF":  PDF,
		"/tmp/Notes.IpYnB": Notebook,
		"/tmp/main.go":     Text,
		"/tmp/blob.bin":    Text,
		"/tmp/no_ext":      Text,
	}

	for path, want := range cases {
		_, got := Classify(path)
		require.Equal(t, want, got, "path %s", path)
	}
}

func TestClassify_Categories(t *testing.T) {
	category, _ := Classify("src/app.TSX")
	require.Equal(t, WebScripting, category)

	category, _ = Classify(".gitignore")
	require.Equal(t, MarkupConfig, category)

	category, _ = Classify("data.parquet")
	require.Equal(t, Other, category)
}

func TestSupportedFormats_IsCopy(t *testing.T) {
	table := SupportedFormats()
	require.Len(t, table, len(Categories()))

	table[Programming][0] = ".mutated"
	delete(table, SpecialFormats)

	fresh := SupportedFormats()
	require.Equal(t, ".py", fresh[Programming][0])
	require.Contains(t, fresh[SpecialFormats], ".ipynb")
}

func TestCategories_Order(t *testing.T) {
	require.Equal(t, []string{Programming, WebScripting, MarkupConfig, ProjectFiles, SpecialFormats}, Categories())
}

func TestStrategy_String(t *testing.T) {
	require.Equal(t, "text", Text.String())
	require.Equal(t, "notebook", Notebook.String())
	require.Equal(t, "pdf", PDF.String())
}

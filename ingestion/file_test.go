package ingestion

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlFixture = `
materials:
  - id: fr-1
    title: Fractions lesson
    content_type: lesson
    is_primary_lesson: true
    content:
      summary: Adding fractions
      keywords: [fractions, denominators]
  - title: Fractions quiz
    content_type: quiz
    completed_at: "2024-05-01"
    grade_value: 6
    grade_max_value: 10
`

func TestReadRawMaterials_YAML(t *testing.T) {
	raws, err := ReadRawMaterials(strings.NewReader(yamlFixture), FormatYAML)
	require.NoError(t, err)
	require.Len(t, raws, 2)

	assert.Equal(t, "fr-1", raws[0].ExternalID)
	require.NotNil(t, raws[0].IsPrimaryLesson)
	assert.True(t, *raws[0].IsPrimaryLesson)

	m, err := raws[0].Decode("s1")
	require.NoError(t, err)
	require.NotNil(t, m.Content)
	assert.Equal(t, []string{"fractions", "denominators"}, m.Content.Keywords)

	require.NotNil(t, raws[1].GradeValue)
	assert.Equal(t, 6.0, *raws[1].GradeValue)
}

func TestRawMaterials_JSONRoundTrip(t *testing.T) {
	raws, err := ReadRawMaterials(strings.NewReader(yamlFixture), FormatYAML)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteRawMaterials(&buf, FormatJSON, raws))

	path := filepath.Join(t.TempDir(), "materials.json")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, raws[1].Title, loaded[1].Title)
	assert.Equal(t, raws[1].CompletedAt, loaded[1].CompletedAt)
}

func TestReadRawMaterials_Empty(t *testing.T) {
	raws, err := ReadRawMaterials(strings.NewReader(""), FormatYAML)
	require.NoError(t, err)
	assert.Empty(t, raws)
}

func TestFormatFromPath(t *testing.T) {
	f, err := FormatFromPath("fixtures/a.YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = FormatFromPath("a.csv")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = LoadFile("a.toml")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

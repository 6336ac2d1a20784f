package tabula

import (
	"errors"
	"testing"

	"fjacquet/tap-nomad/internal/logging"
	"fjacquet/tap-nomad/internal/models"
	"fjacquet/tap-nomad/internal/taperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const singlePageOutput = `[
  {
    "extraction_method": "stream",
    "top": 160.0, "left": 32.0, "bottom": 520.0, "right": 570.0,
    "data": [
      [
        {"top": 165.0, "left": 32.0, "width": 120.0, "height": 10.0, "text": "Compra Netflix"},
        {"top": 165.0, "left": 160.0, "width": 0.0, "height": 10.0, "text": ""},
        {"top": 165.0, "left": 200.0, "width": 0.0, "height": 10.0, "text": ""}
      ],
      [
        {"top": 177.0, "left": 32.0, "width": 0.0, "height": 10.0, "text": ""},
        {"top": 177.0, "left": 160.0, "width": 60.0, "height": 10.0, "text": "03/04/2021"},
        {"top": 177.0, "left": 200.0, "width": 70.0, "height": 10.0, "text": "-R$ 39,90"}
      ],
      [
        {"top": 189.0, "left": 32.0, "width": 55.0, "height": 10.0, "text": "Liquidado"},
        {"top": 189.0, "left": 160.0, "width": 0.0, "height": 10.0, "text": ""},
        {"top": 189.0, "left": 200.0, "width": 0.0, "height": 10.0, "text": ""}
      ]
    ]
  }
]`

const twoPageOutput = `[
  {"extraction_method": "stream", "data": [[{"text": "page one row"}]]},
  {"extraction_method": "stream", "data": [[{"text": "page two row"}]]}
]`

func TestDecodeTables_SinglePage(t *testing.T) {
	grid, err := decodeTables([]byte(singlePageOutput))
	require.NoError(t, err)

	expected := models.RawTable{
		{"Compra Netflix", "", ""},
		{"", "03/04/2021", "-R$ 39,90"},
		{"Liquidado", "", ""},
	}
	assert.Equal(t, expected, grid)
}

func TestDecodeTables_ConcatenatesPages(t *testing.T) {
	grid, err := decodeTables([]byte(twoPageOutput))
	require.NoError(t, err)

	expected := models.RawTable{
		{"page one row"},
		{"page two row"},
	}
	assert.Equal(t, expected, grid)
}

func TestDecodeTables_InvalidJSON(t *testing.T) {
	_, err := decodeTables([]byte("Error: cannot open file"))
	assert.Error(t, err)
}

func TestTableFromOutput_NoTables(t *testing.T) {
	_, err := tableFromOutput("/statements/april.pdf", []byte("[]"))

	var layoutErr *taperror.LayoutError
	require.True(t, errors.As(err, &layoutErr))
	assert.Equal(t, -1, layoutErr.Row)
}

func TestTableFromOutput_DecodeFailure(t *testing.T) {
	_, err := tableFromOutput("/statements/april.pdf", []byte("not json"))

	var extErr *taperror.ExtractionError
	require.True(t, errors.As(err, &extErr))
	assert.Equal(t, "/statements/april.pdf", extErr.FilePath)
}

func TestCommandArgs(t *testing.T) {
	area := models.Area{Top: 160, Left: 32, Bottom: 520, Right: 570}
	args := commandArgs("/opt/tabula/tabula.jar", "/statements/april.pdf", area)

	expected := []string{
		"-jar", "/opt/tabula/tabula.jar",
		"--pages", "all",
		"--area", "160,32,520,570",
		"--format", "JSON",
		"--silent",
		"/statements/april.pdf",
	}
	assert.Equal(t, expected, args)
}

func TestNewRealTableExtractor_Defaults(t *testing.T) {
	extractor := NewRealTableExtractor("", "", nil)

	assert.Equal(t, DefaultJavaPath, extractor.javaPath)
	assert.Equal(t, DefaultJarPath, extractor.jarPath)
	assert.NotNil(t, extractor.logger)
}

func TestNewRealTableExtractor_CustomPaths(t *testing.T) {
	extractor := NewRealTableExtractor("/usr/bin/java", "/opt/tabula.jar", &logging.MockLogger{})

	assert.Equal(t, "/usr/bin/java", extractor.javaPath)
	assert.Equal(t, "/opt/tabula.jar", extractor.jarPath)
}

func TestRealTableExtractor_MissingBinary(t *testing.T) {
	logger := &logging.MockLogger{}
	extractor := NewRealTableExtractor("tabula-test-binary-that-does-not-exist", "tabula.jar", logger)

	_, err := extractor.ExtractTable("/statements/april.pdf", models.Area{})

	var extErr *taperror.ExtractionError
	require.True(t, errors.As(err, &extErr))
	assert.Equal(t, "/statements/april.pdf", extErr.FilePath)
	assert.NotEmpty(t, logger.GetEntriesByLevel("ERROR"))
}

func TestMockTableExtractor(t *testing.T) {
	table := models.RawTable{{"Compra", "", ""}}
	mock := NewMockTableExtractor(table, nil)

	got, err := mock.ExtractTable("/statements/april.pdf", models.Area{Top: 160, Left: 32, Bottom: 520, Right: 570})
	require.NoError(t, err)
	assert.Equal(t, table, got)

	require.Len(t, mock.Calls, 1)
	assert.Equal(t, "/statements/april.pdf", mock.Calls[0].PDFPath)
	assert.Equal(t, models.Area{Top: 160, Left: 32, Bottom: 520, Right: 570}, mock.Calls[0].Area)
}

func TestMockTableExtractor_Error(t *testing.T) {
	mockErr := errors.New("extractor exploded")
	mock := NewMockTableExtractor(nil, mockErr)

	_, err := mock.ExtractTable("/statements/april.pdf", models.Area{})
	assert.Equal(t, mockErr, err)
	assert.Len(t, mock.Calls, 1)
}

func TestMockTableExtractor_ImplementsInterface(t *testing.T) {
	var _ TableExtractor = (*MockTableExtractor)(nil)
	var _ TableExtractor = (*RealTableExtractor)(nil)
}

package tabula

import "fjacquet/tap-nomad/internal/models"

// MockTableExtractor implements TableExtractor for testing purposes.
// It returns predefined mock data instead of running the extractor.
type MockTableExtractor struct {
	MockTable models.RawTable
	MockErr   error

	// Calls records the paths and areas requested, in order.
	Calls []MockCall
}

// MockCall is one recorded ExtractTable invocation.
type MockCall struct {
	PDFPath string
	Area    models.Area
}

// NewMockTableExtractor creates a new MockTableExtractor with the given mock data.
func NewMockTableExtractor(mockTable models.RawTable, mockErr error) *MockTableExtractor {
	return &MockTableExtractor{
		MockTable: mockTable,
		MockErr:   mockErr,
	}
}

// ExtractTable returns the predefined mock table or error.
func (e *MockTableExtractor) ExtractTable(pdfPath string, area models.Area) (models.RawTable, error) {
	e.Calls = append(e.Calls, MockCall{PDFPath: pdfPath, Area: area})
	if e.MockErr != nil {
		return nil, e.MockErr
	}
	return e.MockTable, nil
}

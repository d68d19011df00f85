package frontend

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed notebook_schema.json
var notebookSchemaJSON []byte

// Sentinel errors for notebook extraction.
var (
	// ErrNotebookInvalid reports a document that is not a valid nbformat 4
	// notebook. The wrapped message lists the schema violations.
	ErrNotebookInvalid = errors.New("invalid notebook document")
	errSchemaCompile   = errors.New("notebook schema failed to compile")
)

// cellSeparator joins the concatenated code cells. The blank line keeps the
// synthesized module valid even when a cell ends mid-block.
const cellSeparator = "\n\n"

// notebookDoc is the metric-relevant subset of the nbformat 4 layout.
type notebookDoc struct {
	Cells []notebookCell `json:"cells"`
}

type notebookCell struct {
	CellType string `json:"cell_type"`
	// Source is either one string or a list of line fragments.
	Source json.RawMessage `json:"source"`
}

// NotebookExtractor turns Jupyter notebooks into plain Python source by
// validating the document and concatenating its code cells. The zero value
// is not usable; construct with NewNotebookExtractor.
type NotebookExtractor struct {
	schema *gojsonschema.Schema
}

// NewNotebookExtractor compiles the embedded nbformat schema.
func NewNotebookExtractor() (*NotebookExtractor, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(notebookSchemaJSON))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errSchemaCompile, err)
	}

	return &NotebookExtractor{schema: schema}, nil
}

// ExtractSource validates the notebook and returns its code cells joined
// into one Python module. Markdown and raw cells are dropped. An empty
// notebook yields empty source, not an error.
func (e *NotebookExtractor) ExtractSource(content []byte) ([]byte, error) {
	result, err := e.schema.Validate(gojsonschema.NewBytesLoader(content))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotebookInvalid, err)
	}

	if !result.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrNotebookInvalid, describeViolations(result))
	}

	var doc notebookDoc
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotebookInvalid, err)
	}

	cells := make([]string, 0, len(doc.Cells))

	for _, cell := range doc.Cells {
		if cell.CellType != "code" {
			continue
		}

		source, err := cellSource(cell.Source)
		if err != nil {
			return nil, err
		}

		cells = append(cells, source)
	}

	return []byte(strings.Join(cells, cellSeparator)), nil
}

// cellSource decodes the source field, which nbformat stores as either one
// string or a list of line fragments that already carry their newlines.
func cellSource(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return single, nil
	}

	var fragments []string
	if err := json.Unmarshal(raw, &fragments); err != nil {
		return "", fmt.Errorf("%w: cell source is neither string nor list", ErrNotebookInvalid)
	}

	return strings.Join(fragments, ""), nil
}

func describeViolations(result *gojsonschema.Result) string {
	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.String())
	}

	return strings.Join(msgs, "; ")
}

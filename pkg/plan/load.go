package plan

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseError reports a plan file that could not be decoded. It is a
// distinct failure class from both file-not-found and contract
// violations so the CLI can map each to its own exit status.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid plan document %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// LoadFile reads a plan document and decodes it into the generic tree
// the contract engine consumes. JSON is the native plan format;
// .yaml/.yml files are accepted for hand-edited plans. A missing file
// surfaces as an error wrapping fs.ErrNotExist; anything that reads
// but does not decode to a top-level object is a *ParseError.
func LoadFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan: %w", err)
	}

	var doc any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &doc)
	default:
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, &ParseError{Path: path, Err: errors.New("top-level value is not an object")}
	}
	return obj, nil
}

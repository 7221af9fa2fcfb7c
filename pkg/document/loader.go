package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formfield/pkg/field"
	"github.com/goliatone/go-formfield/pkg/resolver"
)

// ErrEmpty is returned when a document file has no content.
var ErrEmpty = errors.New("document: empty document")

type documentFile struct {
	Title     string      `json:"title" yaml:"title"`
	Namespace string      `json:"namespace" yaml:"namespace"`
	Fields    []entryFile `json:"fields" yaml:"fields"`
}

// Kind, value and options accept several shapes: kind as a name or a code,
// value as any scalar, options as a list or a newline-delimited string.
type entryFile struct {
	Label    string `json:"label" yaml:"label"`
	Kind     any    `json:"kind" yaml:"kind"`
	Value    any    `json:"value" yaml:"value"`
	Options  any    `json:"options" yaml:"options"`
	Required bool   `json:"required" yaml:"required"`
	Name     string `json:"name" yaml:"name"`
	ID       string `json:"id" yaml:"id"`
	Class    string `json:"class" yaml:"class"`
	Disabled bool   `json:"disabled" yaml:"disabled"`
}

// Parse decodes a JSON or YAML document. source is used in error messages.
func Parse(data []byte, source string) (Document, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Document{}, fmt.Errorf("%w: %s", ErrEmpty, source)
	}

	var raw documentFile
	if err := json.Unmarshal(data, &raw); err != nil {
		raw = documentFile{}
		if yamlErr := yaml.Unmarshal(data, &raw); yamlErr != nil {
			return Document{}, fmt.Errorf("document: parse %s: invalid JSON or YAML: %w", source, yamlErr)
		}
	}

	doc := Document{
		Source:    source,
		Title:     strings.TrimSpace(raw.Title),
		Namespace: strings.TrimSpace(raw.Namespace),
		Fields:    make([]Entry, 0, len(raw.Fields)),
	}
	for idx, rawEntry := range raw.Fields {
		entry, err := normaliseEntry(rawEntry)
		if err != nil {
			return Document{}, fmt.Errorf("document: %s field %d: %w", source, idx, err)
		}
		doc.Fields = append(doc.Fields, entry)
	}
	return doc, nil
}

// LoadFile reads and parses a document from disk.
func LoadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("document: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// LoadFS walks fsys and parses every .json, .yaml and .yml file, in lexical
// path order.
func LoadFS(fsys fs.FS) ([]Document, error) {
	if fsys == nil {
		return nil, nil
	}
	var docs []Document
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDocumentFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("document: read %s: %w", path, err)
		}
		doc, err := Parse(data, path)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func isDocumentFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func normaliseEntry(raw entryFile) (Entry, error) {
	code, err := kindCode(raw.Kind)
	if err != nil {
		return Entry{}, err
	}
	options, err := optionList(raw.Options)
	if err != nil {
		return Entry{}, err
	}
	return Entry{
		Label:    raw.Label,
		Code:     code,
		Value:    scalarString(raw.Value),
		Options:  options,
		Required: raw.Required,
		Name:     strings.TrimSpace(raw.Name),
		ID:       strings.TrimSpace(raw.ID),
		Class:    strings.TrimSpace(raw.Class),
		Disabled: raw.Disabled,
	}, nil
}

// kindCode converts names through field.ParseKind and keeps numeric codes
// as given. A missing kind means text.
func kindCode(value any) (int, error) {
	switch v := value.(type) {
	case nil:
		return field.KindText.Code(), nil
	case int:
		return v, nil
	case float64:
		return int(v), nil
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return field.KindText.Code(), nil
		}
		if code, err := strconv.Atoi(trimmed); err == nil {
			return code, nil
		}
		kind, err := field.ParseKind(trimmed)
		if err != nil {
			return 0, err
		}
		return kind.Code(), nil
	default:
		return 0, fmt.Errorf("%w: unsupported kind value %T", field.ErrUnknownKind, value)
	}
}

func optionList(value any) ([]string, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case string:
		return resolver.SplitOptions(v), nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, scalarString(item))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("options must be a list or a string, got %T", value)
	}
}

func scalarString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

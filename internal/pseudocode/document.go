package pseudocode

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// DocumentFormat names the on-disk encoding of a step document.
type DocumentFormat string

const (
	// FormatYAML is a .yml or .yaml step document.
	FormatYAML DocumentFormat = "yaml"
	// FormatTOML is a .toml step document.
	FormatTOML DocumentFormat = "toml"
)

var (
	// ErrUnknownFormat is returned for a file extension with no decoder.
	ErrUnknownFormat = errors.New("unknown step document format")
	// ErrNoSteps is returned when a document defines no steps.
	ErrNoSteps = errors.New("step document has no steps")
	// ErrBadStepID is returned when a step key is not a base-10 integer.
	ErrBadStepID = errors.New("step id is not an integer")
	// ErrDuplicateStepID is returned when two keys, such as 1 and 01, name the same step.
	ErrDuplicateStepID = errors.New("duplicate step id")
)

// Document is a step table with an optional title and emission order.
type Document struct {
	Title string    `yaml:"title,omitempty"`
	Steps StepTable `yaml:"steps"`
	Order StepOrder `yaml:"order,omitempty,flow"`
}

// yamlDocument keeps steps as a node so keys are seen as written and in
// document order; yaml.v3 would otherwise fold 1 and 01 into one int key.
type yamlDocument struct {
	Title string    `yaml:"title"`
	Steps yaml.Node `yaml:"steps"`
	Order StepOrder `yaml:"order"`
}

type tomlDocument struct {
	Title string            `toml:"title"`
	Order []int             `toml:"order"`
	Steps map[string]string `toml:"steps"`
}

// FormatFromPath picks a document format from the file extension.
func FormatFromPath(path string) (DocumentFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// ParseDocument decodes a step document. When the document has no order the
// steps are emitted in ascending id order.
func ParseDocument(data []byte, format DocumentFormat) (*Document, error) {
	var (
		doc Document
		err error
	)
	switch format {
	case FormatYAML:
		doc, err = parseYAMLDocument(data)
	case FormatTOML:
		doc, err = parseTOMLDocument(data)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, err
	}

	if len(doc.Steps) == 0 {
		return nil, ErrNoSteps
	}
	if doc.Order == nil {
		doc.Order = doc.Steps.IDs()
	}
	return &doc, nil
}

func parseYAMLDocument(data []byte) (Document, error) {
	var yd yamlDocument
	if err := yaml.Unmarshal(data, &yd); err != nil {
		return Document{}, fmt.Errorf("parse yaml step document: %w", err)
	}

	b := newStepBuilder()
	switch {
	case yd.Steps.Kind == 0, yd.Steps.Kind == yaml.ScalarNode && yd.Steps.Tag == "!!null":
	case yd.Steps.Kind == yaml.MappingNode:
		for i := 0; i+1 < len(yd.Steps.Content); i += 2 {
			key, value := yd.Steps.Content[i], yd.Steps.Content[i+1]
			var line string
			if err := value.Decode(&line); err != nil {
				return Document{}, fmt.Errorf("parse yaml step document: step %q: %w", key.Value, err)
			}
			if err := b.add(key.Value, line); err != nil {
				return Document{}, err
			}
		}
	default:
		return Document{}, fmt.Errorf("parse yaml step document: line %d: steps must be a mapping", yd.Steps.Line)
	}
	return Document{Title: yd.Title, Steps: b.steps, Order: yd.Order}, nil
}

func parseTOMLDocument(data []byte) (Document, error) {
	var td tomlDocument
	meta, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&td)
	if err != nil {
		return Document{}, fmt.Errorf("parse toml step document: %w", err)
	}

	b := newStepBuilder()
	for _, key := range meta.Keys() {
		if len(key) != 2 || key[0] != "steps" {
			continue
		}
		if err := b.add(key[1], td.Steps[key[1]]); err != nil {
			return Document{}, err
		}
	}
	return Document{Title: td.Title, Steps: b.steps, Order: td.Order}, nil
}

// stepBuilder collects steps keyed by their normalised id and remembers the
// key each id was first written as.
type stepBuilder struct {
	steps StepTable
	keys  map[int]string
}

func newStepBuilder() *stepBuilder {
	return &stepBuilder{steps: make(StepTable), keys: make(map[int]string)}
}

func (b *stepBuilder) add(key, line string) error {
	id, err := strconv.Atoi(strings.TrimSpace(key))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrBadStepID, key)
	}
	if prev, ok := b.keys[id]; ok {
		return fmt.Errorf("%w: keys %q and %q both name step %d", ErrDuplicateStepID, prev, key, id)
	}
	b.keys[id] = key
	b.steps[id] = line
	return nil
}

// IDs returns the table's identifiers in ascending order.
func (t StepTable) IDs() StepOrder {
	ids := make(StepOrder, 0, len(t))
	for id := range t {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// EncodeYAML serializes doc in the YAML step document format.
func (d *Document) EncodeYAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("encode step document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode step document: %w", err)
	}
	return buf.Bytes(), nil
}

// ParseOrder parses a comma-separated list of step ids such as "2,0,1".
func ParseOrder(s string) (StepOrder, error) {
	var order StepOrder
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		id, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrBadStepID, field)
		}
		order = append(order, id)
	}
	if len(order) == 0 {
		return nil, ErrEmptyOrder
	}
	return order, nil
}

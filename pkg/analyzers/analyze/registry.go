package analyze

import (
	"errors"
	"fmt"
	pathpkg "path"
	"strings"
	"unicode"
)

// AnalyzerMode identifies analyzer runtime mode. The tool currently ships
// static analyzers only; the mode survives in IDs so they stay stable if a
// second mode ever appears.
type AnalyzerMode string

// ModeStatic marks per-snapshot analyzers.
const ModeStatic AnalyzerMode = "static"

// Registry sentinel errors.
var (
	// ErrUnknownAnalyzerID is returned when registry lookup fails.
	ErrUnknownAnalyzerID = errors.New("unknown analyzer id")

	// ErrDuplicateAnalyzerID is returned when registry receives duplicate IDs.
	ErrDuplicateAnalyzerID = errors.New("duplicate analyzer id")

	// ErrInvalidAnalyzerGlob is returned when a glob pattern is malformed.
	ErrInvalidAnalyzerGlob = errors.New("invalid analyzer glob")
)

// Descriptor contains stable analyzer metadata.
type Descriptor struct {
	ID          string
	Description string
	Mode        AnalyzerMode
}

// NewDescriptor builds stable analyzer metadata from analyzer name and mode.
func NewDescriptor(mode AnalyzerMode, name, description string) Descriptor {
	return Descriptor{
		ID:          fmt.Sprintf("%s/%s", mode, normalizeName(name)),
		Description: description,
		Mode:        mode,
	}
}

func normalizeName(name string) string {
	normalized := strings.TrimSpace(name)
	if normalized == "" {
		return ""
	}

	builder := strings.Builder{}
	builder.Grow(len(normalized))

	for _, current := range normalized {
		if current == '_' || current == ' ' {
			builder.WriteRune('-')

			continue
		}

		builder.WriteRune(unicode.ToLower(current))
	}

	return strings.Trim(builder.String(), "-")
}

// Registry stores analyzer metadata with deterministic ordering.
type Registry struct {
	ordered []Descriptor
	index   map[string]Descriptor
}

// NewRegistry creates a registry from static analyzer descriptors.
func NewRegistry(analyzers []StaticAnalyzer) (*Registry, error) {
	ordered := make([]Descriptor, 0, len(analyzers))
	index := make(map[string]Descriptor, len(analyzers))

	for _, analyzer := range analyzers {
		descriptor := analyzer.Descriptor()
		if descriptor.Mode == "" {
			descriptor.Mode = ModeStatic
		}

		if _, exists := index[descriptor.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAnalyzerID, descriptor.ID)
		}

		index[descriptor.ID] = descriptor
		ordered = append(ordered, descriptor)
	}

	return &Registry{ordered: ordered, index: index}, nil
}

// All returns all descriptors in stable order.
func (r *Registry) All() []Descriptor {
	descriptors := make([]Descriptor, len(r.ordered))
	copy(descriptors, r.ordered)

	return descriptors
}

// Descriptor returns analyzer metadata for the given ID.
func (r *Registry) Descriptor(id string) (Descriptor, bool) {
	descriptor, ok := r.index[id]

	return descriptor, ok
}

// SelectedIDs returns the analyzer IDs for the given patterns, or all IDs in
// stable order when no pattern is given.
func (r *Registry) SelectedIDs(patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return r.allIDs(), nil
	}

	return r.ExpandPatterns(patterns)
}

// ExpandPatterns expands glob patterns against registered analyzer IDs.
// Literal IDs must exist; glob patterns may match zero IDs only if another
// pattern selects something.
func (r *Registry) ExpandPatterns(patterns []string) ([]string, error) {
	selected := make([]string, 0, len(r.ordered))
	selectedSet := make(map[string]struct{}, len(r.ordered))

	for _, rawPattern := range patterns {
		ids, err := r.resolvePattern(strings.TrimSpace(rawPattern))
		if err != nil {
			return nil, err
		}

		for _, id := range ids {
			if _, dup := selectedSet[id]; dup {
				continue
			}

			selectedSet[id] = struct{}{}
			selected = append(selected, id)
		}
	}

	return selected, nil
}

func (r *Registry) resolvePattern(pattern string) ([]string, error) {
	if pattern == "" {
		return nil, fmt.Errorf("%w: empty pattern", ErrUnknownAnalyzerID)
	}

	if !strings.ContainsAny(pattern, "*?[") {
		if _, exists := r.index[pattern]; !exists {
			return nil, fmt.Errorf("%w: %s", ErrUnknownAnalyzerID, pattern)
		}

		return []string{pattern}, nil
	}

	if pattern == "*" {
		return r.allIDs(), nil
	}

	matched := make([]string, 0, len(r.ordered))

	for _, descriptor := range r.ordered {
		ok, err := pathpkg.Match(pattern, descriptor.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidAnalyzerGlob, pattern)
		}

		if ok {
			matched = append(matched, descriptor.ID)
		}
	}

	return matched, nil
}

func (r *Registry) allIDs() []string {
	ids := make([]string, 0, len(r.ordered))
	for _, descriptor := range r.ordered {
		ids = append(ids, descriptor.ID)
	}

	return ids
}

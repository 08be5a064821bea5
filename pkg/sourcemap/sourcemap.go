// Package sourcemap builds version 3 source maps for generated stylesheets.
package sourcemap

import (
	"encoding/json"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

type (
	// Mapping ties a zero-based generated position to a zero-based source
	// position in Sources[Source].
	Mapping struct {
		GenLine, GenColumn int
		Source             int
		SrcLine, SrcColumn int
	}

	// Map is the JSON document defined by the source map v3 format.
	Map struct {
		Version        int      `json:"version"`
		File           string   `json:"file,omitempty"`
		SourceRoot     string   `json:"sourceRoot,omitempty"`
		Sources        []string `json:"sources"`
		SourcesContent []string `json:"sourcesContent,omitempty"`
		Names          []string `json:"names"`
		Mappings       string   `json:"mappings"`
	}

	// Generator accumulates mappings while output is written.
	Generator struct {
		file     string
		root     string
		sources  []string
		contents []string
		index    map[string]int
		mappings []Mapping
	}
)

func NewGenerator(file, sourceRoot string) *Generator {
	return &Generator{
		file:  file,
		root:  sourceRoot,
		index: make(map[string]int),
	}
}

// AddSource registers a source file and returns its index. Content is only
// emitted when at least one source was added with non-empty content.
func (g *Generator) AddSource(name, content string) int {
	if idx, ok := g.index[name]; ok {
		return idx
	}

	idx := len(g.sources)
	g.index[name] = idx
	g.sources = append(g.sources, name)
	g.contents = append(g.contents, content)
	return idx
}

// Add records a mapping. Consecutive mappings to the same generated
// position keep only the first one.
func (g *Generator) Add(m Mapping) {
	if n := len(g.mappings); n > 0 {
		last := g.mappings[n-1]
		if last.GenLine == m.GenLine && last.GenColumn == m.GenColumn {
			return
		}
	}

	g.mappings = append(g.mappings, m)
}

func (g *Generator) Mappings() []Mapping {
	out := make([]Mapping, len(g.mappings))
	copy(out, g.mappings)
	return out
}

// Map returns the source map document.
func (g *Generator) Map() *Map {
	m := &Map{
		Version:    3,
		File:       g.file,
		SourceRoot: g.root,
		Sources:    append([]string{}, g.sources...),
		Names:      []string{},
		Mappings:   Encode(g.mappings),
	}

	for _, c := range g.contents {
		if c != "" {
			m.SourcesContent = append([]string{}, g.contents...)
			break
		}
	}

	return m
}

// JSON renders the source map.
func (g *Generator) JSON() (string, error) {
	data, err := json.Marshal(g.Map())
	if err != nil {
		return "", errors.Wrap(err, "failed to encode source map")
	}

	return string(data), nil
}

// Shift adjusts the source map document text for prefix being written in front of the output it
// describes. Mappings move down by the lines in prefix; those on the first generated line also
// move right by the length of the last line of prefix.
func Shift(text, prefix string) (string, error) {
	if prefix == "" {
		return text, nil
	}

	var m Map
	if err := json.Unmarshal([]byte(text), &m); err != nil {
		return "", errors.Wrap(err, "failed to decode source map")
	}

	mappings, err := Decode(m.Mappings)
	if err != nil {
		return "", err
	}

	lines := strings.Count(prefix, "\n")
	cols := utf8.RuneCountInString(prefix[strings.LastIndex(prefix, "\n")+1:])
	for i := range mappings {
		if mappings[i].GenLine == 0 {
			mappings[i].GenColumn += cols
		}
		mappings[i].GenLine += lines
	}

	m.Mappings = Encode(mappings)
	data, err := json.Marshal(&m)
	if err != nil {
		return "", errors.Wrap(err, "failed to encode source map")
	}

	return string(data), nil
}

// Encode serializes mappings into the "mappings" field format. Mappings are
// ordered by generated position before encoding.
func Encode(mappings []Mapping) string {
	sorted := make([]Mapping, len(mappings))
	copy(sorted, mappings)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].GenLine != sorted[j].GenLine {
			return sorted[i].GenLine < sorted[j].GenLine
		}
		return sorted[i].GenColumn < sorted[j].GenColumn
	})

	var (
		sb                       strings.Builder
		line, prevCol            int
		prevSrc, prevLine, prevC int
	)

	for i, m := range sorted {
		for line < m.GenLine {
			sb.WriteByte(';')
			line++
			prevCol = 0
		}

		if i > 0 && sorted[i-1].GenLine == m.GenLine {
			sb.WriteByte(',')
		}

		writeVLQ(&sb, m.GenColumn-prevCol)
		writeVLQ(&sb, m.Source-prevSrc)
		writeVLQ(&sb, m.SrcLine-prevLine)
		writeVLQ(&sb, m.SrcColumn-prevC)

		prevCol = m.GenColumn
		prevSrc = m.Source
		prevLine = m.SrcLine
		prevC = m.SrcColumn
	}

	return sb.String()
}

// Decode parses a "mappings" field. Segments with one field (generated
// column only) are skipped.
func Decode(mappings string) ([]Mapping, error) {
	var (
		out                      []Mapping
		prevSrc, prevLine, prevC int
	)

	for line, group := range strings.Split(mappings, ";") {
		prevCol := 0
		if group == "" {
			continue
		}

		for _, segment := range strings.Split(group, ",") {
			fields, err := readVLQs(segment)
			if err != nil {
				return nil, err
			}

			switch len(fields) {
			case 1:
				prevCol += fields[0]
				continue
			case 4, 5:
			default:
				return nil, errors.Errorf("invalid segment %q on line %d", segment, line)
			}

			prevCol += fields[0]
			prevSrc += fields[1]
			prevLine += fields[2]
			prevC += fields[3]

			out = append(out, Mapping{
				GenLine:   line,
				GenColumn: prevCol,
				Source:    prevSrc,
				SrcLine:   prevLine,
				SrcColumn: prevC,
			})
		}
	}

	return out, nil
}

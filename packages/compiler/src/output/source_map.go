package output

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

const (
	// Version is the source map version
	Version     = 3
	jsB64Prefix = "# sourceMappingURL=data:application/json;base64,"
)

// Segment is one mapping of a generated column to a source location
type Segment struct {
	Col0        int
	SourceURL   string
	SourceLine0 int
	SourceCol0  int
}

// SourceMap is the JSON shape of a version 3 source map
type SourceMap struct {
	Version        int      `json:"version"`
	File           string   `json:"file"`
	SourceRoot     string   `json:"sourceRoot"`
	Sources        []string `json:"sources"`
	SourcesContent []string `json:"sourcesContent"`
	Names          []string `json:"names"`
	Mappings       string   `json:"mappings"`
}

// SourceMapGenerator accumulates segments line by line
type SourceMapGenerator struct {
	sourcesContent map[string]string
	lines          [][]Segment
	lastCol0       int
	hasMappings    bool
	file           string
}

// NewSourceMapGenerator creates a new SourceMapGenerator
func NewSourceMapGenerator(file string) *SourceMapGenerator {
	return &SourceMapGenerator{
		sourcesContent: make(map[string]string),
		file:           file,
	}
}

// AddSource registers a source file; the first content registered for a URL wins
func (smg *SourceMapGenerator) AddSource(url string, content string) *SourceMapGenerator {
	if _, exists := smg.sourcesContent[url]; !exists {
		smg.sourcesContent[url] = content
	}
	return smg
}

// AddLine starts a new generated line
func (smg *SourceMapGenerator) AddLine() *SourceMapGenerator {
	smg.lines = append(smg.lines, []Segment{})
	smg.lastCol0 = 0
	return smg
}

// AddMapping adds a mapping to the current line
func (smg *SourceMapGenerator) AddMapping(col0 int, sourceURL string, sourceLine0, sourceCol0 int) error {
	if len(smg.lines) == 0 {
		return fmt.Errorf("a line must be added before mappings can be added")
	}
	if _, exists := smg.sourcesContent[sourceURL]; !exists {
		return fmt.Errorf("unknown source file %q", sourceURL)
	}
	if col0 < smg.lastCol0 {
		return fmt.Errorf("mapping should be added in output order")
	}

	smg.hasMappings = true
	smg.lastCol0 = col0
	last := len(smg.lines) - 1
	smg.lines[last] = append(smg.lines[last], Segment{
		Col0:        col0,
		SourceURL:   sourceURL,
		SourceLine0: sourceLine0,
		SourceCol0:  sourceCol0,
	})
	return nil
}

// ToJSON builds the source map; it returns nil when nothing was mapped
func (smg *SourceMapGenerator) ToJSON() *SourceMap {
	if !smg.hasMappings {
		return nil
	}

	sources := make([]string, 0, len(smg.sourcesContent))
	for url := range smg.sourcesContent {
		sources = append(sources, url)
	}
	sort.Strings(sources)

	sourcesIndex := make(map[string]int, len(sources))
	sourcesContent := make([]string, len(sources))
	for i, url := range sources {
		sourcesIndex[url] = i
		sourcesContent[i] = smg.sourcesContent[url]
	}

	lastSourceIndex, lastSourceLine0, lastSourceCol0 := 0, 0, 0
	lineStrs := make([]string, 0, len(smg.lines))
	for _, segments := range smg.lines {
		lastCol0 := 0
		segStrs := make([]string, 0, len(segments))
		for _, segment := range segments {
			var seg strings.Builder
			seg.WriteString(toBase64VLQ(segment.Col0 - lastCol0))
			lastCol0 = segment.Col0

			sourceIndex := sourcesIndex[segment.SourceURL]
			seg.WriteString(toBase64VLQ(sourceIndex - lastSourceIndex))
			lastSourceIndex = sourceIndex
			seg.WriteString(toBase64VLQ(segment.SourceLine0 - lastSourceLine0))
			lastSourceLine0 = segment.SourceLine0
			seg.WriteString(toBase64VLQ(segment.SourceCol0 - lastSourceCol0))
			lastSourceCol0 = segment.SourceCol0

			segStrs = append(segStrs, seg.String())
		}
		lineStrs = append(lineStrs, strings.Join(segStrs, ","))
	}

	return &SourceMap{
		Version:        Version,
		File:           smg.file,
		Sources:        sources,
		SourcesContent: sourcesContent,
		Names:          []string{},
		Mappings:       strings.Join(lineStrs, ";"),
	}
}

// ToJsComment renders the map as an inline `//# sourceMappingURL` comment
func (smg *SourceMapGenerator) ToJsComment() (string, error) {
	sourceMap := smg.ToJSON()
	if sourceMap == nil {
		return "", nil
	}
	jsonBytes, err := json.Marshal(sourceMap)
	if err != nil {
		return "", fmt.Errorf("encoding source map: %w", err)
	}
	return "//" + jsB64Prefix + base64.StdEncoding.EncodeToString(jsonBytes), nil
}

const b64Digits = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

func toBase64VLQ(value int) string {
	if value < 0 {
		value = (-value << 1) + 1
	} else {
		value = value << 1
	}

	var out strings.Builder
	for {
		digit := value & 31
		value >>= 5
		if value > 0 {
			digit |= 32
		}
		out.WriteByte(b64Digits[digit])
		if value == 0 {
			break
		}
	}
	return out.String()
}

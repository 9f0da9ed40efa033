package stl

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"

	"github.com/edu3d/stlview/pkg/geometry"
)

// ParseASCII decodes a buffer holding ASCII STL. Keywords are matched
// case-insensitively and whitespace is free-form. Missing or malformed
// name tokens after "solid"/"endsolid" are tolerated, as are stray
// tokens and blank lines between facets. A facet block that does not
// contain exactly 3 vertex lines is rejected as MalformedFacet with the
// facet index and line number.
func ParseASCII(buf []byte) (*Model, error) {
	scanner := bufio.NewScanner(bytes.NewReader(buf))
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	model := NewModel("")
	model.Format = FormatASCII

	var (
		currentNormal geometry.Vector3
		vertices      []geometry.Vector3
		inFacet       bool
		facetIndex    int
		lineNo        int
	)

	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch strings.ToLower(fields[0]) {
		case "solid":
			if len(fields) > 1 {
				model.Name = strings.Join(fields[1:], " ")
			}

		case "facet":
			inFacet = true
			vertices = vertices[:0]
			currentNormal = geometry.Vector3{}
			if len(fields) >= 5 && strings.EqualFold(fields[1], "normal") {
				normal, err := parseVector(fields[2:5])
				if err != nil {
					return nil, newMalformedFacet(facetIndex, lineNo, "invalid normal: %v", err)
				}
				currentNormal = normal
			}

		case "outer":
			// "outer loop"; being inside a facet is all that matters

		case "vertex":
			if !inFacet {
				continue
			}
			if len(vertices) >= 3 {
				return nil, newMalformedFacet(facetIndex, lineNo, "more than 3 vertex lines in facet")
			}
			if len(fields) < 4 {
				return nil, newMalformedFacet(facetIndex, lineNo, "vertex needs 3 coordinates, got %d", len(fields)-1)
			}
			vertex, err := parseVector(fields[1:4])
			if err != nil {
				return nil, newMalformedFacet(facetIndex, lineNo, "invalid vertex: %v", err)
			}
			vertices = append(vertices, vertex)

		case "endloop":
			if inFacet && len(vertices) != 3 {
				return nil, newMalformedFacet(facetIndex, lineNo, "facet has %d vertex lines, want 3", len(vertices))
			}

		case "endfacet":
			if !inFacet {
				continue
			}
			if len(vertices) != 3 {
				return nil, newMalformedFacet(facetIndex, lineNo, "facet has %d vertex lines, want 3", len(vertices))
			}
			model.AddTriangle(geometry.NewTriangle(currentNormal, vertices[0], vertices[1], vertices[2]))
			vertices = vertices[:0]
			inFacet = false
			facetIndex++

		case "endsolid":
			// trailing name, if any, is ignored

		default:
			// unknown tokens between facets are skipped, not fatal
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, newMalformedFacet(facetIndex, lineNo, "read error: %v", err)
	}
	if inFacet {
		return nil, newMalformedFacet(facetIndex, lineNo, "unterminated facet")
	}

	return model, nil
}

// parseVector parses three coordinate tokens in standard or exponential
// notation
func parseVector(fields []string) (geometry.Vector3, error) {
	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return geometry.Vector3{}, err
	}
	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return geometry.Vector3{}, err
	}
	z, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return geometry.Vector3{}, err
	}
	return geometry.NewVector3(x, y, z), nil
}

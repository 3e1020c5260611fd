package objfile

import (
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/andrerochasouza/view3d/geom"
)

type plyVertex struct {
	pos geom.Vector3
	col color.RGBA
}

type plyHeader struct {
	vertexCount, faceCount       int
	hasVertexColor, hasFaceColor bool
}

// ParsePLY reads an ASCII PLY file. Face colour comes from face colour
// properties, else the average of vertex colours, else the default material.
func ParsePLY(r io.Reader, opts Options) (*Model, error) {
	m := newModel()
	lr := newLineReader(r)
	base := geom.DefaultMaterial()

	h, err := readPLYHeader(lr)
	if err != nil {
		return nil, err
	}

	var vertices []plyVertex
	for i := 0; i < h.vertexCount; i++ {
		if !lr.Scan() {
			return nil, fmt.Errorf("unexpected end of file while reading vertices")
		}
		parts := strings.Fields(lr.Text())
		v, err := parsePLYVertex(parts, h.hasVertexColor)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lr.Line(), err)
		}
		vertices = append(vertices, v)
	}

	for i := 0; i < h.faceCount; i++ {
		if !lr.Scan() {
			return nil, fmt.Errorf("unexpected end of file while reading faces")
		}
		parts := strings.Fields(lr.Text())
		if len(parts) == 0 {
			return nil, fmt.Errorf("line %d: empty face", lr.Line())
		}
		n, err := strconv.Atoi(parts[0])
		if err != nil || n < 0 || len(parts) < n+1 {
			return nil, fmt.Errorf("line %d: invalid face data", lr.Line())
		}

		face := make([]geom.Vector3, 0, n)
		var sumR, sumG, sumB int
		for j := 1; j <= n; j++ {
			idx, err := strconv.Atoi(parts[j])
			if err != nil || idx < 0 || idx >= len(vertices) {
				return nil, fmt.Errorf("line %d: invalid vertex index '%s'", lr.Line(), parts[j])
			}
			face = append(face, vertices[idx].pos)
			sumR += int(vertices[idx].col.R)
			sumG += int(vertices[idx].col.G)
			sumB += int(vertices[idx].col.B)
		}

		mat := base
		switch {
		case h.hasFaceColor:
			if len(parts) != n+4 {
				return nil, fmt.Errorf("line %d: invalid face-color data", lr.Line())
			}
			c, err := parseRGB(parts[n+1 : n+4])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lr.Line(), err)
			}
			mat.Diffuse = c
		case h.hasVertexColor && n > 0:
			mat.Diffuse = color.RGBA{R: uint8(sumR / n), G: uint8(sumG / n), B: uint8(sumB / n), A: 255}
		}

		if opts.ReverseWinding {
			reverse(face)
		}
		m.addFace(face, mat, "", lr.Line(), opts)
	}

	if err := lr.Err(); err != nil {
		return nil, fmt.Errorf("error reading from PLY source: %w", err)
	}
	return m, nil
}

func readPLYHeader(lr *lineReader) (plyHeader, error) {
	var h plyHeader
	var element string

	for lr.Scan() {
		parts := strings.Fields(lr.Text())
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "format":
			if len(parts) < 2 || parts[1] != "ascii" {
				return h, fmt.Errorf("PLY %s: %w", strings.Join(parts[1:], " "), ErrUnsupportedFormat)
			}
		case "element":
			if len(parts) != 3 {
				continue
			}
			element = parts[1]
			count, err := strconv.Atoi(parts[2])
			if err != nil {
				return h, fmt.Errorf("line %d: invalid element count: %w", lr.Line(), err)
			}
			if count < 0 {
				return h, fmt.Errorf("line %d: negative %s count %d", lr.Line(), element, count)
			}
			switch element {
			case "vertex":
				h.vertexCount = count
			case "face":
				h.faceCount = count
			}
		case "property":
			if len(parts) > 2 && (parts[2] == "red" || parts[2] == "diffuse_red") {
				switch element {
				case "vertex":
					h.hasVertexColor = true
				case "face":
					h.hasFaceColor = true
				}
			}
		case "end_header":
			return h, nil
		}
	}
	if err := lr.Err(); err != nil {
		return h, err
	}
	return h, fmt.Errorf("missing end_header")
}

func parsePLYVertex(parts []string, withColor bool) (plyVertex, error) {
	pos, err := parseVector(parts)
	if err != nil {
		return plyVertex{}, err
	}
	v := plyVertex{pos: pos, col: color.RGBA{R: 255, G: 255, B: 255, A: 255}}
	if withColor {
		if len(parts) < 6 {
			return plyVertex{}, fmt.Errorf("invalid vertex-color data")
		}
		if v.col, err = parseRGB(parts[3:6]); err != nil {
			return plyVertex{}, err
		}
	}
	return v, nil
}

func parseRGB(parts []string) (color.RGBA, error) {
	var c [3]uint8
	for i := range c {
		n, err := strconv.ParseUint(parts[i], 10, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("could not parse colour value '%s': %w", parts[i], err)
		}
		c[i] = uint8(n)
	}
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: 255}, nil
}

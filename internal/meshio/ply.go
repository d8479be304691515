package meshio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"meshview/internal/mathutil"
	"meshview/internal/mesh"
)

// Header counts are untrusted: preallocation is capped and face lists longer
// than maxPLYPolygon are rejected.
const (
	maxPLYPrealloc = 1 << 16
	maxPLYPolygon  = 1 << 16
)

type plyFormat int

const (
	plyASCII plyFormat = iota
	plyBinaryLE
	plyBinaryBE
)

type plyProperty struct {
	name      string
	typ       string // scalar type, or element type for lists
	countType string // non-empty for list properties
}

type plyElement struct {
	name  string
	count int
	props []plyProperty
}

// readPLY handles ascii and binary PLY. Only the vertex x/y/z properties and
// the face vertex_indices list are kept; other elements are read and dropped.
func readPLY(r io.Reader) (*mesh.RawMesh, error) {
	br := bufio.NewReader(r)
	format, elements, err := readPLYHeader(br)
	if err != nil {
		return nil, err
	}

	var src plyValues
	switch format {
	case plyASCII:
		sc := bufio.NewScanner(br)
		sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		sc.Split(bufio.ScanWords)
		src = &plyASCIIValues{sc: sc}
	case plyBinaryLE:
		src = &plyBinaryValues{r: br, order: binary.LittleEndian}
	case plyBinaryBE:
		src = &plyBinaryValues{r: br, order: binary.BigEndian}
	}

	raw := &mesh.RawMesh{}
	for _, el := range elements {
		switch el.name {
		case "vertex":
			if err := readPLYVertices(src, el, raw); err != nil {
				return nil, err
			}
		case "face":
			if err := readPLYFaces(src, el, raw); err != nil {
				return nil, err
			}
		default:
			if err := skipPLYElement(src, el); err != nil {
				return nil, err
			}
		}
	}
	return raw, nil
}

func readPLYHeader(br *bufio.Reader) (plyFormat, []plyElement, error) {
	magic, err := br.ReadString('\n')
	if err != nil || strings.TrimSpace(magic) != "ply" {
		return 0, nil, fmt.Errorf("ply: missing magic")
	}

	var format plyFormat
	var elements []plyElement
	haveFormat := false
	for {
		line, err := br.ReadString('\n')
		if err != nil {
			return 0, nil, fmt.Errorf("ply: truncated header: %w", err)
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "format":
			if len(fields) < 2 {
				return 0, nil, fmt.Errorf("ply: bad format line")
			}
			switch fields[1] {
			case "ascii":
				format = plyASCII
			case "binary_little_endian":
				format = plyBinaryLE
			case "binary_big_endian":
				format = plyBinaryBE
			default:
				return 0, nil, fmt.Errorf("ply: unknown format %q", fields[1])
			}
			haveFormat = true
		case "element":
			if len(fields) < 3 {
				return 0, nil, fmt.Errorf("ply: bad element line %q", strings.TrimSpace(line))
			}
			n, err := strconv.Atoi(fields[2])
			if err != nil || n < 0 {
				return 0, nil, fmt.Errorf("ply: bad element count %q", fields[2])
			}
			elements = append(elements, plyElement{name: fields[1], count: n})
		case "property":
			if len(elements) == 0 {
				return 0, nil, fmt.Errorf("ply: property before element")
			}
			el := &elements[len(elements)-1]
			switch {
			case len(fields) == 5 && fields[1] == "list":
				el.props = append(el.props, plyProperty{name: fields[4], countType: fields[2], typ: fields[3]})
			case len(fields) == 3:
				el.props = append(el.props, plyProperty{name: fields[2], typ: fields[1]})
			default:
				return 0, nil, fmt.Errorf("ply: bad property line %q", strings.TrimSpace(line))
			}
		case "end_header":
			if !haveFormat {
				return 0, nil, fmt.Errorf("ply: missing format line")
			}
			return format, elements, nil
		}
	}
}

func readPLYVertices(src plyValues, el plyElement, raw *mesh.RawMesh) error {
	axis := map[string]int{"x": 0, "y": 1, "z": 2}
	found := 0
	for _, p := range el.props {
		if _, ok := axis[p.name]; ok && p.countType == "" {
			found++
		}
	}
	if found < 3 {
		return fmt.Errorf("ply: vertex element lacks x/y/z")
	}

	raw.Vertices = make([]mathutil.Vec3, 0, min(el.count, maxPLYPrealloc))
	for i := 0; i < el.count; i++ {
		var v mathutil.Vec3
		for _, p := range el.props {
			if p.countType != "" {
				if err := skipPLYList(src, p); err != nil {
					return err
				}
				continue
			}
			f, err := src.next(p.typ)
			if err != nil {
				return fmt.Errorf("ply: vertex %d: %w", i, err)
			}
			if k, ok := axis[p.name]; ok {
				v[k] = f
			}
		}
		raw.Vertices = append(raw.Vertices, v)
	}
	return nil
}

func readPLYFaces(src plyValues, el plyElement, raw *mesh.RawMesh) error {
	for i := 0; i < el.count; i++ {
		for _, p := range el.props {
			if p.countType == "" {
				if _, err := src.next(p.typ); err != nil {
					return fmt.Errorf("ply: face %d: %w", i, err)
				}
				continue
			}
			n, err := src.next(p.countType)
			if err != nil {
				return fmt.Errorf("ply: face %d: %w", i, err)
			}
			if n < 0 {
				return fmt.Errorf("ply: face %d: negative list length", i)
			}
			if n > maxPLYPolygon {
				return fmt.Errorf("ply: face %d: list length %.0f exceeds %d", i, n, maxPLYPolygon)
			}
			poly := make([]int, int(n))
			for k := range poly {
				f, err := src.next(p.typ)
				if err != nil {
					return fmt.Errorf("ply: face %d: %w", i, err)
				}
				poly[k] = int(f)
			}
			if p.name != "vertex_indices" && p.name != "vertex_index" {
				continue
			}
			if len(poly) < 3 {
				return fmt.Errorf("ply: face %d has %d vertices", i, len(poly))
			}
			raw.Faces = appendFan(raw.Faces, poly)
		}
	}
	return nil
}

func skipPLYElement(src plyValues, el plyElement) error {
	for i := 0; i < el.count; i++ {
		for _, p := range el.props {
			var err error
			if p.countType != "" {
				err = skipPLYList(src, p)
			} else {
				_, err = src.next(p.typ)
			}
			if err != nil {
				return fmt.Errorf("ply: %s %d: %w", el.name, i, err)
			}
		}
	}
	return nil
}

func skipPLYList(src plyValues, p plyProperty) error {
	n, err := src.next(p.countType)
	if err != nil {
		return err
	}
	if n < 0 {
		return fmt.Errorf("negative list length")
	}
	for k := 0; k < int(n); k++ {
		if _, err := src.next(p.typ); err != nil {
			return err
		}
	}
	return nil
}

// plyValues yields successive scalar values from the body, converted to float64.
type plyValues interface {
	next(typ string) (float64, error)
}

type plyASCIIValues struct {
	sc *bufio.Scanner
}

func (a *plyASCIIValues) next(typ string) (float64, error) {
	if !a.sc.Scan() {
		if err := a.sc.Err(); err != nil {
			return 0, err
		}
		return 0, io.ErrUnexpectedEOF
	}
	tok := a.sc.Text()
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, fmt.Errorf("bad %s value %q", typ, tok)
	}
	return f, nil
}

type plyBinaryValues struct {
	r     io.Reader
	order binary.ByteOrder
	buf   [8]byte
}

func (b *plyBinaryValues) next(typ string) (float64, error) {
	size := plyTypeSize(typ)
	if size == 0 {
		return 0, fmt.Errorf("unknown type %q", typ)
	}
	p := b.buf[:size]
	if _, err := io.ReadFull(b.r, p); err != nil {
		return 0, err
	}
	switch typ {
	case "char", "int8":
		return float64(int8(p[0])), nil
	case "uchar", "uint8":
		return float64(p[0]), nil
	case "short", "int16":
		return float64(int16(b.order.Uint16(p))), nil
	case "ushort", "uint16":
		return float64(b.order.Uint16(p)), nil
	case "int", "int32":
		return float64(int32(b.order.Uint32(p))), nil
	case "uint", "uint32":
		return float64(b.order.Uint32(p)), nil
	case "float", "float32":
		return float64(math.Float32frombits(b.order.Uint32(p))), nil
	default:
		return math.Float64frombits(b.order.Uint64(p)), nil
	}
}

func plyTypeSize(typ string) int {
	switch typ {
	case "char", "int8", "uchar", "uint8":
		return 1
	case "short", "int16", "ushort", "uint16":
		return 2
	case "int", "int32", "uint", "uint32", "float", "float32":
		return 4
	case "double", "float64":
		return 8
	}
	return 0
}

// Package parsetab implements the LLP(1,1) pair→action side of the
// pipeline (spec §4.J-§4.L): precomputed parse tables, the per-pair
// action-header lookup, variable-length stream packing, and bracket
// validation.
package parsetab

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/opal-lang/lanius/internal/token"
)

// signBit distinguishes push (positive) from pop (negative) in a
// stack-change element; the low bits carry the bracket kind/tag.
const signBit = uint32(1) << 31

// SCElem is one packed stack-change element (spec §3).
type SCElem uint32

// Push returns the stack-change element that pushes kind k.
func Push(k token.Kind) SCElem { return SCElem(uint32(k)) }

// Pop returns the stack-change element that pops, expecting kind k.
func Pop(k token.Kind) SCElem { return SCElem(uint32(k) | signBit) }

// IsPush reports whether e is a push (true) or a pop (false).
func (e SCElem) IsPush() bool { return uint32(e)&signBit == 0 }

// Kind returns the bracket kind/tag carried in e's low bits.
func (e SCElem) Kind() token.Kind { return token.Kind(uint32(e) &^ signBit) }

// EmitElem is one element of the partial-parse emission super-sequence: an
// opaque record consumed by a downstream tree builder. This front end only
// concatenates these records; it never interprets them (spec §1 Non-goals).
type EmitElem uint32

// ActionHeader is the per-adjacent-pair lookup result (spec §3/§4.J).
type ActionHeader struct {
	PushLen  uint32
	EmitLen  uint32
	PopTag   uint32
	PopCount uint32
}

// PrecomputedParseTables is the grammar's flattened LLP(1,1) action table
// (spec §3): super-sequence tables for stack-changes and emissions, their
// per-pair (offset,length) slices, the pop-side header fields, and the
// grid side n_kinds.
type PrecomputedParseTables struct {
	NKinds int

	ScSuperseq []SCElem
	ScOff      []uint32 // indexed [prev*NKinds+this]
	ScLen      []uint32

	PpSuperseq []EmitElem
	PpOff      []uint32
	PpLen      []uint32

	PopTag   []uint32
	PopCount []uint32
}

func (t *PrecomputedParseTables) idx(this, next token.Kind) int {
	return int(this)*t.NKinds + int(next)
}

// Header looks up the ActionHeader for the adjacent pair (this, next): the
// action triggered by having just consumed this, with next as lookahead
// (spec §4.J's grammar contract).
func (t *PrecomputedParseTables) Header(this, next token.Kind) ActionHeader {
	i := t.idx(this, next)
	return ActionHeader{
		PushLen:  t.ScLen[i],
		EmitLen:  t.PpLen[i],
		PopTag:   t.PopTag[i],
		PopCount: t.PopCount[i],
	}
}

const parseMagic = "PARSETBL01"

// Save writes t as a sequence of length-prefixed sections, one per array,
// plus n_kinds, per spec §6.
func Save(w io.Writer, t *PrecomputedParseTables) error {
	var buf bytes.Buffer
	buf.WriteString(parseMagic)
	binary.Write(&buf, binary.LittleEndian, uint32(t.NKinds))

	writeU32s := func(xs []uint32) { writeSection(&buf, xs) }
	writeSCs := func(xs []SCElem) {
		u := make([]uint32, len(xs))
		for i, x := range xs {
			u[i] = uint32(x)
		}
		writeSection(&buf, u)
	}
	writePps := func(xs []EmitElem) {
		u := make([]uint32, len(xs))
		for i, x := range xs {
			u[i] = uint32(x)
		}
		writeSection(&buf, u)
	}

	writeSCs(t.ScSuperseq)
	writeU32s(t.ScOff)
	writeU32s(t.ScLen)
	writePps(t.PpSuperseq)
	writeU32s(t.PpOff)
	writeU32s(t.PpLen)
	writeU32s(t.PopTag)
	writeU32s(t.PopCount)

	_, err := w.Write(buf.Bytes())
	return err
}

func writeSection(buf *bytes.Buffer, xs []uint32) {
	binary.Write(buf, binary.LittleEndian, uint32(len(xs)))
	for _, x := range xs {
		binary.Write(buf, binary.LittleEndian, x)
	}
}

func readSection(r *bytes.Reader) ([]uint32, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, err
	}
	out := make([]uint32, n)
	if err := binary.Read(r, binary.LittleEndian, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Load reads a PrecomputedParseTables file written by Save.
func Load(r io.Reader) (*PrecomputedParseTables, error) {
	all, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	br := bytes.NewReader(all)
	gotMagic := make([]byte, len(parseMagic))
	if _, err := io.ReadFull(br, gotMagic); err != nil {
		return nil, err
	}
	if string(gotMagic) != parseMagic {
		return nil, fmt.Errorf("parsetab: magic %q != %q", gotMagic, parseMagic)
	}

	var nKinds uint32
	if err := binary.Read(br, binary.LittleEndian, &nKinds); err != nil {
		return nil, err
	}

	scSuperseqU, err := readSection(br)
	if err != nil {
		return nil, fmt.Errorf("parsetab: sc_superseq: %w", err)
	}
	scOff, err := readSection(br)
	if err != nil {
		return nil, fmt.Errorf("parsetab: sc_off: %w", err)
	}
	scLen, err := readSection(br)
	if err != nil {
		return nil, fmt.Errorf("parsetab: sc_len: %w", err)
	}
	ppSuperseqU, err := readSection(br)
	if err != nil {
		return nil, fmt.Errorf("parsetab: pp_superseq: %w", err)
	}
	ppOff, err := readSection(br)
	if err != nil {
		return nil, fmt.Errorf("parsetab: pp_off: %w", err)
	}
	ppLen, err := readSection(br)
	if err != nil {
		return nil, fmt.Errorf("parsetab: pp_len: %w", err)
	}
	popTag, err := readSection(br)
	if err != nil {
		return nil, fmt.Errorf("parsetab: pop_tag: %w", err)
	}
	popCount, err := readSection(br)
	if err != nil {
		return nil, fmt.Errorf("parsetab: pop_count: %w", err)
	}

	scSuperseq := make([]SCElem, len(scSuperseqU))
	for i, x := range scSuperseqU {
		scSuperseq[i] = SCElem(x)
	}
	ppSuperseq := make([]EmitElem, len(ppSuperseqU))
	for i, x := range ppSuperseqU {
		ppSuperseq[i] = EmitElem(x)
	}

	want := int(nKinds) * int(nKinds)
	if len(scOff) != want || len(scLen) != want || len(popTag) != want || len(popCount) != want {
		return nil, fmt.Errorf("parsetab: per-pair array length != n_kinds^2 (%d)", want)
	}

	return &PrecomputedParseTables{
		NKinds:     int(nKinds),
		ScSuperseq: scSuperseq,
		ScOff:      scOff,
		ScLen:      scLen,
		PpSuperseq: ppSuperseq,
		PpOff:      ppOff,
		PpLen:      ppLen,
		PopTag:     popTag,
		PopCount:   popCount,
	}, nil
}

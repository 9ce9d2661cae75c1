package dfa

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/mod/semver"
)

// magic is the compact DFA table file's magic, spec §4.A/§6.
const magic = "LXDFA001"

// SchemaVersion is the generator's semver string. Save refuses to write if
// it is not valid semver, and DumpCBOR records it in the debug dump; it is
// not written into the binary table file (the reserved u32 is always 0),
// and Load performs no version check.
const SchemaVersion = "v1.0.0"

// ErrTableCorrupt is the sentinel behind every load-time validation failure
// (spec §7's TableCorrupt): magic mismatch, length mismatch, n_states
// disagreement, or checksum mismatch.
var ErrTableCorrupt = fmt.Errorf("dfa: table corrupt")

func corruptf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrTableCorrupt}, args...)...)
}

// Save writes the compact DFA table to w in the LXDFA001 layout:
//
//	magic "LXDFA001" | u32 n_states | u32 reserved(=0)
//	u16[256*n_states] next_emit
//	u16[n_states]     token_map
//	[blake2b-256 checksum of everything above]
//
// The checksum trailer is an addition documented in SPEC_FULL.md's domain
// stack (grounded on golang.org/x/crypto, a teacher dependency); readers
// that only understand the bare spec §4.A layout can still parse the file
// by ignoring the trailer.
func Save(w io.Writer, t *Table) error {
	if !semver.IsValid(SchemaVersion) {
		return fmt.Errorf("dfa: invalid schema version %q", SchemaVersion)
	}

	nextEmit, tokenMap := t.Pack()

	var body bytes.Buffer
	body.WriteString(magic)
	binary.Write(&body, binary.LittleEndian, uint32(t.NumStates))
	binary.Write(&body, binary.LittleEndian, uint32(0))
	for _, v := range nextEmit {
		binary.Write(&body, binary.LittleEndian, v)
	}
	for _, v := range tokenMap {
		binary.Write(&body, binary.LittleEndian, v)
	}

	sum := blake2b.Sum256(body.Bytes())

	if _, err := w.Write(body.Bytes()); err != nil {
		return err
	}
	_, err := w.Write(sum[:])
	return err
}

// Load reads and validates a compact DFA table file, enforcing every
// load-time invariant spec §4.A names plus the checksum trailer. The
// reserved field is read but not checked.
func Load(r io.Reader) (*Table, error) {
	all, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(all) < 32 {
		return nil, corruptf("file too short (%d bytes)", len(all))
	}

	trailer := all[len(all)-32:]
	body := all[:len(all)-32]
	sum := blake2b.Sum256(body)
	if !bytes.Equal(sum[:], trailer) {
		return nil, corruptf("checksum mismatch")
	}

	buf := bytes.NewReader(body)
	gotMagic := make([]byte, 8)
	if _, err := io.ReadFull(buf, gotMagic); err != nil {
		return nil, err
	}
	if string(gotMagic) != magic {
		return nil, corruptf("magic %q != %q", gotMagic, magic)
	}

	var nStates, reserved uint32
	if err := binary.Read(buf, binary.LittleEndian, &nStates); err != nil {
		return nil, corruptf("missing n_states: %v", err)
	}
	if err := binary.Read(buf, binary.LittleEndian, &reserved); err != nil {
		return nil, corruptf("missing reserved field: %v", err)
	}

	nextEmit := make([]uint16, 256*int(nStates))
	if err := binary.Read(buf, binary.LittleEndian, nextEmit); err != nil {
		return nil, corruptf("short next_emit array: %v", err)
	}
	tokenMap := make([]uint16, nStates)
	if err := binary.Read(buf, binary.LittleEndian, tokenMap); err != nil {
		return nil, corruptf("short token_map array: %v", err)
	}
	if buf.Len() != 0 {
		return nil, corruptf("%d trailing bytes before checksum", buf.Len())
	}

	return Unpack(int(nStates), nextEmit, tokenMap)
}

// debugDump is the CBOR debug-export shape for `gen_tables --dump-cbor`
// (SPEC_FULL.md domain stack): a human/tool-inspectable alternative to the
// canonical binary layout, never a substitute for it.
type debugDump struct {
	SchemaVersion string   `cbor:"schema_version"`
	NumStates     int      `cbor:"num_states"`
	TokenMap      []string `cbor:"token_map"`
}

// DumpCBOR renders a Table as a CBOR document for inspection tooling.
func DumpCBOR(t *Table) ([]byte, error) {
	d := debugDump{SchemaVersion: SchemaVersion, NumStates: t.NumStates}
	for _, k := range t.TokenMap {
		d.TokenMap = append(d.TokenMap, k.String())
	}
	return cbor.Marshal(d)
}

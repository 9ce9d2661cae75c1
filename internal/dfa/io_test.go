package dfa

import (
	"bytes"
	"errors"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	table, err := BuildGrammar()
	if err != nil {
		t.Fatalf("BuildGrammar() error: %v", err)
	}

	var buf bytes.Buffer
	if err := Save(&buf, table); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	got, err := Load(&buf)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got.NumStates != table.NumStates {
		t.Errorf("NumStates = %d, want %d", got.NumStates, table.NumStates)
	}

	wantNextEmit, wantTokenMap := table.Pack()
	gotNextEmit, gotTokenMap := got.Pack()
	if !equalU16(wantNextEmit, gotNextEmit) {
		t.Error("packed next_emit arrays differ after round trip")
	}
	if !equalU16(wantTokenMap, gotTokenMap) {
		t.Error("packed token_map arrays differ after round trip")
	}
}

func equalU16(a, b []uint16) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestLoadRejectsBadMagic(t *testing.T) {
	table, err := BuildGrammar()
	if err != nil {
		t.Fatalf("BuildGrammar() error: %v", err)
	}
	var buf bytes.Buffer
	if err := Save(&buf, table); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	corrupted := buf.Bytes()
	corrupted[0] = 'Z'

	_, err = Load(bytes.NewReader(corrupted))
	if err == nil {
		t.Fatal("expected TableCorrupt error for bad magic")
	}
	if !errors.Is(err, ErrTableCorrupt) {
		t.Errorf("error %v is not ErrTableCorrupt", err)
	}
}

func TestLoadRejectsChecksumMismatch(t *testing.T) {
	table, err := BuildGrammar()
	if err != nil {
		t.Fatalf("BuildGrammar() error: %v", err)
	}
	var buf bytes.Buffer
	if err := Save(&buf, table); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	corrupted := buf.Bytes()
	corrupted[20] ^= 0xFF // flip a byte inside the packed arrays, not the trailer

	_, err = Load(bytes.NewReader(corrupted))
	if err == nil {
		t.Fatal("expected TableCorrupt error for checksum mismatch")
	}
	if !errors.Is(err, ErrTableCorrupt) {
		t.Errorf("error %v is not ErrTableCorrupt", err)
	}
}

func TestLoadRejectsTruncated(t *testing.T) {
	_, err := Load(bytes.NewReader([]byte("short")))
	if err == nil || !errors.Is(err, ErrTableCorrupt) {
		t.Fatalf("expected ErrTableCorrupt for truncated input, got %v", err)
	}
}

func TestDumpCBOR(t *testing.T) {
	table, err := BuildGrammar()
	if err != nil {
		t.Fatalf("BuildGrammar() error: %v", err)
	}
	doc, err := DumpCBOR(table)
	if err != nil {
		t.Fatalf("DumpCBOR() error: %v", err)
	}
	if len(doc) == 0 {
		t.Error("DumpCBOR() returned empty document")
	}
}

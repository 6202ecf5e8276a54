package state

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/justyntemme/stylego/pkg/framework/param"
)

func newTestRegistry() *param.Registry {
	r := param.NewRegistry()
	r.Add(
		param.New(0, "swing").Default(0.5).Build(),
		param.New(1, "accent").Range(-50, 50).Default(20).Build(),
		param.New(2, "humanize").Build(),
	)
	return r
}

func TestSaveLoadRoundTrip(t *testing.T) {
	src := newTestRegistry()
	src.Get(0).SetValue(0.8)
	src.Get(1).SetValue(0.25)
	src.Get(2).SetValue(0.33)

	var buf bytes.Buffer
	if err := NewManager(src).Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}

	dst := newTestRegistry()
	if err := NewManager(dst).Load(&buf); err != nil {
		t.Fatalf("Load: %v", err)
	}

	for _, id := range []uint32{0, 1, 2} {
		if got, want := dst.Get(id).GetValue(), src.Get(id).GetValue(); got != want {
			t.Errorf("parameter %d: restored %v, want %v", id, got, want)
		}
	}
}

func TestLoadRejectsBadMagic(t *testing.T) {
	m := NewManager(newTestRegistry())
	if err := m.Load(bytes.NewReader([]byte("BOGUS!\x01\x00\x00\x00"))); err == nil {
		t.Error("Load accepted bad magic")
	}
}

func TestLoadRejectsNewerVersion(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("STYLGO")
	binary.Write(&buf, binary.LittleEndian, uint32(99))
	binary.Write(&buf, binary.LittleEndian, int32(0))

	m := NewManager(newTestRegistry())
	if err := m.Load(&buf); err == nil {
		t.Error("Load accepted a newer version")
	}
}

func TestLoadRejectsTruncatedStream(t *testing.T) {
	src := newTestRegistry()
	var buf bytes.Buffer
	if err := NewManager(src).Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}

	truncated := buf.Bytes()[:buf.Len()-4]
	m := NewManager(newTestRegistry())
	if err := m.Load(bytes.NewReader(truncated)); err == nil {
		t.Error("Load accepted a truncated stream")
	}
}

func TestLoadSkipsUnknownParameterIDs(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("STYLGO")
	binary.Write(&buf, binary.LittleEndian, uint32(1))
	binary.Write(&buf, binary.LittleEndian, int32(2))
	binary.Write(&buf, binary.LittleEndian, uint32(77)) // not declared
	binary.Write(&buf, binary.LittleEndian, float64(0.9))
	binary.Write(&buf, binary.LittleEndian, uint32(0))
	binary.Write(&buf, binary.LittleEndian, float64(0.6))

	reg := newTestRegistry()
	if err := NewManager(reg).Load(&buf); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := reg.Get(0).GetValue(); got != 0.6 {
		t.Errorf("parameter 0 = %v, want 0.6", got)
	}
}

func TestLoadClampsRestoredValues(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("STYLGO")
	binary.Write(&buf, binary.LittleEndian, uint32(1))
	binary.Write(&buf, binary.LittleEndian, int32(1))
	binary.Write(&buf, binary.LittleEndian, uint32(0))
	binary.Write(&buf, binary.LittleEndian, float64(42.0))

	reg := newTestRegistry()
	if err := NewManager(reg).Load(&buf); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := reg.Get(0).GetValue(); got != 1 {
		t.Errorf("parameter 0 = %v, want clamped to 1", got)
	}
}

func TestRestoreHookRunsAfterValuesApplied(t *testing.T) {
	src := newTestRegistry()
	src.Get(0).SetValue(0.8)
	var buf bytes.Buffer
	if err := NewManager(src).Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}

	dst := newTestRegistry()
	m := NewManager(dst)
	seen := -1.0
	m.OnRestore(func() { seen = dst.Get(0).GetValue() })

	if err := m.Load(&buf); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if seen != 0.8 {
		t.Errorf("restore hook saw %v, want 0.8 (values applied first)", seen)
	}
}

func TestRestoreHookNotCalledOnError(t *testing.T) {
	m := NewManager(newTestRegistry())
	called := false
	m.OnRestore(func() { called = true })

	m.Load(bytes.NewReader([]byte("GARBAGE")))
	if called {
		t.Error("restore hook ran after a failed load")
	}
}

package record

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func sampleRecord(t *testing.T, s *Schema, genus string, x int) Record {
	t.Helper()
	rec := New(s)
	set := func(name string, v any) {
		if err := rec.Set(name, v); err != nil {
			t.Fatalf("set %s: %v", name, err)
		}
	}
	set(FieldSampleID, "id-"+genus)
	set(FieldImageFile, "nelicourvi.jpg")
	set(FieldGenus, genus)
	set(FieldSpecies, "nelicourvi")
	set(FieldPlumageRegion, "Crown, forehead") // comma must survive the CSV round trip
	set(FieldX, x)
	set(FieldY, 12)
	set(FieldRadius, 3)
	set(FieldSampleSize, 36)
	set(StatField("rgb", "r", "mean"), 254.5)
	set(StatField("hsv", "h", "std"), 0.1+0.2)
	return rec
}

func TestDefaultSchema_Layout(t *testing.T) {
	s := DefaultSchema()
	if s.Len() != 16+36 {
		t.Fatalf("unexpected field count %d", s.Len())
	}
	h := s.Header()
	if h[0] != FieldSampleID || h[16] != "rgb_r_mean" || h[len(h)-1] != "hsv_v_max" {
		t.Fatalf("unexpected header layout %v", h)
	}
	if _, f, ok := s.Lookup("hsv_s_var"); !ok || f.Kind != Float {
		t.Fatalf("hsv_s_var missing or mistyped: %+v", f)
	}
}

func TestNewSchema_RejectsDuplicates(t *testing.T) {
	if _, err := NewSchema(Field{"a", String}, Field{"a", Int}); err == nil {
		t.Fatalf("expected duplicate error")
	}
}

func TestRecord_SetChecksNamesAndKinds(t *testing.T) {
	rec := New(DefaultSchema())
	if err := rec.Set("wingspan", 3); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if err := rec.Set(FieldX, 1.5); !errors.Is(err, ErrFieldType) {
		t.Fatalf("expected ErrFieldType, got %v", err)
	}
	if err := rec.Set(FieldGenus, "Ploceus"); err != nil {
		t.Fatal(err)
	}
	if rec.Text(FieldGenus) != "Ploceus" {
		t.Fatalf("value not stored")
	}
	if _, ok := rec.Get(FieldSex); ok {
		t.Fatalf("unset field reported as present")
	}
}

func TestDataset_SaveLoadRoundTrip(t *testing.T) {
	s := DefaultSchema()
	path := filepath.Join(t.TempDir(), "samples.csv")
	ds := NewDataset(s)
	orig := []Record{sampleRecord(t, s, "Ploceus", 4), sampleRecord(t, s, "Foudia", 9)}
	for _, r := range orig {
		if err := ds.Insert(r); err != nil {
			t.Fatal(err)
		}
	}
	if err := ds.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	if ds.Len() != 0 {
		t.Fatalf("pending not cleared after successful save")
	}
	got, err := Load(s, path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != len(orig) {
		t.Fatalf("expected %d records, got %d", len(orig), len(got))
	}
	for i := range orig {
		a, b := orig[i].Strings(), got[i].Strings()
		if strings.Join(a, "|") != strings.Join(b, "|") {
			t.Fatalf("row %d mismatch:\n%v\n%v", i, a, b)
		}
	}
	if v, _ := got[0].Get(StatField("hsv", "h", "std")); v.(float64) != 0.1+0.2 {
		t.Fatalf("float not preserved exactly: %v", v)
	}
	if got[0].Text(FieldPlumageRegion) != "Crown, forehead" {
		t.Fatalf("comma value mangled: %q", got[0].Text(FieldPlumageRegion))
	}
}

func TestDataset_SaveAppendsWithoutSecondHeader(t *testing.T) {
	s := DefaultSchema()
	path := filepath.Join(t.TempDir(), "samples.csv")
	ds := NewDataset(s)
	_ = ds.Insert(sampleRecord(t, s, "Ploceus", 1))
	if err := ds.Save(path); err != nil {
		t.Fatal(err)
	}
	_ = ds.Insert(sampleRecord(t, s, "Vanga", 2))
	if err := ds.Save(path); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if n := strings.Count(string(data), FieldSampleID+","); n != 1 {
		t.Fatalf("expected a single header row, found %d", n)
	}
	got, err := Load(s, path)
	if err != nil || len(got) != 2 || got[1].Text(FieldGenus) != "Vanga" {
		t.Fatalf("append failed: %v err=%v", len(got), err)
	}
}

func TestDataset_FailedSaveKeepsPending(t *testing.T) {
	s := DefaultSchema()
	ds := NewDataset(s)
	_ = ds.Insert(sampleRecord(t, s, "Ploceus", 1))
	bad := filepath.Join(t.TempDir(), "missing-dir", "samples.csv")
	if err := ds.Save(bad); err == nil {
		t.Fatalf("expected save into missing directory to fail")
	}
	if ds.Len() != 1 {
		t.Fatalf("pending records lost after failed save")
	}
}

func TestDataset_HeaderMismatch(t *testing.T) {
	s := DefaultSchema()
	path := filepath.Join(t.TempDir(), "other.csv")
	if err := os.WriteFile(path, []byte("a,b,c\n1,2,3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	ds := NewDataset(s)
	_ = ds.Insert(sampleRecord(t, s, "Ploceus", 1))
	if err := ds.Save(path); !errors.Is(err, ErrHeaderMismatch) {
		t.Fatalf("expected ErrHeaderMismatch, got %v", err)
	}
	if ds.Len() != 1 {
		t.Fatalf("pending records lost after rejected save")
	}
	data, _ := os.ReadFile(path)
	if string(data) != "a,b,c\n1,2,3\n" {
		t.Fatalf("foreign file modified: %q", data)
	}
}

func TestDataset_RemoveLast(t *testing.T) {
	s := DefaultSchema()
	ds := NewDataset(s)
	if ds.RemoveLast() {
		t.Fatalf("remove on empty dataset should report false")
	}
	_ = ds.Insert(sampleRecord(t, s, "Ploceus", 1))
	_ = ds.Insert(sampleRecord(t, s, "Foudia", 2))
	if !ds.RemoveLast() || ds.Len() != 1 || ds.Pending()[0].Text(FieldGenus) != "Ploceus" {
		t.Fatalf("unexpected pending after RemoveLast")
	}
}

func TestDataset_InsertCopiesRecord(t *testing.T) {
	s := DefaultSchema()
	ds := NewDataset(s)
	rec := sampleRecord(t, s, "Ploceus", 1)
	_ = ds.Insert(rec)
	_ = rec.Set(FieldGenus, "Changed")
	if ds.Pending()[0].Text(FieldGenus) != "Ploceus" {
		t.Fatalf("dataset shares storage with caller record")
	}
	other, _ := NewSchema(Field{"a", String})
	if err := ds.Insert(New(other)); err == nil {
		t.Fatalf("expected schema mismatch error")
	}
}

func TestDataset_SaveKeepsFileMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}
	s := DefaultSchema()
	path := filepath.Join(t.TempDir(), "samples.csv")
	ds := NewDataset(s)
	_ = ds.Insert(sampleRecord(t, s, "Ploceus", 1))
	if err := ds.Save(path); err != nil {
		t.Fatal(err)
	}
	fi, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if fi.Mode().Perm() != 0o644 {
		t.Fatalf("new dataset mode %v, want 0644", fi.Mode().Perm())
	}
	if err := os.Chmod(path, 0o664); err != nil {
		t.Fatal(err)
	}
	_ = ds.Insert(sampleRecord(t, s, "Foudia", 2))
	if err := ds.Save(path); err != nil {
		t.Fatal(err)
	}
	if fi, _ = os.Stat(path); fi.Mode().Perm() != 0o664 {
		t.Fatalf("append changed mode to %v", fi.Mode().Perm())
	}
}

package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"
	"testing"
	"time"
)

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func newTestManager(t *testing.T) *FileManager {
	t.Helper()
	root := t.TempDir()
	fm := NewFileManager(
		filepath.Join(root, "input"),
		filepath.Join(root, "output"),
		filepath.Join(root, "archive"),
	)
	if err := fm.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	return fm
}

func TestDiscoverInputFiles(t *testing.T) {
	fm := newTestManager(t)

	for _, name := range []string{"b.csv", "a.CSV", "c.xlsx", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(fm.InputDir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(fm.InputDir, "dir.csv"), 0755); err != nil {
		t.Fatal(err)
	}

	got, err := fm.DiscoverInputFiles(".csv", ".xlsx")
	if err != nil {
		t.Fatalf("DiscoverInputFiles failed: %v", err)
	}

	want := []string{
		filepath.Join(fm.InputDir, "a.CSV"),
		filepath.Join(fm.InputDir, "b.csv"),
		filepath.Join(fm.InputDir, "c.xlsx"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DiscoverInputFiles() = %v, want %v", got, want)
	}

	csvOnly, err := fm.DiscoverInputFiles()
	if err != nil {
		t.Fatalf("DiscoverInputFiles failed: %v", err)
	}
	if len(csvOnly) != 2 {
		t.Errorf("default extension should match 2 files, got %v", csvOnly)
	}
}

func TestWriteOutput(t *testing.T) {
	fm := newTestManager(t)

	path, err := fm.WriteOutput("output.ini", "[MACHINES]\n\n")
	if err != nil {
		t.Fatalf("WriteOutput failed: %v", err)
	}
	if path != filepath.Join(fm.OutputDir, "output.ini") {
		t.Errorf("path = %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "[MACHINES]\n\n" {
		t.Errorf("content = %q", data)
	}
}

func TestWriteOutput_StaysInsideOutputDir(t *testing.T) {
	fm := newTestManager(t)

	path, err := fm.WriteOutput("../../escape.ini", "x")
	if err != nil {
		t.Fatalf("WriteOutput failed: %v", err)
	}
	if !strings.HasPrefix(path, fm.OutputDir+string(filepath.Separator)) {
		t.Errorf("path %q escaped %q", path, fm.OutputDir)
	}
}

func TestWriteFileAtomic_Replaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "output.ini")

	if err := WriteFileAtomic(path, []byte("old")); err != nil {
		t.Fatalf("WriteFileAtomic failed: %v", err)
	}
	if err := WriteFileAtomic(path, []byte("new")); err != nil {
		t.Fatalf("WriteFileAtomic failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "new" {
		t.Errorf("content = %q, want new", data)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("temporary files left behind: %v", entries)
	}
}

func TestArchiveInputFile(t *testing.T) {
	fm := newTestManager(t)
	src := filepath.Join(fm.InputDir, "hall.csv")
	if err := os.WriteFile(src, []byte("data"), 0644); err != nil {
		t.Fatal(err)
	}

	archived, err := fm.ArchiveInputFile(src)
	if err != nil {
		t.Fatalf("ArchiveInputFile failed: %v", err)
	}
	if archived != filepath.Join(fm.InputArchiveDir, "hall.csv") {
		t.Errorf("archived = %q", archived)
	}
	if exists(src) {
		t.Error("source should have been moved")
	}
	if !exists(archived) {
		t.Error("archive copy missing")
	}
}

func TestArchiveInputFile_ByDate(t *testing.T) {
	fm := newTestManager(t)
	fm.UseTimestampSubdirs = true
	src := filepath.Join(fm.InputDir, "hall.csv")
	if err := os.WriteFile(src, []byte("data"), 0644); err != nil {
		t.Fatal(err)
	}

	archived, err := fm.ArchiveInputFile(src)
	if err != nil {
		t.Fatalf("ArchiveInputFile failed: %v", err)
	}

	now := time.Now()
	wantDir := filepath.Join(fm.InputArchiveDir, now.Format("2006"), now.Format("01"), now.Format("02"))
	if filepath.Dir(archived) != wantDir {
		t.Errorf("archived to %q, want directory %q", archived, wantDir)
	}
}

func TestArchiveInputFile_Disabled(t *testing.T) {
	fm := newTestManager(t)
	fm.ArchiveOnSuccess = false
	src := filepath.Join(fm.InputDir, "hall.csv")
	if err := os.WriteFile(src, []byte("data"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := fm.ArchiveInputFile(src)
	if err != nil {
		t.Fatalf("ArchiveInputFile failed: %v", err)
	}
	if got != src || !exists(src) {
		t.Error("disabled archiving should leave the file alone")
	}
}

func TestGenerateOutputFileName(t *testing.T) {
	tests := []struct {
		format string
		input  string
		match  string
	}{
		{"{original}.ini", "input/hall-b.csv", `^hall-b\.ini$`},
		{"{original}", "input/hall-b.xlsx", `^hall-b\.ini$`},
		{"{original}_{date}.ini", "x.csv", `^x_\d{8}\.ini$`},
		{"{timestamp}.INI", "x.csv", `^\d{8}_\d{6}\.INI$`},
		{"{uuid}.ini", "x.csv", `^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\.ini$`},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			got := GenerateOutputFileName(tt.format, tt.input)
			if !regexp.MustCompile(tt.match).MatchString(got) {
				t.Errorf("GenerateOutputFileName(%q, %q) = %q, want match %s", tt.format, tt.input, got, tt.match)
			}
		})
	}
}

func TestWriteErrorLog(t *testing.T) {
	fm := newTestManager(t)

	path, err := fm.WriteErrorLog(nil, "run")
	if err != nil || path != "" {
		t.Errorf("empty log: path=%q err=%v", path, err)
	}

	path, err = fm.WriteErrorLog([]ErrorLogEntry{{
		Timestamp:    time.Now(),
		FileName:     "bad.csv",
		ErrorType:    "shape",
		ErrorMessage: "line 3 has 2 field(s), header has 3",
	}}, "run-1")
	if err != nil {
		t.Fatalf("WriteErrorLog failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	for _, want := range []string{"run-1", "bad.csv", "shape", "Total Errors: 1"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("error log missing %q:\n%s", want, data)
		}
	}
}

func TestFormatSummary(t *testing.T) {
	start := time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC)
	summary := ProcessingSummary{
		RunID:           "run-1",
		StartTime:       start,
		EndTime:         start.Add(2 * time.Second),
		TotalFiles:      2,
		SuccessfulFiles: 1,
		FailedFiles:     1,
		SkippedFiles:    1,
		TotalMachines:   5,
		ProcessedFiles:  []ProcessedFileInfo{{InputFile: "a.csv", OutputFile: "a.ini", Machines: 5}},
		FailedFilesList: []FailedFileInfo{{InputFile: "b.csv", ErrorType: "schema", ErrorMessage: "missing"}},
	}

	var buf bytes.Buffer
	if err := FormatSummary(&buf, summary); err != nil {
		t.Fatalf("FormatSummary failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Run ID:         run-1", "Duration:       2s", "Successful:     1", "Skipped:        1", "a.ini", "b.csv", "schema"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestWriteSummaryLog(t *testing.T) {
	fm := newTestManager(t)
	now := time.Now()

	path, err := fm.WriteSummaryLog(ProcessingSummary{RunID: "r", StartTime: now, EndTime: now})
	if err != nil {
		t.Fatalf("WriteSummaryLog failed: %v", err)
	}
	if filepath.Dir(path) != fm.OutputDir {
		t.Errorf("summary written to %q", path)
	}
}

func TestNewRunID(t *testing.T) {
	if NewRunID() == NewRunID() {
		t.Error("run IDs should be unique")
	}
}

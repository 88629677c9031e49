package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mgpai22/asslrc/internal/convert"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const testScript = `[Events]
Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text
Dialogue: 0,0:00:01.00,0:00:02.00,Default,,0,0,0,,one
Dialogue: 0,0:00:01.00,0:00:02.00,Default,,0,0,0,,two
`

func resetFlags(cmds ...*cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	for _, c := range cmds {
		c.Flags().VisitAll(reset)
		c.PersistentFlags().VisitAll(reset)
	}
	verbose = false
	configPath = ""
}

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd, convertCmd, configCmd)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestConvertCommandDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "song.ass"), []byte(testScript), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, "blank.ass"), []byte("[Events]\n"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	out, err := executeCommand(t, "convert", "-i", tmpDir, "--summary", "plain")
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if !strings.Contains(out, "blank.ass not converted (no usable dialogue)") {
		t.Errorf("missing not-converted line, got:\n%s", out)
	}
	if !strings.Contains(out, "Found 2 files, converted 1.") {
		t.Errorf("missing summary, got:\n%s", out)
	}

	data, err := os.ReadFile(filepath.Join(tmpDir, "song.lrc"))
	if err != nil {
		t.Fatalf("expected output file: %v", err)
	}
	if string(data) != "[00:01.00]one\n[00:01.05]two" {
		t.Errorf("unexpected output %q", data)
	}

	out, err = executeCommand(t, "convert", "-i", tmpDir, "--summary", "plain")
	if err != nil {
		t.Fatalf("second convert failed: %v", err)
	}
	if strings.Contains(out, "song.ass") {
		t.Errorf("existing output should not be reported, got:\n%s", out)
	}
	if !strings.Contains(out, "Found 2 files, converted 0.") {
		t.Errorf("missing summary, got:\n%s", out)
	}
}

func TestConvertCommandNoFiles(t *testing.T) {
	tmpDir := t.TempDir()

	out, err := executeCommand(t, "convert", "--input-dir", tmpDir)
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if !strings.Contains(out, "No files matching *.ass found") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestConvertCommandExplicitFilesAndTable(t *testing.T) {
	tmpDir := t.TempDir()
	outDir := filepath.Join(tmpDir, "out")
	input := filepath.Join(tmpDir, "track.ass")
	if err := os.WriteFile(input, []byte(testScript), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	out, err := executeCommand(t, "convert", input, "-o", outDir, "--summary", "table")
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if !strings.Contains(out, "track.ass") || !strings.Contains(out, "converted") {
		t.Errorf("table missing row, got:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(outDir, "track.lrc")); err != nil {
		t.Errorf("expected output in output dir: %v", err)
	}
}

func TestConvertCommandRejectsBadFlags(t *testing.T) {
	if _, err := executeCommand(t, "convert", "--concurrency", "0", "-i", t.TempDir()); err == nil {
		t.Error("expected error for zero concurrency")
	}
	if _, err := executeCommand(t, "convert", "--summary", "json", "-i", t.TempDir()); err == nil {
		t.Error("expected error for unknown summary")
	}
}

func TestConvertCommandUsesConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	inDir := filepath.Join(tmpDir, "in")
	if err := os.Mkdir(inDir, 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(inDir, "song.ssa"), []byte(testScript), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	cfgPath := filepath.Join(tmpDir, "asslrc.yaml")
	cfg := "input_dir: " + inDir + "\npattern: \"*.ssa\"\nsummary: plain\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	out, err := executeCommand(t, "--config", cfgPath, "convert")
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if !strings.Contains(out, "Found 1 files, converted 1.") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestConfigCommand(t *testing.T) {
	out, err := executeCommand(t, "config")
	if err != nil {
		t.Fatalf("config failed: %v", err)
	}
	for _, want := range []string{"input_dir:", "*.ass", ".lrc", "concurrency: 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestWriteSummaryPlain(t *testing.T) {
	summary := convert.Summary{Results: []convert.Result{
		{InputPath: "/x/a.ass", Outcome: convert.OutcomeConverted},
		{InputPath: "/x/b.ass", Outcome: convert.OutcomeExists},
		{InputPath: "/x/c.ass", Outcome: convert.OutcomeNoEntries},
	}}

	var buf bytes.Buffer
	writeSummary(&buf, summary, false)

	want := "c.ass not converted (no usable dialogue)\nFound 3 files, converted 1.\n"
	if buf.String() != want {
		t.Errorf("writeSummary() = %q, want %q", buf.String(), want)
	}
}

func TestUseTable(t *testing.T) {
	var buf bytes.Buffer
	if useTable("auto", &buf) {
		t.Error("auto should not pick a table for a non-terminal writer")
	}
	if !useTable("table", &buf) {
		t.Error("table mode should force a table")
	}
	if useTable("plain", &buf) {
		t.Error("plain mode should never pick a table")
	}
}

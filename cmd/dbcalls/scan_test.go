package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"dbcalls/internal/errors"
)

// resetFlags restores every scan and global flag to its default and clears
// cobra's Changed markers, so one test's flags never leak into the next.
func resetFlags(t *testing.T) {
	t.Helper()
	for _, fs := range []*pflag.FlagSet{scanCmd.Flags(), rootCmd.PersistentFlags()} {
		fs.VisitAll(func(f *pflag.Flag) {
			var err error
			if sv, ok := f.Value.(pflag.SliceValue); ok {
				err = sv.Replace(nil)
			} else {
				err = f.Value.Set(f.DefValue)
			}
			if err != nil {
				t.Fatalf("resetting --%s: %v", f.Name, err)
			}
			f.Changed = false
		})
	}
}

// executeScan runs the scan command with fresh flag state.
func executeScan(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	for _, name := range []string{"DBCALLS_SCAN_ROOT", "DBCALLS_SCAN_MODE", "DBCALLS_SCAN_OUTPUT", "DBCALLS_SCAN_EXCLUDE",
		"DBCALLS_REPORT_OUTPUT_DIR", "DBCALLS_RESOLVER_SCIP_INDEX", "DBCALLS_LOG_FILE"} {
		t.Setenv(name, "")
	}
	resetFlags(t)
	t.Cleanup(func() {
		resetFlags(t)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	var out, errOut bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append([]string{"scan", "-q"}, args...))

	err := rootCmd.Execute()
	return out.String(), err
}

func TestScan_InvalidMenuOption(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "A.cs"), []byte("class A {}"), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := executeScan(t, "Z\n"+root+"\n", "--output", "file")
	if err != nil {
		t.Fatalf("invalid option must not fail: %v", err)
	}
	if !strings.HasSuffix(out, "Option: Invalid option.\n") {
		t.Errorf("output = %q", out)
	}
	if strings.Contains(out, "Enter the path") {
		t.Error("path must not be asked after an invalid option")
	}

	entries, _ := os.ReadDir(root)
	if len(entries) != 1 {
		t.Errorf("no report file expected, found %v", entries)
	}
}

func TestScan_InvalidModeFlag(t *testing.T) {
	_, err := executeScan(t, "", t.TempDir(), "--mode", "Z")
	if errors.CodeOf(err) != errors.InvalidInput {
		t.Fatalf("err = %v", err)
	}
}

func TestScan_InvalidOutput(t *testing.T) {
	_, err := executeScan(t, "", t.TempDir(), "--mode", "A", "--output", "xml")
	if errors.CodeOf(err) != errors.InvalidInput {
		t.Fatalf("err = %v", err)
	}
}

func TestScan_MissingFolder(t *testing.T) {
	_, err := executeScan(t, "", filepath.Join(t.TempDir(), "missing"), "--mode", "A")
	if errors.CodeOf(err) != errors.InvalidInput {
		t.Fatalf("err = %v", err)
	}
}

func TestResetFlags_ClearsExcludeBetweenRuns(t *testing.T) {
	root := t.TempDir()
	_, err := executeScan(t, "", "--mode", "A", "--output", "xml", "--exclude", "bin", "--exclude", "obj", root)
	if errors.CodeOf(err) != errors.InvalidInput {
		t.Fatalf("err = %v", err)
	}
	if !scanCmd.Flags().Changed("exclude") || len(scanExclude) != 2 {
		t.Fatalf("exclude not parsed: %v", scanExclude)
	}

	resetFlags(t)

	if len(scanExclude) != 0 {
		t.Errorf("scanExclude = %v after reset", scanExclude)
	}
	for _, name := range []string{"exclude", "mode", "output"} {
		if scanCmd.Flags().Changed(name) {
			t.Errorf("--%s still marked as changed", name)
		}
	}
	if scanMode != "" || scanOutput != "" {
		t.Errorf("mode/output not reset: %q %q", scanMode, scanOutput)
	}
}

package scan

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	dberrors "dbcalls/internal/errors"
	"dbcalls/internal/report"
	"dbcalls/internal/rules"
	"dbcalls/internal/syntax"
)

// fakeParser returns canned units keyed by file base name.
type fakeParser struct {
	units  map[string]*syntax.Unit
	err    error
	parsed []string
}

func (f *fakeParser) ParseFile(ctx context.Context, path string) (*syntax.Unit, error) {
	f.parsed = append(f.parsed, filepath.Base(path))
	if f.err != nil {
		return nil, f.err
	}
	unit, ok := f.units[filepath.Base(path)]
	if !ok {
		return &syntax.Unit{Path: path}, nil
	}
	clone := *unit
	clone.Path = path
	return &clone, nil
}

type recordingSink struct {
	lines  []string
	closed bool
}

func (s *recordingSink) WriteLine(line string) error {
	s.lines = append(s.lines, line)
	return nil
}

func (s *recordingSink) Close() error {
	s.closed = true
	return nil
}

func writeFiles(t *testing.T, files ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestRun(t *testing.T) {
	root := writeFiles(t, "Data/A.cs", "Data/B.cs", "notes.txt")
	parser := &fakeParser{units: map[string]*syntax.Unit{
		"A.cs": {
			Usings:      []syntax.Using{{Name: "System.Data.SqlClient"}},
			Invocations: []syntax.Invocation{{Name: "Where", MemberAccess: true, Line: 7}},
			Creations:   []syntax.Creation{{Type: "SqlCommand", Line: 8, Literal: "GetOrders", HasLiteral: true}},
		},
	}}
	sink := &recordingSink{}

	res, err := Run(context.Background(), Options{
		Root:   root,
		Mode:   rules.ModeCombined,
		Parser: parser,
		Sink:   sink,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if res.Files != 2 || res.Matches != 2 {
		t.Errorf("result = %+v", res)
	}
	if res.RunID == "" {
		t.Error("missing run id")
	}
	want := []string{
		"Found method call 'Where' in file '" + filepath.Join("Data", "A.cs") + "' at line 7",
		"Found stored procedure 'GetOrders' ('new System.Data.SqlClient.SqlCommand') in file '" + filepath.Join("Data", "A.cs") + "' at line 8",
		"Total Database Requests Found: 2",
	}
	if strings.Join(sink.lines, "\n") != strings.Join(want, "\n") {
		t.Errorf("lines =\n%s\nwant\n%s", strings.Join(sink.lines, "\n"), strings.Join(want, "\n"))
	}
	if !sink.closed {
		t.Error("sink was not closed")
	}
}

func TestRun_InvalidMode(t *testing.T) {
	parser := &fakeParser{}
	sink := &recordingSink{}

	_, err := Run(context.Background(), Options{
		Root:   t.TempDir(),
		Mode:   rules.ModeInvalid,
		Parser: parser,
		Sink:   sink,
	})
	if dberrors.CodeOf(err) != dberrors.InvalidInput {
		t.Fatalf("err = %v", err)
	}
	if len(parser.parsed) != 0 || len(sink.lines) != 0 || sink.closed {
		t.Error("invalid mode must not do any work")
	}
}

func TestRun_FailsFast(t *testing.T) {
	root := writeFiles(t, "a.cs", "b.cs")
	boom := dberrors.Wrap(dberrors.FileReadFailed, errors.New("boom"), "failed to read")
	parser := &fakeParser{err: boom}
	sink := &recordingSink{}

	_, err := Run(context.Background(), Options{
		Root:   root,
		Mode:   rules.ModeCombined,
		Parser: parser,
		Sink:   sink,
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if len(parser.parsed) != 1 {
		t.Errorf("parsed %v, want a single file", parser.parsed)
	}
	if sink.closed || len(sink.lines) != 0 {
		t.Error("aborted run must not write a summary or close the sink")
	}
}

func TestRun_MissingRoot(t *testing.T) {
	_, err := Run(context.Background(), Options{
		Root:   filepath.Join(t.TempDir(), "missing"),
		Mode:   rules.ModeCombined,
		Parser: &fakeParser{},
		Sink:   &recordingSink{},
	})
	if dberrors.CodeOf(err) != dberrors.FileReadFailed {
		t.Fatalf("err = %v", err)
	}
}

func TestRun_Cancelled(t *testing.T) {
	root := writeFiles(t, "a.cs")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	parser := &fakeParser{}
	_, err := Run(ctx, Options{Root: root, Mode: rules.ModeCombined, Parser: parser, Sink: &recordingSink{}})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
	if code := dberrors.CodeOf(err); code != dberrors.Cancelled {
		t.Errorf("code = %s, want %s", code, dberrors.Cancelled)
	}
	if len(parser.parsed) != 0 {
		t.Error("cancelled run should not parse")
	}
}

func TestRun_FileSinkEmptyTree(t *testing.T) {
	root := t.TempDir()
	sink := report.NewFileSink(root, rules.ModeCommandOnly.Category())

	res, err := Run(context.Background(), Options{
		Root:   root,
		Mode:   rules.ModeCommandOnly,
		Parser: &fakeParser{},
		Sink:   sink,
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Matches != 0 {
		t.Errorf("matches = %d", res.Matches)
	}

	data, err := os.ReadFile(sink.Path())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, []byte("Total Database Requests Found: 0\n")) {
		t.Errorf("file = %q", data)
	}
	if !strings.HasPrefix(filepath.Base(sink.Path()), "SqlCommands_") {
		t.Errorf("path = %s", sink.Path())
	}
}

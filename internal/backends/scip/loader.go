package scip

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dbcalls/internal/errors"
	"dbcalls/internal/paths"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	scippb "github.com/sourcegraph/scip/bindings/go/scip"
	"google.golang.org/protobuf/proto"
)

// SCIPIndex is a decoded index keyed by document path.
type SCIPIndex struct {
	Metadata  *Metadata
	Documents map[string]*Document
	LoadedAt  time.Time
}

// LoadSCIPIndex loads a SCIP index from the specified path. Indexes ending
// in .zst or .gz are decompressed first.
func LoadSCIPIndex(path string) (*SCIPIndex, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.NewScanError(
			errors.IndexMissing,
			fmt.Sprintf("SCIP index not found at %s", path),
			err,
			errors.GetSuggestedFixes(errors.IndexMissing),
		)
	}

	data, err := readIndexFile(path)
	if err != nil {
		return nil, err
	}

	var index scippb.Index
	if err := proto.Unmarshal(data, &index); err != nil {
		return nil, errors.NewScanError(
			errors.IndexInvalid,
			fmt.Sprintf("failed to parse SCIP index from %s", path),
			err,
			[]errors.FixAction{
				{
					Type:        errors.RunCommand,
					Command:     "scip print --index=" + path,
					Safe:        true,
					Description: "Verify SCIP index is valid",
				},
			},
		)
	}

	return FromProto(&index), nil
}

func readIndexFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.FileReadFailed, err, "failed to read SCIP index from %s", path)
	}
	defer f.Close()

	var r io.Reader = f
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst":
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, errors.Wrap(errors.IndexInvalid, err, "failed to open zstd stream %s", path)
		}
		defer dec.Close()
		r = dec
	case ".gz":
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, errors.Wrap(errors.IndexInvalid, err, "failed to open gzip stream %s", path)
		}
		defer gz.Close()
		r = gz
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.IndexInvalid, err, "failed to decompress SCIP index %s", path)
	}
	return data, nil
}

// FromProto converts a decoded protobuf index.
func FromProto(index *scippb.Index) *SCIPIndex {
	idx := &SCIPIndex{
		Metadata:  convertMetadata(index.Metadata),
		Documents: make(map[string]*Document, len(index.Documents)),
		LoadedAt:  time.Now(),
	}
	for _, doc := range index.Documents {
		d := convertDocument(doc)
		idx.Documents[d.RelativePath] = d
	}
	return idx
}

// GetDocument retrieves a document by its relative path
func (i *SCIPIndex) GetDocument(relativePath string) *Document {
	return i.Documents[paths.NormalizePath(relativePath)]
}

// SymbolAt returns the symbol of the occurrence covering the 0-based
// position, or "" when the document or the occurrence is not indexed.
// Definitions are skipped when a reference covers the same position.
func (i *SCIPIndex) SymbolAt(relativePath string, line, column int) string {
	doc := i.GetDocument(relativePath)
	if doc == nil {
		return ""
	}

	var fallback string
	for _, occ := range doc.Occurrences {
		if !occ.Span.Contains(line, column) {
			continue
		}
		if !occ.IsDefinition() {
			return occ.Symbol
		}
		if fallback == "" {
			fallback = occ.Symbol
		}
	}
	return fallback
}

func convertMetadata(meta *scippb.Metadata) *Metadata {
	if meta == nil {
		return nil
	}
	m := &Metadata{ProjectRoot: meta.ProjectRoot}
	if tool := meta.ToolInfo; tool != nil {
		m.ToolName, m.ToolVersion = tool.Name, tool.Version
	}
	return m
}

// convertDocument drops occurrences whose range cannot be decoded.
func convertDocument(doc *scippb.Document) *Document {
	d := &Document{
		RelativePath: paths.NormalizePath(doc.RelativePath),
		Occurrences:  make([]Occurrence, 0, len(doc.Occurrences)),
	}
	for _, occ := range doc.Occurrences {
		span, ok := spanFromRange(occ.Range)
		if !ok {
			continue
		}
		d.Occurrences = append(d.Occurrences, Occurrence{
			Span:        span,
			Symbol:      occ.Symbol,
			SymbolRoles: occ.SymbolRoles,
		})
	}
	return d
}

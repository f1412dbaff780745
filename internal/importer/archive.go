package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"

	"rowloom/internal/domain"
)

// ArchiveVersion is the current project archive format version.
const ArchiveVersion = 1

// projectArchive is the gzip-compressed JSON wire format for a project
// exported to a .rlp file.
type projectArchive struct {
	Version int            `json:"version"`
	Project domain.Project `json:"project"`
}

// WriteArchive writes a compressed project archive to w.
func WriteArchive(w io.Writer, p domain.Project) error {
	zw := gzip.NewWriter(w)
	if err := json.NewEncoder(zw).Encode(projectArchive{Version: ArchiveVersion, Project: p}); err != nil {
		zw.Close()
		return fmt.Errorf("encoding project archive: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("compressing project archive: %w", err)
	}
	return nil
}

// ReadArchive reads a compressed project archive from r.
func ReadArchive(r io.Reader) (domain.Project, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return domain.Project{}, fmt.Errorf("opening project archive: %w", err)
	}
	defer zr.Close()

	var archive projectArchive
	if err := json.NewDecoder(zr).Decode(&archive); err != nil {
		return domain.Project{}, fmt.Errorf("decoding project archive: %w", err)
	}
	if archive.Version > ArchiveVersion {
		return domain.Project{}, fmt.Errorf("project archive version %d is newer than supported %d", archive.Version, ArchiveVersion)
	}
	if len(archive.Project.Pattern.Rows) == 0 {
		return domain.Project{}, ErrNoRows
	}
	return archive.Project, nil
}

// ExportFile writes the project archive to path.
func ExportFile(path string, p domain.Project) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating archive file: %w", err)
	}
	defer f.Close()
	if err := WriteArchive(f, p); err != nil {
		return err
	}
	return f.Close()
}

// ImportArchiveFile reads a project archive from path.
func ImportArchiveFile(path string) (domain.Project, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Project{}, fmt.Errorf("opening archive file: %w", err)
	}
	defer f.Close()
	return ReadArchive(f)
}

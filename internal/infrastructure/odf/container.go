// Package odf assembles and opens OpenDocument ZIP containers.
package odf

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/peter88213/novelibre-sub001/internal/domain/errs"
	"github.com/peter88213/novelibre-sub001/internal/infrastructure/fileutil"
)

// Media types of the supported document kinds.
const (
	MimeText        = "application/vnd.oasis.opendocument.text"
	MimeSpreadsheet = "application/vnd.oasis.opendocument.spreadsheet"
)

// Container member names.
const (
	MimetypeFile = "mimetype"
	ManifestFile = "META-INF/manifest.xml"
	ContentFile  = "content.xml"
	StylesFile   = "styles.xml"
	MetaFile     = "meta.xml"
	SettingsFile = "settings.xml"
)

// Package holds the members of a container.
type Package struct {
	Mimetype string
	Content  []byte
	Styles   []byte
	Meta     []byte
	Settings []byte
}

// Options control where a container is assembled and whether the previous
// file is kept.
type Options struct {
	// TempDir is the parent of the scratch directory; empty means os.TempDir().
	TempDir    string
	KeepBackup bool
}

type member struct {
	name string
	data []byte
}

func (p Package) members() ([]member, error) {
	manifest, err := renderManifest(p.Mimetype)
	if err != nil {
		return nil, err
	}
	settings := p.Settings
	if settings == nil {
		settings = []byte(defaultSettings)
	}
	return []member{
		{name: MimetypeFile, data: []byte(p.Mimetype)},
		{name: ManifestFile, data: manifest},
		{name: ContentFile, data: p.Content},
		{name: StylesFile, data: p.Styles},
		{name: MetaFile, data: p.Meta},
		{name: SettingsFile, data: settings},
	}, nil
}

// Write builds the container members in a scratch directory, zips them and
// moves the archive over path. The previous file is restored if the final
// move fails.
func Write(path string, pkg Package, opts Options) error {
	members, err := pkg.members()
	if err != nil {
		return err
	}

	parent := opts.TempDir
	if parent == "" {
		parent = os.TempDir()
	}
	scratch := filepath.Join(parent, "novx-"+uuid.NewString())
	if err := os.MkdirAll(filepath.Join(scratch, "META-INF"), 0o755); err != nil {
		return fmt.Errorf("creating scratch directory: %w", err)
	}
	defer os.RemoveAll(scratch)

	for _, m := range members {
		if err := os.WriteFile(filepath.Join(scratch, filepath.FromSlash(m.name)), m.data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", m.name, err)
		}
	}

	err = fileutil.ReplaceFile(path, func(w io.Writer) error {
		return zipMembers(w, scratch, members)
	}, opts.KeepBackup)
	if err != nil {
		return fmt.Errorf("writing %q: %w", path, err)
	}
	return nil
}

// zipMembers writes the scratch directory as an archive. The mimetype member
// comes first and is stored uncompressed.
func zipMembers(w io.Writer, dir string, members []member) error {
	zw := zip.NewWriter(w)
	for _, m := range members {
		method := zip.Deflate
		if m.name == MimetypeFile {
			method = zip.Store
		}
		fw, err := zw.CreateHeader(&zip.FileHeader{Name: m.name, Method: method})
		if err != nil {
			return fmt.Errorf("adding %s: %w", m.name, err)
		}
		f, err := os.Open(filepath.Join(dir, filepath.FromSlash(m.name)))
		if err != nil {
			return fmt.Errorf("adding %s: %w", m.name, err)
		}
		_, err = io.Copy(fw, f)
		f.Close()
		if err != nil {
			return fmt.Errorf("adding %s: %w", m.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finishing archive: %w", err)
	}
	return nil
}

// Reader gives access to the members of an existing container.
type Reader struct {
	path string
	zr   *zip.ReadCloser
}

// Open opens a container for reading.
func Open(path string) (*Reader, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("opening %q: %w", path, errs.ErrNotFound)
		}
		return nil, errs.NewFormatError(path, "not an OpenDocument file", err)
	}
	return &Reader{path: path, zr: zr}, nil
}

// ReadFile returns the content of a member.
func (r *Reader) ReadFile(name string) ([]byte, error) {
	for _, f := range r.zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, errs.NewFormatError(r.path, "cannot read "+name, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, errs.NewFormatError(r.path, "cannot read "+name, err)
		}
		return data, nil
	}
	return nil, errs.NewFormatError(r.path, name+" not found in archive", nil)
}

// Has reports whether the container holds a member.
func (r *Reader) Has(name string) bool {
	for _, f := range r.zr.File {
		if f.Name == name {
			return true
		}
	}
	return false
}

// Mimetype returns the declared media type, or "".
func (r *Reader) Mimetype() string {
	data, err := r.ReadFile(MimetypeFile)
	if err != nil {
		return ""
	}
	return string(data)
}

// Close releases the archive.
func (r *Reader) Close() error { return r.zr.Close() }

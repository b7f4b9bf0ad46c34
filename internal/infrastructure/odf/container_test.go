package odf

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peter88213/novelibre-sub001/internal/domain/errs"
)

func testPackage(t *testing.T) Package {
	t.Helper()
	meta, err := Meta{
		Title:       "Fish & Chips",
		Description: "A <short> story",
		Author:      "A. Writer",
		Language:    "en-US",
		Created:     time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC),
	}.XML()
	require.NoError(t, err)
	return Package{
		Mimetype: MimeText,
		Content:  []byte(`<office:document-content/>`),
		Styles:   []byte(`<office:document-styles/>`),
		Meta:     meta,
	}
}

func TestWrite_ContainerLayout(t *testing.T) {
	dir := t.TempDir()
	scratch := t.TempDir()
	path := filepath.Join(dir, "book.odt")

	require.NoError(t, Write(path, testPackage(t), Options{TempDir: scratch}))

	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()

	require.NotEmpty(t, zr.File)
	assert.Equal(t, MimetypeFile, zr.File[0].Name)
	assert.Equal(t, zip.Store, zr.File[0].Method)

	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, []string{MimetypeFile, ManifestFile, ContentFile, StylesFile, MetaFile, SettingsFile}, names)

	leftovers, err := os.ReadDir(scratch)
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestOpen_ReadsMembersAndMeta(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.odt")
	require.NoError(t, Write(path, testPackage(t), Options{TempDir: t.TempDir()}))

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, MimeText, r.Mimetype())
	assert.True(t, r.Has(ContentFile))
	assert.False(t, r.Has("Pictures/none.png"))

	data, err := r.ReadFile(MetaFile)
	require.NoError(t, err)
	meta, err := ParseMeta(data)
	require.NoError(t, err)
	assert.Equal(t, "Fish & Chips", meta.Title)
	assert.Equal(t, "A <short> story", meta.Description)
	assert.Equal(t, "A. Writer", meta.Author)
	assert.Equal(t, "en-US", meta.Language)

	_, err = r.ReadFile("missing.xml")
	var formatErr *errs.FormatError
	assert.ErrorAs(t, err, &formatErr)
}

func TestOpen_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Open(filepath.Join(dir, "missing.odt"))
	assert.ErrorIs(t, err, errs.ErrNotFound)

	bogus := filepath.Join(dir, "bogus.odt")
	require.NoError(t, os.WriteFile(bogus, []byte("not a zip"), 0o644))
	_, err = Open(bogus)
	var formatErr *errs.FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, bogus, formatErr.Path)
}

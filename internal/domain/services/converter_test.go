package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peter88213/novelibre-sub001/internal/domain/entities"
	"github.com/peter88213/novelibre-sub001/internal/domain/errs"
	"github.com/peter88213/novelibre-sub001/internal/domain/mocks"
	"github.com/peter88213/novelibre-sub001/internal/domain/ports"
)

var fixedNow = time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

type converterFixture struct {
	registry *mocks.Registry
	ui       *mocks.UI
	locks    *mocks.LockChecker
	files    *mocks.Files
	journal  *mocks.Journal
}

func newConverterFixture(paths ...string) *converterFixture {
	return &converterFixture{
		registry: mocks.NewRegistry(),
		ui:       &mocks.UI{Answer: true},
		locks:    &mocks.LockChecker{Locked: map[string]bool{}},
		files:    mocks.NewFiles(paths...),
		journal:  mocks.NewJournal(),
	}
}

func (f *converterFixture) converter(opts ConverterOptions) *Converter {
	opts.Now = func() time.Time { return fixedNow }
	return NewConverter(f.registry, f.ui, f.locks, f.files, f.journal, opts, nil)
}

// fillProject puts one chapter with one section into the novel.
func fillProject(content string) func(*entities.Novel) error {
	return func(n *entities.Novel) error {
		n.SetTitle("Book")
		n.AddChapter("ch1", entities.NewChapter("One"), -1)
		sc := entities.NewSection("Opening")
		sc.SetContent(content)
		return n.AddSection("ch1", "sc1", sc, -1)
	}
}

func TestConverter_Export(t *testing.T) {
	f := newConverterFixture("book.novx")
	f.registry.Projects["book.novx"] = &mocks.Document{Fill: fillProject("Some words")}

	r := f.converter(ConverterOptions{}).Run(context.Background(), "book.novx", "_proof")

	require.NoError(t, r.Err)
	assert.Equal(t, entities.ActionExport, r.Action)
	assert.Equal(t, "book_proof.odt", r.Target)
	assert.Equal(t, `File written: "book_proof.odt".`, r.Status)
	written := f.registry.Exports["book_proof.odt"].Written
	require.NotNil(t, written)
	assert.Equal(t, "Book", written.Title())
	assert.Empty(t, f.ui.Questions)
	assert.Equal(t, []string{r.Status}, f.ui.Statuses)

	require.Len(t, f.journal.Entries, 1)
	assert.Equal(t, entities.ActionExport, f.journal.Entries[0].Action)
	assert.Equal(t, fixedNow, f.journal.Entries[0].CreatedAt)
}

func TestConverter_ExportOverwrite(t *testing.T) {
	tests := []struct {
		name       string
		answer     bool
		locked     bool
		wantWrites int
		wantErr    error
	}{
		{name: "confirmed", answer: true, wantWrites: 1},
		{name: "declined", answer: false, wantErr: errs.ErrCancelled},
		{name: "locked", answer: true, locked: true, wantErr: errs.ErrLocked},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newConverterFixture("book.novx", "book_manuscript.odt")
			f.ui.Answer = tt.answer
			f.locks.Locked["book_manuscript.odt"] = tt.locked

			r := f.converter(ConverterOptions{}).Run(context.Background(), "book.novx", "_manuscript")

			doc := f.registry.Exports["book_manuscript.odt"]
			require.NotNil(t, doc)
			assert.Equal(t, tt.wantWrites, doc.Writes)
			if tt.wantErr == nil {
				require.NoError(t, r.Err)
				return
			}
			assert.ErrorIs(t, r.Err, tt.wantErr)
		})
	}
}

func TestConverter_StatusPrefixes(t *testing.T) {
	f := newConverterFixture("book.novx", "book.odt")
	f.ui.Answer = false

	r := f.converter(ConverterOptions{}).Run(context.Background(), "book.novx", "")
	assert.True(t, errs.IsNotification(r.Status))

	r = f.converter(ConverterOptions{}).Run(context.Background(), "missing.novx", "")
	assert.True(t, errs.IsError(r.Status))
	assert.ErrorIs(t, r.Err, errs.ErrNotFound)
}

func TestConverter_ExportInMemoryNovel(t *testing.T) {
	f := newConverterFixture()
	n := entities.NewNovel()
	n.SetTitle("In memory")

	r := f.converter(ConverterOptions{}).Export(context.Background(), n, "dir/book.novx", "_sectionlist")

	require.NoError(t, r.Err)
	assert.Equal(t, "dir/book_sectionlist.odt", r.Target)
	assert.Same(t, n, f.registry.Exports["dir/book_sectionlist.odt"].Written)
}

func TestConverter_ExportError(t *testing.T) {
	f := newConverterFixture("book.novx")
	f.registry.ExportErr = errors.New("unknown suffix")

	r := f.converter(ConverterOptions{}).Run(context.Background(), "book.novx", "_nope")

	assert.EqualError(t, r.Err, "unknown suffix")
	assert.Equal(t, "!unknown suffix", r.Status)
}

func importFixture(doc *mocks.Document, split bool, paths ...string) *converterFixture {
	f := newConverterFixture(paths...)
	f.registry.Projects["book.novx"] = &mocks.Document{Fill: fillProject("Old text")}
	f.registry.Imports["book_manuscript.odt"] = ports.Import{
		Document: doc,
		Suffix:   "_manuscript",
		Project:  "book.novx",
		Split:    split,
	}
	return f
}

func TestConverter_UpdateWithSplit(t *testing.T) {
	doc := &mocks.Document{Fill: func(n *entities.Novel) error {
		n.Sections["sc1"].SetContent("New text\n### Second\nMore text")
		return nil
	}}
	f := importFixture(doc, true, "book.novx", "book_manuscript.odt")

	r := f.converter(ConverterOptions{}).Run(context.Background(), "book_manuscript.odt", "")

	require.NoError(t, r.Err)
	assert.Equal(t, entities.ActionUpdate, r.Action)
	assert.Equal(t, "book.novx", r.Target)
	assert.True(t, r.Split)
	assert.Contains(t, r.Status, `Project "book.novx" updated.`)
	assert.Equal(t, [][2]string{{"book_manuscript.odt", "book_manuscript_bak.odt"}}, f.files.Renames)
	assert.Len(t, f.ui.Questions, 1)

	written := f.registry.Projects["book.novx"].Written
	require.NotNil(t, written)
	assert.Equal(t, []string{"sc1", "sc2"}, written.Tree.GetChildren("ch1"))
	assert.Equal(t, "New text", written.Sections["sc1"].Content())
	assert.Equal(t, "More text", written.Sections["sc2"].Content())

	progress := f.journal.Progress["book.novx"]["2024-03-15"]
	assert.Equal(t, 4, progress.Count)
	require.Len(t, f.journal.Entries, 1)
	assert.Equal(t, map[string]any{"split": true}, f.journal.Entries[0].Details)
}

func TestConverter_UpdateWithoutSplitKeepsSource(t *testing.T) {
	doc := &mocks.Document{Fill: func(n *entities.Novel) error {
		n.Sections["sc1"].SetContent("### Not a divider here")
		return nil
	}}
	f := importFixture(doc, false, "book.novx", "book_manuscript.odt")

	r := f.converter(ConverterOptions{BackupSuffix: "_old"}).Run(context.Background(), "book_manuscript.odt", "")

	require.NoError(t, r.Err)
	assert.False(t, r.Split)
	assert.Empty(t, f.files.Renames)
	assert.Equal(t, "### Not a divider here", f.registry.Projects["book.novx"].Written.Sections["sc1"].Content())
}

func TestConverter_UpdateRefused(t *testing.T) {
	tests := []struct {
		name        string
		paths       []string
		locked      string
		allowLocked bool
		answer      bool
		readErr     error
		wantErr     error
	}{
		{
			name:    "no project",
			paths:   []string{"book_manuscript.odt"},
			answer:  true,
			wantErr: errs.ErrNotFound,
		},
		{
			name:    "locked source",
			paths:   []string{"book.novx", "book_manuscript.odt"},
			locked:  "book_manuscript.odt",
			answer:  true,
			wantErr: errs.ErrLocked,
		},
		{
			name:        "locked project",
			paths:       []string{"book.novx", "book_manuscript.odt"},
			locked:      "book.novx",
			allowLocked: true,
			answer:      true,
			wantErr:     errs.ErrLocked,
		},
		{
			name:    "declined",
			paths:   []string{"book.novx", "book_manuscript.odt"},
			answer:  false,
			wantErr: errs.ErrCancelled,
		},
		{
			name:    "malformed document",
			paths:   []string{"book.novx", "book_manuscript.odt"},
			answer:  true,
			readErr: errs.NewFormatError("book_manuscript.odt", `unbalanced marker "[/ScID]"`, nil),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &mocks.Document{ReadErr: tt.readErr}
			f := importFixture(doc, true, tt.paths...)
			f.ui.Answer = tt.answer
			if tt.locked != "" {
				f.locks.Locked[tt.locked] = true
			}

			r := f.converter(ConverterOptions{AllowLocked: tt.allowLocked}).Run(context.Background(), "book_manuscript.odt", "")

			require.Error(t, r.Err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, r.Err, tt.wantErr)
			} else {
				var fe *errs.FormatError
				assert.ErrorAs(t, r.Err, &fe)
			}
			assert.Equal(t, 0, f.registry.Projects["book.novx"].Writes)
			assert.Empty(t, f.files.Renames)
		})
	}
}

func TestConverter_UpdateLockedAllowed(t *testing.T) {
	f := importFixture(&mocks.Document{}, true, "book.novx", "book_manuscript.odt")
	f.locks.Locked["book_manuscript.odt"] = true

	r := f.converter(ConverterOptions{AllowLocked: true}).Run(context.Background(), "book_manuscript.odt", "")

	require.NoError(t, r.Err)
	assert.Equal(t, 1, f.registry.Projects["book.novx"].Writes)
}

func TestConverter_UpdateLogsWordCount(t *testing.T) {
	f := importFixture(&mocks.Document{}, false, "book.novx", "book_manuscript.odt")
	f.registry.Projects["book.novx"].Fill = func(n *entities.Novel) error {
		if err := fillProject("one two three")(n); err != nil {
			return err
		}
		n.SetSaveWordCount(true)
		return nil
	}

	r := f.converter(ConverterOptions{}).Run(context.Background(), "book_manuscript.odt", "")

	require.NoError(t, r.Err)
	dates, log := f.registry.Projects["book.novx"].Written.WordCountLog()
	assert.Equal(t, []string{"2024-03-15"}, dates)
	assert.Equal(t, entities.WordCountEntry{Count: 3, WithUnused: 3}, log["2024-03-15"])
}

func TestConverter_CreateFromWorkInProgress(t *testing.T) {
	f := newConverterFixture("draft.odt")
	f.registry.WIPs["draft.odt"] = &mocks.Document{Fill: fillProject("Draft words")}

	r := f.converter(ConverterOptions{}).Run(context.Background(), "draft.odt", "")

	require.NoError(t, r.Err)
	assert.Equal(t, entities.ActionCreate, r.Action)
	assert.Equal(t, "draft.novx", r.Target)
	written := f.registry.Projects["draft.novx"].Written
	require.NotNil(t, written)
	assert.Equal(t, "Draft words", written.Sections["sc1"].Content())
	assert.Empty(t, f.ui.Questions)
}

func TestConverter_CreateNeverOverwrites(t *testing.T) {
	f := newConverterFixture("draft.odt", "draft.novx")
	f.registry.WIPs["draft.odt"] = &mocks.Document{Fill: fillProject("Draft words")}

	r := f.converter(ConverterOptions{}).Run(context.Background(), "draft.odt", "")

	assert.ErrorIs(t, r.Err, errs.ErrExists)
	assert.Equal(t, 0, f.registry.WIPs["draft.odt"].Reads)
	assert.Nil(t, f.registry.Projects["draft.novx"])
}

func TestConverter_CreateLocked(t *testing.T) {
	t.Run("refused", func(t *testing.T) {
		f := newConverterFixture("draft.odt")
		f.locks.Locked["draft.odt"] = true
		f.registry.WIPs["draft.odt"] = &mocks.Document{Fill: fillProject("Draft words")}

		r := f.converter(ConverterOptions{}).Run(context.Background(), "draft.odt", "")

		assert.ErrorIs(t, r.Err, errs.ErrLocked)
		assert.Equal(t, 0, f.registry.WIPs["draft.odt"].Reads)
		assert.Nil(t, f.registry.Projects["draft.novx"])
	})

	t.Run("allowed", func(t *testing.T) {
		f := newConverterFixture("draft.odt")
		f.locks.Locked["draft.odt"] = true
		f.registry.WIPs["draft.odt"] = &mocks.Document{Fill: fillProject("Draft words")}

		r := f.converter(ConverterOptions{AllowLocked: true}).Run(context.Background(), "draft.odt", "")

		require.NoError(t, r.Err)
		require.NotNil(t, f.registry.Projects["draft.novx"].Written)
	})
}

func TestConverter_JournalFailureDoesNotFail(t *testing.T) {
	f := newConverterFixture("draft.odt")
	f.registry.WIPs["draft.odt"] = &mocks.Document{}
	f.journal.Err = errors.New("disk full")

	r := f.converter(ConverterOptions{}).Run(context.Background(), "draft.odt", "")

	require.NoError(t, r.Err)
	assert.Empty(t, f.journal.Entries)
}

func TestConverter_CreateUsesDefaultLocale(t *testing.T) {
	tests := []struct {
		name     string
		docLang  string
		fallback string
		want     string
	}{
		{name: "document language wins", docLang: "fr-FR", fallback: "de-DE", want: "fr-FR"},
		{name: "fallback", fallback: "de-DE", want: "de-DE"},
		{name: "invalid fallback ignored", fallback: "not a locale", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newConverterFixture("draft.odt")
			f.registry.WIPs["draft.odt"] = &mocks.Document{Fill: func(n *entities.Novel) error {
				if tt.docLang != "" {
					return n.SetLocale(tt.docLang)
				}
				return nil
			}}

			r := f.converter(ConverterOptions{DefaultLocale: tt.fallback}).Run(context.Background(), "draft.odt", "")

			require.NoError(t, r.Err)
			assert.Equal(t, tt.want, f.registry.Projects["draft.novx"].Written.Locale())
		})
	}
}

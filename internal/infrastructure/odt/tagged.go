package odt

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/peter88213/novelibre-sub001/internal/domain/entities"
	"github.com/peter88213/novelibre-sub001/internal/domain/errs"
	"github.com/peter88213/novelibre-sub001/internal/infrastructure/odf"
)

// updates collects the changes a tagged document makes to an existing
// project. Nothing touches the novel before apply.
type updates struct {
	path          string
	novel         *entities.Novel
	logger        *slog.Logger
	order         []string
	contents      map[string][]string
	chapterTitles map[string]string
}

func newUpdates(path string, novel *entities.Novel, logger *slog.Logger) *updates {
	return &updates{
		path:          path,
		novel:         novel,
		logger:        logger,
		contents:      make(map[string][]string),
		chapterTitles: make(map[string]string),
	}
}

// checkID validates a tagged ID. known is false for well-formed IDs the
// project does not have.
func (u *updates) checkID(marker, tag, id string) (known bool, err error) {
	prefix := entities.SectionPrefix
	if tag == ChapterTag {
		prefix = entities.ChapterPrefix
	}
	if !entities.IsID(prefix, id) {
		return false, errs.NewFormatError(u.path, fmt.Sprintf("malformed marker %q", marker), nil)
	}
	if tag == ChapterTag {
		_, known = u.novel.Chapters[id]
	} else {
		_, known = u.novel.Sections[id]
	}
	if !known {
		u.logger.Warn("skipping unknown element", "path", u.path, "marker", marker)
	}
	return known, nil
}

func (u *updates) openSection(id string) {
	if _, seen := u.contents[id]; !seen {
		u.order = append(u.order, id)
	}
	u.contents[id] = []string{}
}

func (u *updates) add(id, xml string) {
	u.contents[id] = append(u.contents[id], xml)
}

func (u *updates) apply() {
	for _, id := range u.order {
		if sc, ok := u.novel.Sections[id]; ok {
			sc.SetContent(strings.Join(u.contents[id], "\n"))
		}
	}
	for id, title := range u.chapterTitles {
		if ch, ok := u.novel.Chapters[id]; ok && title != "" {
			ch.SetTitle(title)
		}
	}
	u.novel.CollectLanguages()
	u.logger.Debug("applied document", "path", u.path, "sections", len(u.order))
}

// manuscriptClient reads documents whose chapters and sections are named
// text sections ("ChID:ch1", "ScID:sc1").
type manuscriptClient struct {
	*updates
	chapter string
	section string
	skip    int
}

func newManuscriptClient(path string, novel *entities.Novel, logger *slog.Logger) *manuscriptClient {
	return &manuscriptClient{updates: newUpdates(path, novel, logger)}
}

func (c *manuscriptClient) SetMeta(odf.Meta) {}

func (c *manuscriptClient) Handle(ev Event) error {
	switch ev.Kind {
	case SectionStart:
		tag, id, found := strings.Cut(ev.Name, ":")
		if !found || (tag != SectionTag && tag != ChapterTag) {
			return nil
		}
		if c.skip > 0 {
			c.skip++
			return nil
		}
		known, err := c.checkID(ev.Name, tag, id)
		if err != nil {
			return err
		}
		if !known {
			c.skip = 1
			return nil
		}
		if tag == ChapterTag {
			c.chapter = id
		} else {
			c.section = id
			c.openSection(id)
		}
	case SectionEnd:
		tag, _, found := strings.Cut(ev.Name, ":")
		if !found || (tag != SectionTag && tag != ChapterTag) {
			return nil
		}
		if c.skip > 0 {
			c.skip--
			return nil
		}
		if tag == ChapterTag {
			c.chapter = ""
		} else {
			c.section = ""
		}
	case Heading:
		if c.skip == 0 && c.section == "" && c.chapter != "" {
			c.chapterTitles[c.chapter] = ev.Text
		}
	case Paragraph:
		if c.skip == 0 && c.section != "" {
			c.add(c.section, ev.XML)
		}
	}
	return nil
}

func (c *manuscriptClient) Finish() error {
	c.apply()
	return nil
}

var proofMarker = regexp.MustCompile(`^\[(/?)(` + SectionTag + `|` + ChapterTag + `)(?::([^\]]*))?\]$`)

// proofClient reads documents whose chapters and sections are delimited by
// "[ScID:sc1]" ... "[/ScID]" paragraphs.
type proofClient struct {
	*updates
	chapter       string
	inChapter     bool
	chapterMarker string
	section       string
	inSection     bool
	sectionMarker string
}

func newProofClient(path string, novel *entities.Novel, logger *slog.Logger) *proofClient {
	return &proofClient{updates: newUpdates(path, novel, logger)}
}

func (c *proofClient) SetMeta(odf.Meta) {}

func (c *proofClient) unbalanced(marker string) error {
	return errs.NewFormatError(c.path, fmt.Sprintf("unbalanced marker %q", marker), nil)
}

func (c *proofClient) Handle(ev Event) error {
	switch ev.Kind {
	case Heading:
		if c.inChapter && !c.inSection && c.chapter != "" {
			c.chapterTitles[c.chapter] = ev.Text
		}
		return nil
	case Paragraph:
	default:
		return nil
	}

	text := strings.TrimSpace(ev.Text)
	m := proofMarker.FindStringSubmatch(text)
	if m == nil {
		if strings.HasPrefix(text, "["+SectionTag) || strings.HasPrefix(text, "[/"+SectionTag) ||
			strings.HasPrefix(text, "["+ChapterTag) || strings.HasPrefix(text, "[/"+ChapterTag) {
			return errs.NewFormatError(c.path, fmt.Sprintf("malformed marker %q", text), nil)
		}
		if c.inSection && c.section != "" {
			c.add(c.section, ev.XML)
		}
		return nil
	}

	closing, tag, id := m[1] == "/", m[2], m[3]
	switch {
	case closing && id != "":
		return errs.NewFormatError(c.path, fmt.Sprintf("malformed marker %q", text), nil)
	case closing && tag == SectionTag:
		if !c.inSection {
			return c.unbalanced(text)
		}
		c.inSection, c.section = false, ""
	case closing:
		if !c.inChapter || c.inSection {
			return c.unbalanced(text)
		}
		c.inChapter, c.chapter = false, ""
	case tag == SectionTag:
		if c.inSection {
			return c.unbalanced(text)
		}
		known, err := c.checkID(text, tag, id)
		if err != nil {
			return err
		}
		c.inSection, c.sectionMarker = true, text
		c.section = ""
		if known {
			c.section = id
			c.openSection(id)
		}
	default:
		if c.inChapter || c.inSection {
			return c.unbalanced(text)
		}
		known, err := c.checkID(text, tag, id)
		if err != nil {
			return err
		}
		c.inChapter, c.chapterMarker = true, text
		c.chapter = ""
		if known {
			c.chapter = id
		}
	}
	return nil
}

func (c *proofClient) Finish() error {
	switch {
	case c.inSection:
		return errs.NewFormatError(c.path, fmt.Sprintf("unclosed marker %q", c.sectionMarker), nil)
	case c.inChapter:
		return errs.NewFormatError(c.path, fmt.Sprintf("unclosed marker %q", c.chapterMarker), nil)
	}
	c.apply()
	return nil
}

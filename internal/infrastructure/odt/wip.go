package odt

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/peter88213/novelibre-sub001/internal/domain/entities"
	"github.com/peter88213/novelibre-sub001/internal/infrastructure/odf"
)

// DraftThreshold is the word count from which imported sections count as
// drafted rather than outlined.
const DraftThreshold = 10

type wipSection struct {
	title      string
	paragraphs []string
}

type wipChapter struct {
	title    string
	level    int
	sections []*wipSection
}

// wipClient builds a new book from an untagged document. Heading level 1
// opens a part, level 2 a chapter, deeper levels a titled section, and a
// scene divider paragraph closes the current section.
type wipClient struct {
	novel    *entities.Novel
	logger   *slog.Logger
	meta     odf.Meta
	chapters []*wipChapter
	current  *wipSection
}

func newWIPClient(novel *entities.Novel, logger *slog.Logger) *wipClient {
	return &wipClient{novel: novel, logger: logger}
}

func (c *wipClient) SetMeta(meta odf.Meta) { c.meta = meta }

func (c *wipClient) chapter() *wipChapter {
	if len(c.chapters) == 0 {
		c.chapters = append(c.chapters, &wipChapter{level: entities.LevelChapter})
	}
	return c.chapters[len(c.chapters)-1]
}

func (c *wipClient) Handle(ev Event) error {
	switch ev.Kind {
	case Heading:
		switch {
		case ev.Level <= entities.LevelPart:
			c.chapters = append(c.chapters, &wipChapter{title: ev.Text, level: entities.LevelPart})
			c.current = nil
		case ev.Level == entities.LevelChapter:
			c.chapters = append(c.chapters, &wipChapter{title: ev.Text, level: entities.LevelChapter})
			c.current = nil
		default:
			ch := c.chapter()
			c.current = &wipSection{title: ev.Text}
			ch.sections = append(ch.sections, c.current)
		}
	case Paragraph:
		if strings.TrimSpace(ev.Text) == SceneDivider {
			c.current = nil
			return nil
		}
		if c.current == nil {
			ch := c.chapter()
			c.current = &wipSection{}
			ch.sections = append(ch.sections, c.current)
		}
		c.current.paragraphs = append(c.current.paragraphs, ev.XML)
	}
	return nil
}

func (c *wipClient) Finish() error {
	n := c.novel
	if c.meta.Title != "" {
		n.SetTitle(c.meta.Title)
	}
	if c.meta.Description != "" {
		n.SetDesc(c.meta.Description)
	}
	if c.meta.Author != "" {
		n.SetAuthor(c.meta.Author)
	}
	if c.meta.Language != "" {
		if err := n.SetLocale(c.meta.Language); err != nil {
			c.logger.Warn("ignoring document language", "language", c.meta.Language, "error", err)
		}
	}

	chapterCount, sectionCount := 0, 0
	for _, wc := range c.chapters {
		ch := entities.NewChapter(wc.title)
		if wc.level == entities.LevelPart {
			if err := ch.SetLevel(entities.LevelPart); err != nil {
				return err
			}
		} else {
			chapterCount++
			if wc.title == "" {
				ch.SetTitle(fmt.Sprintf("Chapter %d", chapterCount))
			}
		}
		chID := n.NewID(entities.ChapterPrefix)
		n.AddChapter(chID, ch, -1)

		for _, ws := range wc.sections {
			sectionCount++
			title := ws.title
			if title == "" {
				title = fmt.Sprintf("Section %d", sectionCount)
			}
			sc := entities.NewSection(title)
			sc.SetContent(strings.Join(ws.paragraphs, "\n"))
			if sc.WordCount() >= DraftThreshold {
				if err := sc.SetStatus(entities.StatusDraft); err != nil {
					return err
				}
			}
			if err := n.AddSection(chID, n.NewID(entities.SectionPrefix), sc, -1); err != nil {
				return err
			}
		}
	}
	n.CollectLanguages()
	c.logger.Debug("built project from document", "chapters", len(c.chapters), "sections", sectionCount)
	return nil
}

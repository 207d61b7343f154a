package scraper

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"announcer/internal/domain"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"mvdan.cc/xurls/v2"
)

const (
	minTitleChars        = 3
	minCleanedTitleChars = 5
	summaryMaxChars      = 200
	feedDateLayout       = "02.01.2006"
)

var (
	datePattern = regexp.MustCompile(`\d{2}\.\d{2}\.\d{4}`)

	//nolint:gochecknoglobals // Ranked selector lists meant to be immutable.
	genericBlockSelectors = []string{
		".duyuru-item",
		".news-item",
		".announcement-item",
		"article",
		".list-group-item",
		"tr",
	}
	//nolint:gochecknoglobals // See above.
	genericTitleSelectors = []string{"h3", "h4", "h5", ".title", ".announcement-title", "a"}
	//nolint:gochecknoglobals // See above.
	genericDateSelectors = []string{".date", ".announcement-date", ".publish-date", "time", ".tarih"}
	//nolint:gochecknoglobals // See above.
	genericSummarySelectors = []string{".description", ".content", ".summary", "p"}
)

// DetailLinkStrategy picks links whose href contains pattern, in document
// order, and reads a DD.MM.YYYY date from the surrounding text.
func DetailLinkStrategy(pattern string) Strategy {
	return func(page *Page, limit int) ([]domain.Announcement, error) {
		links := page.Doc.Find("a[href]").FilterFunction(func(_ int, s *goquery.Selection) bool {
			href, _ := s.Attr("href")
			return strings.Contains(href, pattern)
		})

		var (
			announcements []domain.Announcement
			errs          []error
		)

		links.EachWithBreak(func(i int, s *goquery.Selection) bool {
			if i >= limit {
				return false
			}

			a, err := candidate(func() (domain.Announcement, error) {
				return extractDetailLink(s, page, pattern)
			})
			if err != nil {
				errs = append(errs, fmt.Errorf("detail link %d: %w", i, err))
				return true
			}

			announcements = append(announcements, a)

			return true
		})

		return announcements, errors.Join(errs...)
	}
}

func extractDetailLink(s *goquery.Selection, page *Page, pattern string) (domain.Announcement, error) {
	href, _ := s.Attr("href")

	link, err := resolveLink(page.Base, href)
	if err != nil {
		return domain.Announcement{}, err
	}

	title := collapseSpaces(s.Text())

	date := datePattern.FindString(title)
	if date != "" {
		cleaned := collapseSpaces(strings.Replace(title, date, "", 1))
		if utf8.RuneCountInString(cleaned) > minCleanedTitleChars {
			title = cleaned
		}
	} else if dates := datePattern.FindAllString(precedingText(s, pattern), -1); len(dates) > 0 {
		date = dates[len(dates)-1]
	}

	if utf8.RuneCountInString(title) <= minTitleChars {
		return domain.Announcement{}, fmt.Errorf("title %q is too short", title)
	}

	return domain.Announcement{Title: title, Link: link, Date: date}, nil
}

// precedingText is the parent's text written before s and after the previous
// detail link sharing that parent.
func precedingText(s *goquery.Selection, pattern string) string {
	node := s.Get(0)

	var parts []string

	s.Parent().Contents().EachWithBreak(func(_ int, c *goquery.Selection) bool {
		if c.Get(0) == node {
			return false
		}

		if goquery.NodeName(c) == "a" {
			if href, _ := c.Attr("href"); strings.Contains(href, pattern) {
				parts = parts[:0]
				return true
			}
		}

		parts = append(parts, c.Text())

		return true
	})

	return collapseSpaces(strings.Join(parts, " "))
}

// GenericStructureStrategy tries common listing containers in rank order and
// stops at the first selector producing a titled record.
func GenericStructureStrategy(page *Page, limit int) ([]domain.Announcement, error) {
	var errs []error

	for _, selector := range genericBlockSelectors {
		blocks := page.Doc.Find(selector)
		if blocks.Length() == 0 {
			continue
		}

		var announcements []domain.Announcement

		blocks.EachWithBreak(func(i int, s *goquery.Selection) bool {
			if i >= limit {
				return false
			}

			a, err := candidate(func() (domain.Announcement, error) {
				return extractGenericBlock(s, page)
			})
			if err != nil {
				errs = append(errs, fmt.Errorf("%s block %d: %w", selector, i, err))
				return true
			}

			announcements = append(announcements, a)

			return true
		})

		if len(announcements) > 0 {
			return announcements, errors.Join(errs...)
		}
	}

	return nil, errors.Join(errs...)
}

func extractGenericBlock(s *goquery.Selection, page *Page) (domain.Announcement, error) {
	var a domain.Announcement

	for _, selector := range genericTitleSelectors {
		if title := collapseSpaces(s.Find(selector).First().Text()); title != "" {
			a.Title = title
			break
		}
	}

	if a.Title == "" {
		a.Title = collapseSpaces(s.Text())
	}

	if a.Title == "" {
		return domain.Announcement{}, errors.New("title is empty")
	}

	anchor := s.Find("a[href]").First()
	if goquery.NodeName(s) == "a" {
		anchor = s
	}

	if href, ok := anchor.Attr("href"); ok {
		link, err := resolveLink(page.Base, href)
		if err != nil {
			return domain.Announcement{}, err
		}

		a.Link = link
	} else if found := xurls.Strict().FindString(s.Text()); found != "" {
		a.Link = found
	}

	for _, selector := range genericDateSelectors {
		if el := s.Find(selector).First(); el.Length() > 0 {
			a.Date = collapseSpaces(el.Text())
			break
		}
	}

	for _, selector := range genericSummarySelectors {
		el := s.Find(selector).First()
		if el.Length() == 0 {
			continue
		}

		text := collapseSpaces(el.Text())
		if text != "" && text != a.Title {
			a.Summary = truncateSummary(text)
			break
		}
	}

	return a, nil
}

// FeedDocumentStrategy handles listing URLs that serve an RSS, Atom or JSON
// feed instead of HTML.
func FeedDocumentStrategy(page *Page, limit int) ([]domain.Announcement, error) {
	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(page.Raw))
	if err != nil {
		// Not a feed document.
		return nil, nil
	}

	var (
		announcements []domain.Announcement
		errs          []error
	)

	for i, item := range parsed.Items {
		if len(announcements) >= limit {
			break
		}

		a, itemErr := candidate(func() (domain.Announcement, error) {
			return extractFeedItem(item, page)
		})
		if itemErr != nil {
			errs = append(errs, fmt.Errorf("feed item %d: %w", i, itemErr))
			continue
		}

		announcements = append(announcements, a)
	}

	return announcements, errors.Join(errs...)
}

func extractFeedItem(item *gofeed.Item, page *Page) (domain.Announcement, error) {
	title := collapseSpaces(item.Title)
	if title == "" {
		return domain.Announcement{}, errors.New("title is empty")
	}

	a := domain.Announcement{Title: title}

	if strings.TrimSpace(item.Link) != "" {
		link, err := resolveLink(page.Base, item.Link)
		if err != nil {
			return domain.Announcement{}, err
		}

		a.Link = link
	}

	switch {
	case item.PublishedParsed != nil:
		a.Date = item.PublishedParsed.Format(feedDateLayout)
	case item.UpdatedParsed != nil:
		a.Date = item.UpdatedParsed.Format(feedDateLayout)
	default:
		a.Date = collapseSpaces(item.Published)
	}

	if desc := strings.TrimSpace(item.Description); desc != "" {
		text := desc
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(desc)); err == nil {
			text = doc.Text()
		}

		if text = collapseSpaces(text); text != "" && text != title {
			a.Summary = truncateSummary(text)
		}
	}

	return a, nil
}

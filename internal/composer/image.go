package composer

import (
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode"

	"NewsIngestor/internal/config"
	"NewsIngestor/internal/domain"
)

const defaultImageDescription = "News coverage"

type keywordImage struct {
	keywords []string
	url      string
}

// imageCatalog is the static stock-image lookup table.
type imageCatalog struct {
	byCategory   map[domain.Category][]string
	descriptions map[domain.Category]string
	keywords     []keywordImage
}

func newImageCatalog(cfg config.ImagesConfig) imageCatalog {
	c := imageCatalog{
		byCategory:   make(map[domain.Category][]string, len(cfg.Catalog)),
		descriptions: make(map[domain.Category]string, len(cfg.Descriptions)),
	}
	for cat, urls := range cfg.Catalog {
		c.byCategory[domain.Category(cat)] = urls
	}
	for cat, desc := range cfg.Descriptions {
		c.descriptions[domain.Category(cat)] = desc
	}
	for _, k := range cfg.Keywords {
		if k.URL == "" || len(k.Keywords) == 0 {
			continue
		}
		kw := make([]string, 0, len(k.Keywords))
		for _, w := range k.Keywords {
			if w = normalizeWords(w); w != "" {
				kw = append(kw, w)
			}
		}
		c.keywords = append(c.keywords, keywordImage{keywords: kw, url: k.URL})
	}
	return c
}

// choose returns the keyword override matching title, or a candidate for the
// category, falling back to the general catalog.
func (c imageCatalog) choose(sel Selector, title string, cat domain.Category) string {
	padded := " " + normalizeWords(title) + " "
	for _, k := range c.keywords {
		for _, w := range k.keywords {
			if strings.Contains(padded, " "+w+" ") {
				return k.url
			}
		}
	}

	if u, ok := pick(sel, c.byCategory[cat]); ok {
		return u
	}
	u, _ := pick(sel, c.byCategory[domain.CategoryGeneral])
	return u
}

func (c imageCatalog) alt(title string, cat domain.Category) string {
	desc, ok := c.descriptions[cat]
	if !ok {
		if desc, ok = c.descriptions[domain.CategoryGeneral]; !ok {
			desc = defaultImageDescription
		}
	}
	return desc + ": " + truncate(title, 60, "...")
}

// withCacheBuster appends t=<unix seconds> to the image URL.
func withCacheBuster(raw string, now time.Time) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		sep := "?"
		if strings.Contains(raw, "?") {
			sep = "&"
		}
		return raw + sep + "t=" + strconv.FormatInt(now.Unix(), 10)
	}
	q := u.Query()
	q.Set("t", strconv.FormatInt(now.Unix(), 10))
	u.RawQuery = q.Encode()
	return u.String()
}

// normalizeWords lowercases s and replaces every non-alphanumeric rune with a space.
func normalizeWords(s string) string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, s)
	return strings.Join(strings.Fields(mapped), " ")
}

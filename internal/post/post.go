// Package post derives the summary of a blog post (title, slug, excerpt,
// dates, reading time) from a parsed redmark document and its file name.
package post

import (
	"math"
	"net/url"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/alnah/go-redmark/internal/dateutil"
	"github.com/alnah/go-redmark/internal/frontmatter"
)

// Defaults applied when a header omits a field.
const (
	DefaultTitle          = "Untitled"
	DefaultAuthor         = "Redmark User"
	DefaultCategory       = "posts"
	DefaultCover          = "https://images.unsplash.com/photo-1498050108023-c5249f4df085?auto=format&fit=crop&q=80&w=1000"
	DefaultWordsPerMinute = 200
	ExcerptLength         = 150
)

// Header keys read by Build.
const (
	KeyTitle          = "title"
	KeyDescription    = "description"
	KeyDate           = "date"
	KeyTags           = "tags"
	KeyAuthor         = "author"
	KeyCategory       = "category"
	KeyImage          = "image"
	KeyOptimizedImage = "optimized_image"
	KeyPublished      = "published"
)

const avatarService = "https://ui-avatars.com/api/"

// Post is the summary shown in feeds and post headers.
type Post struct {
	Title          string    `yaml:"title" json:"title"`
	Slug           string    `yaml:"slug" json:"slug"`
	Excerpt        string    `yaml:"excerpt" json:"excerpt"`
	Description    string    `yaml:"description,omitempty" json:"description,omitempty"`
	PublishedAt    string    `yaml:"publishedAt" json:"publishedAt"`
	Date           time.Time `yaml:"-" json:"-"`
	Tags           []string  `yaml:"tags" json:"tags"`
	Author         string    `yaml:"author" json:"author"`
	AuthorAvatar   string    `yaml:"authorAvatar" json:"authorAvatar"`
	CoverImage     string    `yaml:"coverImage" json:"coverImage"`
	Words          int       `yaml:"words" json:"words"`
	ReadingMinutes int       `yaml:"readingMinutes" json:"readingMinutes"`
	ReadingTime    string    `yaml:"readingTime" json:"readingTime"`
	Category       string    `yaml:"category" json:"category"`
	Published      bool      `yaml:"published" json:"published"`
	FileName       string    `yaml:"fileName,omitempty" json:"fileName,omitempty"`
}

// Options tunes the fallbacks used by Build. Zero fields take the package
// defaults.
type Options struct {
	Now             func() time.Time
	DateFormat      string // dateutil tokens or preset name
	DefaultAuthor   string
	DefaultCategory string
	DefaultCover    string
	WordsPerMinute  int
}

// DefaultOptions returns the options Build uses for zero fields.
func DefaultOptions() Options {
	return Options{
		Now:             time.Now,
		DateFormat:      dateutil.DefaultDateFormat,
		DefaultAuthor:   DefaultAuthor,
		DefaultCategory: DefaultCategory,
		DefaultCover:    DefaultCover,
		WordsPerMinute:  DefaultWordsPerMinute,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Now == nil {
		o.Now = d.Now
	}
	if o.DateFormat == "" {
		o.DateFormat = d.DateFormat
	}
	if o.DefaultAuthor == "" {
		o.DefaultAuthor = d.DefaultAuthor
	}
	if o.DefaultCategory == "" {
		o.DefaultCategory = d.DefaultCategory
	}
	if o.DefaultCover == "" {
		o.DefaultCover = d.DefaultCover
	}
	if o.WordsPerMinute <= 0 {
		o.WordsPerMinute = d.WordsPerMinute
	}
	return o
}

// Validate reports an invalid DateFormat.
func (o Options) Validate() error {
	if o.DateFormat == "" {
		return nil
	}
	_, err := dateutil.Layout(o.DateFormat)
	return err
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Build derives the summary of doc. fileName may be a path; only its base
// name is used. An invalid DateFormat falls back to ISO dates.
func Build(doc frontmatter.Document, fileName string, opts Options) Post {
	opts = opts.withDefaults()
	meta := doc.Metadata
	base := filepath.Base(fileName)
	if fileName == "" {
		base = ""
	}
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	title, hasTitle := nonEmpty(meta, KeyTitle)
	if !hasTitle {
		title = titleFromFileName(stem)
	}
	slugSource := stem
	if hasTitle {
		slugSource = title
	}

	description, _ := nonEmpty(meta, KeyDescription)
	excerpt := description
	if excerpt == "" {
		excerpt = Excerpt(doc.Body)
	}

	author, ok := nonEmpty(meta, KeyAuthor)
	if !ok {
		author = opts.DefaultAuthor
	}

	category, ok := nonEmpty(meta, KeyCategory)
	if !ok {
		category = opts.DefaultCategory
	}

	publishedAt, date := publishedDate(meta, opts)
	words := len(strings.Fields(doc.Body))
	minutes := ReadingMinutes(words, opts.WordsPerMinute)

	p := Post{
		Title:          title,
		Slug:           Slug(slugSource),
		Excerpt:        excerpt,
		Description:    description,
		PublishedAt:    publishedAt,
		Date:           date,
		Tags:           tags(meta),
		Author:         author,
		AuthorAvatar:   avatarService + "?" + url.Values{"name": {author}, "background": {"random"}}.Encode(),
		CoverImage:     coverImage(meta, opts.DefaultCover),
		Words:          words,
		ReadingMinutes: minutes,
		ReadingTime:    strconv.Itoa(minutes) + " min read",
		Category:       category,
		Published:      true,
		FileName:       base,
	}
	if published, ok := meta.Flag(KeyPublished); ok && !published {
		p.Published = false
	}
	return p
}

// titleFromFileName turns "my-first_post" into "My First Post".
func titleFromFileName(stem string) string {
	words := strings.FieldsFunc(stem, func(r rune) bool { return r == '-' || r == '_' })
	if len(words) == 0 {
		return DefaultTitle
	}
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// Slug lower-cases s and replaces whitespace runs with '-'.
func Slug(s string) string {
	s = whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-")
	if s == "" {
		return strings.ToLower(DefaultTitle)
	}
	return s
}

// Excerpt returns the first ExcerptLength runes of body without the
// characters '#', '*' and '`', followed by "...".
func Excerpt(body string) string {
	if utf8.RuneCountInString(body) > ExcerptLength {
		n := 0
		for i := range body {
			if n == ExcerptLength {
				body = body[:i]
				break
			}
			n++
		}
	}
	body = strings.Map(func(r rune) rune {
		switch r {
		case '#', '*', '`':
			return -1
		}
		return r
	}, body)
	return body + "..."
}

// ReadingMinutes rounds words/wpm up, with a floor of one minute.
func ReadingMinutes(words, wpm int) int {
	if wpm <= 0 {
		wpm = DefaultWordsPerMinute
	}
	return max(1, int(math.Ceil(float64(words)/float64(wpm))))
}

// publishedDate resolves the date header: "auto" forms use the current
// date, ISO dates are reformatted, other text is kept. A missing date means
// today.
func publishedDate(meta frontmatter.Metadata, opts Options) (string, time.Time) {
	layout, err := dateutil.Layout(opts.DateFormat)
	if err != nil {
		layout, _ = dateutil.Layout("")
	}
	now := opts.Now()

	raw, ok := nonEmpty(meta, KeyDate)
	if !ok {
		return now.Format(layout), now
	}
	if strings.EqualFold(raw, "auto") {
		return now.Format(layout), now
	}
	if resolved, err := dateutil.ResolveDate(raw, now); err == nil && resolved != raw {
		return resolved, now
	}
	return dateutil.Reformat(raw, layout)
}

func tags(meta frontmatter.Metadata) []string {
	if list, ok := meta.List(KeyTags); ok {
		return list
	}
	if s, ok := nonEmpty(meta, KeyTags); ok {
		return []string{s}
	}
	return []string{}
}

func coverImage(meta frontmatter.Metadata, fallback string) string {
	for _, key := range []string{KeyOptimizedImage, KeyImage} {
		if s, ok := nonEmpty(meta, key); ok {
			return s
		}
	}
	return fallback
}

// nonEmpty returns the string under key when it is present and not blank.
func nonEmpty(meta frontmatter.Metadata, key string) (string, bool) {
	s, ok := meta.Text(key)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

package main

import (
	"cmp"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rs/zerolog"

	redmark "github.com/alnah/go-redmark"
)

// indexCategory is one group of the post index.
type indexCategory struct {
	Name  string         `yaml:"name"`
	Posts []redmark.Post `yaml:"posts"`
}

// runIndex lists the posts under a directory grouped by category.
func runIndex(args []string, flags *docFlags, log zerolog.Logger, env *Environment) error {
	cfg, _, err := loadConfig(flags.common.config, env, log)
	if err != nil {
		return err
	}
	inputPath, err := resolveInputPath(args, cfg)
	if err != nil {
		return err
	}
	files, err := discoverFiles(inputPath, "")
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}

	opts := postOptions(cfg, env)
	var posts []redmark.Post
	for _, f := range files {
		content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
		if err != nil {
			return fmt.Errorf("%w: %w", ErrReadMarkdown, err)
		}
		p := redmark.BuildPost(redmark.ParseDocument(string(content)), filepath.Base(f.InputPath), opts)
		if !p.Published && !flags.includeDrafts {
			log.Debug().Str("file", f.InputPath).Msg("draft skipped")
			continue
		}
		posts = append(posts, p)
	}

	groups := groupByCategory(posts)
	if flags.format == formatText {
		writeIndexText(env.Stdout, groups)
		return nil
	}
	if groups == nil {
		groups = []indexCategory{}
	}
	return writeStructured(env.Stdout, flags.format, groups)
}

// groupByCategory sorts categories by name and posts newest first. Posts
// of the same day keep title order.
func groupByCategory(posts []redmark.Post) []indexCategory {
	byName := make(map[string][]redmark.Post)
	for _, p := range posts {
		byName[p.Category] = append(byName[p.Category], p)
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	slices.Sort(names)

	groups := make([]indexCategory, 0, len(names))
	for _, name := range names {
		ps := byName[name]
		slices.SortStableFunc(ps, func(a, b redmark.Post) int {
			if c := b.Date.Compare(a.Date); c != 0 {
				return c
			}
			return cmp.Compare(a.Title, b.Title)
		})
		groups = append(groups, indexCategory{Name: name, Posts: ps})
	}
	if len(groups) == 0 {
		return nil
	}
	return groups
}

var categoryStyle = lipgloss.NewStyle().Bold(true)

func writeIndexText(w io.Writer, groups []indexCategory) {
	for i, g := range groups {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, categoryStyle.Render(g.Name))

		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("DATE", "TITLE", "TAGS", "READING")
		for _, p := range g.Posts {
			t.Row(p.PublishedAt, p.Title, strings.Join(p.Tags, ", "), p.ReadingTime)
		}
		fmt.Fprintln(w, t.Render())
	}
}

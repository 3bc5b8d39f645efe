package clean

import (
	"fmt"
	"strings"

	"github.com/netdata/hostsmerge/pipeline/model"
	"github.com/netdata/hostsmerge/pkg/log"

	"github.com/gobwas/glob"
	"github.com/rs/zerolog"
)

type Cleaner struct {
	prefixes []string
	exclude  []glob.Glob
	log      zerolog.Logger
}

func New(cfg Config) (*Cleaner, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("cleaner config validation: %v", err)
	}
	c, err := initCleaner(cfg)
	if err != nil {
		return nil, fmt.Errorf("cleaner initialization: %v", err)
	}
	return c, nil
}

// Clean trims every line and drops blank lines, comment lines and lines
// matching an exclude pattern. Survivors are compared verbatim, so case and
// inner whitespace differences produce distinct entries.
func (c *Cleaner) Clean(lines []string) model.Set {
	set := model.NewSet()
	var dropped int

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || c.isComment(line) {
			continue
		}
		if c.isExcluded(line) {
			dropped++
			continue
		}
		set.Add(line)
	}

	if dropped > 0 {
		c.log.Debug().Msgf("excluded %d line(s)", dropped)
	}
	return set
}

func (c *Cleaner) isComment(line string) bool {
	for _, prefix := range c.prefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

func (c *Cleaner) isExcluded(line string) bool {
	for _, g := range c.exclude {
		if g.Match(line) {
			return true
		}
	}
	return false
}

func initCleaner(cfg Config) (*Cleaner, error) {
	c := &Cleaner{
		prefixes: cfg.CommentPrefixes,
		log:      log.New("cleaner"),
	}
	if len(c.prefixes) == 0 {
		c.prefixes = DefaultCommentPrefixes
	}

	for _, pattern := range cfg.Exclude {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("exclude pattern '%s': %v", pattern, err)
		}
		c.exclude = append(c.exclude, g)
	}
	return c, nil
}

package clean

import (
	"fmt"
	"strings"
)

var DefaultCommentPrefixes = []string{"#", "!"}

type Config struct {
	CommentPrefixes []string `yaml:"comment_prefixes"` // optional, default '#' and '!'
	Exclude         []string `yaml:"exclude"`          // optional, glob patterns
}

func validateConfig(cfg Config) error {
	for i, prefix := range cfg.CommentPrefixes {
		if strings.TrimSpace(prefix) == "" {
			return fmt.Errorf("'clean->comment_prefixes' empty prefix [%d]", i+1)
		}
	}
	for i, pattern := range cfg.Exclude {
		if pattern == "" {
			return fmt.Errorf("'clean->exclude' empty pattern [%d]", i+1)
		}
	}
	return nil
}

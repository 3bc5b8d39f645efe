package export

import (
	"errors"
	"strings"
)

const (
	DefaultFilename = "combined_hosts.txt"
	StdoutFilename  = "-"
)

type Config struct {
	Filename string `yaml:"filename"` // optional, '-' writes to stdout
	Header   string `yaml:"header"`   // optional, text/template
}

func validateConfig(cfg Config) error {
	if cfg.Filename != "" && strings.TrimSpace(cfg.Filename) == "" {
		return errors.New("'export->filename' is blank")
	}
	return nil
}

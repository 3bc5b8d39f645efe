package export

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/netdata/hostsmerge/pipeline/model"
	"github.com/netdata/hostsmerge/pkg/funcmap"
	"github.com/netdata/hostsmerge/pkg/log"

	"github.com/rs/zerolog"
)

type File struct {
	file   string
	header *template.Template
	stdout io.Writer
	wr     *bufio.Writer
	log    zerolog.Logger
}

func New(cfg Config) (*File, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("file export config validation: %v", err)
	}
	f := &File{
		file:   cfg.Filename,
		stdout: os.Stdout,
		log:    log.New("file export"),
	}
	if f.file == "" {
		f.file = DefaultFilename
	}
	if cfg.Header != "" {
		tmpl, err := parseTemplate(cfg.Header)
		if err != nil {
			return nil, fmt.Errorf("file export header: %v", err)
		}
		f.header = tmpl
	}
	return f, nil
}

func (f File) String() string {
	return fmt.Sprintf("file exporter (%s)", f.file)
}

func (f File) Filename() string { return f.file }

// Write truncates the target and writes the set sorted, one line each. The
// header is rendered before the target is opened, so a failing template
// leaves the previous output in place.
func (f *File) Write(set model.Set, report *model.Report) (int, error) {
	var header []string
	if f.header != nil {
		var err error
		if header, err = f.renderHeader(report); err != nil {
			return 0, err
		}
	}

	lines := set.Sorted()
	f.log.Info().Msgf("writing %d line(s) to '%s' ...", len(lines), f.file)

	out, err := f.open()
	if err != nil {
		return 0, err
	}
	defer out.Close()

	if f.wr == nil {
		f.wr = bufio.NewWriterSize(out, 4096*4)
	} else {
		f.wr.Reset(out)
	}

	for _, line := range header {
		if _, err := f.wr.WriteString(line + "\n"); err != nil {
			return 0, err
		}
	}
	for _, line := range lines {
		if _, err := f.wr.WriteString(line + "\n"); err != nil {
			return 0, err
		}
	}
	if err := f.wr.Flush(); err != nil {
		return 0, err
	}
	if err := out.Close(); err != nil {
		return 0, err
	}

	f.log.Info().Msg("done")
	return len(lines), nil
}

func (f *File) open() (io.WriteCloser, error) {
	if f.file == StdoutFilename {
		return nopCloser{f.stdout}, nil
	}
	return os.Create(f.file)
}

type headerData struct {
	RunID   string
	Name    string
	Sources []model.SourceStatus
	Total   int
	Time    time.Time
}

func (f *File) renderHeader(report *model.Report) ([]string, error) {
	data := headerData{Time: time.Now()}
	if report != nil {
		data.RunID = report.RunID
		data.Name = report.Name
		data.Sources = report.Sources
		data.Total = report.Total
	}

	var buf bytes.Buffer
	if err := f.header.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute header template: %v", err)
	}
	return commentLines(buf.String()), nil
}

// commentLines makes every header line a hosts comment.
func commentLines(text string) []string {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = strings.TrimRight(line, "\r")
		switch {
		case strings.HasPrefix(strings.TrimSpace(line), "#"):
			lines[i] = line
		case strings.TrimSpace(line) == "":
			lines[i] = "#"
		default:
			lines[i] = "# " + line
		}
	}
	return lines
}

func parseTemplate(line string) (*template.Template, error) {
	return template.New("header").
		Option("missingkey=error").
		Funcs(funcmap.FuncMap).
		Parse(line)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

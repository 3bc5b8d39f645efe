package fetch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"unicode/utf8"

	"github.com/netdata/hostsmerge/pkg/log"

	"github.com/rs/zerolog"
)

const maxLineSize = 1024 * 1024

type Fetcher struct {
	client    *http.Client
	userAgent string
	log       zerolog.Logger
}

func New(cfg Config) (*Fetcher, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("fetch config validation: %v", err)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	return &Fetcher{
		client:    &http.Client{Timeout: cfg.Timeout},
		userAgent: cfg.UserAgent,
		log:       log.New("fetcher"),
	}, nil
}

func (f Fetcher) String() string {
	return fmt.Sprintf("fetcher (timeout %s)", f.client.Timeout)
}

// Fetch makes a single GET request and returns the body lines in order.
// On failure the error is logged and returned together with no lines.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]string, error) {
	lines, err := f.fetch(ctx, url)
	if err != nil {
		err = &Error{URL: url, Err: err}
		f.log.Error().Err(err).Msgf("failed to fetch '%s'", url)
		return nil, err
	}
	f.log.Debug().Msgf("fetched %d line(s) from '%s'", len(lines), url)
	return lines, nil
}

func (f *Fetcher) fetch(ctx context.Context, url string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}
	return readLines(resp.Body)
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	sc.Split(scanLines)

	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// scanLines is bufio.ScanLines that also breaks on a lone '\r' and on the
// Unicode line separators, so CR-only lists are not read as one line.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	for i := 0; i < len(data); {
		if !atEOF && !utf8.FullRune(data[i:]) {
			return 0, nil, nil
		}
		r, size := utf8.DecodeRune(data[i:])
		switch r {
		case '\r':
			if i+1 < len(data) {
				if data[i+1] == '\n' {
					return i + 2, data[:i], nil
				}
				return i + 1, data[:i], nil
			}
			if atEOF {
				return i + 1, data[:i], nil
			}
			return 0, nil, nil
		case '\n', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
			return i + size, data[:i], nil
		}
		i += size
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

func closeBody(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

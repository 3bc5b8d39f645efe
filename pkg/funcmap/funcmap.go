package funcmap

import (
	"regexp"
	"strings"
	"sync"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/gobwas/glob"
)

// FuncMap is the function set available to output header templates: sprig
// plus the matching helpers below.
var FuncMap = func() template.FuncMap {
	fm := sprig.TxtFuncMap()
	fm["glob"] = globAny
	fm["re"] = regExpAny
	fm["eqAny"] = eqAny
	return fm
}()

// globAny reports whether value matches any of the space separated patterns.
func globAny(value, line string, rest ...string) bool {
	for _, pattern := range strings.Fields(line) {
		if globOnce(value, pattern) {
			return true
		}
	}
	for _, pattern := range rest {
		if globOnce(value, pattern) {
			return true
		}
	}
	return false
}

func regExpAny(value, pattern string, rest ...string) bool {
	switch len(rest) {
	case 0:
		return regExpOnce(value, pattern)
	default:
		return regExpOnce(value, pattern) || regExpAny(value, rest[0], rest[1:]...)
	}
}

func eqAny(value, line string) bool {
	for _, s := range strings.Fields(line) {
		if value == s {
			return true
		}
	}
	return false
}

func globOnce(value, pattern string) bool {
	g, _ := globStore(pattern)
	return g != nil && g.Match(value)
}

func regExpOnce(value, pattern string) bool {
	r, _ := regexpStore(pattern)
	return r != nil && r.MatchString(value)
}

var globStore = func() func(pattern string) (glob.Glob, error) {
	var l sync.Mutex
	store := make(map[string]struct {
		g   glob.Glob
		err error
	})

	return func(pattern string) (glob.Glob, error) {
		if pattern == "" {
			return nil, nil
		}
		l.Lock()
		defer l.Unlock()
		r, ok := store[pattern]
		if !ok {
			r.g, r.err = glob.Compile(pattern, '/')
			store[pattern] = r
		}
		return r.g, r.err
	}
}()

var regexpStore = func() func(pattern string) (*regexp.Regexp, error) {
	var l sync.Mutex
	store := make(map[string]struct {
		r   *regexp.Regexp
		err error
	})

	return func(pattern string) (*regexp.Regexp, error) {
		if pattern == "" {
			return nil, nil
		}
		l.Lock()
		defer l.Unlock()
		r, ok := store[pattern]
		if !ok {
			r.r, r.err = regexp.Compile(pattern)
			store[pattern] = r
		}
		return r.r, r.err
	}
}()

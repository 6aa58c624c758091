package bookshelf

import (
	"strings"
)

// pattern is a compiled path template. Segments are literals, "{name}" for
// exactly one non-empty segment, or "{name...}" for zero or more segments.
type pattern struct {
	raw      string
	segments []string
}

// params holds the path values captured by a pattern.
type params map[string]string

func compilePattern(raw string) pattern {
	return pattern{
		raw:      raw,
		segments: strings.Split(strings.TrimPrefix(raw, "/"), "/"),
	}
}

// match reports whether path fits the pattern. Paths must be absolute.
func (p pattern) match(path string) (params, bool) {
	if !strings.HasPrefix(path, "/") {
		return nil, false
	}

	values := params{}
	if !matchSegments(p.segments, strings.Split(path[1:], "/"), values) {
		return nil, false
	}
	return values, true
}

func matchSegments(pat, segs []string, values params) bool {
	if len(pat) == 0 {
		return len(segs) == 0
	}

	head := pat[0]
	switch {
	case strings.HasPrefix(head, "{") && strings.HasSuffix(head, "...}"):
		name := head[1 : len(head)-4]
		for i := 0; i <= len(segs); i++ {
			if matchSegments(pat[1:], segs[i:], values) {
				values[name] = strings.Join(segs[:i], "/")
				return true
			}
		}
		return false

	case strings.HasPrefix(head, "{") && strings.HasSuffix(head, "}"):
		if len(segs) == 0 || segs[0] == "" {
			return false
		}
		if !matchSegments(pat[1:], segs[1:], values) {
			return false
		}
		values[head[1:len(head)-1]] = segs[0]
		return true

	default:
		return len(segs) > 0 && segs[0] == head && matchSegments(pat[1:], segs[1:], values)
	}
}

// route binds a method and pattern to a handler.
type route struct {
	method  string
	pattern pattern
	handle  handlerFunc
}

// collectionPatterns returns the list and item templates for collection.
// The item template accepts nested segments and addresses the trailing one.
func collectionPatterns(collection string) (list, item pattern) {
	list = compilePattern("/{prefix...}/" + collection)
	item = compilePattern("/{prefix...}/" + collection + "/{nested...}/{id}")
	return list, item
}

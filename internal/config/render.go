package config

import (
	"fmt"
	"strings"
)

// RenderDefaultTOML renders a TOML config with defaults from GetConfigOptions.
func RenderDefaultTOML() string {
	lines := []string{"# chostmd configuration (TOML)", ""}
	top, sections, order := groupOptions(GetConfigOptions())
	for _, o := range top {
		writeTOMLOption(&lines, o)
	}
	for _, section := range order {
		lines = append(lines, "["+section+"]")
		for _, o := range sections[section] {
			writeTOMLOption(&lines, o)
		}
	}
	return strings.Join(lines, "\n")
}

// UpdateTOML adds missing defaults to an existing TOML string and comments
// out unknown keys. Missing keys land at the end of their table; missing
// tables are appended. It reports whether anything changed.
func UpdateTOML(existing string) (string, bool) {
	opts := GetConfigOptions()
	known := make(map[string]bool, len(opts))
	for _, o := range opts {
		known[o.Key] = true
	}

	// segments[0] is the root table; each header starts a new segment.
	type segment struct {
		name  string
		lines []string
	}
	segments := []*segment{{}}
	seen := make(map[string]bool)
	changed := false

	for _, line := range strings.Split(existing, "\n") {
		cur := segments[len(segments)-1]
		trim := strings.TrimSpace(line)
		if trim == "" || strings.HasPrefix(trim, "#") || strings.HasPrefix(trim, ";") {
			cur.lines = append(cur.lines, line)
			continue
		}
		if strings.HasPrefix(trim, "[") && strings.HasSuffix(trim, "]") {
			segments = append(segments, &segment{name: strings.TrimSpace(trim[1 : len(trim)-1]), lines: []string{line}})
			continue
		}
		key, ok := parseTOMLKey(line)
		if !ok {
			cur.lines = append(cur.lines, line)
			continue
		}
		fullKey := key
		if cur.name != "" {
			fullKey = cur.name + "." + key
		}
		seen[fullKey] = true
		if !known[fullKey] {
			indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
			cur.lines = append(cur.lines,
				indent+"# OUTDATED: option removed from config schema",
				indent+"# "+strings.TrimLeft(line, " \t"))
			changed = true
			continue
		}
		cur.lines = append(cur.lines, line)
	}

	missing := make([]ConfigOption, 0)
	for _, o := range opts {
		if !seen[o.Key] {
			missing = append(missing, o)
		}
	}
	top, sections, order := groupOptions(missing)

	byName := make(map[string]*segment, len(segments))
	for _, sg := range segments {
		if _, dup := byName[sg.name]; !dup {
			byName[sg.name] = sg
		}
	}
	insert := func(sg *segment, add []ConfigOption) {
		end := len(sg.lines)
		for end > 0 && strings.TrimSpace(sg.lines[end-1]) == "" {
			end--
		}
		body := append([]string(nil), sg.lines[:end]...)
		tail := sg.lines[end:]
		if end > 0 && !strings.HasPrefix(strings.TrimSpace(body[end-1]), "[") {
			body = append(body, "")
		}
		for _, o := range add {
			writeTOMLOption(&body, o)
		}
		// writeTOMLOption ends on a blank line; the original blanks replace it
		if len(tail) > 0 {
			body = append(body[:len(body)-1], tail...)
		}
		sg.lines = body
		changed = true
	}
	if len(top) > 0 {
		insert(segments[0], top)
	}
	for _, name := range order {
		if sg, ok := byName[name]; ok {
			insert(sg, sections[name])
			continue
		}
		sg := &segment{name: name, lines: []string{"[" + name + "]"}}
		segments = append(segments, sg)
		insert(sg, sections[name])
	}

	out := make([]string, 0)
	for _, sg := range segments {
		out = append(out, sg.lines...)
	}
	return strings.Join(out, "\n"), changed
}

// groupOptions splits dotted keys into sections, keeping first-seen order.
func groupOptions(opts []ConfigOption) ([]ConfigOption, map[string][]ConfigOption, []string) {
	var top []ConfigOption
	sections := make(map[string][]ConfigOption)
	var order []string
	for _, o := range opts {
		section, key, ok := strings.Cut(o.Key, ".")
		if !ok {
			top = append(top, o)
			continue
		}
		if _, seen := sections[section]; !seen {
			order = append(order, section)
		}
		sections[section] = append(sections[section], ConfigOption{Key: key, Default: o.Default, Comment: o.Comment})
	}
	return top, sections, order
}

func parseTOMLKey(line string) (string, bool) {
	idx := strings.Index(line, "=")
	if idx == -1 {
		return "", false
	}
	key := strings.TrimSpace(line[:idx])
	if key == "" || strings.HasPrefix(key, "[") {
		return "", false
	}
	if strings.HasPrefix(key, "\"") || strings.HasPrefix(key, "'") {
		return "", false
	}
	return key, true
}

func writeTOMLOption(lines *[]string, o ConfigOption) {
	if o.Comment != "" {
		*lines = append(*lines, "# "+o.Comment)
	}
	*lines = append(*lines, tomlAssignment(o.Key, o.Default), "")
}

func tomlAssignment(key string, value any) string {
	switch v := value.(type) {
	case string:
		return fmt.Sprintf("%s = %q", key, v)
	case []string:
		quoted := make([]string, len(v))
		for i, s := range v {
			quoted[i] = fmt.Sprintf("%q", s)
		}
		return fmt.Sprintf("%s = [%s]", key, strings.Join(quoted, ", "))
	default:
		return fmt.Sprintf("%s = %v", key, v)
	}
}

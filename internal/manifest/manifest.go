// Package manifest reads the project manifest described in spec §6: a
// deliberately tiny TOML subset (section headers, array-of-tables headers,
// string-valued key-value pairs, `#` comments — nothing else) that the
// build driver uses to discover a project's binary and library modules.
//
// This is the one ambient concern in this codebase that stays on the
// standard library rather than reaching for goccy/go-yaml or a real TOML
// library: the external interface intentionally is NOT full TOML (no
// numbers, booleans, nested tables, or dotted keys), so parsing it with a
// real TOML parser would silently accept a much larger grammar than the
// one spec §6 promises callers. A handful of regexps over bufio.Scanner
// gives the exact subset instead.
package manifest

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"github.com/shiro-lang/shiro/internal/diag"
)

// Module describes one `[[bin]]` or `[[lib]]` table: a named module whose
// sources live under Src (relative to the manifest's directory) and which
// depends on the named modules in Dependencies.
type Module struct {
	Name         string
	Src          string
	Binary       bool
	Dependencies []string
}

// Manifest is the parsed shape of a project's manifest file (§6).
type Manifest struct {
	ProjectName string
	Modules     []*Module
}

type section int

const (
	secNone section = iota
	secProject
	secBin
	secLib
	secDep
)

var (
	arrayHeaderRe = regexp.MustCompile(`^\[\[([A-Za-z_][A-Za-z0-9_.]*)\]\]$`)
	tableHeaderRe = regexp.MustCompile(`^\[([A-Za-z_][A-Za-z0-9_.]*)\]$`)
	keyValueRe    = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*=\s*"((?:[^"\\]|\\.)*)"$`)
)

// Parse reads a manifest document from r. file is used only to stamp
// diagnostic positions; malformed lines are recorded as errors and
// skipped rather than aborting the whole read, matching the rest of this
// front end's "collect every diagnostic in one pass" convention.
func Parse(r io.Reader, file string) (*Manifest, *diag.Bag) {
	bag := diag.NewBag()
	m := &Manifest{}

	sect := secNone
	var current *Module

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := stripComment(scanner.Text())
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		if match := arrayHeaderRe.FindStringSubmatch(text); match != nil {
			switch match[1] {
			case "bin":
				current = &Module{Binary: true}
				m.Modules = append(m.Modules, current)
				sect = secBin
			case "lib":
				current = &Module{Binary: false}
				m.Modules = append(m.Modules, current)
				sect = secLib
			case "bin.dep":
				if current == nil || !current.Binary {
					bag.Error(pos(file, lineNo), "[[bin.dep]] must follow a [[bin]] table")
					continue
				}
				sect = secDep
			case "lib.dep":
				if current == nil || current.Binary {
					bag.Error(pos(file, lineNo), "[[lib.dep]] must follow a [[lib]] table")
					continue
				}
				sect = secDep
			default:
				bag.Error(pos(file, lineNo), "unrecognized array-of-tables header [[%s]]", match[1])
			}
			continue
		}

		if match := tableHeaderRe.FindStringSubmatch(text); match != nil {
			if match[1] != "project" {
				bag.Error(pos(file, lineNo), "unrecognized section [%s]", match[1])
				continue
			}
			sect = secProject
			continue
		}

		match := keyValueRe.FindStringSubmatch(text)
		if match == nil {
			bag.Error(pos(file, lineNo), "malformed manifest line: %q", scanner.Text())
			continue
		}
		key, value := match[1], unescape(match[2])

		switch sect {
		case secProject:
			if key == "name" {
				m.ProjectName = value
			} else {
				bag.Error(pos(file, lineNo), "unknown key '%s' in [project]", key)
			}
		case secBin, secLib:
			switch key {
			case "name":
				current.Name = value
			case "src":
				current.Src = value
			default:
				bag.Error(pos(file, lineNo), "unknown key '%s' in module table", key)
			}
		case secDep:
			if key == "name" {
				current.Dependencies = append(current.Dependencies, value)
			} else {
				bag.Error(pos(file, lineNo), "unknown key '%s' in a dependency table", key)
			}
		default:
			bag.Error(pos(file, lineNo), "key-value pair '%s' outside any section", key)
		}
	}

	return m, bag
}

func pos(file string, line int) diag.Position {
	return diag.Position{File: file, Line: line, Column: 1}
}

func stripComment(line string) string {
	inString := false
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '"':
			inString = !inString
		case '\\':
			if inString {
				i++ // skip the escaped character
			}
		case '#':
			if !inString {
				return line[:i]
			}
		}
	}
	return line
}

var escapeReplacer = strings.NewReplacer(
	`\n`, "\n",
	`\t`, "\t",
	`\"`, `"`,
	`\\`, `\`,
)

func unescape(s string) string {
	return escapeReplacer.Replace(s)
}

package scenescript

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ============================================================
// Parser
// ============================================================

// Line is one parsed command. Keys keeps the source order of Params.
type Line struct {
	Command string
	Keys    []string
	Params  map[string]string
}

func (l Line) Float(key string) (float64, bool) {
	raw, ok := l.Params[key]
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func (l Line) Int(key string) (int, bool) {
	raw, ok := l.Params[key]
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseLine splits "make_wall, id=0, a_x=1.0" into a command and params.
// Parts without '=' are ignored.
func ParseLine(line string) (Line, error) {
	parts := strings.Split(line, ",")
	name := strings.TrimSpace(parts[0])
	if name == "" {
		return Line{}, fmt.Errorf("missing command name")
	}

	out := Line{Command: name, Params: make(map[string]string, len(parts)-1)}
	for _, part := range parts[1:] {
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return Line{}, fmt.Errorf("%s: empty parameter name", name)
		}
		if _, dup := out.Params[key]; dup {
			return Line{}, fmt.Errorf("%s: duplicate parameter %q", name, key)
		}
		out.Keys = append(out.Keys, key)
		out.Params[key] = strings.TrimSpace(value)
	}
	return out, nil
}

// ParseScript parses every command line of r. Blank lines and lines
// starting with '#' are skipped.
func ParseScript(r io.Reader) ([]Line, error) {
	var lines []Line
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		line, err := ParseLine(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// Count tallies parsed lines per command name.
func Count(lines []Line) map[string]int {
	out := make(map[string]int)
	for _, l := range lines {
		out[l.Command]++
	}
	return out
}

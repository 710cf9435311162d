package scenescript

import (
	"strconv"
	"strings"
)

// ============================================================
// Commands
// ============================================================

const (
	MakeWall       = "make_wall"
	MakeCurvedWall = "make_curved_wall"
	MakeDoor       = "make_door"
	MakeWindow     = "make_window"
	MakeBBox       = "make_bbox"
)

// Commands lists every command the converter emits.
var Commands = []string{MakeWall, MakeCurvedWall, MakeDoor, MakeWindow, MakeBBox}

// NoWall fills the unused wall slot of an opening.
const NoWall = -1

// Command builds one line: "name, k1=v1, k2=v2".
type Command struct {
	name   string
	params []string
}

func New(name string) *Command {
	return &Command{name: name}
}

func (c *Command) Int(key string, v int) *Command {
	c.params = append(c.params, key+"="+strconv.Itoa(v))
	return c
}

// Float appends a value with exactly six decimals.
func (c *Command) Float(key string, v float64) *Command {
	c.params = append(c.params, key+"="+FormatFloat(v))
	return c
}

func (c *Command) Name() string {
	return c.name
}

func (c *Command) String() string {
	if len(c.params) == 0 {
		return c.name
	}
	return c.name + ", " + strings.Join(c.params, ", ")
}

// FormatFloat renders v with six decimals and never emits "-0.000000".
func FormatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', 6, 64)
	if s == "-0.000000" {
		return "0.000000"
	}
	return s
}

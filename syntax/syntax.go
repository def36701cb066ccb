// Package syntax checks generated Java sources with the tree-sitter Java
// grammar. It is a cheap guard against printer bugs; it does not type
// check.
package syntax

import (
	"fmt"
	"os"
	"sort"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("jcm.syntax")

// Problem is one syntax error in a source file. Line and Column are
// 1-based.
type Problem struct {
	Path    string
	Line    int
	Column  int
	Missing bool
	Text    string
}

func (p Problem) String() string {
	what := "unexpected " + quote(p.Text)
	if p.Missing {
		what = "missing " + p.Text
	}
	return fmt.Sprintf("%s:%d:%d: %s", p.Path, p.Line, p.Column, what)
}

func quote(s string) string {
	if len(s) > 40 {
		s = s[:40] + "..."
	}
	return fmt.Sprintf("%q", s)
}

// Checker parses Java sources. It is not safe for concurrent use.
type Checker struct {
	parser *sitter.Parser
}

func NewChecker() (*Checker, error) {
	p := sitter.NewParser()
	if err := p.SetLanguage(sitter.NewLanguage(tree_sitter_java.Language())); err != nil {
		p.Close()
		return nil, fmt.Errorf("loading Java grammar: %w", err)
	}
	return &Checker{parser: p}, nil
}

func (c *Checker) Close() { c.parser.Close() }

// Check parses src and returns its syntax errors in source order. path
// only labels the problems.
func (c *Checker) Check(path string, src []byte) []Problem {
	tree := c.parser.Parse(src, nil)
	if tree == nil {
		return []Problem{{Path: path, Line: 1, Column: 1, Text: "unparsable source"}}
	}
	defer tree.Close()
	var problems []Problem
	collect(tree.RootNode(), src, path, &problems)
	log.Debugf("%s: %d problems", path, len(problems))
	return problems
}

// CheckFile reads and checks one file.
func (c *Checker) CheckFile(path string) ([]Problem, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return c.Check(path, src), nil
}

// CheckAll checks every ".java" entry of files, a map from path to
// contents, in path order.
func (c *Checker) CheckAll(files map[string][]byte) []Problem {
	paths := make([]string, 0, len(files))
	for p := range files {
		if strings.HasSuffix(p, ".java") {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	var problems []Problem
	for _, p := range paths {
		problems = append(problems, c.Check(p, files[p])...)
	}
	return problems
}

// collect walks only the subtrees that contain errors.
func collect(n *sitter.Node, src []byte, path string, out *[]Problem) {
	if n == nil || !n.HasError() && !n.IsMissing() {
		return
	}
	if n.IsError() || n.IsMissing() {
		pos := n.StartPosition()
		p := Problem{
			Path:    path,
			Line:    int(pos.Row) + 1,
			Column:  int(pos.Column) + 1,
			Missing: n.IsMissing(),
		}
		if p.Missing {
			p.Text = n.Kind()
		} else {
			p.Text = n.Utf8Text(src)
		}
		*out = append(*out, p)
		if n.IsMissing() {
			return
		}
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		collect(n.Child(i), src, path, out)
	}
}

// Check parses one source with a throwaway Checker.
func Check(path string, src []byte) ([]Problem, error) {
	c, err := NewChecker()
	if err != nil {
		return nil, err
	}
	defer c.Close()
	return c.Check(path, src), nil
}

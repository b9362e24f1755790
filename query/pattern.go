// Package query matches fixed traversal patterns against the provenance graph and
// reconstructs the per-run tuples the reports are built from.
package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/c360studio/semmls/graph"
	"github.com/c360studio/semmls/vocabulary/mls"
)

// Pattern errors.
var (
	ErrUnboundVariable = errors.New("unbound variable")
	ErrUnknownPrefix   = errors.New("unknown prefix")
)

// Step is one edge traversal. Inverse steps walk from object to subject.
type Step struct {
	Predicate string
	Inverse   bool
}

// Clause binds To to every node reached from From along Path. When Const is set the
// clause is a filter instead: the binding survives only if Const is reachable.
type Clause struct {
	From  string
	Path  []Step
	To    string
	Const string
}

// Pattern is a traversal spec rooted at every node of RootClass.
type Pattern struct {
	Root      string
	RootClass string
	Clauses   []Clause
	Select    []string
	Distinct  bool
}

// Solution maps variable names to bound terms.
type Solution map[string]graph.Term

// ParsePath reads a property path of "/"-separated predicates. A leading "^" marks an
// inverse step and "a" is shorthand for rdf:type.
func ParsePath(path string) []Step {
	parts := strings.Split(path, "/")
	steps := make([]Step, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		inverse := strings.HasPrefix(p, "^")
		p = strings.TrimPrefix(p, "^")
		if p == "a" {
			p = "rdf:type"
		}
		steps = append(steps, Step{Predicate: p, Inverse: inverse})
	}
	return steps
}

// Edge is shorthand for a clause over a parsed path.
func Edge(from, path, to string) Clause {
	return Clause{From: from, Path: ParsePath(path), To: to}
}

// Is is shorthand for a filter clause requiring path to reach the constant.
func Is(from, path, constant string) Clause {
	return Clause{From: from, Path: ParsePath(path), Const: constant}
}

// Engine evaluates patterns over one graph.
type Engine struct {
	g  *graph.Graph
	ns mls.Namespaces
}

// NewEngine returns an engine resolving compact IRIs with ns.
func NewEngine(g *graph.Graph, ns mls.Namespaces) *Engine {
	return &Engine{g: g, ns: ns}
}

// Match returns the projected solutions of p in graph order. A clause that reaches
// nothing drops the solution.
func (e *Engine) Match(p Pattern) ([]Solution, error) {
	class, err := e.expand(p.RootClass)
	if err != nil {
		return nil, err
	}

	var solutions []Solution
	for _, root := range e.g.SubjectsOfType(class) {
		solutions = append(solutions, Solution{p.Root: root})
	}

	for _, c := range p.Clauses {
		steps, err := e.expandPath(c.Path)
		if err != nil {
			return nil, err
		}
		var constant graph.Term
		if c.Const != "" {
			iri, err := e.expand(c.Const)
			if err != nil {
				return nil, err
			}
			constant = graph.IRI(iri)
		}

		next := make([]Solution, 0, len(solutions))
		for _, s := range solutions {
			from, ok := s[c.From]
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrUnboundVariable, c.From)
			}
			reached := e.follow(from, steps)

			switch {
			case c.Const != "":
				if contains(reached, constant) {
					next = append(next, s)
				}
			case bound(s, c.To):
				if contains(reached, s[c.To]) {
					next = append(next, s)
				}
			default:
				for _, t := range reached {
					ext := make(Solution, len(s)+1)
					for k, v := range s {
						ext[k] = v
					}
					ext[c.To] = t
					next = append(next, ext)
				}
			}
		}
		solutions = next
	}

	return project(solutions, p.Select, p.Distinct)
}

func (e *Engine) follow(start graph.Term, steps []Step) []graph.Term {
	frontier := []graph.Term{start}
	for _, step := range steps {
		seen := make(map[string]struct{})
		var next []graph.Term
		for _, node := range frontier {
			var reached []graph.Term
			if step.Inverse {
				reached = e.g.Subjects(node, step.Predicate)
			} else {
				reached = e.g.Objects(node, step.Predicate)
			}
			for _, t := range reached {
				if _, dup := seen[t.Key()]; dup {
					continue
				}
				seen[t.Key()] = struct{}{}
				next = append(next, t)
			}
		}
		if len(next) == 0 {
			return nil
		}
		frontier = next
	}
	return frontier
}

func (e *Engine) expandPath(path []Step) ([]Step, error) {
	out := make([]Step, len(path))
	for i, step := range path {
		iri, err := e.expand(step.Predicate)
		if err != nil {
			return nil, err
		}
		out[i] = Step{Predicate: iri, Inverse: step.Inverse}
	}
	return out, nil
}

// expand resolves a compact IRI. Absolute IRIs pass through.
func (e *Engine) expand(curie string) (string, error) {
	if strings.Contains(curie, "://") {
		return curie, nil
	}
	iri := e.ns.Expand(curie)
	if iri == curie {
		return "", fmt.Errorf("%w: %s", ErrUnknownPrefix, curie)
	}
	return iri, nil
}

func project(solutions []Solution, vars []string, distinct bool) ([]Solution, error) {
	out := make([]Solution, 0, len(solutions))
	seen := make(map[string]struct{})
	for _, s := range solutions {
		row := make(Solution, len(vars))
		keys := make([]string, len(vars))
		for i, v := range vars {
			t, ok := s[v]
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrUnboundVariable, v)
			}
			row[v] = t
			keys[i] = t.Key()
		}
		if distinct {
			key := strings.Join(keys, "\x00")
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
		}
		out = append(out, row)
	}
	return out, nil
}

func bound(s Solution, name string) bool {
	_, ok := s[name]
	return ok
}

func contains(terms []graph.Term, t graph.Term) bool {
	for _, x := range terms {
		if x == t {
			return true
		}
	}
	return false
}

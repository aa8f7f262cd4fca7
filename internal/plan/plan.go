// Package plan describes ordered batches of exercise runs loaded from YAML.
package plan

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mrled/suns/drills/internal/exercise"
	"github.com/mrled/suns/drills/internal/service/runner"
)

// Args holds step arguments. YAML scalars of any type (ints included) are
// kept as their literal text.
type Args []string

// UnmarshalYAML accepts a sequence of scalars or a single scalar
func (a *Args) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*a = Args{node.Value}
		return nil
	case yaml.SequenceNode:
		args := make(Args, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: step arguments must be scalars", item.Line)
			}
			args = append(args, item.Value)
		}
		*a = args
		return nil
	default:
		return fmt.Errorf("line %d: args must be a scalar or a list", node.Line)
	}
}

// Step is one exercise invocation
type Step struct {
	Name string        `yaml:"name,omitempty" json:"name,omitempty"`
	Kind exercise.Kind `yaml:"kind" json:"kind"`
	Args Args          `yaml:"args,omitempty" json:"args,omitempty"`
	Skip bool          `yaml:"skip,omitempty" json:"skip,omitempty"`
}

// Request converts the step into a runner request
func (s Step) Request() runner.Request {
	return runner.Request{Kind: s.Kind, Args: []string(s.Args)}
}

// Plan is an ordered list of steps
type Plan struct {
	Name  string `yaml:"name,omitempty" json:"name,omitempty"`
	Steps []Step `yaml:"steps" json:"steps"`
}

// Default mirrors the stock driver: every exercise is listed with sample
// input but only the palindrome check on "madam" is enabled.
func Default() *Plan {
	return &Plan{
		Name: "default",
		Steps: []Step{
			{Kind: exercise.Swap, Args: Args{"10", "20"}, Skip: true},
			{Kind: exercise.SumN, Args: Args{"10"}, Skip: true},
			{Kind: exercise.Factorial, Args: Args{"10"}, Skip: true},
			{Kind: exercise.Halve, Args: Args{"10"}, Skip: true},
			{Kind: exercise.EvenOdd, Args: Args{"10"}, Skip: true},
			{Kind: exercise.Prime, Args: Args{"10"}, Skip: true},
			{Kind: exercise.Palindrome, Args: Args{"madam"}},
		},
	}
}

// Load reads and validates a plan file
func Load(path string) (*Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open plan: %w", err)
	}
	defer f.Close()

	p, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Parse decodes and validates a plan from r
func Parse(r io.Reader) (*Plan, error) {
	var p Plan
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("plan is empty")
		}
		return nil, fmt.Errorf("failed to parse plan: %w", err)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks every step names a known exercise with the right number of arguments
func (p *Plan) Validate() error {
	if len(p.Steps) == 0 {
		return fmt.Errorf("plan has no steps")
	}

	for i := range p.Steps {
		step := &p.Steps[i]
		kind, err := exercise.ParseKind(string(step.Kind))
		if err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		step.Kind = kind

		if want := exercise.ArgCount(kind); len(step.Args) != want {
			return fmt.Errorf("step %d: %s expects %d argument(s), got %d", i+1, kind, want, len(step.Args))
		}
	}

	return nil
}

// Encode writes the plan as YAML
func (p *Plan) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return err
	}
	return enc.Close()
}

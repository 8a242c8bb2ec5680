// Package scenario reads loan scenarios from YAML or JSON files.
package scenario

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/theirongolddev/payoff/internal/ledger"
	"github.com/theirongolddev/payoff/internal/model"
	"github.com/theirongolddev/payoff/internal/pipeline"
)

// File is a scenario document. It holds either a single scenario at the top
// level or a list under "scenarios".
type File struct {
	Scenario  `yaml:",inline"`
	Scenarios []Scenario `json:"scenarios" yaml:"scenarios"`
}

// Scenario is one named set of loan inputs plus extra payments.
type Scenario struct {
	Name        string           `json:"name" yaml:"name"`
	Loan        *Loan            `json:"loan,omitempty" yaml:"loan,omitempty"`
	YearsLeft   int              `json:"years_left,omitempty" yaml:"years_left,omitempty"`
	Extras      []ledger.Payment `json:"extras,omitempty" yaml:"extras,omitempty"`
	ApplyExtras bool             `json:"apply_extras,omitempty" yaml:"apply_extras,omitempty"`
	Strict      bool             `json:"strict,omitempty" yaml:"strict,omitempty"`
}

// Loan is the loan block of a scenario. It remembers which keys the file
// set so the rest can come from configured defaults.
type Loan struct {
	model.LoanParameters `yaml:",inline"`

	keys map[string]bool
}

// NewLoan wraps fully specified parameters.
func NewLoan(p model.LoanParameters) *Loan {
	return &Loan{LoanParameters: p}
}

// UnmarshalYAML decodes the block and records the keys present.
func (l *Loan) UnmarshalYAML(node *yaml.Node) error {
	if err := node.Decode(&l.LoanParameters); err != nil {
		return err
	}
	l.keys = make(map[string]bool)
	if node.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(node.Content); i += 2 {
			l.keys[node.Content[i].Value] = true
		}
	}
	return nil
}

// UnmarshalJSON decodes the block and records the keys present.
func (l *Loan) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &l.LoanParameters); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	l.keys = make(map[string]bool, len(raw))
	for k := range raw {
		l.keys[k] = true
	}
	return nil
}

// Over returns base with every field this block set replaced. A block built
// in code rather than decoded sets every field.
func (l *Loan) Over(base model.LoanParameters) model.LoanParameters {
	if l == nil {
		return base
	}
	if l.keys == nil {
		return l.LoanParameters
	}
	out := base
	if l.keys["principal"] {
		out.Principal = l.Principal
	}
	if l.keys["annual_interest_rate_percent"] {
		out.AnnualInterestRatePercent = l.AnnualInterestRatePercent
	}
	if l.keys["monthly_payment"] {
		out.MonthlyPayment = l.MonthlyPayment
	}
	if l.keys["yearly_tax"] {
		out.YearlyTax = l.YearlyTax
	}
	if l.keys["yearly_insurance"] {
		out.YearlyInsurance = l.YearlyInsurance
	}
	if l.keys["term_months"] {
		out.TermMonths = l.TermMonths
	}
	return out
}

// Request converts the scenario into a pipeline request. Loan fields the
// file left out are zero; see RequestOver.
func (s Scenario) Request() pipeline.Request {
	return s.RequestOver(model.LoanParameters{})
}

// RequestOver converts the scenario into a pipeline request, taking loan
// fields the file left out from base. Extra payments are numbered through
// a ledger so every one carries a unique id.
func (s Scenario) RequestOver(base model.LoanParameters) pipeline.Request {
	p := s.Loan.Over(base)
	if s.YearsLeft > 0 {
		p.TermMonths = s.YearsLeft * 12
	}
	return pipeline.Request{
		Name:        s.Name,
		Params:      p,
		Extras:      ledger.New(s.Extras).Payments(),
		ApplyExtras: s.ApplyExtras,
		Strict:      s.Strict,
	}
}

// All returns every scenario in the file, the top-level one first.
func (f File) All() []Scenario {
	var out []Scenario
	if f.Loan != nil {
		top := f.Scenario
		if top.Name == "" {
			top.Name = "default"
		}
		out = append(out, top)
	}
	return append(out, f.Scenarios...)
}

// Requests returns a pipeline request per scenario.
func (f File) Requests() []pipeline.Request {
	return f.RequestsOver(model.LoanParameters{})
}

// RequestsOver returns a pipeline request per scenario, filling loan fields
// a scenario leaves out from base.
func (f File) RequestsOver(base model.LoanParameters) []pipeline.Request {
	all := f.All()
	reqs := make([]pipeline.Request, 0, len(all))
	for _, s := range all {
		reqs = append(reqs, s.RequestOver(base))
	}
	return reqs
}

// Validate checks structure only. Loan values are checked by the engine's
// strict mode when a scenario asks for it.
func (f File) Validate() error {
	all := f.All()
	if len(all) == 0 {
		return errors.New("no scenarios defined")
	}

	seen := make(map[string]bool, len(all))
	for i, s := range all {
		if s.Loan == nil {
			return fmt.Errorf("scenario %d (%q): loan is required", i+1, s.Name)
		}
		if s.Name != "" {
			if seen[s.Name] {
				return fmt.Errorf("duplicate scenario name %q", s.Name)
			}
			seen[s.Name] = true
		}
		if s.YearsLeft < 0 {
			return fmt.Errorf("scenario %q: years_left must not be negative", s.Name)
		}
		for j, e := range s.Extras {
			if e.Amount <= 0 {
				return fmt.Errorf("scenario %q extra %d: amount must be positive", s.Name, j+1)
			}
			if e.StartOffset < 0 {
				return fmt.Errorf("scenario %q extra %d: start_offset must not be negative", s.Name, j+1)
			}
		}
	}
	return nil
}

// Parse decodes a scenario document, trying YAML first and JSON second.
func Parse(data []byte) (*File, error) {
	f := &File{}

	err := yaml.Unmarshal(data, f)
	if err != nil {
		f = &File{}
		if jerr := json.Unmarshal(data, f); jerr != nil {
			return nil, fmt.Errorf("parse scenario (tried YAML and JSON): %w", err)
		}
	}

	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return f, nil
}

// LoadFromFile reads and validates a scenario file.
func LoadFromFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is chosen by the local user
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}
	return Parse(data)
}

// Marshal encodes f as YAML.
func Marshal(f File) ([]byte, error) {
	return yaml.Marshal(f)
}

package leadform

import "strings"

// Context identifies which kind of lead form a field list is evaluated for.
type Context string

const (
	ContextBankForm    Context = "bank_form"
	ContextNewLeadForm Context = "new_lead_form"
)

// Purpose separates the selection-time listing of available fields from the
// filtering applied before a form is persisted.
type Purpose string

const (
	PurposeDisplay Purpose = "display"
	PurposeSave    Purpose = "save"
)

// MatchKind is how a rule value is compared against its target.
type MatchKind string

const (
	MatchExact     MatchKind = "exact"
	MatchSubstring MatchKind = "substring"
)

// Target is the field attribute a rule inspects.
type Target string

const (
	TargetKey   Target = "key"
	TargetLabel Target = "label"
)

// Rule excludes a field when its target matches Value. When AlsoAny is set the
// target must additionally contain at least one of those values.
type Rule struct {
	Name     string
	Match    MatchKind
	Target   Target
	Value    string
	AlsoAny  []string
	Contexts []Context
}

// Allowance lists keys that bypass every exclusion rule for one purpose.
// An empty Contexts slice means the allowance holds for every context.
type Allowance struct {
	Purpose  Purpose
	Contexts []Context
	Keys     []string
}

// Policy is the single rule table shared by the display and save call sites.
type Policy struct {
	Rules []Rule
	Allow []Allowance
}

var (
	bothContexts = []Context{ContextBankForm, ContextNewLeadForm}
	bankOnly     = []Context{ContextBankForm}
)

// separatorVariants spells a compound term with every separator style the
// upstream templates use: "asm_name", "asm-name", "asmname", "asm name".
func separatorVariants(parts ...string) []string {
	seps := []string{"_", "-", "", " "}
	out := make([]string, 0, len(seps))
	for _, sep := range seps {
		out = append(out, strings.Join(parts, sep))
	}
	return out
}

// vocabulary expands terms into exact key rules and substring label rules.
func vocabulary(name string, contexts []Context, terms ...[]string) []Rule {
	var rules []Rule
	for _, term := range terms {
		for _, v := range separatorVariants(term...) {
			rules = append(rules,
				Rule{Name: name, Match: MatchExact, Target: TargetKey, Value: v, Contexts: contexts},
				Rule{Name: name, Match: MatchExact, Target: TargetLabel, Value: v, Contexts: contexts},
			)
		}
	}
	return rules
}

// DefaultPolicy returns the exclusion and allow tables for agent-facing lead forms.
func DefaultPolicy() Policy {
	var rules []Rule

	// Fixed vocabulary.
	rules = append(rules, vocabulary("applicant_contact", bankOnly,
		[]string{"applicant", "email"},
		[]string{"applicant", "mobile"},
	)...)
	rules = append(rules, vocabulary("asm", bothContexts,
		[]string{"asm", "name"},
		[]string{"asm", "email"},
		[]string{"asm", "mobile"},
	)...)
	rules = append(rules, vocabulary("salary", bankOnly, []string{"salary"})...)
	rules = append(rules, vocabulary("commission", bothContexts,
		[]string{"commission"},
		[]string{"comission"},
		[]string{"commission", "amount"},
		[]string{"commission", "percentage"},
		[]string{"comission", "amount"},
		[]string{"comission", "percentage"},
	)...)

	rules = append(rules,
		Rule{Name: "asm", Match: MatchSubstring, Target: TargetLabel, Value: "asm", Contexts: bothContexts},
		Rule{Name: "asm", Match: MatchSubstring, Target: TargetKey, Value: "asm", Contexts: bothContexts},
		Rule{Name: "applicant_contact", Match: MatchSubstring, Target: TargetLabel, Value: "applicant", AlsoAny: []string{"email", "mobile"}, Contexts: bankOnly},
		Rule{Name: "salary", Match: MatchSubstring, Target: TargetLabel, Value: "salary", Contexts: bankOnly},
		Rule{Name: "commission", Match: MatchSubstring, Target: TargetLabel, Value: "commission", Contexts: bothContexts},
		Rule{Name: "commission", Match: MatchSubstring, Target: TargetKey, Value: "commission", Contexts: bothContexts},
		Rule{Name: "commission", Match: MatchSubstring, Target: TargetLabel, Value: "comission", Contexts: bothContexts},
		Rule{Name: "commission", Match: MatchSubstring, Target: TargetKey, Value: "comission", Contexts: bothContexts},
	)

	return Policy{
		Rules: rules,
		Allow: []Allowance{
			{
				Purpose: PurposeDisplay,
				Keys:    []string{"leadname", "lead_name", "lead-name", "mobile", "email", "address"},
			},
			{
				Purpose:  PurposeSave,
				Contexts: []Context{ContextNewLeadForm},
				Keys: []string{
					"leadname", "lead_name", "lead-name",
					"customername", "customer_name", "customer-name",
				},
			},
		},
	}
}

func (r Rule) appliesTo(ctx Context) bool {
	for _, c := range r.Contexts {
		if c == ctx {
			return true
		}
	}
	return false
}

// matches reports whether the rule fires for an already lowercased key and label.
func (r Rule) matches(key, label string) bool {
	subject := label
	if r.Target == TargetKey {
		subject = key
	}

	var hit bool
	switch r.Match {
	case MatchExact:
		hit = subject == r.Value
	case MatchSubstring:
		hit = r.Value != "" && strings.Contains(subject, r.Value)
	}
	if !hit || len(r.AlsoAny) == 0 {
		return hit
	}
	for _, extra := range r.AlsoAny {
		if strings.Contains(subject, extra) {
			return true
		}
	}
	return false
}

func (a Allowance) appliesTo(purpose Purpose, ctx Context) bool {
	if a.Purpose != purpose {
		return false
	}
	if len(a.Contexts) == 0 {
		return true
	}
	for _, c := range a.Contexts {
		if c == ctx {
			return true
		}
	}
	return false
}

// allowed reports whether key is always kept for the given purpose and context.
func (p Policy) allowed(key string, purpose Purpose, ctx Context) bool {
	for _, a := range p.Allow {
		if !a.appliesTo(purpose, ctx) {
			continue
		}
		for _, k := range a.Keys {
			if k == key {
				return true
			}
		}
	}
	return false
}

// Excluded returns the name of the first rule that excludes the field, or "".
func (p Policy) Excluded(f Field, ctx Context) string {
	key := strings.ToLower(strings.TrimSpace(f.Key))
	label := strings.ToLower(strings.TrimSpace(f.Label))
	for _, r := range p.Rules {
		if r.appliesTo(ctx) && r.matches(key, label) {
			return r.Name
		}
	}
	return ""
}

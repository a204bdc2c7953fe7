package leadform

import "strings"

// Field is the minimal view of a candidate field the engine needs.
type Field struct {
	Key   string
	Label string
}

// Options controls one filter pass.
type Options struct {
	Context Context
	Purpose Purpose
	// Selected holds keys already bound to the form being edited. A selected
	// DSA code field is never dropped by deduplication.
	Selected map[string]bool
	Policy   *Policy
}

// Canonical DSA code keys. When both spellings are present the camelCase one wins.
const (
	DSACodeKey      = "dsaCode"
	DSACodeLegacy   = "dsacode"
	dsaLabelPattern = "dsa code"
)

var dsaKeys = map[string]bool{
	"dsacode":  true,
	"dsa_code": true,
	"codeuse":  true,
}

// IsDSACode reports whether the field is one of the DSA code variants.
func IsDSACode(f Field) bool {
	if dsaKeys[strings.ToLower(strings.TrimSpace(f.Key))] {
		return true
	}
	return strings.Contains(strings.ToLower(f.Label), dsaLabelPattern)
}

// Filter removes role-sensitive fields and collapses duplicate DSA code
// variants. The result keeps the input order, and Filter(Filter(x)) == Filter(x)
// for the same options.
func Filter[T any](items []T, view func(T) Field, opts Options) []T {
	policy := opts.Policy
	if policy == nil {
		p := DefaultPolicy()
		policy = &p
	}
	ctx := opts.Context
	if ctx == "" {
		ctx = ContextBankForm
	}

	kept := make([]T, 0, len(items))
	for _, item := range items {
		f := view(item)
		key := strings.ToLower(strings.TrimSpace(f.Key))
		if policy.allowed(key, opts.Purpose, ctx) {
			kept = append(kept, item)
			continue
		}
		if policy.Excluded(f, ctx) != "" {
			continue
		}
		kept = append(kept, item)
	}

	return dedupeDSA(kept, view, opts.Selected)
}

func dedupeDSA[T any](items []T, view func(T) Field, selected map[string]bool) []T {
	var hasCamel, hasLower bool
	canonical := -1
	for i, item := range items {
		f := view(item)
		if !IsDSACode(f) {
			continue
		}
		// selected variants survive on their own; the fallback is the first unselected one
		if canonical < 0 && !selected[f.Key] {
			canonical = i
		}
		switch f.Key {
		case DSACodeKey:
			hasCamel = true
		case DSACodeLegacy:
			hasLower = true
		}
	}
	if canonical < 0 {
		return items
	}

	preferCamel := hasCamel && hasLower
	out := make([]T, 0, len(items))
	for i, item := range items {
		f := view(item)
		if !IsDSACode(f) || selected[f.Key] {
			out = append(out, item)
			continue
		}
		if preferCamel {
			if f.Key == DSACodeKey {
				out = append(out, item)
			}
			continue
		}
		if i == canonical {
			out = append(out, item)
		}
	}
	return out
}

// FilterFields is Filter over plain Field values.
func FilterFields(fields []Field, opts Options) []Field {
	return Filter(fields, func(f Field) Field { return f }, opts)
}

// ContextFor maps a lead type to the engine context.
func ContextFor(leadType string) Context {
	if leadType == "new_lead" {
		return ContextNewLeadForm
	}
	return ContextBankForm
}

package leadform

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func keys(fields []Field) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, f.Key)
	}
	return out
}

func TestFilterBankFormScenario(t *testing.T) {
	in := []Field{
		{Key: "dsaCode", Label: "DSA Code"},
		{Key: "dsacode", Label: "dsa code"},
		{Key: "commission", Label: "Commission %"},
		{Key: "leadname", Label: "Lead Name"},
	}

	out := FilterFields(in, Options{Context: ContextBankForm, Purpose: PurposeSave})

	assert.Equal(t, []string{"dsaCode", "leadname"}, keys(out))
}

func TestFilterPrefersCamelCaseDSACodeRegardlessOfOrder(t *testing.T) {
	in := []Field{
		{Key: "dsacode", Label: "Dsa Code"},
		{Key: "loan_amount", Label: "Loan Amount"},
		{Key: "dsaCode", Label: "DSA Code"},
	}

	for _, ctx := range []Context{ContextBankForm, ContextNewLeadForm} {
		out := FilterFields(in, Options{Context: ctx, Purpose: PurposeSave})
		assert.Equal(t, []string{"loan_amount", "dsaCode"}, keys(out), string(ctx))
	}
}

func TestFilterKeepsFirstNonCanonicalDSAVariant(t *testing.T) {
	in := []Field{
		{Key: "codeuse", Label: "Code Use"},
		{Key: "city", Label: "City"},
		{Key: "dsa_code", Label: "DSA Code"},
		{Key: "partner_code", Label: "Partner DSA code"},
	}

	out := FilterFields(in, Options{Context: ContextBankForm, Purpose: PurposeSave})

	assert.Equal(t, []string{"codeuse", "city"}, keys(out))
}

func TestFilterKeepsSelectedDSAVariants(t *testing.T) {
	in := []Field{
		{Key: "dsa_code", Label: "DSA Code"},
		{Key: "codeuse", Label: "Code Use"},
	}

	out := FilterFields(in, Options{
		Context:  ContextBankForm,
		Purpose:  PurposeDisplay,
		Selected: map[string]bool{"codeuse": true},
	})

	assert.Equal(t, []string{"dsa_code", "codeuse"}, keys(out))
}

func TestFilterExcludesCommissionInEveryContext(t *testing.T) {
	in := []Field{
		{Key: "payout", Label: "Commission Amount"},
		{Key: "payout_pct", Label: "COMISSION percentage"},
		{Key: "agent_comission", Label: "Agent payout"},
		{Key: "bank_name", Label: "Bank Name"},
	}

	for _, ctx := range []Context{ContextBankForm, ContextNewLeadForm} {
		for _, purpose := range []Purpose{PurposeDisplay, PurposeSave} {
			out := FilterFields(in, Options{Context: ctx, Purpose: purpose})
			assert.Equal(t, []string{"bank_name"}, keys(out), "%s/%s", ctx, purpose)
		}
	}
}

func TestFilterBankFormExcludesStaffAndApplicantContact(t *testing.T) {
	in := []Field{
		{Key: "asm_name", Label: "ASM Name"},
		{Key: "manager", Label: "Asm-Email"},
		{Key: "applicant_email", Label: "Applicant Email"},
		{Key: "contact", Label: "Applicant Mobile No"},
		{Key: "income", Label: "Monthly Salary"},
		{Key: "salary", Label: "Pay"},
		{Key: "applicant_city", Label: "Applicant City"},
	}

	out := FilterFields(in, Options{Context: ContextBankForm, Purpose: PurposeSave})

	assert.Equal(t, []string{"applicant_city"}, keys(out))
}

func TestFilterNewLeadUsesReducedRuleSet(t *testing.T) {
	in := []Field{
		{Key: "asm_name", Label: "ASM Name"},
		{Key: "applicant_email", Label: "Applicant Email"},
		{Key: "income", Label: "Monthly Salary"},
		{Key: "leadname", Label: "Lead Name"},
		{Key: "customer_name", Label: "Customer Name"},
		{Key: "commission", Label: "Commission"},
	}

	out := FilterFields(in, Options{Context: ContextNewLeadForm, Purpose: PurposeSave})

	assert.Equal(t, []string{"applicant_email", "income", "leadname", "customer_name"}, keys(out))
}

func TestFilterDisplayAllowListShortCircuitsExclusions(t *testing.T) {
	in := []Field{
		{Key: "mobile", Label: "Applicant Mobile"},
		{Key: "Email", Label: "Applicant Email"},
		{Key: "asm_mobile", Label: "ASM Mobile"},
	}

	display := FilterFields(in, Options{Context: ContextBankForm, Purpose: PurposeDisplay})
	assert.Equal(t, []string{"mobile", "Email"}, keys(display))

	save := FilterFields(in, Options{Context: ContextBankForm, Purpose: PurposeSave})
	assert.Empty(t, save)
}

func TestFilterTreatsMissingValuesAsEmpty(t *testing.T) {
	in := []Field{{}, {Key: "city"}, {Label: "Salary"}}

	out := FilterFields(in, Options{Context: ContextBankForm, Purpose: PurposeSave})

	assert.Equal(t, []string{"", "city"}, keys(out))
}

func TestFilterIsIdempotent(t *testing.T) {
	lists := [][]Field{
		{
			{Key: "dsacode", Label: "dsa code"},
			{Key: "dsaCode", Label: "DSA Code"},
			{Key: "codeuse", Label: "Code"},
			{Key: "asm", Label: "ASM"},
			{Key: "mobile", Label: "Mobile"},
		},
		{
			{Key: "codeuse", Label: "Code Use"},
			{Key: "dsa_code", Label: "DSA Code"},
			{Key: "salary", Label: "Salary"},
			{Key: "leadname", Label: "Lead Name"},
		},
		{},
	}
	selected := map[string]bool{"dsa_code": true}

	for _, list := range lists {
		for _, ctx := range []Context{ContextBankForm, ContextNewLeadForm} {
			for _, purpose := range []Purpose{PurposeDisplay, PurposeSave} {
				opts := Options{Context: ctx, Purpose: purpose, Selected: selected}
				once := FilterFields(list, opts)
				twice := FilterFields(once, opts)
				assert.Equal(t, once, twice)
			}
		}
	}
}

func TestFilterSelectedVariantDoesNotDisplaceCamelCase(t *testing.T) {
	in := []Field{
		{Key: "leadname", Label: "Lead Name"},
		{Key: "codeuse", Label: "Code Use"},
		{Key: "dsacode", Label: "dsa code"},
		{Key: "dsaCode", Label: "DSA Code"},
	}
	opts := Options{Context: ContextBankForm, Purpose: PurposeDisplay, Selected: map[string]bool{"codeuse": true}}

	once := FilterFields(in, opts)
	assert.Equal(t, []string{"leadname", "codeuse", "dsaCode"}, keys(once))
	assert.Equal(t, keys(once), keys(FilterFields(once, opts)))
}

var dsaPool = []Field{
	{Key: "dsaCode", Label: "DSA Code"},
	{Key: "dsacode", Label: "dsa code"},
	{Key: "dsa_code", Label: "DSA Code"},
	{Key: "codeuse", Label: "Code Use"},
	{Key: "partner_code", Label: "Partner DSA code"},
	{Key: "leadname", Label: "Lead Name"},
}

// permutations calls fn with every ordered selection of up to n items of pool
func permutations(pool []Field, n int, fn func([]Field)) {
	used := make([]bool, len(pool))
	var cur []Field
	var walk func()
	walk = func() {
		fn(append([]Field(nil), cur...))
		if len(cur) == n {
			return
		}
		for i := range pool {
			if used[i] {
				continue
			}
			used[i] = true
			cur = append(cur, pool[i])
			walk()
			cur = cur[:len(cur)-1]
			used[i] = false
		}
	}
	walk()
}

func checkFilter(t *testing.T, list []Field, opts Options) bool {
	t.Helper()
	once := FilterFields(list, opts)
	twice := FilterFields(once, opts)
	if !assert.Equal(t, keys(once), keys(twice), "in=%v selected=%v %s/%s", keys(list), opts.Selected, opts.Context, opts.Purpose) {
		return false
	}

	var hasCamel, hasLower bool
	for _, f := range list {
		hasCamel = hasCamel || f.Key == DSACodeKey
		hasLower = hasLower || f.Key == DSACodeLegacy
	}
	if hasCamel && hasLower && !opts.Selected[DSACodeLegacy] {
		out := keys(once)
		return assert.Contains(t, out, DSACodeKey, "in=%v", keys(list)) &&
			assert.NotContains(t, out, DSACodeLegacy, "in=%v", keys(list))
	}
	return true
}

func TestFilterIdempotentForEveryDSACombination(t *testing.T) {
	policy := DefaultPolicy()
	permutations(dsaPool, 5, func(list []Field) {
		if t.Failed() {
			return
		}
		for mask := 0; mask < 1<<len(list); mask++ {
			selected := map[string]bool{}
			for i, f := range list {
				if mask&(1<<i) != 0 {
					selected[f.Key] = true
				}
			}
			for _, ctx := range []Context{ContextBankForm, ContextNewLeadForm} {
				for _, purpose := range []Purpose{PurposeDisplay, PurposeSave} {
					opts := Options{Context: ctx, Purpose: purpose, Selected: selected, Policy: &policy}
					if !checkFilter(t, list, opts) {
						return
					}
				}
			}
		}
	})
}

func TestFilterIdempotentForRandomLists(t *testing.T) {
	pool := append([]Field{
		{Key: "asm_name", Label: "ASM Name"},
		{Key: "income", Label: "Monthly Salary"},
		{Key: "applicant_email", Label: "Applicant Email"},
		{Key: "mobile", Label: "Mobile"},
		{Key: "commission", Label: "Commission %"},
		{Key: "city", Label: "City"},
		{Key: "", Label: ""},
	}, dsaPool...)
	policy := DefaultPolicy()
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 2000; i++ {
		n := rng.Intn(len(pool) + 1)
		list := make([]Field, 0, n)
		selected := map[string]bool{}
		for _, idx := range rng.Perm(len(pool))[:n] {
			list = append(list, pool[idx])
			if rng.Intn(3) == 0 {
				selected[pool[idx].Key] = true
			}
		}
		ctx := []Context{ContextBankForm, ContextNewLeadForm}[rng.Intn(2)]
		purpose := []Purpose{PurposeDisplay, PurposeSave}[rng.Intn(2)]

		opts := Options{Context: ctx, Purpose: purpose, Selected: selected, Policy: &policy}
		if !checkFilter(t, list, opts) {
			t.Logf("iteration %d", i)
			return
		}
	}
}

func TestFilterGenericPreservesItems(t *testing.T) {
	type binding struct {
		key   string
		label string
		order int
	}
	in := []binding{{"city", "City", 2}, {"asm_email", "ASM Email", 1}}

	out := Filter(in, func(b binding) Field { return Field{Key: b.key, Label: b.label} },
		Options{Context: ContextBankForm, Purpose: PurposeSave})

	assert.Equal(t, []binding{{"city", "City", 2}}, out)
}

func TestPolicyExcludedNamesRule(t *testing.T) {
	p := DefaultPolicy()
	assert.Equal(t, "salary", p.Excluded(Field{Key: "salary"}, ContextBankForm))
	assert.Equal(t, "", p.Excluded(Field{Key: "salary"}, ContextNewLeadForm))
	assert.Equal(t, "asm", p.Excluded(Field{Key: "x", Label: "Area ASM"}, ContextNewLeadForm))
}

func TestContextFor(t *testing.T) {
	assert.Equal(t, ContextNewLeadForm, ContextFor("new_lead"))
	assert.Equal(t, ContextBankForm, ContextFor("bank"))
}

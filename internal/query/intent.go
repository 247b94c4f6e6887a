package query

import (
	"time"
)

// IntentKind tags the purpose of a question.
type IntentKind int

const (
	IntentNonFinancial IntentKind = iota
	IntentGreeting
	IntentIncome
	IntentExpense
	IntentCategoryTotal
	IntentExtremum
	IntentComparison
	IntentGenericStats
	IntentBalance
	IntentDebt
)

var intentNames = map[IntentKind]string{
	IntentNonFinancial:  "non_financial",
	IntentGreeting:      "greeting",
	IntentIncome:        "income",
	IntentExpense:       "expense",
	IntentCategoryTotal: "category_total",
	IntentExtremum:      "extremum",
	IntentComparison:    "comparison",
	IntentGenericStats:  "generic_stats",
	IntentBalance:       "balance",
	IntentDebt:          "debt",
}

func (k IntentKind) String() string {
	if name, ok := intentNames[k]; ok {
		return name
	}
	return "unknown"
}

// ExtremumKind selects the largest or the smallest category.
type ExtremumKind int

const (
	ExtremumMax ExtremumKind = iota
	ExtremumMin
)

func (k ExtremumKind) String() string {
	if k == ExtremumMin {
		return "min"
	}
	return "max"
}

// Transaction group names as stored.
const (
	GroupIncome  = "income"
	GroupExpense = "expense"
	GroupDebt    = "debt-loan"
)

// Intent is the classified purpose of a question. Only the fields relevant to
// Kind are set.
type Intent struct {
	Kind IntentKind

	// CategoryTotal
	Category string

	// Extremum
	Extremum  ExtremumKind
	GroupHint string

	// Comparison
	CategoryA string
	CategoryB string
}

// Plan is an intent together with the filters derived from the question.
type Plan struct {
	Intent Intent
	Range  *DateRange
	Spec   QuerySpec
}

var (
	greetingPhrases = []string{
		"xin chào", "xin chao", "hello", "hi", "chào", "chao", "chào bạn", "chao ban",
	}

	financeVocabulary = vocabulary{
		"tổng", " chi ", "chi tiêu", "chi phí", "thu nhập", " thu ", "tiền", "bao nhiêu",
		"số dư", "so sánh", "nhiều nhất", "ít nhất", "cao nhất", "thấp nhất", "lớn nhất",
		"nhỏ nhất", "tốn", "giao dịch", "hóa đơn", "hoá đơn", " nợ", " vay ", "ngân sách",
		" vnd",
		"total", "spend", "spent", "spending", "expense", "income", "earn", "how much",
		"cost", "balance", "compare", "money", " bill", "transaction", "debt", "loan",
		"budget",
	}

	// extremumMinVocabulary is checked before extremumMaxVocabulary.
	extremumMinVocabulary = vocabulary{
		"ít nhất", "thấp nhất", "nhỏ nhất", "least", "smallest", "lowest", "cheapest",
	}
	extremumMaxVocabulary = vocabulary{
		"nhiều nhất", "nhiều tiền nhất", "cao nhất", "lớn nhất", "tốn kém nhất", "tốn nhất",
		" most ", "highest", "biggest", "largest", "costliest",
	}

	comparisonVocabulary = vocabulary{"so sánh", "so với", "compare", "comparison", " vs ", "versus"}

	incomeVocabulary = vocabulary{
		"thu nhập", " thu ", "tiền vào", "income", "earn", "revenue",
	}
	expenseVocabulary = vocabulary{
		"chi tiêu", "chi phí", " chi ", " tiêu ", "tốn", "expense", "spend", "spent", "cost", " paid ",
	}
	debtVocabulary    = vocabulary{" nợ", " vay ", "debt", "loan"}
	balanceVocabulary = vocabulary{"số dư", "so du", "tiền hiện có", "balance"}
)

func isGreeting(normalized string) bool {
	for _, g := range greetingPhrases {
		if normalized == g {
			return true
		}
	}
	return false
}

func isFinancial(q string) bool {
	if financeVocabulary.matchIn(q) {
		return true
	}
	_, ok := lookupCategory(q)
	return ok
}

// Classify returns the intent of a question asked at now.
func Classify(question string, now time.Time) Intent {
	return Interpret(question, now).Intent
}

// Interpret classifies a question and derives its filters. The checks run in a
// fixed priority order and the first one that applies decides the intent, so
// "cao nhất tiền điện" is an extremum question rather than a category total.
func Interpret(question string, now time.Time) Plan {
	normalized := Normalize(question)
	if isGreeting(normalized) {
		return Plan{Intent: Intent{Kind: IntentGreeting}}
	}

	q := padded(normalized)
	if !isFinancial(q) {
		return Plan{Intent: Intent{Kind: IntentNonFinancial}}
	}

	today := dateOnly(now)
	var plan Plan
	if r, ok := resolveTimeRange(q, today); ok {
		plan.Range = &r
	}

	if extremumMinVocabulary.matchIn(q) || extremumMaxVocabulary.matchIn(q) {
		intent := Intent{Kind: IntentExtremum, Extremum: ExtremumMax}
		if extremumMinVocabulary.matchIn(q) {
			intent.Extremum = ExtremumMin
		}
		if expenseVocabulary.matchIn(q) {
			intent.GroupHint = GroupExpense
		}
		plan.Intent = intent
		plan.Spec = QuerySpec{Group: intent.GroupHint, Range: plan.Range}
		return plan
	}

	if plan.Range == nil {
		if r, ok := inlineMonth(q, today); ok {
			plan.Range = &r
		}
	}
	plan.Spec.Range = plan.Range

	if comparisonVocabulary.matchIn(q) {
		if keys := categoriesInOrder(q); len(keys) >= 2 {
			plan.Intent = Intent{Kind: IntentComparison, CategoryA: keys[0], CategoryB: keys[1]}
			return plan
		}
	}

	switch {
	case incomeVocabulary.matchIn(q):
		plan.Intent = Intent{Kind: IntentIncome}
		plan.Spec.Group = GroupIncome
		return plan
	case expenseVocabulary.matchIn(q):
		plan.Intent = Intent{Kind: IntentExpense}
		plan.Spec.Group = GroupExpense
		return plan
	case debtVocabulary.matchIn(q):
		plan.Intent = Intent{Kind: IntentDebt}
		plan.Spec.Group = GroupDebt
		return plan
	case balanceVocabulary.matchIn(q):
		plan.Intent = Intent{Kind: IntentBalance}
		return plan
	}

	if key, ok := lookupCategory(q); ok {
		plan.Intent = Intent{Kind: IntentCategoryTotal, Category: key}
		plan.Spec.Category = key
		return plan
	}

	plan.Intent = Intent{Kind: IntentGenericStats}
	return plan
}

package query

import (
	"context"
	"math/rand/v2"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
)

// DefaultParallelThreshold is the transaction count from which aggregation
// is split across workers.
const DefaultParallelThreshold = 5000

// Interpreter answers questions over an in-memory transaction set.
type Interpreter struct {
	logger    *zap.Logger
	clock     func() time.Time
	location  *time.Location
	pick      func(n int) int
	workers   int
	threshold int
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithClock overrides the source of "now".
func WithClock(clock func() time.Time) Option {
	return func(i *Interpreter) { i.clock = clock }
}

// WithLocation sets the time zone that decides the current calendar date.
func WithLocation(loc *time.Location) Option {
	return func(i *Interpreter) {
		if loc != nil {
			i.location = loc
		}
	}
}

// WithParallelism enables partitioned aggregation with workers goroutines
// once a transaction set reaches threshold records.
func WithParallelism(workers, threshold int) Option {
	return func(i *Interpreter) {
		i.workers = workers
		i.threshold = threshold
	}
}

// WithGreetingPicker overrides how a greeting reply is chosen; pick returns
// an index in [0, n).
func WithGreetingPicker(pick func(n int) int) Option {
	return func(i *Interpreter) { i.pick = pick }
}

func NewInterpreter(logger *zap.Logger, opts ...Option) *Interpreter {
	i := &Interpreter{
		logger:    logger,
		clock:     time.Now,
		location:  time.Local,
		pick:      rand.IntN,
		workers:   1,
		threshold: DefaultParallelThreshold,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Now returns the interpreter's current instant in its location.
func (i *Interpreter) Now() time.Time {
	return i.clock().In(i.location)
}

// Answer interprets question and computes its result over txs. The only
// error returned is ctx's, from a cancelled parallel aggregation.
func (i *Interpreter) Answer(ctx context.Context, question string, txs []Transaction) (Answer, error) {
	if !utf8.ValidString(question) || Normalize(strings.TrimSpace(question)) == "" {
		return Answer{Outcome: OutcomeInvalidInput, Text: InvalidQuestion}, nil
	}

	plan := Interpret(question, i.Now())
	ans := Answer{Intent: plan.Intent, Range: plan.Range}
	label := ""
	if plan.Range != nil {
		label = plan.Range.Label
	}

	i.logger.Debug("question classified",
		zap.String("intent", plan.Intent.Kind.String()),
		zap.String("range", label),
		zap.Int("transactions", len(txs)),
	)

	switch plan.Intent.Kind {
	case IntentGreeting:
		ans.Outcome = OutcomeGreeting
		ans.Text = GreetingResponses[i.pick(len(GreetingResponses))]
		return ans, nil

	case IntentNonFinancial:
		ans.Outcome = OutcomeNonFinancial
		return ans, nil

	case IntentExtremum:
		res, ok := FindExtremum(txs, plan.Intent.GroupHint, plan.Range, plan.Intent.Extremum)
		if !ok {
			return noMatch(ans), nil
		}
		ans.Outcome = OutcomeOK
		ans.Extremum = &res
		ans.Value = &res.Amount
		ans.Text = FormatExtremum(res, true, plan.Intent.Extremum, plan.Intent.GroupHint == GroupExpense, label)
		return ans, nil

	case IntentComparison:
		a, err := i.aggregate(ctx, txs, QuerySpec{Category: plan.Intent.CategoryA, Range: plan.Range})
		if err != nil {
			return Answer{}, err
		}
		b, err := i.aggregate(ctx, txs, QuerySpec{Category: plan.Intent.CategoryB, Range: plan.Range})
		if err != nil {
			return Answer{}, err
		}
		if a.Count == 0 && b.Count == 0 {
			return noMatch(ans), nil
		}
		diff := a.Total.Sub(b.Total)
		ans.Outcome = OutcomeOK
		ans.Value = &diff
		ans.Text = FormatComparison(
			CategoryAmount{Category: CategoryLabel(plan.Intent.CategoryA), Amount: a.Total},
			CategoryAmount{Category: CategoryLabel(plan.Intent.CategoryB), Amount: b.Total},
			label,
		)
		return ans, nil

	case IntentBalance:
		income, err := i.aggregate(ctx, txs, QuerySpec{Group: GroupIncome, Range: plan.Range})
		if err != nil {
			return Answer{}, err
		}
		expense, err := i.aggregate(ctx, txs, QuerySpec{Group: GroupExpense, Range: plan.Range})
		if err != nil {
			return Answer{}, err
		}
		if income.Count == 0 && expense.Count == 0 {
			return noMatch(ans), nil
		}
		balance := income.Total.Sub(expense.Total)
		ans.Outcome = OutcomeOK
		ans.Value = &balance
		ans.Text = FormatBalance(income.Total, expense.Total, label)
		return ans, nil
	}

	stats, err := i.aggregate(ctx, txs, plan.Spec)
	if err != nil {
		return Answer{}, err
	}
	if stats.Skipped > 0 {
		i.logger.Debug("transactions skipped", zap.Int("count", stats.Skipped))
	}
	if stats.Count == 0 {
		return noMatch(ans), nil
	}
	total := stats.Total
	ans.Outcome = OutcomeOK
	ans.Stats = &stats
	ans.Value = &total
	ans.Text = FormatStats(statsTitle(plan.Intent), stats, label)
	return ans, nil
}

func (i *Interpreter) aggregate(ctx context.Context, txs []Transaction, spec QuerySpec) (Stats, error) {
	if i.workers > 1 && len(txs) >= i.threshold {
		return AggregateParallel(ctx, txs, spec, i.workers)
	}
	return Aggregate(txs, spec), nil
}

func noMatch(ans Answer) Answer {
	ans.Outcome = OutcomeNoMatch
	ans.Text = InsufficientData
	return ans
}

func statsTitle(intent Intent) string {
	switch intent.Kind {
	case IntentIncome:
		return "Tổng thu nhập"
	case IntentExpense:
		return "Tổng chi tiêu"
	case IntentDebt:
		return "Tổng nợ/vay"
	case IntentCategoryTotal:
		return "Tổng " + CategoryLabel(intent.Category)
	default:
		return "Tổng giao dịch"
	}
}

package query

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// UncategorizedKey is the by-category key for transactions without a category.
const UncategorizedKey = "uncategorized"

const monthKeyLayout = "2006-01"

// QuerySpec restricts which transactions are aggregated. Zero values mean no
// restriction on that dimension.
type QuerySpec struct {
	Group    string
	Category string
	Range    *DateRange
}

// CategoryAmount is a total for one normalized category name.
type CategoryAmount struct {
	Category string
	Amount   decimal.Decimal
}

// Stats is the result of aggregating the transactions that pass a QuerySpec.
type Stats struct {
	Total      decimal.Decimal
	Count      int
	ByCategory []CategoryAmount // sorted by Amount descending
	ByMonth    map[string]decimal.Decimal
	Average    decimal.Decimal
	// Skipped counts matching transactions whose amount did not parse.
	Skipped int
}

// Months returns the ByMonth keys in chronological order.
func (s Stats) Months() []string {
	months := make([]string, 0, len(s.ByMonth))
	for m := range s.ByMonth {
		months = append(months, m)
	}
	sort.Strings(months)
	return months
}

type filter struct {
	group    string
	category string
	rng      *DateRange
}

func newFilter(spec QuerySpec) filter {
	return filter{
		group:    normalizeField(spec.Group),
		category: normalizeField(spec.Category),
		rng:      spec.Range,
	}
}

// match applies group, category and date filters in that order. It returns
// the normalized category name for a matching transaction.
func (f filter) match(tx Transaction) (string, bool) {
	if f.group != "" && normalizeField(tx.GroupName) != f.group {
		return "", false
	}
	category := normalizeField(tx.CategoryName)
	if f.category != "" && !strings.Contains(category, f.category) {
		return "", false
	}
	if f.rng != nil && (tx.Date.IsZero() || !f.rng.Contains(tx.Date)) {
		return "", false
	}
	if category == "" {
		category = UncategorizedKey
	}
	return category, true
}

func parseAmount(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(s))
}

// accumulator keeps category totals in first-seen order so that stable
// sorting and extremum ties are deterministic.
type accumulator struct {
	total      decimal.Decimal
	count      int
	skipped    int
	categories []CategoryAmount
	index      map[string]int
	months     map[string]decimal.Decimal
}

func newAccumulator() *accumulator {
	return &accumulator{
		index:  make(map[string]int),
		months: make(map[string]decimal.Decimal),
	}
}

func (a *accumulator) add(tx Transaction, f filter) {
	category, ok := f.match(tx)
	if !ok {
		return
	}
	amount, err := parseAmount(tx.Amount)
	if err != nil {
		a.skipped++
		return
	}
	a.total = a.total.Add(amount)
	a.count++
	a.addCategory(category, amount)
	if !tx.Date.IsZero() {
		key := tx.Date.Format(monthKeyLayout)
		a.months[key] = a.months[key].Add(amount)
	}
}

func (a *accumulator) addCategory(category string, amount decimal.Decimal) {
	if i, ok := a.index[category]; ok {
		a.categories[i].Amount = a.categories[i].Amount.Add(amount)
		return
	}
	a.index[category] = len(a.categories)
	a.categories = append(a.categories, CategoryAmount{Category: category, Amount: amount})
}

func (a *accumulator) merge(b *accumulator) {
	a.total = a.total.Add(b.total)
	a.count += b.count
	a.skipped += b.skipped
	for _, c := range b.categories {
		a.addCategory(c.Category, c.Amount)
	}
	for m, v := range b.months {
		a.months[m] = a.months[m].Add(v)
	}
}

func (a *accumulator) stats() Stats {
	byCategory := make([]CategoryAmount, len(a.categories))
	copy(byCategory, a.categories)
	sort.SliceStable(byCategory, func(i, j int) bool {
		return byCategory[i].Amount.GreaterThan(byCategory[j].Amount)
	})

	s := Stats{
		Total:      a.total,
		Count:      a.count,
		ByCategory: byCategory,
		ByMonth:    a.months,
		Average:    decimal.Zero,
		Skipped:    a.skipped,
	}
	if a.count > 0 {
		s.Average = a.total.Div(decimal.NewFromInt(int64(a.count)))
	}
	return s
}

// Aggregate computes statistics over the transactions that pass spec.
func Aggregate(txs []Transaction, spec QuerySpec) Stats {
	f := newFilter(spec)
	acc := newAccumulator()
	for _, tx := range txs {
		acc.add(tx, f)
	}
	return acc.stats()
}

const cancelCheckEvery = 1024

// AggregateParallel splits txs into contiguous partitions aggregated by up to
// workers goroutines. Partials are merged in partition order, so the result
// equals Aggregate(txs, spec).
func AggregateParallel(ctx context.Context, txs []Transaction, spec QuerySpec, workers int) (Stats, error) {
	if workers < 2 || len(txs) < workers {
		if err := ctx.Err(); err != nil {
			return Stats{}, err
		}
		return Aggregate(txs, spec), nil
	}

	f := newFilter(spec)
	size := (len(txs) + workers - 1) / workers
	partials := make([]*accumulator, 0, workers)
	g, ctx := errgroup.WithContext(ctx)
	for start := 0; start < len(txs); start += size {
		end := min(start+size, len(txs))
		acc := newAccumulator()
		partials = append(partials, acc)
		part := txs[start:end]
		g.Go(func() error {
			for i, tx := range part {
				if i%cancelCheckEvery == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				acc.add(tx, f)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Stats{}, err
	}

	result := partials[0]
	for _, p := range partials[1:] {
		result.merge(p)
	}
	return result.stats(), nil
}

// FindExtremum groups the transactions that pass the group and date filters
// by category and returns the category with the largest total, or for
// ExtremumMin the smallest total strictly above zero. Ties go to the category
// seen first. It reports false when no category qualifies.
func FindExtremum(txs []Transaction, groupHint string, rng *DateRange, kind ExtremumKind) (CategoryAmount, bool) {
	f := newFilter(QuerySpec{Group: groupHint, Range: rng})
	acc := newAccumulator()
	for _, tx := range txs {
		acc.add(tx, f)
	}

	var (
		best  CategoryAmount
		found bool
	)
	for _, c := range acc.categories {
		switch kind {
		case ExtremumMin:
			if !c.Amount.IsPositive() {
				continue
			}
			if !found || c.Amount.LessThan(best.Amount) {
				best, found = c, true
			}
		default:
			if !found || c.Amount.GreaterThan(best.Amount) {
				best, found = c, true
			}
		}
	}
	return best, found
}

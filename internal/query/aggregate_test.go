package query

import (
	"context"
	"math/rand/v2"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func requireAmount(t *testing.T, want int64, got decimal.Decimal) {
	t.Helper()
	require.True(t, decimal.NewFromInt(want).Equal(got), "want %d, got %s", want, got.String())
}

func marchPair() []Transaction {
	return []Transaction{
		{ID: "1", Amount: "100000", Date: day(2024, 3, 5), CategoryName: "water", GroupName: "expense"},
		{ID: "2", Amount: "50000", Date: day(2024, 3, 10), CategoryName: "food", GroupName: "expense"},
	}
}

func mixedTransactions() []Transaction {
	return []Transaction{
		{ID: "1", Amount: "100000", Date: day(2024, 3, 5), CategoryName: "Water", GroupName: "Expense"},
		{ID: "2", Amount: "50000", Date: day(2024, 3, 10), CategoryName: " food ", GroupName: "expense"},
		{ID: "3", Amount: "20000000", Date: day(2024, 3, 1), CategoryName: "Salary", GroupName: "income"},
		{ID: "4", Amount: "abc", Date: day(2024, 3, 11), CategoryName: "food", GroupName: "expense"},
		{ID: "5", Amount: "30000", Date: day(2024, 2, 20), CategoryName: "Food", GroupName: "expense"},
		{ID: "6", Amount: "70000", CategoryName: "", GroupName: "expense"},
		{ID: "7", Amount: "500000", Date: day(2024, 2, 1), CategoryName: "Bank loan", GroupName: "debt-loan"},
	}
}

func TestAggregateMarchScenario(t *testing.T) {
	t.Parallel()

	r := monthRange(2024, time.March)
	s := Aggregate(marchPair(), QuerySpec{Group: GroupExpense, Range: &r})
	require.Equal(t, 2, s.Count)
	requireAmount(t, 150000, s.Total)
	requireAmount(t, 75000, s.Average)
}

func TestAggregateFiltersAndBreakdowns(t *testing.T) {
	t.Parallel()

	s := Aggregate(mixedTransactions(), QuerySpec{Group: GroupExpense})
	require.Equal(t, 4, s.Count)
	require.Equal(t, 1, s.Skipped)
	requireAmount(t, 250000, s.Total)
	requireAmount(t, 62500, s.Average)

	require.Len(t, s.ByCategory, 3)
	require.Equal(t, "water", s.ByCategory[0].Category)
	requireAmount(t, 100000, s.ByCategory[0].Amount)
	require.Equal(t, "food", s.ByCategory[1].Category)
	requireAmount(t, 80000, s.ByCategory[1].Amount)
	require.Equal(t, UncategorizedKey, s.ByCategory[2].Category)
	requireAmount(t, 70000, s.ByCategory[2].Amount)

	require.Equal(t, []string{"2024-02", "2024-03"}, s.Months())
	requireAmount(t, 30000, s.ByMonth["2024-02"])
	requireAmount(t, 150000, s.ByMonth["2024-03"])
}

func TestAggregateMissingDateFailsRange(t *testing.T) {
	t.Parallel()

	r := monthRange(2024, time.March)
	s := Aggregate(mixedTransactions(), QuerySpec{Group: GroupExpense, Range: &r})
	require.Equal(t, 2, s.Count)
	requireAmount(t, 150000, s.Total)
}

func TestAggregateCategoryIsSubstringMatch(t *testing.T) {
	t.Parallel()

	s := Aggregate(mixedTransactions(), QuerySpec{Category: "FOOD"})
	require.Equal(t, 2, s.Count)
	requireAmount(t, 80000, s.Total)

	s = Aggregate(mixedTransactions(), QuerySpec{Category: "loan"})
	require.Equal(t, 1, s.Count)
	require.Equal(t, "bank loan", s.ByCategory[0].Category)
}

func TestAggregateNoMatch(t *testing.T) {
	t.Parallel()

	s := Aggregate(mixedTransactions(), QuerySpec{Group: "transfer"})
	require.Zero(t, s.Count)
	require.True(t, s.Total.IsZero())
	require.True(t, s.Average.IsZero())
	require.Empty(t, s.ByCategory)
	require.Empty(t, s.Months())

	s = Aggregate(nil, QuerySpec{})
	require.Zero(t, s.Count)
	require.True(t, s.Average.IsZero())
}

func randomTransactions(n int) []Transaction {
	rng := rand.New(rand.NewPCG(7, 11))
	groups := []string{"income", "expense", "debt-loan", "Expense", ""}
	categories := []string{"water", "food", "Food court", "rent", "salary", "", "electricity"}
	txs := make([]Transaction, n)
	for i := range txs {
		amount := strconv.Itoa(rng.IntN(2_000_000) - 100_000)
		if rng.IntN(20) == 0 {
			amount = "n/a"
		}
		var date time.Time
		if rng.IntN(15) != 0 {
			date = day(2024, 1, 1).AddDate(0, 0, rng.IntN(366))
		}
		txs[i] = Transaction{
			ID:           strconv.Itoa(i),
			Amount:       amount,
			Date:         date,
			CategoryName: categories[rng.IntN(len(categories))],
			GroupName:    groups[rng.IntN(len(groups))],
		}
	}
	return txs
}

func TestAggregateProperties(t *testing.T) {
	t.Parallel()

	txs := randomTransactions(2000)
	q2 := DateRange{Start: day(2024, 4, 1), End: day(2024, 6, 30)}
	specs := []QuerySpec{
		{},
		{Group: GroupExpense},
		{Group: GroupIncome, Range: &q2},
		{Category: "food"},
		{Group: GroupExpense, Category: "water", Range: &q2},
	}

	for _, spec := range specs {
		wantCount := 0
		wantTotal := decimal.Zero
		for _, tx := range txs {
			if spec.Group != "" && strings.ToLower(strings.TrimSpace(tx.GroupName)) != spec.Group {
				continue
			}
			if spec.Category != "" && !strings.Contains(strings.ToLower(tx.CategoryName), spec.Category) {
				continue
			}
			if spec.Range != nil && (tx.Date.IsZero() || tx.Date.Before(spec.Range.Start) || tx.Date.After(spec.Range.End)) {
				continue
			}
			amount, err := decimal.NewFromString(tx.Amount)
			if err != nil {
				continue
			}
			wantCount++
			wantTotal = wantTotal.Add(amount)
		}

		s := Aggregate(txs, spec)
		require.Equal(t, wantCount, s.Count, "spec %+v", spec)
		require.True(t, wantTotal.Equal(s.Total), "spec %+v", spec)

		sum := decimal.Zero
		for _, c := range s.ByCategory {
			sum = sum.Add(c.Amount)
		}
		require.True(t, sum.Equal(s.Total))
		require.True(t, sort.SliceIsSorted(s.ByCategory, func(i, j int) bool {
			return s.ByCategory[i].Amount.GreaterThan(s.ByCategory[j].Amount)
		}))

		if s.Count > 0 {
			require.True(t, s.Average.Equal(s.Total.Div(decimal.NewFromInt(int64(s.Count)))))
		} else {
			require.True(t, s.Average.IsZero())
		}
	}
}

func requireSameStats(t *testing.T, want, got Stats) {
	t.Helper()
	require.Equal(t, want.Count, got.Count)
	require.Equal(t, want.Skipped, got.Skipped)
	require.True(t, want.Total.Equal(got.Total))
	require.True(t, want.Average.Equal(got.Average))
	require.Len(t, got.ByCategory, len(want.ByCategory))
	for i := range want.ByCategory {
		require.Equal(t, want.ByCategory[i].Category, got.ByCategory[i].Category)
		require.True(t, want.ByCategory[i].Amount.Equal(got.ByCategory[i].Amount))
	}
	require.Equal(t, want.Months(), got.Months())
	for _, m := range want.Months() {
		require.True(t, want.ByMonth[m].Equal(got.ByMonth[m]))
	}
}

func TestAggregateParallelMatchesSequential(t *testing.T) {
	t.Parallel()

	txs := randomTransactions(5000)
	for _, workers := range []int{1, 2, 3, 8} {
		for _, spec := range []QuerySpec{{}, {Group: GroupExpense}, {Category: "food"}} {
			got, err := AggregateParallel(context.Background(), txs, spec, workers)
			require.NoError(t, err)
			requireSameStats(t, Aggregate(txs, spec), got)
		}
	}
}

func TestAggregateParallelCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := AggregateParallel(ctx, randomTransactions(100), QuerySpec{}, 4)
	require.ErrorIs(t, err, context.Canceled)

	_, err = AggregateParallel(ctx, randomTransactions(10), QuerySpec{}, 1)
	require.ErrorIs(t, err, context.Canceled)
}

func TestFindExtremumScenario(t *testing.T) {
	t.Parallel()

	res, ok := FindExtremum(marchPair(), GroupExpense, nil, ExtremumMax)
	require.True(t, ok)
	require.Equal(t, "water", res.Category)
	requireAmount(t, 100000, res.Amount)

	res, ok = FindExtremum(marchPair(), "", nil, ExtremumMin)
	require.True(t, ok)
	require.Equal(t, "food", res.Category)
}

func TestFindExtremumMinSkipsNonPositive(t *testing.T) {
	t.Parallel()

	txs := []Transaction{
		{Amount: "100", CategoryName: "refund", GroupName: "expense"},
		{Amount: "-100", CategoryName: "refund", GroupName: "expense"},
		{Amount: "5000", CategoryName: "food", GroupName: "expense"},
		{Amount: "3000", CategoryName: "water", GroupName: "expense"},
		{Amount: "-200", CategoryName: "fees", GroupName: "expense"},
		{Amount: "oops", CategoryName: "tiny", GroupName: "expense"},
	}
	res, ok := FindExtremum(txs, GroupExpense, nil, ExtremumMin)
	require.True(t, ok)
	require.Equal(t, "water", res.Category)
	requireAmount(t, 3000, res.Amount)

	_, ok = FindExtremum(txs[:2], GroupExpense, nil, ExtremumMin)
	require.False(t, ok)
}

func TestFindExtremumTiesGoToFirstSeen(t *testing.T) {
	t.Parallel()

	txs := []Transaction{
		{Amount: "500", CategoryName: "b", GroupName: "expense"},
		{Amount: "500", CategoryName: "a", GroupName: "expense"},
	}
	res, ok := FindExtremum(txs, "", nil, ExtremumMax)
	require.True(t, ok)
	require.Equal(t, "b", res.Category)

	res, ok = FindExtremum(txs, "", nil, ExtremumMin)
	require.True(t, ok)
	require.Equal(t, "b", res.Category)
}

func TestFindExtremumAppliesFilters(t *testing.T) {
	t.Parallel()

	r := monthRange(2024, time.February)
	res, ok := FindExtremum(mixedTransactions(), GroupExpense, &r, ExtremumMax)
	require.True(t, ok)
	require.Equal(t, "food", res.Category)
	requireAmount(t, 30000, res.Amount)

	_, ok = FindExtremum(mixedTransactions(), "transfer", nil, ExtremumMax)
	require.False(t, ok)

	_, ok = FindExtremum(nil, "", nil, ExtremumMax)
	require.False(t, ok)
}

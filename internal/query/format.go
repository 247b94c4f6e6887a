package query

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Fixed reply texts.
const (
	InsufficientData = "Không đủ dữ liệu để trả lời."
	InvalidQuestion  = "Vui lòng nhập câu hỏi hợp lệ"
)

// CurrencySuffix is appended to every formatted amount.
const CurrencySuffix = "VND"

var hundred = decimal.NewFromInt(100)

// FormatCurrency renders d rounded to an integer with comma grouping, e.g.
// "1,234,567 VND".
func FormatCurrency(d decimal.Decimal) string {
	return humanize.Comma(d.Round(0).IntPart()) + " " + CurrencySuffix
}

var categoryLabels = map[string]string{
	CategoryElectricity:   "tiền điện",
	CategoryWater:         "tiền nước",
	CategoryInternet:      "internet",
	CategoryPhone:         "điện thoại",
	CategoryGas:           "tiền gas",
	CategoryFood:          "ăn uống",
	CategoryShopping:      "mua sắm",
	CategoryRent:          "tiền nhà",
	CategoryTransport:     "đi lại",
	CategoryEntertainment: "giải trí",
	CategoryHealth:        "sức khỏe",
	CategoryEducation:     "giáo dục",
	CategorySalary:        "lương",
	CategoryOther:         "chi phí khác",
}

// CategoryLabel returns the display name for a canonical key, or the key
// itself when it has none.
func CategoryLabel(key string) string {
	if label, ok := categoryLabels[key]; ok {
		return label
	}
	return key
}

func period(timeLabel string) string {
	if timeLabel == "" {
		return ""
	}
	return " trong " + timeLabel
}

// FormatStats renders s under title, e.g. "Tổng chi tiêu trong tháng 3/2024".
// The category breakdown is listed only for more than one category and the
// monthly trend only for more than one month.
func FormatStats(title string, s Stats, timeLabel string) string {
	if s.Count == 0 {
		return InsufficientData
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s%s: %s", title, period(timeLabel), FormatCurrency(s.Total))
	fmt.Fprintf(&b, "\n- Số giao dịch: %d", s.Count)
	fmt.Fprintf(&b, "\n- Trung bình mỗi giao dịch: %s", FormatCurrency(s.Average))

	if len(s.ByCategory) > 1 {
		b.WriteString("\n\nTheo danh mục:")
		for _, c := range s.ByCategory {
			fmt.Fprintf(&b, "\n- %s: %s", c.Category, FormatCurrency(c.Amount))
			if !s.Total.IsZero() {
				fmt.Fprintf(&b, " (%s%%)", c.Amount.Mul(hundred).Div(s.Total).StringFixed(1))
			}
		}
	}

	if months := s.Months(); len(months) > 1 {
		b.WriteString("\n\nXu hướng theo tháng:")
		for _, m := range months {
			fmt.Fprintf(&b, "\n- %s: %s", m, FormatCurrency(s.ByMonth[m]))
		}
	}
	return b.String()
}

// FormatExtremum renders a FindExtremum result. expense selects the
// "you spent" wording.
func FormatExtremum(res CategoryAmount, ok bool, kind ExtremumKind, expense bool, timeLabel string) string {
	if !ok {
		return InsufficientData
	}
	amount := FormatCurrency(res.Amount)
	switch {
	case expense && kind == ExtremumMin:
		return fmt.Sprintf("Bạn chi ít nhất cho %s%s: %s", res.Category, period(timeLabel), amount)
	case expense:
		return fmt.Sprintf("Bạn chi nhiều nhất cho %s%s: %s", res.Category, period(timeLabel), amount)
	case kind == ExtremumMin:
		return fmt.Sprintf("Danh mục có số tiền nhỏ nhất%s: %s (%s)", period(timeLabel), res.Category, amount)
	default:
		return fmt.Sprintf("Danh mục có số tiền lớn nhất%s: %s (%s)", period(timeLabel), res.Category, amount)
	}
}

// FormatComparison renders two category totals and their difference.
func FormatComparison(a, b CategoryAmount, timeLabel string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "So sánh %s và %s%s:", a.Category, b.Category, period(timeLabel))
	fmt.Fprintf(&sb, "\n- %s: %s", a.Category, FormatCurrency(a.Amount))
	fmt.Fprintf(&sb, "\n- %s: %s", b.Category, FormatCurrency(b.Amount))

	diff := a.Amount.Sub(b.Amount)
	switch diff.Sign() {
	case 1:
		fmt.Fprintf(&sb, "\n%s nhiều hơn %s %s.", a.Category, b.Category, FormatCurrency(diff))
	case -1:
		fmt.Fprintf(&sb, "\n%s nhiều hơn %s %s.", b.Category, a.Category, FormatCurrency(diff.Neg()))
	default:
		fmt.Fprintf(&sb, "\n%s và %s bằng nhau.", a.Category, b.Category)
	}
	return sb.String()
}

// FormatBalance renders income minus expense.
func FormatBalance(income, expense decimal.Decimal, timeLabel string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Số dư%s: %s", period(timeLabel), FormatCurrency(income.Sub(expense)))
	fmt.Fprintf(&b, "\n- Thu nhập: %s", FormatCurrency(income))
	fmt.Fprintf(&b, "\n- Chi tiêu: %s", FormatCurrency(expense))
	return b.String()
}

// GreetingResponses are the replies to an exact greeting.
var GreetingResponses = []string{
	"Chào bạn! Tôi có thể giúp gì bạn hôm nay?",
	"Xin chào! Bạn muốn xem chi tiêu hay thu nhập?",
	"Hello, mình có thể hỗ trợ bạn xem tổng tiền hoặc hóa đơn.",
	"Chào bạn, bạn đang quan tâm đến chi tiêu hay thống kê tổng quan?",
	"Xin chào! Hãy hỏi mình về tổng tiền, hóa đơn hoặc danh mục chi tiêu nhé.",
}

// HelpText lists example questions.
const HelpText = `Tôi có thể giúp bạn với các câu hỏi sau:

THỐNG KÊ CHI TIÊU:
- Tổng chi tiêu tháng này
- Tôi đã chi bao nhiêu tiền điện tháng trước?
- Tổng thu nhập năm nay
- Tôi chi nhiều nhất cho khoản nào?

SỐ DƯ VÀ TỔNG KẾT:
- Số dư hiện tại
- So sánh tiền nước và ăn uống
- Tổng nợ/vay

TÌM KIẾM GIAO DỊCH:
- Tìm giao dịch mua sắm tháng này
- Tôi đã chi bao nhiêu cho ăn uống?`

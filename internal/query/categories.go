package query

import (
	"sort"
	"strings"
)

// Canonical category keys. Each key is a substring of the category names the
// store uses (e.g. "water" matches "Water bill").
const (
	CategoryElectricity   = "electricity"
	CategoryWater         = "water"
	CategoryInternet      = "internet"
	CategoryPhone         = "phone"
	CategoryGas           = "gas"
	CategoryFood          = "food"
	CategoryShopping      = "shopping"
	CategoryRent          = "rent"
	CategoryTransport     = "transport"
	CategoryEntertainment = "entertainment"
	CategoryHealth        = "health"
	CategoryEducation     = "education"
	CategorySalary        = "salary"
	CategoryOther         = "other"
)

// CategoryFragment maps a free-text fragment to a canonical category key.
type CategoryFragment struct {
	Fragment string
	Key      string
}

// categoryTable is scanned top to bottom and the first fragment contained in
// the question wins. Compound fragments that contain a shorter fragment of
// another category ("điện thoại" vs "điện", "nước hoa" vs "nước") must come
// first. Fragments are matched against the space-padded question, so a
// leading or trailing space anchors a fragment to a word boundary.
var categoryTable = []CategoryFragment{
	// utility bills
	{"điện thoại", CategoryPhone},
	{"điện tử", CategoryShopping},
	{"dien thoai", CategoryPhone},
	{"phone", CategoryPhone},
	{"tiền điện", CategoryElectricity},
	{"tien dien", CategoryElectricity},
	{"điện", CategoryElectricity},
	{"electricity", CategoryElectricity},
	{"nước hoa", CategoryShopping},
	{"tiền nước", CategoryWater},
	{"tien nuoc", CategoryWater},
	{"nước", CategoryWater},
	{"water", CategoryWater},
	{"internet", CategoryInternet},
	{"wifi", CategoryInternet},
	{"mạng", CategoryInternet},
	{"tiền ga ", CategoryGas},
	{" gas ", CategoryGas},

	// food
	{"ăn uống", CategoryFood},
	{"an uong", CategoryFood},
	{"đồ ăn", CategoryFood},
	{"ăn sáng", CategoryFood},
	{"ăn trưa", CategoryFood},
	{"ăn tối", CategoryFood},
	{"cà phê", CategoryFood},
	{"food", CategoryFood},
	{"restaurant", CategoryFood},

	// shopping
	{"mua sắm", CategoryShopping},
	{"mua sam", CategoryShopping},
	{"quần áo", CategoryShopping},
	{"shopping", CategoryShopping},
	{"clothes", CategoryShopping},

	// housing
	{"tiền thuê", CategoryRent},
	{"tiền nhà", CategoryRent},
	{"thuê nhà", CategoryRent},
	{" rent", CategoryRent},

	// transport
	{"xăng", CategoryTransport},
	{"đi lại", CategoryTransport},
	{"taxi", CategoryTransport},
	{"grab", CategoryTransport},
	{"transport", CategoryTransport},
	{"fuel", CategoryTransport},

	// entertainment
	{"giải trí", CategoryEntertainment},
	{"giai tri", CategoryEntertainment},
	{"xem phim", CategoryEntertainment},
	{"du lịch", CategoryEntertainment},
	{"entertainment", CategoryEntertainment},
	{"movie", CategoryEntertainment},

	// health
	{"sức khỏe", CategoryHealth},
	{"sức khoẻ", CategoryHealth},
	{"suc khoe", CategoryHealth},
	{"thuốc", CategoryHealth},
	{"bệnh viện", CategoryHealth},
	{"y tế", CategoryHealth},
	{"health", CategoryHealth},
	{"medical", CategoryHealth},

	// education
	{"giáo dục", CategoryEducation},
	{"giao duc", CategoryEducation},
	{"học phí", CategoryEducation},
	{"mua sách", CategoryEducation},
	{"education", CategoryEducation},
	{"tuition", CategoryEducation},

	// income categories
	{"lương", CategorySalary},
	{"luong", CategorySalary},
	{"salary", CategorySalary},

	// miscellaneous
	{"chi phí khác", CategoryOther},
	{"linh tinh", CategoryOther},
	{" khác ", CategoryOther},
	{"miscellaneous", CategoryOther},
	{" other ", CategoryOther},
}

// Fragments returns a copy of the category table in match order.
func Fragments() []CategoryFragment {
	out := make([]CategoryFragment, len(categoryTable))
	copy(out, categoryTable)
	return out
}

// LookupCategory returns the key of the first table fragment contained in
// the question.
func LookupCategory(question string) (string, bool) {
	return lookupCategory(padded(Normalize(question)))
}

func lookupCategory(q string) (string, bool) {
	for _, f := range categoryTable {
		if strings.Contains(q, f.Fragment) {
			return f.Key, true
		}
	}
	return "", false
}

// CategoriesInOrder returns the distinct category keys mentioned in the
// question, ordered by where they first appear. A fragment inside text
// already claimed by an earlier table entry does not count, so "điện thoại"
// is never also "điện". Keys found at the same position keep table order.
func CategoriesInOrder(question string) []string {
	return categoriesInOrder(padded(Normalize(question)))
}

type span struct{ start, end int }

func (s span) overlaps(o span) bool {
	return s.start < o.end && o.start < s.end
}

// fragmentSpans returns every occurrence of fragment in q, excluding the
// anchoring spaces.
func fragmentSpans(q, fragment string) []span {
	lead := len(fragment) - len(strings.TrimLeft(fragment, " "))
	trail := len(fragment) - len(strings.TrimRight(fragment, " "))
	var spans []span
	for from := 0; from < len(q); {
		pos := strings.Index(q[from:], fragment)
		if pos < 0 {
			break
		}
		pos += from
		spans = append(spans, span{pos + lead, pos + len(fragment) - trail})
		from = pos + 1
	}
	return spans
}

func categoriesInOrder(q string) []string {
	type hit struct {
		key   string
		pos   int
		order int
	}
	first := make(map[string]int)
	var hits []hit
	var claimed []span
	for i, f := range categoryTable {
		for _, sp := range fragmentSpans(q, f.Fragment) {
			free := true
			for _, c := range claimed {
				if sp.overlaps(c) {
					free = false
					break
				}
			}
			if !free {
				continue
			}
			claimed = append(claimed, sp)
			if idx, seen := first[f.Key]; seen {
				if sp.start < hits[idx].pos {
					hits[idx].pos = sp.start
				}
				continue
			}
			first[f.Key] = len(hits)
			hits = append(hits, hit{key: f.Key, pos: sp.start, order: i})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].pos != hits[j].pos {
			return hits[i].pos < hits[j].pos
		}
		return hits[i].order < hits[j].order
	})

	keys := make([]string, len(hits))
	for i, h := range hits {
		keys[i] = h.key
	}
	return keys
}

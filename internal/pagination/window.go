package pagination

// ItemKind identifies what a page-selector item renders as.
type ItemKind int

const (
	ItemPrev ItemKind = iota
	ItemPage
	ItemGap
	ItemNext
)

// Item is one control of a page selector.
type Item struct {
	Kind     ItemKind
	Page     int  // target page; 0 for gaps
	Active   bool // the current page
	Disabled bool // prev on the first page, next on the last
}

// DefaultSiblings is the number of pages shown on each side of the current one.
const DefaultSiblings = 1

// Items returns the page-selector controls for the current page: a prev
// control, the page numbers with gaps collapsing long runs, and a next control.
// First and last pages are always listed. Returns nil when no control should
// be shown.
func (p *Pager) Items(siblings int) []Item {
	if !p.HasControl() {
		return nil
	}
	if siblings < 0 {
		siblings = DefaultSiblings
	}

	total := p.TotalPages()
	items := make([]Item, 0, 2*siblings+7)
	items = append(items, Item{Kind: ItemPrev, Page: p.page - 1, Disabled: !p.HasPrev()})

	for _, n := range pageNumbers(p.page, total, siblings) {
		if n == 0 {
			items = append(items, Item{Kind: ItemGap})
			continue
		}
		items = append(items, Item{Kind: ItemPage, Page: n, Active: n == p.page})
	}

	items = append(items, Item{Kind: ItemNext, Page: p.page + 1, Disabled: !p.HasNext()})
	return items
}

// pageNumbers lists the visible page numbers with 0 marking a gap.
func pageNumbers(page, total, siblings int) []int {
	// first, last, current, both sibling runs, and two gaps
	slots := 2*siblings + 5
	if total <= slots {
		return rangeInts(1, total)
	}

	left := max(page-siblings, 1)
	right := min(page+siblings, total)
	leftGap := left > 3
	rightGap := right < total-2
	edge := 3 + 2*siblings

	switch {
	case !leftGap && rightGap:
		return append(rangeInts(1, edge), 0, total)
	case leftGap && !rightGap:
		return append([]int{1, 0}, rangeInts(total-edge+1, total)...)
	default:
		out := []int{1, 0}
		out = append(out, rangeInts(left, right)...)
		return append(out, 0, total)
	}
}

func rangeInts(from, to int) []int {
	if to < from {
		return nil
	}
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

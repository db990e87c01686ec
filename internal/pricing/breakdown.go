package pricing

// LineItem is one named, priced line of a computed breakdown.
type LineItem struct {
	Label string  `json:"label"`
	Price float64 `json:"price"`
}

// Breakdown is the output contract shared by every family rule set.
// Total is always rounded to 2 decimals and floored at 0.
type Breakdown struct {
	Base  float64    `json:"base"`
	Lines []LineItem `json:"lines,omitempty"`
	Total float64    `json:"total"`
}

func newBreakdown(base float64) Breakdown {
	return Breakdown{Base: Round2(base)}
}

func (b *Breakdown) add(label string, price float64) {
	b.Lines = append(b.Lines, LineItem{Label: label, Price: Round2(price)})
}

// finish computes Total = Base + Σ lines, floored at 0.
func (b *Breakdown) finish() {
	values := make([]float64, 0, len(b.Lines)+1)
	values = append(values, b.Base)
	for _, l := range b.Lines {
		values = append(values, l.Price)
	}
	total := Sum2(values...)
	if total < 0 {
		total = 0
	}
	b.Total = total
}

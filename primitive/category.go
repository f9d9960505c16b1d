package primitive

type CategoryEnum int

const (
	CategorySafeNumber   CategoryEnum = 1 << iota // int <-> float without precision loss, integral floats to int
	CategoryUnsafeNumber                          // fractional floats to int (truncated), out-of-precision ints to float
	CategoryTextNumber                            // int, uint, float <-> string: textual number representation

	CategoryAll  = (1 << iota) - 1 //all categories combined
	CategoryNone = 0               // no categories selected
)

// CategoryDefault is the set of conversions applied to call arguments:
// "131", 131 and 131.0 all denote the same integer, but 131.5 does not.
const CategoryDefault = CategorySafeNumber | CategoryTextNumber

// Has reports whether all categories of other are enabled in c.
func (c CategoryEnum) Has(other CategoryEnum) bool {
	return c&other == other
}

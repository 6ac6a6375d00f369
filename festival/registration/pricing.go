package registration

// Price is the per-person cost of an accommodation package, in rubles.
type Price struct {
	Adult int
	Child int
}

// prices is informational only; nothing is charged or stored.
var prices = map[string]Price{
	"home":      {Adult: 1500, Child: 750},
	"own_tent":  {Adult: 1600, Child: 850},
	"rent_tent": {Adult: 2000, Child: 1200},
	"room":      {Adult: 4000, Child: 2500},
}

// PriceFor returns the quote for an accommodation's stored value.
func PriceFor(accommodation string) (Price, bool) {
	p, ok := prices[accommodation]
	return p, ok
}

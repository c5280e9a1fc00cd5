package cardbrand

// Issuer names a card network. Names are fixed and never localized.
type Issuer string

const (
	Visa            Issuer = "VISA"
	Mastercard      Issuer = "MASTERCARD"
	DinersClub      Issuer = "DINERS CLUB"
	Discover        Issuer = "DISCOVER"
	JCB             Issuer = "JCB"
	AmericanExpress Issuer = "AMERICAN EXPRESS"
	EnRoute         Issuer = "ENROUTE"
	Hipercard       Issuer = "HIPERCARD"
	Aura            Issuer = "AURA"

	// Unknown is returned whenever a number is not numeric, fails the
	// checksum, or matches no rule.
	Unknown Issuer = "unknown"
)

// Issuers lists every known issuer in default rule order. Unknown is not
// included.
func Issuers() []Issuer {
	return []Issuer{Visa, Mastercard, DinersClub, Discover, JCB, AmericanExpress, EnRoute, Hipercard, Aura}
}

// Known reports whether i is something other than Unknown or empty.
func (i Issuer) Known() bool { return i != Unknown && i != "" }

func (i Issuer) String() string { return string(i) }

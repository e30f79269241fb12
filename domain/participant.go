package domain

// Participants is the unordered pair of identities a message belongs to.
// The pair is stored normalised (lowest id first) so that {A,B} and {B,A}
// compare equal.
type Participants struct {
	first  string
	second string
}

func NewParticipants(a, b string) Participants {
	if b < a {
		a, b = b, a
	}
	return Participants{first: a, second: b}
}

func (p Participants) Contains(id string) bool {
	return p.first == id || p.second == id
}

func (p Participants) Equal(other Participants) bool {
	return p == other
}

// IDs returns both identities, sorted.
func (p Participants) IDs() []string {
	return []string{p.first, p.second}
}

// Key is a stable string form of the pair, usable as a map key or index.
func (p Participants) Key() string {
	return p.first + "|" + p.second
}

package value

import "github.com/google/uuid"

// Symbol is a unique value with an optional description (§3.1). Each symbol
// carries a UUID, exposed through ID; SameValue and PropertyKey equality
// still compare symbols by Go pointer.
type Symbol struct {
	id          uuid.UUID
	Description string
}

func (*Symbol) Kind() Kind { return KindSymbol }

func (s *Symbol) GoString() string {
	return "Symbol(" + s.Description + ")"
}

// NewSymbol allocates a fresh, globally-unique symbol.
func NewSymbol(description string) *Symbol {
	return &Symbol{id: uuid.New(), Description: description}
}

// ID is the symbol's stable identity key.
func (s *Symbol) ID() uuid.UUID { return s.id }

// Well-known symbols (§4 iteration protocol, §4.4 instanceof) are ordinary
// Symbol values, created per realm on first lookup; see
// pkg/realm.Realm.WellKnownSymbol.
const (
	SymIterator      = "Symbol.iterator"
	SymAsyncIterator = "Symbol.asyncIterator"
	SymHasInstance   = "Symbol.hasInstance"
	SymToPrimitive   = "Symbol.toPrimitive"
)

package types

// BasicKind describes the kind of basic type.
type BasicKind int

// The numeric kinds are ordered by width: a value of a lower kind widens
// losslessly to a higher one.
const (
	Invalid BasicKind = iota

	Num
	Decimal
	Bigdecimal
	Bool
	Text
	Letter
	Empty // result of a function that gives nothing
)

// BasicInfo describes properties of a basic type.
type BasicInfo int

const (
	InfoNumeric BasicInfo = 1 << iota
	InfoBoolean
	InfoText
	InfoLetter
	InfoEmpty
)

// Basic represents a predeclared type.
type Basic struct {
	typ
	kind BasicKind
	info BasicInfo
	name string
}

func (b *Basic) Kind() BasicKind { return b.kind }
func (b *Basic) Info() BasicInfo { return b.info }
func (b *Basic) Name() string    { return b.name }

// Underlying implements Type.
func (b *Basic) Underlying() Type { return b }

// String implements Type.
func (b *Basic) String() string { return b.name }

// Typ holds the predeclared basic types, indexed by BasicKind.
// Typ[Invalid] stands for the type of an expression that failed to check.
var Typ = []*Basic{
	Invalid:    {kind: Invalid, name: "invalid type"},
	Num:        {kind: Num, info: InfoNumeric, name: "num"},
	Decimal:    {kind: Decimal, info: InfoNumeric, name: "decimal"},
	Bigdecimal: {kind: Bigdecimal, info: InfoNumeric, name: "bigdecimal"},
	Bool:       {kind: Bool, info: InfoBoolean, name: "bool"},
	Text:       {kind: Text, info: InfoText, name: "text"},
	Letter:     {kind: Letter, info: InfoLetter, name: "letter"},
	Empty:      {kind: Empty, info: InfoEmpty, name: "empty"},
}

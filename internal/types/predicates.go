package types

// Identical reports whether x and y are identical types.
func Identical(x, y Type) bool {
	if x == y {
		return true
	}
	if x == nil || y == nil {
		return false
	}

	switch x := x.(type) {
	case *Basic:
		if y, ok := y.(*Basic); ok {
			return x.kind == y.kind
		}
	case *List:
		if y, ok := y.(*List); ok {
			return Identical(x.elem, y.elem)
		}
	case *Func:
		if y, ok := y.(*Func); ok {
			return identicalFuncs(x, y)
		}
	}
	// Groups are identical only to themselves.
	return false
}

func identicalFuncs(x, y *Func) bool {
	if len(x.params) != len(y.params) {
		return false
	}
	for i := range x.params {
		if !Identical(x.params[i].Type, y.params[i].Type) {
			return false
		}
	}
	return Identical(x.result, y.result)
}

func basicInfo(t Type) BasicInfo {
	if b, ok := t.(*Basic); ok {
		return b.info
	}
	return 0
}

func IsNumeric(t Type) bool { return basicInfo(t)&InfoNumeric != 0 }
func IsBoolean(t Type) bool { return basicInfo(t)&InfoBoolean != 0 }
func IsText(t Type) bool    { return basicInfo(t)&InfoText != 0 }
func IsLetter(t Type) bool  { return basicInfo(t)&InfoLetter != 0 }
func IsEmpty(t Type) bool   { return basicInfo(t)&InfoEmpty != 0 }

// IsInvalid reports whether t is missing, the invalid type, or a list
// of it.
func IsInvalid(t Type) bool {
	switch t := t.(type) {
	case nil:
		return true
	case *Basic:
		return t.kind == Invalid
	case *List:
		return IsInvalid(t.elem)
	}
	return false
}

// IsPrimitive reports whether t is a basic type a variable can hold.
func IsPrimitive(t Type) bool {
	return basicInfo(t)&(InfoNumeric|InfoBoolean|InfoText|InfoLetter) != 0
}

// IsOrdered reports whether values of t can be compared with < <= > >=.
func IsOrdered(t Type) bool {
	return basicInfo(t)&(InfoNumeric|InfoText|InfoLetter) != 0
}

// Category groups the basic types whose values can be compared with
// each other.
type Category int

const (
	NoCategory Category = iota
	NumericCategory
	BooleanCategory
	TextCategory
	LetterCategory
)

// CategoryOf returns the comparison category of t.
func CategoryOf(t Type) Category {
	switch info := basicInfo(t); {
	case info&InfoNumeric != 0:
		return NumericCategory
	case info&InfoBoolean != 0:
		return BooleanCategory
	case info&InfoText != 0:
		return TextCategory
	case info&InfoLetter != 0:
		return LetterCategory
	}
	return NoCategory
}

// Comparable reports whether x and y can be operands of one comparison.
func Comparable(x, y Type) bool {
	c := CategoryOf(x)
	return c != NoCategory && c == CategoryOf(y)
}

// Widen returns the wider of two numeric types under the ordering
// num < decimal < bigdecimal, or nil if either is not numeric.
func Widen(x, y Type) Type {
	if !IsNumeric(x) || !IsNumeric(y) {
		return nil
	}
	if x.(*Basic).kind >= y.(*Basic).kind {
		return x
	}
	return y
}

// WidensTo reports whether a numeric value of type from converts to to
// without loss. Narrowing never happens implicitly.
func WidensTo(from, to Type) bool {
	if !IsNumeric(from) || !IsNumeric(to) {
		return false
	}
	return from.(*Basic).kind <= to.(*Basic).kind
}

// AssignableTo reports whether a value of type v can be stored in a
// location of type t. List types must match exactly.
func AssignableTo(v, t Type) bool {
	return Identical(v, t) || WidensTo(v, t)
}

package syntax

import "fmt"

// BoolPolicy selects where a condition without a comparison is rejected.
type BoolPolicy uint8

const (
	// Syntactic makes the relational tail of a condition mandatory, so
	// check(flag) fails to parse.
	Syntactic BoolPolicy = iota
	// Semantic parses any expression as a condition and leaves the type
	// checker to demand a boolean comparison.
	Semantic
)

func (p BoolPolicy) String() string {
	switch p {
	case Syntactic:
		return "syntactic"
	case Semantic:
		return "semantic"
	}
	return fmt.Sprintf("BoolPolicy(%d)", uint8(p))
}

// ParseBoolPolicy parses "syntactic" or "semantic".
func ParseBoolPolicy(s string) (BoolPolicy, error) {
	switch s {
	case "syntactic", "":
		return Syntactic, nil
	case "semantic":
		return Semantic, nil
	}
	return Syntactic, fmt.Errorf("unknown bool policy %q (want syntactic or semantic)", s)
}

func (p BoolPolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *BoolPolicy) UnmarshalText(text []byte) error {
	v, err := ParseBoolPolicy(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

package models

// ValueKind tags the variant held by a Value.
type ValueKind int

const (
	KindOpaque ValueKind = iota
	KindScalar
	KindSequence
	KindPointDetail
	KindGroup
)

func (k ValueKind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	case KindPointDetail:
		return "point_detail"
	case KindGroup:
		return "group"
	default:
		return "opaque"
	}
}

// Value is one node of a decoded analysis document. Exactly one variant is
// populated, as indicated by Kind.
type Value struct {
	Kind ValueKind

	// Scalar holds the textual form of a string or number.
	Scalar string
	// IsNumber is set when Scalar came from a JSON number.
	IsNumber bool

	Items []Value

	Point   string
	Details string

	Entries []Entry
}

// Entry is one key of a Group, kept in document order.
type Entry struct {
	Key   string
	Value Value
}

func String(s string) Value {
	return Value{Kind: KindScalar, Scalar: s}
}

func Number(n string) Value {
	return Value{Kind: KindScalar, Scalar: n, IsNumber: true}
}

func Sequence(items ...Value) Value {
	return Value{Kind: KindSequence, Items: items}
}

func PointDetail(point, details string) Value {
	return Value{Kind: KindPointDetail, Point: point, Details: details}
}

func Group(entries ...Entry) Value {
	return Value{Kind: KindGroup, Entries: entries}
}

func Opaque() Value {
	return Value{Kind: KindOpaque}
}

// Lookup returns the value stored under key in a Group.
func (v Value) Lookup(key string) (Value, bool) {
	for _, e := range v.Entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return Value{}, false
}

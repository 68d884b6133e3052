package contract

// lookupState classifies a field access on an untyped document node.
// A field may be present with the expected shape, present with the
// wrong shape, or absent entirely; the three outcomes are distinct and
// each one is meaningful to the caller.
type lookupState int

const (
	fieldOK lookupState = iota
	fieldWrongType
	fieldAbsent
)

// seqField looks up key as an ordered sequence.
func seqField(obj map[string]any, key string) ([]any, lookupState) {
	v, ok := obj[key]
	if !ok {
		return nil, fieldAbsent
	}
	seq, ok := v.([]any)
	if !ok {
		return nil, fieldWrongType
	}
	return seq, fieldOK
}

// objField looks up key as a nested object.
func objField(obj map[string]any, key string) (map[string]any, lookupState) {
	v, ok := obj[key]
	if !ok {
		return nil, fieldAbsent
	}
	nested, ok := v.(map[string]any)
	if !ok {
		return nil, fieldWrongType
	}
	return nested, fieldOK
}

// hasField reports bare presence of a key, regardless of its value.
// Gate and done_criteria checks care about presence only.
func hasField(obj map[string]any, key string) bool {
	_, ok := obj[key]
	return ok
}

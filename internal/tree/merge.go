package tree

// Merge deep-merges source over target and returns a new tree; neither input
// is modified.
//
// For every key of an object source: an object value merges recursively into
// the target's value at that key (a missing or non-object target value starts
// as an empty object); any other value replaces the target's value outright.
// Arrays are never concatenated. Null values in source are skipped, so a null
// never erases what target already holds.
func Merge(target, source *Value) *Value {
	switch source.Kind() {
	case Null:
		return target.Clone()
	case Object:
		out := target.Clone()
		if out.Kind() != Object {
			out = NewObject()
		}
		for _, k := range source.keys {
			sv := source.fields[k]
			switch sv.Kind() {
			case Null:
				continue
			case Object:
				out.put(k, Merge(out.fields[k], sv))
			default:
				out.put(k, sv.Clone())
			}
		}
		return out
	default:
		return source.Clone()
	}
}

// MergeAll folds Merge over layers left to right; later layers win.
func MergeAll(layers ...*Value) *Value {
	out := NewObject()
	for _, l := range layers {
		out = Merge(out, l)
	}
	return out
}

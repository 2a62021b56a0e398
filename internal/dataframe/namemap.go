package dataframe

import (
	"strings"
	"unicode"
)

// isValidIdentifier reports whether s can stand as a canonical name on its
// own, mirroring a language identifier: starts with a letter or underscore,
// continues with letters, digits, or underscores.
func isValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case unicode.IsLetter(r) || r == '_':
		case unicode.IsDigit(r) && i > 0:
		default:
			return false
		}
	}
	return true
}

// camelCase derives a canonical name from an arbitrary storage column label
// by splitting on runs of characters other than letters and digits
// (underscores included), lower-casing the first letter of the first word,
// and capitalizing every later word (its remaining letters lower-cased).
func camelCase(label string) string {
	fields := strings.FieldsFunc(label, func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r))
	})
	if len(fields) == 0 {
		return label
	}
	var b strings.Builder
	for i, f := range fields {
		if i == 0 {
			b.WriteString(strings.ToLower(f[:1]) + f[1:])
			continue
		}
		b.WriteString(strings.ToUpper(f[:1]) + strings.ToLower(f[1:]))
	}
	return b.String()
}

// defaultCanonicalName is what construction auto-generates for a storage
// column with no explicit mapping: the identity mapping if the label is
// already a valid identifier, else its camelCase form.
func defaultCanonicalName(column string) string {
	if isValidIdentifier(column) {
		return column
	}
	return camelCase(column)
}

// isDefaultMapping is the structural predicate for whether a mapping entry
// is "default" (auto-generated, therefore safely overridable): the
// canonical name it carries is either the storage column itself (the
// identity entry AddColumn installs) or what defaultCanonicalName would
// produce for that storage column.
func isDefaultMapping(existingName, column string) bool {
	return existingName == column || existingName == defaultCanonicalName(column)
}

// ApplyDefaultNaming renames any column still under its identity mapping
// (canonical name equal to its storage label) whose label is not a valid
// identifier to the label's camelCase form. Columns an interface-level or
// per-source mapping has already moved off the identity mapping are left
// untouched.
func (df *DataFrame) ApplyDefaultNaming() {
	df.mu.Lock()
	defer df.mu.Unlock()

	renames := make(map[string]string)
	for canonical, storage := range df.nameMap {
		if canonical == df.indexName || canonical != storage || isValidIdentifier(storage) {
			continue
		}
		if newName := camelCase(storage); newName != canonical {
			renames[canonical] = newName
		}
	}
	for canonical, newName := range renames {
		storage := df.nameMap[canonical]
		if kind, ok := df.kindOfName[canonical]; ok {
			delete(df.kindOfName, canonical)
			df.kindOfName[newName] = kind
		}
		delete(df.nameMap, canonical)
		df.nameMap[newName] = storage
		df.reverse[storage] = newName
	}
}

// HasColumn reports whether a canonical name is currently registered.
func (df *DataFrame) HasColumn(name string) bool {
	df.mu.RLock()
	defer df.mu.RUnlock()
	_, ok := df.kindOfName[name]
	return ok
}

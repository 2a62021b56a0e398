package dataframe

import (
	"math"
	"sync"

	"github.com/flowtable/compute/internal/enginelog"
	"github.com/flowtable/compute/internal/enginerr"
)

// DataFrame is the central container of the compute engine: a
// heterogeneous tabular store holding multiple column kinds, a primary row
// index, an optional secondary (within-row) index for series kinds, and a
// bidirectional canonical-name <-> storage-column map.
//
// DataFrame is not safe for concurrent mutation; the scheduler is the only
// writer and is itself single-threaded.
type DataFrame struct {
	mu sync.RWMutex

	indexName    string
	primaryIndex []string
	primarySet   map[string]bool

	focusPrimary   string
	focusSecondary string

	nameMap    map[string]string // canonical -> storage column
	reverse    map[string]string // storage column -> canonical
	kindOfName map[string]Kind   // canonical -> kind

	rowStore    map[string]map[string]any            // storageCol -> primary -> value
	seriesStore map[string]map[string]map[string]any // storageCol -> primary -> secondary -> value
	paramStore  map[string]any                       // storageCol -> value

	autocache bool
	log       *enginelog.Logger
}

// Option configures a DataFrame at construction time.
type Option func(*DataFrame)

// WithLogger attaches a logger used to record mapping-override warnings.
func WithLogger(l *enginelog.Logger) Option {
	return func(df *DataFrame) { df.log = l }
}

// WithAutocacheDisabled turns off implicit cache-column creation; writes
// to unknown names then fail instead of autocreating.
func WithAutocacheDisabled() Option {
	return func(df *DataFrame) { df.autocache = false }
}

// New constructs an empty DataFrame over the given primary index name and
// ordered key sequence. The index name is always present in the name map
// even though it belongs to no kind.
func New(indexName string, primaryKeys []string, opts ...Option) *DataFrame {
	df := &DataFrame{
		indexName:    indexName,
		primaryIndex: append([]string(nil), primaryKeys...),
		primarySet:   make(map[string]bool, len(primaryKeys)),
		nameMap:      map[string]string{indexName: indexName},
		reverse:      map[string]string{indexName: indexName},
		kindOfName:   make(map[string]Kind),
		rowStore:     make(map[string]map[string]any),
		seriesStore:  make(map[string]map[string]map[string]any),
		paramStore:   make(map[string]any),
		autocache:    true,
	}
	for _, k := range primaryKeys {
		df.primarySet[k] = true
	}
	for _, opt := range opts {
		opt(df)
	}
	return df
}

// IsMissing reports whether a cell value counts as missing for the refresh
// gate: nil, NaN, or an empty string.
func IsMissing(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case float64:
		return math.IsNaN(t)
	case float32:
		return math.IsNaN(float64(t))
	default:
		return false
	}
}

func (df *DataFrame) resolveLocked(name string) (storageCol string, kind Kind, ok bool) {
	kind, ok = df.kindOfName[name]
	if !ok {
		return "", "", false
	}
	return df.nameMap[name], kind, true
}

// AddColumn creates a new column under the given kind. It fails if the
// canonical name already exists.
//
// data must match the kind's storage shape: map[string]any for row-shaped
// kinds, map[string]map[string]any for series-shaped kinds, or a single
// scalar for parameter-shaped kinds. A nil data creates an empty column.
func (df *DataFrame) AddColumn(name string, kind Kind, data any) error {
	df.mu.Lock()
	defer df.mu.Unlock()
	return df.addColumnLocked(name, kind, data)
}

func (df *DataFrame) addColumnLocked(name string, kind Kind, data any) error {
	if !validKind(kind) {
		return &enginerr.MutationError{Name: name, Msg: "unknown column kind"}
	}
	if _, exists := df.kindOfName[name]; exists {
		return &enginerr.MutationError{Name: name, Msg: "column already exists"}
	}
	if existing, exists := df.nameMap[name]; exists && existing != name {
		return &enginerr.MutationError{Name: name, Msg: "name already mapped to a different storage column"}
	}

	meta := kindTable[kind]
	switch meta.shape {
	case shapeRow:
		col := make(map[string]any)
		if m, ok := data.(map[string]any); ok {
			for k, v := range m {
				col[k] = v
			}
		}
		df.rowStore[name] = col
	case shapeRowSecondary:
		col := make(map[string]map[string]any)
		if m, ok := data.(map[string]map[string]any); ok {
			for k, sub := range m {
				inner := make(map[string]any, len(sub))
				for sk, sv := range sub {
					inner[sk] = sv
				}
				col[k] = inner
			}
		}
		df.seriesStore[name] = col
	case shapeUngrouped:
		df.paramStore[name] = data
	}

	df.nameMap[name] = name
	df.reverse[name] = name
	df.kindOfName[name] = kind
	return nil
}

// AddColumns adds several identically-kinded, empty columns under a single
// lock acquisition. Each column gets its own storage map, so no existing
// column is copied. It stops at the first failing name; columns added
// before that one stay in place.
func (df *DataFrame) AddColumns(names []string, kind Kind) error {
	df.mu.Lock()
	defer df.mu.Unlock()
	for _, n := range names {
		if err := df.addColumnLocked(n, kind, nil); err != nil {
			return err
		}
	}
	return nil
}

// DropColumn removes a column from storage and the name map. It fails if
// the column is absent.
func (df *DataFrame) DropColumn(name string) error {
	df.mu.Lock()
	defer df.mu.Unlock()

	storageCol, kind, ok := df.resolveLocked(name)
	if !ok {
		return &enginerr.MutationError{Name: name, Msg: "column not found"}
	}
	switch kindTable[kind].shape {
	case shapeRow:
		delete(df.rowStore, storageCol)
	case shapeRowSecondary:
		delete(df.seriesStore, storageCol)
	case shapeUngrouped:
		delete(df.paramStore, storageCol)
	}
	delete(df.nameMap, name)
	delete(df.reverse, storageCol)
	delete(df.kindOfName, name)
	return nil
}

// UpdateNameColumnMap installs or replaces an entry in the name map,
// implementing a collision policy: a collision against a
// default (auto-generated) mapping is overwritten with a warning; a
// collision against a user-declared mapping fails.
func (df *DataFrame) UpdateNameColumnMap(name, column string) error {
	df.mu.Lock()
	defer df.mu.Unlock()

	if existingName, exists := df.reverse[column]; exists {
		if existingName == name {
			return nil
		}
		if !isDefaultMapping(existingName, column) {
			return &enginerr.MappingConflictError{Name: name, Column: column, ExistingName: existingName}
		}
		if df.log != nil {
			df.log.MutabilityWarning("overriding default name mapping",
			)
		}
		if kind, hasKind := df.kindOfName[existingName]; hasKind {
			delete(df.kindOfName, existingName)
			df.kindOfName[name] = kind
		}
		delete(df.nameMap, existingName)
	}
	df.nameMap[name] = column
	df.reverse[column] = name
	return nil
}

// IsMutable reports whether name's kind permits writes.
func (df *DataFrame) IsMutable(name string) (bool, error) {
	df.mu.RLock()
	defer df.mu.RUnlock()
	kind, ok := df.kindOfName[name]
	if !ok {
		return false, &enginerr.ResolutionError{Msg: "unknown column: " + name}
	}
	return kind.mutable(), nil
}

// SetFocus moves the cursor to the given primary key and, for series
// access, an optional secondary key.
func (df *DataFrame) SetFocus(primary string, secondary ...string) error {
	df.mu.Lock()
	defer df.mu.Unlock()
	if len(df.primarySet) > 0 && !df.primarySet[primary] {
		return &enginerr.ResolutionError{Msg: "primary key not in index: " + primary}
	}
	df.focusPrimary = primary
	if len(secondary) > 0 {
		df.focusSecondary = secondary[0]
	} else {
		df.focusSecondary = ""
	}
	return nil
}

// ClearFocus unsets the cursor, used by precompute/postcompute phases
// which run with no focused row.
func (df *DataFrame) ClearFocus() {
	df.mu.Lock()
	defer df.mu.Unlock()
	df.focusPrimary = ""
	df.focusSecondary = ""
}

// FocusedPrimary returns the currently focused primary key, or "" if none.
func (df *DataFrame) FocusedPrimary() string {
	df.mu.RLock()
	defer df.mu.RUnlock()
	return df.focusPrimary
}

// IndexName returns the canonical name of the primary index.
func (df *DataFrame) IndexName() string {
	df.mu.RLock()
	defer df.mu.RUnlock()
	return df.indexName
}

// PrimaryIndex returns a copy of the ordered primary key sequence.
func (df *DataFrame) PrimaryIndex() []string {
	df.mu.RLock()
	defer df.mu.RUnlock()
	return append([]string(nil), df.primaryIndex...)
}

// ReorderPrimaryIndex replaces the primary index ordering, used by the
// ascending/descending whole-dataset compute functions. order
// must be a permutation of the existing primary index.
func (df *DataFrame) ReorderPrimaryIndex(order []string) error {
	df.mu.Lock()
	defer df.mu.Unlock()
	if len(order) != len(df.primaryIndex) {
		return &enginerr.ShapeError{Expected: len(df.primaryIndex), Got: len(order)}
	}
	for _, k := range order {
		if !df.primarySet[k] {
			return &enginerr.ResolutionError{Msg: "reorder references unknown primary key: " + k}
		}
	}
	df.primaryIndex = append([]string(nil), order...)
	return nil
}

// GetValue returns the scalar at the focused cell for canonical name.
func (df *DataFrame) GetValue(name string) (any, error) {
	df.mu.RLock()
	defer df.mu.RUnlock()

	storageCol, kind, ok := df.resolveLocked(name)
	if !ok {
		return nil, &enginerr.ResolutionError{Msg: "unknown column: " + name}
	}
	switch kindTable[kind].shape {
	case shapeRow:
		return df.rowStore[storageCol][df.focusPrimary], nil
	case shapeRowSecondary:
		sub := df.seriesStore[storageCol][df.focusPrimary]
		if sub == nil {
			return nil, nil
		}
		return sub[df.focusSecondary], nil
	default: // shapeUngrouped
		return df.paramStore[storageCol], nil
	}
}

// SetValue writes a scalar to the focused cell for canonical name,
// autocreating it as a cache column if absent, unless
// autocache has been disabled.
func (df *DataFrame) SetValue(name string, value any) error {
	df.mu.Lock()
	defer df.mu.Unlock()

	storageCol, kind, ok := df.resolveLocked(name)
	if !ok {
		if !df.autocache {
			return &enginerr.MutationError{Name: name, Msg: "unknown column and autocache disabled"}
		}
		if err := df.addColumnLocked(name, KindCache, nil); err != nil {
			return err
		}
		storageCol, kind = name, KindCache
	}
	if !kind.mutable() {
		return &enginerr.MutationError{Name: name, Msg: "column is immutable"}
	}
	switch kindTable[kind].shape {
	case shapeRow:
		df.rowStore[storageCol][df.focusPrimary] = value
	case shapeRowSecondary:
		sub, ok := df.seriesStore[storageCol][df.focusPrimary]
		if !ok {
			sub = make(map[string]any)
			df.seriesStore[storageCol][df.focusPrimary] = sub
		}
		sub[df.focusSecondary] = value
	default: // shapeUngrouped
		df.paramStore[storageCol] = value
	}
	return nil
}

// GetColumn returns the full column for canonical name: a
// map[string]any keyed by primary index for row-shaped kinds, a
// map[string]map[string]any keyed by (primary, secondary) for series
// kinds, or the bare scalar for parameter kinds.
func (df *DataFrame) GetColumn(name string) (any, error) {
	df.mu.RLock()
	defer df.mu.RUnlock()

	storageCol, kind, ok := df.resolveLocked(name)
	if !ok {
		return nil, &enginerr.ResolutionError{Msg: "unknown column: " + name}
	}
	switch kindTable[kind].shape {
	case shapeRow:
		out := make(map[string]any, len(df.rowStore[storageCol]))
		for k, v := range df.rowStore[storageCol] {
			out[k] = v
		}
		return out, nil
	case shapeRowSecondary:
		out := make(map[string]map[string]any, len(df.seriesStore[storageCol]))
		for k, sub := range df.seriesStore[storageCol] {
			inner := make(map[string]any, len(sub))
			for sk, sv := range sub {
				inner[sk] = sv
			}
			out[k] = inner
		}
		return out, nil
	default:
		return df.paramStore[storageCol], nil
	}
}

// GetSubseries returns the rows of a series column sharing the focused
// primary key, keyed by secondary index.
func (df *DataFrame) GetSubseries(name string) (map[string]any, error) {
	df.mu.RLock()
	defer df.mu.RUnlock()

	storageCol, kind, ok := df.resolveLocked(name)
	if !ok {
		return nil, &enginerr.ResolutionError{Msg: "unknown column: " + name}
	}
	if !kind.isSeries() {
		return nil, &enginerr.ResolutionError{Msg: "not a series column: " + name}
	}
	out := make(map[string]any)
	for sk, sv := range df.seriesStore[storageCol][df.focusPrimary] {
		out[sk] = sv
	}
	return out, nil
}

// GetComputeIndex is the validation gate for reactive execution (spec
// §4.1.1): it returns the focused primary key iff a row is focused, that
// key belongs to indexSet, and hasCompute (at least one compute step is
// attached to this key) is true.
func (df *DataFrame) GetComputeIndex(indexSet map[string]bool, hasCompute bool) (string, bool) {
	df.mu.RLock()
	defer df.mu.RUnlock()
	if df.focusPrimary == "" {
		return "", false
	}
	if indexSet != nil && !indexSet[df.focusPrimary] {
		return "", false
	}
	if !hasCompute {
		return "", false
	}
	return df.focusPrimary, true
}

// Shape returns (rows, cols): the primary index length and the number of
// distinct canonical columns across all kinds.
func (df *DataFrame) Shape() (int, int) {
	df.mu.RLock()
	defer df.mu.RUnlock()
	return len(df.primaryIndex), len(df.kindOfName)
}

// RowContext returns every canonical name's value at the current focus,
// for use as a Liquid template context (view_args rendering).
func (df *DataFrame) RowContext() map[string]any {
	df.mu.RLock()
	defer df.mu.RUnlock()
	out := make(map[string]any, len(df.kindOfName))
	for name, kind := range df.kindOfName {
		storageCol := df.nameMap[name]
		switch kindTable[kind].shape {
		case shapeRow:
			out[name] = df.rowStore[storageCol][df.focusPrimary]
		case shapeRowSecondary:
			if sub, ok := df.seriesStore[storageCol][df.focusPrimary]; ok {
				out[name] = sub[df.focusSecondary]
			}
		case shapeUngrouped:
			out[name] = df.paramStore[storageCol]
		}
	}
	return out
}

// Columns returns the canonical names grouped by kind tag.
func (df *DataFrame) Columns() map[string][]string {
	df.mu.RLock()
	defer df.mu.RUnlock()
	out := make(map[string][]string)
	for name, kind := range df.kindOfName {
		out[string(kind)] = append(out[string(kind)], name)
	}
	return out
}

// Package dataframe implements the heterogeneous tabular container at the
// heart of the compute engine: multiple column kinds, a primary/secondary
// row index, and a bidirectional canonical-name <-> storage-column map.
package dataframe

// Kind classifies a column by mutability, persistence, and indexing shape.
type Kind string

const (
	KindInput          Kind = "input"
	KindData           Kind = "data"
	KindConstants      Kind = "constants"
	KindGlobalConsts   Kind = "global_consts"
	KindCache          Kind = "cache"
	KindSeriesCache    Kind = "series_cache"
	KindParameterCache Kind = "parameter_cache"
	KindGlobalCache    Kind = "global_cache"
	KindOutput         Kind = "output"
	KindWriteData      Kind = "writedata"
	KindWriteSeries    Kind = "writeseries"
	KindParameters     Kind = "parameters"
	KindGlobals        Kind = "globals"
	KindSeries         Kind = "series"
)

// shape describes how a kind's storage is keyed.
type shape int

const (
	shapeRow          shape = iota // keyed by primary index
	shapeRowSecondary              // keyed by (primary, secondary) index
	shapeUngrouped                 // a single value per DataFrame
)

type kindMeta struct {
	mutable   bool
	persisted bool
	shape     shape
}

// kindTable is the single source of truth for mutability, persistence, and
// indexing shape across every column kind.
var kindTable = map[Kind]kindMeta{
	KindInput:          {mutable: false, persisted: false, shape: shapeRow},
	KindData:           {mutable: false, persisted: false, shape: shapeRow},
	KindConstants:      {mutable: false, persisted: false, shape: shapeUngrouped},
	KindGlobalConsts:   {mutable: false, persisted: false, shape: shapeUngrouped},
	KindSeries:         {mutable: false, persisted: false, shape: shapeRowSecondary},
	KindCache:          {mutable: true, persisted: false, shape: shapeRow},
	KindSeriesCache:    {mutable: true, persisted: false, shape: shapeRowSecondary},
	KindParameterCache: {mutable: true, persisted: false, shape: shapeUngrouped},
	KindGlobalCache:    {mutable: true, persisted: false, shape: shapeUngrouped},
	KindOutput:         {mutable: true, persisted: true, shape: shapeRow},
	KindWriteData:      {mutable: true, persisted: true, shape: shapeRow},
	KindWriteSeries:    {mutable: true, persisted: true, shape: shapeRowSecondary},
	KindParameters:     {mutable: true, persisted: true, shape: shapeUngrouped},
	KindGlobals:        {mutable: true, persisted: true, shape: shapeUngrouped},
}

// AllKinds lists the exact kind tag set, in a stable order, for
// introspection.
func AllKinds() []Kind {
	return []Kind{
		KindInput, KindData, KindConstants, KindGlobalConsts, KindSeries,
		KindCache, KindSeriesCache, KindParameterCache, KindGlobalCache,
		KindOutput, KindWriteData, KindWriteSeries, KindParameters, KindGlobals,
	}
}

func validKind(k Kind) bool {
	_, ok := kindTable[k]
	return ok
}

func (k Kind) mutable() bool {
	return kindTable[k].mutable
}

func (k Kind) isSeries() bool {
	return kindTable[k].shape == shapeRowSecondary
}

func (k Kind) isParameter() bool {
	return kindTable[k].shape == shapeUngrouped
}

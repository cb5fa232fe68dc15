package constants

type (
	APIStatus   string
	CachePrefix string
)

const (
	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixDateTimePattern CachePrefix = "DTP_"
	CachePrefixSuggestions     CachePrefix = "TPL_SUGGEST_"
	CachePrefixDataset         CachePrefix = "DATASET_"
)

// SampleRowLimit caps how many rows of an uploaded dataset are retained for
// preview and heuristics, keeping per-call cost independent of dataset size.
const SampleRowLimit = 5

// AutoSaveTag marks templates created automatically after a successful
// auto-map run; the cleanup job only ever touches these.
const AutoSaveTag = "auto"

package log

// Canonical field name constants for structured logging.
const (
	FieldComponent = "component"
	FieldDataset   = "dataset"
	FieldYear      = "year"
	FieldCRS       = "crs"
	FieldURL       = "url"
	FieldPath      = "path"
	FieldArchive   = "archive"
	FieldDigest    = "blake2b"
	FieldBytes     = "bytes"
	FieldRows      = "rows"
	FieldDuration  = "duration"
)

package domain

type RecordKind string

const (
	RecordFocus RecordKind = "focus"
	RecordBreak RecordKind = "break"
)

// Valid reports whether k is one of the known record kinds.
func (k RecordKind) Valid() bool {
	switch k {
	case RecordFocus, RecordBreak:
		return true
	default:
		return false
	}
}

// SourceMode selects where day sessions are fetched from.
type SourceMode string

const (
	SourceLocal  SourceMode = "local"
	SourceRemote SourceMode = "remote"
)

// ValidSourceModes is the canonical set of accepted source mode strings.
var ValidSourceModes = map[string]bool{
	"local": true, "remote": true,
}

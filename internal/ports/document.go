package ports

import "metarules/internal/types"

// DocumentSourcePort loads a structured intermediate metadata document
// from a location. The CLI uses a file-backed implementation; the
// engine itself never performs I/O.
type DocumentSourcePort interface {
	LoadDocument(path string) (types.RawDocument, error)
}

package adapters

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/require"

	"metarules/tests/testutil"
)

func TestLoadDocument(t *testing.T) {
	path := testutil.WriteYAML(t, "doc.yaml", `
identity:
  group: org.example
  name: lib
  version: 1.0.0
flat:
  dependencies:
    - group: org.example
      name: base
      version: "2.0"
`)
	source := NewDocumentFileAdapter()
	doc, err := source.LoadDocument(path)
	require.NoError(t, err)
	require.Equal(t, "org.example", doc.Identity.Group)
	require.Len(t, doc.Flat.Dependencies, 1)
}

func TestLoadDocumentMissingFile(t *testing.T) {
	source := NewDocumentFileAdapter()
	_, err := source.LoadDocument("does/not/exist.yaml")
	require.Error(t, err)
	require.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}

func TestLoadDocumentMalformedYAML(t *testing.T) {
	path := testutil.WriteYAML(t, "doc.yaml", "identity: [unclosed")
	source := NewDocumentFileAdapter()
	_, err := source.LoadDocument(path)
	require.Error(t, err)
	require.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestLoadCandidates(t *testing.T) {
	path := testutil.WriteYAML(t, "candidates.yaml", `
scheme: [integration, milestone, release]
candidates:
  - version: "1.0"
    status: integration
  - version: "1.2"
    status: release
`)
	source := NewDocumentFileAdapter()
	file, err := source.LoadCandidates(path)
	require.NoError(t, err)
	require.Equal(t, []string{"integration", "milestone", "release"}, file.Scheme)
	require.Len(t, file.Candidates, 2)
	require.Equal(t, "release", file.Candidates[1].Status)
}

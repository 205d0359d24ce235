package adapters

import (
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"metarules/internal/core"
	"metarules/internal/types"
)

// DocumentFileAdapter loads structured intermediate documents from
// yaml files for the CLI. The engine itself never reads files.
type DocumentFileAdapter struct{}

func NewDocumentFileAdapter() DocumentFileAdapter {
	return DocumentFileAdapter{}
}

func (a DocumentFileAdapter) LoadDocument(path string) (types.RawDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.RawDocument{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("document file not found").
			WithCause(err)
	}
	var doc types.RawDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return types.RawDocument{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse document yaml").
			WithCause(err)
	}
	return doc, nil
}

// CandidateFile is the yaml shape of a latest-selection input: a
// status scheme plus the candidate list in declaration order.
type CandidateFile struct {
	Scheme     []string         `yaml:"scheme,omitempty"`
	Candidates []core.Candidate `yaml:"candidates"`
}

// LoadCandidates reads a candidate file for the latest command.
func (a DocumentFileAdapter) LoadCandidates(path string) (CandidateFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return CandidateFile{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("candidate file not found").
			WithCause(err)
	}
	var file CandidateFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return CandidateFile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse candidate yaml").
			WithCause(err)
	}
	return file, nil
}

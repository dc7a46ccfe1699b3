package summarizer

import "fmt"

// Stage names a pipeline stage.
type Stage string

const (
	StageMap    Stage = "map"
	StageReduce Stage = "reduce"
)

// SummarizationError aborts one transcript. ChunkIndex is -1 for the reduce stage.
type SummarizationError struct {
	Stage      Stage
	ChunkIndex int
	Err        error
}

func (e *SummarizationError) Error() string {
	if e.Stage == StageMap {
		return fmt.Sprintf("summarize %s stage, chunk %d: %v", e.Stage, e.ChunkIndex, e.Err)
	}
	return fmt.Sprintf("summarize %s stage: %v", e.Stage, e.Err)
}

func (e *SummarizationError) Unwrap() error {
	return e.Err
}

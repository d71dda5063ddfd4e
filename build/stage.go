package build

// PipelineStage is one of the fixed steps of the compilation pipeline.
type PipelineStage int

// Enumeration of pipeline stages in the order they run.
const (
	StageTranslate PipelineStage = iota
	StageOptimize
	StageAssemble
	StageLink
)

// stageNames are the stage names used in invocations and error messages.
var stageNames = [...]string{
	StageTranslate: "translate",
	StageOptimize:  "optimize",
	StageAssemble:  "assemble",
	StageLink:      "link",
}

// phaseNames are the names displayed while a stage is running.
var phaseNames = [...]string{
	StageTranslate: "Translating",
	StageOptimize:  "Optimizing",
	StageAssemble:  "Assembling",
	StageLink:      "Linking",
}

func (ps PipelineStage) String() string {
	return stageNames[ps]
}

// Phase returns the progress name of the stage.
func (ps PipelineStage) Phase() string {
	return phaseNames[ps]
}

// gatesCorrectness indicates whether a nonzero exit of the stage's tool must
// always abort the pipeline.  The translator and linker produce the files the
// user asked for; the optimizer and code generator may be run leniently.
func (ps PipelineStage) gatesCorrectness() bool {
	return ps == StageTranslate || ps == StageLink
}

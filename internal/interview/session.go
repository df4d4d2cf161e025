// Package interview defines the interview session data model and the
// in-memory session store.
package interview

import (
	"time"
)

// StageState is the state of a single pipeline stage slot.
// A slot only ever moves Empty -> Processing -> Done.
type StageState int

const (
	StageEmpty StageState = iota
	StageProcessing
	StageDone
)

// String returns the JSON / log representation of the state.
func (s StageState) String() string {
	switch s {
	case StageProcessing:
		return "processing"
	case StageDone:
		return "done"
	default:
		return "empty"
	}
}

// MarshalJSON encodes the state as its string form.
func (s StageState) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// Rating is the overall assessment of a single answer.
type Rating string

const (
	RatingStrong           Rating = "Strong"
	RatingModerate         Rating = "Moderate"
	RatingNeedsDevelopment Rating = "Needs Development"
	RatingUnassessable     Rating = "Unable to Assess"
)

// TextSlot holds a text-valued pipeline stage result.
type TextSlot struct {
	State StageState `json:"state"`
	Value string     `json:"value,omitempty"`
}

// EvaluationSlot holds the evaluation stage result.
type EvaluationSlot struct {
	State  StageState        `json:"state"`
	Record *EvaluationRecord `json:"record,omitempty"`
}

// EvaluationRecord is the structured per-answer skill evaluation.
type EvaluationRecord struct {
	Skills        []string `json:"skills_demonstrated"`
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Rating        Rating   `json:"overall_assessment"`
	Justification string   `json:"justification"`
}

// OverallEvaluation is the aggregate computed across all completed answers.
type OverallEvaluation struct {
	Assessment          string   `json:"overall_assessment"`
	KeyInsights         []string `json:"key_insights"`
	Recommendations     []string `json:"recommendations"`
	Strengths           []string `json:"strengths"`
	AreasForImprovement []string `json:"areas_for_improvement"`
	FinalRecommendation string   `json:"final_recommendation"`
}

// QuestionJob is the per-question unit of work: the question itself, the
// submitted artifact reference, and the three pipeline stage slots.
type QuestionJob struct {
	Question      string         `json:"question"`
	ArtifactRef   string         `json:"artifact_ref,omitempty"`
	Transcription TextSlot       `json:"transcription"`
	Summary       TextSlot       `json:"summary"`
	Evaluation    EvaluationSlot `json:"evaluation"`

	// gen identifies the chain currently allowed to write into the slots.
	// It increments on every accepted submission, so a stale chain from a
	// previous submission can never write into a newer one.
	gen uint64
	// inFlight is true while a chain for this job has not reached its
	// terminal evaluation commit.
	inFlight bool
}

// Session is one candidate's interview instance. The question list length is
// fixed at creation; the job index is a stable identifier for its lifetime.
type Session struct {
	ID              string             `json:"id"`
	RoleTitle       string             `json:"role_title"`
	RoleDescription string             `json:"role_description"`
	Greeting        string             `json:"greeting"`
	Questions       []QuestionJob      `json:"questions"`
	Overall         *OverallEvaluation `json:"overall_evaluation,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
}

// Report is a point-in-time snapshot of a session plus derived completion
// fields. It may legitimately observe some slots Done and others Processing.
type Report struct {
	Session
	Complete           bool `json:"complete"`
	TotalQuestions     int  `json:"total_questions"`
	CompletedQuestions int  `json:"completed_questions"`
}

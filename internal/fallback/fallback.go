// Package fallback generates deterministic interview content when the AI
// collaborator is unavailable or a pipeline stage fails.
//
// Determinism contract: evaluation output is keyed strictly on the
// transcription text and overall-summary output on the session id. The key
// is hashed with FNV-1a (a stable, specified hash, unlike a general-purpose
// runtime hash) and seeds a pseudo-random generator, so identical input
// always yields identical output while distinct inputs vary freely within
// the arity bounds.
package fallback

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/TanmaySingh007/AI-Interview-BOT/internal/interview"
)

// Generator produces deterministic substitutes for collaborator outputs.
type Generator struct {
	company string
}

// New creates a Generator. The company name appears in the canned greeting.
func New(company string) *Generator {
	return &Generator{company: company}
}

// seed hashes s with FNV-1a 64 for use as a PRNG seed.
func seed(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}

// sample picks n distinct items from pool in random order.
func sample(rng *rand.Rand, pool []string, n int) []string {
	if n > len(pool) {
		n = len(pool)
	}
	out := make([]string, 0, n)
	for _, i := range rng.Perm(len(pool))[:n] {
		out = append(out, pool[i])
	}
	return out
}

// Greeting returns the canned greeting template for a role.
func (g *Generator) Greeting(roleTitle string) string {
	return fmt.Sprintf("Hello! Welcome to your interview for the %s position at %s. "+
		"I'm excited to learn more about your experience and skills. "+
		"Let's begin with some questions to better understand your background and capabilities.",
		roleTitle, g.company)
}

// QuestionSet samples 5-7 questions, without replacement, from the pool for
// the given role (the generic pool for unrecognized roles), in shuffled
// order. Question selection is intentionally varied between calls rather
// than content-keyed.
func (g *Generator) QuestionSet(role string) []string {
	pool, ok := questionPools[role]
	if !ok {
		pool = genericQuestions
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return sample(rng, pool, 5+rng.Intn(3))
}

// Evaluation generates a deterministic evaluation for an answer: base
// template chosen by question index, list fields and rating resampled from
// a generator seeded by the transcription content.
func (g *Generator) Evaluation(questionIndex int, transcription string) interview.EvaluationRecord {
	tmpl := evaluationTemplates[questionIndex%len(evaluationTemplates)]
	rng := rand.New(rand.NewSource(seed(transcription)))

	return interview.EvaluationRecord{
		Skills:        sample(rng, allSkills, 2+rng.Intn(3)),
		Strengths:     sample(rng, allStrengths, 2+rng.Intn(2)),
		Weaknesses:    sample(rng, allWeaknesses, 1+rng.Intn(2)),
		Rating:        ratingSlots[rng.Intn(len(ratingSlots))],
		Justification: tmpl,
	}
}

// UnableToAssess returns one of the two canned error-tier records, selected
// by question index. Used when the transcription stage itself failed.
func (g *Generator) UnableToAssess(questionIndex int) interview.EvaluationRecord {
	return errorTierEvaluations[questionIndex%len(errorTierEvaluations)]
}

// OverallSummary generates a deterministic aggregate evaluation keyed on the
// session id: template by hash mod 3, insights and recommendations resampled
// from a generator seeded by the same hash.
func (g *Generator) OverallSummary(sessionID string) interview.OverallEvaluation {
	h := seed(sessionID)
	idx := int(uint64(h) % uint64(len(overallTemplates)))
	tmpl := overallTemplates[idx]
	rng := rand.New(rand.NewSource(h))

	return interview.OverallEvaluation{
		Assessment:          tmpl.assessment,
		KeyInsights:         sample(rng, allInsights, 3),
		Recommendations:     sample(rng, allRecommendations, 3),
		Strengths:           append([]string(nil), tmpl.strengths...),
		AreasForImprovement: append([]string(nil), tmpl.areasForImprovement...),
		FinalRecommendation: tmpl.finalRecommendation,
	}
}

// TranscriptionText is the placeholder transcription used when no
// collaborator is configured.
func (g *Generator) TranscriptionText(questionIndex int) string {
	return fmt.Sprintf("[DEMO] Video transcription for question %d", questionIndex+1)
}

// TranscriptionErrorText is the sentinel written to the transcription slot
// when the transcribe stage fails; the summary and evaluation stages proceed
// using it as input.
func (g *Generator) TranscriptionErrorText(questionIndex int) string {
	return fmt.Sprintf("[TRANSCRIPTION_ERROR] Unable to transcribe the answer to question %d.", questionIndex+1)
}

// SummaryText is the canned summary used when the summarize stage is
// unavailable or fails.
func (g *Generator) SummaryText(questionText string) string {
	return fmt.Sprintf("Summary: The candidate provided a response to the question about %s...", truncate(questionText, 50))
}

// ModerateFit is the single default record substituted when an evaluate
// response cannot be parsed. This is a higher-information tier than
// UnableToAssess: the answer was heard, only the structured response was
// malformed.
func (g *Generator) ModerateFit() interview.EvaluationRecord {
	return interview.EvaluationRecord{
		Skills:        []string{"Communication", "Problem Solving"},
		Strengths:     []string{"Clear articulation", "Relevant experience"},
		Weaknesses:    []string{"Could provide more specific examples"},
		Rating:        interview.RatingModerate,
		Justification: "The candidate provided a reasonable response but could benefit from more detailed examples.",
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}

// Package collaborator implements the generative-AI boundary of the
// interview engine: greeting and question generation, answer transcription,
// summarization, per-answer evaluation, and aggregate evaluation.
//
// Every structured response is parsed defensively; a malformed response
// surfaces as ErrParse so the orchestrator can substitute a schema-valid
// default instead of failing the pipeline.
package collaborator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/TanmaySingh007/AI-Interview-BOT/internal/interview"
	"github.com/TanmaySingh007/AI-Interview-BOT/internal/llm"
)

// Stage failure kinds. Call sites distinguish a transport failure (retryable
// upstream trouble) from a parse failure (the call worked, the payload was
// malformed) because the two get different fallback tiers.
var (
	ErrTranscription = errors.New("transcription failed")
	ErrSummary       = errors.New("summary generation failed")
	ErrEvaluation    = errors.New("evaluation failed")
	ErrParse         = errors.New("malformed structured response")
)

// Collaborator talks to the generative-AI provider through an llm.Client.
type Collaborator struct {
	llm     llm.Client
	company string
	log     *logrus.Entry
}

// New creates a Collaborator backed by the given provider client.
func New(client llm.Client, company string) *Collaborator {
	return &Collaborator{
		llm:     client,
		company: company,
		log:     logrus.WithField("component", "collaborator"),
	}
}

// Greeting generates a role-specific interview greeting.
func (c *Collaborator) Greeting(ctx context.Context, roleTitle string) (string, error) {
	user := fmt.Sprintf(`You are an AI Interview Bot designed to greet candidates for a first-round interview. Your tone should be professional, welcoming, and encouraging. Based on the following role details, generate a concise, 2-3 sentence introduction for the candidate.

Role Title: %s
Company: %s

Generate a warm, professional greeting that:
1. Welcomes the candidate
2. Mentions the role they're interviewing for
3. Sets a positive, encouraging tone
4. Explains what to expect in the interview process

Keep it concise and friendly.`, roleTitle, c.company)

	greeting, err := c.llm.Complete(ctx, "You are a professional AI interview assistant.", user)
	if err != nil {
		return "", fmt.Errorf("generating greeting: %w", err)
	}
	return strings.TrimSpace(greeting), nil
}

// Questions generates role-specific interview questions, one per line. The
// caller normalizes the count; this returns whatever the provider produced.
func (c *Collaborator) Questions(ctx context.Context, roleTitle, roleDescription string) ([]string, error) {
	user := fmt.Sprintf(`You are an expert interviewer specializing in %s roles. Based on the provided job description, generate 5 to 7 unique interview questions. Ensure a mix of:

1. Technical questions assessing core skills
2. Behavioral questions exploring past experiences (e.g., STAR method)
3. Situational questions testing problem-solving
4. Questions probing cultural fit

Job Description: %s

Generate questions that are:
- Specific to the role and industry
- Varied in difficulty and type
- Designed to assess both technical and soft skills
- Professional and appropriate for a first-round interview

Return only the questions, one per line, without numbering or additional text.`, roleTitle, roleDescription)

	response, err := c.llm.Complete(ctx, "You are an expert HR interviewer. Always generate unique, creative questions.", user)
	if err != nil {
		return nil, fmt.Errorf("generating questions: %w", err)
	}

	var questions []string
	for _, line := range strings.Split(response, "\n") {
		if q := strings.TrimSpace(line); q != "" {
			questions = append(questions, q)
		}
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("generating questions: %w", ErrParse)
	}
	return questions, nil
}

// Transcribe converts the submitted answer media to text.
func (c *Collaborator) Transcribe(ctx context.Context, artifactRef string) (string, error) {
	text, err := c.llm.Transcribe(ctx, artifactRef)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTranscription, err)
	}
	return text, nil
}

// Summarize produces a 1-2 sentence summary of an answer.
func (c *Collaborator) Summarize(ctx context.Context, questionText, transcription string) (string, error) {
	user := fmt.Sprintf(`Summarize this interview answer in 1-2 sentences. Focus on key points only.

Question: %s
Answer: %s

Summary:`, questionText, truncateRunes(transcription, 1000))

	summary, err := c.llm.Complete(ctx, "You are a concise HR analyst. Keep summaries brief and focused.", user)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSummary, err)
	}
	return strings.TrimSpace(summary), nil
}

// evaluationResponse is the raw JSON shape the provider is asked for.
type evaluationResponse struct {
	Skills        []string `json:"skills_demonstrated"`
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Assessment    string   `json:"overall_assessment"`
	Justification string   `json:"justification"`
}

// Evaluate produces a structured skill evaluation of a single answer.
// Transport failures wrap ErrEvaluation; a malformed response wraps ErrParse.
func (c *Collaborator) Evaluate(ctx context.Context, roleDescription, questionText, transcription string) (interview.EvaluationRecord, error) {
	user := fmt.Sprintf(`Evaluate this interview answer. Return JSON with: skills_demonstrated (2-4 skills), strengths (2-3 points), weaknesses (1-2 points), overall_assessment (Strong/Moderate/Needs Development), justification (brief reason).

Question: %s
Answer: %s
Role: %s`, questionText, truncateRunes(transcription, 800), truncateRunes(roleDescription, 200))

	response, err := c.llm.Complete(ctx, "You are a fast HR evaluator. Return only valid JSON.", user)
	if err != nil {
		return interview.EvaluationRecord{}, fmt.Errorf("%w: %v", ErrEvaluation, err)
	}

	var raw evaluationResponse
	if err := unmarshalJSONObject(response, &raw); err != nil {
		c.log.WithError(err).Debug("evaluation response did not parse")
		return interview.EvaluationRecord{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if len(raw.Skills) == 0 || len(raw.Strengths) == 0 {
		return interview.EvaluationRecord{}, fmt.Errorf("%w: missing required fields", ErrParse)
	}

	return interview.EvaluationRecord{
		Skills:        raw.Skills,
		Strengths:     raw.Strengths,
		Weaknesses:    raw.Weaknesses,
		Rating:        normalizeRating(raw.Assessment),
		Justification: raw.Justification,
	}, nil
}

// overallResponse is the raw JSON shape of the aggregate evaluation.
type overallResponse struct {
	Assessment          string   `json:"overall_assessment"`
	KeyInsights         []string `json:"key_insights"`
	Recommendations     []string `json:"recommendations"`
	Strengths           []string `json:"strengths"`
	AreasForImprovement []string `json:"areas_for_improvement"`
	FinalRecommendation string   `json:"final_recommendation"`
}

// AggregateEvaluate combines all finalized transcriptions and evaluations
// into a single overall assessment.
func (c *Collaborator) AggregateEvaluate(ctx context.Context, roleTitle, roleDescription string, transcriptions []string, evaluations []interview.EvaluationRecord) (interview.OverallEvaluation, error) {
	var combined strings.Builder
	for i, t := range transcriptions {
		fmt.Fprintf(&combined, "Q%d: %s\n", i+1, t)
	}

	var skills, strengths, weaknesses []string
	for _, e := range evaluations {
		skills = union(skills, e.Skills)
		strengths = union(strengths, e.Strengths)
		weaknesses = union(weaknesses, e.Weaknesses)
	}

	user := fmt.Sprintf(`Overall candidate assessment. Return JSON with: overall_assessment (Strong/Moderate/Needs Development), key_insights (3 points), recommendations (3 points), strengths (3 points), areas_for_improvement (3 points), final_recommendation (Proceed/Reject/Further evaluation).

Role: %s
Role Description: %s
Responses: %s
Skills: %s
Strengths: %s
Weaknesses: %s`,
		roleTitle, truncateRunes(roleDescription, 300), truncateRunes(combined.String(), 2000),
		strings.Join(skills, ", "), strings.Join(strengths, ", "), strings.Join(weaknesses, ", "))

	response, err := c.llm.Complete(ctx, "You are a fast HR analyst. Return only valid JSON.", user)
	if err != nil {
		return interview.OverallEvaluation{}, fmt.Errorf("%w: %v", ErrEvaluation, err)
	}

	var raw overallResponse
	if err := unmarshalJSONObject(response, &raw); err != nil {
		c.log.WithError(err).Debug("aggregate response did not parse")
		return interview.OverallEvaluation{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if len(raw.KeyInsights) != 3 || len(raw.Recommendations) != 3 ||
		len(raw.Strengths) != 3 || len(raw.AreasForImprovement) != 3 {
		return interview.OverallEvaluation{}, fmt.Errorf("%w: wrong list arity", ErrParse)
	}

	return interview.OverallEvaluation{
		Assessment:          raw.Assessment,
		KeyInsights:         raw.KeyInsights,
		Recommendations:     raw.Recommendations,
		Strengths:           raw.Strengths,
		AreasForImprovement: raw.AreasForImprovement,
		FinalRecommendation: raw.FinalRecommendation,
	}, nil
}

// normalizeRating maps a free-form assessment string onto the rating enum.
func normalizeRating(s string) interview.Rating {
	switch lower := strings.ToLower(s); {
	case strings.Contains(lower, "unable"), strings.Contains(lower, "unassess"):
		return interview.RatingUnassessable
	case strings.Contains(lower, "strong"):
		return interview.RatingStrong
	case strings.Contains(lower, "needs"), strings.Contains(lower, "development"):
		return interview.RatingNeedsDevelopment
	default:
		return interview.RatingModerate
	}
}

// union appends the items of add not already present in base.
func union(base, add []string) []string {
	for _, item := range add {
		found := false
		for _, existing := range base {
			if existing == item {
				found = true
				break
			}
		}
		if !found {
			base = append(base, item)
		}
	}
	return base
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// Package orchestrator drives the interview pipeline.
//
// Each submitted answer runs through a three-stage chain
// (transcribe -> summarize -> evaluate) on a bounded background worker.
// Every stage failure is caught locally and replaced with a deterministic,
// schema-valid fallback, so a chain always reaches a terminal state and no
// upstream AI failure ever becomes user-visible.
package orchestrator

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/TanmaySingh007/AI-Interview-BOT/internal/collaborator"
	"github.com/TanmaySingh007/AI-Interview-BOT/internal/fallback"
	"github.com/TanmaySingh007/AI-Interview-BOT/internal/interview"
)

const (
	minQuestions = 5
	maxQuestions = 7

	// Transcriptions are bounded before aggregation to keep the aggregate
	// prompt small.
	maxAggregateTranscription = 300
)

// Collaborator is the generative-AI boundary the orchestrator consumes.
// A nil Collaborator means the provider is not configured; every generation
// call silently downgrades to the fallback generator.
type Collaborator interface {
	Greeting(ctx context.Context, roleTitle string) (string, error)
	Questions(ctx context.Context, roleTitle, roleDescription string) ([]string, error)
	Transcribe(ctx context.Context, artifactRef string) (string, error)
	Summarize(ctx context.Context, questionText, transcription string) (string, error)
	Evaluate(ctx context.Context, roleDescription, questionText, transcription string) (interview.EvaluationRecord, error)
	AggregateEvaluate(ctx context.Context, roleTitle, roleDescription string, transcriptions []string, evaluations []interview.EvaluationRecord) (interview.OverallEvaluation, error)
}

// Orchestrator creates sessions, schedules answer chains, aggregates overall
// summaries, and assembles reports.
type Orchestrator struct {
	store    *interview.Store
	collab   Collaborator // nil when the provider is not configured
	fallback *fallback.Generator
	sem      *semaphore
	wg       sync.WaitGroup
	log      *logrus.Entry
}

// New creates an Orchestrator. collab may be nil. workers caps concurrent
// background chains; values below 1 are treated as 1.
func New(store *interview.Store, collab Collaborator, fb *fallback.Generator, workers int) *Orchestrator {
	if workers < 1 {
		workers = 1
	}
	return &Orchestrator{
		store:    store,
		collab:   collab,
		fallback: fb,
		sem:      newSemaphore(workers),
		log:      logrus.WithField("component", "orchestrator"),
	}
}

// Wait blocks until all in-flight background chains and summary tasks have
// terminated. Used on shutdown and in tests.
func (o *Orchestrator) Wait() {
	o.wg.Wait()
}

// StartSession obtains a greeting and question set (collaborator or
// fallback) and registers a new session. The final question count is always
// in [5,7].
func (o *Orchestrator) StartSession(ctx context.Context, roleTitle, roleDescription string) (*interview.Session, error) {
	greeting := o.greeting(ctx, roleTitle)
	questions := o.questionSet(ctx, roleTitle, roleDescription)
	return o.store.Create(roleTitle, roleDescription, greeting, questions), nil
}

func (o *Orchestrator) greeting(ctx context.Context, roleTitle string) string {
	if o.collab != nil {
		greeting, err := o.collab.Greeting(ctx, roleTitle)
		if err != nil {
			o.log.WithError(err).Warn("greeting generation failed, using fallback")
		} else if greeting != "" {
			return greeting
		}
	}
	return o.fallback.Greeting(roleTitle)
}

// questionSet normalizes the collaborator's question output to [5,7]: fewer
// than 5 pads from the fallback pool (skipping duplicates), more than 7
// truncates.
func (o *Orchestrator) questionSet(ctx context.Context, roleTitle, roleDescription string) []string {
	var questions []string
	if o.collab != nil {
		qs, err := o.collab.Questions(ctx, roleTitle, roleDescription)
		if err != nil {
			o.log.WithError(err).Warn("question generation failed, using fallback pool")
		} else {
			questions = qs
		}
	}

	if len(questions) < minQuestions {
		for _, q := range o.fallback.QuestionSet(roleTitle) {
			if len(questions) >= maxQuestions {
				break
			}
			if !contains(questions, q) {
				questions = append(questions, q)
			}
		}
	}
	if len(questions) > maxQuestions {
		questions = questions[:maxQuestions]
	}
	return questions
}

// SubmitAnswer validates the submission, marks the job in flight, and
// schedules the background chain. It never blocks on AI work.
func (o *Orchestrator) SubmitAnswer(sessionID string, index int, artifactRef string) error {
	gen, question, roleDescription, err := o.store.BeginSubmission(sessionID, index, artifactRef)
	if err != nil {
		return err
	}

	o.wg.Add(1)
	go o.runChain(sessionID, index, gen, question, roleDescription, artifactRef)
	return nil
}

// runChain executes the transcribe -> summarize -> evaluate chain for one
// submission, committing each stage result the instant it completes.
func (o *Orchestrator) runChain(sessionID string, index int, gen uint64, question, roleDescription, artifactRef string) {
	defer o.wg.Done()

	ctx := context.Background()
	if err := o.sem.acquire(ctx); err != nil {
		return
	}
	defer o.sem.release()

	log := o.log.WithField("session", sessionID).WithField("question", index)

	// Stage 1: transcription. On failure the slot gets a sentinel error
	// text and the rest of the chain proceeds using it as input.
	var transcription string
	transcriptionFailed := false
	if o.collab == nil {
		transcription = o.fallback.TranscriptionText(index)
	} else {
		t, err := o.collab.Transcribe(ctx, artifactRef)
		if err != nil {
			log.WithError(err).Warn("transcription stage failed")
			transcription = o.fallback.TranscriptionErrorText(index)
			transcriptionFailed = true
		} else {
			transcription = t
		}
	}
	o.store.CommitTranscription(sessionID, index, gen, transcription)

	// Stage 2: summary.
	summary := o.fallback.SummaryText(question)
	if o.collab != nil {
		s, err := o.collab.Summarize(ctx, question, transcription)
		if err != nil {
			log.WithError(err).Warn("summary stage failed")
		} else {
			summary = s
		}
	}
	o.store.CommitSummary(sessionID, index, gen, summary)

	// Stage 3: evaluation. A failed transcription forces the canned
	// unable-to-assess tier; a parse failure gets the default moderate-fit
	// record; any other failure gets the deterministic generated record.
	var record interview.EvaluationRecord
	switch {
	case transcriptionFailed:
		record = o.fallback.UnableToAssess(index)
	case o.collab == nil:
		record = o.fallback.Evaluation(index, transcription)
	default:
		r, err := o.collab.Evaluate(ctx, roleDescription, question, transcription)
		switch {
		case err == nil:
			record = r
		case errors.Is(err, collaborator.ErrParse):
			log.WithError(err).Warn("evaluation response unparseable, substituting default record")
			record = o.fallback.ModerateFit()
		default:
			log.WithError(err).Warn("evaluation stage failed")
			record = o.fallback.Evaluation(index, transcription)
		}
	}
	o.store.CommitEvaluation(sessionID, index, gen, record)

	log.Debug("answer chain complete")
}

// TriggerOverallSummary schedules aggregate-evaluation computation for a
// session. The returned error only reflects synchronous validation (unknown
// session); the aggregation itself runs in the background and is a no-op
// unless every job's transcription and evaluation slots are Done. Re-running
// it replaces any prior aggregate.
func (o *Orchestrator) TriggerOverallSummary(sessionID string) error {
	if _, err := o.store.Snapshot(sessionID); err != nil {
		return err
	}

	o.wg.Add(1)
	go o.runOverallSummary(sessionID)
	return nil
}

func (o *Orchestrator) runOverallSummary(sessionID string) {
	defer o.wg.Done()

	ctx := context.Background()
	if err := o.sem.acquire(ctx); err != nil {
		return
	}
	defer o.sem.release()

	transcriptions, evaluations, ready, err := o.store.ReadyForSummary(sessionID)
	if err != nil || !ready {
		// Jobs still in flight (or session gone): leave the aggregate
		// untouched, the caller re-triggers after polling.
		return
	}

	for i, t := range transcriptions {
		transcriptions[i] = truncateRunes(t, maxAggregateTranscription)
	}

	overall := o.aggregate(ctx, sessionID, transcriptions, evaluations)
	if err := o.store.SetOverall(sessionID, overall); err != nil {
		o.log.WithError(err).WithField("session", sessionID).Warn("storing overall evaluation failed")
		return
	}
	o.log.WithField("session", sessionID).Info("overall evaluation computed")
}

func (o *Orchestrator) aggregate(ctx context.Context, sessionID string, transcriptions []string, evaluations []interview.EvaluationRecord) interview.OverallEvaluation {
	if o.collab == nil {
		return o.fallback.OverallSummary(sessionID)
	}

	snapshot, err := o.store.Snapshot(sessionID)
	if err != nil {
		return o.fallback.OverallSummary(sessionID)
	}

	overall, err := o.collab.AggregateEvaluate(ctx, snapshot.RoleTitle, snapshot.RoleDescription, transcriptions, evaluations)
	if err != nil {
		o.log.WithError(err).WithField("session", sessionID).Warn("aggregate evaluation failed, using fallback")
		return o.fallback.OverallSummary(sessionID)
	}
	return overall
}

// Report returns the session snapshot plus the derived completion flag.
func (o *Orchestrator) Report(sessionID string) (*interview.Report, error) {
	return o.store.Snapshot(sessionID)
}

func contains(items []string, s string) bool {
	for _, item := range items {
		if item == s {
			return true
		}
	}
	return false
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

package interview

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	// ErrNotFound is returned for an unknown session id.
	ErrNotFound = errors.New("session not found")
	// ErrInvalidIndex is returned for a question index outside the
	// session's fixed question list.
	ErrInvalidIndex = errors.New("invalid question index")
	// ErrInFlight is returned when a submission races with a chain that
	// has not yet reached its terminal state for the same question.
	ErrInFlight = errors.New("answer already being processed")
)

// Store is the process-wide session registry. All mutation of session state
// goes through the store, which serializes slot writes per session so that
// every individual slot write is atomic.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	log      *logrus.Entry
}

// entry pairs a session with its own lock. The outer map lock is only held
// for lookup/insert/delete, never across a slot write.
type entry struct {
	mu   sync.Mutex
	sess *Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*entry),
		log:      logrus.WithField("component", "store"),
	}
}

// Create registers a new session with a fixed question list and returns a
// snapshot of it.
func (s *Store) Create(roleTitle, roleDescription, greeting string, questions []string) *Session {
	jobs := make([]QuestionJob, len(questions))
	for i, q := range questions {
		jobs[i] = QuestionJob{Question: q}
	}

	sess := &Session{
		ID:              uuid.New().String(),
		RoleTitle:       roleTitle,
		RoleDescription: roleDescription,
		Greeting:        greeting,
		Questions:       jobs,
		CreatedAt:       time.Now().UTC(),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = &entry{sess: sess}
	s.mu.Unlock()

	s.log.WithField("session", sess.ID).Infof("created session for %q with %d questions", roleTitle, len(jobs))
	return copySession(sess)
}

func (s *Store) entry(id string) (*entry, error) {
	s.mu.RLock()
	e, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return e, nil
}

// BeginSubmission records an answer artifact for a question and moves all
// three stage slots to Processing. It returns the chain generation that the
// caller's pipeline chain must present on every commit, plus the question
// text and role description the chain needs.
//
// A second submission for the same index is rejected with ErrInFlight while
// the previous chain is still running. Once a chain has terminated, the
// question may be resubmitted; that starts a fresh generation.
func (s *Store) BeginSubmission(id string, index int, artifactRef string) (gen uint64, question, roleDescription string, err error) {
	e, err := s.entry(id)
	if err != nil {
		return 0, "", "", err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if index < 0 || index >= len(e.sess.Questions) {
		return 0, "", "", ErrInvalidIndex
	}
	job := &e.sess.Questions[index]
	if job.inFlight {
		return 0, "", "", ErrInFlight
	}

	job.gen++
	job.inFlight = true
	job.ArtifactRef = artifactRef
	job.Transcription = TextSlot{State: StageProcessing}
	job.Summary = TextSlot{State: StageProcessing}
	job.Evaluation = EvaluationSlot{State: StageProcessing}

	return job.gen, job.Question, e.sess.RoleDescription, nil
}

// CommitTranscription writes the transcription stage result. Commits from a
// stale generation are dropped.
func (s *Store) CommitTranscription(id string, index int, gen uint64, text string) {
	s.commit(id, index, gen, func(job *QuestionJob) {
		job.Transcription = TextSlot{State: StageDone, Value: text}
	})
}

// CommitSummary writes the summary stage result.
func (s *Store) CommitSummary(id string, index int, gen uint64, text string) {
	s.commit(id, index, gen, func(job *QuestionJob) {
		job.Summary = TextSlot{State: StageDone, Value: text}
	})
}

// CommitEvaluation writes the evaluation stage result. This is the chain's
// terminal commit: it releases the in-flight guard for the job.
func (s *Store) CommitEvaluation(id string, index int, gen uint64, rec EvaluationRecord) {
	s.commit(id, index, gen, func(job *QuestionJob) {
		job.Evaluation = EvaluationSlot{State: StageDone, Record: &rec}
		job.inFlight = false
	})
}

func (s *Store) commit(id string, index int, gen uint64, apply func(*QuestionJob)) {
	e, err := s.entry(id)
	if err != nil {
		// Session evicted while the chain was running; nothing to write.
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if index < 0 || index >= len(e.sess.Questions) {
		return
	}
	job := &e.sess.Questions[index]
	if job.gen != gen {
		s.log.WithField("session", id).Debugf("dropping stale commit for question %d (gen %d != %d)", index, gen, job.gen)
		return
	}
	apply(job)
}

// Snapshot returns a point-in-time copy of the session plus the derived
// completion flag. The session is complete iff no slot is Processing.
func (s *Store) Snapshot(id string) (*Report, error) {
	e, err := s.entry(id)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	r := &Report{
		Session:        *copySession(e.sess),
		Complete:       true,
		TotalQuestions: len(e.sess.Questions),
	}
	for _, job := range e.sess.Questions {
		if job.Transcription.State == StageProcessing ||
			job.Summary.State == StageProcessing ||
			job.Evaluation.State == StageProcessing {
			r.Complete = false
		}
		if job.Transcription.State == StageDone {
			r.CompletedQuestions++
		}
	}
	return r, nil
}

// ReadyForSummary reports whether every job's transcription and evaluation
// slots are Done, and if so returns the finalized transcriptions and
// evaluation records in question order.
func (s *Store) ReadyForSummary(id string) (transcriptions []string, evaluations []EvaluationRecord, ready bool, err error) {
	e, err := s.entry(id)
	if err != nil {
		return nil, nil, false, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for _, job := range e.sess.Questions {
		if job.Transcription.State != StageDone || job.Evaluation.State != StageDone {
			return nil, nil, false, nil
		}
		transcriptions = append(transcriptions, job.Transcription.Value)
		evaluations = append(evaluations, *job.Evaluation.Record)
	}
	return transcriptions, evaluations, true, nil
}

// SetOverall stores the aggregate evaluation, replacing any prior one.
func (s *Store) SetOverall(id string, overall OverallEvaluation) error {
	e, err := s.entry(id)
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.sess.Overall = &overall
	e.mu.Unlock()
	return nil
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// StartReaper periodically evicts sessions older than ttl. A ttl of zero
// disables eviction entirely (sessions live for the process lifetime).
func (s *Store) StartReaper(ctx context.Context, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.reap(ttl)
			}
		}
	}()
}

func (s *Store) reap(ttl time.Duration) {
	cutoff := time.Now().UTC().Add(-ttl)

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, e := range s.sessions {
		if e.sess.CreatedAt.Before(cutoff) {
			delete(s.sessions, id)
			s.log.WithField("session", id).Info("evicted expired session")
		}
	}
}

// copySession deep-copies a session so callers never alias store-owned state.
func copySession(sess *Session) *Session {
	cp := *sess
	cp.Questions = make([]QuestionJob, len(sess.Questions))
	for i, job := range sess.Questions {
		jc := job
		if job.Evaluation.Record != nil {
			rec := *job.Evaluation.Record
			rec.Skills = append([]string(nil), rec.Skills...)
			rec.Strengths = append([]string(nil), rec.Strengths...)
			rec.Weaknesses = append([]string(nil), rec.Weaknesses...)
			jc.Evaluation.Record = &rec
		}
		cp.Questions[i] = jc
	}
	if sess.Overall != nil {
		ov := *sess.Overall
		ov.KeyInsights = append([]string(nil), ov.KeyInsights...)
		ov.Recommendations = append([]string(nil), ov.Recommendations...)
		ov.Strengths = append([]string(nil), ov.Strengths...)
		ov.AreasForImprovement = append([]string(nil), ov.AreasForImprovement...)
		cp.Overall = &ov
	}
	return &cp
}

package server

import (
	"net/http"

	"github.com/leapstack-labs/sqlmentor/internal/state"
	"github.com/leapstack-labs/sqlmentor/pkg/hint"
	"github.com/leapstack-labs/sqlmentor/pkg/verify"
)

type validateRequest struct {
	StudentSQL     string `json:"student_sql"`
	QuestionNumber int    `json:"question_number"`
	UserID         string `json:"user_id,omitempty"`
}

type hintRequest struct {
	StudentSQL     string `json:"student_sql"`
	QuestionNumber int    `json:"question_number"`
	HintLevel      int    `json:"hint_level"`
	UserID         string `json:"user_id,omitempty"`
}

type feedbackRequest struct {
	UserID         string `json:"user_id"`
	QuestionNumber int    `json:"question_number"`
	HintLevel      int    `json:"hint_level"`
	Helpful        bool   `json:"helpful"`
}

type executionJSON struct {
	Success bool     `json:"success"`
	Error   string   `json:"error,omitempty"`
	Columns []string `json:"columns,omitempty"`
	Rows    [][]any  `json:"rows,omitempty"`
}

func toExecutionJSON(r *verify.ExecutionResult) *executionJSON {
	if r == nil {
		return nil
	}
	return &executionJSON{Success: r.Success, Error: r.Error, Columns: r.Columns, Rows: r.Rows}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleQuestions(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{"questions": s.bank.All()})
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if !s.decode(w, r, &req) {
		return
	}
	q, err := s.bank.Get(req.QuestionNumber)
	if err != nil {
		s.writeError(w, http.StatusNotFound, err.Error())
		return
	}

	d, err := s.service.Diagnose(r.Context(), hint.Request{
		StudentSQL:   req.StudentSQL,
		ReferenceSQL: q.Reference,
		SetupSQL:     s.bank.SetupSQL(),
		Dialect:      s.dialect,
	})
	if err != nil {
		s.logger.Error("diagnosis failed", "request_id", RequestID(r.Context()), "error", err)
		s.writeError(w, http.StatusInternalServerError, "diagnosis failed")
		return
	}

	if d.Equal && req.UserID != "" && s.store != nil {
		if err := s.store.SaveProgress(req.UserID, req.QuestionNumber); err != nil {
			s.logger.Warn("failed to save progress", "request_id", RequestID(r.Context()), "error", err)
		}
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"success":          d.Equal,
		"student_output":   toExecutionJSON(d.Comparison.Student),
		"reference_output": toExecutionJSON(d.Comparison.Reference),
	})
}

func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	var req hintRequest
	if !s.decode(w, r, &req) {
		return
	}
	q, err := s.bank.Get(req.QuestionNumber)
	if err != nil {
		s.writeError(w, http.StatusNotFound, err.Error())
		return
	}

	h, d, err := s.service.HintFor(r.Context(), hint.Request{
		StudentSQL:   req.StudentSQL,
		ReferenceSQL: q.Reference,
		SetupSQL:     s.bank.SetupSQL(),
		Dialect:      s.dialect,
	}, req.HintLevel)
	if err != nil && d == nil {
		s.logger.Error("diagnosis failed", "request_id", RequestID(r.Context()), "error", err)
		s.writeError(w, http.StatusInternalServerError, "diagnosis failed")
		return
	}
	if err != nil {
		// Diagnosis worked but the tier was invalid.
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"success":         d.Equal,
		"hint":            h.Text,
		"tier":            h.Tier,
		"constraint_id":   h.ConstraintID,
		"constraint_name": d.ConstraintName(),
		"execution": map[string]any{
			"student":   toExecutionJSON(d.Comparison.Student),
			"reference": toExecutionJSON(d.Comparison.Reference),
			"equal":     d.Equal,
		},
	})
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if !s.decode(w, r, &req) {
		return
	}
	if s.store == nil {
		s.writeError(w, http.StatusServiceUnavailable, "feedback storage not configured")
		return
	}
	if req.HintLevel < hint.TierPointer || req.HintLevel > hint.TierModel {
		s.writeError(w, http.StatusBadRequest, "hint_level out of range 1..4")
		return
	}

	f := &state.Feedback{
		UserID:     req.UserID,
		QuestionID: req.QuestionNumber,
		Tier:       req.HintLevel,
		Helpful:    req.Helpful,
	}
	if err := s.store.RecordFeedback(f); err != nil {
		s.logger.Error("failed to record feedback", "request_id", RequestID(r.Context()), "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to record feedback")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "recorded", "id": f.ID})
}

package hint

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/sqlmentor/pkg/canon"
	"github.com/leapstack-labs/sqlmentor/pkg/classify"
	"github.com/leapstack-labs/sqlmentor/pkg/constraint"
	"github.com/leapstack-labs/sqlmentor/pkg/diff"
	"github.com/leapstack-labs/sqlmentor/pkg/verify"
)

// Request is one student/reference comparison.
type Request struct {
	StudentSQL   string
	ReferenceSQL string
	SetupSQL     string
	Dialect      string
}

// Service runs the whole diagnostic pipeline: canonicalize, diff, execute,
// evaluate constraints, classify, format. One Service handles concurrent
// requests; it holds only read-only state.
type Service struct {
	engine    *constraint.Engine
	runner    verify.Runner
	formatter *Formatter
	logger    *slog.Logger
}

// NewService wires a service from its collaborators. completer may be nil.
func NewService(runner verify.Runner, completer Completer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		engine:    constraint.NewEngine(constraint.Catalog()),
		runner:    runner,
		formatter: NewFormatter(completer),
		logger:    logger,
	}
}

// Diagnose runs the pipeline up to (but not including) hint rendering.
// A student parse failure is part of the diagnosis, not an error; a
// reference parse failure is the caller's bug and is returned as one.
func (s *Service) Diagnose(ctx context.Context, req Request) (*Diagnostic, error) {
	refForm, err := canon.Canonicalize(req.ReferenceSQL, req.Dialect)
	if err != nil {
		return nil, fmt.Errorf("canonicalize reference query: %w", err)
	}

	cctx := &constraint.Context{
		StudentSQL:    req.StudentSQL,
		ReferenceSQL:  req.ReferenceSQL,
		ReferenceStmt: refForm.Stmt,
		ReferenceMeta: diff.Derive(refForm.Stmt),
	}
	d := &Diagnostic{CanonicalReference: refForm.Text}

	studentForm, err := canon.Canonicalize(req.StudentSQL, req.Dialect)
	if err != nil {
		cctx.StudentParseErr = err
		cctx.StudentMeta = diff.Derive(nil)
		d.StudentParseError = err.Error()
	} else {
		cctx.StudentStmt = studentForm.Stmt
		cctx.StudentMeta = diff.Derive(studentForm.Stmt)
		cctx.Diffs = diff.Compare(cctx.StudentMeta, cctx.ReferenceMeta)
		d.CanonicalStudent = studentForm.Text
	}
	d.StructuralDiffs = cctx.Diffs

	cmp, err := verify.ExecuteAndCompare(ctx, s.runner, req.StudentSQL, req.ReferenceSQL, req.SetupSQL)
	if err != nil {
		return nil, fmt.Errorf("execute queries: %w", err)
	}
	d.Comparison = cmp
	cctx.StudentResult = cmp.Student
	cctx.ReferenceResult = cmp.Reference

	if cmp.Equal {
		d.Equal = true
		return d, nil
	}

	match, checkerErrs := s.engine.Evaluate(cctx)
	d.Matched = match
	d.CheckerErrors = checkerErrs
	for name, msg := range checkerErrs {
		s.logger.Warn("constraint checker failed", "constraint", name, "error", msg)
	}

	d.Classification = classify.Classify(cmp.Student, cmp.Reference)

	s.logger.Debug("diagnosis complete",
		"constraint", d.ConstraintName(),
		"diffs", len(d.StructuralDiffs),
		"equal", d.Equal)
	return d, nil
}

// HintFor diagnoses the request and renders the hint at the given tier.
func (s *Service) HintFor(ctx context.Context, req Request, tier int) (*Hint, *Diagnostic, error) {
	d, err := s.Diagnose(ctx, req)
	if err != nil {
		return nil, nil, err
	}
	h, err := s.formatter.Format(ctx, d, tier)
	if err != nil {
		return nil, d, err
	}
	return h, d, nil
}

package server

import (
	"net/http"
	"time"

	careerlensErrors "careerlens/internal/errors"
	"careerlens/internal/observability"
	"careerlens/internal/session"
	"careerlens/internal/types"

	"go.opentelemetry.io/otel/attribute"
)

// createGetSessionHandler returns the stored session, including any
// extracted profile and tracked jobs.
func (s *Server) createGetSessionHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("careerlens.api")
		_, span := tracer.Start(ctx, "api.session.get")
		defer span.End()

		id := r.PathValue("id")
		span.SetAttributes(attribute.String("session_id", id))

		sess, err := s.Sessions.Get(id)
		if err != nil {
			span.RecordError(err)
			writeAppError(w, "Session not found", err)
			return
		}

		writeJSONResponse(w, sess)
	}
}

// createDeleteSessionHandler removes a session and its resume text
func (s *Server) createDeleteSessionHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("careerlens.api")
		ctx, span := tracer.Start(ctx, "api.session.delete")
		defer span.End()

		id := r.PathValue("id")
		span.SetAttributes(attribute.String("session_id", id))

		if err := s.Sessions.Delete(id); err != nil {
			span.RecordError(err)
			writeAppError(w, "Session not found", err)
			return
		}

		om.GetMetrics().RecordActiveSessions(ctx, s.Sessions.Count(), om)

		w.WriteHeader(http.StatusNoContent)
	}
}

// createSaveJobHandler tracks a job in the session. Re-saving a job with
// the same id updates the existing entry in place (status transitions
// like saved -> applied); new ids are appended. Status defaults to
// "saved" when omitted.
func (s *Server) createSaveJobHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("careerlens.api")
		_, span := tracer.Start(ctx, "api.jobs.save")
		defer span.End()

		var req SaveJobRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if req.SessionID == "" {
			writeErrorResponse(w, "Missing session", "sessionId is required", http.StatusBadRequest)
			return
		}

		status := req.Status
		if status == "" {
			status = types.JobStatusSaved
		}
		if !types.ValidJobStatus(status) {
			err := careerlensErrors.NewValidationError(careerlensErrors.ErrCodeInvalidRequest,
				"Unknown job status", nil).WithContext("status", status)
			span.RecordError(err)
			writeAppError(w, "Invalid job status", err)
			return
		}

		sess, err := s.Sessions.Get(req.SessionID)
		if err != nil {
			span.RecordError(err)
			writeAppError(w, "Session not found", err)
			return
		}

		entry := types.SavedJob{
			Job:     req.Job,
			Status:  status,
			Notes:   req.Notes,
			SavedAt: time.Now(),
		}
		saved := append([]types.SavedJob(nil), sess.SavedJobs...)
		replaced := false
		for i, existing := range saved {
			if req.Job.ID != "" && existing.Job.ID == req.Job.ID {
				// Keep the original save time, the entry is an update
				entry.SavedAt = existing.SavedAt
				saved[i] = entry
				replaced = true
				break
			}
		}
		if !replaced {
			saved = append(saved, entry)
		}
		updated := s.Sessions.Update(req.SessionID, session.Patch{SavedJobs: &saved})

		span.SetAttributes(
			attribute.String("session_id", req.SessionID),
			attribute.String("job_status", status),
			attribute.Int("saved_jobs", len(updated.SavedJobs)),
		)

		writeJSONResponse(w, updated)
	}
}

package server

import (
	"io"
	"net/http"
	"time"

	"careerlens/internal/extract"
	"careerlens/internal/observability"
	"careerlens/internal/session"
	"careerlens/internal/utils"

	"go.opentelemetry.io/otel/attribute"
)

// createUploadHandler accepts a multipart resume upload, extracts its
// text and opens a session keyed by the extracted content.
func (s *Server) createUploadHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("careerlens.api")
		ctx, span := tracer.Start(ctx, "api.upload")
		defer span.End()

		r.Body = http.MaxBytesReader(w, r.Body, s.MaxUploadSize)
		if err := r.ParseMultipartForm(s.MaxUploadSize); err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Invalid upload",
				"Expected multipart form data with a 'file' field", http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Missing file",
				"The 'file' form field is required", http.StatusBadRequest)
			return
		}
		defer func() { _ = file.Close() }()

		data, err := io.ReadAll(file)
		if err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Failed to read upload", err.Error(), http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.String("upload.filename", header.Filename),
			attribute.Int("upload.size", len(data)),
		)

		mimeType := header.Header.Get("Content-Type")
		if mimeType == "" || mimeType == "application/octet-stream" {
			mimeType = utils.MimeTypeForFile(header.Filename)
		}

		text, err := extract.ExtractText(data, mimeType)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "extraction"))
			writeAppError(w, "Failed to extract resume text", err)
			return
		}

		sess := &session.Session{
			ID:         session.NewSessionID(text),
			ResumeText: text,
			CreatedAt:  time.Now(),
			UpdatedAt:  time.Now(),
		}
		s.Sessions.Set(sess)

		s.Logger.Info("Resume uploaded",
			"session_id", sess.ID,
			"filename", header.Filename,
			"mime_type", mimeType,
			"text_length", len(text))

		metrics := om.GetMetrics()
		metrics.RecordBusinessMetric(ctx, observability.MetricResumeUploaded, true, om,
			attribute.String("mime_type", mimeType))
		metrics.RecordSessionCreated(ctx, om)
		metrics.RecordActiveSessions(ctx, s.Sessions.Count(), om)

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.String("session_id", sess.ID),
			attribute.Int("text_length", len(text)),
		)

		writeJSONResponse(w, UploadResponse{
			SessionID:  sess.ID,
			TextLength: len(text),
		})
	}
}

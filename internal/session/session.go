package session

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"careerlens/internal/types"
)

// Session correlates an uploaded resume with follow-on analysis requests.
// It holds the extracted resume text, the structured profile once
// extracted, and the jobs the candidate is working with.
type Session struct {
	ID         string                  `json:"id"`
	ResumeText string                  `json:"resumeText"`
	Profile    *types.ExtractedProfile `json:"profile,omitempty"`
	Jobs       []types.JobListing      `json:"jobs"`
	SavedJobs  []types.SavedJob        `json:"savedJobs"`
	CreatedAt  time.Time               `json:"createdAt"`
	UpdatedAt  time.Time               `json:"updatedAt"`
}

// Patch is a shallow merge applied by Store.Update. Nil fields leave the
// session untouched; set fields replace the session's value wholesale.
type Patch struct {
	ResumeText *string
	Profile    *types.ExtractedProfile
	Jobs       *[]types.JobListing
	SavedJobs  *[]types.SavedJob
}

// NewSessionID derives a session id from the resume content and the
// current time, so re-uploading the same resume yields a fresh session.
func NewSessionID(resumeText string) string {
	h := sha256.New()
	h.Write([]byte(resumeText))
	h.Write([]byte(time.Now().Format(time.RFC3339Nano)))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// clone returns a copy of the session with its own slices, so callers
// cannot mutate stored state through the returned value.
func (s *Session) clone() *Session {
	if s == nil {
		return nil
	}

	out := *s
	if s.Profile != nil {
		profile := *s.Profile
		out.Profile = &profile
	}
	out.Jobs = append([]types.JobListing(nil), s.Jobs...)
	out.SavedJobs = append([]types.SavedJob(nil), s.SavedJobs...)
	return &out
}

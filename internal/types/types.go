package types

import "time"

// ATSReport describes how applicant-tracking systems are likely to score
// the resume against the job description.
type ATSReport struct {
	Score            int      `json:"score"`
	MatchedKeywords  []string `json:"matchedKeywords"`
	MissingKeywords  []string `json:"missingKeywords"`
	FormattingIssues []string `json:"formattingIssues"`
	PassesScreening  *bool    `json:"passesScreening"`
}

// QualificationGap summarizes requirements the candidate does not meet
type QualificationGap struct {
	Summary               string   `json:"summary"`
	MissingQualifications []string `json:"missingQualifications"`
	PartialQualifications []string `json:"partialQualifications"`
}

// CompetitorAnalysis estimates the likely applicant pool
type CompetitorAnalysis struct {
	TypicalCompetition string   `json:"typicalCompetition"`
	Differentiators    []string `json:"differentiators"`
}

// ApplicationStrategy recommends how to approach the application
type ApplicationStrategy struct {
	Recommendation string   `json:"recommendation"`
	TalkingPoints  []string `json:"talkingPoints"`
}

// ResumeRewrite is a targeted rewrite suggestion for one resume section
type ResumeRewrite struct {
	Section   string `json:"section"`
	Original  string `json:"original"`
	Improved  string `json:"improved"`
	Rationale string `json:"rationale"`
}

// ActionItem is a prioritized next step for the candidate
type ActionItem struct {
	Priority string `json:"priority"`
	Action   string `json:"action"`
}

// MatchAnalysis is the full result of analyzing a resume against a job
// description. Every field is populated after normalization.
type MatchAnalysis struct {
	OverallScore         int                 `json:"overallScore"`
	Verdict              string              `json:"verdict"`
	ATS                  ATSReport           `json:"ats"`
	QualificationGap     QualificationGap    `json:"qualificationGap"`
	Dealbreakers         []string            `json:"dealbreakers"`
	Strengths            []string            `json:"strengths"`
	RedFlags             []string            `json:"redFlags"`
	CompetitorAnalysis   CompetitorAnalysis  `json:"competitorAnalysis"`
	ApplicationStrategy  ApplicationStrategy `json:"applicationStrategy"`
	ResumeRewrites       []ResumeRewrite     `json:"resumeRewrites"`
	ActionPlan           []ActionItem        `json:"actionPlan"`
	InterviewProbability int                 `json:"interviewProbability"`
	BottomLine           string              `json:"bottomLine"`
}

// Education captures the highest or most relevant degree found on a resume
type Education struct {
	Degree         string `json:"degree"`
	Institution    string `json:"institution"`
	GraduationYear string `json:"graduationYear"`
}

// ExtractedProfile is the structured candidate profile pulled from resume text
type ExtractedProfile struct {
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone"`
	Location          string    `json:"location"`
	CurrentTitle      string    `json:"currentTitle"`
	YearsOfExperience float64   `json:"yearsOfExperience"`
	ExperienceLevel   string    `json:"experienceLevel"`
	TargetTitles      []string  `json:"targetTitles"`
	TechnicalSkills   []string  `json:"technicalSkills"`
	SoftSkills        []string  `json:"softSkills"`
	Education         Education `json:"education"`
	Summary           string    `json:"summary"`
	SearchKeywords    []string  `json:"searchKeywords"`
}

// InterviewQuestion pairs a likely interview question with a suggested
// answer tailored to the candidate.
type InterviewQuestion struct {
	Question        string `json:"question"`
	SuggestedAnswer string `json:"suggestedAnswer"`
	Tip             string `json:"tip"`
}

// InterviewPrep is the result of the interview preparation operation
type InterviewPrep struct {
	Questions []InterviewQuestion `json:"questions"`
}

// OptimizedSection is one audited resume section with its rewrite
type OptimizedSection struct {
	Name    string   `json:"name"`
	Score   int      `json:"score"`
	Before  string   `json:"before"`
	After   string   `json:"after"`
	Changes []string `json:"changes"`
}

// ResumeOptimization is a section-by-section resume audit
type ResumeOptimization struct {
	OverallScore  int                `json:"overallScore"`
	Sections      []OptimizedSection `json:"sections"`
	ChangeSummary string             `json:"changeSummary"`
}

// CompanyFit scores cultural and strategic fit with a specific company
type CompanyFit struct {
	Score     int    `json:"score"`
	Status    string `json:"status"`
	Rationale string `json:"rationale"`
}

// CoverLetter is a generated cover letter plus the resume points it leads with
type CoverLetter struct {
	CoverLetter string   `json:"coverLetter"`
	Highlights  []string `json:"highlights"`
}

// JobListing is a job discovered for or supplied by the candidate
type JobListing struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Source      string `json:"source"`
}

// SavedJob is a job the candidate is actively tracking
type SavedJob struct {
	Job     JobListing `json:"job"`
	Status  string     `json:"status"`
	Notes   string     `json:"notes"`
	SavedAt time.Time  `json:"savedAt"`
}

// Saved job statuses
const (
	JobStatusSaved        = "saved"
	JobStatusApplied      = "applied"
	JobStatusInterviewing = "interviewing"
	JobStatusOffer        = "offer"
	JobStatusRejected     = "rejected"
)

// ValidJobStatus reports whether s is a recognized saved-job status
func ValidJobStatus(s string) bool {
	switch s {
	case JobStatusSaved, JobStatusApplied, JobStatusInterviewing, JobStatusOffer, JobStatusRejected:
		return true
	}
	return false
}

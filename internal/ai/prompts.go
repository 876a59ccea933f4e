package ai

import "fmt"

// TemplateKind identifies one of the prompt templates
type TemplateKind string

const (
	KindAnalyze     TemplateKind = "analyze"
	KindProfile     TemplateKind = "profile"
	KindCoverLetter TemplateKind = "coverletter"
	KindInterview   TemplateKind = "interview"
	KindOptimize    TemplateKind = "optimize"
	KindFit         TemplateKind = "fit"
)

// OperationKinds lists every prompt template kind
var OperationKinds = []TemplateKind{
	KindAnalyze, KindProfile, KindCoverLetter, KindInterview, KindOptimize, KindFit,
}

// Character budgets for long free-text fields. Inputs are cut to a prefix
// of this many runes before templating, so the same input always yields
// the same prompt.
const (
	maxResumeChars          = 12000
	maxJobDescriptionChars  = 8000
	maxCompanyResearchChars = 6000
	maxPriorAnalysisChars   = 4000
)

// Placeholder phrases for absent optional fields
const (
	placeholderCompany  = "the company"
	placeholderPosition = "the position"
	placeholderNoJob    = "(no target job description provided; optimize for general impact)"
	placeholderNoNotes  = "(no company research available)"
	placeholderNoPrior  = "(no prior match analysis available)"
)

// Fields carries the dynamic content injected into a prompt template
type Fields struct {
	ResumeText      string
	JobDescription  string
	CompanyName     string
	JobTitle        string
	CompanyResearch string
	PriorAnalysis   string
}

// BuildPrompt renders the user prompt for a template kind. It is pure:
// output depends only on the arguments. Long fields are truncated to
// fixed prefixes and absent optional fields render as placeholder
// phrases, never as empty holes in the prompt.
func BuildPrompt(kind TemplateKind, template string, f Fields) string {
	resume := truncateRunes(f.ResumeText, maxResumeChars)
	job := truncateRunes(f.JobDescription, maxJobDescriptionChars)
	research := truncateRunes(f.CompanyResearch, maxCompanyResearchChars)
	prior := truncateRunes(f.PriorAnalysis, maxPriorAnalysisChars)

	company := f.CompanyName
	if company == "" {
		company = placeholderCompany
	}
	title := f.JobTitle
	if title == "" {
		title = placeholderPosition
	}

	switch kind {
	case KindAnalyze:
		return fmt.Sprintf(template, title, company, resume, job)
	case KindProfile:
		return fmt.Sprintf(template, resume)
	case KindCoverLetter:
		if research == "" {
			research = placeholderNoNotes
		}
		return fmt.Sprintf(template, title, company, resume, job, research)
	case KindInterview:
		if prior == "" {
			prior = placeholderNoPrior
		}
		return fmt.Sprintf(template, title, company, resume, job, prior)
	case KindOptimize:
		if job == "" {
			job = placeholderNoJob
		}
		return fmt.Sprintf(template, resume, job)
	case KindFit:
		if research == "" {
			research = placeholderNoNotes
		}
		return fmt.Sprintf(template, company, resume, research, job)
	}
	return ""
}

// truncateRunes cuts s to a prefix of at most max runes
func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// DefaultSystemPrompts provides the default system instructions per operation
var DefaultSystemPrompts = map[TemplateKind]string{
	KindAnalyze: `You are a brutally honest career analyst and former technical recruiter. Your core principles are:

- Assess the candidate's real chances, never inflate scores to be encouraging
- Ground every claim in the resume and job description text
- Surface dealbreakers and red flags explicitly
- Respond with a single JSON object and nothing else

Your expertise includes:
- ATS (Applicant Tracking System) keyword screening
- Qualification gap analysis
- Hiring market dynamics and applicant competition`,

	KindProfile: `You are an expert resume parser. You extract structured candidate data from raw resume text with strict accuracy:

- Only report information that appears in the resume
- Leave fields empty rather than guessing
- Respond with a single JSON object and nothing else`,

	KindCoverLetter: `You are a professional cover letter writer. Your principles are:

- Use only experience and skills present in the resume, never invent
- Write in a confident, specific voice; avoid generic filler
- Keep the letter under four paragraphs
- Respond with a single JSON object and nothing else`,

	KindInterview: `You are a senior interview coach who prepares candidates for specific roles:

- Tailor questions to the job description and the candidate's background
- Suggested answers must draw only on the candidate's actual experience
- Respond with a single JSON object and nothing else`,

	KindOptimize: `You are an expert resume editor and ATS consultant:

- Audit section by section, scoring each for impact and clarity
- Rewrites must preserve factual content, never invent achievements
- Respond with a single JSON object and nothing else`,

	KindFit: `You are a company-fit analyst. You weigh a candidate's background against what is known about a company and its culture:

- Be decisive; pick exactly one status value
- Keep the rationale to one sentence
- Respond with a single JSON object and nothing else`,
}

// DefaultUserPrompts provides the default user prompt templates. Each
// template embeds the exact JSON shape the response must follow.
var DefaultUserPrompts = map[TemplateKind]string{
	KindAnalyze: `Analyze how well this candidate matches the role of %s at %s. Be honest: most applicants are not a good fit, and candidates are better served by accurate scores than kind ones.

**Candidate Resume:**
-----
%s
-----

**Job Description:**
-----
%s
-----

Respond with a JSON object of this exact shape:
{
  "overallScore": 0-100,
  "verdict": "excellent_match" | "good_match" | "partial_match" | "weak_match" | "poor_match",
  "ats": {
    "score": 0-100,
    "matchedKeywords": ["..."],
    "missingKeywords": ["..."],
    "formattingIssues": ["..."],
    "passesScreening": true | false
  },
  "qualificationGap": {
    "summary": "...",
    "missingQualifications": ["..."],
    "partialQualifications": ["..."]
  },
  "dealbreakers": ["..."],
  "strengths": ["..."],
  "redFlags": ["..."],
  "competitorAnalysis": {
    "typicalCompetition": "...",
    "differentiators": ["..."]
  },
  "applicationStrategy": {
    "recommendation": "...",
    "talkingPoints": ["..."]
  },
  "resumeRewrites": [
    {"section": "...", "original": "...", "improved": "...", "rationale": "..."}
  ],
  "actionPlan": [
    {"priority": "high" | "medium" | "low", "action": "..."}
  ],
  "interviewProbability": 0-100,
  "bottomLine": "one blunt sentence"
}

Include at most 3 resumeRewrites, the highest-impact ones first.`,

	KindProfile: `Extract a structured candidate profile from this resume.

**Resume:**
-----
%s
-----

Respond with a JSON object of this exact shape:
{
  "name": "...",
  "email": "...",
  "phone": "...",
  "location": "...",
  "currentTitle": "...",
  "yearsOfExperience": number,
  "experienceLevel": "entry" | "junior" | "mid" | "senior" | "lead" | "principal" | "executive",
  "targetTitles": ["..."],
  "technicalSkills": ["..."],
  "softSkills": ["..."],
  "education": {"degree": "...", "institution": "...", "graduationYear": "..."},
  "summary": "2-3 sentence professional summary",
  "searchKeywords": ["terms for job board searches"]
}

Use empty strings or empty arrays for anything the resume does not state.`,

	KindCoverLetter: `Write a tailored cover letter for the role of %s at %s.

**Candidate Resume:**
-----
%s
-----

**Job Description:**
-----
%s
-----

**Company Research Notes:**
-----
%s
-----

Respond with a JSON object of this exact shape:
{
  "coverLetter": "the full letter text",
  "highlights": ["resume points the letter leads with"]
}`,

	KindInterview: `Prepare this candidate for an interview for the role of %s at %s.

**Candidate Resume:**
-----
%s
-----

**Job Description:**
-----
%s
-----

**Prior Match Analysis:**
-----
%s
-----

Cover the 20 interview questions this candidate is most likely to face: behavioral, technical, and questions probing the weaknesses identified above.

Respond with a JSON object of this exact shape:
{
  "questions": [
    {"question": "...", "suggestedAnswer": "answer grounded in the candidate's actual experience", "tip": "one delivery tip"}
  ]
}`,

	KindOptimize: `Audit and optimize this resume section by section.

**Resume:**
-----
%s
-----

**Target Job Description:**
-----
%s
-----

Respond with a JSON object of this exact shape:
{
  "overallScore": 0-100,
  "sections": [
    {"name": "...", "score": 0-100, "before": "current text", "after": "improved text", "changes": ["what changed and why"]}
  ],
  "changeSummary": "..."
}

Include at most 10 sections, weakest first.`,

	KindFit: `Score how well this candidate fits %s.

**Candidate Resume:**
-----
%s
-----

**Company Research Notes:**
-----
%s
-----

**Job Description:**
-----
%s
-----

Respond with a JSON object of this exact shape:
{
  "score": 0-100,
  "status": "strong_fit" | "potential_fit" | "weak_fit" | "mismatch",
  "rationale": "exactly one sentence"
}`,
}

// resolvePrompt selects the prompt string based on priority:
// 1. A prompt loaded from a file.
// 2. A prompt defined directly in the configuration.
// 3. The hardcoded default.
func resolvePrompt(loadedFromFile, fromConfig, fromDefault string) string {
	if loadedFromFile != "" {
		return loadedFromFile
	}
	if fromConfig != "" {
		return fromConfig
	}
	return fromDefault
}

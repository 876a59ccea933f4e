package schema

// Verdict values for a match analysis
var VerdictValues = []string{
	"excellent_match",
	"good_match",
	"partial_match",
	"weak_match",
	"poor_match",
}

// Experience levels for an extracted profile
var ExperienceLevelValues = []string{
	"entry",
	"junior",
	"mid",
	"senior",
	"lead",
	"principal",
	"executive",
}

// Fit statuses for a company-fit score
var FitStatusValues = []string{
	"strong_fit",
	"potential_fit",
	"weak_fit",
	"mismatch",
}

// Action-plan priorities
var PriorityValues = []string{"high", "medium", "low"}

// Item caps applied during normalization
const (
	MaxResumeRewrites    = 3
	MaxInterviewQuestions = 20
	MaxOptimizedSections  = 10
)

// MatchAnalysisSchema is the canonical shape of a match analysis result
var MatchAnalysisSchema = Schema{
	Name: "matchAnalysis",
	Fields: []Field{
		{Name: "overallScore", Kind: KindScore},
		{Name: "verdict", Kind: KindString, Enum: VerdictValues},
		{Name: "ats", Kind: KindObject, Fields: []Field{
			{Name: "score", Kind: KindScore},
			{Name: "matchedKeywords", Kind: KindStringList},
			{Name: "missingKeywords", Kind: KindStringList},
			{Name: "formattingIssues", Kind: KindStringList},
			{Name: "passesScreening", Kind: KindBool},
		}},
		{Name: "qualificationGap", Kind: KindObject, Fields: []Field{
			{Name: "summary", Kind: KindString},
			{Name: "missingQualifications", Kind: KindStringList},
			{Name: "partialQualifications", Kind: KindStringList},
		}},
		{Name: "dealbreakers", Kind: KindStringList},
		{Name: "strengths", Kind: KindStringList},
		{Name: "redFlags", Kind: KindStringList},
		{Name: "competitorAnalysis", Kind: KindObject, Fields: []Field{
			{Name: "typicalCompetition", Kind: KindString},
			{Name: "differentiators", Kind: KindStringList},
		}},
		{Name: "applicationStrategy", Kind: KindObject, Fields: []Field{
			{Name: "recommendation", Kind: KindString},
			{Name: "talkingPoints", Kind: KindStringList},
		}},
		{Name: "resumeRewrites", Kind: KindObjectList, MaxItems: MaxResumeRewrites, Fields: []Field{
			{Name: "section", Kind: KindString},
			{Name: "original", Kind: KindString},
			{Name: "improved", Kind: KindString},
			{Name: "rationale", Kind: KindString},
		}},
		{Name: "actionPlan", Kind: KindObjectList, Fields: []Field{
			{Name: "priority", Kind: KindString, Enum: PriorityValues, Default: "medium"},
			{Name: "action", Kind: KindString},
		}},
		{Name: "interviewProbability", Kind: KindScore},
		{Name: "bottomLine", Kind: KindString},
	},
}

// ExtractedProfileSchema is the canonical shape of an extracted profile
var ExtractedProfileSchema = Schema{
	Name: "extractedProfile",
	Fields: []Field{
		{Name: "name", Kind: KindString},
		{Name: "email", Kind: KindString},
		{Name: "phone", Kind: KindString},
		{Name: "location", Kind: KindString},
		{Name: "currentTitle", Kind: KindString},
		{Name: "yearsOfExperience", Kind: KindNumber, Min: 0, Max: 70, HasBounds: true},
		{Name: "experienceLevel", Kind: KindString, Enum: ExperienceLevelValues},
		{Name: "targetTitles", Kind: KindStringList},
		{Name: "technicalSkills", Kind: KindStringList},
		{Name: "softSkills", Kind: KindStringList},
		{Name: "education", Kind: KindObject, Fields: []Field{
			{Name: "degree", Kind: KindString},
			{Name: "institution", Kind: KindString},
			{Name: "graduationYear", Kind: KindString},
		}},
		{Name: "summary", Kind: KindString},
		{Name: "searchKeywords", Kind: KindStringList},
	},
}

// InterviewPrepSchema is the canonical shape of an interview prep result
var InterviewPrepSchema = Schema{
	Name: "interviewPrep",
	Fields: []Field{
		{Name: "questions", Kind: KindObjectList, MaxItems: MaxInterviewQuestions, Fields: []Field{
			{Name: "question", Kind: KindString},
			{Name: "suggestedAnswer", Kind: KindString},
			{Name: "tip", Kind: KindString},
		}},
	},
}

// ResumeOptimizationSchema is the canonical shape of a resume audit
var ResumeOptimizationSchema = Schema{
	Name: "resumeOptimization",
	Fields: []Field{
		{Name: "overallScore", Kind: KindScore},
		{Name: "sections", Kind: KindObjectList, MaxItems: MaxOptimizedSections, Fields: []Field{
			{Name: "name", Kind: KindString},
			{Name: "score", Kind: KindScore},
			{Name: "before", Kind: KindString},
			{Name: "after", Kind: KindString},
			{Name: "changes", Kind: KindStringList},
		}},
		{Name: "changeSummary", Kind: KindString},
	},
}

// CompanyFitSchema is the canonical shape of a company-fit score
var CompanyFitSchema = Schema{
	Name: "companyFit",
	Fields: []Field{
		{Name: "score", Kind: KindScore},
		{Name: "status", Kind: KindString, Enum: FitStatusValues},
		{Name: "rationale", Kind: KindString},
	},
}

// CoverLetterSchema is the canonical shape of a cover letter result
var CoverLetterSchema = Schema{
	Name: "coverLetter",
	Fields: []Field{
		{Name: "coverLetter", Kind: KindString},
		{Name: "highlights", Kind: KindStringList},
	},
}

package types

import "time"

// StartInterviewInput represents the input for starting an interview session
type StartInterviewInput struct {
	UserID          string   `json:"userId"`
	Industry        string   `json:"industry"`
	ResumeText      string   `json:"resumeText,omitempty"`
	CustomQuestions []string `json:"customQuestions,omitempty"`
}

// StartInterviewOutput represents the result of starting an interview session
type StartInterviewOutput struct {
	SessionID string `json:"sessionId"`
	Question  string `json:"question"`
}

// SubmitAnswerInput represents one submitted interview answer
type SubmitAnswerInput struct {
	SessionID      string `json:"sessionId"`
	LiveTranscript string `json:"liveTranscript,omitempty"`
	Audio          []byte `json:"-"`
}

// AnswerAnalysis represents the structured evaluation of a single answer
type AnswerAnalysis struct {
	TechnicalAccuracy    int    `json:"technicalAccuracy"`
	ProblemSolving       int    `json:"problemSolving"`
	CommunicationClarity int    `json:"communicationClarity"`
	KeyStrength          string `json:"keyStrength"`
	TechnicalImprovement string `json:"technicalImprovement"`
	FollowUpQuestion     string `json:"followUpQuestion"`
}

// TurnAnalysis is the per-turn record kept in the session history
type TurnAnalysis struct {
	Question       string `json:"question"`
	Answer         string `json:"answer"`
	Technical      int    `json:"technical"`
	ProblemSolving int    `json:"problemSolving"`
	Clarity        int    `json:"clarity"`
	Strength       string `json:"strength"`
	Improvement    string `json:"improvement"`
	FollowUp       string `json:"followUp"`
}

// InterviewReport represents the final technical evaluation of a session
type InterviewReport struct {
	TechnicalAssessment   string   `json:"technicalAssessment"`
	ArchitectureStrengths []string `json:"architectureStrengths"`
	TechnicalImprovements []string `json:"technicalImprovements"`
	LearningPath          []string `json:"learningPath"`
}

// SubmitAnswerOutput represents the result of processing one answer
type SubmitAnswerOutput struct {
	IsComplete   bool             `json:"isComplete"`
	NextQuestion string           `json:"nextQuestion,omitempty"`
	Analysis     AnswerAnalysis   `json:"analysis"`
	Transcript   string           `json:"transcript,omitempty"`
	Report       *InterviewReport `json:"report,omitempty"`
}

// QuestionSetInput represents the input for pre-generating interview questions
type QuestionSetInput struct {
	ResumeText string `json:"resumeText"`
	Industry   string `json:"industry"`
}

// QuestionSetOutput represents a pre-generated question list with the
// resume analysis it was derived from
type QuestionSetOutput struct {
	Questions []string `json:"questions"`
	Analysis  string   `json:"analysis"`
}

// AnalyzeResumeInput represents the input for ATS resume analysis
type AnalyzeResumeInput struct {
	ResumeText string `json:"resumeText"`
	Industry   string `json:"industry"`
}

// ResumeSection represents one structural section of a resume
type ResumeSection struct {
	Name        string `json:"name"`
	Status      string `json:"status"` // "present" or "missing"
	Description string `json:"description"`
}

// StrengthsAndWeaknesses groups the qualitative sides of an ATS analysis
type StrengthsAndWeaknesses struct {
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
}

// ATSAnalysis represents the full ATS scoring result for a resume
type ATSAnalysis struct {
	ATSScore               int                    `json:"atsScore"`
	KeywordMatch           int                    `json:"keywordMatch"`
	Feedback               string                 `json:"feedback"`
	DetectedKeywords       []string               `json:"detectedKeywords"`
	MissingKeywords        []string               `json:"missingKeywords"`
	ImprovementTips        []string               `json:"improvementTips"`
	ResumeStructure        []ResumeSection        `json:"resumeStructure"`
	StrengthsAndWeaknesses StrengthsAndWeaknesses `json:"strengthsAndWeaknesses"`
}

// Resume represents a stored resume with its latest analysis
type Resume struct {
	UserID    string    `json:"userId"`
	Content   string    `json:"content"`
	ATSScore  int       `json:"atsScore,omitempty"`
	Feedback  string    `json:"feedback,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ImproveContentInput represents the input for AI content improvement
type ImproveContentInput struct {
	Current  string `json:"current"`
	Type     string `json:"type"` // "summary", "experience", "project"
	Industry string `json:"industry"`
}

// CoverLetterInput represents the input for cover letter generation
type CoverLetterInput struct {
	CompanyName    string `json:"companyName"`
	JobTitle       string `json:"jobTitle"`
	JobDescription string `json:"jobDescription"`
	ResumeText     string `json:"resumeText,omitempty"`
	Industry       string `json:"industry,omitempty"`
}

// CoverLetter represents a stored cover letter
type CoverLetter struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	CompanyName    string    `json:"companyName"`
	JobTitle       string    `json:"jobTitle"`
	JobDescription string    `json:"jobDescription"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Job represents one job listing with skill-match enrichment
type Job struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Company         string   `json:"company"`
	Location        string   `json:"location"`
	Description     string   `json:"description"`
	URL             string   `json:"url"`
	DatePosted      string   `json:"date_posted"`
	Salary          string   `json:"salary"`
	JobType         string   `json:"job_type"`
	Source          string   `json:"source"`
	CompanyLogo     string   `json:"company_logo,omitempty"`
	IsRemote        bool     `json:"is_remote"`
	Qualifications  []string `json:"qualifications,omitempty"`
	Benefits        []string `json:"benefits,omitempty"`
	Country         string   `json:"country"`
	JobSkills       []string `json:"jobSkills"`
	CommonSkills    []string `json:"commonSkills"`
	MissingSkills   []string `json:"missingSkills"`
	MatchPercentage int      `json:"matchPercentage"`
	IsDemoData      bool     `json:"isDemoData"`
}

// JobSearchResult represents one page of job search results
type JobSearchResult struct {
	Jobs      []Job `json:"jobs"`
	TotalJobs int   `json:"totalJobs"`
}

// SavedJob represents a job bookmarked by a user
type SavedJob struct {
	UserID  string    `json:"userId"`
	Job     Job       `json:"job"`
	SavedAt time.Time `json:"savedAt"`
}

// SalaryRange represents salary data for one role
type SalaryRange struct {
	Role     string  `json:"role"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Median   float64 `json:"median"`
	Location string  `json:"location"`
}

// IndustryInsights represents AI-generated market data for an industry
type IndustryInsights struct {
	Industry          string        `json:"industry"`
	SalaryRanges      []SalaryRange `json:"salaryRanges"`
	GrowthRate        float64       `json:"growthRate"`
	DemandLevel       string        `json:"demandLevel"`   // "HIGH", "MEDIUM", "LOW"
	TopSkills         []string      `json:"topSkills"`
	MarketOutlook     string        `json:"marketOutlook"` // "POSITIVE", "NEUTRAL", "NEGATIVE"
	KeyTrends         []string      `json:"keyTrends"`
	RecommendedSkills []string      `json:"recommendedSkills"`
	LastUpdated       time.Time     `json:"lastUpdated"`
	NextUpdate        time.Time     `json:"nextUpdate"`
}

package ai

// SystemPrompts contains all system-level instructions for AI interactions
type SystemPrompts struct {
	FirstQuestion    string
	NextQuestion     string
	AnalyzeAnswer    string
	Report           string
	QuestionSet      string
	ResumeATS        string
	ImproveContent   string
	CoverLetter      string
	IndustryInsights string
}

// UserPrompts contains all user-level prompt templates for AI interactions
type UserPrompts struct {
	FirstQuestion    string
	NextQuestion     string
	AnalyzeAnswer    string
	Report           string
	QuestionSet      string
	ResumeATS        string
	ImproveContent   string
	CoverLetter      string
	IndustryInsights string
}

// DefaultSystemPrompts provides the built-in system instructions
var DefaultSystemPrompts = SystemPrompts{
	FirstQuestion: `You are an experienced technical interviewer. You ask one short, focused question at a time. Your questions are conversational, specific, and under 150 characters. You never ask generic questions like "tell me about yourself".`,

	NextQuestion: `You are an experienced technical interviewer conducting a live voice interview. Based on the candidate's previous answer, ask exactly one natural follow-up question. Keep it under 150 characters, specific and conversational. Never repeat a question that was already asked.`,

	AnalyzeAnswer: `You are a senior technical interviewer evaluating candidate answers. Score each dimension on a 1-10 scale and give concise, actionable feedback. Respond only with the requested JSON structure.`,

	Report: `You are a senior engineering interviewer writing a final technical evaluation. Base every statement on what the candidate actually said during the interview. Be specific and constructive. Respond only with the requested JSON structure.`,

	QuestionSet: `You are a technical interviewer preparing questions for a mock interview. Generate questions grounded in the candidate's actual resume and target industry. Respond only with the requested JSON structure.`,

	ResumeATS: `You are an expert ATS (Applicant Tracking System) analyst and professional resume reviewer. Evaluate resumes the way modern ATS software and recruiters do. Respond only with the requested JSON structure.`,

	ImproveContent: `You are an expert resume writer. You rewrite resume content to be more impactful, quantified, and aligned with industry keywords. Respond only with the improved text, no explanations and no markdown formatting.`,

	CoverLetter: `You are a professional career writer. You write compelling, specific cover letters that connect a candidate's background to a concrete role. Use proper business letter structure in markdown. Keep it under 400 words.`,

	IndustryInsights: `You are a labor market analyst. Provide realistic, current market data for the requested industry. Respond only with the requested JSON structure, with no additional notes or explanations.`,
}

// DefaultUserPrompts provides the built-in user prompt templates
var DefaultUserPrompts = UserPrompts{
	FirstQuestion: `Start a technical interview for a candidate in the %s industry.

Candidate resume (may be empty):
%s

Ask one opening question about the candidate's most recent project and the technologies they used. The question must be under 150 characters and end with a question mark.`,

	NextQuestion: `Industry: %s
Question number %d of the interview.

Questions already asked:
%s

Previous question: %s
Candidate's answer: %s

Ask the next interview question. Build on the candidate's answer where possible. Do not repeat any question already asked.%s`,

	AnalyzeAnswer: `Evaluate this technical interview exchange for a candidate in the %s industry.

Question: %s
Answer: %s

Provide:
- technicalAccuracy: 1-10 score for technical correctness and depth
- problemSolving: 1-10 score for problem-solving approach
- communicationClarity: 1-10 score for clarity of communication
- keyStrength: the strongest aspect of this answer, one sentence
- technicalImprovement: the most important improvement, one sentence
- followUpQuestion: a natural follow-up question under 150 characters`,

	Report: `Write the final evaluation for this technical interview in the %s industry.

Interview transcript:
%s

Provide:
- technicalAssessment: 2-3 sentence overall assessment of technical ability
- architectureStrengths: 3-5 specific strengths demonstrated in the answers
- technicalImprovements: 3-5 specific areas to improve
- learningPath: 3-5 concrete learning recommendations`,

	QuestionSet: `Prepare interview questions for a candidate in the %s industry.

Candidate resume:
%s

Generate exactly 7 questions:
- 3 technical questions based on the specific technologies and projects in the resume
- 2 behavioral questions relevant to the candidate's experience level
- 1 domain question specific to the %s industry
- 1 problem-solving question

Each question must be under 150 characters and end with a question mark. Also provide a short analysis (2-3 sentences) of the resume highlighting what the questions probe.`,

	ResumeATS: `Analyze this resume for ATS compatibility and overall quality, targeting the %s industry.

Resume:
%s

Provide:
- atsScore: 0-100 overall ATS compatibility score
- keywordMatch: 0-100 score for industry keyword coverage
- feedback: 2-3 sentence overall feedback
- detectedKeywords: industry-relevant keywords found in the resume
- missingKeywords: important industry keywords that are absent
- improvementTips: 3-5 concrete improvement suggestions
- resumeStructure: for each of the standard sections (Contact Information, Professional Summary, Work Experience, Education, Skills), whether it is "present" or "missing" with a one-line description
- strengthsAndWeaknesses: lists of the resume's main strengths and weaknesses`,

	ImproveContent: `As an expert resume writer, improve the following %s for a %s professional.

Current content:
%s

Make it more impactful and quantifiable, and align it with industry standards and keywords. Keep it concise. Return only the improved text.`,

	CoverLetter: `Write a cover letter for the %s position at %s.

Job description:
%s

Candidate background:
%s

Target industry: %s

Highlight the candidate's most relevant skills and experience for this specific role, show enthusiasm for the company, and include a clear call to action. Format as a business letter in markdown.`,

	IndustryInsights: `Analyze the current state of the %s industry.

Provide:
- salaryRanges: at least 5 common roles with min, max, and median salary in USD and a representative location
- growthRate: annual growth rate as a percentage
- demandLevel: one of HIGH, MEDIUM, LOW
- topSkills: the 5 most in-demand skills
- marketOutlook: one of POSITIVE, NEUTRAL, NEGATIVE
- keyTrends: the 5 most significant current trends
- recommendedSkills: 5 skills worth learning now

Growth rate must be a number, not a string. Use realistic current market data.`,
}

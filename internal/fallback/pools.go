package fallback

import "github.com/TanmaySingh007/AI-Interview-BOT/internal/interview"

// questionPools holds 15 questions per known role. Unrecognized roles fall
// back to the generic pool.
var questionPools = map[string][]string{
	"Software Engineer": {
		"Can you walk us through a challenging technical problem you've solved recently?",
		"How do you approach debugging complex issues in production?",
		"What's your experience with version control systems like Git?",
		"How do you stay updated with the latest technologies and best practices?",
		"Can you describe a time when you had to work with a difficult team member?",
		"What's your approach to code review and ensuring code quality?",
		"How do you handle technical debt in your projects?",
		"Can you explain a time when you had to learn a new technology quickly?",
		"What's your experience with testing and test-driven development?",
		"How do you approach system design and architecture decisions?",
		"Can you describe a time when you had to optimize performance?",
		"What's your experience with cloud platforms and deployment?",
		"How do you handle security considerations in your code?",
		"Can you explain a time when you had to refactor legacy code?",
		"What's your approach to documentation and knowledge sharing?",
	},
	"Data Scientist": {
		"Can you explain a machine learning project you've worked on from start to finish?",
		"How do you handle missing or inconsistent data in your analysis?",
		"What's your experience with different machine learning algorithms?",
		"How do you validate your models and ensure they're not overfitting?",
		"Can you describe a time when your analysis led to actionable business insights?",
		"What's your approach to feature engineering and selection?",
		"How do you handle imbalanced datasets?",
		"Can you explain a time when you had to explain complex results to non-technical stakeholders?",
		"What's your experience with deep learning frameworks?",
		"How do you approach A/B testing and statistical significance?",
		"What's your experience with big data technologies?",
		"How do you handle model interpretability and explainability?",
		"Can you describe a time when you had to work with messy, unstructured data?",
		"What's your approach to model deployment and monitoring?",
		"How do you stay updated with the latest ML research and techniques?",
	},
	"Product Manager": {
		"Can you walk us through a product you've managed from conception to launch?",
		"How do you prioritize features when resources are limited?",
		"What's your approach to gathering and analyzing user feedback?",
		"How do you handle conflicts between different stakeholders?",
		"Can you describe a time when you had to make a difficult product decision?",
		"What's your experience with agile methodologies and sprint planning?",
		"How do you approach competitive analysis and market research?",
		"Can you explain a time when you had to pivot a product strategy?",
		"What's your approach to defining and measuring product success?",
		"How do you handle technical constraints from engineering teams?",
		"What's your experience with user research and usability testing?",
		"How do you approach pricing strategy and business model decisions?",
		"Can you describe a time when you had to manage a product crisis?",
		"What's your approach to building and maintaining product roadmaps?",
		"How do you handle feedback from executives and board members?",
	},
	"UX Designer": {
		"Can you walk us through your design process for a recent project?",
		"How do you conduct user research and incorporate findings into your designs?",
		"What's your approach to creating wireframes and prototypes?",
		"How do you handle feedback from stakeholders and users?",
		"Can you describe a time when you had to design for accessibility?",
		"What's your experience with design systems and component libraries?",
		"How do you approach user testing and usability evaluation?",
		"Can you explain a time when you had to balance user needs with business requirements?",
		"What's your approach to information architecture and navigation design?",
		"How do you handle design critiques and feedback sessions?",
		"What's your experience with different design tools and software?",
		"How do you approach responsive design and cross-platform consistency?",
		"Can you describe a time when you had to design for a complex workflow?",
		"What's your approach to visual design and brand consistency?",
		"How do you stay updated with design trends and best practices?",
	},
	"DevOps Engineer": {
		"Can you describe your experience with CI/CD pipelines?",
		"How do you handle infrastructure scaling and monitoring?",
		"What's your experience with containerization and orchestration tools?",
		"How do you approach security in your infrastructure setup?",
		"Can you describe a time when you had to troubleshoot a production issue?",
		"What's your experience with cloud platforms like AWS, Azure, or GCP?",
		"How do you approach infrastructure as code and automation?",
		"Can you explain a time when you had to implement disaster recovery?",
		"What's your approach to logging and observability?",
		"How do you handle configuration management and secrets?",
		"What's your experience with monitoring and alerting systems?",
		"How do you approach performance optimization and capacity planning?",
		"Can you describe a time when you had to migrate infrastructure?",
		"What's your approach to backup and data protection?",
		"How do you stay updated with DevOps tools and practices?",
	},
}

var genericQuestions = []string{
	"Can you tell us about your relevant experience for this position?",
	"What are your key strengths that make you a good fit for this role?",
	"How do you handle challenges and pressure in the workplace?",
	"Can you describe a time when you had to learn something new quickly?",
	"What are your career goals and how does this position align with them?",
	"How do you approach problem-solving in your work?",
	"Can you describe a time when you had to work with a difficult colleague?",
	"What's your approach to time management and prioritization?",
	"How do you handle feedback and criticism?",
	"Can you describe a time when you exceeded expectations?",
	"What's your experience with remote work and collaboration?",
	"How do you approach continuous learning and skill development?",
	"Can you describe a time when you had to adapt to change?",
	"What's your approach to building relationships with stakeholders?",
	"How do you measure success in your work?",
}

var allSkills = []string{
	"Communication", "Problem Solving", "Technical Knowledge", "Critical Thinking",
	"Adaptability", "Leadership", "Strategic Thinking", "Creativity", "User Focus",
	"Collaboration", "Time Management", "Risk Assessment", "Innovation", "Analytics",
}

var allStrengths = []string{
	"Clear articulation", "Relevant experience", "Structured thinking", "Innovative approach",
	"Strong analytical skills", "Effective communication", "Deep technical knowledge",
	"Strategic approach", "Clear problem definition", "Innovative design thinking",
}

var allWeaknesses = []string{
	"Could provide more specific examples", "Time management could improve",
	"Could elaborate on implementation details", "Risk assessment needs improvement",
	"Could improve presentation skills", "More examples would strengthen response",
	"Could provide more quantitative metrics", "Risk mitigation needs detail",
}

// evaluationTemplates provide the justification text for a generated
// evaluation; the list fields are resampled from the pools above.
var evaluationTemplates = []string{
	"Demonstrated solid understanding with room for growth in specific areas.",
	"Showed good potential with some areas requiring development.",
	"Excellent technical foundation with strong communication skills.",
	"Good strategic thinking with room for improvement in execution details.",
	"Excellent creative and technical skills with strong user focus.",
}

// ratingSlots bias the generated rating toward positive outcomes: three of
// the five weighted slots are Strong.
var ratingSlots = []interview.Rating{
	interview.RatingStrong,
	interview.RatingModerate,
	interview.RatingStrong,
	interview.RatingModerate,
	interview.RatingStrong,
}

// errorTierEvaluations are the two canned records used when the
// transcription stage failed. This is a deliberately lower-information tier
// than an evaluate-stage parse failure.
var errorTierEvaluations = []interview.EvaluationRecord{
	{
		Skills:        []string{"Communication", "Problem Solving"},
		Strengths:     []string{"Attempted to answer", "Showed engagement"},
		Weaknesses:    []string{"Technical processing error occurred", "Unable to assess content"},
		Rating:        interview.RatingUnassessable,
		Justification: "Technical error prevented proper evaluation. Manual review recommended.",
	},
	{
		Skills:        []string{"Engagement", "Communication"},
		Strengths:     []string{"Participated in interview", "Responded to question"},
		Weaknesses:    []string{"Analysis failed due to technical issues", "Content assessment unavailable"},
		Rating:        interview.RatingUnassessable,
		Justification: "Technical processing failed. Human review required for proper assessment.",
	},
}

// overallTemplate is an overall-summary base; insights and recommendations
// are resampled per session.
type overallTemplate struct {
	assessment          string
	strengths           []string
	areasForImprovement []string
	finalRecommendation string
}

var overallTemplates = []overallTemplate{
	{
		assessment:          "Strong Candidate",
		strengths:           []string{"Technical expertise", "Clear communication", "Structured thinking"},
		areasForImprovement: []string{"Could provide more specific examples", "Time management skills", "Risk assessment capabilities"},
		finalRecommendation: "Proceed to next round",
	},
	{
		assessment:          "Promising Candidate",
		strengths:           []string{"Adaptability", "Learning ability", "Team collaboration"},
		areasForImprovement: []string{"Technical depth", "Experience level", "Strategic thinking"},
		finalRecommendation: "Consider with development plan",
	},
	{
		assessment:          "Excellent Fit",
		strengths:           []string{"Technical excellence", "Leadership qualities", "Strategic vision"},
		areasForImprovement: []string{"Minor presentation refinements", "Could expand network", "Industry knowledge depth"},
		finalRecommendation: "Strong hire recommendation",
	},
}

var allInsights = []string{
	"Demonstrated solid technical foundation",
	"Showed strong communication skills",
	"Exhibited problem-solving abilities",
	"Good potential for growth",
	"Showed adaptability",
	"Demonstrated learning mindset",
	"Exceptional technical skills",
	"Strong leadership potential",
	"Excellent communication",
	"Innovative thinking approach",
	"Strong analytical capabilities",
	"Effective time management",
	"Good team collaboration",
	"Strategic thinking skills",
}

var allRecommendations = []string{
	"Consider for next round",
	"Assess technical depth further",
	"Evaluate cultural fit",
	"Consider for development role",
	"Provide mentorship opportunities",
	"Assess long-term potential",
	"Strongly recommend hiring",
	"Consider leadership opportunities",
	"Fast-track through process",
	"Schedule follow-up interview",
	"Request additional references",
	"Consider probationary period",
}

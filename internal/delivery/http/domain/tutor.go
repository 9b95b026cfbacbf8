package domain

var (
	TUTOR_MATERIAL_REQUIRED       = "Material is required"
	TUTOR_MESSAGES_REQUIRED       = "Messages are required"
	TUTOR_LESSON_CONTEXT_REQUIRED = "Lesson context is required"
	TUTOR_QUESTION_REQUIRED       = "Question is required"
	TUTOR_UNKNOWN_ACTION          = "Unknown action"
	TUTOR_ANALYSIS_PARSE_FAILED   = "Failed to parse analysis"
	TUTOR_INVALID_REQUEST         = "Invalid request body"
	TUTOR_SESSION_ID_REQUIRED     = "session_id is required"
)

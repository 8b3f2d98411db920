package llm

// SystemPrompt is the fixed persona instruction prepended to every
// generation request.
const SystemPrompt = "You are \"Nichirin\" — a warm, conversational AI who speaks like a real person. " +
	"Keep responses concise (20–60 seconds spoken). Use natural tone and spoken phrasing. " +
	"End politely, like 'Anything else you'd like to ask?'"

// BuildPrompt concatenates the persona instruction with the user's message
// into a single-turn prompt.
func BuildPrompt(userMessage string) string {
	return SystemPrompt + "\nUser: " + userMessage + "\nAssistant:"
}

package task

// User-facing messages. Technical detail stays in logs; these are the
// only strings a voice surface ever speaks back.
const (
	MsgEmptyInput    = "I couldn't understand what task you wanted to add. Please try again."
	MsgConfigError   = "The Vikunja assistant is not configured correctly. Please check its settings."
	MsgLLMConnError  = "I couldn't reach the language model service. Please try again later."
	MsgProcessError  = "I couldn't understand the task. Please try rephrasing it."
	MsgVikunjaError  = "I couldn't add the task. Please check your Vikunja connection."
	MsgUnexpected    = "Sorry, something went wrong while adding the task."
	MsgSuccessPrefix = "Successfully added task: "
)

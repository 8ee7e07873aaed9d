package prompts

const (
	// ChatSystemInstruction はチャットセッション作成時に一度だけ渡すシステム指示です。
	ChatSystemInstruction = "You are a helpful assistant for screenwriters and filmmakers. Answer questions about scriptwriting, cinematography, storytelling, or the storyboard generation process."

	// ChatGreeting は会話ログが空の状態で開いたときに差し込む挨拶です。
	ChatGreeting = "Hello! I'm your creative assistant. How can I help you with your script today?"

	// ChatApology はチャット要求が失敗したときにボットの発言として追加する定型文です。
	ChatApology = "Sorry, I'm having trouble connecting. Please try again later."
)

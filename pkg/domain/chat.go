package domain

// Sender はチャットメッセージの送信者です。
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// ChatMessage は表示用の会話ログ1件です。
type ChatMessage struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Sender Sender `json:"sender"`
}

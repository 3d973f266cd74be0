package relay

// PushMessage тело запроса к локальному релею
type PushMessage struct {
	ChatID    int64  `json:"chat_id"`
	UserName  string `json:"user_name"`
	Text      string `json:"text"`
	Ts        string `json:"ts"`
	MessageID string `json:"message_id"`
}

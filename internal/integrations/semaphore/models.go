package semaphore

// Message сообщение в ответе шлюза на отправку
type Message struct {
	MessageID  int64  `json:"message_id"`
	Recipient  string `json:"recipient"`
	Message    string `json:"message"`
	SenderName string `json:"sender_name"`
	Network    string `json:"network"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
}

// Response ответ шлюза на отправку SMS
type Response struct {
	Messages []Message
}

package domain

type WebhookRequest struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Source    string `json:"source"`
	Ip        string `json:"ip"`
	UserAgent string `json:"userAgent,omitempty"`
}

type ChatResponse struct {
	Success bool   `json:"success"`
	Reply   string `json:"reply"`
}

package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type StaffingAlertMailData struct {
	Message string `json:"message"`
	Date    string `json:"date"`
}

package domain

const (
	MailCreateUser           = "create_user"
	MailResetPassword        = "reset_password"
	MailChangeEmail          = "change_email"
	MailReservationConfirmed = "reservation_confirmed"
)

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type CreateUserMailData struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type ResetPasswordMailData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

type ChangeEmailMailData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

type ReservationConfirmedMailData struct {
	CustomerName     string `json:"customerName"`
	GroupName        string `json:"groupName"`
	StartDate        string `json:"startDate"`
	EndDate          string `json:"endDate"`
	ParticipantCount int32  `json:"participantCount"`
}

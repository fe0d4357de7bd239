package user

type SignupRequest struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	FullName      string `json:"full_name"`
	Qualification string `json:"qualification"`
	DOB           string `json:"dob"`
	ReminderTime  string `json:"reminder_time"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Message  string `json:"message"`
	Role     string `json:"role"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type BulkUpdateRequest struct {
	UserIDs []uint `json:"user_ids"`
	Status  string `json:"status"`
}

type UserResponse struct {
	ID            uint   `json:"id"`
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	Qualification string `json:"qualification,omitempty"`
	DOB           string `json:"dob,omitempty"`
	LastSeen      string `json:"last_seen,omitempty"`
	ReminderTime  string `json:"reminder_time,omitempty"`
	Status        Status `json:"status"`
}

type ProfileResponse struct {
	ID            uint   `json:"id"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	Name          string `json:"name,omitempty"`
	FullName      string `json:"full_name,omitempty"`
	Qualification string `json:"qualification,omitempty"`
	DOB           string `json:"dob,omitempty"`
	ReminderTime  string `json:"reminder_time,omitempty"`
}

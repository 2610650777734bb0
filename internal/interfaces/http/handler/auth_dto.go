package handler

// RegisterRequest is the body of POST /register. Presence checks run
// in the service so the user sees the field-order-specific messages.
type RegisterRequest struct {
	Username     string `json:"username" form:"username"`
	Password     string `json:"password" form:"password"`
	Confirmation string `json:"confirmation" form:"confirmation"`
}

// LoginRequest is the body of POST /login
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// UserResponse is the user payload returned by auth endpoints
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// FormField describes one input of a form descriptor
type FormField struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// FormDescriptor tells clients which fields to render for GET
// /register and GET /login.
type FormDescriptor struct {
	Action string      `json:"action"`
	Method string      `json:"method"`
	Fields []FormField `json:"fields"`
}

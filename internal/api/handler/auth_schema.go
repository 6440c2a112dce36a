package handler

// errorResponse documents the standard error envelope in swagger output; the
// actual rendering happens in the central error handler.
type errorResponse struct {
	Error string `json:"error"`
}

type signupRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Name     string `json:"name"     validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

type signupResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// signinRequest documents the signin body for swagger; the local strategy
// consumes the body before the handler runs.
type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signinResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// refreshRequest documents the refresh body for swagger; the refresh strategy
// consumes the body before the handler runs.
type refreshRequest struct {
	Refresh string `json:"refresh"`
}

// refreshResponse intentionally omits role: the refresh flow returns only
// what changed.
type refreshResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type exchangeRequest struct {
	Code string `json:"code" validate:"required"`
}

type messageResponse struct {
	Message string `json:"message"`
}

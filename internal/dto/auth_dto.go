package dto

type SignInRequest struct {
	IDToken string `json:"idToken"`
}

type ProfileResponse struct {
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

type SignOutResponse struct {
	Message string `json:"message"`
}

type AuthErrorResponse struct {
	Error string `json:"error"`
}

package model

type RegisterRequest struct {
	Name            string `json:"name"`
	Password        string `json:"password"`
	GuardianContact string `json:"guardianContact"`
	GuardianEmail   string `json:"guardianEmail"`
	Region          string `json:"region"`
}

type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type TokenPair struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

type LoginResponse struct {
	Message      string `json:"message"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

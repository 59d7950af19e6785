package response

type UserResponseDTO struct {
	ID       uint   `json:"id"`
	TenantID string `json:"tenantId"`
	Email    string `json:"email"`
	Prenom   string `json:"prenom"`
	Nom      string `json:"nom"`
	Role     string `json:"role"`
	Actif    bool   `json:"actif"`
}

type AuthResponseDTO struct {
	Token        string          `json:"token"`
	RefreshToken string          `json:"refreshToken"`
	User         UserResponseDTO `json:"user"`
}

package mapper

import (
	"api/internal/api/handler/response"
	"api/internal/api/models"
)

// UserMapper handles mapping between user models and DTOs
type UserMapper interface {
	EntityToUserResponse(user models.User) response.UserResponseDTO
}

// UserMapperImpl implements UserMapper
type UserMapperImpl struct{}

// NewUserMapper creates a new UserMapper instance
func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

// EntityToUserResponse maps a user model to its response DTO
func (m *UserMapperImpl) EntityToUserResponse(user models.User) response.UserResponseDTO {
	return response.UserResponseDTO{
		ID:       user.ID,
		TenantID: user.TenantID,
		Email:    user.Email,
		Prenom:   user.Prenom,
		Nom:      user.Nom,
		Role:     string(user.Role),
		Actif:    user.Actif,
	}
}

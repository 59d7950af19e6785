package request

// CreateConveyorSystem is the request for creating a conveyor system
type CreateConveyorSystem struct {
	Name        string `json:"name" validate:"required"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// UpdateConveyorSystem is the request for patching a conveyor system
type UpdateConveyorSystem struct {
	Name        *string `json:"name,omitempty"`
	Color       *string `json:"color,omitempty"`
	Description *string `json:"description,omitempty"`
}

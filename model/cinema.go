package model

type Cinema struct {
	DTO
	Name     string `gorm:"not null" validate:"required" json:"name"`
	Slug     string `gorm:"uniqueIndex;size:120" json:"slug"`
	Province string `json:"province"`
	Address  string `json:"address"`
	Active   *bool  `gorm:"default:true" json:"isActive"`
	Rooms    []Room `gorm:"foreignKey:CinemaId" json:"rooms,omitempty"`
}

type FilterCinemaInput struct {
	Pagination
	SearchKey string `query:"searchKey"`
	Province  string `query:"province"`
}

type CreateCinemaInput struct {
	Name     string `json:"name" validate:"required,min=2"`
	Province string `json:"province" validate:"required"`
	Address  string `json:"address" validate:"required"`
}

type EditCinemaInput struct {
	Name     *string `json:"name" validate:"omitempty,min=2"`
	Province *string `json:"province"`
	Address  *string `json:"address"`
	Active   *bool   `json:"isActive"`
}

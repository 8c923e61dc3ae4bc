package models

// Actor represents an actor managed by the agency
type Actor struct {
	ID     int64  `json:"id" db:"id"`
	Name   string `json:"name" db:"name"`
	Age    int    `json:"age" db:"age"`
	Gender string `json:"gender" db:"gender"`
}

// TableName returns the table name for the Actor model
func (Actor) TableName() string {
	return "actors"
}

// NewActor creates a new Actor instance
func NewActor(name string, age int, gender string) *Actor {
	return &Actor{
		Name:   name,
		Age:    age,
		Gender: gender,
	}
}

package models

type Cat struct {
	Id                int64   `json:"id"`
	Name              string  `json:"name" binding:"required,min=1,max=50"`
	YearsOfExperience int     `json:"yearsOfExperience" binding:"gte=0"`
	Breed             string  `json:"breed" binding:"required,max=120"`
	Salary            float64 `json:"salary" binding:"required,gt=0"`
	// MissionId is 0 while the cat is unassigned. It is cleared again when
	// the linked mission completes.
	MissionId int64 `json:"missionId,omitempty"`
}

type CatUpdate struct {
	Salary float64 `json:"salary" binding:"required,gt=0"`
}

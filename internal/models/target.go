package models

type Target struct {
	Id        int64  `json:"id"`
	MissionId int64  `json:"missionId"`
	Name      string `json:"name"`
	Country   string `json:"country"`
	Notes     string `json:"notes"`
	Completed bool   `json:"completed"`
}

type TargetCreate struct {
	Name    string `json:"name" binding:"required,min=1,max=100"`
	Country string `json:"country" binding:"required,min=1,max=100"`
	Notes   string `json:"notes"`
}

type TargetUpdate struct {
	Notes string `json:"notes" binding:"required"`
}

package models

type Mission struct {
	Id int64 `json:"id"`
	// CatId survives mission completion as a record of who completed it,
	// even though the cat's own MissionId is cleared at that point.
	CatId     int64    `json:"catId,omitempty"`
	Targets   []Target `json:"targets"`
	Completed bool     `json:"completed"`
}

// MissionCreate fixes the target set at creation time: targets cannot be
// added or removed afterwards.
type MissionCreate struct {
	Targets []TargetCreate `json:"targets" binding:"required,min=1,max=3,dive"`
}

type MissionAssignment struct {
	CatId int64 `json:"catId" binding:"required,gt=0"`
}

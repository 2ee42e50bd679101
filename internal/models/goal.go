package models

type Goal struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

func CloneGoals(goals []Goal) []Goal {
	return append([]Goal{}, goals...)
}

package models

type Macros struct {
	Carb    float64 `json:"carb"`
	Fat     float64 `json:"fat"`
	Protein float64 `json:"protein"`
}

func (macros Macros) Add(other Macros) Macros {
	return Macros{
		Carb:    macros.Carb + other.Carb,
		Fat:     macros.Fat + other.Fat,
		Protein: macros.Protein + other.Protein,
	}
}

func (macros Macros) Sub(other Macros) Macros {
	return Macros{
		Carb:    nonNegative(macros.Carb - other.Carb),
		Fat:     nonNegative(macros.Fat - other.Fat),
		Protein: nonNegative(macros.Protein - other.Protein),
	}
}

type FoodItem struct {
	Title    string  `json:"title"`
	Macros   Macros  `json:"macros"`
	Calories float64 `json:"calories"`
}

type ExerciseSet struct {
	Weight float64 `json:"weight"`
	Set    int     `json:"set"`
	Reps   int     `json:"reps"`
}

type Exercise struct {
	Title    string        `json:"title"`
	SetCount int           `json:"set_count"`
	Sets     []ExerciseSet `json:"sets,omitempty"`
	Weight   float64       `json:"weight,omitempty"`
}

// DayWorkout is a workout plan entry embedded in a day's health record.
type DayWorkout struct {
	Title     string     `json:"workout_title"`
	Exercises []Exercise `json:"exercises"`
	Status    bool       `json:"status"`
}

// HealthRecord is one calendar day of logged metrics. The *Diff fields and
// PreviousDay are computed by the backend and never sent back.
type HealthRecord struct {
	Calories     float64      `json:"day_calories"`
	Steps        float64      `json:"day_steps"`
	Sleep        float64      `json:"day_sleep"`
	Water        float64      `json:"day_water"`
	Weight       float64      `json:"day_weight"`
	Macros       Macros       `json:"day_macros"`
	Food         []FoodItem   `json:"day_food"`
	Workouts     []DayWorkout `json:"day_workout_plan"`
	CaloriesDiff float64      `json:"day_calories_diff"`
	StepsDiff    float64      `json:"day_steps_diff"`
	SleepDiff    float64      `json:"day_sleep_diff"`
	WaterDiff    float64      `json:"day_water_diff"`
	WeightDiff   float64      `json:"day_weight_diff"`
	PreviousDay  string       `json:"previous_day"`
}

// HealthRecordInput is the writable subset of a HealthRecord.
type HealthRecordInput struct {
	Calories float64      `json:"day_calories"`
	Steps    float64      `json:"day_steps"`
	Sleep    float64      `json:"day_sleep"`
	Water    float64      `json:"day_water"`
	Weight   float64      `json:"day_weight"`
	Macros   Macros       `json:"day_macros"`
	Food     []FoodItem   `json:"day_food"`
	Workouts []DayWorkout `json:"day_workout_plan"`
}

// EmptyHealthRecord is the all-zero record used for days without data.
func EmptyHealthRecord() HealthRecord {
	return HealthRecord{
		Food:     []FoodItem{},
		Workouts: []DayWorkout{},
	}
}

func (record HealthRecord) Input() HealthRecordInput {
	cloned := record.Clone()
	return HealthRecordInput{
		Calories: cloned.Calories,
		Steps:    cloned.Steps,
		Sleep:    cloned.Sleep,
		Water:    cloned.Water,
		Weight:   cloned.Weight,
		Macros:   cloned.Macros,
		Food:     cloned.Food,
		Workouts: cloned.Workouts,
	}
}

func (record HealthRecord) Clone() HealthRecord {
	cloned := record
	cloned.Food = append([]FoodItem{}, record.Food...)
	cloned.Workouts = make([]DayWorkout, len(record.Workouts))
	for index, workout := range record.Workouts {
		cloned.Workouts[index] = workout.Clone()
	}
	return cloned
}

func (workout DayWorkout) Clone() DayWorkout {
	cloned := workout
	cloned.Exercises = make([]Exercise, len(workout.Exercises))
	for index, exercise := range workout.Exercises {
		exercise.Sets = append([]ExerciseSet(nil), exercise.Sets...)
		cloned.Exercises[index] = exercise
	}
	return cloned
}

func nonNegative(value float64) float64 {
	if value < 0 {
		return 0
	}
	return value
}

package workouts

const (
	DefaultSets = 3
	DefaultReps = 10

	fullBodyDurationMin = 50
	compoundDurationMin = 40
	recoveryDurationMin = 30
)

type Preset struct {
	Name                 string
	Exercises            []Exercise
	EstimatedDurationMin int
}

// FullBodyPreset is suggested to users without any workout history.
func FullBodyPreset() Preset {
	return Preset{
		Name: "Full Body",
		Exercises: []Exercise{
			{Name: "Back Squat", MuscleGroup: "legs", Sets: DefaultSets, Reps: DefaultReps},
			{Name: "Bench Press", MuscleGroup: "chest", Sets: DefaultSets, Reps: DefaultReps},
			{Name: "Bent-Over Row", MuscleGroup: "back", Sets: DefaultSets, Reps: DefaultReps},
			{Name: "Overhead Press", MuscleGroup: "shoulders", Sets: DefaultSets, Reps: DefaultReps},
			{Name: "Romanian Deadlift", MuscleGroup: "legs", Sets: DefaultSets, Reps: DefaultReps},
		},
		EstimatedDurationMin: fullBodyDurationMin,
	}
}

// CompoundPreset covers chest, back and legs with one compound lift each.
func CompoundPreset() Preset {
	return Preset{
		Name: "Compound Basics",
		Exercises: []Exercise{
			{Name: "Bench Press", MuscleGroup: "chest", Sets: DefaultSets, Reps: DefaultReps},
			{Name: "Barbell Row", MuscleGroup: "back", Sets: DefaultSets, Reps: DefaultReps},
			{Name: "Back Squat", MuscleGroup: "legs", Sets: DefaultSets, Reps: DefaultReps},
		},
		EstimatedDurationMin: compoundDurationMin,
	}
}

func RecoveryPreset() Preset {
	return Preset{
		Name: "Active Recovery",
		Exercises: []Exercise{
			{Name: "Hip Mobility Flow", MuscleGroup: "mobility", Sets: 2, Reps: 12},
			{Name: "Goblet Squat (light)", MuscleGroup: "legs", Sets: 2, Reps: 12},
			{Name: "Band Pull-Apart", MuscleGroup: "back", Sets: 2, Reps: 12},
			{Name: "Dead Bug", MuscleGroup: "core", Sets: 2, Reps: 12},
		},
		EstimatedDurationMin: recoveryDurationMin,
	}
}

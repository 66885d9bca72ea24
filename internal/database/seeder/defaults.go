package seeder

func Defaults() []Seeder {
	return []Seeder{
		DemoUserSeeder{},
		WellnessSeeder{},
	}
}

package seeder

func Defaults() []Seeder {
	return []Seeder{
		RequisitionsSeeder{},
		ApplicationsSeeder{},
	}
}

package seeds

import (
	schools "eduhost_backend/internals/seeds/schools"
	users "eduhost_backend/internals/seeds/users"

	"gorm.io/gorm"
)

// RunAllSeeds: data demo untuk environment lokal/staging. Urutan penting -
// user nyantol ke sekolah via subdomain, jadi sekolah duluan.
func RunAllSeeds(db *gorm.DB) {
	schools.SeedSchoolsFromJSON(db, "internals/seeds/schools/data_schools.json")
	users.SeedUsersFromJSON(db, "internals/seeds/users/data_users.json")
}

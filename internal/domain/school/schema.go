package school

import "gorm.io/gorm"

// Models lists every table in migration order.
func Models() []any {
	return []any{
		&Department{},
		&Instructor{},
		&OfficeAssignment{},
		&Course{},
		&CourseAssignment{},
		&Student{},
		&Enrollment{},
	}
}

// Configure registers the custom join model for Instructor.Courses. It must run
// before the association is preloaded or migrated.
func Configure(db *gorm.DB) error {
	return db.SetupJoinTable(&Instructor{}, "Courses", &CourseAssignment{})
}

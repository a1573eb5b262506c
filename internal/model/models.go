package model

// All lists the models managed by AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Interview{},
		&Answer{},
		&UserProgress{},
		&SavedQuestionSet{},
	}
}

package resource

// Schema parameterizes the generic resource client and screen controller for
// one managed collection: where it lives on the API, how to read a record's
// identifier, which fields the client-side search matches, and what a fresh
// create draft looks like.
type Schema[T any] struct {
	// Collection is the API collection path segment (e.g. "competencies").
	Collection string

	// Title is the human-facing name used in banners and CLI output.
	Title string

	// ID extracts the record identifier; zero means "not yet created".
	ID func(T) int64

	// SearchText returns the field values matched by the client-side
	// substring filter, in display order.
	SearchText func(T) []string

	// DefaultDraft returns the pending form draft used in create mode.
	DefaultDraft func() T
}

// Competencies describes the competency collection.
func Competencies() Schema[Competency] {
	return Schema[Competency]{
		Collection: "competencies",
		Title:      "competency",
		ID:         func(c Competency) int64 { return c.ID },
		SearchText: func(c Competency) []string { return []string{c.Type, c.Description} },
		DefaultDraft: func() Competency {
			return Competency{Status: StatusActive}
		},
	}
}

// Languages describes the language collection.
func Languages() Schema[Language] {
	return Schema[Language]{
		Collection: "languages",
		Title:      "language",
		ID:         func(l Language) int64 { return l.ID },
		SearchText: func(l Language) []string { return []string{l.Name, l.Status} },
		DefaultDraft: func() Language {
			return Language{Status: StatusActive}
		},
	}
}

// Trainings describes the training collection. The API exposes it under the
// singular "training" path.
func Trainings() Schema[Training] {
	return Schema[Training]{
		Collection: "training",
		Title:      "training",
		ID:         func(t Training) int64 { return t.ID },
		SearchText: func(t Training) []string { return []string{t.Description, t.Level, t.Institution} },
		DefaultDraft: func() Training {
			return Training{Status: StatusActive}
		},
	}
}

// Positions describes the job position collection.
func Positions() Schema[Position] {
	return Schema[Position]{
		Collection: "positions",
		Title:      "position",
		ID:         func(p Position) int64 { return p.ID },
		SearchText: func(p Position) []string { return []string{p.Name, p.RiskLevel, p.Status} },
		DefaultDraft: func() Position {
			return Position{Status: StatusActive}
		},
	}
}

// Candidates describes the candidate collection.
func Candidates() Schema[Candidate] {
	return Schema[Candidate]{
		Collection: "candidates",
		Title:      "candidate",
		ID:         func(c Candidate) int64 { return c.ID },
		SearchText: func(c Candidate) []string { return []string{c.Name, c.DesiredPosition} },
		DefaultDraft: func() Candidate {
			return Candidate{Status: StatusActive}
		},
	}
}

// Employees describes the employee collection.
func Employees() Schema[Employee] {
	return Schema[Employee]{
		Collection: "employees",
		Title:      "employee",
		ID:         func(e Employee) int64 { return e.ID },
		SearchText: func(e Employee) []string { return []string{e.Name, e.Department, e.Position} },
		DefaultDraft: func() Employee {
			return Employee{Status: StatusActive}
		},
	}
}

// WorkExperiences describes the work-experience collection.
func WorkExperiences() Schema[WorkExperience] {
	return Schema[WorkExperience]{
		Collection: "work-experience",
		Title:      "work experience",
		ID:         func(w WorkExperience) int64 { return w.ID },
		SearchText: func(w WorkExperience) []string { return []string{w.UserName, w.Institution, w.Position} },
		DefaultDraft: func() WorkExperience {
			return WorkExperience{}
		},
	}
}

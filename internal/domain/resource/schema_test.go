package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchemas_CollectionsAndIDs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "competencies", Competencies().Collection)
	assert.Equal(t, "languages", Languages().Collection)
	// The API exposes training under the singular path.
	assert.Equal(t, "training", Trainings().Collection)
	assert.Equal(t, "positions", Positions().Collection)
	assert.Equal(t, "candidates", Candidates().Collection)
	assert.Equal(t, "employees", Employees().Collection)
	assert.Equal(t, "work-experience", WorkExperiences().Collection)

	assert.Equal(t, int64(7), Competencies().ID(Competency{ID: 7}))
	assert.Equal(t, int64(8), Candidates().ID(Candidate{ID: 8}))
	assert.Zero(t, Employees().ID(Employee{}))
}

func TestSchemas_SearchText(t *testing.T) {
	t.Parallel()

	competency := Competency{Type: "Teamwork", Description: "Works well with others"}
	assert.Equal(t, []string{"Teamwork", "Works well with others"}, Competencies().SearchText(competency))

	training := Training{Description: "Go basics", Level: "intermediate", Institution: "Platzi"}
	assert.Equal(t, []string{"Go basics", "intermediate", "Platzi"}, Trainings().SearchText(training))

	exp := WorkExperience{UserName: "Ana", Institution: "Acme", Position: "Dev"}
	assert.Equal(t, []string{"Ana", "Acme", "Dev"}, WorkExperiences().SearchText(exp))
}

// Fresh create drafts start active; work experience has no status field.
func TestSchemas_DefaultDrafts(t *testing.T) {
	t.Parallel()

	assert.Equal(t, StatusActive, Competencies().DefaultDraft().Status)
	assert.Equal(t, StatusActive, Languages().DefaultDraft().Status)
	assert.Equal(t, StatusActive, Trainings().DefaultDraft().Status)
	assert.Equal(t, StatusActive, Positions().DefaultDraft().Status)
	assert.Equal(t, StatusActive, Candidates().DefaultDraft().Status)
	assert.Equal(t, StatusActive, Employees().DefaultDraft().Status)

	draft := WorkExperiences().DefaultDraft()
	assert.Zero(t, draft.ID)
}

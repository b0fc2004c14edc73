package editor

import (
	"context"
	"errors"
	"sync"
	"testing"

	"cvbuilder_backend/internal/services/dto"
	"cvbuilder_backend/internal/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSaver struct {
	calls []dto.ResumeValues
	err   error
}

func (s *recordingSaver) Save(ctx context.Context, userID string, values dto.ResumeValues) (*dto.ResumeResponse, error) {
	s.calls = append(s.calls, values)
	if s.err != nil {
		return nil, s.err
	}
	saved := values.Clone()
	if saved.ID == "" {
		saved.ID = "resume-1"
	}
	if saved.Photo.Kind == dto.PhotoPending {
		saved.Photo = dto.PhotoFromURL("https://blob.test/images/resume_photos/p.png")
	}
	return &dto.ResumeResponse{ResumeValues: saved}, nil
}

func strPtr(s string) *string { return &s }

func TestSteps_OrderAndTitles(t *testing.T) {
	want := []Step{"general-info", "personal-info", "career-goals", "education", "work-experience", "skills", "projects", "hobbies"}
	assert.Equal(t, want, Steps())
	for _, s := range Steps() {
		assert.NotEmpty(t, s.Title(), s)
	}
	assert.Equal(t, "Dự án", StepProjects.Title())
	assert.Equal(t, -1, Step("nope").Index())
}

func TestEditor_Navigation(t *testing.T) {
	e := New(dto.ResumeValues{}, &recordingSaver{})
	assert.Equal(t, StepGeneralInfo, e.Current())

	assert.False(t, e.Prev())
	assert.True(t, e.Next())
	assert.Equal(t, StepPersonalInfo, e.Current())

	require.NoError(t, e.GoTo(StepHobbies))
	assert.False(t, e.Next())
	assert.Equal(t, StepHobbies, e.Current())

	assert.ErrorIs(t, e.GoTo("summary"), ErrUnknownStep)
	assert.Equal(t, StepHobbies, e.Current())
}

func TestEditor_InitialStep(t *testing.T) {
	assert.Equal(t, StepSkills, New(dto.ResumeValues{}, nil, WithInitialStep(StepSkills)).Current())
	assert.Equal(t, StepGeneralInfo, New(dto.ResumeValues{}, nil, WithInitialStep("bogus")).Current())
}

func TestEditor_ApplyReplacesOnlyOwnSlice(t *testing.T) {
	e := New(dto.ResumeValues{
		Title:  "CV",
		Skills: []string{"Go"},
		Projects: []dto.ProjectValues{
			{Name: "a"}, {Name: "b"}, {Name: "c"},
		},
	}, &recordingSaver{})

	e.Apply(ProjectsChanged{Projects: []*dto.ProjectValues{nil, {Name: "only"}, nil}})
	e.Apply(SkillsChanged{Skills: []*string{strPtr("Go"), nil, strPtr("SQL")}})

	d := e.Draft()
	require.Len(t, d.Projects, 1)
	assert.Equal(t, "only", d.Projects[0].Name)
	assert.NotNil(t, d.Projects[0].TechStack)
	assert.Equal(t, []string{"Go", "SQL"}, d.Skills)
	assert.Equal(t, "CV", d.Title)

	e.Apply(HobbiesChanged{})
	assert.NotNil(t, e.Draft().Hobbies)
	assert.Empty(t, e.Draft().Hobbies)
}

func TestEditor_PersonalInfoKeepsPhotoUnlessSent(t *testing.T) {
	e := New(dto.ResumeValues{Photo: dto.PhotoFromURL("https://x/p.png")}, nil)

	e.Apply(PersonalInfoChanged{FirstName: "An"})
	assert.Equal(t, dto.PhotoURL, e.Draft().Photo.Kind)

	e.Apply(PersonalInfoChanged{FirstName: "An", Photo: dto.NoPhoto()})
	assert.Equal(t, dto.PhotoNone, e.Draft().Photo.Kind)
}

func TestEditor_StyleChangedKeepsEmptyFields(t *testing.T) {
	e := New(dto.ResumeValues{ColorHex: "#000000", BorderStyle: "square", TemplateType: "minimal", Title: "CV"}, nil, WithInitialStep(StepSkills))

	e.Apply(StyleChanged{ColorHex: "#2563eb"})
	d := e.Draft()
	assert.Equal(t, "#2563eb", d.ColorHex)
	assert.Equal(t, "square", d.BorderStyle)
	assert.Equal(t, "minimal", d.TemplateType)

	e.Apply(StyleChanged{BorderStyle: "circle", TemplateType: "creative"})
	d = e.Draft()
	assert.Equal(t, "circle", d.BorderStyle)
	assert.Equal(t, "creative", d.TemplateType)
	assert.Equal(t, "CV", d.Title)

	// панель оформления не меняет текущий шаг
	assert.Equal(t, StepSkills, e.Current())
	assert.Equal(t, Step(""), StyleChanged{}.Step())
}

func TestEditor_DraftIsACopy(t *testing.T) {
	e := New(dto.ResumeValues{Skills: []string{"Go"}}, nil)
	d := e.Draft()
	d.Skills[0] = "changed"
	assert.Equal(t, "Go", e.Draft().Skills[0])
}

func TestEditor_CommitAdoptsServerID(t *testing.T) {
	saver := &recordingSaver{}
	e := New(dto.ResumeValues{Title: "CV"}, saver)
	e.Apply(PersonalInfoChanged{FirstName: "An", Photo: dto.PhotoFromFile(&dto.PendingFile{Filename: "p.png"})})

	saved, err := e.Commit(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "resume-1", saved.ID)
	assert.Equal(t, "resume-1", e.Draft().ID)
	assert.Equal(t, dto.PhotoURL, e.Draft().Photo.Kind)

	_, err = e.Commit(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, saver.calls, 2)
	assert.Equal(t, "resume-1", saver.calls[1].ID)
}

func TestEditor_CommitValidationFailureSkipsSaver(t *testing.T) {
	saver := &recordingSaver{}
	e := New(dto.ResumeValues{}, saver)
	e.Apply(PersonalInfoChanged{Email: "not-an-email"})

	_, err := e.Commit(context.Background(), "user-1")
	var vErr *validator.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Errors, "email")
	assert.Empty(t, saver.calls)
}

func TestEditor_CommitSaverErrorKeepsDraft(t *testing.T) {
	saver := &recordingSaver{err: errors.New("offline")}
	e := New(dto.ResumeValues{Title: "CV"}, saver)

	_, err := e.Commit(context.Background(), "user-1")
	assert.Error(t, err)
	assert.Empty(t, e.Draft().ID)
}

func TestEditor_ConcurrentReaders(t *testing.T) {
	e := New(dto.ResumeValues{}, nil)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = e.Draft()
				_ = e.Current()
			}
		}()
	}
	for j := 0; j < 100; j++ {
		e.Apply(SummaryChanged{Summary: "s"})
	}
	wg.Wait()
	assert.Equal(t, "s", e.Draft().Summary)
}

func TestDecodeEvent(t *testing.T) {
	evt, err := DecodeEvent(StepProjects, []byte(`{"projects":[null,{"name":"cv","techStack":null}]}`))
	require.NoError(t, err)
	assert.Equal(t, StepProjects, evt.Step())

	e := New(dto.ResumeValues{}, nil)
	e.Apply(evt)
	require.Len(t, e.Draft().Projects, 1)
	assert.Equal(t, []string{}, e.Draft().Projects[0].TechStack)

	evt, err = DecodeEvent(StepPersonalInfo, []byte(`{"firstName":"An","photo":null}`))
	require.NoError(t, err)
	assert.Equal(t, dto.PhotoNone, evt.(PersonalInfoChanged).Photo.Kind)

	_, err = DecodeEvent("nope", []byte(`{}`))
	assert.ErrorIs(t, err, ErrUnknownStep)
}

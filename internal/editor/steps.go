package editor

import "errors"

// Step - шаг многошагового редактора.
type Step string

const (
	StepGeneralInfo    Step = "general-info"
	StepPersonalInfo   Step = "personal-info"
	StepCareerGoals    Step = "career-goals"
	StepEducation      Step = "education"
	StepWorkExperience Step = "work-experience"
	StepSkills         Step = "skills"
	StepProjects       Step = "projects"
	StepHobbies        Step = "hobbies"
)

var ErrUnknownStep = errors.New("unknown editor step")

var steps = []Step{
	StepGeneralInfo,
	StepPersonalInfo,
	StepCareerGoals,
	StepEducation,
	StepWorkExperience,
	StepSkills,
	StepProjects,
	StepHobbies,
}

// Заголовки шагов в интерфейсе
var stepTitles = map[Step]string{
	StepGeneralInfo:    "Thông tin chung",
	StepPersonalInfo:   "Thông tin cá nhân",
	StepCareerGoals:    "Mục tiêu nghề nghiệp",
	StepEducation:      "Trình độ học vấn",
	StepWorkExperience: "Kinh nghiệm làm việc",
	StepSkills:         "Kỹ năng",
	StepProjects:       "Dự án",
	StepHobbies:        "Sở thích",
}

// Steps возвращает шаги в порядке прохождения.
func Steps() []Step {
	return append([]Step(nil), steps...)
}

func (s Step) Title() string {
	return stepTitles[s]
}

func (s Step) IsValid() bool {
	_, ok := stepTitles[s]
	return ok
}

// Index - позиция шага, -1 для неизвестного.
func (s Step) Index() int {
	for i, step := range steps {
		if step == s {
			return i
		}
	}
	return -1
}

// StepInfo - шаг для хлебных крошек.
type StepInfo struct {
	Key   Step   `json:"key"`
	Title string `json:"title"`
}

func StepInfos() []StepInfo {
	out := make([]StepInfo, 0, len(steps))
	for _, s := range steps {
		out = append(out, StepInfo{Key: s, Title: s.Title()})
	}
	return out
}

package conflict

import "github.com/healing-forest/reservation/backend/internal/domain"

// NameResolver 는 인력 ID 를 화면에 보여줄 이름으로 바꾼다. 충돌 판단에는 쓰이지 않는다.
type NameResolver interface {
	InstructorName(id int64) string
	AssistantName(id int64) string
	HelperName(id int64) string
}

// Roster 는 강사, 보조강사, 헬퍼 명단으로 만든 NameResolver 이다.
// redis 에 JSON 으로 캐시할 수 있도록 map 만 가진다.
type Roster struct {
	Instructors map[int64]string `json:"instructors"`
	Assistants  map[int64]string `json:"assistants"`
	Helpers     map[int64]string `json:"helpers"`
}

func NewRoster(instructors, assistants, helpers []*domain.Staff) *Roster {
	return &Roster{
		Instructors: nameMap(instructors),
		Assistants:  nameMap(assistants),
		Helpers:     nameMap(helpers),
	}
}

func nameMap(staff []*domain.Staff) map[int64]string {
	m := make(map[int64]string, len(staff))
	for _, s := range staff {
		m[s.ID] = s.Name
	}
	return m
}

func (r *Roster) InstructorName(id int64) string { return lookup(r.Instructors, id) }
func (r *Roster) AssistantName(id int64) string { return lookup(r.Assistants, id) }
func (r *Roster) HelperName(id int64) string { return lookup(r.Helpers, id) }

func lookup(m map[int64]string, id int64) string {
	if name, ok := m[id]; ok {
		return name
	}
	return UnknownPerson
}

func resolveName(names NameResolver, role Role, id int64) string {
	if names == nil {
		return ""
	}
	switch role {
	case RoleInstructor:
		return names.InstructorName(id)
	case RoleAssistant:
		return names.AssistantName(id)
	case RoleHelper:
		return names.HelperName(id)
	}
	return ""
}

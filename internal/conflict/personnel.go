package conflict

import "github.com/healing-forest/reservation/backend/internal/domain"

// Role 은 충돌이 발생한 인력 구분이다.
type Role string

const (
	RoleInstructor Role = "instructor"
	RoleAssistant  Role = "assistant"
	RoleHelper     Role = "helper"
)

const (
	UnknownGroup  = "알 수 없는 단체"
	UnknownPerson = "알 수 없음"
	UnknownStatus = domain.ReservationStatus("알 수 없음")
)

type ReservationInfo struct {
	GroupName         string                   `json:"group_name"`
	CustomerName      string                   `json:"customer_name"`
	ReservationStatus domain.ReservationStatus `json:"reservation_status"`
}

// PersonnelConflict 는 인력 중복 배정 검사 결과이다. 충돌이 여러 건이어도 첫 번째 한 건만 담는다.
type PersonnelConflict struct {
	HasConflict     bool             `json:"hasConflict"`
	ConflictType    Role             `json:"conflictType,omitempty"`
	ConflictName    string           `json:"conflictName,omitempty"`
	ExistingProgram *domain.Program  `json:"existingProgram,omitempty"`
	IsGlobal        bool             `json:"isGlobal,omitempty"`
	ReservationInfo *ReservationInfo `json:"reservationInfo,omitempty"`
}

// CheckPersonnel 은 같은 단체의 프로그램 중 후보와 같은 날 시간이 겹치면서
// 강사, 보조강사, 헬퍼 중 한 명이라도 같은 프로그램을 찾는다.
// 목록 순서대로 보며 처음 찾은 충돌을 돌려주고, 한 프로그램 안에서는 강사, 보조강사, 헬퍼 순으로 본다.
func CheckPersonnel(candidate *domain.Program, local []*domain.Program, editingID int64, names NameResolver) PersonnelConflict {
	start, end, ok := personnelSpan(candidate)
	if !ok {
		return PersonnelConflict{}
	}

	for _, p := range local {
		if isSelf(candidate, p, editingID) || !collides(candidate, start, end, p) {
			continue
		}
		if role, id, found := matchPersonnel(candidate, p); found {
			return PersonnelConflict{
				HasConflict:     true,
				ConflictType:    role,
				ConflictName:    resolveName(names, role, id),
				ExistingProgram: p,
			}
		}
	}

	return PersonnelConflict{}
}

// CheckPersonnelGlobal 은 CheckPersonnel 과 같은 방식으로 전체 단체의 프로그램을 검사하고,
// 충돌한 프로그램이 속한 예약 정보를 함께 돌려준다.
func CheckPersonnelGlobal(candidate *domain.Program, all []*domain.ProgramWithReservation, editingID int64, names NameResolver) PersonnelConflict {
	start, end, ok := personnelSpan(candidate)
	if !ok {
		return PersonnelConflict{}
	}

	for _, gp := range all {
		p := &gp.Program
		if isSelf(candidate, p, editingID) || !collides(candidate, start, end, p) {
			continue
		}
		if role, id, found := matchPersonnel(candidate, p); found {
			return PersonnelConflict{
				HasConflict:     true,
				ConflictType:    role,
				ConflictName:    resolveName(names, role, id),
				ExistingProgram: p,
				IsGlobal:        true,
				ReservationInfo: reservationInfo(gp.Reservation),
			}
		}
	}

	return PersonnelConflict{}
}

func personnelSpan(candidate *domain.Program) (start, end int, ok bool) {
	if candidate == nil {
		return 0, 0, false
	}
	if candidate.InstructorID == nil && candidate.AssistantID == nil && candidate.HelperID == nil {
		return 0, 0, false
	}
	return span(candidate)
}

func matchPersonnel(candidate, existing *domain.Program) (Role, int64, bool) {
	switch {
	case sameID(candidate.InstructorID, existing.InstructorID):
		return RoleInstructor, *candidate.InstructorID, true
	case sameID(candidate.AssistantID, existing.AssistantID):
		return RoleAssistant, *candidate.AssistantID, true
	case sameID(candidate.HelperID, existing.HelperID):
		return RoleHelper, *candidate.HelperID, true
	}
	return "", 0, false
}

func reservationInfo(s *domain.ReservationSummary) *ReservationInfo {
	info := &ReservationInfo{
		GroupName:         UnknownGroup,
		CustomerName:      UnknownPerson,
		ReservationStatus: UnknownStatus,
	}
	if s == nil {
		return info
	}
	if s.GroupName != "" {
		info.GroupName = s.GroupName
	}
	if s.CustomerName != "" {
		info.CustomerName = s.CustomerName
	}
	if s.ReservationStatus != "" {
		info.ReservationStatus = s.ReservationStatus
	}
	return info
}

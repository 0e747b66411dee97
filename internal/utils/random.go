package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/healing-forest/reservation/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var commonSurnames = []string{
	"김", "이", "박", "최", "정", "강", "조", "윤", "장", "임",
	"한", "오", "서", "신", "권", "황", "안", "송", "류", "홍",
}
var commonNameSyllables = []string{
	"민", "서", "지", "현", "수", "영", "준", "우", "하", "윤",
	"도", "연", "은", "재", "성", "진", "호", "예", "주", "원",
}

func GenerateRandomKoreanName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	name := ""

	for i := 0; i < 2; i++ {
		name += commonNameSyllables[rand.Intn(len(commonNameSyllables))]
	}
	return surname + name
}

var digits = "0123456789"

func GenerateRandomUser(password string, emailDomainName string) (*domain.User, error) {
	fullName := GenerateRandomKoreanName()
	username := "staff" + GenerateRandomID(0, 6)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@" + emailDomainName,
		Role:         domain.RoleStaff,
	}

	return user, nil
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	randomPassword := make([]rune, length)
	for i := range randomPassword {
		randomPassword[i] = letters[rand.Intn(len(letters))]
	}
	return string(randomPassword)
}

func GenerateRandomID(letterLength int, digitLength int) string {
	randomID := make([]rune, letterLength+digitLength)
	for i := range randomID {
		if i < letterLength {
			randomID[i] = letters[rand.Intn(26)]
		} else {
			randomID[i] = rune(digits[rand.Intn(len(digits))])
		}
	}
	return string(randomID)
}

func GenerateRandomPhone() string {
	return fmt.Sprintf("010-%04d-%04d", rand.Intn(10000), rand.Intn(10000))
}

var groupPrefixes = []string{"숲속", "푸른", "햇살", "마음", "평화", "새봄", "한빛", "솔향"}
var groupSuffixes = []string{"명상회", "힐링캠프", "가족모임", "교직원연수", "청년수련회", "동호회"}

// GenerateRandomReservation 은 오늘로부터 90일 이내에 시작하는 1~3박 예약을 만든다.
func GenerateRandomReservation(emailDomainName string) *domain.Reservation {
	start := time.Now().AddDate(0, 0, rand.Intn(90))
	end := start.AddDate(0, 0, rand.Intn(3)+1)

	statuses := []domain.ReservationStatus{domain.ReservationTentative, domain.ReservationConfirmed, domain.ReservationCancelled}

	return &domain.Reservation{
		GroupName:        groupPrefixes[rand.Intn(len(groupPrefixes))] + groupSuffixes[rand.Intn(len(groupSuffixes))],
		CustomerName:     GenerateRandomKoreanName(),
		ContactPhone:     GenerateRandomPhone(),
		Email:            "customer" + GenerateRandomID(0, 4) + "@" + emailDomainName,
		StartDate:        start.Format(DateLayout),
		EndDate:          end.Format(DateLayout),
		ParticipantCount: int32(rand.Intn(60) + 5),
		Status:           statuses[rand.Intn(len(statuses))],
	}
}

var programNames = []string{"숲 명상", "요가", "싱잉볼 테라피", "차 명상", "숲길 걷기", "아로마 테라피", "레크리에이션", "캠프파이어"}

func randomRef(ids []int64) *int64 {
	// 인력/장소가 배정되지 않은 경우도 만든다
	if len(ids) == 0 || rand.Intn(4) == 0 {
		return nil
	}
	v := ids[rand.Intn(len(ids))]
	return &v
}

// GenerateRandomPrograms 는 예약 기간 안의 하루에 한두 개씩 프로그램을 만든다.
// 다른 예약과의 충돌 여부는 확인하지 않는다.
func GenerateRandomPrograms(r *domain.Reservation, categoryIDs, placeIDs, instructorIDs, assistantIDs, helperIDs []int64) []*domain.Program {
	start, err := time.Parse(DateLayout, r.StartDate)
	if err != nil {
		return nil
	}
	end, err := time.Parse(DateLayout, r.EndDate)
	if err != nil {
		return nil
	}

	var programs []*domain.Program
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		n := rand.Intn(2) + 1
		for i := 0; i < n; i++ {
			startHour := 9 + i*4 + rand.Intn(3)
			programs = append(programs, &domain.Program{
				ReservationID: r.ID,
				CategoryID:    randomRef(categoryIDs),
				ProgramName:   programNames[rand.Intn(len(programNames))],
				Date:          day.Format(DateLayout),
				StartTime:     fmt.Sprintf("%02d:00", startHour),
				EndTime:       fmt.Sprintf("%02d:30", startHour+1),
				PlaceID:       randomRef(placeIDs),
				InstructorID:  randomRef(instructorIDs),
				AssistantID:   randomRef(assistantIDs),
				HelperID:      randomRef(helperIDs),
				Participants:  r.ParticipantCount,
				Price:         int64(rand.Intn(20)+1) * 50000,
			})
		}
	}

	return programs
}

var expenseCategories = []domain.ExpenseCategory{domain.ExpenseInstructor, domain.ExpenseMaterial, domain.ExpenseMeal, domain.ExpenseOther}

func GenerateRandomExpense(r *domain.Reservation) *domain.Expense {
	quantity := int32(rand.Intn(10) + 1)
	unitPrice := int64(rand.Intn(50)+1) * 1000

	return &domain.Expense{
		ReservationID: r.ID,
		Category:      expenseCategories[rand.Intn(len(expenseCategories))],
		ItemName:      "항목" + GenerateRandomID(0, 3),
		Quantity:      quantity,
		UnitPrice:     unitPrice,
		Amount:        int64(quantity) * unitPrice,
		ExpenseDate:   r.StartDate,
	}
}

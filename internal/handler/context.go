package handler

type ContextKey string

var (
	RoleCtxKey     ContextKey = "role"
	SubCtxKey      ContextKey = "sub"
	MyInfoCtx      ContextKey = "myInfo"
	UserInfoCtx    ContextKey = "userInfo"
	ReservationCtx ContextKey = "reservation"
	ProgramCtx     ContextKey = "program"
	ExpenseCtx     ContextKey = "expense"
	StaffKindCtx   ContextKey = "staffKind"
	StaffCtx       ContextKey = "staff"
	LocationCtx    ContextKey = "location"
	CategoryCtx    ContextKey = "category"
)

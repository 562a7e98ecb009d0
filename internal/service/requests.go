package service

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/lieyanc/studypk/internal"
)

var validate = validator.New()

type ToggleCheckInRequest struct {
	UserID string `json:"userId" validate:"required,oneof=user1 user2"`
	TaskID string `json:"taskId" validate:"required"`
	Amount *int   `json:"amount"`
}

func ValidateToggleCheckInRequest(req *ToggleCheckInRequest) error {
	return validate.Struct(req)
}

// SetAmountRequest carries no range constraint on Amount: the ledger floors
// negatives at zero and the homework counter clamps to [0, totalPages], so
// nothing is rejected here. Amounts above the task target are legitimate
// (overshooting a daily goal) and sync in full.
type SetAmountRequest struct {
	UserID string `json:"userId" validate:"required,oneof=user1 user2"`
	TaskID string `json:"taskId" validate:"required"`
	Amount int    `json:"amount"`
}

func ValidateSetAmountRequest(req *SetAmountRequest) error {
	return validate.Struct(req)
}

type UpdateUserRequest struct {
	ID            string  `json:"id" validate:"required,oneof=user1 user2"`
	Name          string  `json:"name" validate:"required"`
	Avatar        *string `json:"avatar"`
	ProgressColor *string `json:"progressColor"`
}

func ValidateUpdateUserRequest(req *UpdateUserRequest) error {
	return validate.Struct(req)
}

type LoginRequest struct {
	Password string `json:"password"`
}

// UpdateUser applies a profile edit to the stored user list. Unknown ids
// leave the list untouched.
func UpdateUser(users []internal.User, req *UpdateUserRequest) []internal.User {
	for i := range users {
		if users[i].ID != internal.UserID(req.ID) {
			continue
		}
		users[i].Name = req.Name
		if req.Avatar != nil {
			users[i].Avatar = *req.Avatar
		}
		if req.ProgressColor != nil {
			users[i].ProgressColor = *req.ProgressColor
		}
		break
	}
	return users
}

// NormalizeDailyTasks repairs a submitted catalog in place: generated ids
// for new tasks, targets clamped at zero.
func NormalizeDailyTasks(list *internal.DailyTaskList) {
	if list.Tasks == nil {
		list.Tasks = []internal.DailyTask{}
	}
	for i := range list.Tasks {
		if list.Tasks[i].ID == "" {
			list.Tasks[i].ID = uuid.NewString()
		}
		if list.Tasks[i].Target < 0 {
			list.Tasks[i].Target = 0
		}
	}
}

// NormalizeSettings enforces the counter invariant on a submitted settings
// document: 0 <= completedPages[u] <= totalPages for each user, clamped
// rather than rejected.
func NormalizeSettings(settings *internal.AppSettings) {
	if settings.Subjects == nil {
		settings.Subjects = []internal.Subject{}
	}
	if settings.Exams == nil {
		settings.Exams = []internal.ExamCountdown{}
	}
	for i := range settings.Subjects {
		subj := &settings.Subjects[i]
		if subj.ID == "" {
			subj.ID = uuid.NewString()
		}
		for j := range subj.Homework {
			hw := &subj.Homework[j]
			if hw.ID == "" {
				hw.ID = uuid.NewString()
			}
			if hw.TotalPages < 0 {
				hw.TotalPages = 0
			}
			for _, u := range internal.AllUsers {
				hw.CompletedPages.Set(u, clamp(hw.CompletedPages.For(u), 0, hw.TotalPages))
			}
		}
	}
}

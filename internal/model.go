package internal

import "encoding/json"

// UserID is one of the two fixed user slots. The user set never grows.
type UserID string

const (
	User1 UserID = "user1"
	User2 UserID = "user2"
)

var AllUsers = [2]UserID{User1, User2}

func (u UserID) Valid() bool {
	return u == User1 || u == User2
}

type User struct {
	ID            UserID `json:"id"`
	Name          string `json:"name"`
	Avatar        string `json:"avatar,omitempty"`
	ProgressColor string `json:"progressColor,omitempty"`
}

// PerUser holds one value per user slot. Two named fields instead of a map
// so "for each user" iteration is exhaustive at compile time.
type PerUser[T any] struct {
	User1 T `json:"user1"`
	User2 T `json:"user2"`
}

func (p *PerUser[T]) For(u UserID) T {
	if u == User2 {
		return p.User2
	}
	return p.User1
}

func (p *PerUser[T]) Set(u UserID, v T) {
	if u == User2 {
		p.User2 = v
		return
	}
	p.User1 = v
}

// CompletedPages is the per-user cumulative counter on a homework item.
// Legacy documents stored it as a single number; UnmarshalJSON migrates
// that shape to {user1: old, user2: 0}.
type CompletedPages struct {
	User1 int `json:"user1"`
	User2 int `json:"user2"`
}

func (c *CompletedPages) UnmarshalJSON(b []byte) error {
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		c.User1 = n
		c.User2 = 0
		return nil
	}
	type plain CompletedPages
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*c = CompletedPages(p)
	return nil
}

func (c *CompletedPages) For(u UserID) int {
	if u == User2 {
		return c.User2
	}
	return c.User1
}

func (c *CompletedPages) Set(u UserID, v int) {
	if u == User2 {
		c.User2 = v
		return
	}
	c.User1 = v
}

type HomeworkItem struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	TotalPages     int            `json:"totalPages"`
	CompletedPages CompletedPages `json:"completedPages"`
	Unit           string         `json:"unit"`
}

// AssignedTo values; empty means AssignedBoth.
const (
	AssignedBoth  = "both"
	AssignedUser1 = "user1"
	AssignedUser2 = "user2"
)

type Subject struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Color      string         `json:"color"`
	Homework   []HomeworkItem `json:"homework"`
	AssignedTo string         `json:"assignedTo,omitempty"`
}

// VisibleTo reports whether the subject counts toward the given user's
// homework totals.
func (s *Subject) VisibleTo(u UserID) bool {
	return s.AssignedTo == "" || s.AssignedTo == AssignedBoth || s.AssignedTo == string(u)
}

type VacationSettings struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Name      string `json:"name"`
}

type ExamCountdown struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Date string `json:"date"`
}

type AppSettings struct {
	Vacation VacationSettings `json:"vacation"`
	Subjects []Subject        `json:"subjects"`
	Exams    []ExamCountdown  `json:"exams"`
}

// FindHomework returns the homework item for a subject/homework id pair, or
// nil when either id does not resolve.
func (s *AppSettings) FindHomework(subjectID, homeworkID string) *HomeworkItem {
	for i := range s.Subjects {
		if s.Subjects[i].ID != subjectID {
			continue
		}
		for j := range s.Subjects[i].Homework {
			if s.Subjects[i].Homework[j].ID == homeworkID {
				return &s.Subjects[i].Homework[j]
			}
		}
		return nil
	}
	return nil
}

// DailyTask is a recurring check-in definition. SubjectID/HomeworkID are an
// advisory link; a dangling link just disables progress sync.
type DailyTask struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Target     int    `json:"target"`
	Unit       string `json:"unit"`
	SubjectID  string `json:"subjectId,omitempty"`
	HomeworkID string `json:"homeworkId,omitempty"`
	Icon       string `json:"icon,omitempty"`
}

type DailyTaskList struct {
	Tasks []DailyTask `json:"tasks"`
}

// DailyCheckIn is one user's completion record for one task on one date.
// SyncedAmount is the amount already pushed into the linked homework
// counter; it is what keeps repeated edits from double-applying deltas.
type DailyCheckIn struct {
	TaskID       string `json:"taskId"`
	Completed    bool   `json:"completed"`
	Amount       int    `json:"amount"`
	CompletedAt  string `json:"completedAt,omitempty"`
	SyncedAmount int    `json:"syncedAmount,omitempty"`
}

// Progress entry sources.
const (
	SourceCheckIn = "checkin"
	SourceManual  = "manual"
)

// HomeworkProgressEntry is an audit row recording how a homework counter
// moved on a given date, so an un-toggle can reverse exactly what a
// check-in contributed.
type HomeworkProgressEntry struct {
	SubjectID  string `json:"subjectId"`
	HomeworkID string `json:"homeworkId"`
	Amount     int    `json:"amount"`
	Source     string `json:"source"`
	TaskID     string `json:"taskId,omitempty"`
	Timestamp  string `json:"timestamp"`
	Note       string `json:"note,omitempty"`
}

type UserCheckIns = PerUser[[]DailyCheckIn]

type UserHomeworkProgress = PerUser[[]HomeworkProgressEntry]

// DailyCheckInData is the per-date check-in document, holding both users.
type DailyCheckInData struct {
	Date             string               `json:"date"`
	CheckIns         UserCheckIns         `json:"checkIns"`
	HomeworkProgress UserHomeworkProgress `json:"homeworkProgress"`
}

// EmptyCheckInData returns the empty-but-valid document for a date with no
// recorded check-ins.
func EmptyCheckInData(date string) *DailyCheckInData {
	return &DailyCheckInData{
		Date: date,
		CheckIns: UserCheckIns{
			User1: []DailyCheckIn{},
			User2: []DailyCheckIn{},
		},
		HomeworkProgress: UserHomeworkProgress{
			User1: []HomeworkProgressEntry{},
			User2: []HomeworkProgressEntry{},
		},
	}
}

type TimeBlock struct {
	ID        string `json:"id"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Label     string `json:"label"`
	Category  string `json:"category"`
}

type Task struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Completed     bool   `json:"completed"`
	Priority      string `json:"priority"`
	LinkedBlockID string `json:"linkedBlockId,omitempty"`
}

type UserDayData struct {
	Schedule []TimeBlock `json:"schedule"`
	Tasks    []Task      `json:"tasks"`
}

type DayData struct {
	Date  string      `json:"date"`
	User1 UserDayData `json:"user1"`
	User2 UserDayData `json:"user2"`
}

func (d *DayData) For(u UserID) *UserDayData {
	if u == User2 {
		return &d.User2
	}
	return &d.User1
}

type ScheduleTemplate struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Blocks    []TimeBlock `json:"blocks"`
	IsDefault bool        `json:"isDefault"`
}

// Todo statuses cycle pending -> in_progress -> completed.
const (
	TodoPending    = "pending"
	TodoInProgress = "in_progress"
	TodoCompleted  = "completed"
)

type GlobalTodoItem struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Status          string `json:"status"`
	CreatedAt       string `json:"createdAt"`
	Deadline        string `json:"deadline,omitempty"`
	CreatedBy       UserID `json:"createdBy,omitempty"`
	LinkedBlockID   string `json:"linkedBlockId,omitempty"`
	LinkedSubjectID string `json:"linkedSubjectId,omitempty"`
}

type GlobalTodoList = PerUser[[]GlobalTodoItem]

// DayStatus classifies a user's day for calendar coloring.
type DayStatus string

const (
	DayComplete   DayStatus = "complete"
	DayPartial    DayStatus = "partial"
	DayIncomplete DayStatus = "incomplete"
	DayUnplanned  DayStatus = "unplanned"
)

type PKUserStats struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
	Streak    int `json:"streak"`
}

type PKStats struct {
	Date  string      `json:"date"`
	User1 PKUserStats `json:"user1"`
	User2 PKUserStats `json:"user2"`
}

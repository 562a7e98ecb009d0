package internal

// Seed documents written on first access, matching the data the dashboard
// front end expects on a fresh install.

func DefaultUsers() []User {
	return []User{
		{ID: User1, Name: "用户 1"},
		{ID: User2, Name: "用户 2"},
	}
}

func DefaultSettings() *AppSettings {
	return &AppSettings{
		Vacation: VacationSettings{
			Name:      "寒假",
			StartDate: "2026-01-15",
			EndDate:   "2026-02-15",
		},
		Exams: []ExamCountdown{
			{ID: "exam-1", Name: "开学考", Date: "2026-02-17"},
		},
		Subjects: []Subject{
			{ID: "math", Name: "数学", Color: "#3b82f6", Homework: []HomeworkItem{
				{ID: "math-1", Title: "寒假作业本", TotalPages: 60, Unit: "页"},
			}},
			{ID: "chinese", Name: "语文", Color: "#ef4444", Homework: []HomeworkItem{
				{ID: "chinese-1", Title: "阅读理解", TotalPages: 30, Unit: "篇"},
			}},
			{ID: "english", Name: "英语", Color: "#22c55e", Homework: []HomeworkItem{
				{ID: "english-1", Title: "单词本", TotalPages: 500, Unit: "词"},
			}},
			{ID: "physics", Name: "物理", Color: "#f59e0b", Homework: []HomeworkItem{
				{ID: "physics-1", Title: "练习册", TotalPages: 40, Unit: "页"},
			}},
			{ID: "chemistry", Name: "化学", Color: "#8b5cf6", Homework: []HomeworkItem{
				{ID: "chemistry-1", Title: "实验报告", TotalPages: 15, Unit: "篇"},
			}},
			{ID: "biology", Name: "生物", Color: "#06b6d4", Homework: []HomeworkItem{
				{ID: "biology-1", Title: "知识梳理", TotalPages: 25, Unit: "页"},
			}},
		},
	}
}

func DefaultDailyTasks() *DailyTaskList {
	return &DailyTaskList{
		Tasks: []DailyTask{
			{ID: "dt-1", Title: "背单词", Target: 50, Unit: "词", SubjectID: "english", HomeworkID: "english-1"},
			{ID: "dt-2", Title: "数学练习", Target: 2, Unit: "页", SubjectID: "math", HomeworkID: "math-1"},
			{ID: "dt-3", Title: "语文阅读", Target: 1, Unit: "篇", SubjectID: "chinese", HomeworkID: "chinese-1"},
			{ID: "dt-4", Title: "物理刷题", Target: 2, Unit: "页", SubjectID: "physics", HomeworkID: "physics-1"},
			{ID: "dt-5", Title: "化学练习", Target: 1, Unit: "篇", SubjectID: "chemistry", HomeworkID: "chemistry-1"},
			{ID: "dt-6", Title: "课外阅读", Target: 30, Unit: "分钟"},
		},
	}
}

func DefaultTemplates() []ScheduleTemplate {
	return []ScheduleTemplate{
		{
			ID:        "default",
			Name:      "默认日程",
			IsDefault: true,
			Blocks: []TimeBlock{
				{ID: "1", StartTime: "07:00", EndTime: "08:00", Label: "起床洗漱", Category: "routine"},
				{ID: "2", StartTime: "08:00", EndTime: "09:00", Label: "早餐", Category: "meal"},
				{ID: "3", StartTime: "09:00", EndTime: "12:00", Label: "学习/工作", Category: "work"},
				{ID: "4", StartTime: "12:00", EndTime: "13:00", Label: "午餐", Category: "meal"},
				{ID: "5", StartTime: "13:00", EndTime: "14:00", Label: "午休", Category: "rest"},
				{ID: "6", StartTime: "14:00", EndTime: "18:00", Label: "学习/工作", Category: "work"},
				{ID: "7", StartTime: "18:00", EndTime: "19:00", Label: "晚餐", Category: "meal"},
				{ID: "8", StartTime: "19:00", EndTime: "21:00", Label: "自由时间", Category: "free"},
				{ID: "9", StartTime: "21:00", EndTime: "22:00", Label: "整理/准备睡觉", Category: "routine"},
				{ID: "10", StartTime: "22:00", EndTime: "23:00", Label: "睡觉", Category: "sleep"},
			},
		},
	}
}

func DefaultTodos() *GlobalTodoList {
	return &GlobalTodoList{
		User1: []GlobalTodoItem{},
		User2: []GlobalTodoItem{},
	}
}

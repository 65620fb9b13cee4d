package model

import "time"

type UserType string

const (
	UserTypeEmployee UserType = "employee"
	UserTypeDriver   UserType = "driver"
)

func (t UserType) Valid() bool {
	return t == UserTypeEmployee || t == UserTypeDriver
}

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLeave   AttendanceStatus = "leave"
)

func (s AttendanceStatus) Valid() bool {
	return s == AttendancePresent || s == AttendanceAbsent || s == AttendanceLeave
}

type TaskStatus string

const (
	TaskMain       TaskStatus = "main"
	TaskReassigned TaskStatus = "reassigned"
	TaskReuse      TaskStatus = "reuse"
)

func (s TaskStatus) Valid() bool {
	return s == TaskMain || s == TaskReassigned || s == TaskReuse
}

type LeadStatus string

const (
	LeadNew       LeadStatus = "new"
	LeadContacted LeadStatus = "contacted"
	LeadQualified LeadStatus = "qualified"
	LeadConverted LeadStatus = "converted"
	LeadLost      LeadStatus = "lost"
)

func (s LeadStatus) Valid() bool {
	switch s {
	case LeadNew, LeadContacted, LeadQualified, LeadConverted, LeadLost:
		return true
	}
	return false
}

// AttendanceRecord is owned by exactly one user, at most one per date.
type AttendanceRecord struct {
	Date   string           `json:"date"` // YYYY-MM-DD
	Status AttendanceStatus `json:"status"`
}

type User struct {
	ID              string             `json:"id"`
	Name            string             `json:"name"`
	Age             int                `json:"age"`
	Phone1          string             `json:"phone1"`
	Phone2          string             `json:"phone2"`
	Location        string             `json:"location"`
	UserType        UserType           `json:"userType"`
	Attendance      []AttendanceRecord `json:"attendance"`
	AssignedTaskIDs []string           `json:"assignedTaskIds"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	AssignedTo  []string   `json:"assignedTo"`
	Status      TaskStatus `json:"status"`
	DueDate     string     `json:"dueDate"` // YYYY-MM-DD
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type Lead struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Status    LeadStatus `json:"status"`
	Value     float64    `json:"value"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type ChatMessage struct {
	ID        string    `json:"id"`
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Patch types carry partial updates; nil means leave the field alone.
// CreatedAt is not patchable: it is set once at creation.

type UserPatch struct {
	Name     *string
	Age      *int
	Phone1   *string
	Phone2   *string
	Location *string
	UserType *UserType
}

type TaskPatch struct {
	Title       *string
	Description *string
	AssignedTo  *[]string
	Status      *TaskStatus
	DueDate     *string
}

type LeadPatch struct {
	Name   *string
	Email  *string
	Phone  *string
	Status *LeadStatus
	Value  *float64
}

func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Age != nil {
		u.Age = *p.Age
	}
	if p.Phone1 != nil {
		u.Phone1 = *p.Phone1
	}
	if p.Phone2 != nil {
		u.Phone2 = *p.Phone2
	}
	if p.Location != nil {
		u.Location = *p.Location
	}
	if p.UserType != nil {
		u.UserType = *p.UserType
	}
}

func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.AssignedTo != nil {
		t.AssignedTo = append([]string(nil), *p.AssignedTo...)
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
}

func (p LeadPatch) Apply(l *Lead) {
	if p.Name != nil {
		l.Name = *p.Name
	}
	if p.Email != nil {
		l.Email = *p.Email
	}
	if p.Phone != nil {
		l.Phone = *p.Phone
	}
	if p.Status != nil {
		l.Status = *p.Status
	}
	if p.Value != nil {
		l.Value = *p.Value
	}
}

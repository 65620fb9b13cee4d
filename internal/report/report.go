// Package report computes the read-side views the dashboard and exports are
// built from. Every function is pure: it only looks at the snapshot it is
// handed and never touches the store.
package report

import "crm-management-api/internal/model"

func Employees(users []model.User) []model.User {
	return filterUsers(users, model.UserTypeEmployee)
}

func Drivers(users []model.User) []model.User {
	return filterUsers(users, model.UserTypeDriver)
}

func filterUsers(users []model.User, t model.UserType) []model.User {
	var out []model.User
	for _, u := range users {
		if u.UserType == t {
			out = append(out, u)
		}
	}
	return out
}

func TasksByStatus(tasks []model.Task) map[model.TaskStatus]int {
	counts := map[model.TaskStatus]int{
		model.TaskMain:       0,
		model.TaskReassigned: 0,
		model.TaskReuse:      0,
	}
	for _, t := range tasks {
		counts[t.Status]++
	}
	return counts
}

func LeadsByStatus(leads []model.Lead) map[model.LeadStatus]int {
	counts := map[model.LeadStatus]int{
		model.LeadNew:       0,
		model.LeadContacted: 0,
		model.LeadQualified: 0,
		model.LeadConverted: 0,
		model.LeadLost:      0,
	}
	for _, l := range leads {
		counts[l.Status]++
	}
	return counts
}

// ConversionRate is converted/total over all leads; 0 when there are none.
func ConversionRate(leads []model.Lead) float64 {
	if len(leads) == 0 {
		return 0
	}
	converted := 0
	for _, l := range leads {
		if l.Status == model.LeadConverted {
			converted++
		}
	}
	return float64(converted) / float64(len(leads))
}

func TotalLeadValue(leads []model.Lead) float64 {
	var sum float64
	for _, l := range leads {
		sum += l.Value
	}
	return sum
}

func ConvertedLeadValue(leads []model.Lead) float64 {
	var sum float64
	for _, l := range leads {
		if l.Status == model.LeadConverted {
			sum += l.Value
		}
	}
	return sum
}

func TasksAssignedTo(userID string, tasks []model.Task) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		for _, uid := range t.AssignedTo {
			if uid == userID {
				out = append(out, t)
				break
			}
		}
	}
	return out
}

func AttendancePresentCount(u model.User) int {
	n := 0
	for _, r := range u.Attendance {
		if r.Status == model.AttendancePresent {
			n++
		}
	}
	return n
}

// Summary is the dashboard read model.
type Summary struct {
	TotalUsers         int                      `json:"totalUsers"`
	TotalEmployees     int                      `json:"totalEmployees"`
	TotalDrivers       int                      `json:"totalDrivers"`
	TotalTasks         int                      `json:"totalTasks"`
	PendingTasks       int                      `json:"pendingTasks"`
	TotalLeads         int                      `json:"totalLeads"`
	ActiveLeads        int                      `json:"activeLeads"`
	TasksByStatus      map[model.TaskStatus]int `json:"tasksByStatus"`
	LeadsByStatus      map[model.LeadStatus]int `json:"leadsByStatus"`
	ConversionRate     float64                  `json:"conversionRate"`
	TotalLeadValue     float64                  `json:"totalLeadValue"`
	ConvertedLeadValue float64                  `json:"convertedLeadValue"`
}

func Summarize(users []model.User, tasks []model.Task, leads []model.Lead) Summary {
	active := 0
	for _, l := range leads {
		if l.Status != model.LeadConverted && l.Status != model.LeadLost {
			active++
		}
	}
	byTask := TasksByStatus(tasks)
	return Summary{
		TotalUsers:         len(users),
		TotalEmployees:     len(Employees(users)),
		TotalDrivers:       len(Drivers(users)),
		TotalTasks:         len(tasks),
		PendingTasks:       byTask[model.TaskMain],
		TotalLeads:         len(leads),
		ActiveLeads:        active,
		TasksByStatus:      byTask,
		LeadsByStatus:      LeadsByStatus(leads),
		ConversionRate:     ConversionRate(leads),
		TotalLeadValue:     TotalLeadValue(leads),
		ConvertedLeadValue: ConvertedLeadValue(leads),
	}
}

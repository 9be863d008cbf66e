package view

import (
	"strings"

	"github.com/noah-isme/lms-ai-api/internal/dto"
	"github.com/noah-isme/lms-ai-api/internal/models"
	"github.com/noah-isme/lms-ai-api/internal/state"
)

// PerformanceView lists every student with enrollment count and rounded average grade.
func PerformanceView(snap state.Snapshot, actor models.User) (dto.PerformanceView, error) {
	if err := requireAdministrator(actor); err != nil {
		return dto.PerformanceView{}, err
	}
	students := snap.UsersWithRole(models.RoleStudent)
	view := dto.PerformanceView{
		Title:    "Student Performance Overview",
		Students: make([]dto.StudentPerformance, 0, len(students)),
	}
	for _, s := range students {
		enrolled, avg := snap.StudentStats(s.ID)
		view.Students = append(view.Students, dto.StudentPerformance{
			StudentID:     s.ID,
			Username:      s.Username,
			EnrolledCount: enrolled,
			AverageGrade:  avg,
		})
	}
	if len(students) == 0 {
		view.EmptyMessage = "No students have been added to the system yet."
	}
	return view, nil
}

// UserManagementView groups the roster by role. Administrators are listed but not editable.
func UserManagementView(snap state.Snapshot, actor models.User) (dto.UserManagementView, error) {
	if err := requireAdministrator(actor); err != nil {
		return dto.UserManagementView{}, err
	}
	view := dto.UserManagementView{Title: "User Management"}
	for _, role := range []models.Role{models.RoleAdministrator, models.RoleStudent, models.RoleTeacher} {
		group := dto.UserGroup{Role: role, Title: string(role) + "s", Users: []dto.UserRow{}}
		for _, u := range snap.UsersWithRole(role) {
			group.Users = append(group.Users, dto.UserRow{UserInfo: dto.NewUserInfo(u), Editable: role != models.RoleAdministrator})
		}
		if len(group.Users) == 0 {
			group.EmptyMessage = "No " + strings.ToLower(string(role)) + "s found."
		}
		view.Groups = append(view.Groups, group)
	}
	return view, nil
}

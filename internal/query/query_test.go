package query

import (
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/syrilster/school-leave-console/internal/model"
)

var staff = []model.Employee{
	{ID: "1", FirstName: "Adebayo", LastName: "Johnson", Email: "adebayo.johnson@school.edu.ng", Department: "Mathematics", Position: "Teacher"},
	{ID: "2", FirstName: "Chinwe", LastName: "Okoro", Email: "chinwe.okoro@school.edu.ng", Department: "English", Position: "Principal"},
	{ID: "3", FirstName: "Emeka", LastName: "Nwosu", Email: "emeka.nwosu@school.edu.ng", Department: "Science", Position: "Teacher"},
	{ID: "4", FirstName: "Funmi", LastName: "Adeyemi", Email: "funmi.adeyemi@school.edu.ng", Department: "Mathematics", Position: "Counselor"},
	{ID: "5", FirstName: "Gbenga", LastName: "Okafor", Email: "gbenga.okafor@school.edu.ng", Department: "History", Position: "Librarian"},
	{ID: "6", FirstName: "Halima", LastName: "Bello", Email: "halima.bello@school.edu.ng", Department: "Arts", Position: "Teacher"},
	{ID: "7", FirstName: "Ifeanyi", LastName: "Eze", Email: "ifeanyi.eze@school.edu.ng", Department: "Mathematics", Position: "Vice Principal"},
}

func ids(emps []model.Employee) []model.ID {
	out := make([]model.ID, 0, len(emps))
	for _, e := range emps {
		out = append(out, e.ID)
	}
	return out
}

func TestApplyPaginatesSevenEmployees(t *testing.T) {
	first := Apply(staff, Query{Page: 1}, 5)
	require.Len(t, first.Items, 5)
	require.Equal(t, 2, first.TotalPages)
	require.Equal(t, 7, first.TotalItems)
	require.Equal(t, []model.ID{"1", "2", "3", "4", "5"}, ids(first.Items))

	second := Apply(staff, Query{Page: 2}, 5)
	require.Len(t, second.Items, 2)
	require.Equal(t, 2, second.Page)
	require.Equal(t, []model.ID{"6", "7"}, ids(second.Items))
}

func TestApplySearchIsCaseInsensitive(t *testing.T) {
	for _, search := range []string{"chinwe", "CHINWE", "Chinwe Okoro", "  okoro ", "chinwe.okoro@"} {
		got := Apply(staff, Query{Search: search, Page: 1}, 5)
		require.Equal(t, []model.ID{"2"}, ids(got.Items), search)
	}
}

func TestApplyCombinesSearchAndDepartment(t *testing.T) {
	got := Apply(staff, Query{Search: "teacher", Filter: "Mathematics", Page: 1}, 5)
	require.Equal(t, []model.ID{"1"}, ids(got.Items))

	got = Apply(staff, Query{Filter: "Mathematics", Page: 1}, 5)
	require.Equal(t, []model.ID{"1", "4", "7"}, ids(got.Items))

	got = Apply(staff, Query{Filter: "mathematics", Page: 1}, 5)
	require.Empty(t, got.Items)
}

func TestApplyClampsPage(t *testing.T) {
	tests := []struct {
		name     string
		q        Query
		wantPage int
		wantIDs  []model.ID
	}{
		{name: "beyond-last", q: Query{Page: 9}, wantPage: 2, wantIDs: []model.ID{"6", "7"}},
		{name: "zero", q: Query{Page: 0}, wantPage: 1, wantIDs: []model.ID{"1", "2", "3", "4", "5"}},
		{name: "negative", q: Query{Page: -3}, wantPage: 1, wantIDs: []model.ID{"1", "2", "3", "4", "5"}},
		{name: "filtered-set-shrank", q: Query{Filter: "History", Page: 2}, wantPage: 1, wantIDs: []model.ID{"5"}},
		{name: "no-match", q: Query{Search: "nobody", Page: 3}, wantPage: 1, wantIDs: []model.ID{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(staff, tt.q, 5)
			require.Equal(t, tt.wantPage, got.Page)
			require.Equal(t, tt.wantIDs, ids(got.Items))
			require.NotNil(t, got.Items)
		})
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	before := fmt.Sprint(staff)
	page := Apply(staff, Query{Search: "a", Page: 1}, 2)
	page.Items = append(page.Items, model.Employee{ID: "99"})
	require.Equal(t, before, fmt.Sprint(staff))
}

func TestApplyLeaveRequestsByStatus(t *testing.T) {
	leaves := []model.LeaveRequest{
		{ID: "1", EmployeeName: "Kemi Ogunleye", LeaveType: "Sick Leave", Status: model.LeavePending},
		{ID: "2", EmployeeName: "Lola Ibrahim", LeaveType: "Annual Leave", Status: model.LeaveApproved},
		{ID: "3", EmployeeName: "Kemi Ogunleye", LeaveType: "Study Leave", Status: model.LeaveApproved},
	}

	got := Apply(leaves, Query{Search: "kemi", Filter: "approved", Page: 1}, 10)
	require.Len(t, got.Items, 1)
	require.Equal(t, model.ID("3"), got.Items[0].ID)
}

func TestFromValues(t *testing.T) {
	v := url.Values{}
	v.Set("search", "okoro")
	v.Set("department", "English")
	v.Set("page", "2")
	require.Equal(t, Query{Search: "okoro", Filter: "English", Page: 2}, FromValues(v, "department"))

	require.Equal(t, Query{Page: 1}, FromValues(url.Values{"page": {"two"}}, "department"))
}

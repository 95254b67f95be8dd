package model

var Departments = []string{
	"Mathematics",
	"English",
	"Science",
	"History",
	"Arts",
	"Physical Education",
	"Music",
	"Computer Science",
}

var Positions = []string{
	"Teacher",
	"Principal",
	"Vice Principal",
	"Counselor",
	"Librarian",
	"Administrative Assistant",
	"IT Support",
	"Security Guard",
}

var LeaveTypes = []string{
	"Annual Leave",
	"Sick Leave",
	"Maternity Leave",
	"Paternity Leave",
	"Emergency Leave",
	"Study Leave",
	"Compassionate Leave",
}

// Contains reports whether v is one of the catalog entries.
func Contains(catalog []string, v string) bool {
	for _, c := range catalog {
		if c == v {
			return true
		}
	}
	return false
}

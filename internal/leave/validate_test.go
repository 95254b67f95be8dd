package leave

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syrilster/school-leave-console/internal/validation"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(a *Application)
		field  string
	}{
		{name: "unknown type", modify: func(a *Application) { a.LeaveType = "Sabbatical" }, field: "leaveType"},
		{name: "missing start", modify: func(a *Application) { a.StartDate = "" }, field: "startDate"},
		{name: "start in the past", modify: func(a *Application) { a.StartDate = "2026-03-09" }, field: "startDate"},
		{name: "unparseable end", modify: func(a *Application) { a.EndDate = "20/03/2026" }, field: "endDate"},
		{name: "end before start", modify: func(a *Application) { a.EndDate = "2026-03-15" }, field: "endDate"},
		{name: "short reason", modify: func(a *Application) { a.Reason = "  unwell   " }, field: "reason"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validApplication()
			tt.modify(&a)

			var verr *validation.Error
			require.True(t, errors.As(Validate(a, now), &verr))
			assert.Len(t, verr.Fields, 1)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
}

func TestValidateBoundaries(t *testing.T) {
	a := validApplication()
	a.StartDate = "2026-03-10"
	a.EndDate = "2026-03-10"
	a.Reason = "Funeral ok"
	require.NoError(t, Validate(a, now))
}

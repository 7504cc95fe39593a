package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestNewJobDefaults(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	j, err := NewJob("job-1", "user-1", JobPatch{Title: ptr("Fix AC")}, now)
	require.NoError(t, err)
	require.Equal(t, StatusScheduled, j.Status)
	require.Equal(t, PriorityMedium, j.Priority)
	require.Equal(t, JobTypeRepair, j.JobType)
	require.Equal(t, "Fix AC", *j.Title)
	require.NotNil(t, j.Services)
	require.Equal(t, now, j.CreatedAt)
}

func TestJobPatchValidate(t *testing.T) {
	tests := []struct {
		name  string
		patch JobPatch
		field string
	}{
		{"bad status", JobPatch{Status: ptr("done")}, "status"},
		{"bad priority", JobPatch{Priority: ptr("asap")}, "priority"},
		{"bad type", JobPatch{JobType: ptr("cleaning")}, "job_type"},
		{"latitude too high", JobPatch{Latitude: ptr(90.5)}, "latitude"},
		{"longitude too low", JobPatch{Longitude: ptr(-181.0)}, "longitude"},
		{"negative price", JobPatch{Price: ptr(-1.0)}, "price"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.patch.Validate()
			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			require.Equal(t, tc.field, ve.Field)
		})
	}

	require.NoError(t, JobPatch{Latitude: ptr(-90.0), Longitude: ptr(180.0)}.Validate())
}

func TestJobPatchApplyKeepsUnsetFields(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	j, err := NewJob("job-1", "user-1", JobPatch{
		CustomerName: ptr("Ivan"),
		Address:      ptr("Lenina 1"),
		Price:        ptr(1500.0),
	}, now)
	require.NoError(t, err)

	err = JobPatch{Status: ptr(StatusActive)}.Apply(&j)
	require.NoError(t, err)
	require.Equal(t, StatusActive, j.Status)
	require.Equal(t, "Ivan", *j.CustomerName)
	require.Equal(t, "Lenina 1", *j.Address)
	require.Equal(t, 1500.0, *j.Price)
}

func TestJobPatchRescheduleClearsReminder(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	reminded := at.Add(-20 * time.Minute)
	j := Job{ScheduledAt: &at, RemindedAt: &reminded}

	require.NoError(t, JobPatch{ScheduledAt: ptr(at)}.Apply(&j))
	require.NotNil(t, j.RemindedAt, "same time keeps the reminder")

	later := at.Add(time.Hour)
	require.NoError(t, JobPatch{ScheduledAt: &later}.Apply(&j))
	require.Nil(t, j.RemindedAt)
	require.Equal(t, later, *j.ScheduledAt)
}

func TestJobPatchServicesAreCopied(t *testing.T) {
	items := []ServiceItem{{Description: "Refill", Price: 500, Quantity: 1}}
	var j Job
	require.NoError(t, JobPatch{Services: &items}.Apply(&j))
	items[0].Price = 1
	require.Equal(t, 500.0, j.Services[0].Price)
}

func TestJobPatchEmpty(t *testing.T) {
	require.True(t, JobPatch{}.Empty())
	require.False(t, JobPatch{Notes: ptr("")}.Empty())
}

func TestJobScheduledOn(t *testing.T) {
	msk := time.FixedZone("MSK", 3*3600)
	// 22:30 UTC on March 1 is already March 2 in Moscow.
	at := time.Date(2026, 3, 1, 22, 30, 0, 0, time.UTC)
	j := Job{ScheduledAt: &at}

	require.True(t, j.ScheduledOn(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), time.UTC))
	require.False(t, j.ScheduledOn(time.Date(2026, 3, 1, 12, 0, 0, 0, msk), msk))
	require.True(t, j.ScheduledOn(time.Date(2026, 3, 2, 0, 0, 0, 0, msk), msk))
	require.False(t, Job{}.ScheduledOn(at, time.UTC))
}

func TestCustomerLabel(t *testing.T) {
	require.Equal(t, "Клиент", Job{}.CustomerLabel())
	require.Equal(t, "Клиент", Job{CustomerName: ptr("  ")}.CustomerLabel())
	require.Equal(t, "Anna", Job{CustomerName: ptr("Anna")}.CustomerLabel())
}

func TestUserPatchApply(t *testing.T) {
	u := User{Role: RoleMaster, IsActive: true}

	require.NoError(t, UserPatch{Role: ptr(RoleAdmin), IsActive: ptr(false)}.Apply(&u))
	require.Equal(t, RoleAdmin, u.Role)
	require.False(t, u.IsActive)

	err := UserPatch{Role: ptr("root")}.Apply(&u)
	require.Error(t, err)
	require.Equal(t, RoleAdmin, u.Role)
}

func TestVerificationCodeExpired(t *testing.T) {
	exp := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	c := VerificationCode{ExpiresAt: exp}

	require.False(t, c.Expired(exp.Add(-time.Nanosecond)))
	require.True(t, c.Expired(exp))
	require.True(t, c.Expired(exp.Add(time.Second)))
}

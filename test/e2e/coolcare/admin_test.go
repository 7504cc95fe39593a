package coolcare_test

import (
	"net/http"
	"testing"

	"github.com/coolcare/coolcare/pkg/coolcaresdk"
	"github.com/stretchr/testify/require"
)

func TestDispatcherConsole(t *testing.T) {
	api := setupContainer(t, nil)
	client := coolcaresdk.NewClient(api.BaseURL)
	ctx := t.Context()

	worker := signIn(t, client, "+79995550301")
	dispatcher := signIn(t, client, "+79995550300")

	_, err := dispatcher.AdminUsers(ctx)
	assertAPIError(t, err, http.StatusForbidden, "forbidden")

	out := api.admin(t, "promote", "--phone", "+79995550300")
	require.Contains(t, out, "to admin")

	users, err := dispatcher.AdminUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)

	me, err := worker.Me(ctx)
	require.NoError(t, err)

	job, err := dispatcher.AdminCreateJob(ctx, coolcaresdk.JobRequest{
		UserID: ptr(me.ID),
		Title:  ptr("Чистка сплит-системы"),
	})
	require.NoError(t, err)
	require.Equal(t, me.ID, job.UserID)

	mine, err := worker.Jobs(ctx, "")
	require.NoError(t, err)
	require.Len(t, mine, 1)

	stats, err := dispatcher.AdminStats(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, stats.TotalJobs)

	_, err = dispatcher.AdminUpdateUser(ctx, me.ID, coolcaresdk.AdminUpdateUserRequest{IsActive: ptr(false)})
	require.NoError(t, err)

	_, err = worker.Me(ctx)
	assertAPIError(t, err, http.StatusUnauthorized, "user_not_found")
}

func TestAdminCLI(t *testing.T) {
	api := setupContainer(t, nil)

	out := api.admin(t, "gen-vapid")
	require.Contains(t, out, "VAPID_PUBLIC_KEY=")

	out = api.admin(t, "migrate")
	require.Contains(t, out, "migrations applied")
}

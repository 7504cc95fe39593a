/*
Package coolcaresdk is the Go client for the CoolCare field-service API and
the home of its wire types. The server encodes the same structs it
documents here, so the SDK and handlers cannot drift apart.

# Client vs Session

  - Client: public operations (health, send-code, verify-code, refresh)
  - Session: bearer-authenticated operations with automatic refresh

Sign in with a phone number:

	client := coolcaresdk.NewClient("https://api.example.com")

	sent, err := client.SendCode(ctx, "8 (999) 123-45-67")
	// deliver sent.DebugCode out of band in dev, or read the SMS

	session, err := client.SignIn(ctx, sent.Phone, code)

	me, err := session.Me(ctx)
	jobs, err := session.TodayJobs(ctx)
	route, err := session.OptimizeRoute(ctx, "2024-05-01")

Access tokens are refreshed transparently shortly before they expire. The
refresh token itself is long-lived and is not rotated by the server.

# Errors

Every non-2xx response is returned as *APIError carrying the HTTP status,
a stable machine code (invalid_code, invalid_token, not_found, ...) and a
human-readable detail string:

	var apiErr *coolcaresdk.APIError
	if errors.As(err, &apiErr) && apiErr.Code == coolcaresdk.ErrorCodeInvalidCode {
		// ask the user to retype the code
	}

Sessions are safe for concurrent use.
*/
package coolcaresdk

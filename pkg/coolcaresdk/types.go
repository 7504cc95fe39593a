package coolcaresdk

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ============================================================================
// Auth Types
// ============================================================================

type SendCodeRequest struct {
	Phone string `json:"phone" example:"+79991234567"`
}

// SendCodeResponse echoes the normalized phone. DebugCode is only present
// when the server runs with debug codes exposed.
type SendCodeResponse struct {
	Message   string `json:"message" example:"SMS code sent"`
	Phone     string `json:"phone" example:"+79991234567"`
	DebugCode string `json:"debug_code,omitempty" example:"482913"`
}

type VerifyCodeRequest struct {
	Phone string `json:"phone" example:"+79991234567"`
	Code  string `json:"code" example:"482913"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse is returned by verify-code and refresh. ExpiresIn is the
// access-token lifetime in seconds.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type" example:"bearer"`
	ExpiresIn    int    `json:"expires_in" example:"86400"`
}

// ============================================================================
// User Types
// ============================================================================

type User struct {
	ID         string    `json:"id" example:"01HZX3J8Q4W7A1M2N3P4R5S6T7"`
	Phone      string    `json:"phone" example:"+79991234567"`
	Name       *string   `json:"name"`
	Email      *string   `json:"email"`
	Role       string    `json:"role" example:"master"`
	IsActive   bool      `json:"is_active"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// UpdateMeRequest changes the caller's own profile. Nil fields are kept.
type UpdateMeRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

// AdminUpdateUserRequest is used by dispatchers. Nil fields are kept.
type AdminUpdateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	Role     *string `json:"role,omitempty" example:"admin"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// ============================================================================
// Job Types
// ============================================================================

// Amount is a money value. It decodes from a JSON number or a numeric
// string; the empty string decodes as zero.
type Amount float64

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
		if s == "" {
			*a = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("amount %q: %w", s, err)
		}
		*a = Amount(f)
		return nil
	}

	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*a = Amount(f)
	return nil
}

// Quantity is a line-item count. Like Amount it tolerates numeric strings.
type Quantity int

func (q *Quantity) UnmarshalJSON(b []byte) error {
	var a Amount
	if err := a.UnmarshalJSON(b); err != nil {
		return err
	}
	*q = Quantity(a)
	return nil
}

// ServiceItem is one billed line on a job.
type ServiceItem struct {
	Description string   `json:"description"`
	Price       Amount   `json:"price"`
	Quantity    Quantity `json:"quantity"`
}

type Job struct {
	ID            string        `json:"id"`
	UserID        string        `json:"user_id"`
	CustomerName  *string       `json:"customer_name"`
	Title         *string       `json:"title"`
	Description   *string       `json:"description"`
	Notes         *string       `json:"notes"`
	Address       *string       `json:"address"`
	CustomerPhone *string       `json:"customer_phone"`
	Latitude      *float64      `json:"latitude"`
	Longitude     *float64      `json:"longitude"`
	ScheduledAt   *time.Time    `json:"scheduled_at"`
	CompletedAt   *time.Time    `json:"completed_at"`
	Price         *float64      `json:"price"`
	Status        string        `json:"status" example:"scheduled"`
	Priority      string        `json:"priority" example:"medium"`
	JobType       string        `json:"job_type" example:"repair"`
	Services      []ServiceItem `json:"services"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// JobRequest creates or patches a job. On update nil fields are kept.
// Timestamps are RFC 3339 or naive "YYYY-MM-DDTHH:MM[:SS]" local time.
// UserID is honoured only on the admin endpoints.
type JobRequest struct {
	UserID        *string        `json:"user_id,omitempty"`
	CustomerName  *string        `json:"customer_name,omitempty"`
	Title         *string        `json:"title,omitempty"`
	Description   *string        `json:"description,omitempty"`
	Notes         *string        `json:"notes,omitempty"`
	Address       *string        `json:"address,omitempty"`
	CustomerPhone *string        `json:"customer_phone,omitempty"`
	Latitude      *float64       `json:"latitude,omitempty"`
	Longitude     *float64       `json:"longitude,omitempty"`
	ScheduledAt   *string        `json:"scheduled_at,omitempty" example:"2024-05-01T10:30:00+03:00"`
	CompletedAt   *string        `json:"completed_at,omitempty"`
	Price         *Amount        `json:"price,omitempty"`
	Status        *string        `json:"status,omitempty" example:"scheduled"`
	Priority      *string        `json:"priority,omitempty" example:"medium"`
	JobType       *string        `json:"job_type,omitempty" example:"repair"`
	Services      *[]ServiceItem `json:"services,omitempty"`
}

type DashboardStats struct {
	TotalJobs     int     `json:"total_jobs"`
	TodayJobs     int     `json:"today_jobs"`
	ScheduledJobs int     `json:"scheduled_jobs"`
	ActiveJobs    int     `json:"active_jobs"`
	CompletedJobs int     `json:"completed_jobs"`
	CancelledJobs int     `json:"cancelled_jobs"`
	TotalRevenue  float64 `json:"total_revenue"`
	TodayRevenue  float64 `json:"today_revenue"`
}

// RouteResponse is a proposed visiting order for one day.
type RouteResponse struct {
	Order           []string `json:"order"`
	Jobs            []Job    `json:"jobs"`
	TotalDistanceKm float64  `json:"total_distance_km"`
}

// MessageResponse is returned by operations without a resource body.
type MessageResponse struct {
	Message string `json:"message,omitempty"`
	Status  string `json:"status,omitempty"`
}

// ============================================================================
// Push Types
// ============================================================================

type VAPIDPublicKeyResponse struct {
	VAPIDPublic string `json:"vapid_public"`
}

type PushKeys struct {
	P256dh string `json:"p256dh"`
	Auth   string `json:"auth"`
}

// PushSubscribeRequest mirrors the browser PushSubscription.toJSON() shape.
type PushSubscribeRequest struct {
	Endpoint string   `json:"endpoint"`
	Keys     PushKeys `json:"keys"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse is shared by /health, /livez and /readyz.
type HealthResponse struct {
	Status   string        `json:"status"`
	Database string        `json:"database,omitempty"`
	Uptime   string        `json:"uptime,omitempty"`
	Version  string        `json:"version,omitempty"`
	Checks   *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database  string `json:"database"`
	Signer    string `json:"signer"`
	CodeStore string `json:"code_store"`
}

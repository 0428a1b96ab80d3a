package routers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"rplsite/config"
	"rplsite/database"
	"rplsite/database/dbtest"
	"rplsite/middleware"
	"rplsite/models"
	"rplsite/revalidate"
	"rplsite/routers"
	"rplsite/services/catalog"
	"rplsite/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "password123"
	leadInbox     = "leads@example.com"
)

type sentMail struct {
	to      []string
	subject string
	body    string
}

type mailbox struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *mailbox) Send(to []string, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

// bodyTo reports whether addr got a mail whose body contains text.
func (m *mailbox) bodyTo(addr, text string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, mail := range m.sent {
		for _, to := range mail.to {
			if to == addr && strings.Contains(mail.body, text) {
				return true
			}
		}
	}
	return false
}

func (m *mailbox) receivedBy(addr string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, mail := range m.sent {
		for _, to := range mail.to {
			if to == addr {
				n++
			}
		}
	}
	return n
}

var mails = &mailbox{}

func TestMain(m *testing.M) {
	config.AppConfig = &config.Config{
		JWTKey:          "test-secret",
		SaltRound:       bcrypt.MinCost,
		EmailSenderName: "RPL Website",
		LeadInbox:       leadInbox,
	}
	utils.Mail = mails
	os.Exit(m.Run())
}

type recorder struct {
	mu      sync.Mutex
	targets []revalidate.Target
}

func (r *recorder) Revalidate(_ context.Context, t revalidate.Target) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.targets = append(r.targets, t)
	return nil
}

func (r *recorder) tags() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var tags []string
	for _, t := range r.targets {
		tags = append(tags, t.Tags...)
	}
	return tags
}

type apiResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (r apiResponse) decode(t *testing.T, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Data, v), "data: %s", r.Data)
}

func (r apiResponse) fields(t *testing.T) map[string]string {
	t.Helper()
	var fields map[string]string
	r.decode(t, &fields)
	return fields
}

type testApp struct {
	app   *fiber.App
	db    *gorm.DB
	token string
	rec   *recorder
}

func setup(t *testing.T) *testApp {
	t.Helper()
	db := dbtest.Open(t)
	dbtest.Use(t, db)

	rec := &recorder{}
	prev := revalidate.Default
	revalidate.Default = rec
	t.Cleanup(func() { revalidate.Default = prev })

	_, err := database.SeedAdmin(db, adminEmail, adminPassword, bcrypt.MinCost)
	require.NoError(t, err)

	ta := &testApp{app: routers.NewApp(), db: db, rec: rec}
	ta.token = ta.login(t, adminEmail, adminPassword)
	return ta
}

func (ta *testApp) do(t *testing.T, method, path, token string, body any) (int, apiResponse) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out apiResponse
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &out), "body: %s", raw)
	return resp.StatusCode, out
}

func (ta *testApp) admin(t *testing.T, method, path string, body any) (int, apiResponse) {
	t.Helper()
	return ta.do(t, method, path, ta.token, body)
}

func (ta *testApp) login(t *testing.T, email, password string) string {
	t.Helper()
	status, resp := ta.do(t, http.MethodPost, "/auth/login", "", fiber.Map{"email": email, "password": password})
	require.Equal(t, http.StatusOK, status, resp.Message)
	var data struct {
		Token string `json:"token"`
	}
	resp.decode(t, &data)
	require.NotEmpty(t, data.Token)
	return data.Token
}

func sectionBody(title string, index int) catalog.SectionInput {
	return catalog.SectionInput{
		Title:               title,
		Index:               index,
		MetaTitle:           title + " | RPL",
		MetaDescription:     "Get recognised for your experience in " + title,
		ImageSquareLink:     "https://img.example.com/square.png",
		ImageSquarePublicId: "square",
		ImageCoverLink:      "https://img.example.com/cover.png",
		ImageCoverPublicId:  "cover",
	}
}

func courseBody(title string, index, minYears int) catalog.CourseInput {
	return catalog.CourseInput{
		Title:               title,
		Index:               index,
		Code:                "CPC30220",
		MetaTitle:           title + " | RPL",
		MetaDescription:     "Get qualified in " + title + " through RPL",
		ImageSquareLink:     "https://img.example.com/square.png",
		ImageSquarePublicId: "square",
		ImageCoverLink:      "https://img.example.com/cover.png",
		ImageCoverPublicId:  "cover",
		Description:         "<p>" + strings.Repeat("Nationally recognised qualification. ", 3) + "</p>",
		EntryRequirement:    "<ul><li>Three years of industry experience</li></ul>",
		DeliveryMode:        "ONLINE",
		MinExperienceYears:  minYears,
	}
}

func (ta *testApp) createSection(t *testing.T, title string, index int) models.Section {
	t.Helper()
	status, resp := ta.admin(t, http.MethodPost, "/admin/sections", sectionBody(title, index))
	require.Equal(t, http.StatusCreated, status, string(resp.Data))
	var s models.Section
	resp.decode(t, &s)
	return s
}

func (ta *testApp) createCourse(t *testing.T, sectionID, title string, index, minYears int) models.Course {
	t.Helper()
	status, resp := ta.admin(t, http.MethodPost, "/admin/sections/"+sectionID+"/courses", courseBody(title, index, minYears))
	require.Equal(t, http.StatusCreated, status, string(resp.Data))
	var c models.Course
	resp.decode(t, &c)
	return c
}

func TestLogin(t *testing.T) {
	ta := setup(t)

	status, resp := ta.do(t, http.MethodPost, "/auth/login", "", fiber.Map{"email": adminEmail, "password": "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid credentials!", resp.Message)

	status, resp = ta.do(t, http.MethodPost, "/auth/login", "", fiber.Map{"password": "x"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "email is required!", resp.fields(t)["email"])

	status, resp = ta.admin(t, http.MethodGet, "/auth/me", nil)
	require.Equal(t, http.StatusOK, status)
	var me models.User
	resp.decode(t, &me)
	assert.Equal(t, adminEmail, me.Email)
	assert.Equal(t, models.RoleAdmin, me.Role)
	assert.NotNil(t, me.LastLogin)
	assert.NotContains(t, string(resp.Data), "password")
}

func TestChangePassword(t *testing.T) {
	ta := setup(t)

	status, resp := ta.admin(t, http.MethodPut, "/auth/change/password", fiber.Map{
		"currentPassword": adminPassword, "newPassword": "new-password-1", "cnfPassword": "other",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "New password and confirm password do not match!", resp.fields(t)["cnfPassword"])

	status, _ = ta.admin(t, http.MethodPut, "/auth/change/password", fiber.Map{
		"currentPassword": adminPassword, "newPassword": "new-password-1", "cnfPassword": "new-password-1",
	})
	require.Equal(t, http.StatusOK, status)

	ta.login(t, adminEmail, "new-password-1")
}

func TestAdminRoutesRequireToken(t *testing.T) {
	ta := setup(t)

	for _, path := range []string{"/admin/sections", "/admin/users", "/admin/payments", "/admin/dashboard", "/admin/reviews"} {
		status, _ := ta.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, status, path)

		status, _ = ta.do(t, http.MethodGet, path, "not-a-token", nil)
		assert.Equal(t, http.StatusUnauthorized, status, path)
	}
}

func TestEditorPermissions(t *testing.T) {
	ta := setup(t)

	status, _ := ta.admin(t, http.MethodPost, "/admin/users", fiber.Map{
		"name": "Edith Editor", "email": "editor@example.com", "password": "password123", "role": "editor",
	})
	require.Equal(t, http.StatusCreated, status)
	editor := ta.login(t, "editor@example.com", "password123")

	status, _ = ta.do(t, http.MethodGet, "/admin/sections", editor, nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = ta.do(t, http.MethodGet, "/admin/dashboard", editor, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = ta.do(t, http.MethodGet, "/admin/users", editor, nil)
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = ta.do(t, http.MethodGet, "/admin/payments", editor, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestUserManagement(t *testing.T) {
	ta := setup(t)

	var me models.User
	_, resp := ta.admin(t, http.MethodGet, "/auth/me", nil)
	resp.decode(t, &me)

	status, resp := ta.admin(t, http.MethodDelete, "/admin/users/"+me.ID, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "You cannot delete your own account!", resp.Message)

	status, _ = ta.admin(t, http.MethodPatch, "/admin/users/"+me.ID, fiber.Map{"isBlocked": true})
	assert.Equal(t, http.StatusForbidden, status)

	body := fiber.Map{"name": "Sam Staff", "email": "Sam@Example.com", "password": "password123"}
	status, resp = ta.admin(t, http.MethodPost, "/admin/users", body)
	require.Equal(t, http.StatusCreated, status)
	var sam models.User
	resp.decode(t, &sam)
	assert.Equal(t, "sam@example.com", sam.Email)
	assert.Equal(t, models.RoleEditor, sam.Role)

	status, _ = ta.admin(t, http.MethodPost, "/admin/users", body)
	assert.Equal(t, http.StatusConflict, status)

	status, resp = ta.admin(t, http.MethodPost, "/admin/users", fiber.Map{"name": "X", "email": "bad", "password": "short", "role": "OWNER"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Len(t, resp.fields(t), 4)

	status, resp = ta.admin(t, http.MethodGet, "/admin/users?page=1&limit=10&status=EDITOR", nil)
	require.Equal(t, http.StatusOK, status)
	var list struct {
		Users      []models.User `json:"users"`
		Pagination struct {
			Total int64 `json:"total"`
		} `json:"pagination"`
	}
	resp.decode(t, &list)
	assert.Equal(t, int64(1), list.Pagination.Total)
	require.Len(t, list.Users, 1)
	assert.Equal(t, sam.ID, list.Users[0].ID)

	status, _ = ta.admin(t, http.MethodPatch, "/admin/users/"+sam.ID, fiber.Map{"isBlocked": true})
	require.Equal(t, http.StatusOK, status)
	status, resp = ta.do(t, http.MethodPost, "/auth/login", "", fiber.Map{"email": "sam@example.com", "password": "password123"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Your account is blocked!", resp.Message)

	status, _ = ta.admin(t, http.MethodDelete, "/admin/users/"+sam.ID, nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = ta.admin(t, http.MethodDelete, "/admin/users/"+sam.ID, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCatalogFlow(t *testing.T) {
	ta := setup(t)

	plumbing := ta.createSection(t, "Plumbing", 1)
	building := ta.createSection(t, "Building and Construction", 1)
	assert.Equal(t, "building-and-construction", building.Link)
	assert.Equal(t, 1, building.Index)

	status, resp := ta.do(t, http.MethodGet, "/catalog/sections", "", nil)
	require.Equal(t, http.StatusOK, status)
	var catalogPage struct {
		Sections []models.Section `json:"sections"`
	}
	resp.decode(t, &catalogPage)
	require.Len(t, catalogPage.Sections, 2)
	assert.Equal(t, "Building and Construction", catalogPage.Sections[0].Title)
	assert.Equal(t, "Plumbing", catalogPage.Sections[1].Title)

	// validation, range and conflict failures
	bad := sectionBody("", 1)
	status, resp = ta.admin(t, http.MethodPost, "/admin/sections", bad)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "title is required!", resp.fields(t)["title"])

	status, resp = ta.admin(t, http.MethodPost, "/admin/sections", sectionBody("Electrical", 5))
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "Index must be between 1 and 3!", resp.fields(t)["index"])

	status, _ = ta.admin(t, http.MethodPost, "/admin/sections", sectionBody("Plumbing", 1))
	assert.Equal(t, http.StatusConflict, status)

	status, _ = ta.admin(t, http.MethodGet, "/admin/sections/missing", nil)
	assert.Equal(t, http.StatusNotFound, status)

	// courses
	course := ta.createCourse(t, plumbing.ID, "Certificate III in Plumbing", 1, 3)
	assert.Equal(t, plumbing.ID, course.SectionID)
	assert.Equal(t, 1, course.Index)

	status, resp = ta.do(t, http.MethodGet, "/catalog/courses/"+course.Link, "", nil)
	require.Equal(t, http.StatusOK, status)
	var page models.Course
	resp.decode(t, &page)
	require.NotNil(t, page.Section)
	assert.Equal(t, plumbing.Link, page.Section.Link)

	status, _ = ta.admin(t, http.MethodGet, "/admin/sections/"+building.ID+"/courses/"+course.ID, nil)
	assert.Equal(t, http.StatusNotFound, status)

	// move the course to the other section
	moved := courseBody("Certificate III in Plumbing", 1, 3)
	status, resp = ta.admin(t, http.MethodPut, "/admin/sections/"+plumbing.ID+"/courses/"+course.ID, struct {
		catalog.CourseInput
		SectionID string `json:"sectionId"`
	}{moved, building.ID})
	require.Equal(t, http.StatusOK, status, string(resp.Data))
	resp.decode(t, &page)
	assert.Equal(t, building.ID, page.SectionID)

	status, resp = ta.admin(t, http.MethodDelete, "/admin/sections/"+building.ID, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "Section still has courses! Move or delete them first.", resp.Message)

	status, _ = ta.admin(t, http.MethodDelete, "/admin/sections/"+building.ID+"/courses/"+course.ID, nil)
	require.Equal(t, http.StatusOK, status)
	status, _ = ta.admin(t, http.MethodDelete, "/admin/sections/"+building.ID, nil)
	require.Equal(t, http.StatusOK, status)

	status, resp = ta.admin(t, http.MethodGet, "/admin/sections/"+plumbing.ID, nil)
	require.Equal(t, http.StatusOK, status)
	var left models.Section
	resp.decode(t, &left)
	assert.Equal(t, 1, left.Index)

	assert.Contains(t, ta.rec.tags(), "section:"+plumbing.Link)
}

func TestLeads(t *testing.T) {
	ta := setup(t)
	section := ta.createSection(t, "Plumbing", 1)
	course := ta.createCourse(t, section.ID, "Certificate III in Plumbing", 1, 3)

	eligibility := func(years int) (int, apiResponse) {
		return ta.do(t, http.MethodPost, "/leads/eligibility", "", fiber.Map{
			"name": "Pat Plumber", "email": "pat@example.com", "phone": "+61 400 000 000",
			"courseId": course.ID, "yearsOfExperience": years,
			"answers": fiber.Map{"licensed": true, "state": "NSW"},
		})
	}

	var result struct {
		IsEligible         bool `json:"isEligible"`
		MinExperienceYears int  `json:"minExperienceYears"`
	}
	status, resp := eligibility(5)
	require.Equal(t, http.StatusCreated, status, string(resp.Data))
	resp.decode(t, &result)
	assert.True(t, result.IsEligible)
	assert.Equal(t, 3, result.MinExperienceYears)

	status, resp = eligibility(1)
	require.Equal(t, http.StatusCreated, status)
	resp.decode(t, &result)
	assert.False(t, result.IsEligible)

	status, resp = ta.do(t, http.MethodPost, "/leads/eligibility", "", fiber.Map{"name": "Pat", "email": "pat@example.com", "courseId": "missing"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "Course not found!", resp.fields(t)["courseId"])

	status, resp = ta.do(t, http.MethodPost, "/leads/contact", "", fiber.Map{"name": "Pat", "email": "pat@example.com", "phone": "abc", "message": "hi"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	fields := resp.fields(t)
	assert.Contains(t, fields, "message")
	assert.Equal(t, "phone must be a valid phone number!", fields["phone"])

	status, resp = ta.do(t, http.MethodPost, "/leads/booking", "", fiber.Map{
		"name": "Pat", "email": "pat@example.com", "phone": "0400 000 000",
		"preferredDate": time.Now().Add(-time.Hour).Format(time.RFC3339),
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "Preferred date must be in the future!", resp.fields(t)["preferredDate"])

	status, resp = ta.do(t, http.MethodPost, "/leads/booking", "", fiber.Map{
		"name": "Pat", "email": "pat@example.com", "phone": "0400 000 000",
		"preferredDate": time.Now().Add(48 * time.Hour).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, status)
	var booking models.Booking
	resp.decode(t, &booking)
	assert.Equal(t, models.BookingStatusPending, booking.Status)

	status, resp = ta.admin(t, http.MethodGet, "/admin/leads/bookings?status=pending", nil)
	require.Equal(t, http.StatusOK, status)
	var bookings struct {
		Bookings   []models.Booking `json:"bookings"`
		Pagination struct {
			Total int64 `json:"total"`
		} `json:"pagination"`
	}
	resp.decode(t, &bookings)
	assert.Equal(t, int64(1), bookings.Pagination.Total)

	status, _ = ta.admin(t, http.MethodPatch, "/admin/leads/bookings/"+booking.ID, fiber.Map{"status": "NEW"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	status, resp = ta.admin(t, http.MethodPatch, "/admin/leads/bookings/"+booking.ID, fiber.Map{"status": "confirmed"})
	require.Equal(t, http.StatusOK, status)
	resp.decode(t, &booking)
	assert.Equal(t, models.BookingStatusConfirmed, booking.Status)

	status, _ = ta.admin(t, http.MethodPatch, "/admin/leads/contacts/missing", fiber.Map{"status": "CLOSED"})
	assert.Equal(t, http.StatusNotFound, status)

	status, resp = ta.admin(t, http.MethodGet, "/admin/leads/eligibility", nil)
	require.Equal(t, http.StatusOK, status)
	var checks struct {
		Checks []models.EligibilityCheck `json:"checks"`
	}
	resp.decode(t, &checks)
	require.Len(t, checks.Checks, 2)
	require.NotNil(t, checks.Checks[0].Course)
	assert.Equal(t, course.ID, checks.Checks[0].Course.ID)
	assert.JSONEq(t, `{"licensed":true,"state":"NSW"}`, string(checks.Checks[0].Answers))

	// two eligibility checks and a booking reach the inbox
	assert.Eventually(t, func() bool { return mails.receivedBy(leadInbox) >= 3 }, 2*time.Second, 10*time.Millisecond)
}

func TestReviews(t *testing.T) {
	ta := setup(t)

	status, resp := ta.do(t, http.MethodPost, "/reviews", "", fiber.Map{"name": "Robin", "rating": 6})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "Rating must be between 1 and 5!", resp.fields(t)["rating"])

	status, resp = ta.do(t, http.MethodPost, "/reviews", "", fiber.Map{
		"name": "Robin", "email": "robin@example.com", "rating": 5, "comment": "Got my certificate in weeks.",
	})
	require.Equal(t, http.StatusCreated, status)
	var review models.Review
	resp.decode(t, &review)
	assert.Equal(t, models.ReviewStatusPending, review.Status)

	var public struct {
		Reviews []models.Review `json:"reviews"`
	}
	publicReviews := func() []models.Review {
		status, resp := ta.do(t, http.MethodGet, "/reviews", "", nil)
		require.Equal(t, http.StatusOK, status)
		public.Reviews = nil
		resp.decode(t, &public)
		return public.Reviews
	}
	assert.Empty(t, publicReviews())

	status, _ = ta.admin(t, http.MethodPatch, "/admin/reviews/"+review.ID+"/approve", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, ta.rec.tags(), "reviews")

	approved := publicReviews()
	require.Len(t, approved, 1)
	assert.Equal(t, "Robin", approved[0].Name)
	assert.Empty(t, approved[0].Email)

	status, _ = ta.admin(t, http.MethodPatch, "/admin/reviews/"+review.ID+"/reject", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, publicReviews())

	status, _ = ta.admin(t, http.MethodDelete, "/admin/reviews/"+review.ID, nil)
	require.Equal(t, http.StatusOK, status)
	status, _ = ta.admin(t, http.MethodDelete, "/admin/reviews/"+review.ID, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestPayments(t *testing.T) {
	ta := setup(t)
	section := ta.createSection(t, "Plumbing", 1)
	course := ta.createCourse(t, section.ID, "Certificate III in Plumbing", 1, 3)

	payment := func(status, reference string) fiber.Map {
		return fiber.Map{
			"payerName": "Pat Plumber", "payerEmail": "pat@example.com", "courseId": course.ID,
			"amountCents": 149900, "method": "card", "reference": reference, "status": status,
		}
	}

	status, resp := ta.admin(t, http.MethodPost, "/admin/payments", payment("paid", "INV-1"))
	require.Equal(t, http.StatusCreated, status, string(resp.Data))
	var paid models.Payment
	resp.decode(t, &paid)
	assert.Equal(t, "AUD", paid.Currency)
	assert.NotNil(t, paid.PaidAt)

	status, _ = ta.admin(t, http.MethodPost, "/admin/payments", payment("PAID", "INV-1"))
	assert.Equal(t, http.StatusConflict, status)

	status, resp = ta.admin(t, http.MethodPost, "/admin/payments", payment("", "INV-2"))
	require.Equal(t, http.StatusCreated, status)
	var pending models.Payment
	resp.decode(t, &pending)
	assert.Equal(t, models.PaymentStatusPending, pending.Status)
	assert.Nil(t, pending.PaidAt)

	status, _ = ta.admin(t, http.MethodPatch, "/admin/payments/"+pending.ID+"/status", fiber.Map{"status": "REFUNDED"})
	assert.Equal(t, http.StatusConflict, status)
	status, _ = ta.admin(t, http.MethodPatch, "/admin/payments/"+paid.ID+"/status", fiber.Map{"status": "REFUNDED"})
	assert.Equal(t, http.StatusOK, status)

	status, resp = ta.admin(t, http.MethodGet, "/admin/payments?status=PENDING", nil)
	require.Equal(t, http.StatusOK, status)
	var list struct {
		Payments []models.Payment `json:"payments"`
	}
	resp.decode(t, &list)
	require.Len(t, list.Payments, 1)
	assert.Equal(t, pending.ID, list.Payments[0].ID)

	status, resp = ta.admin(t, http.MethodGet, "/admin/payments?status=LOST", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, resp.fields(t), "status")
}

func TestDashboard(t *testing.T) {
	ta := setup(t)
	section := ta.createSection(t, "Plumbing", 1)
	ta.createCourse(t, section.ID, "Certificate III in Plumbing", 1, 3)

	status, resp := ta.admin(t, http.MethodGet, "/admin/dashboard", nil)
	require.Equal(t, http.StatusOK, status)
	var stats struct {
		Sections int64            `json:"sections"`
		Courses  int64            `json:"courses"`
		Reviews  map[string]int64 `json:"reviews"`
	}
	resp.decode(t, &stats)
	assert.Equal(t, int64(1), stats.Sections)
	assert.Equal(t, int64(1), stats.Courses)
	assert.Equal(t, int64(0), stats.Reviews[models.ReviewStatusPending])
}

func TestLeads_FormEncodedNotification(t *testing.T) {
	ta := setup(t)
	assert.True(t, ta.app.Config().Immutable)

	submit := func(name, message string) int {
		form := url.Values{"name": {name}, "email": {"form@example.com"}, "message": {message}}
		req := httptest.NewRequest(http.MethodPost, "/leads/contact", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
		resp, err := ta.app.Test(req, -1)
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}

	require.Equal(t, http.StatusCreated, submit("Robin Roofer", "Please call me about roofing recognition"))
	// later requests reuse the request buffers
	for i := 0; i < 5; i++ {
		require.Equal(t, http.StatusCreated, submit("Zed Zzzzzz", strings.Repeat("z", 40)))
	}

	assert.Eventually(t, func() bool {
		return mails.bodyTo(leadInbox, "Please call me about roofing recognition") &&
			mails.bodyTo("form@example.com", "Hi Robin Roofer,")
	}, 2*time.Second, 10*time.Millisecond)
}

type cachedPage struct {
	cache string
	resp  apiResponse
}

func (ta *testApp) page(t *testing.T, path string) cachedPage {
	t.Helper()
	resp, err := ta.app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode, path)

	var out apiResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return cachedPage{cache: resp.Header.Get("X-Cache"), resp: out}
}

func TestCatalogPagesRefreshAfterReorder(t *testing.T) {
	ta := setup(t)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	pages := revalidate.NewPageCache(rdb, time.Minute)
	prev := middleware.Pages
	middleware.Pages = pages
	t.Cleanup(func() { middleware.Pages = prev })
	revalidate.Default = revalidate.Multi{ta.rec, pages}

	plumbing := ta.createSection(t, "Plumbing", 1)
	electrical := ta.createSection(t, "Electrical", 2)
	alpha := ta.createCourse(t, plumbing.ID, "Alpha", 1, 3)
	ta.createCourse(t, plumbing.ID, "Bravo", 2, 3)

	var course models.Course
	p := ta.page(t, "/catalog/courses/bravo")
	assert.Equal(t, "MISS", p.cache)
	p = ta.page(t, "/catalog/courses/bravo")
	assert.Equal(t, "HIT", p.cache)
	p.resp.decode(t, &course)
	assert.Equal(t, 2, course.Index)

	var section models.Section
	ta.page(t, "/catalog/sections/electrical")
	p = ta.page(t, "/catalog/sections/electrical")
	assert.Equal(t, "HIT", p.cache)

	// moving a sibling shifts bravo
	status, resp := ta.admin(t, http.MethodPut, "/admin/sections/"+plumbing.ID+"/courses/"+alpha.ID, courseBody("Alpha", 2, 3))
	require.Equal(t, http.StatusOK, status, string(resp.Data))

	p = ta.page(t, "/catalog/courses/bravo")
	assert.Equal(t, "MISS", p.cache)
	p.resp.decode(t, &course)
	assert.Equal(t, 1, course.Index)

	// moving plumbing shifts electrical and the section embedded in bravo
	status, resp = ta.admin(t, http.MethodPut, "/admin/sections/"+plumbing.ID, sectionBody("Plumbing", 2))
	require.Equal(t, http.StatusOK, status, string(resp.Data))

	p = ta.page(t, "/catalog/sections/"+electrical.Link)
	assert.Equal(t, "MISS", p.cache)
	p.resp.decode(t, &section)
	assert.Equal(t, 1, section.Index)

	p = ta.page(t, "/catalog/courses/bravo")
	assert.Equal(t, "MISS", p.cache)
	course = models.Course{}
	p.resp.decode(t, &course)
	require.NotNil(t, course.Section)
	assert.Equal(t, 2, course.Section.Index)
}

package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/residence-hub/backend/config"
	"github.com/residence-hub/backend/internal/infra/dependency"
	"github.com/residence-hub/backend/internal/integration/email"
	"github.com/residence-hub/backend/internal/integration/persistence/model"
	"github.com/residence-hub/backend/internal/integration/reminder"
	"github.com/residence-hub/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

var tags string

func init() {
	flag.StringVar(&tags, "scenarios", "", "tags to run")
}

func TestFeatures(t *testing.T) {
	flag.Parse()

	suite := godog.TestSuite{
		Name: "residence-hub-api",
		ScenarioInitializer: func(s *godog.ScenarioContext) {
			InitializeScenario(s)
		},
		Options: &godog.Options{
			Format:      "pretty",
			Paths:       []string{"../features"},
			Tags:        tags,
			Concurrency: 1,
			Strict:      true,
			TestingT:    t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

type testContext struct {
	uri         string
	headers     map[string]string
	client      *http.Client
	response    *response
	db          *mock.Db
	timeMock    *mock.Time
	resend      *mock.ResendMock
	accessToken string
	residentIDs map[string]uuid.UUID
	lastID      string
	lastSweep   *reminder.SweepResult
	lastBatch   email.BatchResult
}

type response struct {
	status int
	body   any
}

var (
	serverInit     sync.Once
	testDB         *mock.Db
	testTime       = mock.NewTime()
	testResend     = mock.NewResendMock()
	testInjector   *dependency.Injector
	testServerPort int
	portInit       sync.Once
)

func initializePort() {
	portInit.Do(func() {
		testServerPort = findAvailablePort()
		_ = os.Setenv("SERVER_PORT", strconv.Itoa(testServerPort))
		_ = os.Setenv("ENV", "test")
	})
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	initializePort()

	test := &testContext{
		uri:      fmt.Sprintf("http://localhost:%d", testServerPort),
		client:   &http.Client{Timeout: 10 * time.Second},
		timeMock: testTime,
		resend:   testResend,
		db: mock.NewDb("residence_hub",
			&model.ResidentModel{},
			&model.PaymentModel{},
			&model.ExpenseModel{},
			&model.AuditLogModel{},
			&model.EmailQueueModel{},
		),
	}

	testDB = test.db

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)
	ctx.Given(`^the current time is "([^"]*)"$`, test.theCurrentTimeIs)

	// Auth steps
	ctx.Given(`^I am logged in as "([^"]*)" with role "([^"]*)"$`, test.iAmLoggedInAsWithRole)
	ctx.Given(`^my access token has expired$`, test.myAccessTokenHasExpired)
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Seeding steps
	ctx.Given(`^the following residents exist:$`, test.theFollowingResidentsExist)
	ctx.Given(`^the following payments exist:$`, test.theFollowingPaymentsExist)
	ctx.Given(`^the following expenses exist:$`, test.theFollowingExpensesExist)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Reminder and email steps
	ctx.When(`^the reminder scheduler ticks$`, test.theReminderSchedulerTicks)
	ctx.When(`^the sweep guard expires$`, test.theSweepGuardExpires)
	ctx.When(`^the email worker processes the queue$`, test.theEmailWorkerProcessesTheQueue)
	ctx.Given(`^the email provider rejects emails with status (\d+)$`, test.theEmailProviderRejectsEmailsWithStatus)
	ctx.Then(`^a sweep should have run for period "([^"]*)" with (\d+) sent and (\d+) skipped$`, test.aSweepShouldHaveRunForPeriod)
	ctx.Then(`^no sweep should have run$`, test.noSweepShouldHaveRun)
	ctx.Then(`^the email worker should have sent (\d+) and failed (\d+)$`, test.theEmailWorkerShouldHaveSent)
	ctx.Then(`^the email provider should have received (\d+) emails?$`, test.theEmailProviderShouldHaveReceived)
	ctx.Then(`^the email provider should have received an email to "([^"]*)" with subject "([^"]*)"$`, test.theEmailProviderShouldHaveReceivedAnEmailTo)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items?$`, test.theResponseFieldShouldHaveItems)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
}

func findAvailablePort() int {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		panic(err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}

func (t *testContext) before() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
	t.residentIDs = make(map[string]uuid.UUID)
	t.lastID = ""
	t.lastSweep = nil
	t.lastBatch = email.BatchResult{}
	t.response = nil
	t.timeMock.Reset()
	t.resend.Clear()

	if err := mock.ClearRedis(mock.NewRedis()); err != nil {
		return err
	}
	if t.db != nil {
		return t.db.ClearDB()
	}
	return nil
}

func testConfig() *config.Config {
	cfg := config.Load()
	cfg.Server.Environment = "test"
	cfg.JWT.Secret = testJWTSecret
	cfg.Email.ResendAPIKey = "re_test_key"
	cfg.Email.ResendBaseURL = testResend.GetUrl()
	cfg.Email.FromEmail = "office@casaverde.test"
	cfg.Email.BatchSize = 50
	cfg.Facility = config.FacilityConfig{Name: "Casa Verde", TotalRooms: 10, Currency: "BRL"}
	cfg.Reminder.Schedule = "0 9 * * *"
	cfg.Reminder.Timezone = "UTC"
	cfg.Reminder.GuardBackend = config.GuardBackendRedis
	cfg.Reminder.GuardTTL = 36 * time.Hour
	cfg.Redis.Enabled = true
	return cfg
}

func (t *testContext) startServer() error {
	var startErr error
	serverInit.Do(func() {
		gin.SetMode(gin.TestMode)
		testResend.Start()

		injector, err := dependency.NewInjector(testConfig(), testDB.DbConn, dependency.Options{
			Redis: mock.NewRedis(),
			Clock: testTime,
		})
		if err != nil {
			startErr = err
			return
		}
		testInjector = injector

		server := &http.Server{
			Addr:    fmt.Sprintf(":%d", testServerPort),
			Handler: injector.Router.Setup("test"),
		}
		go func() {
			_ = server.ListenAndServe()
		}()
	})
	if startErr != nil {
		return startErr
	}

	// Wait for server to be ready
	for i := 0; i < 50; i++ {
		resp, err := http.Get(t.uri + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	return errors.New("API server did not become healthy")
}

func (t *testContext) theAPIServerIsRunning() error {
	return t.startServer()
}

func (t *testContext) theCurrentTimeIs(value string) error {
	now, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return fmt.Errorf("invalid time %q: %w", value, err)
	}
	t.timeMock.SetCurrentTime(now)
	return nil
}

func (t *testContext) signToken(email, role string, expiresIn time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"email":      email,
		"role":       role,
		"token_type": "access",
		"exp":        jwt.NewNumericDate(now.Add(expiresIn)),
		"iat":        jwt.NewNumericDate(now.Add(-time.Hour)),
		"nbf":        jwt.NewNumericDate(now.Add(-time.Hour)),
		"iss":        "residence-hub",
		"sub":        uuid.NewSHA1(uuid.NameSpaceOID, []byte(email)).String(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(testJWTSecret))
}

func (t *testContext) iAmLoggedInAsWithRole(email, role string) error {
	token, err := t.signToken(email, role, 15*time.Minute)
	if err != nil {
		return fmt.Errorf("failed to generate access token: %w", err)
	}
	t.accessToken = token
	return nil
}

func (t *testContext) myAccessTokenHasExpired() error {
	token, err := t.signToken("late@casaverde.test", "staff", -10*time.Minute)
	if err != nil {
		return err
	}
	t.accessToken = token
	return nil
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = "" // Clear access token to simulate unauthenticated request
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

// tableRows maps a godog table to one map per data row keyed by header.
func tableRows(table *godog.Table) []map[string]string {
	if table == nil || len(table.Rows) < 2 {
		return nil
	}
	header := table.Rows[0].Cells
	rows := make([]map[string]string, 0, len(table.Rows)-1)
	for _, row := range table.Rows[1:] {
		values := make(map[string]string, len(header))
		for i, cell := range row.Cells {
			values[header[i].Value] = strings.TrimSpace(cell.Value)
		}
		rows = append(rows, values)
	}
	return rows
}

func parseDay(value string) (time.Time, error) {
	return time.Parse(time.DateOnly, value)
}

func (t *testContext) theFollowingResidentsExist(table *godog.Table) error {
	for i, row := range tableRows(table) {
		checkIn, err := parseDay(row["check_in"])
		if err != nil {
			return fmt.Errorf("row %d check_in: %w", i, err)
		}
		rent, err := decimal.NewFromString(row["rent"])
		if err != nil {
			return fmt.Errorf("row %d rent: %w", i, err)
		}
		identity := row["identity"]
		if identity == "" {
			identity = fmt.Sprintf("ID-%04d", i+1)
		}

		now := time.Now().UTC()
		resident := &model.ResidentModel{
			ID:             uuid.New(),
			FullName:       row["name"],
			IdentityNumber: identity,
			Email:          row["email"],
			RoomNumber:     row["room"],
			CheckInDate:    checkIn,
			MonthlyRent:    rent,
			IsActive:       row["active"] != "false",
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if !resident.IsActive {
			out := checkIn.AddDate(0, 1, 0)
			resident.CheckOutDate = &out
		}
		if err := t.db.DbConn.Create(resident).Error; err != nil {
			return err
		}
		t.residentIDs[resident.FullName] = resident.ID
	}
	return nil
}

func (t *testContext) theFollowingPaymentsExist(table *godog.Table) error {
	for i, row := range tableRows(table) {
		residentID, ok := t.residentIDs[row["resident"]]
		if !ok {
			return fmt.Errorf("row %d: unknown resident %q", i, row["resident"])
		}
		paidAt, err := parseDay(row["date"])
		if err != nil {
			return fmt.Errorf("row %d date: %w", i, err)
		}
		amount, err := decimal.NewFromString(row["amount"])
		if err != nil {
			return fmt.Errorf("row %d amount: %w", i, err)
		}
		period := row["period"]
		if period == "" {
			period = paidAt.Format("2006-01")
		}
		method := row["method"]
		if method == "" {
			method = "cash"
		}

		payment := &model.PaymentModel{
			ID:            uuid.New(),
			ResidentID:    residentID,
			Amount:        amount,
			PaymentDate:   paidAt,
			ForMonth:      period,
			PaymentMethod: method,
			CreatedAt:     time.Now().UTC(),
		}
		if err := t.db.DbConn.Create(payment).Error; err != nil {
			return err
		}
	}
	return nil
}

func (t *testContext) theFollowingExpensesExist(table *godog.Table) error {
	for i, row := range tableRows(table) {
		spentAt, err := parseDay(row["date"])
		if err != nil {
			return fmt.Errorf("row %d date: %w", i, err)
		}
		amount, err := decimal.NewFromString(row["amount"])
		if err != nil {
			return fmt.Errorf("row %d amount: %w", i, err)
		}
		expense := &model.ExpenseModel{
			ID:          uuid.New(),
			Category:    row["category"],
			Description: row["description"],
			Amount:      amount,
			ExpenseDate: spentAt,
			CreatedAt:   time.Now().UTC(),
		}
		if err := t.db.DbConn.Create(expense).Error; err != nil {
			return err
		}
	}
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload)
}

var residentPlaceholder = regexp.MustCompile(`\{\{resident:([^}]+)\}\}`)

// replacePlaceholders expands {{resident:Full Name}} to the seeded resident
// ID and {{last_id}} to the id of the previous response.
func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{last_id}}", t.lastID)
	content = strings.ReplaceAll(content, "{{unknown_id}}", uuid.NewSHA1(uuid.NameSpaceURL, []byte("missing")).String())
	return residentPlaceholder.ReplaceAllStringFunc(content, func(match string) string {
		name := residentPlaceholder.FindStringSubmatch(match)[1]
		if id, ok := t.residentIDs[name]; ok {
			return id.String()
		}
		return match
	})
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var req *http.Request
	var err error

	url := t.uri + path

	if payload != nil {
		req, err = http.NewRequest(method, url, bytes.NewReader(payload))
	} else {
		req, err = http.NewRequest(method, url, nil)
	}
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}

	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{
		status: resp.StatusCode,
	}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
		return nil
	}
	t.response.body = responseBody

	if id, ok := responseBody["id"].(string); ok {
		t.lastID = id
		if name, ok := responseBody["full_name"].(string); ok {
			if parsed, err := uuid.Parse(id); err == nil {
				t.residentIDs[name] = parsed
			}
		}
	}

	return nil
}

func (t *testContext) theReminderSchedulerTicks() error {
	result, err := testInjector.Scheduler.Tick(context.Background())
	if err != nil {
		return fmt.Errorf("tick failed: %w", err)
	}
	t.lastSweep = result
	return nil
}

func (t *testContext) theSweepGuardExpires() error {
	mock.FastForwardRedis(37 * time.Hour)
	return nil
}

func (t *testContext) theEmailWorkerProcessesTheQueue() error {
	t.lastBatch = testInjector.EmailWorker.ProcessNow(context.Background())
	return nil
}

func (t *testContext) theEmailProviderRejectsEmailsWithStatus(status int) error {
	t.resend.SetStatus(status)
	return nil
}

func (t *testContext) aSweepShouldHaveRunForPeriod(period string, sent, skipped int) error {
	if t.lastSweep == nil {
		return errors.New("no sweep ran")
	}
	if got := t.lastSweep.Period.String(); got != period {
		return fmt.Errorf("sweep period = %s, want %s", got, period)
	}
	if t.lastSweep.Sent != sent || t.lastSweep.Skipped != skipped {
		return fmt.Errorf("sweep sent/skipped = %d/%d, want %d/%d", t.lastSweep.Sent, t.lastSweep.Skipped, sent, skipped)
	}
	return nil
}

func (t *testContext) noSweepShouldHaveRun() error {
	if t.lastSweep != nil {
		return fmt.Errorf("expected no sweep, got %+v", *t.lastSweep)
	}
	return nil
}

func (t *testContext) theEmailWorkerShouldHaveSent(sent, failed int) error {
	if t.lastBatch.Sent != sent || t.lastBatch.Failed != failed {
		return fmt.Errorf("batch = %+v, want sent %d failed %d", t.lastBatch, sent, failed)
	}
	return nil
}

func (t *testContext) theEmailProviderShouldHaveReceived(count int) error {
	if got := len(t.resend.Requests()); got != count {
		return fmt.Errorf("email provider received %d emails, want %d", got, count)
	}
	return nil
}

func (t *testContext) theEmailProviderShouldHaveReceivedAnEmailTo(recipient, subject string) error {
	for _, req := range t.resend.Requests() {
		to, _ := req["to"].([]any)
		for _, addr := range to {
			if addr == recipient && req["subject"] == subject {
				return nil
			}
		}
	}
	return fmt.Errorf("no email to %s with subject %q in %v", recipient, subject, t.resend.Requests())
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(map[string]any); !ok {
		return fmt.Errorf("response is not JSON: %v", t.response.body)
	}
	return nil
}

func (t *testContext) responseObject() (map[string]any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}
	return body, nil
}

func (t *testContext) theResponseShouldContain(field string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}
	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}

	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}
	if getFieldValue(body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, count int) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}
	items, ok := getFieldValue(body, field).([]any)
	if !ok {
		if count == 0 && getFieldValue(body, field) == nil {
			return nil
		}
		return fmt.Errorf("field '%s' is not a list: %v", field, body)
	}
	if len(items) != count {
		return fmt.Errorf("field '%s' has %d items, want %d", field, len(items), count)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	return t.countRows(quantity, table, nil)
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(t.replacePlaceholders(content.Content)), &criteria); err != nil {
		return err
	}
	return t.countRows(quantity, table, criteria)
}

func (t *testContext) countRows(quantity int, table string, criteria map[string]any) error {
	entity, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(entity).Elem()
	entitySlice := reflect.MakeSlice(reflect.SliceOf(entityType), 0, 0)
	entitySlicePtr := reflect.New(entitySlice.Type())
	entitySlicePtr.Elem().Set(entitySlice)

	query := t.db.DbConn.Unscoped()
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	result := query.Find(entitySlicePtr.Interface())
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	count := entitySlicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

func getFieldValue(object any, dotSeparatedField string) any {
	if object == nil {
		return nil
	}

	var objectMap map[string]any
	switch v := object.(type) {
	case map[string]any:
		objectMap = v
	default:
		objectJSON, _ := json.Marshal(object)
		if err := json.Unmarshal(objectJSON, &objectMap); err != nil {
			return nil
		}
	}

	fields := strings.Split(dotSeparatedField, ".")
	var field any = objectMap

	for _, currentField := range fields {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			if arr, ok := field.([]any); ok && i < len(arr) {
				field = arr[i]
			} else {
				return nil
			}
		} else {
			if m, ok := field.(map[string]any); ok {
				field = m[currentField]
			} else {
				return nil
			}
		}
	}

	return field
}

package echoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/shulehq/shule/core"
	"github.com/shulehq/shule/core/access"
	"github.com/shulehq/shule/core/reception"
	"github.com/shulehq/shule/core/user"
	emailsvc "github.com/shulehq/shule/services/email"
	logsvc "github.com/shulehq/shule/services/logger"
	dummydb "github.com/shulehq/shule/storage/database/dummy"
)

var (
	testConf = &core.Config{
		Env:                       "TEST",
		TestMode:                  true,
		AppName:                   "Shule",
		SecretKey:                 "n0t-so-s3cret",
		FrontendBaseURL:           "http://localhost:3000",
		DefaultFromName:           "Shule",
		DefaultFromEmail:          "noreply@test.cd",
		PasswordResetTimeoutDelta: time.Hour,
		Server: core.ServerConfig{
			Host:                      "localhost",
			Port:                      8000,
			JWTExpirationDelta:        time.Hour,
			JWTRefreshExpirationDelta: 4 * time.Hour,
			ShutdownTimeout:           5 * time.Second,
		},
	}

	usrRepo user.Repository
	visRepo reception.Repository

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
	errForbidden    = httpErr{Error: "permission denied"}
)

type httpErr struct {
	Error string `json:"error"`
}

func setup(t *testing.T) Server {
	t.Helper()

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open() failed: %v", err)
	}
	usrRepo = dummydb.NewUserRepository(db)
	visRepo = dummydb.NewVisitorRepository(db)

	// set up services
	mailSvc := emailsvc.NewConsoleServiceMock(testConf)
	usrSvc := user.NewService(testConf, usrRepo, mailSvc)
	recSvc := reception.NewService(visRepo)

	validate := validator.New()
	translator := newTestTranslator()
	core.InitValidators(validate, translator)
	user.RegisterValidators(validate, translator)

	// set up server
	return NewServer(
		ServerDeps{
			DisableReqLogs: true,
			Conf:           testConf,
			Logger:         logsvc.NewStdLogger(log.New(io.Discard, "", 0)),
			UserSvc:        usrSvc,
			ReceptionSvc:   recSvc,
			Validate:       validate,
			Translator:     translator,
		},
	)
}

func newTestTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

func createUser(t *testing.T, name, uname, email, pwd string, role access.Role, isActive bool) user.User {
	t.Helper()

	now := time.Now().UTC()
	usr := user.User{
		Name:        name,
		Username:    uname,
		Email:       email,
		IsActive:    &isActive,
		Role:        role,
		Permissions: access.Defaults(role),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := usr.SetPassword(pwd); err != nil {
		t.Fatalf("SetPassword() failed: %v", err)
	}
	usr, err := usrRepo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func getToken(t *testing.T, usr user.User) string {
	t.Helper()

	claims := GetUserClaims(testConf, usr)
	token, err := GenerateToken(testConf, claims)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func marshallObj(t *testing.T, obj interface{}) []byte {
	t.Helper()

	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshallObj() failed: %v", err)
	}
	return data
}

func decodeObj(t *testing.T, body []byte, obj interface{}) {
	t.Helper()

	if err := json.Unmarshal(body, obj); err != nil {
		t.Fatalf("decodeObj() failed: %v; body: %s", err, body)
	}
}

package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trezcool/prepclass/core"
	"github.com/trezcool/prepclass/core/material"
	"github.com/trezcool/prepclass/core/user"
	"github.com/trezcool/prepclass/services/email"
	"github.com/trezcool/prepclass/services/llm"
	"github.com/trezcool/prepclass/services/logger"
	"github.com/trezcool/prepclass/storage/database/inmem"
)

var (
	usrRepo user.Repository
	matRepo material.Repository
	gen     *llmsvc.DummyGenerator

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
)

func setup(t *testing.T) Server {
	t.Helper()

	// error bodies are stable JSON only outside debug mode
	core.Conf.Debug = false
	core.Conf.TestMode = true

	db := inmemdb.Open()
	usrRepo = inmemdb.NewUserRepository(db)
	matRepo = inmemdb.NewMaterialRepository(db)
	gen = llmsvc.NewDummyGenerator()
	emailsvc.ClearSentMessages()

	logger, err := logsvc.NewZapLogger(core.Conf)
	require.NoError(t, err)

	return NewServer(
		&Options{
			DisableReqLogs: true,
			UserSvc:        user.NewService(usrRepo),
			MaterialSvc:    material.NewService(matRepo, gen),
			EmailSvc:       emailsvc.NewConsoleServiceMock(),
			Logger:         logger,
		},
	)
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	// check runs instead of the wantData comparison; for dynamic bodies
	check func(t *testing.T, rec *httptest.ResponseRecorder)
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

func getToken(t *testing.T, usr user.User) string {
	t.Helper()

	claims := GetUserClaims(usr)
	token, err := GenerateToken(claims)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marshallObj(t *testing.T, obj interface{}) []byte {
	t.Helper()

	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) bool {
	t.Helper()

	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		t.Fatalf("jsonBytesEqual() failed: %v", err)
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		t.Fatalf("jsonBytesEqual() failed: %v", err)
	}
	return assertEqualJSON(j1, j2)
}

func assertEqualJSON(j1, j2 interface{}) bool {
	b1, _ := json.Marshal(j1)
	b2, _ := json.Marshal(j2)
	return bytes.Equal(b1, b2)
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()

	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v; body = %s", rec.Code, tt.wantCode, rec.Body.String())
	}
	if tt.check != nil {
		tt.check(t, rec)
		return
	}
	if tt.wantData == nil {
		return
	}
	if !jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData) {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

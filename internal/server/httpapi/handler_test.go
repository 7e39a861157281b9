package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewbase/crewbase/internal/logging"
	"github.com/crewbase/crewbase/internal/server/config"
	"github.com/crewbase/crewbase/internal/server/models"
	"github.com/crewbase/crewbase/internal/server/repositories/accounts"
	"github.com/crewbase/crewbase/internal/server/repositories/credentials"
	"github.com/crewbase/crewbase/internal/server/repositories/memberships"
	"github.com/crewbase/crewbase/internal/server/repositories/preferences"
	"github.com/crewbase/crewbase/internal/server/repositories/sessions"
	"github.com/crewbase/crewbase/internal/server/repositories/teams"
	"github.com/crewbase/crewbase/internal/server/services"
	"github.com/crewbase/crewbase/internal/storex"
)

func newTestServer(t *testing.T) (*httptest.Server, *storex.MemStore) {
	t.Helper()
	db := storex.NewMemStore(models.Schema)
	log := logging.NewNoopLogger()

	cfg := &config.Config{
		SecretKey:                   "test-secret",
		AccessTokenValidityDuration: time.Hour,
		AuthAppID:                   "crewbase",
		AuthAppKey:                  "app-key",
		AuthRealm:                   "crewbase@test",
		DefaultLocale:               "en-US",
		DefaultTimeZone:             "UTC",
	}

	ar := accounts.NewStoreRepository(db)
	cr := credentials.NewStoreRepository(db)
	tr := teams.NewStoreRepository(db)
	mr := memberships.NewStoreRepository(db)
	pr := preferences.NewStoreRepository(db)
	sr := sessions.NewStoreRepository(db)

	guard := services.NewUniquenessGuard(db, log)
	prov := services.NewProvisioningService(db, ar, cr, tr, guard, log)
	auth := services.NewAuthService(ar, cr, sr, cfg, log)

	h := NewHandler(prov, auth, ar, tr, mr, pr, cfg, log)
	srv := httptest.NewServer(NewRouter(h))
	t.Cleanup(srv.Close)
	return srv, db
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, apiResponse) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env apiResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func dataField(t *testing.T, env apiResponse, key string) string {
	t.Helper()
	m, ok := env.Data.(map[string]any)
	require.True(t, ok, "data is not an object: %#v", env.Data)
	v, _ := m[key].(string)
	return v
}

func createAccount(t *testing.T, srv *httptest.Server, id, email, password string) {
	t.Helper()
	resp, env := doJSON(t, http.MethodPost, srv.URL+"/accounts", createAccountRequest{
		ID: id, Email: email, Password: password,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "create account: %+v", env)
}

func TestAccountLifecycle(t *testing.T) {
	srv, _ := newTestServer(t)

	createAccount(t, srv, "u1", "u1@x.com", "pw1")

	resp, env := doJSON(t, http.MethodGet, srv.URL+"/accounts/u1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "u1@x.com", dataField(t, env, "email"))

	// Duplicate id and duplicate email both conflict.
	resp, env = doJSON(t, http.MethodPost, srv.URL+"/accounts", createAccountRequest{
		ID: "u1", Email: "other@x.com", Password: "pw",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "error.userAlreadyExists", env.Code)

	resp, env = doJSON(t, http.MethodPost, srv.URL+"/accounts", createAccountRequest{
		ID: "u2", Email: "u1@x.com", Password: "pw",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "error.userAlreadyExists", env.Code)

	resp, _ = doJSON(t, http.MethodDelete, srv.URL+"/accounts/u1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, env = doJSON(t, http.MethodGet, srv.URL+"/accounts/u1", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "error.notFound", env.Code)

	// Deletion freed the email for reuse.
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/accounts", createAccountRequest{
		ID: "u3", Email: "u1@x.com", Password: "pw",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestCreateAccount_Validation(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, env := doJSON(t, http.MethodPost, srv.URL+"/accounts", createAccountRequest{
		ID: "u1", Email: "u1@x.com",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "error.invalidArgument", env.Code)
}

func TestCreateAccount_WritesDefaultPreferences(t *testing.T) {
	srv, db := newTestServer(t)

	createAccount(t, srv, "u1", "u1@x.com", "pw1")

	pr := preferences.NewStoreRepository(db)
	p, err := pr.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "en-US", p.Locale)
	assert.Equal(t, "UTC", p.TimeZone)
}

func TestChallengeLoginFlow(t *testing.T) {
	srv, _ := newTestServer(t)
	createAccount(t, srv, "u1", "u1@x.com", "pw1")

	resp, env := doJSON(t, http.MethodGet, srv.URL+"/auth/challenge", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	nonce := dataField(t, env, "nonce")
	require.NotEmpty(t, nonce)

	loginCtx := fmt.Sprintf("%s:%s:%s:%s:%s",
		dataField(t, env, "appId"), dataField(t, env, "appKey"),
		dataField(t, env, "realm"), nonce, "pw1")

	resp, env = doJSON(t, http.MethodPost, srv.URL+"/auth/login", loginRequest{
		Identity: "u1", Context: loginCtx,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := env.Data.(map[string]any)
	assert.NotEmpty(t, data["accessToken"])
	profile := data["profile"].(map[string]any)
	assert.Equal(t, "u1", profile["id"])

	// Wrong password collapses into a generic credential failure.
	resp, env = doJSON(t, http.MethodPost, srv.URL+"/auth/login", loginRequest{
		Identity: "u1",
		Context:  fmt.Sprintf("crewbase:app-key:crewbase@test:%s:nope", nonce),
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "error.invalidCredentials", env.Code)

	// So does an unknown identity.
	resp, env = doJSON(t, http.MethodPost, srv.URL+"/auth/login", loginRequest{
		Identity: "ghost", Context: loginCtx,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "error.invalidCredentials", env.Code)

	// Malformed context is a 400, not a 401.
	resp, env = doJSON(t, http.MethodPost, srv.URL+"/auth/login", loginRequest{
		Identity: "u1", Context: "a:b:c",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "error.invalidParameters", env.Code)
}

func TestTeamAndMembers(t *testing.T) {
	srv, _ := newTestServer(t)
	createAccount(t, srv, "u1", "u1@x.com", "pw1")

	resp, env := doJSON(t, http.MethodPost, srv.URL+"/teams", createTeamRequest{
		Name: "platform", CreatorID: "u1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	teamID := dataField(t, env, "id")
	require.NotEmpty(t, teamID)

	resp, env = doJSON(t, http.MethodPost, srv.URL+"/teams", createTeamRequest{Name: "platform"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "error.teamAlreadyExists", env.Code)

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/teams/"+teamID+"/members", addMemberRequest{
		AccountID: "u1", Role: "owner",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Unknown account cannot be added.
	resp, env = doJSON(t, http.MethodPost, srv.URL+"/teams/"+teamID+"/members", addMemberRequest{
		AccountID: "ghost",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, env = doJSON(t, http.MethodGet, srv.URL+"/teams/"+teamID+"/members", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list, ok := env.Data.([]any)
	require.True(t, ok)
	require.Len(t, list, 1)

	resp, _ = doJSON(t, http.MethodDelete, srv.URL+"/teams/"+teamID+"/members/u1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, env = doJSON(t, http.MethodGet, srv.URL+"/teams/"+teamID+"/members", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, env.Data)

	resp, _ = doJSON(t, http.MethodDelete, srv.URL+"/teams/"+teamID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Name is free again after deletion.
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/teams", createTeamRequest{Name: "platform"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/crewbase/crewbase/internal/logging"
	"github.com/crewbase/crewbase/internal/server/config"
	"github.com/crewbase/crewbase/internal/server/models"
	"github.com/crewbase/crewbase/internal/server/repositories/accounts"
	"github.com/crewbase/crewbase/internal/server/repositories/memberships"
	"github.com/crewbase/crewbase/internal/server/repositories/preferences"
	"github.com/crewbase/crewbase/internal/server/repositories/teams"
	"github.com/crewbase/crewbase/internal/server/services"
)

type Handler struct {
	prov     *services.ProvisioningService
	auth     *services.AuthService
	accounts accounts.Repository
	teams    teams.Repository
	members  memberships.Repository
	prefs    preferences.Repository
	cfg      *config.Config
	logger   logging.Logger
}

func NewHandler(
	prov *services.ProvisioningService,
	auth *services.AuthService,
	ar accounts.Repository,
	tr teams.Repository,
	mr memberships.Repository,
	pr preferences.Repository,
	cfg *config.Config,
	logger logging.Logger,
) *Handler {
	return &Handler{
		prov:     prov,
		auth:     auth,
		accounts: ar,
		teams:    tr,
		members:  mr,
		prefs:    pr,
		cfg:      cfg,
		logger:   logger.With("module", "httpapi"),
	}
}

type createAccountRequest struct {
	ID        string   `json:"id"`
	Email     string   `json:"email"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Password  string   `json:"password"`
	Roles     []string `json:"roles"`
	TeamID    string   `json:"teamId"`
}

type loginRequest struct {
	Identity string `json:"identity"`
	Context  string `json:"context"`
}

type createTeamRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatorID   string `json:"creatorId"`
}

type addMemberRequest struct {
	AccountID string `json:"accountId"`
	Role      string `json:"role"`
}

type challengeJSON struct {
	AppID  string `json:"appId"`
	AppKey string `json:"appKey"`
	Realm  string `json:"realm"`
	Nonce  string `json:"nonce"`
	Qop    string `json:"qop"`
}

type profileJSON struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	FirstName     string `json:"firstName,omitempty"`
	LastName      string `json:"lastName,omitempty"`
	EmailVerified bool   `json:"emailVerified"`
}

type loginJSON struct {
	Profile     profileJSON `json:"profile"`
	AccessToken string      `json:"accessToken"`
	SessionID   string      `json:"sessionId,omitempty"`
}

type teamJSON struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatorID   string `json:"creatorId,omitempty"`
}

type memberJSON struct {
	TeamID    string `json:"teamId"`
	AccountID string `json:"accountId"`
	Role      string `json:"role,omitempty"`
}

func profileToJSON(p models.PublicProfile) profileJSON {
	return profileJSON{
		ID:            p.ID,
		Email:         p.Email,
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		EmailVerified: p.EmailVerified,
	}
}

func teamToJSON(t *models.Team) teamJSON {
	return teamJSON{ID: t.ID, Name: t.Name, Description: t.Description, CreatorID: t.CreatorID}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Challenge(w http.ResponseWriter, r *http.Request) {
	c := h.auth.Challenge()
	writeJSON(w, http.StatusOK, challengeJSON{
		AppID:  c.AppID,
		AppKey: c.AppKey,
		Realm:  c.Realm,
		Nonce:  c.Nonce,
		Qop:    c.Qop,
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "error.badRequest", "invalid request body")
		return
	}
	if req.Identity == "" || req.Context == "" {
		writeError(w, http.StatusBadRequest, "error.badRequest", "identity and context are required")
		return
	}

	res, err := h.auth.Login(r.Context(), req.Identity, req.Context)
	if err != nil {
		h.writeServiceError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginJSON{
		Profile:     profileToJSON(res.Profile),
		AccessToken: res.AccessToken,
		SessionID:   res.SessionID,
	})
}

func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "error.badRequest", "invalid request body")
		return
	}

	account := &models.Account{
		ID:        req.ID,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	created, err := h.prov.CreateAccount(r.Context(), account, req.Password, req.Roles)
	if err != nil {
		h.writeServiceError(r.Context(), w, err)
		return
	}

	h.provisionDefaults(r, created.ID, req.TeamID)

	writeJSON(w, http.StatusCreated, profileToJSON(created.Public()))
}

// provisionDefaults performs follow-on provisioning after a successful
// signup: default preferences and, when requested, an initial team
// membership. Failures are logged and never surfaced; the account already
// exists and the client may retry these separately.
func (h *Handler) provisionDefaults(r *http.Request, accountID, teamID string) {
	ctx := r.Context()

	p := &models.Preferences{
		AccountID: accountID,
		Locale:    h.cfg.DefaultLocale,
		TimeZone:  h.cfg.DefaultTimeZone,
	}
	if err := h.prefs.Upsert(ctx, p); err != nil {
		h.logger.Warn(ctx, "default preferences write failed", "account_id", accountID, "error", err)
	}

	if teamID == "" {
		return
	}
	m := &models.Membership{
		TeamID:    teamID,
		AccountID: accountID,
		Role:      "member",
		AddedAt:   time.Now().UTC(),
	}
	if err := h.members.Add(ctx, m); err != nil {
		h.logger.Warn(ctx, "initial membership write failed",
			"account_id", accountID, "team_id", teamID, "error", err)
	}
}

func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	account, err := h.accounts.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, profileToJSON(account.Public()))
}

func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.prov.DeleteAccount(r.Context(), id); err != nil {
		h.writeServiceError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var req createTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "error.badRequest", "invalid request body")
		return
	}

	team := &models.Team{
		Name:        req.Name,
		Description: req.Description,
		CreatorID:   req.CreatorID,
	}
	created, err := h.prov.CreateTeam(r.Context(), team)
	if err != nil {
		h.writeServiceError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusCreated, teamToJSON(created))
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	team, err := h.teams.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, teamToJSON(team))
}

func (h *Handler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.prov.DeleteTeam(r.Context(), id); err != nil {
		h.writeServiceError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

func (h *Handler) AddMember(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "id")
	var req addMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "error.badRequest", "invalid request body")
		return
	}
	if req.AccountID == "" {
		writeError(w, http.StatusBadRequest, "error.badRequest", "accountId is required")
		return
	}

	// Both sides must exist; membership itself carries no constraints.
	if _, err := h.teams.Get(r.Context(), teamID); err != nil {
		h.writeServiceError(r.Context(), w, err)
		return
	}
	if _, err := h.accounts.Get(r.Context(), req.AccountID); err != nil {
		h.writeServiceError(r.Context(), w, err)
		return
	}

	m := &models.Membership{
		TeamID:    teamID,
		AccountID: req.AccountID,
		Role:      req.Role,
		AddedAt:   time.Now().UTC(),
	}
	if err := h.members.Add(r.Context(), m); err != nil {
		h.writeServiceError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusCreated, memberJSON{TeamID: teamID, AccountID: req.AccountID, Role: req.Role})
}

func (h *Handler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "id")
	accountID := chi.URLParam(r, "accountID")
	if err := h.members.Remove(r.Context(), teamID, accountID); err != nil {
		h.writeServiceError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "id")
	if _, err := h.teams.Get(r.Context(), teamID); err != nil {
		h.writeServiceError(r.Context(), w, err)
		return
	}
	list, err := h.members.ListByTeam(r.Context(), teamID)
	if err != nil {
		h.writeServiceError(r.Context(), w, err)
		return
	}
	out := make([]memberJSON, 0, len(list))
	for _, m := range list {
		out = append(out, memberJSON{TeamID: m.TeamID, AccountID: m.AccountID, Role: m.Role})
	}
	writeJSON(w, http.StatusOK, out)
}

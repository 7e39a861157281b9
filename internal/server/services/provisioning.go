// Package services contains the provisioning and authentication logic that
// enforces the invariants the store does not: global uniqueness of emails
// and team names, and paired creation/deletion of accounts and credentials.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/crewbase/crewbase/internal/common"
	"github.com/crewbase/crewbase/internal/cryptox"
	"github.com/crewbase/crewbase/internal/logging"
	"github.com/crewbase/crewbase/internal/server/models"
	"github.com/crewbase/crewbase/internal/server/repositories/accounts"
	"github.com/crewbase/crewbase/internal/server/repositories/credentials"
	"github.com/crewbase/crewbase/internal/server/repositories/teams"
	"github.com/crewbase/crewbase/internal/storex"
)

// ProvisioningService creates and deletes accounts and teams. Every
// existence check and write runs at LOCAL_QUORUM; within one call the steps
// execute strictly in order, since each write depends on the checks having
// observed a consistent absence.
type ProvisioningService struct {
	db       storex.DB
	accounts accounts.Repository
	creds    credentials.Repository
	teams    teams.Repository
	guard    *UniquenessGuard
	logger   logging.Logger
}

func NewProvisioningService(
	db storex.DB,
	ar accounts.Repository,
	cr credentials.Repository,
	tr teams.Repository,
	guard *UniquenessGuard,
	logger logging.Logger,
) *ProvisioningService {
	return &ProvisioningService{
		db:       db,
		accounts: ar,
		creds:    cr,
		teams:    tr,
		guard:    guard,
		logger:   logger.With("module", "provisioning"),
	}
}

// CreateAccount provisions an account and its credentials as one grouped
// write. The returned account is the stored row; the plaintext secret is
// hashed before anything is written and never logged.
func (s *ProvisioningService) CreateAccount(ctx context.Context, account *models.Account, secret string, roles []string) (*models.Account, error) {
	if account.ID == "" || account.Email == "" || secret == "" {
		return nil, fmt.Errorf("%w: account id, email and secret are required", common.ErrInvalidArgument)
	}

	// Existence check by primary key.
	if _, err := s.accounts.Get(ctx, account.ID); err == nil {
		return nil, &common.AlreadyExistsError{Field: "account id", Value: account.ID}
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("account existence check: %w", err)
	}

	// Existence check by secondary key (email index table).
	if owner, err := s.accounts.EmailIndexOwner(ctx, account.Email); err == nil {
		s.logger.Debug(ctx, "email already indexed", "owner", owner)
		return nil, &common.AlreadyExistsError{Field: "email", Value: account.Email}
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("email existence check: %w", err)
	}

	// Both checks above are check-then-act; the conditional reservation
	// linearizes the claim so a writer racing between check and write loses
	// here instead of creating a duplicate.
	ok, conflicting, err := s.guard.Reserve(ctx, models.TableAccountsByEmail, "email", account.Email, "account_id", account.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.logger.Warn(ctx, "lost email reservation race", "conflicting_owner", conflicting)
		return nil, &common.AlreadyExistsError{Field: "email", Value: account.Email}
	}

	digest, err := cryptox.HashPassword(secret)
	if err != nil {
		s.releaseEmail(ctx, account.Email)
		return nil, fmt.Errorf("hash secret: %w", err)
	}

	account.UpdatedAt = time.Now().UTC()
	creds := &models.Credentials{
		AccountID:      account.ID,
		PasswordDigest: digest,
		Roles:          roles,
	}

	res, err := s.db.WriteBatch(ctx, []storex.Statement{
		s.accounts.InsertStmt(account),
		s.creds.InsertStmt(creds),
	}, storex.LocalQuorum)
	if err != nil {
		s.releaseEmail(ctx, account.Email)
		return nil, fmt.Errorf("account batch: %w", err)
	}
	if !res.Applied {
		s.logger.Error(ctx, "account batch did not apply", "account_id", account.ID, "outcomes", res.Outcomes)
		s.releaseEmail(ctx, account.Email)
		return nil, common.ErrOperationFailed
	}

	return account, nil
}

// DeleteAccount removes the account, its credentials and its email index
// row as one grouped write. Membership, session and preference rows are not
// cascaded, matching the current behavior (see DESIGN.md).
func (s *ProvisioningService) DeleteAccount(ctx context.Context, id string) error {
	account, err := s.accounts.Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		return fmt.Errorf("account existence check: %w", err)
	}

	res, err := s.db.WriteBatch(ctx, []storex.Statement{
		s.accounts.DeleteStmt(id),
		s.creds.DeleteStmt(id),
		s.accounts.EmailIndexDeleteStmt(account.Email),
	}, storex.LocalQuorum)
	if err != nil {
		return fmt.Errorf("account delete batch: %w", err)
	}
	if !res.Applied {
		s.logger.Error(ctx, "account delete batch did not apply", "account_id", id, "outcomes", res.Outcomes)
		return common.ErrOperationFailed
	}
	return nil
}

// CreateTeam provisions a team. The id is a fresh opaque token, so only the
// name can collide; the name check is a filtered secondary read followed by
// a conditional reservation of the name index row.
func (s *ProvisioningService) CreateTeam(ctx context.Context, team *models.Team) (*models.Team, error) {
	if team.Name == "" {
		return nil, fmt.Errorf("%w: team name is required", common.ErrInvalidArgument)
	}
	team.ID = uuid.NewString()

	if _, err := s.teams.GetByName(ctx, team.Name); err == nil {
		return nil, &common.AlreadyExistsError{Field: "team name", Value: team.Name}
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("team existence check: %w", err)
	}

	ok, conflicting, err := s.guard.Reserve(ctx, models.TableTeamsByName, "name", team.Name, "team_id", team.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.logger.Warn(ctx, "lost team name reservation race", "conflicting_owner", conflicting)
		return nil, &common.AlreadyExistsError{Field: "team name", Value: team.Name}
	}

	now := time.Now().UTC()
	team.CreatedAt = now
	team.UpdatedAt = now

	// Single row, no companion, so no batch.
	if err := s.teams.Insert(ctx, team); err != nil {
		s.releaseTeamName(ctx, team.Name)
		return nil, err
	}
	return team, nil
}

// DeleteTeam removes the team row and its name index row.
func (s *ProvisioningService) DeleteTeam(ctx context.Context, id string) error {
	team, err := s.teams.Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		return fmt.Errorf("team existence check: %w", err)
	}

	res, err := s.db.WriteBatch(ctx, []storex.Statement{
		s.teams.DeleteStmt(id),
		s.teams.NameIndexDeleteStmt(team.Name),
	}, storex.LocalQuorum)
	if err != nil {
		return fmt.Errorf("team delete batch: %w", err)
	}
	if !res.Applied {
		s.logger.Error(ctx, "team delete batch did not apply", "team_id", id, "outcomes", res.Outcomes)
		return common.ErrOperationFailed
	}
	return nil
}

// releaseEmail undoes an email reservation after a failed create. A failure
// here leaves a dangling index row; it is logged, not propagated, since the
// create has already failed for its own reason.
func (s *ProvisioningService) releaseEmail(ctx context.Context, email string) {
	if err := s.guard.Release(ctx, models.TableAccountsByEmail, "email", email); err != nil {
		s.logger.Error(ctx, "email reservation release failed", "error", err)
	}
}

func (s *ProvisioningService) releaseTeamName(ctx context.Context, name string) {
	if err := s.guard.Release(ctx, models.TableTeamsByName, "name", name); err != nil {
		s.logger.Error(ctx, "team name reservation release failed", "error", err)
	}
}

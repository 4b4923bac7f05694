/*
Copyright 2024 Blnk Finance Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package soillab

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jerry-enebeli/soillab/internal/apierror"
	"github.com/jerry-enebeli/soillab/internal/auth"
	"github.com/jerry-enebeli/soillab/model"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

func unauthorized(message string) error {
	return apierror.APIError{Code: apierror.ErrUnauthorized, Message: message}
}

// Login checks the credentials and opens a session. The refresh token is
// persisted so that it can be revoked.
func (l *SoilLab) Login(ctx context.Context, email, password string) (*model.TokenPair, error) {
	u, err := l.datasource.GetUserByEmail(ctx, strings.TrimSpace(email))
	if isNotFound(err) {
		return nil, unauthorized("invalid email or password")
	}
	if err != nil {
		return nil, err
	}
	if !auth.VerifyPassword(u.HashedPassword, password) {
		return nil, unauthorized("invalid email or password")
	}
	if !u.IsActive {
		return nil, unauthorized("user is inactive")
	}

	access, err := l.tokens.IssueAccess(u.ID, u.Email)
	if err != nil {
		return nil, l.internalError(err)
	}
	refresh, expiresAt, err := l.tokens.IssueRefresh(u.ID, u.Email)
	if err != nil {
		return nil, l.internalError(err)
	}
	if err := l.datasource.CreateRefreshToken(ctx, &model.RefreshToken{
		UserID:    u.ID,
		Token:     refresh,
		ExpiresAt: expiresAt,
	}); err != nil {
		return nil, err
	}
	if err := l.datasource.TouchLastLogin(ctx, u.ID, time.Now().UTC()); err != nil {
		logrus.WithError(err).WithField("user_id", u.ID).Warn("failed to stamp last login")
	}

	return &model.TokenPair{AccessToken: access, RefreshToken: refresh, TokenType: auth.BearerScheme}, nil
}

// Refresh exchanges a live refresh token for a new access token.
func (l *SoilLab) Refresh(ctx context.Context, raw string) (*model.AccessToken, error) {
	claims, err := l.tokens.ParseRefresh(raw)
	if err != nil {
		return nil, unauthorized("invalid refresh token")
	}
	stored, err := l.datasource.GetRefreshToken(ctx, raw)
	if isNotFound(err) {
		return nil, unauthorized("refresh token revoked")
	}
	if err != nil {
		return nil, err
	}
	if stored.UserID != claims.Subject || time.Now().After(stored.ExpiresAt) {
		return nil, unauthorized("refresh token revoked")
	}

	data, err := l.UserData(ctx, stored.UserID)
	if isNotFound(err) || (err == nil && !data.IsActive) {
		return nil, unauthorized("user is inactive")
	}
	if err != nil {
		return nil, err
	}

	access, err := l.tokens.IssueAccess(data.UserID, data.Email)
	if err != nil {
		return nil, l.internalError(err)
	}
	return &model.AccessToken{AccessToken: access, TokenType: auth.BearerScheme}, nil
}

// Logout revokes a refresh token. Revoking an unknown token succeeds.
func (l *SoilLab) Logout(ctx context.Context, raw string) error {
	err := l.datasource.DeleteRefreshToken(ctx, raw)
	if isNotFound(err) {
		return nil
	}
	return err
}

// Authenticate resolves a bearer access token to the user it was issued to.
func (l *SoilLab) Authenticate(ctx context.Context, raw string) (*model.UserData, error) {
	claims, err := l.tokens.ParseAccess(raw)
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidToken) && !errors.Is(err, auth.ErrWrongTokenType) {
			return nil, l.internalError(pkgerrors.Wrap(err, "parse access token"))
		}
		return nil, unauthorized("invalid access token")
	}
	data, err := l.UserData(ctx, claims.Subject)
	if isNotFound(err) || (err == nil && !data.IsActive) {
		return nil, unauthorized("user is inactive")
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Me returns the full record of the authenticated user.
func (l *SoilLab) Me(ctx context.Context) (*model.User, error) {
	data, ok := auth.UserFromContext(ctx)
	if !ok {
		return nil, unauthorized("authentication required")
	}
	return l.datasource.GetUserByID(ctx, data.UserID)
}

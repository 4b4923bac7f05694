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

// Package auth issues and verifies session tokens, hashes passwords and
// carries the authenticated user on request contexts.
package auth

import (
	"context"

	"github.com/jerry-enebeli/soillab/model"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	userKey      contextKey = "user"
	requestIDKey contextKey = "request_id"
)

// WithUser returns a copy of ctx carrying the authenticated user.
func WithUser(ctx context.Context, user *model.UserData) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext returns the authenticated user, if any.
func UserFromContext(ctx context.Context) (*model.UserData, bool) {
	user, ok := ctx.Value(userKey).(*model.UserData)
	return user, ok && user != nil
}

// ActorID returns the id of the authenticated user for audit columns, or nil
// for system initiated work.
func ActorID(ctx context.Context) *string {
	user, ok := UserFromContext(ctx)
	if !ok {
		return nil
	}
	id := user.UserID
	return &id
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

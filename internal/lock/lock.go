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

package redlock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrLockHeld is returned when another holder owns the key.
var ErrLockHeld = errors.New("lock is already held")

const (
	unlockScript = "if redis.call('get', KEYS[1]) == ARGV[1] then return redis.call('del', KEYS[1]) else return 0 end"
	extendScript = "if redis.call('get', KEYS[1]) == ARGV[1] then return redis.call('pexpire', KEYS[1], ARGV[2]) else return 0 end"
)

// Locker is a Redis backed distributed lock on a single key.
type Locker struct {
	client redis.UniversalClient
	key    string
	value  string // Used for ensuring that only the lock holder can unlock or renew the lock
}

// NewLocker creates a new Locker.
// Parameters:
// - client: The Redis client holding the lock keys.
// - key: The key to lock.
// - value: The holder token. Only the holder can unlock or extend the lock.
// Returns a Locker that has not acquired the lock yet.
func NewLocker(client redis.UniversalClient, key, value string) *Locker {
	return &Locker{
		client: client,
		key:    key,
		value:  value,
	}
}

// TestResultKey is the key serializing writes of one parameter's result on a sample.
func TestResultKey(sampleID, parameterID string) string {
	return fmt.Sprintf("test-result:%s:%s", sampleID, parameterID)
}

// NewTestResultLocker returns a locker for a (sample, parameter) pair with a
// random holder token.
func NewTestResultLocker(client redis.UniversalClient, sampleID, parameterID string) *Locker {
	return NewLocker(client, TestResultKey(sampleID, parameterID), uuid.NewString())
}

func (l *Locker) Key() string {
	return l.key
}

// Lock attempts to acquire the lock once.
// Parameters:
// - ctx: The context for the Redis call.
// - timeout: How long the lock is held before it expires on its own.
// Returns ErrLockHeld if another holder owns the key, or the Redis error.
func (l *Locker) Lock(ctx context.Context, timeout time.Duration) error {
	success, err := l.client.SetNX(ctx, l.key, l.value, timeout).Result()
	if err != nil {
		return err
	}
	if !success {
		return fmt.Errorf("%w: key %s", ErrLockHeld, l.key)
	}
	return nil
}

// Unlock releases the lock if it is still held by this holder.
// Returns an error if the lock expired or belongs to another holder.
func (l *Locker) Unlock(ctx context.Context) error {
	result, err := l.client.Eval(ctx, unlockScript, []string{l.key}, l.value).Result()
	if err != nil {
		return err
	}
	if result == int64(0) {
		return fmt.Errorf("unlock failed, either lock expired or you're not the lock holder for key %s", l.key)
	}
	return nil
}

// ExtendLock resets the expiry of a held lock.
// Parameters:
// - ctx: The context for the Redis call.
// - extension: The new time-to-live of the lock.
// Returns an error if the lock is no longer held by this holder.
func (l *Locker) ExtendLock(ctx context.Context, extension time.Duration) error {
	result, err := l.client.Eval(ctx, extendScript, []string{l.key}, l.value, fmt.Sprintf("%d", extension.Milliseconds())).Result()
	if err != nil {
		return err
	}
	if result == int64(0) {
		return fmt.Errorf("lock extension failed for key %s, either lock expired or you're not the holder", l.key)
	}
	return nil
}

// WaitLock retries Lock with exponential backoff until it succeeds, the wait
// timeout elapses or ctx is done. Redis failures stop the retry immediately.
func (l *Locker) WaitLock(ctx context.Context, lockTimeout, waitTimeout time.Duration) error {
	// A zero MaxElapsedTime would retry forever.
	if waitTimeout <= 0 {
		return l.Lock(ctx, lockTimeout)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 20 * time.Millisecond
	b.MaxInterval = 250 * time.Millisecond
	b.MaxElapsedTime = waitTimeout

	err := backoff.Retry(func() error {
		err := l.Lock(ctx, lockTimeout)
		if err != nil && !errors.Is(err, ErrLockHeld) {
			return backoff.Permanent(err)
		}
		return err
	}, backoff.WithContext(b, ctx))
	if errors.Is(err, ErrLockHeld) {
		return fmt.Errorf("%w: failed to acquire lock for key %s within the wait timeout", ErrLockHeld, l.key)
	}
	return err
}

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
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiniredisClient(t *testing.T) (*miniredis.Miniredis, redis.UniversalClient) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return server, client
}

func TestTestResultKey(t *testing.T) {
	assert.Equal(t, "test-result:smp_1:prm_2", TestResultKey("smp_1", "prm_2"))

	locker := NewTestResultLocker(nil, "smp_1", "prm_2")
	assert.Equal(t, "test-result:smp_1:prm_2", locker.Key())
	assert.NotEmpty(t, locker.value)
}

func TestLocker_Lock_Success(t *testing.T) {
	db, mock := redismock.NewClientMock()
	locker := NewLocker(db, "test-key", "test-value")

	mock.ExpectSetNX("test-key", "test-value", 5*time.Second).SetVal(true)

	err := locker.Lock(context.Background(), 5*time.Second)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLocker_Lock_Failure(t *testing.T) {
	db, mock := redismock.NewClientMock()
	locker := NewLocker(db, "test-key", "test-value")

	mock.ExpectSetNX("test-key", "test-value", 5*time.Second).SetVal(false)

	err := locker.Lock(context.Background(), 5*time.Second)
	assert.EqualError(t, err, "lock is already held: key test-key")
	assert.ErrorIs(t, err, ErrLockHeld)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLocker_Lock_RedisError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	locker := NewLocker(db, "test-key", "test-value")

	mock.ExpectSetNX("test-key", "test-value", 5*time.Second).SetErr(errors.New("connection refused"))

	err := locker.Lock(context.Background(), 5*time.Second)
	assert.EqualError(t, err, "connection refused")
	assert.False(t, errors.Is(err, ErrLockHeld))
}

func TestLocker_Unlock_Success(t *testing.T) {
	db, mock := redismock.NewClientMock()
	locker := NewLocker(db, "test-key", "test-value")

	mock.ExpectEval(unlockScript, []string{"test-key"}, "test-value").SetVal(int64(1))

	err := locker.Unlock(context.Background())
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLocker_Unlock_Failure(t *testing.T) {
	db, mock := redismock.NewClientMock()
	locker := NewLocker(db, "test-key", "test-value")

	// Simulate a failed unlock (either lock expired or not the lock holder)
	mock.ExpectEval(unlockScript, []string{"test-key"}, "test-value").SetVal(int64(0))

	err := locker.Unlock(context.Background())
	assert.EqualError(t, err, "unlock failed, either lock expired or you're not the lock holder for key test-key")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLocker_ExtendLock_Success(t *testing.T) {
	db, mock := redismock.NewClientMock()
	locker := NewLocker(db, "test-key", "test-value")

	mock.ExpectEval(extendScript, []string{"test-key"}, "test-value", "5000").SetVal(int64(1))

	err := locker.ExtendLock(context.Background(), 5*time.Second)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLocker_ExtendLock_Failure(t *testing.T) {
	db, mock := redismock.NewClientMock()
	locker := NewLocker(db, "test-key", "test-value")

	mock.ExpectEval(extendScript, []string{"test-key"}, "test-value", "5000").SetVal(int64(0))

	err := locker.ExtendLock(context.Background(), 5*time.Second)
	assert.EqualError(t, err, "lock extension failed for key test-key, either lock expired or you're not the holder")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLocker_WaitLock_Success(t *testing.T) {
	db, mock := redismock.NewClientMock()
	locker := NewLocker(db, "test-key", "test-value")

	mock.ExpectSetNX("test-key", "test-value", 5*time.Second).SetVal(true)

	err := locker.WaitLock(context.Background(), 5*time.Second, 2*time.Second)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLocker_WaitLock_Timeout(t *testing.T) {
	_, client := newMiniredisClient(t)
	holder := NewLocker(client, "test-key", "holder")
	require.NoError(t, holder.Lock(context.Background(), time.Minute))

	waiter := NewLocker(client, "test-key", "waiter")
	err := waiter.WaitLock(context.Background(), 5*time.Second, 200*time.Millisecond)
	assert.ErrorIs(t, err, ErrLockHeld)
	assert.Contains(t, err.Error(), "failed to acquire lock for key test-key within the wait timeout")
}

func TestLocker_WaitLock_AcquiresAfterRelease(t *testing.T) {
	_, client := newMiniredisClient(t)
	ctx := context.Background()
	holder := NewLocker(client, "test-key", "holder")
	require.NoError(t, holder.Lock(ctx, time.Minute))

	go func() {
		time.Sleep(100 * time.Millisecond)
		_ = holder.Unlock(ctx)
	}()

	waiter := NewLocker(client, "test-key", "waiter")
	require.NoError(t, waiter.WaitLock(ctx, 5*time.Second, 3*time.Second))
	assert.NoError(t, waiter.Unlock(ctx))
}

func TestLocker_WaitLock_StopsOnRedisError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	locker := NewLocker(db, "test-key", "test-value")

	mock.ExpectSetNX("test-key", "test-value", 5*time.Second).SetErr(errors.New("connection refused"))

	err := locker.WaitLock(context.Background(), 5*time.Second, 2*time.Second)
	assert.EqualError(t, err, "connection refused")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLocker_UnlockIgnoresOtherHolder(t *testing.T) {
	_, client := newMiniredisClient(t)
	ctx := context.Background()

	holder := NewLocker(client, "test-key", "holder")
	require.NoError(t, holder.Lock(ctx, time.Minute))

	intruder := NewLocker(client, "test-key", "intruder")
	assert.Error(t, intruder.Unlock(ctx))
	assert.ErrorIs(t, intruder.Lock(ctx, time.Minute), ErrLockHeld)
}

package notification_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/edutrack/core"
	"github.com/trezcool/edutrack/core/notification"
	"github.com/trezcool/edutrack/testutil"
)

func TestService_Create(t *testing.T) {
	env := testutil.NewEnv(t)

	n, err := env.NotifSvc.Create(1, "Lesson saved", "Rounding was saved", notification.KindInfo)
	require.NoError(t, err)
	assert.NotZero(t, n.ID)
	assert.False(t, n.Read)

	_, err = env.NotifSvc.Create(1, "Oops", "", "urgent")
	assert.Equal(t, notification.ErrInvalidKind, errors.Cause(err))
}

func TestService_QueryByUser(t *testing.T) {
	env := testutil.NewEnv(t)

	n1, err := env.NotifSvc.Create(1, "first", "", notification.KindInfo)
	require.NoError(t, err)
	_, err = env.NotifSvc.Create(2, "other user", "", notification.KindInfo)
	require.NoError(t, err)
	n3, err := env.NotifSvc.Create(1, "second", "", notification.KindWarning)
	require.NoError(t, err)

	notifs, err := env.NotifSvc.QueryByUser(1)
	require.NoError(t, err)
	if assert.Len(t, notifs, 2) {
		assert.Equal(t, n3.ID, notifs[0].ID)
		assert.Equal(t, n1.ID, notifs[1].ID)
	}

	notifs, err = env.NotifSvc.QueryByUser(3)
	require.NoError(t, err)
	assert.Equal(t, []notification.Notification{}, notifs)
}

func TestService_MarkRead(t *testing.T) {
	env := testutil.NewEnv(t)

	n, err := env.NotifSvc.Create(1, "hello", "", notification.KindSuccess)
	require.NoError(t, err)
	_, err = env.NotifSvc.Create(1, "again", "", notification.KindSuccess)
	require.NoError(t, err)

	count, err := env.NotifSvc.UnreadCount(1)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	_, err = env.NotifSvc.MarkRead(2, n.ID)
	assert.True(t, core.IsNotFound(err), "other users' notifications are not found")
	_, err = env.NotifSvc.MarkRead(1, 999)
	assert.True(t, core.IsNotFound(err))

	for i := 0; i < 2; i++ { // idempotent
		read, err := env.NotifSvc.MarkRead(1, n.ID)
		require.NoError(t, err)
		assert.True(t, read.Read)
		assert.Equal(t, n.ID, read.ID)
	}

	count, err = env.NotifSvc.UnreadCount(1)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

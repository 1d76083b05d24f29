package notification

import (
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/edutrack/core"
)

var (
	ErrNotFound    = core.NewNotFoundError("notification not found")
	ErrInvalidKind = errors.New("invalid notification type")
)

type (
	Repository interface {
		CreateNotification(n Notification) (Notification, error)
		GetNotificationByID(id int) (Notification, error)
		FilterNotificationsByUser(userID int) ([]Notification, error)
		// MarkNotificationRead sets Read; it is a no-op on a Notification already read.
		MarkNotificationRead(id int) (Notification, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create stores a new unread Notification for `userID`.
func (svc *Service) Create(userID int, title, message, kind string) (Notification, error) {
	if !IsValidKind(kind) {
		return Notification{}, errors.Wrapf(ErrInvalidKind, "%q", kind)
	}
	return svc.repo.CreateNotification(Notification{
		UserID:    userID,
		Title:     title,
		Message:   message,
		Kind:      kind,
		CreatedAt: time.Now().UTC(),
	})
}

// Notify implements user.Notifier.
func (svc *Service) Notify(userID int, title, message, kind string) error {
	_, err := svc.Create(userID, title, message, kind)
	return err
}

// QueryByUser returns the Notifications of `userID`, newest first.
func (svc *Service) QueryByUser(userID int) ([]Notification, error) {
	notifs, err := svc.repo.FilterNotificationsByUser(userID)
	if err != nil {
		return nil, err
	}
	sort.Slice(notifs, func(i, j int) bool {
		if notifs[i].CreatedAt.Equal(notifs[j].CreatedAt) {
			return notifs[i].ID > notifs[j].ID
		}
		return notifs[i].CreatedAt.After(notifs[j].CreatedAt)
	})
	return notifs, nil
}

// MarkRead marks the Notification `id` of `userID` as read. Notifications of other users are not found.
func (svc *Service) MarkRead(userID, id int) (Notification, error) {
	n, err := svc.repo.GetNotificationByID(id)
	if err != nil {
		return Notification{}, err
	}
	if n.UserID != userID {
		return Notification{}, ErrNotFound
	}
	if n.Read {
		return n, nil
	}
	return svc.repo.MarkNotificationRead(id)
}

func (svc *Service) UnreadCount(userID int) (int, error) {
	notifs, err := svc.repo.FilterNotificationsByUser(userID)
	if err != nil {
		return 0, err
	}
	var count int
	for _, n := range notifs {
		if !n.Read {
			count++
		}
	}
	return count, nil
}
